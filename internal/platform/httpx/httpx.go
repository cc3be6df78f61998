package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"pet-adoption-platform/internal/platform/apperrors"
	"pet-adoption-platform/internal/platform/logger"
	"pet-adoption-platform/internal/platform/notify"

	"github.com/go-playground/validator/v10"
)

// Envelope es la respuesta exitosa: datos + avisos emitidos por la operación.
type Envelope struct {
	Data    any             `json:"data"`
	Notices []notify.Notice `json:"notices,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error   APIError        `json:"error"`
	Notices []notify.Notice `json:"notices,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteData(ctx context.Context, w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, Envelope{Data: data, Notices: notify.RecorderFrom(ctx).Notices()})
}

// WriteError traduce cualquier error a status + sobre JSON.
// Errores no tipados se reportan como internos sin filtrar el mensaje.
func WriteError(ctx context.Context, log logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}
	typed := apperrors.As(err)
	if typed == nil {
		typed = apperrors.Wrap(apperrors.CodeInternal, err, "unexpected error")
	}
	meta := apperrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	if typed.Code() != apperrors.CodeInternal && typed.Code() != apperrors.CodeDependency {
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	l := logger.FromContext(ctx, log)
	fields := map[string]any{"error": err.Error(), "error_code": string(typed.Code())}
	if meta.HTTPStatus >= http.StatusInternalServerError {
		l.Error("request.error", fields)
	} else {
		l.Debug("request.declined", fields)
	}

	payload := ErrorEnvelope{
		Error:   APIError{Code: string(typed.Code()), Message: msg},
		Notices: notify.RecorderFrom(ctx).Notices(),
	}
	if typed.Code() == apperrors.CodeValidation {
		payload.Error.Details = typed.Details()
	}
	WriteJSON(w, meta.HTTPStatus, payload)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return apperrors.Wrap(apperrors.CodeValidation, err, "invalid json").WithDetails(map[string]any{"error": err.Error()})
	}
	return ValidateStruct(dest)
}

// ValidateStruct corre las reglas `validate` y arma detalles por campo.
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return FormatValidationErrors(err)
	}
	return nil
}

func FormatValidationErrors(err error) *apperrors.Error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		details := map[string]string{}
		for _, fe := range errs {
			details[fe.Field()] = validationMessage(fe)
		}
		return apperrors.New(apperrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return apperrors.Wrap(apperrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must have length %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "numeric":
		return "must contain only digits"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	}
	return "is invalid"
}
