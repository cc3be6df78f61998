package checkout

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)

// Mensajes por campo, tal como los ve el comprador.
var fieldMessages = map[string]string{
	"name":        "Full name is required.",
	"email":       "Valid email is required.",
	"address":     "Address is required.",
	"city":        "City is required.",
	"postal_code": "Postal code is required.",
	"country":     "Country is required.",
	"card_number": "Valid 16-digit card number is required.",
	"expiry_date": "Valid expiry date (MM/YY) is required.",
	"cvc":         "Valid CVC (3 or 4 digits) is required.",
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
	_ = v.RegisterValidation("expiry", func(fl validator.FieldLevel) bool {
		return expiryPattern.MatchString(fl.Field().String())
	})
	return v
}

// normalize recorta espacios; el número de tarjeta admite espacios entre grupos.
func normalize(in PaymentInput) PaymentInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.PostalCode = strings.TrimSpace(in.PostalCode)
	in.Country = strings.TrimSpace(in.Country)
	in.CardNumber = strings.Join(strings.Fields(in.CardNumber), "")
	in.ExpiryDate = strings.TrimSpace(in.ExpiryDate)
	in.CVC = strings.TrimSpace(in.CVC)
	return in
}

// validatePayment devuelve los errores por campo o nil.
func validatePayment(in PaymentInput) (map[string]string, error) {
	err := validate.Struct(in)
	if err == nil {
		return nil, nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil, err
	}
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = "is invalid"
		}
		details[fe.Field()] = msg
	}
	return details, nil
}
