package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-adoption-platform/internal/platform/apperrors"
	"pet-adoption-platform/internal/platform/logger"
	"pet-adoption-platform/internal/platform/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupBody struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func TestDecodeJSONBody(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ana","email":"ana@example.com"}`))
		var body signupBody
		require.NoError(t, DecodeJSONBody(r, &body))
		assert.Equal(t, "Ana", body.Name)
	})

	t.Run("unknown field", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ana","extra":1}`))
		var body signupBody
		err := DecodeJSONBody(r, &body)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
	})

	t.Run("field details use json names", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"","email":"nope"}`))
		var body signupBody
		err := DecodeJSONBody(r, &body)
		typed := apperrors.As(err)
		require.NotNil(t, typed)
		details, ok := typed.Details().(map[string]string)
		require.True(t, ok)
		assert.Equal(t, "is required", details["name"])
		assert.Equal(t, "must be a valid email", details["email"])
	})
}

func TestWriteErrorMapsCodes(t *testing.T) {
	ctx, _ := notify.WithRecorder(context.Background())
	notify.NewLogNotifier(nil).Notify(ctx, notify.Failure("Not allowed", "only the owner can delete"))

	rec := httptest.NewRecorder()
	forbidden := apperrors.New(apperrors.CodeForbidden, "not the listing owner")
	WriteError(ctx, logger.Nop(), rec, fmt.Errorf("delete: %w", forbidden))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var payload ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "FORBIDDEN", payload.Error.Code)
	assert.Equal(t, "not the listing owner", payload.Error.Message)
	require.Len(t, payload.Notices, 1)
}

func TestWriteErrorHidesInternalMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), logger.Nop(), rec, errors.New("dial tcp: refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "refused")
}

func TestWriteDataIncludesNotices(t *testing.T) {
	ctx, _ := notify.WithRecorder(context.Background())
	notify.NewLogNotifier(nil).Notify(ctx, notify.Success("Added to cart", "1 item"))

	rec := httptest.NewRecorder()
	WriteData(ctx, rec, http.StatusCreated, map[string]int{"quantity": 1})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"Added to cart"`)
}
