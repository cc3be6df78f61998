package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"pet-adoption-platform/internal/platform/apperrors"
	"pet-adoption-platform/internal/platform/httpx"
	"pet-adoption-platform/internal/platform/logger"
)

// Recover convierte un panic en 500 con el sobre de error estándar.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.FromContext(r.Context(), log).Error("panic recovered", map[string]any{
					"panic": fmt.Sprint(rec),
					"stack": string(debug.Stack()),
				})
				httpx.WriteError(r.Context(), log, w, apperrors.New(apperrors.CodeInternal, "panic"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
