package middleware

import (
	"net/http"
	"time"

	"pet-adoption-platform/internal/platform/logger"
	"pet-adoption-platform/internal/platform/notify"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger adjunta un logger con request_id al contexto y loguea al terminar.
// Debe ir después de chimw.RequestID.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := log.With(map[string]any{"request_id": chimw.GetReqID(r.Context())})
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(logger.WithContext(r.Context(), reqLog)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			reqLog.Info("http request", map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}

// Notices abre un colector de avisos por request; httpx los agrega a la respuesta.
func Notices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := notify.WithRecorder(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
