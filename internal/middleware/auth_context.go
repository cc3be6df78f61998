package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-adoption-platform/internal/ports/auth"
	"pet-adoption-platform/internal/session"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionHeader devuelve al cliente el id de sesión que debe mandar como Bearer.
const SessionHeader = "X-Session-ID"

// AuthContext:
// - Si viene Bearer token => intenta Resume() y setea la sesión en el contexto.
// - Token desconocido o ausente => el request sigue sin sesión; los handlers deciden 401.
func AuthContext(resolver auth.SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" || resolver == nil {
				next.ServeHTTP(w, r)
				return
			}

			s, err := resolver.Resume(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(SessionHeader, s.ID)
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func GetSession(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*session.Session)
	return s, ok && s != nil
}

// EnsureSession devuelve la sesión del request o arranca una anónima
// (register, login y carrito funcionan sin sesión previa).
func EnsureSession(w http.ResponseWriter, r *http.Request, starter auth.SessionStarter) (*session.Session, error) {
	if s, ok := GetSession(r.Context()); ok {
		return s, nil
	}
	s, err := starter.Start(r.Context())
	if err != nil {
		return nil, err
	}
	w.Header().Set(SessionHeader, s.ID)
	return s, nil
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
