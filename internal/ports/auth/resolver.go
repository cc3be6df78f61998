package auth

import (
	"context"

	"pet-adoption-platform/internal/session"
)

// SessionResolver resuelve el bearer token (id de sesión) a una sesión persistida.
type SessionResolver interface {
	Resume(ctx context.Context, token string) (*session.Session, error)
}

// SessionStarter crea sesiones anónimas cuando el cliente todavía no tiene una.
type SessionStarter interface {
	Start(ctx context.Context) (*session.Session, error)
}
