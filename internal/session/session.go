package session

import (
	"context"
	"strings"
	"time"

	"pet-adoption-platform/internal/platform/apperrors"

	"github.com/google/uuid"
)

// State sigue el ciclo uninitialized -> loaded -> authenticated -> cleared.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoaded        State = "loaded"
	StateAuthenticated State = "authenticated"
	StateCleared       State = "cleared"
)

var ErrNotFound = apperrors.New(apperrors.CodeUnauthorized, "session not found")

// Principal es la vista pública del usuario autenticado; nunca lleva password.
type Principal struct {
	UserID    string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type Session struct {
	ID        string     `json:"id"`
	State     State      `json:"state"`
	Principal *Principal `json:"principal,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.State == StateAuthenticated && s.Principal != nil && s.Principal.UserID != ""
}

// UserID devuelve "" si la sesión no está autenticada.
func (s *Session) UserID() string {
	if !s.IsAuthenticated() {
		return ""
	}
	return s.Principal.UserID
}

func (s *Session) Authenticate(p Principal, now time.Time) {
	cp := p
	s.Principal = &cp
	s.State = StateAuthenticated
	s.UpdatedAt = now
}

func (s *Session) Clear(now time.Time) {
	s.Principal = nil
	s.State = StateCleared
	s.UpdatedAt = now
}

type Store interface {
	Load(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, s Session) error
	Delete(ctx context.Context, id string) error
}

type Manager struct {
	store Store
	now   func() time.Time
}

func NewManager(store Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// Start crea una sesión anónima ya persistida (estado loaded).
func (m *Manager) Start(ctx context.Context) (*Session, error) {
	now := m.now()
	s := Session{
		ID:        uuid.NewString(),
		State:     StateLoaded,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *Manager) Resume(ctx context.Context, id string) (*Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	s, err := m.store.Load(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if s.State == StateUninitialized || s.State == "" {
		s.State = StateLoaded
	}
	return &s, nil
}

func (m *Manager) Save(ctx context.Context, s *Session) error {
	if s == nil {
		return ErrNotFound
	}
	return m.store.Save(ctx, *s)
}

func (m *Manager) Destroy(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}

func (m *Manager) Now() time.Time {
	return m.now()
}
