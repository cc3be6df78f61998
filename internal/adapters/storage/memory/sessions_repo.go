package memory

import (
	"context"

	"pet-adoption-platform/internal/session"
)

type sessionRepo struct {
	s *Store
}

func (r *sessionRepo) Load(ctx context.Context, id string) (session.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sess, ok := r.s.sessions[id]
	if !ok {
		return session.Session{}, ErrNotFound
	}
	return copySession(sess), nil
}

func (r *sessionRepo) Save(ctx context.Context, sess session.Session) error {
	if sess.ID == "" {
		return ErrIDRequired
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.sessions[sess.ID] = copySession(sess)
	return nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.sessions, id)
	delete(r.s.carts, id)
	return nil
}

// El Principal es puntero: se copia para que nadie mute el guardado.
func copySession(s session.Session) session.Session {
	if s.Principal != nil {
		p := *s.Principal
		s.Principal = &p
	}
	return s
}
