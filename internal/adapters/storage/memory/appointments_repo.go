package memory

import (
	"context"
	"strings"

	"pet-adoption-platform/internal/domain/appointments"
)

type appointmentRepo struct {
	s *Store
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return ErrIDRequired
	}
	if _, exists := r.s.appointments[a.ID]; exists {
		return ErrExists
	}
	r.s.appointments[a.ID] = a
	return nil
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.appointments[a.ID]; !exists {
		return appointments.ErrNotFound
	}
	r.s.appointments[a.ID] = a
	return nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

func (r *appointmentRepo) ListByUser(ctx context.Context, userID string) ([]appointments.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range r.s.appointments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}
