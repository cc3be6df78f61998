package memory

import (
	"context"
	"sort"

	"pet-adoption-platform/internal/domain/adoptions"
	"pet-adoption-platform/internal/domain/pets"
)

type adoptionRepo struct {
	s *Store
}

func (r *adoptionRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	req, ok := r.s.requests[id]
	if !ok {
		return adoptions.Request{}, adoptions.ErrNotFound
	}
	return req, nil
}

func (r *adoptionRepo) ListByPet(ctx context.Context, petID string) ([]adoptions.Request, error) {
	return r.filter(func(req adoptions.Request) bool { return req.PetID == petID }), nil
}

func (r *adoptionRepo) ListByApplicant(ctx context.Context, userID string) ([]adoptions.Request, error) {
	return r.filter(func(req adoptions.Request) bool { return req.Applicant.UserID == userID }), nil
}

// Commit valida todo antes de escribir: si falta la mascota o la solicitud
// no se toca ninguna de las dos colecciones.
func (r *adoptionRepo) Commit(ctx context.Context, c adoptions.Commit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if c.Request.ID == "" {
		return ErrIDRequired
	}
	p, ok := r.s.pets[c.PetID]
	if !ok {
		return pets.ErrNotFound
	}
	current, exists := r.s.requests[c.Request.ID]
	switch {
	case c.Insert && exists:
		return ErrExists
	case !c.Insert && !exists:
		return adoptions.ErrNotFound
	case c.Stale(current.Status, p.Status):
		return adoptions.ErrStale
	}

	p.Status = c.PetStatus
	p.UpdatedAt = c.At
	r.s.pets[p.ID] = p
	r.s.requests[c.Request.ID] = c.Request
	return nil
}

func (r *adoptionRepo) filter(keep func(adoptions.Request) bool) []adoptions.Request {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]adoptions.Request, 0)
	for _, req := range r.s.requests {
		if keep(req) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
