package memory

import (
	"context"
	"sort"
	"strings"

	"pet-adoption-platform/internal/domain/pets"
)

type petRepo struct {
	s *Store
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return ErrIDRequired
	}
	if _, exists := r.s.pets[p.ID]; exists {
		return ErrExists
	}
	r.s.pets[p.ID] = p
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.pets[p.ID]; !exists {
		return pets.ErrNotFound
	}
	r.s.pets[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.s.pets))
	for _, p := range r.s.pets {
		out = append(out, p)
	}
	sortPets(out)
	return out, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.s.pets {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	sortPets(out)
	return out, nil
}

// Delete borra la mascota y sus solicitudes bajo el mismo lock.
func (r *petRepo) Delete(ctx context.Context, id string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[id]; !ok {
		return 0, pets.ErrNotFound
	}
	delete(r.s.pets, id)

	removed := 0
	for reqID, req := range r.s.requests {
		if req.PetID == id {
			delete(r.s.requests, reqID)
			removed++
		}
	}
	return removed, nil
}

// Orden estable por created_at asc (el servicio reordena según la vista).
func sortPets(items []pets.Pet) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
