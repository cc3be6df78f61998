package kv

import (
	"context"
	"sort"
	"strings"

	"pet-adoption-platform/internal/domain/adoptions"
	"pet-adoption-platform/internal/domain/appointments"
	"pet-adoption-platform/internal/domain/pets"
	"pet-adoption-platform/internal/domain/shop"
	"pet-adoption-platform/internal/domain/users"
	"pet-adoption-platform/internal/session"
)

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	if strings.TrimSpace(u.ID) == "" {
		return ErrIDRequired
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.s.loadUsers(ctx)
	if err != nil {
		return err
	}
	for _, existing := range all {
		if existing.ID == u.ID {
			return ErrExists
		}
		if existing.Email == u.Email {
			return users.ErrDuplicateEmail
		}
	}
	return r.s.save(ctx, map[string]any{keyUsers: append(all, u)})
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.s.loadUsers(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i, existing := range all {
		if existing.ID == u.ID {
			idx = i
			continue
		}
		if existing.Email == u.Email {
			return users.ErrDuplicateEmail
		}
	}
	if idx < 0 {
		return users.ErrNotFound
	}
	all[idx] = u
	return r.s.save(ctx, map[string]any{keyUsers: all})
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.find(ctx, func(u users.User) bool { return u.ID == id })
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.find(ctx, func(u users.User) bool { return u.Email == email })
}

func (r *userRepo) List(ctx context.Context) ([]users.User, error) {
	all, err := r.s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return all, nil
}

func (r *userRepo) find(ctx context.Context, match func(users.User) bool) (users.User, error) {
	all, err := r.s.loadUsers(ctx)
	if err != nil {
		return users.User{}, err
	}
	for _, u := range all {
		if match(u) {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

// sessionRepo: una clave currentUser:<id> por sesión.
type sessionRepo struct{ s *Store }

func (r *sessionRepo) Load(ctx context.Context, id string) (session.Session, error) {
	var sess session.Session
	found, err := r.s.load(ctx, prefixSession+id, &sess)
	if err != nil {
		return session.Session{}, err
	}
	if !found {
		return session.Session{}, ErrNotFound
	}
	return sess, nil
}

func (r *sessionRepo) Save(ctx context.Context, sess session.Session) error {
	if sess.ID == "" {
		return ErrIDRequired
	}
	return r.s.save(ctx, map[string]any{prefixSession + sess.ID: sess})
}

// Delete también borra el carrito de la sesión.
func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	return r.s.del(ctx, prefixSession+id, prefixCart+id)
}

type petRepo struct{ s *Store }

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrIDRequired
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.s.loadPets(ctx)
	if err != nil {
		return err
	}
	if petIndex(all, p.ID) >= 0 {
		return ErrExists
	}
	return r.s.save(ctx, map[string]any{keyPets: append(all, p)})
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.s.loadPets(ctx)
	if err != nil {
		return err
	}
	idx := petIndex(all, p.ID)
	if idx < 0 {
		return pets.ErrNotFound
	}
	all[idx] = p
	return r.s.save(ctx, map[string]any{keyPets: all})
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	all, err := r.s.loadPets(ctx)
	if err != nil {
		return pets.Pet{}, err
	}
	if idx := petIndex(all, id); idx >= 0 {
		return all[idx], nil
	}
	return pets.Pet{}, pets.ErrNotFound
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	all, err := r.s.loadPets(ctx)
	if err != nil {
		return nil, err
	}
	sortPets(all)
	return all, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	all, err := r.s.loadPets(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]pets.Pet, 0)
	for _, p := range all {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	sortPets(out)
	return out, nil
}

// Delete reescribe pets y adoptionRequests en el mismo MSET.
func (r *petRepo) Delete(ctx context.Context, id string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.s.loadPets(ctx)
	if err != nil {
		return 0, err
	}
	idx := petIndex(all, id)
	if idx < 0 {
		return 0, pets.ErrNotFound
	}
	reqs, err := r.s.loadRequests(ctx)
	if err != nil {
		return 0, err
	}

	kept := make([]adoptions.Request, 0, len(reqs))
	for _, req := range reqs {
		if req.PetID != id {
			kept = append(kept, req)
		}
	}
	all = append(all[:idx], all[idx+1:]...)

	if err := r.s.save(ctx, map[string]any{keyPets: all, keyRequests: kept}); err != nil {
		return 0, err
	}
	return len(reqs) - len(kept), nil
}

func petIndex(all []pets.Pet, id string) int {
	for i, p := range all {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func sortPets(items []pets.Pet) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

type adoptionRepo struct{ s *Store }

func (r *adoptionRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	reqs, err := r.s.loadRequests(ctx)
	if err != nil {
		return adoptions.Request{}, err
	}
	for _, req := range reqs {
		if req.ID == id {
			return req, nil
		}
	}
	return adoptions.Request{}, adoptions.ErrNotFound
}

func (r *adoptionRepo) ListByPet(ctx context.Context, petID string) ([]adoptions.Request, error) {
	return r.filter(ctx, func(req adoptions.Request) bool { return req.PetID == petID })
}

func (r *adoptionRepo) ListByApplicant(ctx context.Context, userID string) ([]adoptions.Request, error) {
	return r.filter(ctx, func(req adoptions.Request) bool { return req.Applicant.UserID == userID })
}

// Commit valida contra las dos colecciones y las reescribe en un solo MSET.
func (r *adoptionRepo) Commit(ctx context.Context, c adoptions.Commit) error {
	if c.Request.ID == "" {
		return ErrIDRequired
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.s.loadPets(ctx)
	if err != nil {
		return err
	}
	petIdx := petIndex(all, c.PetID)
	if petIdx < 0 {
		return pets.ErrNotFound
	}
	reqs, err := r.s.loadRequests(ctx)
	if err != nil {
		return err
	}
	reqIdx := -1
	for i, req := range reqs {
		if req.ID == c.Request.ID {
			reqIdx = i
			break
		}
	}
	switch {
	case c.Insert && reqIdx >= 0:
		return ErrExists
	case !c.Insert && reqIdx < 0:
		return adoptions.ErrNotFound
	}
	var current adoptions.Status
	if reqIdx >= 0 {
		current = reqs[reqIdx].Status
	}
	if c.Stale(current, all[petIdx].Status) {
		return adoptions.ErrStale
	}

	if c.Insert {
		reqs = append(reqs, c.Request)
	} else {
		reqs[reqIdx] = c.Request
	}
	all[petIdx].Status = c.PetStatus
	all[petIdx].UpdatedAt = c.At

	return r.s.save(ctx, map[string]any{keyPets: all, keyRequests: reqs})
}

func (r *adoptionRepo) filter(ctx context.Context, keep func(adoptions.Request) bool) ([]adoptions.Request, error) {
	reqs, err := r.s.loadRequests(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]adoptions.Request, 0)
	for _, req := range reqs {
		if keep(req) {
			out = append(out, req)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type productRepo struct{ s *Store }

func (r *productRepo) Create(ctx context.Context, p shop.Product) error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrIDRequired
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.s.loadProducts(ctx)
	if err != nil {
		return err
	}
	for _, existing := range all {
		if existing.ID == p.ID {
			return ErrExists
		}
	}
	return r.s.save(ctx, map[string]any{keyProducts: append(all, p)})
}

func (r *productRepo) GetByID(ctx context.Context, id string) (shop.Product, error) {
	all, err := r.s.loadProducts(ctx)
	if err != nil {
		return shop.Product{}, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return shop.Product{}, shop.ErrNotFound
}

func (r *productRepo) List(ctx context.Context) ([]shop.Product, error) {
	return r.s.loadProducts(ctx)
}

type cartRepo struct{ s *Store }

func (r *cartRepo) Load(ctx context.Context, cartID string) ([]shop.Line, error) {
	lines := make([]shop.Line, 0)
	if _, err := r.s.load(ctx, prefixCart+cartID, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *cartRepo) Save(ctx context.Context, cartID string, lines []shop.Line) error {
	if len(lines) == 0 {
		return r.s.del(ctx, prefixCart+cartID)
	}
	return r.s.save(ctx, map[string]any{prefixCart + cartID: lines})
}

type appointmentRepo struct{ s *Store }

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrIDRequired
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.s.loadAppointments(ctx)
	if err != nil {
		return err
	}
	for _, existing := range all {
		if existing.ID == a.ID {
			return ErrExists
		}
	}
	return r.s.save(ctx, map[string]any{keyAppointments: append(all, a)})
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.s.loadAppointments(ctx)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == a.ID {
			all[i] = a
			return r.s.save(ctx, map[string]any{keyAppointments: all})
		}
	}
	return appointments.ErrNotFound
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	all, err := r.s.loadAppointments(ctx)
	if err != nil {
		return appointments.Appointment{}, err
	}
	for _, a := range all {
		if a.ID == id {
			return a, nil
		}
	}
	return appointments.Appointment{}, appointments.ErrNotFound
}

func (r *appointmentRepo) ListByUser(ctx context.Context, userID string) ([]appointments.Appointment, error) {
	all, err := r.s.loadAppointments(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]appointments.Appointment, 0)
	for _, a := range all {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}
