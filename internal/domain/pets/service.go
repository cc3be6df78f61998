package pets

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"pet-adoption-platform/internal/platform/apperrors"
	"pet-adoption-platform/internal/platform/notify"
	"pet-adoption-platform/internal/session"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = apperrors.New(apperrors.CodeValidation, "invalid input")
	ErrUnauthenticated = apperrors.New(apperrors.CodeUnauthorized, "you must be logged in")
	ErrForbidden       = apperrors.New(apperrors.CodeForbidden, "you can only manage pets you have listed")
	ErrNotFound        = apperrors.New(apperrors.CodeNotFound, "pet not found")
)

type Service struct {
	repo     Repository
	notifier notify.Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

type CreateInput struct {
	Name        string
	Type        Type
	Breed       string
	Age         int
	Gender      Gender
	Size        Size
	Description string
	Location    string
	ImageURL    string
}

func (s *Service) Add(ctx context.Context, sess *session.Session, in CreateInput) (Pet, error) {
	if !sess.IsAuthenticated() {
		s.notifier.Notify(ctx, notify.Failure("Authentication Required", "You must be logged in to add a pet."))
		return Pet{}, ErrUnauthenticated
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(string(in.Type)) == "" || in.Age < 0 {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: sess.UserID(),
		Name:        strings.TrimSpace(in.Name),
		Type:        Type(strings.TrimSpace(string(in.Type))),
		Breed:       strings.TrimSpace(in.Breed),
		Age:         in.Age,
		Gender:      Gender(strings.TrimSpace(string(in.Gender))),
		Size:        Size(strings.TrimSpace(string(in.Size))),
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Status:      StatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	s.notifier.Notify(ctx, notify.Success("Pet added successfully", fmt.Sprintf("%s has been added to the adoption list.", p.Name)))
	return p, nil
}

// Patch: nil = no tocar. Status no es editable aquí; solo lo mueve el flujo de adopción.
type Patch struct {
	Name        *string
	Type        *Type
	Breed       *string
	Age         *int
	Gender      *Gender
	Size        *Size
	Description *string
	Location    *string
	ImageURL    *string
}

// Update aplica el merge-patch sin chequear dueño; el handler HTTP exige al dueño.
// Un id que no existe no es error: no cambia nada y devuelve Pet{}.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Pet{}, nil
	}
	if err != nil {
		return Pet{}, err
	}

	if patch.Name != nil {
		v := strings.TrimSpace(*patch.Name)
		if v == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = v
	}
	if patch.Type != nil {
		v := Type(strings.TrimSpace(string(*patch.Type)))
		if v == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Type = v
	}
	if patch.Age != nil {
		if *patch.Age < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Age = *patch.Age
	}
	if patch.Breed != nil {
		p.Breed = strings.TrimSpace(*patch.Breed)
	}
	if patch.Gender != nil {
		p.Gender = Gender(strings.TrimSpace(string(*patch.Gender)))
	}
	if patch.Size != nil {
		p.Size = Size(strings.TrimSpace(string(*patch.Size)))
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Location != nil {
		p.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*patch.ImageURL)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		if apperrors.IsNotFound(err) {
			return Pet{}, nil
		}
		return Pet{}, err
	}
	s.notifier.Notify(ctx, notify.Success("Pet updated", "The pet information has been updated successfully."))
	return p, nil
}

// Delete exige que el caller sea quien publicó la mascota. Borra en cascada
// sus solicitudes de adopción y devuelve cuántas eran. Sin la mascota no hace nada.
func (s *Service) Delete(ctx context.Context, sess *session.Session, id string) (int, error) {
	if !sess.IsAuthenticated() {
		s.notifier.Notify(ctx, notify.Failure("Authentication Required", "You must be logged in to remove a pet."))
		return 0, ErrUnauthenticated
	}

	p, err := s.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if p.OwnerUserID != sess.UserID() {
		s.notifier.Notify(ctx, notify.Failure("Unauthorized", "You can only delete pets you have listed."))
		return 0, ErrForbidden
	}

	removed, err := s.repo.Delete(ctx, p.ID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	s.notifier.Notify(ctx, notify.Success("Pet removed", "The pet has been removed from the adoption list."))
	return removed, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return Pet{}, ErrNotFound
		}
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// List devuelve todas las mascotas, más recientes primero.
func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.Search(ctx, Filter{})
}

// Filter: campos vacíos/nil no filtran.
type Filter struct {
	Query    string // nombre, raza o descripción
	Type     Type
	Breed    string // substring
	Gender   Gender
	MinAge   *int
	MaxAge   *int
	Size     Size
	Status   Status
	Location string // substring
}

func (s *Service) Search(ctx context.Context, f Filter) ([]Pet, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Pet, 0, len(items))
	for _, p := range items {
		if f.matches(p) {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f Filter) matches(p Pet) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !containsFold(p.Name, q) && !containsFold(p.Breed, q) && !containsFold(p.Description, q) {
			return false
		}
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if b := strings.ToLower(strings.TrimSpace(f.Breed)); b != "" && !containsFold(p.Breed, b) {
		return false
	}
	if f.Gender != "" && p.Gender != f.Gender {
		return false
	}
	if f.MinAge != nil && p.Age < *f.MinAge {
		return false
	}
	if f.MaxAge != nil && p.Age > *f.MaxAge {
		return false
	}
	if f.Size != "" && p.Size != f.Size {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if l := strings.ToLower(strings.TrimSpace(f.Location)); l != "" && !containsFold(p.Location, l) {
		return false
	}
	return true
}

// needle ya viene en minúsculas.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
