package adoptions

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"pet-adoption-platform/internal/domain/pets"
	"pet-adoption-platform/internal/platform/apperrors"
	"pet-adoption-platform/internal/platform/notify"
	"pet-adoption-platform/internal/session"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = apperrors.New(apperrors.CodeValidation, "invalid input")
	ErrUnauthenticated = apperrors.New(apperrors.CodeUnauthorized, "you must be logged in")
	ErrForbidden       = apperrors.New(apperrors.CodeForbidden, "you can only manage requests for pets you have listed")
	ErrNotFound        = apperrors.New(apperrors.CodeNotFound, "adoption request not found")
	ErrBadState        = apperrors.New(apperrors.CodeStateConflict, "invalid state")

	// ErrStale lo devuelven los repositorios cuando el Commit llega tarde.
	ErrStale = apperrors.New(apperrors.CodeStateConflict, "adoption state changed concurrently")
)

const maxCommitAttempts = 3

// PetDirectory es lo que adoptions necesita de pets (lo implementa *pets.Service).
type PetDirectory interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error)
}

type Service struct {
	repo     Repository
	pets     PetDirectory
	notifier notify.Notifier
	now      func() time.Time
}

func NewService(repo Repository, petDir PetDirectory, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Service{
		repo:     repo,
		pets:     petDir,
		notifier: notifier,
		now:      time.Now,
	}
}

type ApplicantInput struct {
	Phone        string
	Address      string
	Reason       string
	Experience   string
	HomeType     string
	HasChildren  bool
	HasOtherPets bool
}

// Submit crea una solicitud pending y pasa la mascota a pending en un solo Commit.
// Varias solicitudes sobre la misma mascota dejan el status en pending (idempotente).
func (s *Service) Submit(ctx context.Context, sess *session.Session, petID string, in ApplicantInput) (Request, error) {
	if !sess.IsAuthenticated() {
		s.notifier.Notify(ctx, notify.Failure("Authentication Required", "You must be logged in to submit an adoption request."))
		return Request{}, ErrUnauthenticated
	}
	if strings.TrimSpace(in.Phone) == "" || strings.TrimSpace(in.Address) == "" || strings.TrimSpace(in.Reason) == "" {
		return Request{}, ErrInvalidInput
	}

	req, err := s.retryStale(func() (Request, error) {
		return s.submitOnce(ctx, sess, petID, in)
	})
	if err != nil {
		return Request{}, err
	}

	s.notifier.Notify(ctx, notify.Success("Adoption request submitted", "Your adoption request has been submitted successfully. We'll contact you soon."))
	return req, nil
}

func (s *Service) submitOnce(ctx context.Context, sess *session.Session, petID string, in ApplicantInput) (Request, error) {
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return Request{}, err
	}
	if p.Status == pets.StatusAdopted {
		s.notifier.Notify(ctx, notify.Failure("Not available", "This pet has already been adopted."))
		return Request{}, ErrBadState
	}

	now := s.now()
	principal := sess.Principal
	req := Request{
		ID:    uuid.NewString(),
		PetID: p.ID,
		Applicant: Applicant{
			UserID:       principal.UserID,
			Name:         principal.Name,
			Email:        principal.Email,
			Phone:        strings.TrimSpace(in.Phone),
			Address:      strings.TrimSpace(in.Address),
			Reason:       strings.TrimSpace(in.Reason),
			Experience:   strings.TrimSpace(in.Experience),
			HomeType:     strings.TrimSpace(in.HomeType),
			HasChildren:  in.HasChildren,
			HasOtherPets: in.HasOtherPets,
		},
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Commit(ctx, Commit{
		Request:       req,
		Insert:        true,
		PetID:         p.ID,
		PetStatus:     pets.StatusPending,
		FromPetStatus: p.Status,
		At:            now,
	}); err != nil {
		return Request{}, s.mapCommitErr(err)
	}
	return req, nil
}

// Decide aprueba o rechaza. Solo el dueño de la mascota; solo solicitudes pending.
// approved => mascota adopted; rejected => mascota vuelve a available
// (salvo que ya esté adopted por otra solicitud: adopted es terminal).
// Una solicitud inexistente no es error: no se hace nada y se devuelve Request{}.
func (s *Service) Decide(ctx context.Context, sess *session.Session, requestID string, status Status) (Request, error) {
	if status != StatusApproved && status != StatusRejected {
		return Request{}, ErrInvalidInput
	}
	if !sess.IsAuthenticated() {
		return Request{}, ErrUnauthenticated
	}

	req, err := s.retryStale(func() (Request, error) {
		return s.decideOnce(ctx, sess, requestID, status)
	})
	if err != nil || req.ID == "" {
		return req, err
	}

	if status == StatusApproved {
		s.notifier.Notify(ctx, notify.Success("Adoption approved", "The adoption request has been approved."))
	} else {
		s.notifier.Notify(ctx, notify.Success("Adoption rejected", "The adoption request has been rejected."))
	}
	return req, nil
}

func (s *Service) decideOnce(ctx context.Context, sess *session.Session, requestID string, status Status) (Request, error) {
	req, err := s.GetByID(ctx, requestID)
	if errors.Is(err, ErrNotFound) {
		return Request{}, nil
	}
	if err != nil {
		return Request{}, err
	}

	p, err := s.pets.GetByID(ctx, req.PetID)
	if err != nil {
		return Request{}, err
	}
	if p.OwnerUserID != sess.UserID() {
		s.notifier.Notify(ctx, notify.Failure("Unauthorized", "You can only manage requests for pets you have listed."))
		return Request{}, ErrForbidden
	}
	if req.Status != StatusPending {
		return Request{}, ErrBadState
	}

	petStatus := pets.StatusAvailable
	switch {
	case status == StatusApproved && p.Status == pets.StatusAdopted:
		return Request{}, ErrBadState
	case status == StatusApproved:
		petStatus = pets.StatusAdopted
	case p.Status == pets.StatusAdopted:
		petStatus = pets.StatusAdopted
	}

	now := s.now()
	req.Status = status
	req.UpdatedAt = now

	if err := s.repo.Commit(ctx, Commit{
		Request:       req,
		FromStatus:    StatusPending,
		PetID:         p.ID,
		PetStatus:     petStatus,
		FromPetStatus: p.Status,
		At:            now,
	}); err != nil {
		return Request{}, s.mapCommitErr(err)
	}
	return req, nil
}

// retryStale repite fn cuando otro Commit ganó la carrera: la relectura vuelve a
// evaluar las reglas sobre el estado nuevo.
func (s *Service) retryStale(fn func() (Request, error)) (Request, error) {
	for attempt := 1; ; attempt++ {
		req, err := fn()
		if !errors.Is(err, ErrStale) {
			return req, err
		}
		if attempt == maxCommitAttempts {
			return Request{}, ErrBadState
		}
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (Request, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Request{}, ErrNotFound
	}
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return Request{}, ErrNotFound
		}
		return Request{}, err
	}
	return req, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Request, error) {
	items, err := s.repo.ListByPet(ctx, strings.TrimSpace(petID))
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	return items, nil
}

func (s *Service) ListByApplicant(ctx context.Context, userID string) ([]Request, error) {
	items, err := s.repo.ListByApplicant(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	return items, nil
}

// ListForOwner devuelve las solicitudes sobre mascotas que publicó ownerUserID.
func (s *Service) ListForOwner(ctx context.Context, ownerUserID string) ([]Request, error) {
	listed, err := s.pets.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	out := make([]Request, 0)
	for _, p := range listed {
		items, err := s.repo.ListByPet(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *Service) mapCommitErr(err error) error {
	if errors.Is(err, pets.ErrNotFound) {
		return err
	}
	if apperrors.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

func sortNewestFirst(items []Request) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
