package appointments

import (
	"context"
	"errors"
	"fmt"
	"regexp"
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
	ErrUnauthenticated = apperrors.New(apperrors.CodeUnauthorized, "please log in to book an appointment")
	ErrForbidden       = apperrors.New(apperrors.CodeForbidden, "you can only cancel your own appointments")
	ErrNotFound        = apperrors.New(apperrors.CodeNotFound, "appointment not found")
	ErrServiceNotFound = apperrors.New(apperrors.CodeNotFound, "service not found")
	ErrBadState        = apperrors.New(apperrors.CodeStateConflict, "appointment can no longer be cancelled")
)

const dateLayout = "2006-01-02"

var timeOfDay = regexp.MustCompile(`(?i)^(0?[1-9]|1[0-2]):[0-5][0-9] (AM|PM)$`)

type Service struct {
	repo     Repository
	catalog  *Catalog
	notifier notify.Notifier
	now      func() time.Time
}

func NewService(repo Repository, catalog *Catalog, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if catalog == nil {
		catalog = NewCatalog()
	}
	return &Service{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
		now:      time.Now,
	}
}

type BookInput struct {
	PetName   string
	ServiceID string
	Date      string // YYYY-MM-DD o RFC3339
	Time      string
	Notes     string
}

func (s *Service) Book(ctx context.Context, sess *session.Session, in BookInput) (Appointment, error) {
	if !sess.IsAuthenticated() {
		s.notifier.Notify(ctx, notify.Failure("Login Required", "Please log in to book an appointment."))
		return Appointment{}, ErrUnauthenticated
	}

	details := map[string]string{}
	petName := strings.TrimSpace(in.PetName)
	if petName == "" {
		details["pet_name"] = "Pet name is required."
	}
	svc, ok := s.catalog.ByID(strings.TrimSpace(in.ServiceID))
	if !ok {
		details["service_id"] = "Service is required."
	}
	date, err := parseDate(in.Date)
	switch {
	case err != nil:
		details["date"] = "Date is required."
	case date.Before(dayOf(s.now())):
		details["date"] = "Date cannot be in the past."
	}
	tod := strings.TrimSpace(in.Time)
	if !timeOfDay.MatchString(tod) {
		details["time"] = "Invalid time format (e.g., 10:30 AM)."
	}
	if len(details) > 0 {
		return Appointment{}, ErrInvalidInput.WithDetails(details)
	}

	now := s.now()
	a := Appointment{
		ID:        uuid.NewString(),
		UserID:    sess.UserID(),
		PetName:   petName,
		ServiceID: svc.ID,
		Date:      date,
		Time:      strings.ToUpper(tod),
		Notes:     strings.TrimSpace(in.Notes),
		Status:    StatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}

	s.notifier.Notify(ctx, notify.Success("Appointment Booked",
		fmt.Sprintf("Your appointment for %s on %s is confirmed.", svc.Name, date.Format("1/2/2006"))))
	return a, nil
}

// Cancel es soft: la cita queda en la colección con status Cancelled.
// Cancelar dos veces no es error; una cita Completed no se puede cancelar.
// Un id desconocido tampoco es error: no hace nada, sin aviso, y devuelve Appointment{}.
func (s *Service) Cancel(ctx context.Context, sess *session.Session, id string) (Appointment, error) {
	if !sess.IsAuthenticated() {
		return Appointment{}, ErrUnauthenticated
	}

	a, err := s.get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Appointment{}, nil
	}
	if err != nil {
		return Appointment{}, err
	}
	if a.UserID != sess.UserID() {
		s.notifier.Notify(ctx, notify.Failure("Unauthorized", "You can only cancel your own appointments."))
		return Appointment{}, ErrForbidden
	}

	switch a.Status {
	case StatusCancelled:
		return a, nil
	case StatusCompleted:
		return Appointment{}, ErrBadState
	}

	a.Status = StatusCancelled
	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		if apperrors.IsNotFound(err) {
			return Appointment{}, nil
		}
		return Appointment{}, err
	}

	s.notifier.Notify(ctx, notify.Success("Appointment Cancelled", "Your appointment has been cancelled."))
	return a, nil
}

// GetForUser devuelve la cita solo a su dueño.
func (s *Service) GetForUser(ctx context.Context, sess *session.Session, id string) (Appointment, error) {
	if !sess.IsAuthenticated() {
		return Appointment{}, ErrUnauthenticated
	}
	a, err := s.get(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if a.UserID != sess.UserID() {
		return Appointment{}, ErrForbidden
	}
	return a, nil
}

// ListForUser: citas del usuario de la sesión, fecha descendente. Sin sesión, lista vacía.
func (s *Service) ListForUser(ctx context.Context, sess *session.Session) ([]Appointment, error) {
	if !sess.IsAuthenticated() {
		return []Appointment{}, nil
	}
	items, err := s.repo.ListByUser(ctx, sess.UserID())
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	return items, nil
}

func (s *Service) Services() []Treatment {
	return s.catalog.All()
}

func (s *Service) ServiceByID(id string) (Treatment, error) {
	svc, ok := s.catalog.ByID(strings.TrimSpace(id))
	if !ok {
		return Treatment{}, ErrServiceNotFound
	}
	return svc, nil
}

// Resolve sigue la referencia ServiceID de la cita.
func (s *Service) Resolve(a Appointment) (Treatment, bool) {
	return s.catalog.ByID(a.ServiceID)
}

func (s *Service) get(ctx context.Context, id string) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrNotFound
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return Appointment{}, ErrNotFound
		}
		return Appointment{}, err
	}
	return a, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return dayOf(t), nil
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
