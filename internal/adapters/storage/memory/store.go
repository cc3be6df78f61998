package memory

import (
	"sync"

	"pet-adoption-platform/internal/domain/adoptions"
	"pet-adoption-platform/internal/domain/appointments"
	"pet-adoption-platform/internal/domain/pets"
	"pet-adoption-platform/internal/domain/shop"
	"pet-adoption-platform/internal/domain/users"
	"pet-adoption-platform/internal/platform/apperrors"
	"pet-adoption-platform/internal/session"
)

var (
	ErrNotFound   = apperrors.New(apperrors.CodeNotFound, "not found")
	ErrIDRequired = apperrors.New(apperrors.CodeValidation, "id required")
	ErrExists     = apperrors.New(apperrors.CodeConflict, "already exists")
)

// Store guarda todas las colecciones bajo un solo lock, así las escrituras
// correlacionadas (solicitud + mascota, mascota + cascada) son atómicas.
type Store struct {
	mu sync.RWMutex

	users        map[string]users.User
	sessions     map[string]session.Session
	pets         map[string]pets.Pet
	requests     map[string]adoptions.Request
	products     map[string]shop.Product
	carts        map[string][]shop.Line
	appointments map[string]appointments.Appointment
}

func New() *Store {
	return &Store{
		users:        make(map[string]users.User),
		sessions:     make(map[string]session.Session),
		pets:         make(map[string]pets.Pet),
		requests:     make(map[string]adoptions.Request),
		products:     make(map[string]shop.Product),
		carts:        make(map[string][]shop.Line),
		appointments: make(map[string]appointments.Appointment),
	}
}

func (s *Store) Users() users.Repository               { return &userRepo{s: s} }
func (s *Store) Sessions() session.Store               { return &sessionRepo{s: s} }
func (s *Store) Pets() pets.Repository                 { return &petRepo{s: s} }
func (s *Store) Adoptions() adoptions.Repository       { return &adoptionRepo{s: s} }
func (s *Store) Products() shop.ProductRepository      { return &productRepo{s: s} }
func (s *Store) Carts() shop.CartRepository            { return &cartRepo{s: s} }
func (s *Store) Appointments() appointments.Repository { return &appointmentRepo{s: s} }
