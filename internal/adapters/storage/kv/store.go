package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"pet-adoption-platform/internal/domain/adoptions"
	"pet-adoption-platform/internal/domain/appointments"
	"pet-adoption-platform/internal/domain/pets"
	"pet-adoption-platform/internal/domain/shop"
	"pet-adoption-platform/internal/domain/users"
	"pet-adoption-platform/internal/platform/apperrors"
	"pet-adoption-platform/internal/session"

	"github.com/redis/go-redis/v9"
)

var (
	ErrNotFound   = apperrors.New(apperrors.CodeNotFound, "not found")
	ErrIDRequired = apperrors.New(apperrors.CodeValidation, "id required")
	ErrExists     = apperrors.New(apperrors.CodeConflict, "already exists")
)

// Claves lógicas; cada una guarda un único blob JSON que se reescribe completo.
const (
	keyUsers        = "users"
	keyPets         = "pets"
	keyRequests     = "adoptionRequests"
	keyProducts     = "products"
	keyAppointments = "appointments"
	prefixSession   = "currentUser:"
	prefixCart      = "cart:"
)

// Store persiste cada colección como un arreglo JSON bajo su clave.
// mu serializa los read-modify-write de este proceso; las escrituras
// correlacionadas van en un solo MSET.
type Store struct {
	mu     sync.Mutex
	db     cmdable
	ns     string
	closer func() error
}

func newStore(db cmdable, namespace string) *Store {
	return &Store{db: db, ns: strings.Trim(strings.TrimSpace(namespace), ":")}
}

func (s *Store) Users() users.Repository               { return &userRepo{s: s} }
func (s *Store) Sessions() session.Store               { return &sessionRepo{s: s} }
func (s *Store) Pets() pets.Repository                 { return &petRepo{s: s} }
func (s *Store) Adoptions() adoptions.Repository       { return &adoptionRepo{s: s} }
func (s *Store) Products() shop.ProductRepository      { return &productRepo{s: s} }
func (s *Store) Carts() shop.CartRepository            { return &cartRepo{s: s} }
func (s *Store) Appointments() appointments.Repository { return &appointmentRepo{s: s} }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx).Err()
}

func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

func (s *Store) key(name string) string {
	if s.ns == "" {
		return name
	}
	return s.ns + ":" + name
}

// load decodifica la clave en dst. Una clave ausente deja dst intacto
// y devuelve found=false.
func (s *Store) load(ctx context.Context, name string, dst any) (bool, error) {
	raw, err := s.db.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Wrap(apperrors.CodeDependency, err, "redis get "+name)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

// save escribe todas las claves en un solo MSET.
func (s *Store) save(ctx context.Context, values map[string]any) error {
	args := make([]any, 0, len(values)*2)
	for name, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		args = append(args, s.key(name), raw)
	}
	if err := s.db.MSet(ctx, args...).Err(); err != nil {
		return apperrors.Wrap(apperrors.CodeDependency, err, "redis mset")
	}
	return nil
}

func (s *Store) del(ctx context.Context, names ...string) error {
	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = s.key(n)
	}
	if err := s.db.Del(ctx, keys...).Err(); err != nil {
		return apperrors.Wrap(apperrors.CodeDependency, err, "redis del")
	}
	return nil
}

func (s *Store) loadPets(ctx context.Context) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	_, err := s.load(ctx, keyPets, &out)
	return out, err
}

func (s *Store) loadRequests(ctx context.Context) ([]adoptions.Request, error) {
	out := make([]adoptions.Request, 0)
	_, err := s.load(ctx, keyRequests, &out)
	return out, err
}

func (s *Store) loadUsers(ctx context.Context) ([]users.User, error) {
	out := make([]users.User, 0)
	_, err := s.load(ctx, keyUsers, &out)
	return out, err
}

func (s *Store) loadProducts(ctx context.Context) ([]shop.Product, error) {
	out := make([]shop.Product, 0)
	_, err := s.load(ctx, keyProducts, &out)
	return out, err
}

func (s *Store) loadAppointments(ctx context.Context) ([]appointments.Appointment, error) {
	out := make([]appointments.Appointment, 0)
	_, err := s.load(ctx, keyAppointments, &out)
	return out, err
}
