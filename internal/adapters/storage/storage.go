package storage

import (
	"context"
	"fmt"

	"pet-adoption-platform/internal/adapters/storage/kv"
	"pet-adoption-platform/internal/adapters/storage/memory"
	"pet-adoption-platform/internal/adapters/storage/relational"
	"pet-adoption-platform/internal/config"
	"pet-adoption-platform/internal/domain/adoptions"
	"pet-adoption-platform/internal/domain/appointments"
	"pet-adoption-platform/internal/domain/pets"
	"pet-adoption-platform/internal/domain/shop"
	"pet-adoption-platform/internal/domain/users"
	"pet-adoption-platform/internal/platform/logger"
	"pet-adoption-platform/internal/seed"
	"pet-adoption-platform/internal/session"

	"go.uber.org/multierr"
)

// backend es lo que exponen los tres adaptadores.
type backend interface {
	Users() users.Repository
	Sessions() session.Store
	Pets() pets.Repository
	Adoptions() adoptions.Repository
	Products() shop.ProductRepository
	Carts() shop.CartRepository
	Appointments() appointments.Repository
}

// Repositories agrupa los repositorios del driver elegido.
type Repositories struct {
	Driver string

	Users        users.Repository
	Sessions     session.Store
	Pets         pets.Repository
	Adoptions    adoptions.Repository
	Products     shop.ProductRepository
	Carts        shop.CartRepository
	Appointments appointments.Repository

	closers []func() error
}

// Open elige el adaptador según cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config, log logger.Logger) (*Repositories, error) {
	if log == nil {
		log = logger.Nop()
	}
	driver := cfg.Storage.Driver

	switch driver {
	case config.DriverMemory, "":
		return FromMemory(memory.New()), nil

	case config.DriverRedis:
		s, err := kv.Open(ctx, cfg.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("open redis storage: %w", err)
		}
		return wrap(driver, s, s.Close), nil

	case config.DriverPostgres:
		s, err := relational.OpenPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("open postgres storage: %w", err)
		}
		return wrap(driver, s, s.Close), nil

	case config.DriverSQLite:
		s, err := relational.OpenSQLite(ctx, cfg.DB.SQLiteDSN(), log)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return wrap(driver, s, s.Close), nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", driver)
}

// FromMemory envuelve un store en memoria ya construido (tests, modo dev).
func FromMemory(s *memory.Store) *Repositories {
	return wrap(config.DriverMemory, s)
}

func wrap(driver string, b backend, closers ...func() error) *Repositories {
	return &Repositories{
		Driver:       driver,
		Users:        b.Users(),
		Sessions:     b.Sessions(),
		Pets:         b.Pets(),
		Adoptions:    b.Adoptions(),
		Products:     b.Products(),
		Carts:        b.Carts(),
		Appointments: b.Appointments(),
		closers:      closers,
	}
}

// SeedTarget expone los repositorios que siembra el paquete seed.
func (r *Repositories) SeedTarget() seed.Target {
	return seed.Target{
		Users:        r.Users,
		Pets:         r.Pets,
		Products:     r.Products,
		Appointments: r.Appointments,
	}
}

func (r *Repositories) Close() error {
	var err error
	for _, c := range r.closers {
		err = multierr.Append(err, c())
	}
	return err
}
