package seed

import (
	"context"
	"fmt"
	"time"

	"pet-adoption-platform/internal/domain/appointments"
	"pet-adoption-platform/internal/domain/pets"
	"pet-adoption-platform/internal/domain/shop"
	"pet-adoption-platform/internal/domain/users"
	"pet-adoption-platform/internal/platform/apperrors"
	"pet-adoption-platform/internal/platform/logger"

	"golang.org/x/crypto/bcrypt"
)

// Target son los repositorios a sembrar. Campos nil se saltan.
type Target struct {
	Users        users.Repository
	Pets         pets.Repository
	Products     shop.ProductRepository
	Appointments appointments.Repository
}

// Report cuenta lo que se creó (lo existente no se toca).
type Report struct {
	Users        int `json:"users"`
	Pets         int `json:"pets"`
	Products     int `json:"products"`
	Appointments int `json:"appointments"`
}

// Apply es idempotente: solo crea entradas cuyo id todavía no existe.
func Apply(ctx context.Context, t Target, now time.Time, bcryptCost int, log logger.Logger) (Report, error) {
	if log == nil {
		log = logger.Nop()
	}
	var rep Report

	if t.Users != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcryptCost)
		if err != nil {
			return rep, fmt.Errorf("seed: hash demo password: %w", err)
		}
		for _, d := range DemoUsers() {
			u := users.User{
				ID:           d.ID,
				Name:         d.Name,
				Email:        users.NormalizeEmail(d.Email),
				PasswordHash: string(hash),
				AvatarURL:    users.AvatarURL(d.Name),
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			created, err := createMissing(ctx, func(ctx context.Context) error {
				_, err := t.Users.GetByID(ctx, u.ID)
				return err
			}, func(ctx context.Context) error {
				return t.Users.Create(ctx, u)
			})
			if err != nil {
				return rep, fmt.Errorf("seed: user %s: %w", u.ID, err)
			}
			if created {
				rep.Users++
			}
		}
	}

	if t.Pets != nil {
		for _, p := range Pets(now) {
			created, err := createMissing(ctx, func(ctx context.Context) error {
				_, err := t.Pets.GetByID(ctx, p.ID)
				return err
			}, func(ctx context.Context) error {
				return t.Pets.Create(ctx, p)
			})
			if err != nil {
				return rep, fmt.Errorf("seed: pet %s: %w", p.ID, err)
			}
			if created {
				rep.Pets++
			}
		}
	}

	if t.Products != nil {
		for _, p := range Products() {
			created, err := createMissing(ctx, func(ctx context.Context) error {
				_, err := t.Products.GetByID(ctx, p.ID)
				return err
			}, func(ctx context.Context) error {
				return t.Products.Create(ctx, p)
			})
			if err != nil {
				return rep, fmt.Errorf("seed: product %s: %w", p.ID, err)
			}
			if created {
				rep.Products++
			}
		}
	}

	if t.Appointments != nil {
		for _, a := range Appointments(now) {
			created, err := createMissing(ctx, func(ctx context.Context) error {
				_, err := t.Appointments.GetByID(ctx, a.ID)
				return err
			}, func(ctx context.Context) error {
				return t.Appointments.Create(ctx, a)
			})
			if err != nil {
				return rep, fmt.Errorf("seed: appointment %s: %w", a.ID, err)
			}
			if created {
				rep.Appointments++
			}
		}
	}

	log.Info("seed applied", map[string]any{
		"users":        rep.Users,
		"pets":         rep.Pets,
		"products":     rep.Products,
		"appointments": rep.Appointments,
	})
	return rep, nil
}

func createMissing(ctx context.Context, get, create func(context.Context) error) (bool, error) {
	err := get(ctx)
	if err == nil {
		return false, nil
	}
	if !apperrors.IsNotFound(err) {
		return false, err
	}
	if err := create(ctx); err != nil {
		return false, err
	}
	return true, nil
}
