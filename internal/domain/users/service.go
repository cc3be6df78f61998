package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption-platform/internal/platform/apperrors"
	"pet-adoption-platform/internal/platform/notify"
	"pet-adoption-platform/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = apperrors.New(apperrors.CodeValidation, "invalid input")
	ErrDuplicateEmail     = apperrors.New(apperrors.CodeConflict, "user with this email already exists")
	ErrInvalidCredentials = apperrors.New(apperrors.CodeUnauthorized, "invalid email or password")
	ErrUnauthenticated    = apperrors.New(apperrors.CodeUnauthorized, "authentication required")
	ErrNotFound           = apperrors.New(apperrors.CodeNotFound, "user not found")
)

// validate es propio del dominio: el registro valida el email también fuera de HTTP.
var validate = validator.New()

const (
	minPasswordLength = 6
	avatarBaseURL     = "https://avatar.vercel.sh/"
)

// SessionSaver persiste el estado de la sesión tras login/logout/update.
type SessionSaver interface {
	Save(ctx context.Context, s *session.Session) error
}

type Service struct {
	repo       Repository
	sessions   SessionSaver
	notifier   notify.Notifier
	bcryptCost int
	now        func() time.Time
}

func NewService(repo Repository, sessions SessionSaver, notifier notify.Notifier, bcryptCost int) *Service {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		sessions:   sessions,
		notifier:   notifier,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (s *Service) Register(ctx context.Context, sess *session.Session, in RegisterInput) (Profile, error) {
	if sess == nil {
		return Profile{}, ErrUnauthenticated
	}
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	if name == "" || !validEmail(email) || len(in.Password) < minPasswordLength {
		return Profile{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		s.notifier.Notify(ctx, notify.Failure("Registration Failed", "User with this email already exists."))
		return Profile{}, ErrDuplicateEmail
	} else if !apperrors.IsNotFound(err) {
		return Profile{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return Profile{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		AvatarURL:    AvatarURL(name),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			s.notifier.Notify(ctx, notify.Failure("Registration Failed", "User with this email already exists."))
		}
		return Profile{}, err
	}

	sess.Authenticate(u.Principal(), now)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return Profile{}, err
	}

	s.notifier.Notify(ctx, notify.Success("Registration Successful", fmt.Sprintf("Welcome, %s! Your account has been created.", u.Name)))
	return u.Profile(), nil
}

func (s *Service) Login(ctx context.Context, sess *session.Session, email, password string) (Profile, error) {
	if sess == nil {
		return Profile{}, ErrUnauthenticated
	}
	u, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil && !apperrors.IsNotFound(err) {
		return Profile{}, err
	}
	if err != nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		s.notifier.Notify(ctx, notify.Failure("Login Failed", "Invalid email or password."))
		return Profile{}, ErrInvalidCredentials
	}

	sess.Authenticate(u.Principal(), s.now())
	if err := s.sessions.Save(ctx, sess); err != nil {
		return Profile{}, err
	}

	s.notifier.Notify(ctx, notify.Success("Login Successful", fmt.Sprintf("Welcome back, %s!", u.Name)))
	return u.Profile(), nil
}

// Logout limpia el principal; el registro de sesión sigue (el carrito vive ahí).
func (s *Service) Logout(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return ErrUnauthenticated
	}
	sess.Clear(s.now())
	if err := s.sessions.Save(ctx, sess); err != nil {
		return err
	}
	s.notifier.Notify(ctx, notify.Success("Logged Out", "You have been successfully logged out."))
	return nil
}

// UpdateInput usa punteros: nil = no tocar.
type UpdateInput struct {
	Name      *string
	Email     *string
	Password  *string
	AvatarURL *string
}

func (s *Service) UpdateUser(ctx context.Context, sess *session.Session, in UpdateInput) (Profile, error) {
	if !sess.IsAuthenticated() {
		return Profile{}, ErrUnauthenticated
	}

	u, err := s.repo.GetByID(ctx, sess.UserID())
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.notifier.Notify(ctx, notify.Failure("Update Failed", "User not found."))
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Profile{}, ErrInvalidInput
		}
		u.Name = name
	}
	if in.Email != nil {
		email := NormalizeEmail(*in.Email)
		if !validEmail(email) {
			return Profile{}, ErrInvalidInput
		}
		if email != u.Email {
			other, err := s.repo.GetByEmail(ctx, email)
			if err == nil && other.ID != u.ID {
				s.notifier.Notify(ctx, notify.Failure("Update Failed", "User with this email already exists."))
				return Profile{}, ErrDuplicateEmail
			}
			if err != nil && !apperrors.IsNotFound(err) {
				return Profile{}, err
			}
		}
		u.Email = email
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return Profile{}, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.bcryptCost)
		if err != nil {
			return Profile{}, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	if in.AvatarURL != nil {
		u.AvatarURL = strings.TrimSpace(*in.AvatarURL)
	}

	now := s.now()
	u.UpdatedAt = now
	if err := s.repo.Update(ctx, u); err != nil {
		return Profile{}, err
	}

	sess.Authenticate(u.Principal(), now)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return Profile{}, err
	}

	s.notifier.Notify(ctx, notify.Success("Profile Updated", "Your profile information has been updated successfully."))
	return u.Profile(), nil
}

func (s *Service) GetProfile(ctx context.Context, id string) (Profile, error) {
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return u.Profile(), nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AvatarURL deriva el avatar por defecto a partir del nombre sin espacios.
func AvatarURL(name string) string {
	return avatarBaseURL + strings.Join(strings.Fields(name), "") + ".png"
}

func validEmail(email string) bool {
	return email != "" && validate.Var(email, "email") == nil
}
