package users

import (
	"time"

	"pet-adoption-platform/internal/session"
)

// User es una entrada del directorio. PasswordHash nunca sale del repositorio
// hacia sesiones o respuestas HTTP.
type User struct {
	ID           string
	Name         string
	Email        string // normalizado: trim + lower
	PasswordHash string
	AvatarURL    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile es la vista pública del usuario.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

func (u User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, AvatarURL: u.AvatarURL}
}

func (u User) Principal() session.Principal {
	return session.Principal{UserID: u.ID, Name: u.Name, Email: u.Email, AvatarURL: u.AvatarURL}
}
