package relational

import (
	"time"

	"pet-adoption-platform/internal/domain/adoptions"
	"pet-adoption-platform/internal/domain/appointments"
	"pet-adoption-platform/internal/domain/pets"
	"pet-adoption-platform/internal/domain/shop"
	"pet-adoption-platform/internal/domain/users"
	"pet-adoption-platform/internal/session"

	"github.com/shopspring/decimal"
)

// Los timestamps los pone el dominio; GORM no los toca.

type userRow struct {
	ID           string `gorm:"primaryKey;size:64"`
	Name         string
	Email        string `gorm:"uniqueIndex;size:255"`
	PasswordHash string
	AvatarURL    string
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
}

func (userRow) TableName() string { return "users" }

func userToRow(u users.User) userRow {
	return userRow{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		AvatarURL:    u.AvatarURL,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r userRow) toDomain() users.User {
	return users.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		AvatarURL:    r.AvatarURL,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// sessionRow aplana el Principal; UserID vacío significa sin principal.
type sessionRow struct {
	ID        string `gorm:"primaryKey;size:64"`
	State     string `gorm:"size:32"`
	UserID    string `gorm:"size:64"`
	Name      string
	Email     string
	AvatarURL string
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (sessionRow) TableName() string { return "sessions" }

func sessionToRow(s session.Session) sessionRow {
	row := sessionRow{ID: s.ID, State: string(s.State), CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
	if s.Principal != nil {
		row.UserID = s.Principal.UserID
		row.Name = s.Principal.Name
		row.Email = s.Principal.Email
		row.AvatarURL = s.Principal.AvatarURL
	}
	return row
}

func (r sessionRow) toDomain() session.Session {
	s := session.Session{ID: r.ID, State: session.State(r.State), CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
	if r.UserID != "" {
		s.Principal = &session.Principal{UserID: r.UserID, Name: r.Name, Email: r.Email, AvatarURL: r.AvatarURL}
	}
	return s
}

type petRow struct {
	ID          string `gorm:"primaryKey;size:64"`
	OwnerUserID string `gorm:"index;size:64"`
	Name        string
	Type        string
	Breed       string
	Age         int
	Gender      string
	Size        string
	Description string
	Location    string
	ImageURL    string
	Status      string    `gorm:"size:16"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

func (petRow) TableName() string { return "pets" }

func petToRow(p pets.Pet) petRow {
	return petRow{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Type:        string(p.Type),
		Breed:       p.Breed,
		Age:         p.Age,
		Gender:      string(p.Gender),
		Size:        string(p.Size),
		Description: p.Description,
		Location:    p.Location,
		ImageURL:    p.ImageURL,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r petRow) toDomain() pets.Pet {
	return pets.Pet{
		ID:          r.ID,
		OwnerUserID: r.OwnerUserID,
		Name:        r.Name,
		Type:        pets.Type(r.Type),
		Breed:       r.Breed,
		Age:         r.Age,
		Gender:      pets.Gender(r.Gender),
		Size:        pets.Size(r.Size),
		Description: r.Description,
		Location:    r.Location,
		ImageURL:    r.ImageURL,
		Status:      pets.Status(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type requestRow struct {
	ID              string `gorm:"primaryKey;size:64"`
	PetID           string `gorm:"index;size:64"`
	ApplicantUserID string `gorm:"index;size:64"`
	ApplicantName   string
	ApplicantEmail  string
	Phone           string
	Address         string
	Reason          string
	Experience      string
	HomeType        string
	HasChildren     bool
	HasOtherPets    bool
	Status          string    `gorm:"size:16"`
	CreatedAt       time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false"`
}

func (requestRow) TableName() string { return "adoption_requests" }

func requestToRow(req adoptions.Request) requestRow {
	a := req.Applicant
	return requestRow{
		ID:              req.ID,
		PetID:           req.PetID,
		ApplicantUserID: a.UserID,
		ApplicantName:   a.Name,
		ApplicantEmail:  a.Email,
		Phone:           a.Phone,
		Address:         a.Address,
		Reason:          a.Reason,
		Experience:      a.Experience,
		HomeType:        a.HomeType,
		HasChildren:     a.HasChildren,
		HasOtherPets:    a.HasOtherPets,
		Status:          string(req.Status),
		CreatedAt:       req.CreatedAt,
		UpdatedAt:       req.UpdatedAt,
	}
}

func (r requestRow) toDomain() adoptions.Request {
	return adoptions.Request{
		ID:    r.ID,
		PetID: r.PetID,
		Applicant: adoptions.Applicant{
			UserID:       r.ApplicantUserID,
			Name:         r.ApplicantName,
			Email:        r.ApplicantEmail,
			Phone:        r.Phone,
			Address:      r.Address,
			Reason:       r.Reason,
			Experience:   r.Experience,
			HomeType:     r.HomeType,
			HasChildren:  r.HasChildren,
			HasOtherPets: r.HasOtherPets,
		},
		Status:    adoptions.Status(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type productRow struct {
	ID          string `gorm:"primaryKey;size:64"`
	Name        string
	Category    string          `gorm:"index"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2)"`
	Description string
	ImageURL    string
	Stock       int
	Rating      float64
	Reviews     int
	Tags        []string `gorm:"serializer:json"`
}

func (productRow) TableName() string { return "products" }

func productToRow(p shop.Product) productRow {
	return productRow{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		Rating:      p.Rating,
		Reviews:     p.Reviews,
		Tags:        p.Tags,
	}
}

func (r productRow) toDomain() shop.Product {
	return shop.Product{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Price:       r.Price,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Stock:       r.Stock,
		Rating:      r.Rating,
		Reviews:     r.Reviews,
		Tags:        r.Tags,
	}
}

// cartLineRow: Position conserva el orden de inserción del carrito.
type cartLineRow struct {
	CartID    string `gorm:"primaryKey;size:64"`
	ProductID string `gorm:"primaryKey;size:64"`
	Quantity  int
	Position  int
}

func (cartLineRow) TableName() string { return "cart_lines" }

type appointmentRow struct {
	ID        string `gorm:"primaryKey;size:64"`
	UserID    string `gorm:"index;size:64"`
	PetName   string
	ServiceID string `gorm:"size:64"`
	Date      time.Time
	Time      string `gorm:"size:16"`
	Notes     string
	Status    string    `gorm:"size:16"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (appointmentRow) TableName() string { return "appointments" }

func appointmentToRow(a appointments.Appointment) appointmentRow {
	return appointmentRow{
		ID:        a.ID,
		UserID:    a.UserID,
		PetName:   a.PetName,
		ServiceID: a.ServiceID,
		Date:      a.Date,
		Time:      a.Time,
		Notes:     a.Notes,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (r appointmentRow) toDomain() appointments.Appointment {
	return appointments.Appointment{
		ID:        r.ID,
		UserID:    r.UserID,
		PetName:   r.PetName,
		ServiceID: r.ServiceID,
		Date:      r.Date.UTC(),
		Time:      r.Time,
		Notes:     r.Notes,
		Status:    appointments.Status(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
