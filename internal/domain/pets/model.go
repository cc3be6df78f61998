package pets

import "time"

// Status lo mueve solo el flujo de adopción:
// available -> pending -> {adopted, available}.
// @Enum available, pending, adopted
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusAdopted   Status = "adopted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusAdopted:
		return true
	}
	return false
}

// Type es la especie tal como se lista (Dog, Cat, Other...). No es un enum cerrado.
type Type string

const (
	TypeDog   Type = "Dog"
	TypeCat   Type = "Cat"
	TypeOther Type = "Other"
)

// Gender define el sexo de la mascota.
// @Enum Male, Female
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Size define el tamaño.
// @Enum Small, Medium, Large
type Size string

const (
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
)

// Pet representa una mascota publicada para adopción.
type Pet struct {
	ID          string
	OwnerUserID string // quien la publicó

	Name   string
	Type   Type
	Breed  string
	Age    int // años
	Gender Gender
	Size   Size

	Description string
	Location    string
	ImageURL    string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
