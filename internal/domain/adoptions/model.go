package adoptions

import "time"

// @Enum pending, approved, rejected
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Applicant: identidad (UserID, Name, Email) copiada de la sesión al enviar;
// el resto viene del formulario.
type Applicant struct {
	UserID string
	Name   string
	Email  string

	Phone        string
	Address      string
	Reason       string
	Experience   string
	HomeType     string
	HasChildren  bool
	HasOtherPets bool
}

type Request struct {
	ID        string
	PetID     string
	Applicant Applicant
	Status    Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
