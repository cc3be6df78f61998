package adoptions

import (
	"context"
	"time"

	"pet-adoption-platform/internal/domain/pets"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (Request, error)
	ListByPet(ctx context.Context, petID string) ([]Request, error)
	ListByApplicant(ctx context.Context, userID string) ([]Request, error)

	// Commit escribe la solicitud y el nuevo status de la mascota juntos.
	// Si algo falla (p.ej. la mascota ya no existe) no queda ninguna de las dos escrituras.
	// Si los status guardados no son los esperados devuelve ErrStale sin escribir.
	Commit(ctx context.Context, c Commit) error
}

// Commit describe una transición atómica solicitud + mascota.
// FromStatus y FromPetStatus son los valores leídos al decidir; vacíos = sin chequeo.
type Commit struct {
	Request    Request
	Insert     bool   // true: solicitud nueva; false: actualiza una existente
	FromStatus Status // solo aplica con Insert=false

	PetID         string
	PetStatus     pets.Status
	FromPetStatus pets.Status
	At            time.Time // UpdatedAt de la mascota
}

// Stale compara lo guardado con lo esperado por el Commit.
func (c Commit) Stale(current Status, currentPet pets.Status) bool {
	if !c.Insert && c.FromStatus != "" && current != c.FromStatus {
		return true
	}
	return c.FromPetStatus != "" && currentPet != c.FromPetStatus
}
