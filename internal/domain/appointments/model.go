package appointments

import "time"

// @Enum Scheduled, Completed, Cancelled
type Status string

const (
	StatusScheduled Status = "Scheduled"
	// StatusCompleted no lo produce ninguna operación; solo aparece por edición directa de datos.
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Appointment referencia el servicio por id; el nombre se resuelve con Catalog.
type Appointment struct {
	ID        string
	UserID    string
	PetName   string
	ServiceID string
	Date      time.Time // solo fecha, medianoche UTC
	Time      string    // "hh:mm AM/PM"
	Notes     string
	Status    Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Treatment es una entrada del catálogo fijo de servicios veterinarios.
type Treatment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Duration    string `json:"duration"`
	PriceRange  string `json:"price_range"`
}
