package appointments

import "context"

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	Update(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]Appointment, error)
}
