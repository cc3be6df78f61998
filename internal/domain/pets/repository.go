package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)

	// Delete borra la mascota y, en la misma escritura, todas las solicitudes
	// de adopción que la referencian. Devuelve cuántas solicitudes borró.
	Delete(ctx context.Context, id string) (int, error)
}
