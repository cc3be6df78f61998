package shop

import "context"

type ProductRepository interface {
	Create(ctx context.Context, p Product) error
	GetByID(ctx context.Context, id string) (Product, error)
	List(ctx context.Context) ([]Product, error)
}

// CartRepository guarda el carrito completo por id (el id de sesión).
// Load de un carrito inexistente devuelve una lista vacía, no un error.
// Save con lista vacía equivale a vaciarlo.
type CartRepository interface {
	Load(ctx context.Context, cartID string) ([]Line, error)
	Save(ctx context.Context, cartID string, lines []Line) error
}
