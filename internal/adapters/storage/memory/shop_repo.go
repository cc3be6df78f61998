package memory

import (
	"context"
	"strings"

	"pet-adoption-platform/internal/domain/shop"
)

type productRepo struct {
	s *Store
}

func (r *productRepo) Create(ctx context.Context, p shop.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return ErrIDRequired
	}
	if _, exists := r.s.products[p.ID]; exists {
		return ErrExists
	}
	p.Tags = append([]string(nil), p.Tags...)
	r.s.products[p.ID] = p
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (shop.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[id]
	if !ok {
		return shop.Product{}, shop.ErrNotFound
	}
	p.Tags = append([]string(nil), p.Tags...)
	return p, nil
}

func (r *productRepo) List(ctx context.Context) ([]shop.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]shop.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		p.Tags = append([]string(nil), p.Tags...)
		out = append(out, p)
	}
	return out, nil
}

type cartRepo struct {
	s *Store
}

func (r *cartRepo) Load(ctx context.Context, cartID string) ([]shop.Line, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return append([]shop.Line{}, r.s.carts[cartID]...), nil
}

func (r *cartRepo) Save(ctx context.Context, cartID string, lines []shop.Line) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if len(lines) == 0 {
		delete(r.s.carts, cartID)
		return nil
	}
	r.s.carts[cartID] = append([]shop.Line(nil), lines...)
	return nil
}
