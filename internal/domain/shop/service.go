package shop

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"pet-adoption-platform/internal/platform/apperrors"
	"pet-adoption-platform/internal/platform/notify"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput = apperrors.New(apperrors.CodeValidation, "invalid input")
	ErrNotFound     = apperrors.New(apperrors.CodeNotFound, "product not found")
	ErrOutOfStock   = apperrors.New(apperrors.CodeStateConflict, "product out of stock")
)

// Tamaño de las vitrinas de la tienda (destacados, más vendidos).
const showcaseSize = 4

type Service struct {
	products ProductRepository
	carts    CartRepository
	notifier notify.Notifier
}

func NewService(products ProductRepository, carts CartRepository, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Service{
		products: products,
		carts:    carts,
		notifier: notifier,
	}
}

type ProductInput struct {
	ID          string // vacío => se genera
	Name        string
	Category    string
	Price       decimal.Decimal
	Description string
	ImageURL    string
	Stock       int
	Rating      float64
	Reviews     int
	Tags        []string
}

// AddProduct alimenta el catálogo (seed y tests); no hay endpoint público.
func (s *Service) AddProduct(ctx context.Context, in ProductInput) (Product, error) {
	if strings.TrimSpace(in.Name) == "" || in.Price.IsNegative() || in.Stock < 0 || in.Rating < 0 || in.Reviews < 0 {
		return Product{}, ErrInvalidInput
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}

	p := Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Stock:       in.Stock,
		Rating:      in.Rating,
		Reviews:     in.Reviews,
		Tags:        append([]string(nil), in.Tags...),
	}
	if err := s.products.Create(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Product{}, ErrNotFound
	}
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

// ListProducts devuelve el catálogo en orden de alta (por id).
func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	items, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// SearchProducts filtra por texto (nombre o descripción) y categoría exacta.
// Sin Sort se usa name-asc.
func (s *Service) SearchProducts(ctx context.Context, f ProductFilter) ([]Product, error) {
	if f.Sort == "" {
		f.Sort = SortNameAsc
	}
	if !f.Sort.Valid() {
		return nil, ErrInvalidInput.WithDetails(map[string]string{"sort": "is invalid"})
	}

	items, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	category := strings.TrimSpace(f.Category)

	out := make([]Product, 0, len(items))
	for _, p := range items {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch f.Sort {
		case SortNameDesc:
			return strings.ToLower(a.Name) > strings.ToLower(b.Name)
		case SortPriceAsc:
			return a.Price.LessThan(b.Price)
		case SortPriceDesc:
			return a.Price.GreaterThan(b.Price)
		case SortRating:
			return a.Rating > b.Rating
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	})
	return out, nil
}

// Categories: categorías distintas en orden de primera aparición.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	items, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0)
	for _, p := range items {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out, nil
}

// Featured: premium o rating >= 4.7, en orden de catálogo.
func (s *Service) Featured(ctx context.Context) ([]Product, error) {
	items, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, showcaseSize)
	for _, p := range items {
		if p.HasTag(TagPremium) || p.Rating >= 4.7 {
			out = append(out, p)
		}
		if len(out) == showcaseSize {
			break
		}
	}
	return out, nil
}

func (s *Service) BestSellers(ctx context.Context) ([]Product, error) {
	items, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Reviews > items[j].Reviews })
	if len(items) > showcaseSize {
		items = items[:showcaseSize]
	}
	return items, nil
}

// AddToCart crea o incrementa la línea. Si la suma supera el stock se recorta
// al stock (Result.Clamped) en vez de rechazar.
func (s *Service) AddToCart(ctx context.Context, cartID, productID string, quantity int) (Result, error) {
	if quantity < 1 {
		return Result{}, ErrInvalidInput
	}

	p, err := s.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.notifier.Notify(ctx, notify.Failure("Error", "Product not found."))
		}
		return Result{}, err
	}
	if p.Stock <= 0 {
		s.notifier.Notify(ctx, notify.Failure("Out of Stock", fmt.Sprintf("Only %d items left.", p.Stock)))
		return Result{}, ErrOutOfStock
	}

	lines, err := s.carts.Load(ctx, cartID)
	if err != nil {
		return Result{}, err
	}

	res := Result{Line: Line{ProductID: p.ID, Quantity: quantity}}
	idx := indexOf(lines, p.ID)
	if idx >= 0 {
		res.Line.Quantity = lines[idx].Quantity + quantity
	}
	if res.Line.Quantity > p.Stock {
		res.Line.Quantity = p.Stock
		res.Clamped = true
	}

	if idx >= 0 {
		lines[idx] = res.Line
	} else {
		lines = append(lines, res.Line)
	}
	if err := s.carts.Save(ctx, cartID, lines); err != nil {
		return Result{}, err
	}

	if res.Clamped {
		s.notifier.Notify(ctx, notify.Failure("Stock Limit", fmt.Sprintf("Cannot add more than %d items.", p.Stock)))
	}
	s.notifier.Notify(ctx, notify.Success("Added to Cart", fmt.Sprintf("%s added to your cart.", p.Name)))
	return res, nil
}

// RemoveFromCart quita la línea aunque el producto ya no exista.
func (s *Service) RemoveFromCart(ctx context.Context, cartID, productID string) error {
	lines, err := s.carts.Load(ctx, cartID)
	if err != nil {
		return err
	}
	idx := indexOf(lines, productID)
	if idx >= 0 {
		lines = append(lines[:idx], lines[idx+1:]...)
		if err := s.carts.Save(ctx, cartID, lines); err != nil {
			return err
		}
	}

	if p, err := s.GetProduct(ctx, productID); err == nil {
		s.notifier.Notify(ctx, notify.Success("Removed from Cart", fmt.Sprintf("%s removed from your cart.", p.Name)))
	}
	return nil
}

// UpdateQuantity fija la cantidad (no incrementa). <= 0 quita la línea;
// por encima del stock se recorta. Solo edita líneas que ya están en el carrito:
// si el producto no está, no hace nada.
func (s *Service) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (Result, error) {
	p, err := s.GetProduct(ctx, productID)
	if err != nil {
		return Result{}, err
	}
	if quantity <= 0 {
		return Result{Line: Line{ProductID: p.ID}}, s.RemoveFromCart(ctx, cartID, p.ID)
	}

	lines, err := s.carts.Load(ctx, cartID)
	if err != nil {
		return Result{}, err
	}
	idx := indexOf(lines, p.ID)
	if idx < 0 {
		return Result{Line: Line{ProductID: p.ID}}, nil
	}

	res := Result{Line: Line{ProductID: p.ID, Quantity: quantity}}
	if quantity > p.Stock {
		res.Line.Quantity = p.Stock
		res.Clamped = true
		s.notifier.Notify(ctx, notify.Failure("Stock Limit", fmt.Sprintf("Only %d items available.", p.Stock)))
	}
	if res.Line.Quantity == 0 {
		return res, s.RemoveFromCart(ctx, cartID, p.ID)
	}

	lines[idx] = res.Line
	if err := s.carts.Save(ctx, cartID, lines); err != nil {
		return Result{}, err
	}
	return res, nil
}

func (s *Service) ClearCart(ctx context.Context, cartID string) error {
	if err := s.carts.Save(ctx, cartID, nil); err != nil {
		return err
	}
	s.notifier.Notify(ctx, notify.Success("Cart Cleared", "Your shopping cart has been emptied."))
	return nil
}

// Cart resuelve las líneas contra el catálogo. Líneas de productos que ya
// no existen se omiten.
func (s *Service) Cart(ctx context.Context, cartID string) (Cart, error) {
	lines, err := s.carts.Load(ctx, cartID)
	if err != nil {
		return Cart{}, err
	}

	c := Cart{ID: cartID, Items: make([]Item, 0, len(lines)), Total: decimal.Zero}
	for _, l := range lines {
		p, err := s.GetProduct(ctx, l.ProductID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return Cart{}, err
		}
		sub := p.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		c.Items = append(c.Items, Item{Product: p, Quantity: l.Quantity, Subtotal: sub})
		c.Count += l.Quantity
		c.Total = c.Total.Add(sub)
	}
	return c, nil
}

func (s *Service) CartTotal(ctx context.Context, cartID string) (decimal.Decimal, error) {
	c, err := s.Cart(ctx, cartID)
	if err != nil {
		return decimal.Zero, err
	}
	return c.Total, nil
}

// ClearSilently vacía el carrito sin aviso (lo usa checkout, que emite el suyo).
func (s *Service) ClearSilently(ctx context.Context, cartID string) error {
	return s.carts.Save(ctx, cartID, nil)
}

func indexOf(lines []Line, productID string) int {
	for i, l := range lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}
