package checkout

import (
	"context"
	"time"

	"pet-adoption-platform/internal/domain/shop"
	"pet-adoption-platform/internal/platform/apperrors"
	"pet-adoption-platform/internal/platform/notify"
	"pet-adoption-platform/internal/session"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = apperrors.New(apperrors.CodeValidation, "please correct the errors in the form")
	ErrUnauthenticated = apperrors.New(apperrors.CodeUnauthorized, "you must be logged in to check out")
	ErrEmptyCart       = apperrors.New(apperrors.CodeStateConflict, "your cart is empty")
	ErrGatewayAborted  = apperrors.New(apperrors.CodeDependency, "payment was not completed")
)

const DefaultGatewayDelay = 2 * time.Second

// Cart es lo que checkout necesita de shop (lo implementa *shop.Service).
type Cart interface {
	Cart(ctx context.Context, cartID string) (shop.Cart, error)
	ClearSilently(ctx context.Context, cartID string) error
}

type Service struct {
	cart     Cart
	notifier notify.Notifier
	delay    time.Duration
	now      func() time.Time
	wait     func(ctx context.Context, d time.Duration) error
}

func NewService(cart Cart, notifier notify.Notifier, gatewayDelay time.Duration) *Service {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if gatewayDelay < 0 {
		gatewayDelay = 0
	}
	return &Service{
		cart:     cart,
		notifier: notifier,
		delay:    gatewayDelay,
		now:      time.Now,
		wait:     sleepCtx,
	}
}

// PlaceOrder simula el cobro: valida, espera la pasarela y vacía el carrito.
// El stock no se descuenta.
func (s *Service) PlaceOrder(ctx context.Context, sess *session.Session, cartID string, in PaymentInput) (Receipt, error) {
	if !sess.IsAuthenticated() {
		return Receipt{}, ErrUnauthenticated
	}

	c, err := s.cart.Cart(ctx, cartID)
	if err != nil {
		return Receipt{}, err
	}
	if c.Empty() {
		return Receipt{}, ErrEmptyCart
	}

	in = normalize(in)
	details, err := validatePayment(in)
	if err != nil {
		return Receipt{}, err
	}
	if len(details) > 0 {
		s.notifier.Notify(ctx, notify.Failure("Validation Error", "Please correct the errors in the form."))
		return Receipt{}, ErrInvalidInput.WithDetails(details)
	}

	// Cortar la espera no toca el carrito.
	if err := s.wait(ctx, s.delay); err != nil {
		return Receipt{}, ErrGatewayAborted
	}

	if err := s.cart.ClearSilently(ctx, cartID); err != nil {
		return Receipt{}, err
	}

	r := Receipt{
		OrderID:   uuid.NewString(),
		UserID:    sess.UserID(),
		Name:      in.Name,
		Email:     in.Email,
		Address:   in.Address,
		City:      in.City,
		Country:   in.Country,
		CardLast4: in.CardNumber[len(in.CardNumber)-4:],
		Items:     c.Items,
		Count:     c.Count,
		Total:     c.Total,
		PlacedAt:  s.now(),
	}
	s.notifier.Notify(ctx, notify.Success("Order Placed!", "Thank you for your purchase. Your order is confirmed."))
	return r, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
