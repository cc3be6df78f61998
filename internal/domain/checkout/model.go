package checkout

import (
	"time"

	"pet-adoption-platform/internal/domain/shop"

	"github.com/shopspring/decimal"
)

// PaymentInput es el formulario de envío y pago.
type PaymentInput struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
	CardNumber string `json:"card_number" validate:"required,len=16,numeric"`
	ExpiryDate string `json:"expiry_date" validate:"required,expiry"`
	CVC        string `json:"cvc" validate:"required,min=3,max=4,numeric"`
}

// Receipt: comprobante de la orden. No se guarda la tarjeta completa.
type Receipt struct {
	OrderID   string
	UserID    string
	Name      string
	Email     string
	Address   string
	City      string
	Country   string
	CardLast4 string
	Items     []shop.Item
	Count     int
	Total     decimal.Decimal
	PlacedAt  time.Time
}
