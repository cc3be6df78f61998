package checkout

import (
	"net/http"
	"time"

	"pet-adoption-platform/internal/middleware"
	"pet-adoption-platform/internal/platform/httpx"
	"pet-adoption-platform/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/checkout", placeOrderHandler(svc, log))
}

// placeOrderRequest: la validación la hace el servicio (reglas propias de pago).
type placeOrderRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	CardNumber string `json:"card_number" example:"4242 4242 4242 4242"`
	ExpiryDate string `json:"expiry_date" example:"12/29"`
	CVC        string `json:"cvc" example:"123"`
}

type receiptItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"string"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal" swaggertype:"string"`
}

type receiptResponse struct {
	OrderID   string                `json:"order_id"`
	Name      string                `json:"name"`
	Email     string                `json:"email"`
	Address   string                `json:"address"`
	City      string                `json:"city"`
	Country   string                `json:"country"`
	CardLast4 string                `json:"card_last4"`
	Items     []receiptItemResponse `json:"items"`
	Count     int                   `json:"count"`
	Total     decimal.Decimal       `json:"total" swaggertype:"string"`
	PlacedAt  time.Time             `json:"placed_at"`
}

// placeOrderHandler godoc
// @Summary Confirmar compra
// @Description Valida envío y pago, simula la pasarela y vacía el carrito de la sesión.
// @Tags cart
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <session-id>"
// @Param payload body placeOrderRequest true "Datos de envío y tarjeta"
// @Success 201 {object} httpx.Envelope{data=receiptResponse}
// @Failure 400 {object} httpx.ErrorEnvelope
// @Failure 401 {object} httpx.ErrorEnvelope
// @Failure 422 {object} httpx.ErrorEnvelope "carrito vacío"
// @Router /checkout [post]
func placeOrderHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok || !sess.IsAuthenticated() {
			httpx.WriteError(r.Context(), log, w, ErrUnauthenticated)
			return
		}

		var req placeOrderRequest
		if err := httpx.DecodeJSONBody(r, &req); err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}

		receipt, err := svc.PlaceOrder(r.Context(), sess, sess.ID, PaymentInput(req))
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusCreated, toReceiptResponse(receipt))
	}
}

func toReceiptResponse(rc Receipt) receiptResponse {
	items := make([]receiptItemResponse, 0, len(rc.Items))
	for _, it := range rc.Items {
		items = append(items, receiptItemResponse{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			UnitPrice: it.Product.Price,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		})
	}
	return receiptResponse{
		OrderID:   rc.OrderID,
		Name:      rc.Name,
		Email:     rc.Email,
		Address:   rc.Address,
		City:      rc.City,
		Country:   rc.Country,
		CardLast4: rc.CardLast4,
		Items:     items,
		Count:     rc.Count,
		Total:     rc.Total,
		PlacedAt:  rc.PlacedAt,
	}
}
