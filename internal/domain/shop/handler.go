package shop

import (
	"net/http"

	"pet-adoption-platform/internal/middleware"
	"pet-adoption-platform/internal/platform/httpx"
	"pet-adoption-platform/internal/platform/logger"
	"pet-adoption-platform/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// RegisterRoutes: el carrito se identifica con la sesión; si no hay una se arranca una anónima.
func RegisterRoutes(r chi.Router, svc *Service, sessions auth.SessionStarter, log logger.Logger) {
	r.Route("/products", func(pr chi.Router) {
		pr.Get("/", searchProductsHandler(svc, log))
		pr.Get("/categories", categoriesHandler(svc, log))
		pr.Get("/featured", featuredHandler(svc, log))
		pr.Get("/best-sellers", bestSellersHandler(svc, log))
		pr.Get("/{productID}", getProductHandler(svc, log))
	})

	r.Route("/cart", func(cr chi.Router) {
		cr.Get("/", getCartHandler(svc, sessions, log))
		cr.Delete("/", clearCartHandler(svc, sessions, log))
		cr.Post("/items", addToCartHandler(svc, sessions, log))
		cr.Put("/items/{productID}", updateQuantityHandler(svc, sessions, log))
		cr.Delete("/items/{productID}", removeFromCartHandler(svc, sessions, log))
	})
}

type addToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type productResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"59.99"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Stock       int             `json:"stock"`
	Rating      float64         `json:"rating"`
	Reviews     int             `json:"reviews"`
	Tags        []string        `json:"tags"`
}

type cartItemResponse struct {
	Product  productResponse `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal" swaggertype:"string"`
}

type cartResponse struct {
	ID    string             `json:"id"`
	Items []cartItemResponse `json:"items"`
	Count int                `json:"count"`
	Total decimal.Decimal    `json:"total" swaggertype:"string"`
}

type lineResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Clamped   bool   `json:"clamped"`
}

// searchProductsHandler godoc
// @Summary Buscar productos
// @Description Filtra el catálogo por texto y categoría; orden name-asc por defecto.
// @Tags shop
// @Produce json
// @Param q query string false "Texto sobre nombre y descripción"
// @Param category query string false "Categoría exacta"
// @Param sort query string false "name-asc, name-desc, price-asc, price-desc o rating"
// @Success 200 {object} httpx.Envelope{data=[]productResponse}
// @Failure 400 {object} httpx.ErrorEnvelope
// @Router /products [get]
func searchProductsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.SearchProducts(r.Context(), ProductFilter{
			Query:    q.Get("q"),
			Category: q.Get("category"),
			Sort:     SortOrder(q.Get("sort")),
		})
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, toProductResponses(items))
	}
}

func categoriesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Categories(r.Context())
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, items)
	}
}

func featuredHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Featured(r.Context())
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, toProductResponses(items))
	}
}

func bestSellersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.BestSellers(r.Context())
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, toProductResponses(items))
	}
}

func getProductHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetProduct(r.Context(), chi.URLParam(r, "productID"))
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, toProductResponse(p))
	}
}

// getCartHandler godoc
// @Summary Ver carrito
// @Description Líneas resueltas contra el catálogo, cantidad total y total exacto.
// @Tags cart
// @Produce json
// @Param Authorization header string false "Bearer <session-id>"
// @Success 200 {object} httpx.Envelope{data=cartResponse}
// @Router /cart [get]
func getCartHandler(svc *Service, sessions auth.SessionStarter, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := middleware.EnsureSession(w, r, sessions)
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		c, err := svc.Cart(r.Context(), sess.ID)
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, toCartResponse(c))
	}
}

// addToCartHandler godoc
// @Summary Agregar al carrito
// @Description Crea o incrementa la línea; si supera el stock se recorta (clamped=true).
// @Tags cart
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer <session-id>"
// @Param payload body addToCartRequest true "Producto y cantidad (1 por defecto)"
// @Success 200 {object} httpx.Envelope{data=lineResponse}
// @Failure 404 {object} httpx.ErrorEnvelope
// @Failure 422 {object} httpx.ErrorEnvelope "sin stock"
// @Router /cart/items [post]
func addToCartHandler(svc *Service, sessions auth.SessionStarter, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addToCartRequest
		if err := httpx.DecodeJSONBody(r, &req); err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		sess, err := middleware.EnsureSession(w, r, sessions)
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}

		res, err := svc.AddToCart(r.Context(), sess.ID, req.ProductID, req.Quantity)
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, toLineResponse(res))
	}
}

func updateQuantityHandler(svc *Service, sessions auth.SessionStarter, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateQuantityRequest
		if err := httpx.DecodeJSONBody(r, &req); err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}

		sess, err := middleware.EnsureSession(w, r, sessions)
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}

		res, err := svc.UpdateQuantity(r.Context(), sess.ID, chi.URLParam(r, "productID"), *req.Quantity)
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, toLineResponse(res))
	}
}

func removeFromCartHandler(svc *Service, sessions auth.SessionStarter, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := middleware.EnsureSession(w, r, sessions)
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		if err := svc.RemoveFromCart(r.Context(), sess.ID, chi.URLParam(r, "productID")); err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func clearCartHandler(svc *Service, sessions auth.SessionStarter, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := middleware.EnsureSession(w, r, sessions)
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		if err := svc.ClearCart(r.Context(), sess.ID); err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, toCartResponse(Cart{ID: sess.ID, Total: decimal.Zero}))
	}
}

func toLineResponse(res Result) lineResponse {
	return lineResponse{ProductID: res.Line.ProductID, Quantity: res.Line.Quantity, Clamped: res.Clamped}
}

func toCartResponse(c Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cartItemResponse{
			Product:  toProductResponse(it.Product),
			Quantity: it.Quantity,
			Subtotal: it.Subtotal,
		})
	}
	return cartResponse{ID: c.ID, Items: items, Count: c.Count, Total: c.Total}
}

func toProductResponses(items []Product) []productResponse {
	out := make([]productResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toProductResponse(p Product) productResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		Rating:      p.Rating,
		Reviews:     p.Reviews,
		Tags:        tags,
	}
}
