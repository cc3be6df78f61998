package pets

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-adoption-platform/internal/middleware"
	"pet-adoption-platform/internal/platform/apperrors"
	"pet-adoption-platform/internal/platform/httpx"
	"pet-adoption-platform/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", searchPetsHandler(svc, log))
		pr.Post("/", createPetHandler(svc, log))

		pr.Get("/{petID}", getPetHandler(svc, log))

		// Solo el dueño edita o borra
		pr.Patch("/{petID}", updatePetHandler(svc, log))
		pr.Delete("/{petID}", deletePetHandler(svc, log))
	})

	// Mascotas que publiqué
	r.Get("/me/pets", listMyPetsHandler(svc, log))
}

type createPetRequest struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Breed       string `json:"breed"`
	Age         int    `json:"age" validate:"min=0"`
	Gender      string `json:"gender"`
	Size        string `json:"size"`
	Description string `json:"description"`
	Location    string `json:"location"`
	ImageURL    string `json:"image_url"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	Breed       *string `json:"breed"`
	Age         *int    `json:"age"`
	Gender      *string `json:"gender"`
	Size        *string `json:"size"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	ImageURL    *string `json:"image_url"`
}

type petResponse struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	Name        string    `json:"name"`
	Type        Type      `json:"type"`
	Breed       string    `json:"breed"`
	Age         int       `json:"age"`
	Gender      Gender    `json:"gender"`
	Size        Size      `json:"size"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	ImageURL    string    `json:"image_url"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// searchPetsHandler godoc
// @Summary Buscar mascotas
// @Description Lista mascotas (más recientes primero) con filtros opcionales.
// @Tags pets
// @Produce json
// @Param q query string false "Texto libre sobre nombre, raza y descripción"
// @Param type query string false "Dog, Cat, Other..."
// @Param breed query string false "Substring de raza"
// @Param gender query string false "Male o Female"
// @Param min_age query int false "Edad mínima"
// @Param max_age query int false "Edad máxima"
// @Param size query string false "Small, Medium o Large"
// @Param status query string false "available, pending o adopted"
// @Param location query string false "Substring de ubicación"
// @Success 200 {object} httpx.Envelope{data=[]petResponse}
// @Failure 400 {object} httpx.ErrorEnvelope
// @Router /pets [get]
func searchPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := Filter{
			Query:    q.Get("q"),
			Type:     Type(q.Get("type")),
			Breed:    q.Get("breed"),
			Gender:   Gender(q.Get("gender")),
			Size:     Size(q.Get("size")),
			Status:   Status(q.Get("status")),
			Location: q.Get("location"),
		}
		if f.Status != "" && !f.Status.Valid() {
			httpx.WriteError(r.Context(), log, w, ErrInvalidInput.WithDetails(map[string]string{"status": "is invalid"}))
			return
		}

		var err error
		if f.MinAge, err = intParam(q.Get("min_age")); err != nil {
			httpx.WriteError(r.Context(), log, w, ErrInvalidInput.WithDetails(map[string]string{"min_age": "must be an integer"}))
			return
		}
		if f.MaxAge, err = intParam(q.Get("max_age")); err != nil {
			httpx.WriteError(r.Context(), log, w, ErrInvalidInput.WithDetails(map[string]string{"max_age": "must be an integer"}))
			return
		}

		items, err := svc.Search(r.Context(), f)
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, toPetResponses(items))
	}
}

// createPetHandler godoc
// @Summary Publicar mascota
// @Description Publica una mascota para adopción; el dueño es el usuario de la sesión. Autenticación: `Authorization: Bearer <session-id>`.
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <session-id>"
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} httpx.Envelope{data=petResponse}
// @Failure 400 {object} httpx.ErrorEnvelope
// @Failure 401 {object} httpx.ErrorEnvelope
// @Router /pets [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.GetSession(r.Context())

		var req createPetRequest
		if err := httpx.DecodeJSONBody(r, &req); err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}

		p, err := svc.Add(r.Context(), sess, CreateInput{
			Name:        req.Name,
			Type:        Type(req.Type),
			Breed:       req.Breed,
			Age:         req.Age,
			Gender:      Gender(req.Gender),
			Size:        Size(req.Size),
			Description: req.Description,
			Location:    req.Location,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}

		httpx.WriteData(r.Context(), w, http.StatusCreated, toPetResponse(p))
	}
}

func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Editar mascota
// @Description Merge-patch de la ficha. Solo el dueño; el status no es editable.
// @Description Si la mascota no existe no se hace nada y data es null.
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <session-id>"
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} httpx.Envelope{data=petResponse}
// @Failure 401 {object} httpx.ErrorEnvelope
// @Failure 403 {object} httpx.ErrorEnvelope
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok || !sess.IsAuthenticated() {
			httpx.WriteError(r.Context(), log, w, ErrUnauthenticated)
			return
		}

		petID := chi.URLParam(r, "petID")
		owner, err := svc.OwnerOf(r.Context(), petID)
		if errors.Is(err, ErrNotFound) {
			httpx.WriteData(r.Context(), w, http.StatusOK, nil)
			return
		}
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		if owner != sess.UserID() {
			httpx.WriteError(r.Context(), log, w, ErrForbidden)
			return
		}

		var req updatePetRequest
		if err := httpx.DecodeJSONBody(r, &req); err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), petID, Patch{
			Name:        req.Name,
			Type:        (*Type)(req.Type),
			Breed:       req.Breed,
			Age:         req.Age,
			Gender:      (*Gender)(req.Gender),
			Size:        (*Size)(req.Size),
			Description: req.Description,
			Location:    req.Location,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, toPetResponse(updated))
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Description Borra la mascota y sus solicitudes de adopción. Solo el dueño.
// @Description Una mascota inexistente no es error: removed_requests es 0.
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer <session-id>"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} httpx.Envelope
// @Failure 401 {object} httpx.ErrorEnvelope
// @Failure 403 {object} httpx.ErrorEnvelope
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.GetSession(r.Context())

		removed, err := svc.Delete(r.Context(), sess, chi.URLParam(r, "petID"))
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, map[string]int{"removed_requests": removed})
	}
}

func listMyPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok || !sess.IsAuthenticated() {
			httpx.WriteError(r.Context(), log, w, ErrUnauthenticated)
			return
		}

		items, err := svc.ListByOwner(r.Context(), sess.UserID())
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, toPetResponses(items))
	}
}

func intParam(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeValidation, err, "invalid integer")
	}
	return &n, nil
}

func toPetResponses(items []Pet) []petResponse {
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p))
	}
	return out
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Type:        p.Type,
		Breed:       p.Breed,
		Age:         p.Age,
		Gender:      p.Gender,
		Size:        p.Size,
		Description: p.Description,
		Location:    p.Location,
		ImageURL:    p.ImageURL,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
