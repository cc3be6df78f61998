package adoptions

import (
	"context"
	"net/http"
	"time"

	"pet-adoption-platform/internal/middleware"
	"pet-adoption-platform/internal/platform/httpx"
	"pet-adoption-platform/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Ownership resuelve el dueño de una mascota (lo implementa *pets.Service).
type Ownership interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, owners Ownership, log logger.Logger) {
	r.Route("/pets/{petID}/adoption-requests", func(ar chi.Router) {
		ar.Post("/", submitHandler(svc, log))
		// Solo el dueño ve las solicitudes de su mascota
		ar.Get("/", listByPetHandler(svc, owners, log))
	})

	r.Route("/adoption-requests/{requestID}", func(ar chi.Router) {
		ar.Get("/", getRequestHandler(svc, owners, log))
		ar.Post("/decision", decideHandler(svc, log))
	})

	r.Get("/me/adoption-requests", listMineHandler(svc, log))
	r.Get("/me/adoption-requests/received", listReceivedHandler(svc, log))
}

type submitRequest struct {
	Phone        string `json:"phone" validate:"required"`
	Address      string `json:"address" validate:"required"`
	Reason       string `json:"reason" validate:"required"`
	Experience   string `json:"experience"`
	HomeType     string `json:"home_type"`
	HasChildren  bool   `json:"has_children"`
	HasOtherPets bool   `json:"has_other_pets"`
}

type decisionRequest struct {
	Status Status `json:"status" validate:"required,oneof=approved rejected"`
}

type applicantResponse struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Reason       string `json:"reason"`
	Experience   string `json:"experience"`
	HomeType     string `json:"home_type"`
	HasChildren  bool   `json:"has_children"`
	HasOtherPets bool   `json:"has_other_pets"`
}

type requestResponse struct {
	ID        string            `json:"id"`
	PetID     string            `json:"pet_id"`
	Applicant applicantResponse `json:"applicant"`
	Status    Status            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// submitHandler godoc
// @Summary Enviar solicitud de adopción
// @Description Crea una solicitud pending y pasa la mascota a pending. La identidad del solicitante sale de la sesión.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <session-id>"
// @Param petID path string true "ID de la mascota"
// @Param payload body submitRequest true "Formulario de adopción"
// @Success 201 {object} httpx.Envelope{data=requestResponse}
// @Failure 401 {object} httpx.ErrorEnvelope
// @Failure 404 {object} httpx.ErrorEnvelope
// @Failure 422 {object} httpx.ErrorEnvelope "mascota ya adoptada"
// @Router /pets/{petID}/adoption-requests [post]
func submitHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.GetSession(r.Context())

		var req submitRequest
		if err := httpx.DecodeJSONBody(r, &req); err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}

		created, err := svc.Submit(r.Context(), sess, chi.URLParam(r, "petID"), ApplicantInput{
			Phone:        req.Phone,
			Address:      req.Address,
			Reason:       req.Reason,
			Experience:   req.Experience,
			HomeType:     req.HomeType,
			HasChildren:  req.HasChildren,
			HasOtherPets: req.HasOtherPets,
		})
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusCreated, toRequestResponse(created))
	}
}

func listByPetHandler(svc *Service, owners Ownership, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok || !sess.IsAuthenticated() {
			httpx.WriteError(r.Context(), log, w, ErrUnauthenticated)
			return
		}

		petID := chi.URLParam(r, "petID")
		owner, err := owners.OwnerOf(r.Context(), petID)
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		if owner != sess.UserID() {
			httpx.WriteError(r.Context(), log, w, ErrForbidden)
			return
		}

		items, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, toRequestResponses(items))
	}
}

// getRequestHandler: visible para el solicitante o el dueño de la mascota.
func getRequestHandler(svc *Service, owners Ownership, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok || !sess.IsAuthenticated() {
			httpx.WriteError(r.Context(), log, w, ErrUnauthenticated)
			return
		}

		req, err := svc.GetByID(r.Context(), chi.URLParam(r, "requestID"))
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}

		if req.Applicant.UserID != sess.UserID() {
			owner, err := owners.OwnerOf(r.Context(), req.PetID)
			if err != nil || owner != sess.UserID() {
				httpx.WriteError(r.Context(), log, w, ErrForbidden)
				return
			}
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, toRequestResponse(req))
	}
}

// decideHandler godoc
// @Summary Aprobar o rechazar solicitud
// @Description Solo el dueño de la mascota. approved => mascota adopted; rejected => mascota available.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <session-id>"
// @Param requestID path string true "ID de la solicitud"
// @Param payload body decisionRequest true "approved o rejected"
// @Success 200 {object} httpx.Envelope{data=requestResponse}
// @Failure 400 {object} httpx.ErrorEnvelope
// @Failure 403 {object} httpx.ErrorEnvelope
// @Failure 422 {object} httpx.ErrorEnvelope "la solicitud ya no está pending"
// @Router /adoption-requests/{requestID}/decision [post]
func decideHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.GetSession(r.Context())

		var req decisionRequest
		if err := httpx.DecodeJSONBody(r, &req); err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}

		updated, err := svc.Decide(r.Context(), sess, chi.URLParam(r, "requestID"), req.Status)
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		if updated.ID == "" {
			httpx.WriteData(r.Context(), w, http.StatusOK, nil)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, toRequestResponse(updated))
	}
}

func listMineHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok || !sess.IsAuthenticated() {
			httpx.WriteError(r.Context(), log, w, ErrUnauthenticated)
			return
		}
		items, err := svc.ListByApplicant(r.Context(), sess.UserID())
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, toRequestResponses(items))
	}
}

func listReceivedHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok || !sess.IsAuthenticated() {
			httpx.WriteError(r.Context(), log, w, ErrUnauthenticated)
			return
		}
		items, err := svc.ListForOwner(r.Context(), sess.UserID())
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, toRequestResponses(items))
	}
}

func toRequestResponses(items []Request) []requestResponse {
	out := make([]requestResponse, 0, len(items))
	for _, req := range items {
		out = append(out, toRequestResponse(req))
	}
	return out
}

func toRequestResponse(req Request) requestResponse {
	a := req.Applicant
	return requestResponse{
		ID:    req.ID,
		PetID: req.PetID,
		Applicant: applicantResponse{
			UserID:       a.UserID,
			Name:         a.Name,
			Email:        a.Email,
			Phone:        a.Phone,
			Address:      a.Address,
			Reason:       a.Reason,
			Experience:   a.Experience,
			HomeType:     a.HomeType,
			HasChildren:  a.HasChildren,
			HasOtherPets: a.HasOtherPets,
		},
		Status:    req.Status,
		CreatedAt: req.CreatedAt,
		UpdatedAt: req.UpdatedAt,
	}
}
