package appointments

import (
	"net/http"
	"time"

	"pet-adoption-platform/internal/middleware"
	"pet-adoption-platform/internal/platform/httpx"
	"pet-adoption-platform/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/services", func(sr chi.Router) {
		sr.Get("/", listServicesHandler(svc, log))
		sr.Get("/{serviceID}", getServiceHandler(svc, log))
	})

	r.Route("/appointments", func(ar chi.Router) {
		ar.Get("/", listAppointmentsHandler(svc, log))
		ar.Post("/", bookAppointmentHandler(svc, log))
		ar.Get("/{appointmentID}", getAppointmentHandler(svc, log))
		ar.Post("/{appointmentID}/cancel", cancelAppointmentHandler(svc, log))
	})
}

type bookRequest struct {
	PetName   string `json:"pet_name" validate:"required"`
	ServiceID string `json:"service_id" validate:"required"`
	Date      string `json:"date" validate:"required" example:"2025-07-01"`
	Time      string `json:"time" validate:"required" example:"10:30 AM"`
	Notes     string `json:"notes"`
}

type appointmentResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	PetName   string     `json:"pet_name"`
	ServiceID string     `json:"service_id"`
	Service   *Treatment `json:"service,omitempty"`
	Date      string     `json:"date"`
	Time      string     `json:"time"`
	Notes     string     `json:"notes"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func listServicesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteData(r.Context(), w, http.StatusOK, svc.Services())
	}
}

func getServiceHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.ServiceByID(chi.URLParam(r, "serviceID"))
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, s)
	}
}

// listAppointmentsHandler godoc
// @Summary Mis citas
// @Description Citas del usuario de la sesión, de la fecha más lejana a la más próxima.
// @Tags appointments
// @Produce json
// @Param Authorization header string true "Bearer <session-id>"
// @Success 200 {object} httpx.Envelope{data=[]appointmentResponse}
// @Failure 401 {object} httpx.ErrorEnvelope
// @Router /appointments [get]
func listAppointmentsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok || !sess.IsAuthenticated() {
			httpx.WriteError(r.Context(), log, w, ErrUnauthenticated)
			return
		}
		items, err := svc.ListForUser(r.Context(), sess)
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(svc, a))
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, out)
	}
}

// bookAppointmentHandler godoc
// @Summary Reservar cita
// @Description Crea una cita Scheduled para el usuario de la sesión.
// @Tags appointments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <session-id>"
// @Param payload body bookRequest true "Mascota, servicio, fecha (YYYY-MM-DD) y hora (hh:mm AM/PM)"
// @Success 201 {object} httpx.Envelope{data=appointmentResponse}
// @Failure 400 {object} httpx.ErrorEnvelope
// @Failure 401 {object} httpx.ErrorEnvelope
// @Router /appointments [post]
func bookAppointmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.GetSession(r.Context())

		var req bookRequest
		if err := httpx.DecodeJSONBody(r, &req); err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}

		a, err := svc.Book(r.Context(), sess, BookInput{
			PetName:   req.PetName,
			ServiceID: req.ServiceID,
			Date:      req.Date,
			Time:      req.Time,
			Notes:     req.Notes,
		})
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusCreated, toAppointmentResponse(svc, a))
	}
}

func getAppointmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.GetSession(r.Context())
		a, err := svc.GetForUser(r.Context(), sess, chi.URLParam(r, "appointmentID"))
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, toAppointmentResponse(svc, a))
	}
}

// cancelAppointmentHandler godoc
// @Summary Cancelar cita
// @Description Solo el dueño. La cita queda con status Cancelled.
// @Description Si la cita no existe no se hace nada y data es null.
// @Tags appointments
// @Produce json
// @Param Authorization header string true "Bearer <session-id>"
// @Param appointmentID path string true "ID de la cita"
// @Success 200 {object} httpx.Envelope{data=appointmentResponse}
// @Failure 401 {object} httpx.ErrorEnvelope
// @Failure 403 {object} httpx.ErrorEnvelope
// @Failure 422 {object} httpx.ErrorEnvelope "cita completada"
// @Router /appointments/{appointmentID}/cancel [post]
func cancelAppointmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.GetSession(r.Context())
		a, err := svc.Cancel(r.Context(), sess, chi.URLParam(r, "appointmentID"))
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		if a.ID == "" {
			httpx.WriteData(r.Context(), w, http.StatusOK, nil)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, toAppointmentResponse(svc, a))
	}
}

func toAppointmentResponse(svc *Service, a Appointment) appointmentResponse {
	out := appointmentResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		PetName:   a.PetName,
		ServiceID: a.ServiceID,
		Date:      a.Date.Format(dateLayout),
		Time:      a.Time,
		Notes:     a.Notes,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if s, ok := svc.Resolve(a); ok {
		out.Service = &s
	}
	return out
}
