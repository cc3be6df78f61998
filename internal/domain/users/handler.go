package users

import (
	"net/http"

	"pet-adoption-platform/internal/middleware"
	"pet-adoption-platform/internal/platform/httpx"
	"pet-adoption-platform/internal/platform/logger"
	"pet-adoption-platform/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, sessions auth.SessionStarter, log logger.Logger) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc, sessions, log))
		ar.Post("/login", loginHandler(svc, sessions, log))
		ar.Post("/logout", logoutHandler(svc, log))
	})

	r.Get("/me", meHandler(log))
	r.Patch("/me", updateMeHandler(svc, log))
	r.Get("/users/{userID}", getProfileHandler(svc, log))
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateMeRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	AvatarURL *string `json:"avatar_url"`
}

// authResponse lleva el id de sesión que el cliente debe mandar como Bearer.
type authResponse struct {
	SessionID string  `json:"session_id"`
	User      Profile `json:"user"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description Crea el usuario y autentica la sesión (se crea una sesión anónima si el request no trae Bearer).
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Datos de registro"
// @Success 201 {object} httpx.Envelope{data=authResponse}
// @Failure 400 {object} httpx.ErrorEnvelope
// @Failure 409 {object} httpx.ErrorEnvelope "email ya registrado"
// @Router /auth/register [post]
func registerHandler(svc *Service, sessions auth.SessionStarter, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := httpx.DecodeJSONBody(r, &req); err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}

		sess, err := middleware.EnsureSession(w, r, sessions)
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}

		p, err := svc.Register(r.Context(), sess, RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}

		httpx.WriteData(r.Context(), w, http.StatusCreated, authResponse{SessionID: sess.ID, User: p})
	}
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} httpx.Envelope{data=authResponse}
// @Failure 401 {object} httpx.ErrorEnvelope
// @Router /auth/login [post]
func loginHandler(svc *Service, sessions auth.SessionStarter, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := httpx.DecodeJSONBody(r, &req); err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}

		sess, err := middleware.EnsureSession(w, r, sessions)
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}

		p, err := svc.Login(r.Context(), sess, req.Email, req.Password)
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}

		httpx.WriteData(r.Context(), w, http.StatusOK, authResponse{SessionID: sess.ID, User: p})
	}
}

func logoutHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			httpx.WriteError(r.Context(), log, w, ErrUnauthenticated)
			return
		}
		if err := svc.Logout(r.Context(), sess); err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, map[string]string{"state": string(sess.State)})
	}
}

func meHandler(log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok || !sess.IsAuthenticated() {
			httpx.WriteError(r.Context(), log, w, ErrUnauthenticated)
			return
		}
		p := sess.Principal
		httpx.WriteData(r.Context(), w, http.StatusOK, Profile{
			ID:        p.UserID,
			Name:      p.Name,
			Email:     p.Email,
			AvatarURL: p.AvatarURL,
		})
	}
}

func updateMeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.GetSession(r.Context())

		var req updateMeRequest
		if err := httpx.DecodeJSONBody(r, &req); err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}

		p, err := svc.UpdateUser(r.Context(), sess, UpdateInput{
			Name:      req.Name,
			Email:     req.Email,
			Password:  req.Password,
			AvatarURL: req.AvatarURL,
		})
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, p)
	}
}

func getProfileHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetProfile(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			httpx.WriteError(r.Context(), log, w, err)
			return
		}
		httpx.WriteData(r.Context(), w, http.StatusOK, p)
	}
}
