// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/energy-service/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the credential endpoint. limiter throttles the
// credential-checking POST; requireSession guards the profile lookup.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	limiter func(http.Handler) http.Handler,
	requireSession func(http.Handler) http.Handler,
) {
	r.With(limiter).Post("/auth", h.Authenticate)
	r.With(requireSession).Get("/auth", h.GetProfile)
}

// Authenticate dispatches on the action field. A missing action is a login.
func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	switch req.Action {
	case ActionRegister:
		h.register(w, r, req)
	case ActionLogin, "":
		h.login(w, r, req)
	default:
		core.BadRequest(w, "unknown action")
	}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request, req AuthRequest) {
	user, token, err := h.service.Register(
		r.Context(),
		req.Email,
		req.Password,
		req.Name,
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailExists):
			core.JSONError(w, core.DuplicateError("email"))
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "email and password are required")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, AuthResponse{
		Success: true,
		User:    ToUserResponse(user),
		Token:   token,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, req AuthRequest) {
	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			core.JSONError(w, core.InvalidCredentialsError())
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "email and password are required")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, AuthResponse{
		Success: true,
		User:    ToUserResponse(user),
		Token:   token,
	})
}

// GetProfile returns the public view of the user named by ?user_id. Any
// failure to resolve the user is reported as a bad request.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		core.BadRequest(w, "invalid request")
		return
	}

	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.BadRequest(w, "invalid request")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ProfileResponse{
		Success: true,
		User:    ToUserResponse(user),
	})
}
