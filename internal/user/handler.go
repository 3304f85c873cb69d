// AngelaMos | 2026
// handler.go

package user

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/energy-service/internal/core"
)

type Lister interface {
	ListUsers(ctx context.Context) ([]User, error)
}

type Handler struct {
	service Lister
}

func NewHandler(service Lister) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes registers the admin-only user listing.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	adminOnly func(http.Handler) http.Handler,
) {
	r.With(adminOnly).Get("/admin", h.ListUsers)
}

// ListUsers returns all users ordered by creation time, newest first.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, UserListResponse{
		Success: true,
		Users:   ToUserResponseList(users),
	})
}
