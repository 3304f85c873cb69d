// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/carterperez-dev/templates/energy-service/internal/core"
)

const (
	SessionTokenHeader = "X-Auth-Token"
	AdminIDHeader      = "X-Admin-Id"

	ActorIDKey contextKey = "actor_id"
)

type TokenValidator interface {
	Validate(ctx context.Context, token string) error
}

// AdminGate is satisfied by auth.Gate.
type AdminGate interface {
	Authorize(ctx context.Context, actorID int64) error
}

// RequireSession rejects requests that carry no acceptable session token.
func RequireSession(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("missing authorization token"),
				)
				return
			}

			if err := validator.Validate(r.Context(), token); err != nil {
				handleAuthError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin resolves the actor named by the X-Admin-Id header and lets
// the request through only when the gate accepts it. A missing or
// malformed header is treated the same as a non-admin actor.
func RequireAdmin(gate AdminGate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actorID, err := strconv.ParseInt(
				strings.TrimSpace(r.Header.Get(AdminIDHeader)),
				10,
				64,
			)
			if err != nil {
				core.Forbidden(w, "admin access required")
				return
			}

			if err := gate.Authorize(r.Context(), actorID); err != nil {
				if errors.Is(err, core.ErrForbidden) {
					core.Forbidden(w, "admin access required")
					return
				}
				core.InternalServerError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ActorIDKey, actorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractToken reads the session token from X-Auth-Token, falling back to
// an Authorization bearer header.
func ExtractToken(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(SessionTokenHeader)); token != "" {
		return token
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	case errors.Is(err, core.ErrTokenInvalid):
		core.JSONError(w, core.TokenInvalidError())
	default:
		core.InternalServerError(w, err)
	}
}

// GetActorID returns the admin id accepted by RequireAdmin, or 0.
func GetActorID(ctx context.Context) int64 {
	if id, ok := ctx.Value(ActorIDKey).(int64); ok {
		return id
	}
	return 0
}
