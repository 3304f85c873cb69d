// AngelaMos | 2026
// handler_test.go

package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/energy-service/internal/core"
	"github.com/carterperez-dev/templates/energy-service/internal/middleware"
)

type listerFunc func(ctx context.Context) ([]User, error)

func (f listerFunc) ListUsers(ctx context.Context) ([]User, error) { return f(ctx) }

type gateFunc func(ctx context.Context, actorID int64) error

func (f gateFunc) Authorize(ctx context.Context, actorID int64) error { return f(ctx, actorID) }

func newListRouter(lister Lister) chi.Router {
	gate := gateFunc(func(_ context.Context, actorID int64) error {
		if actorID == 1 {
			return nil
		}
		return core.ErrForbidden
	})

	r := chi.NewRouter()
	NewHandler(lister).RegisterAdminRoutes(r, middleware.RequireAdmin(gate))
	return r
}

func TestHandler_ListUsers(t *testing.T) {
	now := time.Now().UTC()
	r := newListRouter(listerFunc(func(context.Context) ([]User, error) {
		return []User{
			{ID: 2, Email: "alice@test.com", Name: "Alice", PasswordHash: "secret-hash", Energy: 100, CreatedAt: now},
			{ID: 1, Email: "root@example.com", Name: "Root", Energy: 100000, IsAdmin: true, CreatedAt: now.Add(-time.Hour)},
		}, nil
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(middleware.AdminIDHeader, "1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret-hash")

	var resp UserListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Users, 2)
	assert.Equal(t, int64(2), resp.Users[0].ID)
	assert.True(t, resp.Users[1].IsAdmin)
}

func TestHandler_ListUsers_NonAdmin(t *testing.T) {
	called := false
	r := newListRouter(listerFunc(func(context.Context) ([]User, error) {
		called = true
		return nil, nil
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(middleware.AdminIDHeader, "2")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
	assert.NotContains(t, rec.Body.String(), "users")
}

func TestHandler_ListUsers_StorageFailure(t *testing.T) {
	r := newListRouter(listerFunc(func(context.Context) ([]User, error) {
		return nil, errors.New("connection refused to 10.0.0.5")
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(middleware.AdminIDHeader, "1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}
