// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/templates/energy-service/internal/core"
	"github.com/carterperez-dev/templates/energy-service/internal/ledger"
	"github.com/carterperez-dev/templates/energy-service/internal/middleware"
)

type Ledger interface {
	ApplyDelta(
		ctx context.Context,
		userID, amount int64,
		reason string,
		actorID int64,
	) (*ledger.MutationResult, error)
	SetAbsolute(
		ctx context.Context,
		userID, value, actorID int64,
	) (*ledger.MutationResult, error)
	History(
		ctx context.Context,
		userID int64,
		limit int,
	) ([]ledger.Transaction, error)
	Reconcile(ctx context.Context, userID int64) (*ledger.Reconciliation, error)
	Summary(ctx context.Context) (*ledger.Summary, error)
}

type Handler struct {
	ledger     Ledger
	validator  *validator.Validate
	dbStats    func() sql.DBStats
	redisStats func() *redis.PoolStats
	redisPing  func(ctx context.Context) error
	dbPing     func(ctx context.Context) error
}

type HandlerConfig struct {
	Ledger     Ledger
	DBStats    func() sql.DBStats
	RedisStats func() *redis.PoolStats
	RedisPing  func(ctx context.Context) error
	DBPing     func(ctx context.Context) error
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		ledger:     cfg.Ledger,
		validator:  validator.New(validator.WithRequiredStructEnabled()),
		dbStats:    cfg.DBStats,
		redisStats: cfg.RedisStats,
		redisPing:  cfg.RedisPing,
		dbPing:     cfg.DBPing,
	}
}

// RegisterRoutes mounts the privileged ledger and stats endpoints behind
// adminOnly. GET /admin itself belongs to the user handler.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	adminOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(adminOnly)

		r.Post("/admin", h.Mutate)
		r.Get("/admin/transactions", h.ListTransactions)
		r.Get("/admin/reconcile", h.Reconcile)

		r.Get("/admin/stats", h.GetSystemStats)
		r.Get("/admin/stats/db", h.GetDatabaseStats)
		r.Get("/admin/stats/redis", h.GetRedisStats)
		r.Get("/admin/stats/runtime", h.GetRuntimeStats)
	})
}

// Mutate dispatches update_energy (audited delta) and set_energy
// (unaudited override).
func (h *Handler) Mutate(w http.ResponseWriter, r *http.Request) {
	var req MutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	actorID := middleware.GetActorID(r.Context())

	var (
		res *ledger.MutationResult
		err error
	)

	switch req.Action {
	case ActionUpdateEnergy:
		if req.Amount == nil {
			core.BadRequest(w, "amount is required")
			return
		}
		res, err = h.ledger.ApplyDelta(
			r.Context(),
			*req.UserID,
			*req.Amount,
			req.Reason,
			actorID,
		)
	case ActionSetEnergy:
		if req.Energy == nil {
			core.BadRequest(w, "energy is required")
			return
		}
		res, err = h.ledger.SetAbsolute(
			r.Context(),
			*req.UserID,
			*req.Energy,
			actorID,
		)
	}

	if err != nil {
		writeLedgerError(w, err)
		return
	}

	core.OK(w, toMutationResponse(res))
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			core.BadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	txs, err := h.ledger.History(r.Context(), userID, limit)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	core.OK(w, TransactionListResponse{
		Success:      true,
		Transactions: toTransactionResponses(txs),
	})
}

func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	rec, err := h.ledger.Reconcile(r.Context(), userID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	core.OK(w, ReconcileResponse{
		Success:    true,
		UserID:     rec.UserID,
		Balance:    rec.Balance,
		LedgerSum:  rec.LedgerSum,
		Drift:      rec.Drift,
		Consistent: rec.Consistent,
	})
}

func userIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		core.BadRequest(w, "user_id must be an integer")
		return 0, false
	}
	return userID, true
}

func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "user")
	case core.IsAppError(err):
		core.JSONError(w, err)
	default:
		core.InternalServerError(w, err)
	}
}
