// AngelaMos | 2026
// service.go

package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/templates/energy-service/internal/core"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
	maxReasonLength     = 500
)

var tracer = otel.Tracer("energy-service/ledger")

type Service struct {
	repo          Repository
	defaultReason string
}

func NewService(repo Repository, defaultReason string) *Service {
	return &Service{
		repo:          repo,
		defaultReason: defaultReason,
	}
}

// ApplyDelta adds amount (which may be negative) to the user's balance and
// records who did it. actorID 0 records no actor.
func (s *Service) ApplyDelta(
	ctx context.Context,
	userID, amount int64,
	reason string,
	actorID int64,
) (*MutationResult, error) {
	ctx, span := tracer.Start(ctx, "ledger.ApplyDelta")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("ledger.user_id", userID),
		attribute.Int64("ledger.amount", amount),
		attribute.Int64("ledger.actor_id", actorID),
	)

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = s.defaultReason
	}
	if utf8.RuneCountInString(reason) > maxReasonLength {
		return nil, core.ValidationError(
			fmt.Sprintf("reason must be at most %d characters", maxReasonLength),
		)
	}

	entry := Transaction{
		UserID: userID,
		Amount: amount,
		Reason: reason,
	}
	if actorID != 0 {
		entry.ActorID = &actorID
	}

	recorded, balance, err := s.repo.ApplyDelta(ctx, entry)
	if err != nil {
		core.RecordSpanError(ctx, err)
		return nil, err
	}

	slog.InfoContext(ctx, "ledger delta applied",
		"user_id", userID,
		"amount", amount,
		"actor_id", actorID,
		"transaction_id", recorded.ID,
		"new_balance", balance,
	)

	return &MutationResult{
		Kind:          KindDelta,
		UserID:        userID,
		NewBalance:    balance,
		Audited:       true,
		TransactionID: recorded.ID,
	}, nil
}

// SetAbsolute overwrites the balance without a ledger entry. The user's
// ledger no longer sums to the balance afterwards.
func (s *Service) SetAbsolute(
	ctx context.Context,
	userID, value, actorID int64,
) (*MutationResult, error) {
	ctx, span := tracer.Start(ctx, "ledger.SetAbsolute")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("ledger.user_id", userID),
		attribute.Int64("ledger.value", value),
		attribute.Int64("ledger.actor_id", actorID),
		attribute.Bool("ledger.audited", false),
	)

	balance, err := s.repo.SetAbsolute(ctx, userID, value)
	if err != nil {
		core.RecordSpanError(ctx, err)
		return nil, err
	}

	slog.WarnContext(ctx, "unaudited balance override",
		"user_id", userID,
		"actor_id", actorID,
		"new_balance", balance,
	)

	return &MutationResult{
		Kind:       KindOverride,
		UserID:     userID,
		NewBalance: balance,
		Audited:    false,
	}, nil
}

// History returns the user's ledger entries, newest first.
func (s *Service) History(
	ctx context.Context,
	userID int64,
	limit int,
) ([]Transaction, error) {
	ctx, span := tracer.Start(ctx, "ledger.History")
	defer span.End()

	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *Service) Reconcile(
	ctx context.Context,
	userID int64,
) (*Reconciliation, error) {
	ctx, span := tracer.Start(ctx, "ledger.Reconcile")
	defer span.End()

	rec, err := s.repo.Reconcile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !rec.Consistent {
		slog.InfoContext(ctx, "ledger drift detected",
			"user_id", userID,
			"balance", rec.Balance,
			"ledger_sum", rec.LedgerSum,
			"drift", rec.Drift,
		)
	}

	return rec, nil
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	ctx, span := tracer.Start(ctx, "ledger.Summary")
	defer span.End()

	return s.repo.Summary(ctx)
}
