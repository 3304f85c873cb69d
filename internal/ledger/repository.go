// AngelaMos | 2026
// repository.go

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/templates/energy-service/internal/core"
)

type Repository interface {
	ApplyDelta(ctx context.Context, entry Transaction) (*Transaction, int64, error)
	SetAbsolute(ctx context.Context, userID, value int64) (int64, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]Transaction, error)
	Reconcile(ctx context.Context, userID int64) (*Reconciliation, error)
	Summary(ctx context.Context) (*Summary, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// ApplyDelta increments the balance in place and appends the ledger entry
// in the same transaction. The returned balance is the one written by this
// statement.
func (r *repository) ApplyDelta(
	ctx context.Context,
	entry Transaction,
) (*Transaction, int64, error) {
	var balance int64

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		incrementQuery := `
			UPDATE users
			SET energy = energy + $1
			WHERE id = $2
			RETURNING energy`

		err := tx.GetContext(ctx, &balance, incrementQuery, entry.Amount, entry.UserID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("increment balance: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("increment balance: %w", err)
		}

		insertQuery := `
			INSERT INTO energy_transactions (user_id, amount, reason, admin_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`

		err = tx.GetContext(ctx, &entry, insertQuery,
			entry.UserID,
			entry.Amount,
			entry.Reason,
			entry.ActorID,
		)
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return &entry, balance, nil
}

// SetAbsolute overwrites the balance and writes no ledger entry.
func (r *repository) SetAbsolute(
	ctx context.Context,
	userID, value int64,
) (int64, error) {
	query := `
		UPDATE users
		SET energy = $1
		WHERE id = $2
		RETURNING energy`

	var balance int64
	err := r.db.GetContext(ctx, &balance, query, value, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("set balance: %w", core.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("set balance: %w", err)
	}

	return balance, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID int64,
	limit int,
) ([]Transaction, error) {
	query := `
		SELECT id, user_id, amount, reason, admin_id, created_at
		FROM energy_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	txs := []Transaction{}
	if err := r.db.SelectContext(ctx, &txs, query, userID, limit); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return txs, nil
}

func (r *repository) Reconcile(
	ctx context.Context,
	userID int64,
) (*Reconciliation, error) {
	query := `
		SELECT u.id AS user_id,
		       u.energy AS balance,
		       COALESCE(SUM(t.amount), 0)::BIGINT AS ledger_sum
		FROM users u
		LEFT JOIN energy_transactions t ON t.user_id = u.id
		WHERE u.id = $1
		GROUP BY u.id, u.energy`

	var rec Reconciliation
	err := r.db.GetContext(ctx, &rec, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reconcile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}

	rec.Drift = rec.Balance - rec.LedgerSum
	rec.Consistent = rec.Drift == 0

	return &rec, nil
}

func (r *repository) Summary(ctx context.Context) (*Summary, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COALESCE(SUM(energy), 0)::BIGINT FROM users) AS total_energy,
			(SELECT COUNT(*) FROM energy_transactions) AS transactions`

	var s Summary
	if err := r.db.GetContext(ctx, &s, query); err != nil {
		return nil, fmt.Errorf("ledger summary: %w", err)
	}

	return &s, nil
}
