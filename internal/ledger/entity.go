// AngelaMos | 2026
// entity.go

package ledger

import (
	"time"
)

// Transaction is an append-only ledger entry. ActorID is nil when no admin
// initiated the change.
type Transaction struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Amount    int64     `db:"amount"`
	Reason    string    `db:"reason"`
	ActorID   *int64    `db:"admin_id"`
	CreatedAt time.Time `db:"created_at"`
}

// MutationKind tags how a balance was changed.
type MutationKind string

const (
	// KindDelta is an audited increment recorded in the ledger.
	KindDelta MutationKind = "delta"
	// KindOverride overwrites the balance without a ledger entry and breaks
	// reconciliation for that user.
	KindOverride MutationKind = "override"
)

type MutationResult struct {
	Kind          MutationKind
	UserID        int64
	NewBalance    int64
	Audited       bool
	TransactionID int64
}

type Reconciliation struct {
	UserID     int64 `db:"user_id"`
	Balance    int64 `db:"balance"`
	LedgerSum  int64 `db:"ledger_sum"`
	Drift      int64 `db:"-"`
	Consistent bool  `db:"-"`
}

type Summary struct {
	Users        int64 `db:"users"`
	TotalEnergy  int64 `db:"total_energy"`
	Transactions int64 `db:"transactions"`
}
