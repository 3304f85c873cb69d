// AngelaMos | 2026
// dto.go

package admin

import (
	"time"

	"github.com/carterperez-dev/templates/energy-service/internal/ledger"
)

const (
	ActionUpdateEnergy = "update_energy"
	ActionSetEnergy    = "set_energy"
)

// MutationRequest is the body of POST /admin. Amount applies to
// update_energy and Energy to set_energy.
type MutationRequest struct {
	Action string `json:"action"  validate:"required,oneof=update_energy set_energy"`
	UserID *int64 `json:"user_id" validate:"required"`
	Amount *int64 `json:"amount"`
	Energy *int64 `json:"energy"`
	Reason string `json:"reason"  validate:"max=500"`
}

type MutationResponse struct {
	Success       bool   `json:"success"`
	NewEnergy     int64  `json:"new_energy"`
	Kind          string `json:"kind"`
	Audited       bool   `json:"audited"`
	TransactionID int64  `json:"transaction_id,omitempty"`
}

type TransactionResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Amount    int64     `json:"amount"`
	Reason    string    `json:"reason"`
	AdminID   *int64    `json:"admin_id"`
	CreatedAt time.Time `json:"created_at"`
}

type TransactionListResponse struct {
	Success      bool                  `json:"success"`
	Transactions []TransactionResponse `json:"transactions"`
}

type ReconcileResponse struct {
	Success    bool  `json:"success"`
	UserID     int64 `json:"user_id"`
	Balance    int64 `json:"balance"`
	LedgerSum  int64 `json:"ledger_sum"`
	Drift      int64 `json:"drift"`
	Consistent bool  `json:"consistent"`
}

func toMutationResponse(res *ledger.MutationResult) MutationResponse {
	return MutationResponse{
		Success:       true,
		NewEnergy:     res.NewBalance,
		Kind:          string(res.Kind),
		Audited:       res.Audited,
		TransactionID: res.TransactionID,
	}
}

func toTransactionResponses(txs []ledger.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, TransactionResponse{
			ID:        tx.ID,
			UserID:    tx.UserID,
			Amount:    tx.Amount,
			Reason:    tx.Reason,
			AdminID:   tx.ActorID,
			CreatedAt: tx.CreatedAt,
		})
	}
	return out
}
