// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

// User is an identity record. Energy is only changed by the ledger.
type User struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Energy       int64     `db:"energy"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
}
