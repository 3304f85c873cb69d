// AngelaMos | 2026
// gate.go

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/templates/energy-service/internal/core"
)

// Gate decides whether an actor may use the privileged ledger surface.
// The actor id is asserted by the caller and looked up fresh each time.
type Gate struct {
	users UserProvider
}

func NewGate(users UserProvider) *Gate {
	return &Gate{users: users}
}

// RequireAdmin returns the actor when it exists and holds the admin flag.
// Unknown ids and non-admins both fail with core.ErrForbidden.
func (g *Gate) RequireAdmin(
	ctx context.Context,
	actorID int64,
) (*UserInfo, error) {
	ctx, span := tracer.Start(ctx, "auth.RequireAdmin")
	defer span.End()

	actor, err := g.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("require admin: %w", core.ErrForbidden)
		}
		core.RecordSpanError(ctx, err)
		return nil, fmt.Errorf("load actor: %w", err)
	}

	if !actor.IsAdmin {
		return nil, fmt.Errorf("require admin: %w", core.ErrForbidden)
	}

	return actor, nil
}

func (g *Gate) Authorize(ctx context.Context, actorID int64) error {
	_, err := g.RequireAdmin(ctx, actorID)
	return err
}
