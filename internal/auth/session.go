// AngelaMos | 2026
// session.go

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/carterperez-dev/templates/energy-service/internal/core"
)

// SessionIssuer mints the bearer token returned after register or login.
type SessionIssuer interface {
	Mint(ctx context.Context, user *UserInfo) (string, error)
}

// SessionValidator decides whether a presented bearer token is acceptable.
type SessionValidator interface {
	Validate(ctx context.Context, token string) error
}

// OpaqueIssuer mints random tokens that are neither stored nor bound to the
// user. Pair it with PresenceValidator.
type OpaqueIssuer struct {
	tokenBytes int
}

func NewOpaqueIssuer(tokenBytes int) *OpaqueIssuer {
	return &OpaqueIssuer{tokenBytes: tokenBytes}
}

func (i *OpaqueIssuer) Mint(_ context.Context, _ *UserInfo) (string, error) {
	token, err := core.GenerateSecureToken(i.tokenBytes)
	if err != nil {
		return "", fmt.Errorf("mint session: %w", err)
	}
	return token, nil
}

// PresenceValidator accepts any non-empty token.
type PresenceValidator struct{}

func (PresenceValidator) Validate(_ context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("validate session: %w", core.ErrTokenInvalid)
	}
	return nil
}

var (
	_ SessionIssuer    = (*OpaqueIssuer)(nil)
	_ SessionValidator = PresenceValidator{}
)
