// AngelaMos | 2026
// registry.go

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/templates/energy-service/internal/core"
)

const sessionKeyPrefix = "session:"

// Registry is a Redis-backed session store. Tokens are kept hashed and map
// to the owning user id; a zero ttl keeps them until removed.
type Registry struct {
	client     *redis.Client
	tokenBytes int
	ttl        time.Duration
}

func NewRegistry(client *redis.Client, tokenBytes int, ttl time.Duration) *Registry {
	return &Registry{
		client:     client,
		tokenBytes: tokenBytes,
		ttl:        ttl,
	}
}

func (r *Registry) Mint(ctx context.Context, user *UserInfo) (string, error) {
	token, err := core.GenerateSecureToken(r.tokenBytes)
	if err != nil {
		return "", fmt.Errorf("mint session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(token), user.ID, r.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

func (r *Registry) Validate(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("validate session: %w", core.ErrTokenInvalid)
	}

	n, err := r.client.Exists(ctx, sessionKey(token)).Result()
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("validate session: %w", core.ErrTokenInvalid)
	}

	return nil
}

func sessionKey(token string) string {
	return sessionKeyPrefix + core.HashToken(token)
}

var (
	_ SessionIssuer    = (*Registry)(nil)
	_ SessionValidator = (*Registry)(nil)
)
