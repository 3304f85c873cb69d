// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/templates/energy-service/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

const defaultDisplayName = "User"

var tracer = otel.Tracer("energy-service/auth")

type UserInfo struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Energy       int64
	IsAdmin      bool
	CreatedAt    time.Time
}

// NewIdentity is the row written on registration.
type NewIdentity struct {
	Email        string
	PasswordHash string
	Name         string
	Energy       int64
	IsAdmin      bool
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id int64) (*UserInfo, error)
	Create(ctx context.Context, identity NewIdentity) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Service struct {
	userProvider UserProvider
	sessions     SessionIssuer
	policy       *BootstrapPolicy
}

func NewService(
	userProvider UserProvider,
	sessions SessionIssuer,
	policy *BootstrapPolicy,
) *Service {
	return &Service{
		userProvider: userProvider,
		sessions:     sessions,
		policy:       policy,
	}
}

// Register creates an identity with the grant its email is entitled to and
// mints a session for it.
func (s *Service) Register(
	ctx context.Context,
	email, password, name string,
) (*UserInfo, string, error) {
	ctx, span := tracer.Start(ctx, "auth.Register")
	defer span.End()

	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("register: %w", core.ErrInvalidInput)
	}

	if strings.TrimSpace(name) == "" {
		name = defaultDisplayName
	}

	passwordHash, err := core.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	grant := s.policy.GrantFor(email)

	user, err := s.userProvider.Create(ctx, NewIdentity{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Energy:       grant.Energy,
		IsAdmin:      grant.IsAdmin,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, "", ErrEmailExists
		}
		core.RecordSpanError(ctx, err)
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("user.id", user.ID),
		attribute.Bool("user.is_admin", user.IsAdmin),
	)

	if user.IsAdmin {
		slog.InfoContext(ctx, "admin identity registered",
			"user_id", user.ID,
			"energy", user.Energy,
		)
	}

	token, err := s.sessions.Mint(ctx, user)
	if err != nil {
		core.RecordSpanError(ctx, err)
		return nil, "", fmt.Errorf("mint session: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Login(
	ctx context.Context,
	email, password string,
) (*UserInfo, string, error) {
	ctx, span := tracer.Start(ctx, "auth.Login")
	defer span.End()

	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("login: %w", core.ErrInvalidInput)
	}

	user, err := s.userProvider.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(password, nil)
			return nil, "", ErrInvalidCredentials
		}
		core.RecordSpanError(ctx, err)
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		password,
		&user.PasswordHash,
	)
	if err != nil {
		slog.WarnContext(ctx, "stored credential unreadable",
			"user_id", user.ID,
			"error", err,
		)
		return nil, "", ErrInvalidCredentials
	}

	if !valid {
		return nil, "", ErrInvalidCredentials
	}

	if newHash != "" {
		if err := s.userProvider.UpdatePassword(ctx, user.ID, newHash); err != nil {
			slog.WarnContext(ctx, "credential upgrade failed",
				"user_id", user.ID,
				"error", err,
			)
		} else {
			user.PasswordHash = newHash
		}
	}

	span.SetAttributes(attribute.Int64("user.id", user.ID))

	token, err := s.sessions.Mint(ctx, user)
	if err != nil {
		core.RecordSpanError(ctx, err)
		return nil, "", fmt.Errorf("mint session: %w", err)
	}

	return user, token, nil
}

func (s *Service) GetProfile(
	ctx context.Context,
	userID int64,
) (*UserInfo, error) {
	ctx, span := tracer.Start(ctx, "auth.GetProfile")
	defer span.End()

	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user, nil
}
