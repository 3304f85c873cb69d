// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/energy-service/internal/auth"
	"github.com/carterperez-dev/templates/energy-service/internal/core"
)

type stubRepo struct {
	created   *User
	lookedUp  string
	byEmail   map[string]*User
	passwords map[int64]string
}

func (s *stubRepo) Create(_ context.Context, u *User) error {
	u.ID = 7
	u.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.created = u
	return nil
}

func (s *stubRepo) GetByID(_ context.Context, id int64) (*User, error) {
	if s.created != nil && s.created.ID == id {
		return s.created, nil
	}
	return nil, core.ErrNotFound
}

func (s *stubRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	s.lookedUp = email
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, core.ErrNotFound
}

func (s *stubRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	if s.passwords == nil {
		s.passwords = map[int64]string{}
	}
	s.passwords[id] = hash
	return nil
}

func (s *stubRepo) List(context.Context) ([]User, error) {
	return []User{}, nil
}

func TestService_CreateNormalizesEmail(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	info, err := svc.Create(context.Background(), auth.NewIdentity{
		Email:        "  Alice@Test.COM ",
		PasswordHash: "h",
		Name:         "Alice",
		Energy:       100,
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@test.com", repo.created.Email)
	assert.Equal(t, int64(7), info.ID)
	assert.Equal(t, int64(100), info.Energy)
	assert.False(t, info.CreatedAt.IsZero())
}

func TestService_GetByEmailNormalizes(t *testing.T) {
	repo := &stubRepo{byEmail: map[string]*User{
		"bob@test.com": {ID: 3, Email: "bob@test.com", IsAdmin: true},
	}}
	svc := NewService(repo)

	info, err := svc.GetByEmail(context.Background(), " BOB@test.com")
	require.NoError(t, err)
	assert.Equal(t, "bob@test.com", repo.lookedUp)
	assert.True(t, info.IsAdmin)

	_, err = svc.GetByEmail(context.Background(), "ghost@test.com")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestService_UpdatePassword(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	require.NoError(t, svc.UpdatePassword(context.Background(), 3, "new-hash"))
	assert.Equal(t, "new-hash", repo.passwords[3])
}
