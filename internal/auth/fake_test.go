// AngelaMos | 2026
// fake_test.go

package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/carterperez-dev/templates/energy-service/internal/core"
)

type memUsers struct {
	mu        sync.Mutex
	nextID    int64
	byID      map[int64]*UserInfo
	byEmail   map[string]int64
	failWith  error
	updateErr error
	updates   int
}

func newMemUsers() *memUsers {
	return &memUsers{
		byID:    make(map[int64]*UserInfo),
		byEmail: make(map[string]int64),
	}
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	id, ok := m.byEmail[NormalizeEmail(email)]
	if !ok {
		return nil, core.ErrNotFound
	}
	u := *m.byID[id]
	return &u, nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	u, ok := m.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (m *memUsers) Create(_ context.Context, identity NewIdentity) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	email := NormalizeEmail(identity.Email)
	if _, exists := m.byEmail[email]; exists {
		return nil, core.ErrDuplicateKey
	}

	m.nextID++
	u := &UserInfo{
		ID:           m.nextID,
		Email:        email,
		Name:         identity.Name,
		PasswordHash: identity.PasswordHash,
		Energy:       identity.Energy,
		IsAdmin:      identity.IsAdmin,
		CreatedAt:    time.Now(),
	}
	m.byID[u.ID] = u
	m.byEmail[email] = u.ID

	c := *u
	return &c, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.updates++
	if m.updateErr != nil {
		return m.updateErr
	}

	u, ok := m.byID[userID]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// seed inserts a row directly, bypassing registration.
func (m *memUsers) seed(email, passwordHash string, energy int64, isAdmin bool) *UserInfo {
	u, err := m.Create(context.Background(), NewIdentity{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         "Seeded",
		Energy:       energy,
		IsAdmin:      isAdmin,
	})
	if err != nil {
		panic(err)
	}
	return u
}

type failingIssuer struct{}

func (failingIssuer) Mint(context.Context, *UserInfo) (string, error) {
	return "", errors.New("entropy exhausted")
}
