// AngelaMos | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/energy")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("BOOTSTRAP_ADMIN_EMAIL", "Root@Example.com")

	c, err := load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/energy", c.Database.URL)
	assert.Equal(t, SessionModeOpaque, c.Session.Mode)
	assert.Equal(t, 32, c.Session.TokenBytes)
	assert.Equal(t, int64(100), c.Bootstrap.DefaultEnergy)
	assert.Equal(t, int64(100000), c.Bootstrap.AdminEnergy)
	assert.Equal(t, "Root@Example.com", c.Bootstrap.AdminEmail)
	assert.Equal(t, "Issued by administrator", c.Ledger.DefaultReason)
	assert.Equal(t, []string{"*"}, c.CORS.AllowedOrigins)
	assert.Equal(t, 86400, c.CORS.MaxAge)
	assert.True(t, c.Database.AutoMigrate)
	assert.Equal(t, 30*time.Second, c.Server.ReadTimeout)
}

func TestLoad_FileIdentities(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/energy")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	path := writeConfig(t, `
bootstrap:
  default_energy: 50
  identities:
    - email: ops@example.com
      energy: 5000
      is_admin: true
    - email: tester@example.com
      energy: 900
ledger:
  default_reason: manual grant
`)

	c, err := load(path)
	require.NoError(t, err)

	require.Len(t, c.Bootstrap.Identities, 2)
	assert.Equal(t, "ops@example.com", c.Bootstrap.Identities[0].Email)
	assert.Equal(t, int64(5000), c.Bootstrap.Identities[0].Energy)
	assert.True(t, c.Bootstrap.Identities[0].IsAdmin)
	assert.False(t, c.Bootstrap.Identities[1].IsAdmin)
	assert.Equal(t, int64(50), c.Bootstrap.DefaultEnergy)
	assert.Equal(t, "manual grant", c.Ledger.DefaultReason)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		body string
	}{
		{
			name: "missing database url",
			env:  map[string]string{"REDIS_URL": "redis://localhost:6379/0"},
		},
		{
			name: "missing redis url",
			env:  map[string]string{"DATABASE_URL": "postgres://localhost/energy"},
		},
		{
			name: "unknown session mode",
			env: map[string]string{
				"DATABASE_URL": "postgres://localhost/energy",
				"REDIS_URL":    "redis://localhost:6379/0",
				"SESSION_MODE": "cookie",
			},
		},
		{
			name: "bootstrap identity without email",
			env: map[string]string{
				"DATABASE_URL": "postgres://localhost/energy",
				"REDIS_URL":    "redis://localhost:6379/0",
			},
			body: "bootstrap:\n  identities:\n    - energy: 10\n",
		},
		{
			name: "wildcard origin with credentials",
			env: map[string]string{
				"DATABASE_URL": "postgres://localhost/energy",
				"REDIS_URL":    "redis://localhost:6379/0",
			},
			body: "cors:\n  allow_credentials: true\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "")
			t.Setenv("REDIS_URL", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.body != "" {
				path = writeConfig(t, tt.body)
			}

			_, err := load(path)
			assert.Error(t, err)
		})
	}
}

func TestServerConfig_Address(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 9000}
	assert.Equal(t, "127.0.0.1:9000", s.Address())
}
