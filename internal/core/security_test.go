// AngelaMos | 2026
// security_test.go

package core

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword("pw", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("other", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVerifyPassword_Legacy(t *testing.T) {
	legacy := LegacyDigest("hunter2")
	assert.True(t, IsLegacyHash(legacy))
	assert.Equal(t,
		"f52fbd32b2b3b86ff88ef6c490628285f482af15ddcb29541f94bcf526a3f6c7",
		legacy,
	)

	ok, err := VerifyPassword("hunter2", legacy)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("hunter3", legacy)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordWithRehash_UpgradesLegacy(t *testing.T) {
	valid, newHash, err := VerifyPasswordWithRehash("pw", LegacyDigest("pw"))
	require.NoError(t, err)
	assert.True(t, valid)
	require.NotEmpty(t, newHash)
	assert.False(t, IsLegacyHash(newHash))

	ok, err := VerifyPassword("pw", newHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPasswordWithRehash_CurrentHashUntouched(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)

	valid, newHash, err := VerifyPasswordWithRehash("pw", hash)
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Empty(t, newHash)
}

func TestVerifyPassword_Malformed(t *testing.T) {
	_, err := VerifyPassword("pw", "not-a-hash")
	assert.Error(t, err)

	_, err = VerifyPassword("pw", "$bcrypt$v=19$m=1,t=1,p=1$AA$AA")
	assert.Error(t, err)
}

func TestVerifyPasswordTimingSafe_NilHash(t *testing.T) {
	valid, newHash, err := VerifyPasswordTimingSafe("pw", nil)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Empty(t, newHash)
}

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotContains(t, token, "=")
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, 32)

	other, err := GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
