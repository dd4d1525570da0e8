package security

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Configure("unit-test-secret", time.Hour)

	token, err := GenerateToken(42, "me@example.com")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "me@example.com", claims.Email)
	assert.Equal(t, time.Hour, TokenTTL())
}

func TestValidateToken_Rejects(t *testing.T) {
	Configure("unit-test-secret", time.Hour)
	token, err := GenerateToken(1, "a@b.c")
	require.NoError(t, err)

	t.Run("tampered signature", func(t *testing.T) {
		_, err := ValidateToken(token[:len(token)-2] + "xx")
		assert.Error(t, err)
	})

	t.Run("other secret", func(t *testing.T) {
		Configure("another-secret", 0)
		defer Configure("unit-test-secret", 0)
		_, err := ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		jwtExpirationTime = -time.Minute
		defer func() { jwtExpirationTime = time.Hour }()
		expired, err := GenerateToken(1, "a@b.c")
		require.NoError(t, err)
		_, err = ValidateToken(expired)
		assert.Error(t, err)
	})
}

func TestExtractSignature(t *testing.T) {
	sig, err := ExtractSignature("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "c", sig)

	for _, bad := range []string{"", "a.b", "a.b.", strings.Repeat(".", 3)} {
		_, err = ExtractSignature(bad)
		assert.Error(t, err, bad)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)

	assert.NoError(t, CheckPasswordHash("s3cret!", hash))
	assert.ErrorIs(t, CheckPasswordHash("wrong", hash), ErrInvalidCredentials)

	_, err = HashPassword("")
	assert.Error(t, err)
}

func TestAdminList(t *testing.T) {
	admins := NewAdminList([]string{" Owner@Example.com ", ""})

	assert.True(t, admins.IsAdmin("owner@example.com"))
	assert.True(t, admins.IsAdmin("OWNER@EXAMPLE.COM"))
	assert.False(t, admins.IsAdmin("guest@example.com"))
	assert.False(t, admins.IsAdmin(""))

	var nilList *AdminList
	assert.False(t, nilList.IsAdmin("owner@example.com"))
}
