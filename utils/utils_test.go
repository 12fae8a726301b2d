package utils

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPassword(hash, "s3cret-password"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
}

func TestCheckPasswordEmptyHash(t *testing.T) {
	// A roster entry without a credential must never authenticate,
	// not even with an empty password.
	assert.False(t, CheckPassword("", ""))
	assert.False(t, CheckPassword("", "anything"))
}

func TestHashPasswordProducesDistinctHashes(t *testing.T) {
	h1, err := HashPassword("same-password")
	assert.NoError(t, err)
	h2, err := HashPassword("same-password")
	assert.NoError(t, err)

	// bcrypt salts per call
	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPassword(h1, "same-password"))
	assert.True(t, CheckPassword(h2, "same-password"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
	assert.Equal(t, "user@example.com", NormalizeEmail("user@example.com"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestGenerateFormToken(t *testing.T) {
	token, err := GenerateFormToken()
	assert.NoError(t, err)
	assert.Len(t, token, FormTokenBytes*2)

	decoded, err := hex.DecodeString(token)
	assert.NoError(t, err)
	assert.Len(t, decoded, FormTokenBytes)
}

func TestGenerateFormTokenUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateFormToken()
		assert.NoError(t, err)
		assert.False(t, seen[token], "token generated twice: %s", token)
		seen[token] = true
	}
}

func TestParseDeadline(t *testing.T) {
	d, err := ParseDeadline("2026-10-01")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDeadline("2026-10-01T12:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, 12, d.Hour())

	_, err = ParseDeadline("next friday")
	assert.Error(t, err)

	_, err = ParseDeadline("")
	assert.Error(t, err)
}

func TestGenerateUUID(t *testing.T) {
	id1 := GenerateUUID()
	id2 := GenerateUUID()
	assert.NotEmpty(t, id1)
	assert.NotEqual(t, id1, id2)
	assert.Len(t, id1, 36)
}
