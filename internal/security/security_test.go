package security

import (
	"strings"
	"testing"
	"time"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_minimum_32_chars_long"

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	account := &models.Account{ID: 42, Username: "emily"}

	token, err := issuer.GenerateJWT(account)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.AccountID)
	assert.Equal(t, "emily", claims.Username)
}

func TestTokenIssuer_RejectsInvalidTokens(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	other := NewTokenIssuer("a_completely_different_secret_of_32_chars", time.Hour)

	foreign, err := other.GenerateJWT(&models.Account{ID: 1, Username: "james"})
	require.NoError(t, err)

	expiredIssuer := NewTokenIssuer(testSecret, time.Hour)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredIssuer.GenerateJWT(&models.Account{ID: 1, Username: "james"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "Empty token", token: ""},
		{name: "Garbage", token: "not.a.jwt"},
		{name: "Wrong secret", token: foreign},
		{name: "Expired", token: expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.ValidateJWT(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("AgileWeb123")
	require.NoError(t, err)

	assert.NotEqual(t, "AgileWeb123", hash)
	assert.True(t, CheckPassword(hash, "AgileWeb123"))
	assert.False(t, CheckPassword(hash, "agileweb123"))
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text", input: "  james shared Aloe Vera  ", want: "james shared Aloe Vera"},
		{name: "script tag", input: "hi<script>alert(1)</script>", want: "hi"},
		{name: "null bytes", input: "a\x00b", want: "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.input))
		})
	}

	long := SanitizeText(strings.Repeat("x", 2000))
	assert.Len(t, long, maxTextLength)
}
