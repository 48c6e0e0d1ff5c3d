package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"board/config"
	"board/internal/domain/service"
)

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Token = secret

	return cfg
}

func TestJWTIssuer_SignAndParse(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestConfig("test_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	now := time.Now().Truncate(time.Second)
	claims := &service.TokenClaims{
		Issuer:    "self",
		Subject:   "a@b.com",
		IssuedAt:  now,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
		Scope:     "",
		NickName:  "nick",
	}

	token, err := issuer.Sign(claims)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "self", parsed.Issuer)
	assert.Equal(t, "a@b.com", parsed.Subject)
	assert.Equal(t, "", parsed.Scope)
	assert.Equal(t, "nick", parsed.NickName)
	assert.Equal(t, now.Unix(), parsed.IssuedAt.Unix())
	assert.Equal(t, now.Add(7*24*time.Hour).Unix(), parsed.ExpiresAt.Unix())
}

func TestJWTIssuer_ParseInvalidToken(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestConfig("test_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	claims, err := issuer.Parse("clearly-not-a-jwt-token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTIssuer_ParseWrongSecret(t *testing.T) {
	signer, err := NewJWTIssuer(newTestConfig("secret_one_very_long_for_testing"))
	require.NoError(t, err)
	verifier, err := NewJWTIssuer(newTestConfig("secret_two_very_long_for_testing"))
	require.NoError(t, err)

	now := time.Now()
	token, err := signer.Sign(&service.TokenClaims{
		Issuer:    "self",
		Subject:   "a@b.com",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	require.NoError(t, err)

	claims, err := verifier.Parse(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTIssuer_ParseExpiredToken(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestConfig("test_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	now := time.Now()
	token, err := issuer.Sign(&service.TokenClaims{
		Issuer:    "self",
		Subject:   "a@b.com",
		IssuedAt:  now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	})
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestNewJWTIssuer_MissingSecret(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestConfig(""))
	assert.Error(t, err)
	assert.Nil(t, issuer)
}
