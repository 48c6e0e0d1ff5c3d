package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"board/config"
)

func newTestHasher() *bcryptHasher {
	// MinCost keeps the tests fast; production cost comes from config.
	return &bcryptHasher{cost: bcrypt.MinCost}
}

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := newTestHasher()

	password := "pw123"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := newTestHasher()
	password := "pw123"

	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("wrong-password", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_HashesDiffer(t *testing.T) {
	hasher := newTestHasher()

	// bcrypt salts every digest, so two hashes of the same input differ.
	first, err := hasher.Hash("pw123")
	assert.NoError(t, err)
	second, err := hasher.Hash("pw123")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestNewBcryptHasher_CostFromConfig(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}}

	hasher, ok := NewBcryptHasher(cfg).(*bcryptHasher)
	assert.True(t, ok)
	assert.Equal(t, bcrypt.MinCost, hasher.cost)

	// Out-of-range cost falls back to the bcrypt default.
	cfg.Auth.BcryptCost = bcrypt.MaxCost + 1
	hasher, ok = NewBcryptHasher(cfg).(*bcryptHasher)
	assert.True(t, ok)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}
