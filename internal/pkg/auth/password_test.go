package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashAndCheck(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("Secret123!")
	require.NoError(t, err)
	require.NotEqual(t, "Secret123!", hash)

	assert.True(t, hasher.Check(hash, "Secret123!"))
	assert.False(t, hasher.Check(hash, "secret123!"))
	assert.False(t, hasher.Check(hash, ""))
}

func TestPasswordHasherCostFallback(t *testing.T) {
	hasher := NewPasswordHasher(99)
	assert.Equal(t, DefaultPasswordCost, hasher.cost)

	hasher = NewPasswordHasher(-1)
	assert.Equal(t, DefaultPasswordCost, hasher.cost)
}
