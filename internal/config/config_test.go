package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptCostConfigurable(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_VERIFY_SECRET", "verify")
	t.Setenv("JWT_RESET_SECRET", "reset")

	cfg, err := LoadConfig("does-not-exist.yaml")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)

	// Environment overrides the default
	t.Setenv("AUTH_BCRYPT_COST", "4")
	cfg, err = LoadConfig("does-not-exist.yaml")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
}
