package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordGuard_HashAndVerify(t *testing.T) {
	guard := NewPasswordGuard(bcrypt.MinCost)

	hash, err := guard.Hash("SuperSecret123!")
	require.NoError(t, err)
	assert.NotEqual(t, "SuperSecret123!", hash)

	assert.True(t, guard.Verify(hash, "SuperSecret123!"))
	assert.False(t, guard.Verify(hash, "SuperSecret123?"))
	assert.False(t, guard.Verify(hash, ""))
}

func TestPasswordGuard_HashesAreSalted(t *testing.T) {
	guard := NewPasswordGuard(bcrypt.MinCost)

	h1, err := guard.Hash("SuperSecret123!")
	require.NoError(t, err)
	h2, err := guard.Hash("SuperSecret123!")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestNewPasswordGuard_CostFallback(t *testing.T) {
	// Out-of-range costs fall back to the bcrypt default.
	for _, cost := range []int{-1, 0, bcrypt.MaxCost + 1, 100} {
		guard := NewPasswordGuard(cost)
		assert.Equal(t, bcrypt.DefaultCost, guard.cost)
	}

	guard := NewPasswordGuard(bcrypt.MinCost)
	assert.Equal(t, bcrypt.MinCost, guard.cost)
}

func TestPasswordGuard_VerifyGarbageHash(t *testing.T) {
	guard := NewPasswordGuard(bcrypt.MinCost)
	assert.False(t, guard.Verify("not-a-bcrypt-hash", "whatever"))
}
