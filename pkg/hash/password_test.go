package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hashed, err := h.Hash("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hashed)

	require.NoError(t, h.Compare(hashed, "s3cret"))
	require.ErrorIs(t, h.Compare(hashed, "other"), ErrMismatch)
}

func TestBcryptHasher_CompareGarbageHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	err := h.Compare("not-a-hash", "s3cret")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrMismatch)
}

func TestNewBcryptHasher_OutOfRangeCost(t *testing.T) {
	require.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	require.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).cost)
	require.Equal(t, 12, NewBcryptHasher(12).cost)
}
