package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("password1")
	require.NoError(t, err)

	assert.NotEqual(t, "password1", hash)
	assert.NoError(t, h.Compare(hash, "password1"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), ErrMismatch)
}

func TestHashIsSalted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("same")
	require.NoError(t, err)
	second, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashUsesCost(t *testing.T) {
	h := NewHasher(bcrypt.MinCost + 1)

	hash, err := h.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
}

func TestNewHasherClampsInvalidCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(0).Cost)
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(99).Cost)
}

func TestCompareMalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	err := h.Compare("not-a-hash", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}

func TestCompareDummy(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	assert.NotPanics(t, func() {
		h.CompareDummy("anything")
		h.CompareDummy("again")
	})
}
