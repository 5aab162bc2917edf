package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	salt, err := hasher.GenerateSalt()
	require.NoError(t, err)
	require.Len(t, salt, 64) // 32 bytes hex-encoded

	hash, err := hasher.Hash(salt, "hunter2hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotContains(t, hash, "hunter2hunter2")

	require.NoError(t, hasher.Compare(hash, salt, "hunter2hunter2"))
	assert.Error(t, hasher.Compare(hash, salt, "wrong-password"))
	assert.Error(t, hasher.Compare(hash, "other-salt", "hunter2hunter2"))
}

func TestBcryptHasher_SaltsAreUnique(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	a, err := hasher.GenerateSalt()
	require.NoError(t, err)
	b, err := hasher.GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBcryptHasher_LongPasswords(t *testing.T) {
	// The SHA256 pre-hash keeps inputs under bcrypt's 72-byte limit, so
	// arbitrarily long passwords still round-trip.
	hasher := NewBcryptHasher(bcrypt.MinCost)
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	salt, err := hasher.GenerateSalt()
	require.NoError(t, err)
	hash, err := hasher.Hash(salt, string(long))
	require.NoError(t, err)
	require.NoError(t, hasher.Compare(hash, salt, string(long)))
}
