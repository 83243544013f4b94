package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eklimchuk/assistant-marketplace/internal/lib/password"
)

func TestGetHashAndCompare(t *testing.T) {
	hash, err := password.GetHash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, password.CompareHash(hash, "correct horse battery staple"))
	assert.Error(t, password.CompareHash(hash, "wrong password"))
}

func TestGetHash_Unique(t *testing.T) {
	first, err := password.GetHash("samepassword")
	require.NoError(t, err)
	second, err := password.GetHash("samepassword")
	require.NoError(t, err)

	// bcrypt солит каждый хэш
	assert.NotEqual(t, first, second)
}
