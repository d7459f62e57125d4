package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "wrong password"))
}

func TestHashToken(t *testing.T) {
	a := HashToken("token-a")
	b := HashToken("token-b")

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, HashToken("token-a"))
	assert.Len(t, a, 64) // hex sha256
}
