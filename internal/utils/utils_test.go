package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCamelToSnake(t *testing.T) {
	assert.Equal(t, "first_name", CamelToSnake("FirstName"))
	assert.Equal(t, "title", CamelToSnake("Title"))
	assert.Equal(t, "image_u_r_l", CamelToSnake("ImageURL"))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", string(hash))
	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, VerifyPassword(hash, "wrong-pass"))
}
