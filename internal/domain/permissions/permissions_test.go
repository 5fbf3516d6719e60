package permissions

import (
	"testing"

	"cinescope/proj/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestCanRead(t *testing.T) {
	assert.True(t, CanRead(&models.User{ID: 1}))
	assert.False(t, CanRead(models.AnonymousUser))
	assert.False(t, CanRead(nil))
}

func TestCanModify(t *testing.T) {
	owner := &models.User{ID: 1, Username: "owner"}
	other := &models.User{ID: 2, Username: "other"}
	movie := &models.Movie{ID: 10, UserID: 1}
	review := &models.Review{ID: 20, UserID: 2}

	t.Run("owner may modify", func(t *testing.T) {
		assert.True(t, CanModify(owner, movie))
		assert.True(t, CanModify(other, review))
	})
	t.Run("non-owner may not modify", func(t *testing.T) {
		assert.False(t, CanModify(other, movie))
		assert.False(t, CanModify(owner, review))
	})
	t.Run("anonymous may not modify", func(t *testing.T) {
		assert.False(t, CanModify(models.AnonymousUser, movie))
		assert.False(t, CanModify(nil, movie))
	})
}
