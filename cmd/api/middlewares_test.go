package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cinescope/proj/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	_, tokens := env.register(t, "alice", "alice@example.com")

	var seenUser *models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = env.app.contextUser(r)
		w.WriteHeader(http.StatusOK)
	})
	handler := env.app.Authenticate(next)

	perform := func(authHeader string) *httptest.ResponseRecorder {
		seenUser = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		return recorder
	}

	t.Run("no header resolves to anonymous", func(t *testing.T) {
		recorder := perform("")
		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, seenUser)
		assert.True(t, seenUser.IsAnonymous())
	})
	t.Run("valid token resolves the user", func(t *testing.T) {
		recorder := perform("Bearer " + tokens.AccessToken)
		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, seenUser)
		assert.Equal(t, "alice", seenUser.Username)
	})
	t.Run("malformed header", func(t *testing.T) {
		recorder := perform("Token abc")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Nil(t, seenUser)
	})
	t.Run("garbage token", func(t *testing.T) {
		recorder := perform("Bearer not-a-token")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Nil(t, seenUser)
	})
	t.Run("refresh token rejected as access token", func(t *testing.T) {
		recorder := perform("Bearer " + tokens.RefreshToken)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Nil(t, seenUser)
	})
}

func TestRequireAuthenticatedUser(t *testing.T) {
	env := newTestEnv(t)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	handler := env.app.requireAuthenticatedUser(next)

	t.Run("anonymous denied", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.False(t, called)
	})
	t.Run("authenticated allowed", func(t *testing.T) {
		called = false
		_, tokens := env.register(t, "bob", "bob@example.com")
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
		recorder := httptest.NewRecorder()
		env.app.Authenticate(handler).ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, called)
	})
}
