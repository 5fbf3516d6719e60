package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"cinescope/proj/internal/config"
	"cinescope/proj/internal/domain/models"
	"cinescope/proj/internal/services"
	"cinescope/proj/internal/services/auth"
	moviesvc "cinescope/proj/internal/services/movies"
	reviewsvc "cinescope/proj/internal/services/reviews"
	"cinescope/proj/internal/storage"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// In-memory stores implementing the service storage interfaces,
// mirroring the relational behavior the postgres models rely on
// (unique constraints, cascade deletes, derived average rating).

type fakeUserStorage struct {
	users  map[int64]*models.User
	nextID int64
}

func (s *fakeUserStorage) Insert(_ context.Context, username, email, firstName, lastName string, passwordHash []byte) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return nil, storage.ErrConflict
		}
	}
	s.nextID++
	user := &models.User{
		ID:           s.nextID,
		Username:     username,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *fakeUserStorage) Get(_ context.Context, id int64) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, storage.ErrNotFound
}

func (s *fakeUserStorage) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *fakeUserStorage) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

type fakeReviewStorage struct {
	reviews map[int64]*models.Review
	users   *fakeUserStorage
	nextID  int64
}

func (s *fakeReviewStorage) Insert(_ context.Context, movieID, userID int64, rating int32, comment string) (*models.Review, error) {
	for _, r := range s.reviews {
		if r.MovieID == movieID && r.UserID == userID {
			return nil, storage.ErrConflict
		}
	}
	s.nextID++
	review := &models.Review{
		ID:        s.nextID,
		MovieID:   movieID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	s.reviews[review.ID] = review
	copied := *review
	return &copied, nil
}

func (s *fakeReviewStorage) Get(_ context.Context, id int64) (*models.Review, error) {
	r, ok := s.reviews[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *r
	if u, ok := s.users.users[r.UserID]; ok {
		copied.Username = u.Username
	}
	return &copied, nil
}

func (s *fakeReviewStorage) GetAllForMovie(_ context.Context, movieID int64) ([]models.Review, error) {
	result := []models.Review{}
	for _, r := range s.reviews {
		if r.MovieID == movieID {
			copied := *r
			if u, ok := s.users.users[r.UserID]; ok {
				copied.Username = u.Username
			}
			result = append(result, copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (s *fakeReviewStorage) Update(_ context.Context, review *models.Review) (*models.Review, error) {
	if _, ok := s.reviews[review.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	copied := *review
	s.reviews[review.ID] = &copied
	result := copied
	return &result, nil
}

func (s *fakeReviewStorage) Delete(_ context.Context, id int64) error {
	if _, ok := s.reviews[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.reviews, id)
	return nil
}

func (s *fakeReviewStorage) averageFor(movieID int64) *float64 {
	var sum, count float64
	for _, r := range s.reviews {
		if r.MovieID == movieID {
			sum += float64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := math.Round(sum/count*10) / 10
	return &avg
}

type fakeMovieStorage struct {
	movies  map[int64]*models.Movie
	users   *fakeUserStorage
	reviews *fakeReviewStorage
	nextID  int64
}

func (s *fakeMovieStorage) enrich(m models.Movie) models.Movie {
	if u, ok := s.users.users[m.UserID]; ok {
		m.CreatedByUsername = u.Username
	}
	m.AverageRating = s.reviews.averageFor(m.ID)
	return m
}

func (s *fakeMovieStorage) Get(_ context.Context, id int64) (*models.Movie, error) {
	m, ok := s.movies[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	enriched := s.enrich(*m)
	return &enriched, nil
}

func (s *fakeMovieStorage) Insert(_ context.Context, movie *models.Movie) (*models.Movie, error) {
	s.nextID++
	copied := *movie
	copied.ID = s.nextID
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	s.movies[copied.ID] = &copied
	result := copied
	return &result, nil
}

func (s *fakeMovieStorage) List(_ context.Context, limit, offset int) ([]models.Movie, int, error) {
	all := []models.Movie{}
	for id := int64(1); id <= s.nextID; id++ {
		if m, ok := s.movies[id]; ok {
			all = append(all, s.enrich(*m))
		}
	}
	total := len(all)
	if offset >= len(all) {
		return []models.Movie{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (s *fakeMovieStorage) Update(_ context.Context, movie *models.Movie) (*models.Movie, error) {
	if _, ok := s.movies[movie.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	copied := *movie
	copied.UpdatedAt = time.Now()
	s.movies[movie.ID] = &copied
	result := copied
	return &result, nil
}

func (s *fakeMovieStorage) Delete(_ context.Context, id int64) error {
	if _, ok := s.movies[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.movies, id)
	// Emulate ON DELETE CASCADE.
	for reviewID, r := range s.reviews.reviews {
		if r.MovieID == id {
			delete(s.reviews.reviews, reviewID)
		}
	}
	return nil
}

type inlineExecutor struct{}

func (inlineExecutor) Add(task func()) { task() }

func NewTestApplication(t *testing.T) *Application {
	t.Helper()
	cfg := &config.Config{
		Auth: config.Auth{
			Secret:          "test-secret",
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: time.Hour,
			BcryptCost:      bcrypt.MinCost,
		},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := &fakeUserStorage{users: make(map[int64]*models.User)}
	reviews := &fakeReviewStorage{reviews: make(map[int64]*models.Review), users: users}
	movies := &fakeMovieStorage{movies: make(map[int64]*models.Movie), users: users, reviews: reviews}
	svcs := &services.Services{
		Auth:    auth.New(log, users, nil, inlineExecutor{}, cfg.Auth),
		Movies:  moviesvc.New(log, movies, reviews),
		Reviews: reviewsvc.New(log, reviews, movies),
	}
	return NewApplication(cfg, log, svcs, nil)
}

// Request/response helpers for endpoint tests.

type testEnv struct {
	app     *Application
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	app := NewTestApplication(t)
	return &testEnv{app: app, handler: app.routes()}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	e.handler.ServeHTTP(recorder, req)
	return recorder
}

type apiResponse struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp
}

func decodeData(t *testing.T, resp apiResponse, key string, dst any) {
	t.Helper()
	raw, ok := resp.Data[key]
	require.True(t, ok, "response data has no %q key", key)
	require.NoError(t, json.Unmarshal(raw, dst))
}

func decodeErrors(t *testing.T, recorder *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	resp := decodeResponse(t, recorder)
	errs := make(map[string]string)
	decodeData(t, resp, "errors", &errs)
	return errs
}

func validSignupBody(username, email string) map[string]any {
	return map[string]any{
		"username":   username,
		"email":      email,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "s3cret-pass",
		"password2":  "s3cret-pass",
	}
}

// register creates a user through the public endpoint and returns its
// id together with a live token pair.
func (e *testEnv) register(t *testing.T, username, email string) (int64, models.AuthTokens) {
	t.Helper()
	recorder := e.request(t, http.MethodPost, "/register/", "", validSignupBody(username, email))
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	resp := decodeResponse(t, recorder)
	var user models.User
	decodeData(t, resp, "user", &user)
	var tokens models.AuthTokens
	decodeData(t, resp, "tokens", &tokens)
	return user.ID, tokens
}

func validMovieBody(title string) map[string]any {
	return map[string]any{
		"title":        title,
		"director":     "Michael Mann",
		"release_date": "1995-12-15",
		"description":  "A heist crew and an LAPD detective circle each other.",
	}
}

func (e *testEnv) createMovie(t *testing.T, token, title string) int64 {
	t.Helper()
	recorder := e.request(t, http.MethodPost, "/movies/", token, validMovieBody(title))
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	resp := decodeResponse(t, recorder)
	var movie struct {
		ID int64 `json:"id"`
	}
	decodeData(t, resp, "movie", &movie)
	return movie.ID
}
