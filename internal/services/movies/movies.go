package movies

import (
	"context"
	"errors"
	"log/slog"

	"cinescope/proj/internal/domain/fields"
	"cinescope/proj/internal/domain/filters"
	"cinescope/proj/internal/domain/models"
	"cinescope/proj/internal/domain/permissions"
	"cinescope/proj/internal/storage"
)

type MoviesStorage interface {
	Get(ctx context.Context, id int64) (*models.Movie, error)
	Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	List(ctx context.Context, limit, offset int) ([]models.Movie, int, error)
	Update(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	Delete(ctx context.Context, id int64) error
}

type ReviewsStorage interface {
	GetAllForMovie(ctx context.Context, movieID int64) ([]models.Review, error)
}

type MovieService struct {
	log     *slog.Logger
	storage MoviesStorage
	reviews ReviewsStorage
}

func New(log *slog.Logger, storage MoviesStorage, reviews ReviewsStorage) *MovieService {
	return &MovieService{
		log:     log,
		storage: storage,
		reviews: reviews,
	}
}

// Get returns a movie with its reviews nested, newest first.
func (s *MovieService) Get(ctx context.Context, id int64) (*models.Movie, error) {
	const op = "movies.MovieService.Get"
	log := s.log.With("op", op, "id", id)
	movie, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	reviews, err := s.reviews.GetAllForMovie(ctx, id)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	movie.Reviews = reviews
	return movie, nil
}

func (s *MovieService) List(ctx context.Context, f filters.Filters) ([]models.Movie, filters.Metadata, error) {
	const op = "movies.MovieService.List"
	log := s.log.With("op", op, "page", f.Page, "page_size", f.PageSize)
	movies, totalRecords, err := s.storage.List(ctx, f.Limit(), f.Offset())
	if err != nil {
		log.Error(err.Error())
		return nil, filters.Metadata{}, err
	}
	return movies, filters.CalculateMetadata(totalRecords, f), nil
}

type CreateParams struct {
	Title       string
	Director    string
	ReleaseDate fields.Date
	Description string
	ImageURL    *string
}

// Create inserts a movie owned by the requester. Ownership comes from
// the authenticated identity only, never from the payload.
func (s *MovieService) Create(ctx context.Context, params CreateParams, requester *models.User) (*models.Movie, error) {
	const op = "movies.MovieService.Create"
	log := s.log.With("op", op, "title", params.Title, "user_id", requester.ID)
	movie, err := s.storage.Insert(ctx, &models.Movie{
		Title:       params.Title,
		Director:    params.Director,
		ReleaseDate: params.ReleaseDate,
		Description: params.Description,
		ImageURL:    params.ImageURL,
		UserID:      requester.ID,
	})
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	movie.CreatedByUsername = requester.Username
	return movie, nil
}

type UpdateParams struct {
	Title       *string
	Director    *string
	ReleaseDate *fields.Date
	Description *string
	// ImageURL is two-level because the stored value is itself optional:
	// outer nil leaves it untouched, inner nil clears it.
	ImageURL **string
}

func (s *MovieService) Update(ctx context.Context, id int64, params UpdateParams, requester *models.User) (*models.Movie, error) {
	const op = "movies.MovieService.Update"
	log := s.log.With("op", op, "id", id, "user_id", requester.ID)
	movie, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	if !permissions.CanModify(requester, movie) {
		log.Info("update denied", "owner_id", movie.UserID)
		return nil, ErrForbidden
	}
	if params.Title != nil {
		movie.Title = *params.Title
	}
	if params.Director != nil {
		movie.Director = *params.Director
	}
	if params.ReleaseDate != nil {
		movie.ReleaseDate = *params.ReleaseDate
	}
	if params.Description != nil {
		movie.Description = *params.Description
	}
	if params.ImageURL != nil {
		movie.ImageURL = *params.ImageURL
	}
	updated, err := s.storage.Update(ctx, movie)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	updated.CreatedByUsername = movie.CreatedByUsername
	updated.AverageRating = movie.AverageRating
	return updated, nil
}

func (s *MovieService) Delete(ctx context.Context, id int64, requester *models.User) error {
	const op = "movies.MovieService.Delete"
	log := s.log.With("op", op, "id", id, "user_id", requester.ID)
	movie, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return ErrMovieNotFound
		}
		log.Error(err.Error())
		return err
	}
	if !permissions.CanModify(requester, movie) {
		log.Info("delete denied", "owner_id", movie.UserID)
		return ErrForbidden
	}
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrMovieNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
