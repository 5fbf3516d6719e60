package reviews

import (
	"context"
	"errors"
	"log/slog"

	"cinescope/proj/internal/domain/models"
	"cinescope/proj/internal/domain/permissions"
	"cinescope/proj/internal/storage"
)

type ReviewsStorage interface {
	Insert(ctx context.Context, movieID, userID int64, rating int32, comment string) (*models.Review, error)
	Get(ctx context.Context, id int64) (*models.Review, error)
	GetAllForMovie(ctx context.Context, movieID int64) ([]models.Review, error)
	Update(ctx context.Context, review *models.Review) (*models.Review, error)
	Delete(ctx context.Context, id int64) error
}

type MoviesStorage interface {
	Get(ctx context.Context, id int64) (*models.Movie, error)
}

type ReviewService struct {
	log     *slog.Logger
	storage ReviewsStorage
	movies  MoviesStorage
}

func New(log *slog.Logger, storage ReviewsStorage, movies MoviesStorage) *ReviewService {
	return &ReviewService{
		log:     log,
		storage: storage,
		movies:  movies,
	}
}

func (s *ReviewService) ListForMovie(ctx context.Context, movieID int64) ([]models.Review, error) {
	const op = "reviews.ReviewService.ListForMovie"
	log := s.log.With("op", op, "movie_id", movieID)
	if _, err := s.resolveMovie(ctx, movieID, log); err != nil {
		return nil, err
	}
	reviews, err := s.storage.GetAllForMovie(ctx, movieID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return reviews, nil
}

// Create inserts a review by the requester for the movie resolved from
// the URL. Both references come from the server side; duplicates are
// rejected by the storage uniqueness constraint in the same statement.
func (s *ReviewService) Create(ctx context.Context, movieID int64, rating int32, comment string, requester *models.User) (*models.Review, error) {
	const op = "reviews.ReviewService.Create"
	log := s.log.With("op", op, "movie_id", movieID, "user_id", requester.ID)
	if _, err := s.resolveMovie(ctx, movieID, log); err != nil {
		return nil, err
	}
	review, err := s.storage.Insert(ctx, movieID, requester.ID, rating, comment)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("duplicate review")
			return nil, ErrAlreadyReviewed
		}
		log.Error(err.Error())
		return nil, err
	}
	review.Username = requester.Username
	return review, nil
}

// Get resolves a review within the scope of its parent movie. A valid
// review id reached through the wrong movie id is a not-found, so
// reviews cannot be addressed across movies via mismatched URLs.
func (s *ReviewService) Get(ctx context.Context, movieID, reviewID int64) (*models.Review, error) {
	const op = "reviews.ReviewService.Get"
	log := s.log.With("op", op, "movie_id", movieID, "review_id", reviewID)
	review, err := s.storage.Get(ctx, reviewID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("review not found")
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	if review.MovieID != movieID {
		log.Info("review belongs to another movie", "actual_movie_id", review.MovieID)
		return nil, ErrReviewNotFound
	}
	return review, nil
}

type UpdateParams struct {
	Rating  *int32
	Comment *string
}

func (s *ReviewService) Update(ctx context.Context, movieID, reviewID int64, params UpdateParams, requester *models.User) (*models.Review, error) {
	const op = "reviews.ReviewService.Update"
	log := s.log.With("op", op, "movie_id", movieID, "review_id", reviewID, "user_id", requester.ID)
	review, err := s.Get(ctx, movieID, reviewID)
	if err != nil {
		return nil, err
	}
	if !permissions.CanModify(requester, review) {
		log.Info("update denied", "author_id", review.UserID)
		return nil, ErrForbidden
	}
	if params.Rating != nil {
		review.Rating = *params.Rating
	}
	if params.Comment != nil {
		review.Comment = *params.Comment
	}
	updated, err := s.storage.Update(ctx, review)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	updated.Username = review.Username
	return updated, nil
}

func (s *ReviewService) Delete(ctx context.Context, movieID, reviewID int64, requester *models.User) error {
	const op = "reviews.ReviewService.Delete"
	log := s.log.With("op", op, "movie_id", movieID, "review_id", reviewID, "user_id", requester.ID)
	review, err := s.Get(ctx, movieID, reviewID)
	if err != nil {
		return err
	}
	if !permissions.CanModify(requester, review) {
		log.Info("delete denied", "author_id", review.UserID)
		return ErrForbidden
	}
	if err := s.storage.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrReviewNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}

func (s *ReviewService) resolveMovie(ctx context.Context, movieID int64, log *slog.Logger) (*models.Movie, error) {
	movie, err := s.movies.Get(ctx, movieID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}
