package reviews

import "errors"

var (
	ErrMovieNotFound   = errors.New("movie not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("you have already reviewed this movie")
	ErrForbidden       = errors.New("you are not the author of this review")
)
