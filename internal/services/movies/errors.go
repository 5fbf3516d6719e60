package movies

import "errors"

var (
	ErrMovieNotFound = errors.New("movie not found")
	ErrForbidden     = errors.New("you are not the owner of this movie")
)
