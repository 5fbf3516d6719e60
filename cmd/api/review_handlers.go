package main

import (
	"errors"
	"net/http"

	"cinescope/proj/internal/lib/validator"
	"cinescope/proj/internal/services/reviews"
)

type reviewInput struct {
	Rating  int32  `json:"rating" validate:"required,gte=1,lte=5" errorMsg:"Rating must be between 1 and 5."`
	Comment string `json:"comment" validate:"required"`
}

type reviewUpdateInput struct {
	Rating  *int32  `json:"rating" validate:"omitempty,gte=1,lte=5" errorMsg:"Rating must be between 1 and 5."`
	Comment *string `json:"comment"`
}

func (app *Application) listReviews(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "movieID")
	if !ok {
		return
	}
	reviewsList, err := app.services.Reviews.ListForMovie(r.Context(), movieID)
	if err != nil {
		app.reviewErrResponse(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"reviews": reviewsList}, "")
}

func (app *Application) createReview(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "movieID")
	if !ok {
		return
	}
	var input reviewInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	review, err := app.services.Reviews.Create(r.Context(), movieID, input.Rating, input.Comment, app.contextUser(r))
	if err != nil {
		app.reviewErrResponse(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"review": review}, "Review successfully created")
}

func (app *Application) getReview(w http.ResponseWriter, r *http.Request) {
	movieID, reviewID, ok := app.extractReviewParams(w, r)
	if !ok {
		return
	}
	review, err := app.services.Reviews.Get(r.Context(), movieID, reviewID)
	if err != nil {
		app.reviewErrResponse(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "")
}

// updateReview handles PUT: full payload required.
func (app *Application) updateReview(w http.ResponseWriter, r *http.Request) {
	movieID, reviewID, ok := app.extractReviewParams(w, r)
	if !ok {
		return
	}
	var input reviewInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	app.applyReviewUpdate(w, r, movieID, reviewID, reviews.UpdateParams{
		Rating:  &input.Rating,
		Comment: &input.Comment,
	})
}

// partiallyUpdateReview handles PATCH: absent fields keep their values.
func (app *Application) partiallyUpdateReview(w http.ResponseWriter, r *http.Request) {
	movieID, reviewID, ok := app.extractReviewParams(w, r)
	if !ok {
		return
	}
	var input reviewUpdateInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	app.applyReviewUpdate(w, r, movieID, reviewID, reviews.UpdateParams{
		Rating:  input.Rating,
		Comment: input.Comment,
	})
}

func (app *Application) applyReviewUpdate(w http.ResponseWriter, r *http.Request, movieID, reviewID int64, params reviews.UpdateParams) {
	review, err := app.services.Reviews.Update(r.Context(), movieID, reviewID, params, app.contextUser(r))
	if err != nil {
		app.reviewErrResponse(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "Review successfully updated")
}

func (app *Application) deleteReview(w http.ResponseWriter, r *http.Request) {
	movieID, reviewID, ok := app.extractReviewParams(w, r)
	if !ok {
		return
	}
	if err := app.services.Reviews.Delete(r.Context(), movieID, reviewID, app.contextUser(r)); err != nil {
		app.reviewErrResponse(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}

func (app *Application) extractReviewParams(w http.ResponseWriter, r *http.Request) (movieID, reviewID int64, ok bool) {
	movieID, ok = app.extractIDParam(w, r, "movieID")
	if !ok {
		return 0, 0, false
	}
	reviewID, ok = app.extractIDParam(w, r, "reviewID")
	if !ok {
		return 0, 0, false
	}
	return movieID, reviewID, true
}

func (app *Application) reviewErrResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, reviews.ErrMovieNotFound):
		app.Http.NotFound(w, r, "Movie not found")
	case errors.Is(err, reviews.ErrReviewNotFound):
		app.Http.NotFound(w, r, "Review not found for this movie")
	case errors.Is(err, reviews.ErrAlreadyReviewed):
		app.Http.Conflict(w, r, "You have already reviewed this movie.")
	case errors.Is(err, reviews.ErrForbidden):
		app.Http.Forbidden(w, r, "You do not have permission to perform this action.")
	default:
		app.Http.ServerError(w, r, err, "")
	}
}
