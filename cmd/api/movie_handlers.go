package main

import (
	"errors"
	"net/http"

	"cinescope/proj/internal/domain/fields"
	"cinescope/proj/internal/domain/filters"
	"cinescope/proj/internal/lib/validator"
	"cinescope/proj/internal/services/movies"
)

type movieInput struct {
	Title       string  `json:"title" validate:"required,min=2" errorMsg:"Title must be at least 2 characters long."`
	Director    string  `json:"director" validate:"required,max=100"`
	ReleaseDate string  `json:"release_date" validate:"required,datetime=2006-01-02" errorMsg:"Release date must be a valid date in YYYY-MM-DD format"`
	Description string  `json:"description" validate:"required"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url,max=500"`
}

type movieUpdateInput struct {
	Title       *string `json:"title" validate:"omitempty,min=2" errorMsg:"Title must be at least 2 characters long."`
	Director    *string `json:"director" validate:"omitempty,max=100"`
	ReleaseDate *string `json:"release_date" validate:"omitempty,datetime=2006-01-02" errorMsg:"Release date must be a valid date in YYYY-MM-DD format"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url,max=500"`
}

func (app *Application) listMovies(w http.ResponseWriter, r *http.Request) {
	var f filters.Filters
	if err := app.decodeQuery(r, &f); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, f); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	f.ApplyDefaults()
	moviesList, metadata, err := app.services.Movies.List(r.Context(), f)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": moviesList, "metadata": metadata}, "")
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "movieID")
	if !ok {
		return
	}
	movie, err := app.services.Movies.Get(r.Context(), id)
	if err != nil {
		app.movieErrResponse(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

func (app *Application) createMovie(w http.ResponseWriter, r *http.Request) {
	var input movieInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	releaseDate, _ := fields.ParseDate(input.ReleaseDate)
	movie, err := app.services.Movies.Create(r.Context(), movies.CreateParams{
		Title:       input.Title,
		Director:    input.Director,
		ReleaseDate: releaseDate,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}, app.contextUser(r))
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"movie": movie}, "Movie successfully created")
}

// updateMovie handles PUT: the full payload is required and replaces
// every mutable field.
func (app *Application) updateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "movieID")
	if !ok {
		return
	}
	var input movieInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	releaseDate, _ := fields.ParseDate(input.ReleaseDate)
	// Full replacement: an omitted image_url clears the stored one.
	app.applyMovieUpdate(w, r, id, movies.UpdateParams{
		Title:       &input.Title,
		Director:    &input.Director,
		ReleaseDate: &releaseDate,
		Description: &input.Description,
		ImageURL:    &input.ImageURL,
	})
}

// partiallyUpdateMovie handles PATCH: absent fields keep their values.
func (app *Application) partiallyUpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "movieID")
	if !ok {
		return
	}
	var input movieUpdateInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	params := movies.UpdateParams{
		Title:       input.Title,
		Director:    input.Director,
		Description: input.Description,
	}
	if input.ImageURL != nil {
		params.ImageURL = &input.ImageURL
	}
	if input.ReleaseDate != nil {
		releaseDate, _ := fields.ParseDate(*input.ReleaseDate)
		params.ReleaseDate = &releaseDate
	}
	app.applyMovieUpdate(w, r, id, params)
}

func (app *Application) applyMovieUpdate(w http.ResponseWriter, r *http.Request, id int64, params movies.UpdateParams) {
	movie, err := app.services.Movies.Update(r.Context(), id, params, app.contextUser(r))
	if err != nil {
		app.movieErrResponse(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "Movie successfully updated")
}

func (app *Application) deleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "movieID")
	if !ok {
		return
	}
	if err := app.services.Movies.Delete(r.Context(), id, app.contextUser(r)); err != nil {
		app.movieErrResponse(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}

func (app *Application) movieErrResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, movies.ErrMovieNotFound):
		app.Http.NotFound(w, r, "Movie not found")
	case errors.Is(err, movies.ErrForbidden):
		app.Http.Forbidden(w, r, "You do not have permission to perform this action.")
	default:
		app.Http.ServerError(w, r, err, "")
	}
}
