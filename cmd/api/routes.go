package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.StripSlashes)
	router.Use(app.Recoverer)
	router.Use(app.Authenticate)

	router.Get("/healthcheck", app.healthcheck)
	router.Post("/register", app.signup)
	router.Route("/api/token", func(r chi.Router) {
		r.Post("/", app.login)
		r.Post("/refresh", app.refreshToken)
	})
	router.Route("/movies", func(r chi.Router) {
		r.Use(app.requireAuthenticatedUser)
		r.Get("/", app.listMovies)
		r.Post("/", app.createMovie)
		r.Route("/{movieID}", func(r chi.Router) {
			r.Get("/", app.getMovie)
			r.Put("/", app.updateMovie)
			r.Patch("/", app.partiallyUpdateMovie)
			r.Delete("/", app.deleteMovie)
			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", app.listReviews)
				r.Post("/", app.createReview)
				r.Route("/{reviewID}", func(r chi.Router) {
					r.Get("/", app.getReview)
					r.Put("/", app.updateReview)
					r.Patch("/", app.partiallyUpdateReview)
					r.Delete("/", app.deleteReview)
				})
			})
		})
	})
	return router
}
