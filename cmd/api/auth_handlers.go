package main

import (
	"errors"
	"net/http"

	"cinescope/proj/internal/lib/validator"
	"cinescope/proj/internal/services/auth"
)

type signupInput struct {
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,min=8,strongpassword"`
	Password2 string `json:"password2" validate:"required,eqfield=Password" errorMsg:"Password fields didn't match."`
}

func (app *Application) signup(w http.ResponseWriter, r *http.Request) {
	var input signupInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	user, tokens, err := app.services.Auth.Signup(r.Context(), auth.SignupParams{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Password:  input.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameTaken):
			app.Http.UnprocessableEntity(w, r, map[string]string{"username": "Username already exists."})
		case errors.Is(err, auth.ErrEmailTaken):
			app.Http.UnprocessableEntity(w, r, map[string]string{"email": "Email already exists."})
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Created(w, r, envelop{"user": user, "tokens": tokens}, "Successfully signed up")
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	tokens, err := app.services.Auth.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			app.Http.Unauthorized(w, r, "Invalid username or password")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"tokens": tokens}, "Successfully logged in")
}

type refreshInput struct {
	Refresh string `json:"refresh" validate:"required"`
}

func (app *Application) refreshToken(w http.ResponseWriter, r *http.Request) {
	var input refreshInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	access, err := app.services.Auth.Refresh(input.Refresh)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			app.Http.Unauthorized(w, r, "Invalid or expired refresh token")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"access_token": access}, "")
}
