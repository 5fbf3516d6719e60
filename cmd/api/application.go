package main

import (
	"log/slog"

	"cinescope/proj/internal/api/tasks"
	"cinescope/proj/internal/config"
	"cinescope/proj/internal/lib/validator"
	"cinescope/proj/internal/services"

	govalidator "github.com/go-playground/validator/v10"
)

type Application struct {
	cfg       *config.Config
	log       *slog.Logger
	Http      *Http
	services  *services.Services
	validator *govalidator.Validate
	bgTasks   *tasks.BackgroundTasks
}

func NewApplication(cfg *config.Config, log *slog.Logger, services *services.Services, bgTasks *tasks.BackgroundTasks) *Application {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("strongpassword", validator.ValidatePasswordStrength); err != nil {
		panic(err)
	}
	return &Application{
		cfg:       cfg,
		log:       log,
		validator: v,
		services:  services,
		bgTasks:   bgTasks,
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
