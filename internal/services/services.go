package services

import (
	"log/slog"

	"cinescope/proj/internal/config"
	"cinescope/proj/internal/mails"
	"cinescope/proj/internal/services/auth"
	"cinescope/proj/internal/services/movies"
	"cinescope/proj/internal/services/reviews"
	"cinescope/proj/internal/storage/postgres"
	dbmodels "cinescope/proj/internal/storage/postgres/models"
)

type Services struct {
	Auth    *auth.AuthService
	Movies  *movies.MovieService
	Reviews *reviews.ReviewService
}

func New(log *slog.Logger, cfg *config.Config, storage *postgres.Storage, taskExecutor auth.TaskExecutor) *Services {
	var mailer auth.MailProvider
	if cfg.SMTP.Enabled {
		mailer = mails.New(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Timeout,
			cfg.SMTP.Username,
			cfg.SMTP.Password,
			cfg.SMTP.Sender,
			cfg.SMTP.RetriesCount,
		)
	}
	db := dbmodels.New(storage)
	return &Services{
		Auth:    auth.New(log, db.User, mailer, taskExecutor, cfg.Auth),
		Movies:  movies.New(log, db.Movie, db.Review),
		Reviews: reviews.New(log, db.Review, db.Movie),
	}
}
