package auth

import (
	"context"
	"errors"
	"log/slog"

	"cinescope/proj/internal/config"
	"cinescope/proj/internal/domain/models"
	"cinescope/proj/internal/storage"
	"cinescope/proj/internal/utils"
)

type UserStorage interface {
	Insert(ctx context.Context, username, email, firstName, lastName string, passwordHash []byte) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type TaskExecutor interface {
	Add(task func())
}

type AuthService struct {
	log          *slog.Logger
	storage      UserStorage
	mailer       MailProvider
	taskExecutor TaskExecutor
	cfg          config.Auth
}

func New(
	log *slog.Logger,
	storage UserStorage,
	mailer MailProvider,
	taskExecutor TaskExecutor,
	cfg config.Auth,
) *AuthService {
	return &AuthService{
		log:          log,
		storage:      storage,
		mailer:       mailer,
		taskExecutor: taskExecutor,
		cfg:          cfg,
	}
}

type SignupParams struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

func (a *AuthService) Signup(ctx context.Context, params SignupParams) (*models.User, *models.AuthTokens, error) {
	const op = "auth.AuthService.Signup"
	log := a.log.With("op", op, "username", params.Username)

	// Explicit pre-checks give field-keyed errors; the unique constraints
	// on users remain the backstop for concurrent registrations.
	if _, err := a.storage.GetByUsername(ctx, params.Username); err == nil {
		return nil, nil, ErrUsernameTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Error(err.Error())
		return nil, nil, err
	}
	if _, err := a.storage.GetByEmail(ctx, params.Email); err == nil {
		return nil, nil, ErrEmailTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Error(err.Error())
		return nil, nil, err
	}

	passwordHash, err := utils.HashPassword(params.Password, a.cfg.BcryptCost)
	if err != nil {
		log.Error(err.Error())
		return nil, nil, err
	}
	user, err := a.storage.Insert(ctx, params.Username, params.Email, params.FirstName, params.LastName, passwordHash)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			// A concurrent signup won the insert; re-run the lookups to
			// report the conflict under the right field.
			log.Info("user already exists")
			if _, lookupErr := a.storage.GetByUsername(ctx, params.Username); lookupErr == nil {
				return nil, nil, ErrUsernameTaken
			}
			return nil, nil, ErrEmailTaken
		}
		log.Error(err.Error())
		return nil, nil, err
	}

	tokens, err := a.issueTokens(user.ID)
	if err != nil {
		log.Error(err.Error())
		return nil, nil, err
	}

	if a.mailer != nil {
		a.taskExecutor.Add(func() {
			a.sendWelcomeEmail(user.Email, user.Username)
		})
	}
	return user, tokens, nil
}

func (a *AuthService) Login(ctx context.Context, username, password string) (*models.AuthTokens, error) {
	const op = "auth.AuthService.Login"
	log := a.log.With("op", op, "username", username)
	user, err := a.storage.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, ErrInvalidCredentials
		}
		log.Error(err.Error())
		return nil, err
	}
	if !utils.VerifyPassword(user.PasswordHash, password) {
		log.Info("password mismatch")
		return nil, ErrInvalidCredentials
	}
	tokens, err := a.issueTokens(user.ID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return tokens, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (a *AuthService) Refresh(refreshToken string) (string, error) {
	const op = "auth.AuthService.Refresh"
	log := a.log.With("op", op)
	userID, err := a.verifyToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		log.Info("invalid refresh token", "errMsg", err.Error())
		return "", ErrInvalidToken
	}
	return a.newToken(userID, tokenTypeAccess, a.cfg.AccessTokenTTL)
}

// VerifyAccessToken returns the user id carried by a valid access token.
func (a *AuthService) VerifyAccessToken(token string) (int64, error) {
	userID, err := a.verifyToken(token, tokenTypeAccess)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

func (a *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	const op = "auth.AuthService.GetUser"
	log := a.log.With("op", op, "id", id)
	user, err := a.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return user, nil
}

func (a *AuthService) sendWelcomeEmail(email, username string) {
	a.log.Info("sending welcome email", "email", email)
	err := a.mailer.Send(email, "user_welcome.html", map[string]any{
		"username": username,
	})
	if err != nil {
		a.log.Error("Error sending welcome email", "errMsg", err.Error())
	}
}
