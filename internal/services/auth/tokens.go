package auth

import (
	"errors"
	"time"

	"cinescope/proj/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

func (a *AuthService) newToken(userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"uid": userID,
		"typ": tokenType,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.cfg.Secret))
}

func (a *AuthService) issueTokens(userID int64) (*models.AuthTokens, error) {
	access, err := a.newToken(userID, tokenTypeAccess, a.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := a.newToken(userID, tokenTypeRefresh, a.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &models.AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

// verifyToken checks signature, expiry and token type, returning the
// embedded user id.
func (a *AuthService) verifyToken(token, wantType string) (int64, error) {
	parsed, err := jwt.Parse(
		token,
		func(t *jwt.Token) (any, error) { return []byte(a.cfg.Secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return 0, errors.New("invalid token claims")
	}
	if typ, _ := claims["typ"].(string); typ != wantType {
		return 0, errors.New("unexpected token type")
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return 0, errors.New("token has no uid claim")
	}
	return int64(uid), nil
}
