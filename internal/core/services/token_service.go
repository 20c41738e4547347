package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/asxfolio/asx_portfolio_app/internal/apperrors"
	portssvc "github.com/asxfolio/asx_portfolio_app/internal/core/ports/services"
	"github.com/asxfolio/asx_portfolio_app/internal/platform/config"
)

// ownerSubject is the JWT subject for the single portfolio owner.
const ownerSubject = "owner"

// tokenService checks the owner's password against the configured bcrypt
// hash and issues signed access tokens.
type tokenService struct {
	BaseService
	cfg *config.Config
	now func() time.Time
}

// NewTokenService creates a new token service.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg: cfg,
		now: time.Now,
	}
}

// Ensure tokenService implements the portssvc.TokenSvcFacade interface
var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// Authenticate verifies the password and returns a signed JWT with its expiry.
func (s *tokenService) Authenticate(ctx context.Context, password string) (string, time.Time, error) {
	if s.cfg.AuthPasswordHash == "" {
		s.LogWarn(ctx, "Login rejected: AUTH_PASSWORD_HASH is not configured")
		return "", time.Time{}, apperrors.NewUnauthorizedError("authentication is not configured")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AuthPasswordHash), []byte(password)); err != nil {
		s.LogWarn(ctx, "Login rejected: invalid password")
		return "", time.Time{}, apperrors.NewUnauthorizedError("invalid credentials")
	}

	now := s.now()
	expiresAt := now.Add(s.cfg.JWTExpiryDuration)
	claims := jwt.RegisteredClaims{
		Subject:   ownerSubject,
		Issuer:    s.cfg.JWTIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token")
		return "", time.Time{}, apperrors.NewAppError(500, "failed to sign access token", err)
	}

	return signed, expiresAt, nil
}
