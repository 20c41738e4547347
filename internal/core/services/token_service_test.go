package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/asxfolio/asx_portfolio_app/internal/apperrors"
	"github.com/asxfolio/asx_portfolio_app/internal/core/services"
	"github.com/asxfolio/asx_portfolio_app/internal/platform/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "correct horse battery staple"

type TokenServiceTestSuite struct {
	suite.Suite
	cfg *config.Config
}

func (suite *TokenServiceTestSuite) SetupTest() {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	suite.Require().NoError(err)
	suite.cfg = &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "asx-portfolio-app",
		AuthPasswordHash:  string(hash),
	}
}

func (suite *TokenServiceTestSuite) TestAuthenticate_Success() {
	svc := services.NewTokenService(suite.cfg)

	signed, expiresAt, err := svc.Authenticate(context.Background(), testPassword)

	suite.Require().NoError(err)
	suite.NotEmpty(signed)
	suite.WithinDuration(time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(suite.cfg.JWTSecret), nil
	})
	suite.Require().NoError(err)
	suite.True(parsed.Valid)
	suite.Equal("owner", claims.Subject)
	suite.Equal("asx-portfolio-app", claims.Issuer)
}

func (suite *TokenServiceTestSuite) TestAuthenticate_WrongPassword() {
	svc := services.NewTokenService(suite.cfg)

	signed, _, err := svc.Authenticate(context.Background(), "not the password")

	suite.Require().Error(err)
	suite.Empty(signed)
	suite.True(errors.Is(err, apperrors.ErrUnauthorized))
}

func (suite *TokenServiceTestSuite) TestAuthenticate_HashNotConfigured() {
	suite.cfg.AuthPasswordHash = ""
	svc := services.NewTokenService(suite.cfg)

	_, _, err := svc.Authenticate(context.Background(), testPassword)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrUnauthorized))
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
