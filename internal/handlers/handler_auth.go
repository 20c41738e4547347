package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asxfolio/asx_portfolio_app/internal/apperrors"
	portssvc "github.com/asxfolio/asx_portfolio_app/internal/core/ports/services"
	"github.com/asxfolio/asx_portfolio_app/internal/dto"
	"github.com/asxfolio/asx_portfolio_app/internal/middleware"
)

// authHandler handles the public login endpoint.
type authHandler struct {
	tokenService portssvc.TokenSvcFacade
}

// registerAuthRoutes registers the public authentication routes
func registerAuthRoutes(r *gin.Engine, tokenService portssvc.TokenSvcFacade) {
	h := &authHandler{tokenService: tokenService}
	r.POST("/auth/login", h.login)
}

func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid login request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	token, expiresAt, err := h.tokenService.Authenticate(c.Request.Context(), req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		} else {
			logger.Error("Login failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}
