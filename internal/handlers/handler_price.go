package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/asxfolio/asx_portfolio_app/internal/apperrors"
	portssvc "github.com/asxfolio/asx_portfolio_app/internal/core/ports/services"
	"github.com/asxfolio/asx_portfolio_app/internal/dto"
	"github.com/asxfolio/asx_portfolio_app/internal/middleware"
)

// priceHandler handles HTTP requests for stored instrument prices
type priceHandler struct {
	priceService portssvc.PriceSvcFacade
}

// registerPriceRoutes registers routes related to stored prices
func registerPriceRoutes(rg *gin.RouterGroup, priceService portssvc.PriceSvcFacade) {
	h := &priceHandler{priceService: priceService}

	priceGroup := rg.Group("/prices")
	{
		priceGroup.PUT("/:stock", h.setPrice)
		priceGroup.GET("/:stock", h.getPrice)
		priceGroup.GET("", h.listPrices)
	}
}

func (h *priceHandler) setPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stock := strings.ToUpper(c.Param("stock"))

	var req dto.SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid price request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	price, err := h.priceService.SetPrice(c.Request.Context(), stock, req.Price)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to store price", slog.String("stock", stock), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store price"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPriceResponse(price))
}

func (h *priceHandler) getPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stock := strings.ToUpper(c.Param("stock"))

	price, err := h.priceService.GetPrice(c.Request.Context(), stock)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No stored price for " + stock})
		} else {
			logger.Error("Failed to get price", slog.String("stock", stock), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get price"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPriceResponse(price))
}

func (h *priceHandler) listPrices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	prices, err := h.priceService.ListPrices(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list prices", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list prices"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPriceResponses(prices))
}
