package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/asxfolio/asx_portfolio_app/internal/apperrors"
	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	portssvc "github.com/asxfolio/asx_portfolio_app/internal/core/ports/services"
	"github.com/asxfolio/asx_portfolio_app/internal/dto"
	"github.com/asxfolio/asx_portfolio_app/internal/middleware"
	"github.com/asxfolio/asx_portfolio_app/internal/utils/cgtcalc"
)

// taxYearPattern matches Australian tax year labels like "2023-2024".
var taxYearPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

// cgtHandler handles HTTP requests for the capital gains engine
type cgtHandler struct {
	cgtService portssvc.CGTSvcFacade
}

// RegisterCGTRoutes registers routes related to capital gains tax
func RegisterCGTRoutes(rg *gin.RouterGroup, cgtService portssvc.CGTSvcFacade) {
	h := &cgtHandler{cgtService: cgtService}

	cgtGroup := rg.Group("/cgt")
	{
		cgtGroup.POST("/sales", h.recordSale)
		cgtGroup.POST("/rebuild", h.rebuild)
		cgtGroup.GET("/parcels", h.listParcels)
		cgtGroup.GET("/events/:tax_year", h.listEvents)
		cgtGroup.POST("/summary/:tax_year", h.annualSummary)
		cgtGroup.GET("/unrealised", h.unrealizedGains)
		cgtGroup.GET("/suggestions", h.suggestDisposal)
	}
}

func (h *cgtHandler) recordSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid sale request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	sale := domain.Transaction{
		Stock:    strings.ToUpper(req.Stock),
		Date:     req.Date,
		Quantity: req.Quantity,
		Price:    req.Price,
		Fee:      req.Fee,
	}

	events, err := h.cgtService.RecordSale(c.Request.Context(), sale, req.Method)
	if err != nil {
		var dispErr *cgtcalc.DisposalError
		switch {
		case errors.As(err, &dispErr) && errors.Is(err, cgtcalc.ErrNoParcelsFound):
			c.JSON(http.StatusNotFound, gin.H{"error": dispErr.Error()})
		case errors.As(err, &dispErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": dispErr.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record sale", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sale"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCGTEventResponses(events))
}

func (h *cgtHandler) rebuild(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.cgtService.RebuildFromLedger(c.Request.Context())
	if err != nil {
		logger.Error("Failed to rebuild from ledger", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rebuild from ledger"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *cgtHandler) listParcels(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stock := strings.ToUpper(c.Query("stock"))

	parcels, err := h.cgtService.ListOpenParcels(c.Request.Context(), stock)
	if err != nil {
		logger.Error("Failed to list parcels", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list parcels"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxParcelResponses(parcels))
}

func (h *cgtHandler) listEvents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taxYear := c.Param("tax_year")
	if !taxYearPattern.MatchString(taxYear) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tax year. Use the YYYY-YYYY form, e.g. 2023-2024"})
		return
	}

	events, err := h.cgtService.ListEvents(c.Request.Context(), taxYear)
	if err != nil {
		logger.Error("Failed to list cgt events", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list CGT events"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCGTEventResponses(events))
}

func (h *cgtHandler) annualSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taxYear := c.Param("tax_year")
	if !taxYearPattern.MatchString(taxYear) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tax year. Use the YYYY-YYYY form, e.g. 2023-2024"})
		return
	}

	summary, err := h.cgtService.AnnualSummary(c.Request.Context(), taxYear)
	if err != nil {
		logger.Error("Failed to calculate annual summary", slog.String("tax_year", taxYear), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate annual summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *cgtHandler) unrealizedGains(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf := time.Now()
	if asOfStr := c.Query("asOf"); asOfStr != "" {
		parsed, err := time.Parse("2006-01-02", asOfStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date. Use YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	gains, err := h.cgtService.UnrealizedGains(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to estimate unrealized gains", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to estimate unrealized gains"})
		return
	}

	c.JSON(http.StatusOK, gains)
}

func (h *cgtHandler) suggestDisposal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stock := strings.ToUpper(c.Query("stock"))
	if stock == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock query parameter is required"})
		return
	}

	salePrice, err := decimal.NewFromString(c.Query("salePrice"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "salePrice query parameter must be a decimal number"})
		return
	}

	targetGain := decimal.Zero
	if targetStr := c.Query("targetGain"); targetStr != "" {
		targetGain, err = decimal.NewFromString(targetStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "targetGain query parameter must be a decimal number"})
			return
		}
	}

	suggestions, err := h.cgtService.SuggestDisposal(c.Request.Context(), stock, salePrice, targetGain, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to build disposal suggestions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build disposal suggestions"})
		}
		return
	}

	c.JSON(http.StatusOK, suggestions)
}
