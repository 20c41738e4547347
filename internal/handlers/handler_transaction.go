package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/asxfolio/asx_portfolio_app/internal/apperrors"
	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	portssvc "github.com/asxfolio/asx_portfolio_app/internal/core/ports/services"
	"github.com/asxfolio/asx_portfolio_app/internal/dto"
	"github.com/asxfolio/asx_portfolio_app/internal/middleware"
	"github.com/asxfolio/asx_portfolio_app/internal/utils/cgtcalc"
)

// transactionHandler handles HTTP requests for the portfolio ledger
type transactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	cgtService    portssvc.CGTSvcFacade
}

// registerTransactionRoutes registers routes related to ledger transactions
func registerTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, cgtService portssvc.CGTSvcFacade) {
	h := &transactionHandler{ledgerService: ledgerService, cgtService: cgtService}

	transactionGroup := rg.Group("/transactions")
	{
		transactionGroup.POST("", h.createTransaction)
		transactionGroup.GET("", h.listTransactions)
		transactionGroup.GET("/:transaction_id", h.getTransaction)
	}
}

func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid transaction request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	// Sells run through the disposal matcher, which also records the ledger row.
	if req.Side == string(domain.Sell) {
		h.createSell(c, req)
		return
	}

	txn, err := h.ledgerService.RecordBuy(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record buy", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) createSell(c *gin.Context, req dto.CreateTransactionRequest) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

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
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCGTEventResponses(events))
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stock := strings.ToUpper(c.Query("stock"))

	txns, err := h.ledgerService.ListTransactions(c.Request.Context(), stock)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transaction_id")

	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			logger.Error("Failed to get transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
