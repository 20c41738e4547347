package dto

import (
	"time"

	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the payload for recording a ledger
// transaction. Side defaults to BUY; a SELL is routed through the disposal
// matcher and may carry a lot method.
type CreateTransactionRequest struct {
	Stock    string           `json:"stock" binding:"required,uppercase,min=2,max=6"`
	Date     time.Time        `json:"date" binding:"required"`
	Side     string           `json:"side" binding:"omitempty,oneof=BUY SELL"`
	Quantity int64            `json:"quantity" binding:"required,gt=0"`
	Price    decimal.Decimal  `json:"price" binding:"required"`
	Fee      decimal.Decimal  `json:"fee"`
	Method   domain.LotMethod `json:"method" binding:"omitempty,lotmethod"`
}

// TransactionResponse defines the data returned for a ledger transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Stock         string          `json:"stock"`
	Date          time.Time       `json:"date"`
	Side          string          `json:"side"`
	Quantity      int64           `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Total         decimal.Decimal `json:"total"`
	Fee           decimal.Decimal `json:"fee"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Stock:         txn.Stock,
		Date:          txn.Date,
		Side:          string(txn.Side),
		Quantity:      txn.Quantity,
		Price:         txn.Price,
		Total:         txn.Total,
		Fee:           txn.Fee,
		Status:        string(txn.Status),
		CreatedAt:     txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
