package services

import (
	"context"

	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	"github.com/asxfolio/asx_portfolio_app/internal/dto"
)

// LedgerSvcFacade defines operations on the transaction ledger
type LedgerSvcFacade interface {
	// RecordBuy validates and persists a buy transaction and opens its tax parcel.
	RecordBuy(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// GetTransaction retrieves a single transaction by ID.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves ledger transactions, optionally filtered by stock.
	ListTransactions(ctx context.Context, stock string) ([]domain.Transaction, error)
}
