package repositories

import (
	"context"

	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerReader defines read operations for the transaction ledger
type LedgerReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves all transactions ordered by trade date then insertion time.
	// Pass an empty stock to list across all stocks.
	ListTransactions(ctx context.Context, stock string) ([]domain.Transaction, error)

	// ListExecutedTransactions retrieves executed transactions in chronological
	// replay order (trade date, then insertion time). Pass an empty stock to
	// list across all stocks.
	ListExecutedTransactions(ctx context.Context, stock string) ([]domain.Transaction, error)
}

// LedgerWriter defines write operations for the transaction ledger
type LedgerWriter interface {
	// SaveTransaction persists a new ledger transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// SaveTransactionInTx persists a new ledger transaction within tx, so a
	// sale and its CGT consequences commit together.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
