package repositories

import (
	"context"
	"time"

	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CGTEventReader defines read operations for realized CGT events
type CGTEventReader interface {
	// ListEventsByTaxYear retrieves events realized in the given tax year, newest sale first.
	ListEventsByTaxYear(ctx context.Context, taxYear string) ([]domain.CGTEvent, error)

	// FindEventsByTaxYearInTx retrieves the same set inside tx, for use during
	// annual summary calculation.
	FindEventsByTaxYearInTx(ctx context.Context, tx pgx.Tx, taxYear string) ([]domain.CGTEvent, error)
}

// CGTEventWriter defines write operations for realized CGT events
type CGTEventWriter interface {
	// SaveEventsInTx bulk inserts events within tx.
	SaveEventsInTx(ctx context.Context, tx pgx.Tx, events []domain.CGTEvent) error

	// DeleteAllEventsInTx removes every event within tx. Used by ledger rebuilds.
	DeleteAllEventsInTx(ctx context.Context, tx pgx.Tx) error
}

// CapitalLossReader defines read operations for carried forward capital losses
type CapitalLossReader interface {
	// ListOutstandingLossesInTx retrieves losses with a remaining balance,
	// oldest tax year first, locking the rows within tx.
	ListOutstandingLossesInTx(ctx context.Context, tx pgx.Tx) ([]domain.CapitalLoss, error)
}

// CapitalLossWriter defines write operations for carried forward capital losses
type CapitalLossWriter interface {
	// UpsertLossInTx inserts a loss record for a tax year, replacing the
	// amounts if one already exists for that year.
	UpsertLossInTx(ctx context.Context, tx pgx.Tx, loss domain.CapitalLoss) error

	// UpdateRemainingLossInTx sets the remaining balance on a loss record.
	UpdateRemainingLossInTx(ctx context.Context, tx pgx.Tx, lossID string, remaining decimal.Decimal, updatedAt time.Time) error

	// DeleteAllLossesInTx removes every loss record within tx. Used by ledger rebuilds.
	DeleteAllLossesInTx(ctx context.Context, tx pgx.Tx) error
}

// CGTRepositoryFacade combines event and loss repository interfaces
type CGTRepositoryFacade interface {
	CGTEventReader
	CGTEventWriter
	CapitalLossReader
	CapitalLossWriter
}

// CGTRepositoryWithTx extends CGTRepositoryFacade with transaction capabilities
type CGTRepositoryWithTx interface {
	CGTRepositoryFacade
	TransactionManager
}
