package repositories

import (
	"context"
	"time"

	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ParcelReader defines read operations for tax parcels
type ParcelReader interface {
	// ListOpenParcels retrieves parcels with remaining shares, oldest acquisition first.
	// Pass an empty stock to list across all stocks.
	ListOpenParcels(ctx context.Context, stock string) ([]domain.TaxParcel, error)

	// FindEligibleParcelsForUpdate retrieves open parcels for a stock inside tx,
	// locking the rows for the duration of the transaction.
	FindEligibleParcelsForUpdate(ctx context.Context, tx pgx.Tx, stock string) ([]domain.TaxParcel, error)
}

// ParcelWriter defines write operations for tax parcels
type ParcelWriter interface {
	// SaveParcelsInTx bulk inserts parcels within tx.
	SaveParcelsInTx(ctx context.Context, tx pgx.Tx, parcels []domain.TaxParcel) error

	// ApplyParcelDeltasInTx updates remaining quantity and sold flags within tx.
	ApplyParcelDeltasInTx(ctx context.Context, tx pgx.Tx, deltas []domain.ParcelDelta, updatedAt time.Time) error

	// DeleteAllParcelsInTx removes every parcel within tx. Used by ledger rebuilds.
	DeleteAllParcelsInTx(ctx context.Context, tx pgx.Tx) error
}

// ParcelRepositoryFacade combines all parcel repository interfaces
type ParcelRepositoryFacade interface {
	ParcelReader
	ParcelWriter
}

// ParcelRepositoryWithTx extends ParcelRepositoryFacade with transaction capabilities
type ParcelRepositoryWithTx interface {
	ParcelRepositoryFacade
	TransactionManager
}
