package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/asxfolio/asx_portfolio_app/internal/apperrors"
	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	portsrepo "github.com/asxfolio/asx_portfolio_app/internal/core/ports/repositories"
	"github.com/asxfolio/asx_portfolio_app/internal/models"
	"github.com/asxfolio/asx_portfolio_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxParcelRepository struct {
	BaseRepository
}

// newPgxParcelRepository creates a new repository for tax parcel data.
func newPgxParcelRepository(pool *pgxpool.Pool) portsrepo.ParcelRepositoryWithTx {
	return &PgxParcelRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ParcelRepositoryWithTx = (*PgxParcelRepository)(nil)

const parcelColumns = `parcel_id, stock, acquisition_date, quantity, remaining_quantity, unit_cost, total_cost, brokerage, cost_base, sold, created_at, last_updated_at`

func scanParcel(row pgx.Row) (models.TaxParcel, error) {
	var m models.TaxParcel
	err := row.Scan(
		&m.ParcelID,
		&m.Stock,
		&m.AcquisitionDate,
		&m.Quantity,
		&m.RemainingQuantity,
		&m.UnitCost,
		&m.TotalCost,
		&m.Brokerage,
		&m.CostBase,
		&m.Sold,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func collectParcels(rows pgx.Rows) ([]domain.TaxParcel, error) {
	defer rows.Close()
	var modelParcels []models.TaxParcel
	for rows.Next() {
		m, err := scanParcel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parcel row: %w", err)
		}
		modelParcels = append(modelParcels, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parcel rows: %w", err)
	}
	return mapping.ToDomainTaxParcelSlice(modelParcels), nil
}

// ListOpenParcels retrieves parcels that still hold shares, oldest acquisition first.
func (r *PgxParcelRepository) ListOpenParcels(ctx context.Context, stock string) ([]domain.TaxParcel, error) {
	query := `SELECT ` + parcelColumns + ` FROM tax_parcels WHERE remaining_quantity > 0`
	var args []interface{}
	if stock != "" {
		query += " AND stock = $1"
		args = append(args, stock)
	}
	query += " ORDER BY acquisition_date ASC, parcel_id ASC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list open parcels: %w", err)
	}
	return collectParcels(rows)
}

// FindEligibleParcelsForUpdate locks and retrieves the open parcels for a stock
// inside tx so concurrent disposals cannot consume the same shares.
func (r *PgxParcelRepository) FindEligibleParcelsForUpdate(ctx context.Context, tx pgx.Tx, stock string) ([]domain.TaxParcel, error) {
	query := `
		SELECT ` + parcelColumns + `
		FROM tax_parcels
		WHERE stock = $1 AND remaining_quantity > 0
		ORDER BY acquisition_date ASC, parcel_id ASC
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, stock)
	if err != nil {
		return nil, fmt.Errorf("failed to lock parcels for %s: %w", stock, err)
	}
	return collectParcels(rows)
}

// SaveParcelsInTx bulk inserts parcels within tx.
func (r *PgxParcelRepository) SaveParcelsInTx(ctx context.Context, tx pgx.Tx, parcels []domain.TaxParcel) error {
	if len(parcels) == 0 {
		return nil
	}

	query := `
		INSERT INTO tax_parcels (` + parcelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	batch := &pgx.Batch{}
	for _, p := range parcels {
		m := mapping.ToModelTaxParcel(p)
		batch.Queue(query,
			m.ParcelID,
			m.Stock,
			m.AcquisitionDate,
			m.Quantity,
			m.RemainingQuantity,
			m.UnitCost,
			m.TotalCost,
			m.Brokerage,
			m.CostBase,
			m.Sold,
			m.CreatedAt,
			m.LastUpdatedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range parcels {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert parcel batch: %w", err)
		}
	}
	return nil
}

// ApplyParcelDeltasInTx updates remaining quantities and sold flags within tx.
func (r *PgxParcelRepository) ApplyParcelDeltasInTx(ctx context.Context, tx pgx.Tx, deltas []domain.ParcelDelta, updatedAt time.Time) error {
	if len(deltas) == 0 {
		return nil
	}

	query := `
		UPDATE tax_parcels
		SET remaining_quantity = $2, sold = $3, last_updated_at = $4
		WHERE parcel_id = $1;
	`

	batch := &pgx.Batch{}
	for _, d := range deltas {
		batch.Queue(query, d.ParcelID, d.RemainingQuantity, d.Sold, updatedAt)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for _, d := range deltas {
		tag, err := results.Exec()
		if err != nil {
			return fmt.Errorf("failed to update parcel %s: %w", d.ParcelID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError("parcel " + d.ParcelID + " not found for update")
		}
	}
	return nil
}

// DeleteAllParcelsInTx removes every parcel within tx.
func (r *PgxParcelRepository) DeleteAllParcelsInTx(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, `DELETE FROM tax_parcels;`); err != nil {
		return fmt.Errorf("failed to delete parcels: %w", err)
	}
	return nil
}
