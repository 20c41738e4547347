package pgsql

import (
	"context"
	"fmt"

	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	portsrepo "github.com/asxfolio/asx_portfolio_app/internal/core/ports/repositories"
	"github.com/asxfolio/asx_portfolio_app/internal/models"
	"github.com/asxfolio/asx_portfolio_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCGTRepository persists realized CGT events and carried forward losses.
// Loss methods live in capital_loss_repository.go.
type PgxCGTRepository struct {
	BaseRepository
}

// newPgxCGTRepository creates a new repository for CGT event and loss data.
func newPgxCGTRepository(pool *pgxpool.Pool) portsrepo.CGTRepositoryWithTx {
	return &PgxCGTRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CGTRepositoryWithTx = (*PgxCGTRepository)(nil)

const cgtEventColumns = `event_id, tax_year, stock, sale_date, quantity, sale_price, sale_total, cost_base, acquisition_date, capital_gain, discount_eligible, discounted_gain, method, created_at`

func scanCGTEvent(row pgx.Row) (models.CGTEvent, error) {
	var m models.CGTEvent
	err := row.Scan(
		&m.EventID,
		&m.TaxYear,
		&m.Stock,
		&m.SaleDate,
		&m.Quantity,
		&m.SalePrice,
		&m.SaleTotal,
		&m.CostBase,
		&m.AcquisitionDate,
		&m.CapitalGain,
		&m.DiscountEligible,
		&m.DiscountedGain,
		&m.Method,
		&m.CreatedAt,
	)
	return m, err
}

func collectCGTEvents(rows pgx.Rows) ([]domain.CGTEvent, error) {
	defer rows.Close()
	var modelEvents []models.CGTEvent
	for rows.Next() {
		m, err := scanCGTEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cgt event row: %w", err)
		}
		modelEvents = append(modelEvents, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cgt event rows: %w", err)
	}
	return mapping.ToDomainCGTEventSlice(modelEvents), nil
}

const listEventsByTaxYearQuery = `
	SELECT ` + cgtEventColumns + `
	FROM cgt_events
	WHERE tax_year = $1
	ORDER BY sale_date DESC, created_at DESC;
`

// ListEventsByTaxYear retrieves events realized in the given tax year, newest sale first.
func (r *PgxCGTRepository) ListEventsByTaxYear(ctx context.Context, taxYear string) ([]domain.CGTEvent, error) {
	rows, err := r.Pool.Query(ctx, listEventsByTaxYearQuery, taxYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list cgt events for %s: %w", taxYear, err)
	}
	return collectCGTEvents(rows)
}

// FindEventsByTaxYearInTx retrieves the year's events inside tx.
func (r *PgxCGTRepository) FindEventsByTaxYearInTx(ctx context.Context, tx pgx.Tx, taxYear string) ([]domain.CGTEvent, error) {
	rows, err := tx.Query(ctx, listEventsByTaxYearQuery, taxYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list cgt events for %s: %w", taxYear, err)
	}
	return collectCGTEvents(rows)
}

// SaveEventsInTx bulk inserts events within tx.
func (r *PgxCGTRepository) SaveEventsInTx(ctx context.Context, tx pgx.Tx, events []domain.CGTEvent) error {
	if len(events) == 0 {
		return nil
	}

	query := `
		INSERT INTO cgt_events (` + cgtEventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`

	batch := &pgx.Batch{}
	for _, ev := range events {
		m := mapping.ToModelCGTEvent(ev)
		batch.Queue(query,
			m.EventID,
			m.TaxYear,
			m.Stock,
			m.SaleDate,
			m.Quantity,
			m.SalePrice,
			m.SaleTotal,
			m.CostBase,
			m.AcquisitionDate,
			m.CapitalGain,
			m.DiscountEligible,
			m.DiscountedGain,
			m.Method,
			m.CreatedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range events {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert cgt event batch: %w", err)
		}
	}
	return nil
}

// DeleteAllEventsInTx removes every event within tx.
func (r *PgxCGTRepository) DeleteAllEventsInTx(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, `DELETE FROM cgt_events;`); err != nil {
		return fmt.Errorf("failed to delete cgt events: %w", err)
	}
	return nil
}
