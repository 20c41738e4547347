package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/asxfolio/asx_portfolio_app/internal/apperrors"
	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	portsrepo "github.com/asxfolio/asx_portfolio_app/internal/core/ports/repositories"
	"github.com/asxfolio/asx_portfolio_app/internal/models"
	"github.com/asxfolio/asx_portfolio_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPriceRepository struct {
	BaseRepository
}

// newPgxPriceRepository creates a new repository for stored instrument prices.
func newPgxPriceRepository(pool *pgxpool.Pool) portsrepo.PriceRepositoryFacade {
	return &PgxPriceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PriceRepositoryFacade = (*PgxPriceRepository)(nil)

// UpsertPrice inserts or replaces the stored price for a stock.
func (r *PgxPriceRepository) UpsertPrice(ctx context.Context, price domain.InstrumentPrice) error {
	m := mapping.ToModelInstrumentPrice(price)

	query := `
		INSERT INTO instrument_prices (stock, price, last_updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (stock) DO UPDATE SET
			price = EXCLUDED.price,
			last_updated_at = EXCLUDED.last_updated_at;
	`

	if _, err := r.Pool.Exec(ctx, query, m.Stock, m.Price, m.LastUpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert price for %s: %w", m.Stock, err)
	}
	return nil
}

// FindPrice retrieves the stored price for a stock.
func (r *PgxPriceRepository) FindPrice(ctx context.Context, stock string) (*domain.InstrumentPrice, error) {
	query := `SELECT stock, price, last_updated_at FROM instrument_prices WHERE stock = $1;`

	var m models.InstrumentPrice
	err := r.Pool.QueryRow(ctx, query, stock).Scan(&m.Stock, &m.Price, &m.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no stored price for " + stock)
		}
		return nil, fmt.Errorf("failed to find price for %s: %w", stock, err)
	}

	domainPrice := mapping.ToDomainInstrumentPrice(m)
	return &domainPrice, nil
}

// ListPrices retrieves all stored prices, ordered by stock code.
func (r *PgxPriceRepository) ListPrices(ctx context.Context) ([]domain.InstrumentPrice, error) {
	query := `SELECT stock, price, last_updated_at FROM instrument_prices ORDER BY stock ASC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}
	defer rows.Close()

	var modelPrices []models.InstrumentPrice
	for rows.Next() {
		var m models.InstrumentPrice
		if err := rows.Scan(&m.Stock, &m.Price, &m.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan price row: %w", err)
		}
		modelPrices = append(modelPrices, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price rows: %w", err)
	}

	return mapping.ToDomainInstrumentPriceSlice(modelPrices), nil
}
