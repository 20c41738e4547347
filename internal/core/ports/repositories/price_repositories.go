package repositories

import (
	"context"

	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
)

// PriceReader defines read operations for stored instrument prices
type PriceReader interface {
	// FindPrice retrieves the stored price for a stock.
	FindPrice(ctx context.Context, stock string) (*domain.InstrumentPrice, error)

	// ListPrices retrieves all stored prices, ordered by stock code.
	ListPrices(ctx context.Context) ([]domain.InstrumentPrice, error)
}

// PriceWriter defines write operations for stored instrument prices
type PriceWriter interface {
	// UpsertPrice inserts or replaces the stored price for a stock.
	UpsertPrice(ctx context.Context, price domain.InstrumentPrice) error
}

// PriceRepositoryFacade combines all price repository interfaces
type PriceRepositoryFacade interface {
	PriceReader
	PriceWriter
}
