package services

import (
	"context"

	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PriceSvcFacade defines operations for manually maintained stock prices
type PriceSvcFacade interface {
	// SetPrice stores the latest price for a stock.
	SetPrice(ctx context.Context, stock string, price decimal.Decimal) (*domain.InstrumentPrice, error)

	// GetPrice retrieves the stored price for a stock.
	GetPrice(ctx context.Context, stock string) (*domain.InstrumentPrice, error)

	// ListPrices retrieves all stored prices.
	ListPrices(ctx context.Context) ([]domain.InstrumentPrice, error)
}
