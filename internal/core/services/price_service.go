package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/asxfolio/asx_portfolio_app/internal/apperrors"
	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	portsrepo "github.com/asxfolio/asx_portfolio_app/internal/core/ports/repositories"
	portssvc "github.com/asxfolio/asx_portfolio_app/internal/core/ports/services"
)

const (
	priceCacheExpiry  = 5 * time.Minute
	priceCacheCleanup = 10 * time.Minute
)

// priceService stores manually maintained prices and caches single-stock
// lookups, which the unrealized gains report hits repeatedly.
type priceService struct {
	BaseService
	priceRepo portsrepo.PriceRepositoryFacade
	cache     *gocache.Cache
	now       func() time.Time
}

// NewPriceService creates a new price service.
func NewPriceService(priceRepo portsrepo.PriceRepositoryFacade) portssvc.PriceSvcFacade {
	return &priceService{
		priceRepo: priceRepo,
		cache:     gocache.New(priceCacheExpiry, priceCacheCleanup),
		now:       time.Now,
	}
}

// Ensure priceService implements the portssvc.PriceSvcFacade interface
var _ portssvc.PriceSvcFacade = (*priceService)(nil)

// SetPrice stores the latest price for a stock and refreshes the cache entry.
func (s *priceService) SetPrice(ctx context.Context, stock string, price decimal.Decimal) (*domain.InstrumentPrice, error) {
	stock = strings.ToUpper(strings.TrimSpace(stock))
	if stock == "" {
		return nil, apperrors.NewValidationError("stock is required")
	}
	if !price.IsPositive() {
		return nil, apperrors.NewValidationError("price must be positive")
	}

	stored := domain.InstrumentPrice{
		Stock:         stock,
		Price:         price,
		LastUpdatedAt: s.now(),
	}
	if err := s.priceRepo.UpsertPrice(ctx, stored); err != nil {
		s.LogError(ctx, err, "Failed to store price", slog.String("stock", stock))
		return nil, err
	}

	s.cache.Set(stock, stored, gocache.DefaultExpiration)
	s.LogInfo(ctx, "Price stored", slog.String("stock", stock), slog.String("price", price.String()))
	return &stored, nil
}

// GetPrice retrieves the stored price for a stock, serving from cache when fresh.
func (s *priceService) GetPrice(ctx context.Context, stock string) (*domain.InstrumentPrice, error) {
	stock = strings.ToUpper(strings.TrimSpace(stock))
	if cached, found := s.cache.Get(stock); found {
		price := cached.(domain.InstrumentPrice)
		return &price, nil
	}

	price, err := s.priceRepo.FindPrice(ctx, stock)
	if err != nil {
		return nil, err
	}

	s.cache.Set(stock, *price, gocache.DefaultExpiration)
	return price, nil
}

// ListPrices retrieves all stored prices.
func (s *priceService) ListPrices(ctx context.Context) ([]domain.InstrumentPrice, error) {
	return s.priceRepo.ListPrices(ctx)
}
