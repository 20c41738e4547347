package services

import (
	"context"
	"time"

	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CGTReaderSvc defines read-only CGT queries
type CGTReaderSvc interface {
	// ListOpenParcels retrieves parcels that still hold shares, oldest first.
	// Pass an empty stock to list across all stocks.
	ListOpenParcels(ctx context.Context, stock string) ([]domain.TaxParcel, error)

	// ListEvents retrieves the realized CGT events for a tax year.
	ListEvents(ctx context.Context, taxYear string) ([]domain.CGTEvent, error)

	// UnrealizedGains estimates the gain on every open parcel at current
	// stored prices. Parcels with no stored price are skipped.
	UnrealizedGains(ctx context.Context, asOf time.Time) ([]domain.UnrealizedGain, error)

	// SuggestDisposal ranks open parcels of a stock by tax effectiveness for a
	// hypothetical sale at salePrice, and sizes each against targetGain.
	SuggestDisposal(ctx context.Context, stock string, salePrice decimal.Decimal, targetGain decimal.Decimal, asOf time.Time) ([]domain.ParcelSuggestion, error)
}

// CGTWriterSvc defines CGT operations that change stored state
type CGTWriterSvc interface {
	// RecordSale matches a sale against open parcels, persists the resulting
	// CGT events and parcel updates atomically, and records the sale in the
	// ledger. A matching failure leaves every store untouched.
	RecordSale(ctx context.Context, sale domain.Transaction, method domain.LotMethod) ([]domain.CGTEvent, error)

	// RebuildFromLedger discards all parcels, events and losses and replays
	// the executed ledger from scratch.
	RebuildFromLedger(ctx context.Context) (*domain.RebuildReport, error)

	// AnnualSummary aggregates a tax year's events, nets carried forward
	// losses and persists any new or consumed loss balances. Not idempotent:
	// running it again for the same year consumes carried losses again.
	AnnualSummary(ctx context.Context, taxYear string) (*domain.CGTSummary, error)
}

// CGTSvcFacade combines all CGT service interfaces
type CGTSvcFacade interface {
	CGTReaderSvc
	CGTWriterSvc
}
