package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/asxfolio/asx_portfolio_app/internal/apperrors"
	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	portsrepo "github.com/asxfolio/asx_portfolio_app/internal/core/ports/repositories"
	portssvc "github.com/asxfolio/asx_portfolio_app/internal/core/ports/services"
	"github.com/asxfolio/asx_portfolio_app/internal/utils/cgtcalc"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// lossSourceAnnual marks loss records created by annual aggregation.
const lossSourceAnnual = "ANNUAL_CGT"

// cgtService implements parcel tracking, disposal matching and annual
// aggregation on top of the injected repositories. All multi-row writes run
// inside a single database transaction.
type cgtService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
	parcelRepo portsrepo.ParcelRepositoryWithTx
	cgtRepo    portsrepo.CGTRepositoryWithTx
	priceRepo  portsrepo.PriceRepositoryFacade
	now        func() time.Time
}

// NewCGTService creates a new CGT service.
func NewCGTService(ledgerRepo portsrepo.LedgerRepositoryFacade, parcelRepo portsrepo.ParcelRepositoryWithTx, cgtRepo portsrepo.CGTRepositoryWithTx, priceRepo portsrepo.PriceRepositoryFacade) portssvc.CGTSvcFacade {
	return &cgtService{
		ledgerRepo: ledgerRepo,
		parcelRepo: parcelRepo,
		cgtRepo:    cgtRepo,
		priceRepo:  priceRepo,
		now:        time.Now,
	}
}

// Ensure cgtService implements the portssvc.CGTSvcFacade interface
var _ portssvc.CGTSvcFacade = (*cgtService)(nil)

// rollbackOnError is deferred by transactional methods so a failed path never
// leaves a transaction open.
func (s *cgtService) rollbackOnError(ctx context.Context, tx pgx.Tx, committed *bool) {
	if *committed {
		return
	}
	if err := s.parcelRepo.Rollback(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to rollback transaction")
	}
}

// RecordSale matches a sale against the stock's open parcels and persists the
// ledger row, the CGT events and the parcel updates in one transaction.
// A matching failure rolls everything back, so partially matched sales never
// reach the database.
func (s *cgtService) RecordSale(ctx context.Context, sale domain.Transaction, method domain.LotMethod) ([]domain.CGTEvent, error) {
	if sale.Stock == "" {
		return nil, apperrors.NewValidationError("stock is required")
	}
	if sale.Quantity <= 0 {
		return nil, apperrors.NewValidationError("sale quantity must be positive")
	}
	if sale.Price.IsNegative() {
		return nil, apperrors.NewValidationError("sale price cannot be negative")
	}
	if method == "" {
		method = domain.MethodFIFO
	}

	now := s.now()
	if sale.TransactionID == "" {
		sale.TransactionID = uuid.NewString()
	}
	sale.Side = domain.Sell
	sale.Status = domain.StatusExecuted
	if sale.Total.IsZero() {
		sale.Total = sale.Price.Mul(decimal.NewFromInt(sale.Quantity))
	}
	sale.CreatedAt = now
	sale.LastUpdatedAt = now

	tx, err := s.parcelRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer s.rollbackOnError(ctx, tx, &committed)

	locked, err := s.parcelRepo.FindEligibleParcelsForUpdate(ctx, tx, sale.Stock)
	if err != nil {
		s.LogError(ctx, err, "Failed to lock parcels for disposal", slog.String("stock", sale.Stock))
		return nil, err
	}

	// Shares bought after the sale date cannot fund it.
	eligible := make([]domain.TaxParcel, 0, len(locked))
	for _, p := range locked {
		if !p.AcquisitionDate.After(sale.Date) {
			eligible = append(eligible, p)
		}
	}

	events, deltas, err := cgtcalc.MatchDisposal(eligible, sale.Stock, sale.Date, sale.Quantity, sale.Price, method)
	if err != nil {
		s.LogWarn(ctx, "Disposal matching failed", slog.String("stock", sale.Stock), slog.String("error", err.Error()))
		return nil, err
	}

	for i := range events {
		events[i].EventID = uuid.NewString()
		events[i].CreatedAt = now
	}

	if err := s.ledgerRepo.SaveTransactionInTx(ctx, tx, sale); err != nil {
		s.LogError(ctx, err, "Failed to save sale transaction", slog.String("transaction_id", sale.TransactionID))
		return nil, err
	}
	if err := s.parcelRepo.ApplyParcelDeltasInTx(ctx, tx, deltas, now); err != nil {
		s.LogError(ctx, err, "Failed to apply parcel deltas")
		return nil, err
	}
	if err := s.cgtRepo.SaveEventsInTx(ctx, tx, events); err != nil {
		s.LogError(ctx, err, "Failed to save cgt events")
		return nil, err
	}

	if err := s.parcelRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	committed = true

	s.LogInfo(ctx, "Sale recorded",
		slog.String("stock", sale.Stock),
		slog.Int64("quantity", sale.Quantity),
		slog.Int("events", len(events)),
		slog.String("method", string(method)))
	return events, nil
}

// RebuildFromLedger wipes all derived CGT state and replays every executed
// ledger transaction in (trade date, insertion) order. The replay happens in
// memory and the final state is persisted in one transaction, so readers never
// observe a half-rebuilt book. Sales that cannot be matched are reported as
// skipped instead of aborting the rebuild.
func (s *cgtService) RebuildFromLedger(ctx context.Context) (*domain.RebuildReport, error) {
	txns, err := s.ledgerRepo.ListExecutedTransactions(ctx, "")
	if err != nil {
		s.LogError(ctx, err, "Failed to list executed transactions for rebuild")
		return nil, err
	}

	now := s.now()
	report := &domain.RebuildReport{}
	var parcels []domain.TaxParcel
	parcelIndex := make(map[string]int)
	var events []domain.CGTEvent

	for _, txn := range txns {
		report.TransactionsProcessed++
		switch txn.Side {
		case domain.Buy:
			p := parcelFromBuy(txn, now)
			parcelIndex[p.ParcelID] = len(parcels)
			parcels = append(parcels, p)
			report.ParcelsCreated++
		case domain.Sell:
			eligible := make([]domain.TaxParcel, 0, len(parcels))
			for _, p := range parcels {
				if p.Stock == txn.Stock && p.RemainingQuantity > 0 && !p.AcquisitionDate.After(txn.Date) {
					eligible = append(eligible, p)
				}
			}

			saleEvents, deltas, err := cgtcalc.MatchDisposal(eligible, txn.Stock, txn.Date, txn.Quantity, txn.Price, domain.MethodFIFO)
			if err != nil {
				s.LogWarn(ctx, "Skipping unmatchable sale during rebuild",
					slog.String("transaction_id", txn.TransactionID),
					slog.String("stock", txn.Stock),
					slog.String("error", err.Error()))
				report.Skipped = append(report.Skipped, domain.SkippedSale{
					TransactionID: txn.TransactionID,
					Stock:         txn.Stock,
					SaleDate:      txn.Date,
					Quantity:      txn.Quantity,
					Reason:        err.Error(),
				})
				continue
			}

			for i := range saleEvents {
				saleEvents[i].EventID = uuid.NewString()
				saleEvents[i].CreatedAt = now
			}
			events = append(events, saleEvents...)
			report.EventsCreated += len(saleEvents)

			for _, d := range deltas {
				idx, ok := parcelIndex[d.ParcelID]
				if !ok {
					return nil, fmt.Errorf("rebuild produced delta for unknown parcel %s", d.ParcelID)
				}
				parcels[idx].RemainingQuantity = d.RemainingQuantity
				parcels[idx].Sold = d.Sold
				parcels[idx].LastUpdatedAt = now
			}
		}
	}

	tx, err := s.parcelRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer s.rollbackOnError(ctx, tx, &committed)

	if err := s.cgtRepo.DeleteAllEventsInTx(ctx, tx); err != nil {
		return nil, err
	}
	if err := s.cgtRepo.DeleteAllLossesInTx(ctx, tx); err != nil {
		return nil, err
	}
	if err := s.parcelRepo.DeleteAllParcelsInTx(ctx, tx); err != nil {
		return nil, err
	}
	if err := s.parcelRepo.SaveParcelsInTx(ctx, tx, parcels); err != nil {
		return nil, err
	}
	if err := s.cgtRepo.SaveEventsInTx(ctx, tx, events); err != nil {
		return nil, err
	}
	if err := s.parcelRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	committed = true

	s.LogInfo(ctx, "Ledger rebuild completed",
		slog.Int("transactions", report.TransactionsProcessed),
		slog.Int("parcels", report.ParcelsCreated),
		slog.Int("events", report.EventsCreated),
		slog.Int("skipped", len(report.Skipped)))
	return report, nil
}

// parcelFromBuy opens the tax parcel for one executed buy transaction.
func parcelFromBuy(txn domain.Transaction, now time.Time) domain.TaxParcel {
	total := txn.Total
	if total.IsZero() {
		total = txn.Price.Mul(decimal.NewFromInt(txn.Quantity))
	}
	return domain.TaxParcel{
		ParcelID:          uuid.NewString(),
		Stock:             txn.Stock,
		AcquisitionDate:   txn.Date,
		Quantity:          txn.Quantity,
		RemainingQuantity: txn.Quantity,
		UnitCost:          txn.Price,
		TotalCost:         total,
		Brokerage:         txn.Fee,
		CostBase:          total.Add(txn.Fee),
		Sold:              false,
		CreatedAt:         now,
		LastUpdatedAt:     now,
	}
}

// AnnualSummary aggregates one tax year's realized events, offsets prior-year
// carried forward losses oldest first, and persists the updated loss balances.
func (s *cgtService) AnnualSummary(ctx context.Context, taxYear string) (*domain.CGTSummary, error) {
	tx, err := s.cgtRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := s.cgtRepo.Rollback(ctx, tx); rbErr != nil {
				s.LogError(ctx, rbErr, "Failed to rollback summary transaction")
			}
		}
	}()

	events, err := s.cgtRepo.FindEventsByTaxYearInTx(ctx, tx, taxYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to load cgt events", slog.String("tax_year", taxYear))
		return nil, err
	}

	summary := &domain.CGTSummary{
		TaxYear:               taxYear,
		TotalCapitalGains:     decimal.Zero,
		TotalCapitalLosses:    decimal.Zero,
		DiscountEligibleGains: decimal.Zero,
		DiscountedGains:       decimal.Zero,
		NetCapitalGain:        decimal.Zero,
		CarriedForwardLosses:  decimal.Zero,
	}

	for _, ev := range events {
		if ev.CapitalGain.IsPositive() {
			summary.TotalCapitalGains = summary.TotalCapitalGains.Add(ev.CapitalGain)
			summary.DiscountedGains = summary.DiscountedGains.Add(ev.DiscountedGain)
			if ev.DiscountEligible {
				summary.DiscountEligibleGains = summary.DiscountEligibleGains.Add(ev.CapitalGain)
			}
		} else {
			summary.TotalCapitalLosses = summary.TotalCapitalLosses.Add(ev.CapitalGain.Abs())
		}
	}

	net := summary.DiscountedGains.Sub(summary.TotalCapitalLosses)

	losses, err := s.cgtRepo.ListOutstandingLossesInTx(ctx, tx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load outstanding losses")
		return nil, err
	}

	now := s.now()
	outstanding := decimal.Zero
	for _, loss := range losses {
		// Only losses carried in from earlier years can offset this year.
		if loss.TaxYear >= taxYear {
			outstanding = outstanding.Add(loss.RemainingLoss)
			continue
		}
		if net.IsPositive() && loss.RemainingLoss.IsPositive() {
			consumed := decimal.Min(net, loss.RemainingLoss)
			remaining := loss.RemainingLoss.Sub(consumed)
			if err := s.cgtRepo.UpdateRemainingLossInTx(ctx, tx, loss.LossID, remaining, now); err != nil {
				s.LogError(ctx, err, "Failed to consume carried loss", slog.String("loss_id", loss.LossID))
				return nil, err
			}
			net = net.Sub(consumed)
			outstanding = outstanding.Add(remaining)
		} else {
			outstanding = outstanding.Add(loss.RemainingLoss)
		}
	}

	if net.IsNegative() {
		// The year closed at a net loss; bank it for future years.
		lossAmount := net.Abs()
		newLoss := domain.CapitalLoss{
			LossID:        uuid.NewString(),
			TaxYear:       taxYear,
			LossAmount:    lossAmount,
			RemainingLoss: lossAmount,
			Source:        lossSourceAnnual,
			CreatedAt:     now,
			LastUpdatedAt: now,
		}
		if err := s.cgtRepo.UpsertLossInTx(ctx, tx, newLoss); err != nil {
			s.LogError(ctx, err, "Failed to record annual capital loss", slog.String("tax_year", taxYear))
			return nil, err
		}
		outstanding = outstanding.Add(lossAmount)
		summary.NetCapitalGain = decimal.Zero
	} else {
		summary.NetCapitalGain = net
	}
	summary.CarriedForwardLosses = outstanding

	if err := s.cgtRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	committed = true

	s.LogInfo(ctx, "Annual summary calculated",
		slog.String("tax_year", taxYear),
		slog.String("net_capital_gain", summary.NetCapitalGain.String()),
		slog.String("carried_forward", summary.CarriedForwardLosses.String()))
	return summary, nil
}

// ListOpenParcels retrieves parcels that still hold shares.
func (s *cgtService) ListOpenParcels(ctx context.Context, stock string) ([]domain.TaxParcel, error) {
	return s.parcelRepo.ListOpenParcels(ctx, stock)
}

// ListEvents retrieves the realized CGT events for a tax year.
func (s *cgtService) ListEvents(ctx context.Context, taxYear string) ([]domain.CGTEvent, error) {
	return s.cgtRepo.ListEventsByTaxYear(ctx, taxYear)
}

// UnrealizedGains estimates every open parcel's position at stored prices.
// Parcels with no stored price are skipped so one missing price does not sink
// the whole report.
func (s *cgtService) UnrealizedGains(ctx context.Context, asOf time.Time) ([]domain.UnrealizedGain, error) {
	parcels, err := s.parcelRepo.ListOpenParcels(ctx, "")
	if err != nil {
		s.LogError(ctx, err, "Failed to list open parcels")
		return nil, err
	}

	stored, err := s.priceRepo.ListPrices(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list stored prices")
		return nil, err
	}
	priceByStock := make(map[string]decimal.Decimal, len(stored))
	for _, p := range stored {
		priceByStock[p.Stock] = p.Price
	}

	gains := make([]domain.UnrealizedGain, 0, len(parcels))
	for _, parcel := range parcels {
		price, ok := priceByStock[parcel.Stock]
		if !ok {
			s.LogWarn(ctx, "No stored price for stock, skipping parcel",
				slog.String("stock", parcel.Stock),
				slog.String("parcel_id", parcel.ParcelID))
			continue
		}
		gains = append(gains, cgtcalc.Unrealized(parcel, price, asOf))
	}
	return gains, nil
}

// SuggestDisposal ranks a stock's open parcels by post-discount gain per share
// for a hypothetical sale at salePrice, cheapest tax outcome first, and sizes
// each parcel against targetGain.
func (s *cgtService) SuggestDisposal(ctx context.Context, stock string, salePrice decimal.Decimal, targetGain decimal.Decimal, asOf time.Time) ([]domain.ParcelSuggestion, error) {
	if stock == "" {
		return nil, apperrors.NewValidationError("stock is required")
	}
	if salePrice.IsNegative() {
		return nil, apperrors.NewValidationError("sale price cannot be negative")
	}

	parcels, err := s.parcelRepo.ListOpenParcels(ctx, stock)
	if err != nil {
		s.LogError(ctx, err, "Failed to list open parcels", slog.String("stock", stock))
		return nil, err
	}

	suggestions := make([]domain.ParcelSuggestion, 0, len(parcels))
	for _, p := range parcels {
		costPerShare := p.CostBase.Div(decimal.NewFromInt(p.Quantity))
		gainPerShare := salePrice.Sub(costPerShare)
		eligible := cgtcalc.DiscountEligible(p.AcquisitionDate, asOf)
		effective := cgtcalc.ApplyDiscount(gainPerShare, eligible)

		var sharesForTarget int64
		if effective.IsPositive() && targetGain.IsPositive() {
			sharesForTarget = targetGain.Div(effective).IntPart()
			if sharesForTarget > p.RemainingQuantity {
				sharesForTarget = p.RemainingQuantity
			}
		}

		suggestions = append(suggestions, domain.ParcelSuggestion{
			ParcelID:              p.ParcelID,
			Stock:                 p.Stock,
			AcquisitionDate:       p.AcquisitionDate,
			AvailableQuantity:     p.RemainingQuantity,
			CostPerShare:          costPerShare,
			GainPerShare:          gainPerShare,
			DiscountEligible:      eligible,
			EffectiveGainPerShare: effective,
			SharesForTarget:       sharesForTarget,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].EffectiveGainPerShare.LessThan(suggestions[j].EffectiveGainPerShare)
	})
	return suggestions, nil
}
