// Package cgtcalc holds the pure capital-gains arithmetic used by the CGT
// engine: Australian tax-year mapping, the 12-month discount rule and the
// FIFO/LIFO disposal-matching algorithm. Nothing in this package touches
// storage; callers apply the returned parcel deltas themselves.
package cgtcalc

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DiscountHoldingDays is the minimum holding period for the CGT discount.
// Eligibility is strict: a parcel held exactly this many days does not qualify.
const DiscountHoldingDays = 365

// discountFactor halves eligible gains (the 50% CGT discount).
var discountFactor = decimal.New(5, -1)

var (
	// ErrInsufficientParcels means a sale requested more quantity than the
	// eligible parcels can cover.
	ErrInsufficientParcels = errors.New("insufficient parcels to cover disposal")

	// ErrNoParcelsFound means no eligible parcel exists at all for the instrument.
	ErrNoParcelsFound = errors.New("no tax parcels found for instrument")
)

// DisposalError carries the context of a failed disposal match: which
// instrument, how much was requested and how much was actually available.
// It unwraps to ErrNoParcelsFound when Available is zero, otherwise to
// ErrInsufficientParcels.
type DisposalError struct {
	Stock     string
	SaleDate  time.Time
	Requested int64
	Available int64
}

func (e *DisposalError) Error() string {
	if e.Available == 0 {
		return fmt.Sprintf("no tax parcels found for %s before %s", e.Stock, e.SaleDate.Format("2006-01-02"))
	}
	return fmt.Sprintf("insufficient parcels for %s: requested %d, only %d available before %s",
		e.Stock, e.Requested, e.Available, e.SaleDate.Format("2006-01-02"))
}

func (e *DisposalError) Unwrap() error {
	if e.Available == 0 {
		return ErrNoParcelsFound
	}
	return ErrInsufficientParcels
}

// TaxYear maps a date to its Australian tax year label (July 1 to June 30),
// e.g. 2024-06-30 -> "2023-2024" and 2024-07-01 -> "2024-2025".
func TaxYear(d time.Time) string {
	if d.Month() >= time.July {
		return fmt.Sprintf("%d-%d", d.Year(), d.Year()+1)
	}
	return fmt.Sprintf("%d-%d", d.Year()-1, d.Year())
}

// HoldingDays returns the calendar days between acquisition and sale.
// Both dates are truncated to UTC midnight so intraday times never shift
// the discount boundary.
func HoldingDays(acquisition, sale time.Time) int {
	a := time.Date(acquisition.Year(), acquisition.Month(), acquisition.Day(), 0, 0, 0, 0, time.UTC)
	s := time.Date(sale.Year(), sale.Month(), sale.Day(), 0, 0, 0, 0, time.UTC)
	return int(s.Sub(a).Hours() / 24)
}

// DiscountEligible reports whether a holding period qualifies for the 50%
// discount. The comparison is strictly greater-than: exactly 365 days is
// not eligible.
func DiscountEligible(acquisition, sale time.Time) bool {
	return HoldingDays(acquisition, sale) > DiscountHoldingDays
}

// ApplyDiscount halves a gain when it is both discount-eligible and positive.
// Losses and ineligible gains pass through unchanged.
func ApplyDiscount(gain decimal.Decimal, eligible bool) decimal.Decimal {
	if eligible && gain.IsPositive() {
		return gain.Mul(discountFactor)
	}
	return gain
}

// ProportionalCostBase allocates a parcel's cost base to a partial disposal:
// costBase x (sharesTaken / originalQuantity). The proportion is always
// against the original quantity, never the remaining balance, so repeated
// partial disposals of one parcel sum back to the full cost base.
func ProportionalCostBase(costBase decimal.Decimal, sharesTaken, originalQuantity int64) decimal.Decimal {
	proportion := decimal.NewFromInt(sharesTaken).Div(decimal.NewFromInt(originalQuantity))
	return costBase.Mul(proportion)
}

// OrderParcels returns a copy of parcels sorted for consumption under the
// given lot method: FIFO oldest acquisition first, LIFO newest first.
// Specific identification falls back to FIFO. Ties on acquisition date are
// broken by parcel ID for a deterministic order.
func OrderParcels(parcels []domain.TaxParcel, method domain.LotMethod) []domain.TaxParcel {
	ordered := make([]domain.TaxParcel, len(parcels))
	copy(ordered, parcels)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.AcquisitionDate.Equal(b.AcquisitionDate) {
			if method == domain.MethodLIFO {
				return a.AcquisitionDate.After(b.AcquisitionDate)
			}
			return a.AcquisitionDate.Before(b.AcquisitionDate)
		}
		return a.ParcelID < b.ParcelID
	})
	return ordered
}

// MatchDisposal matches a sale of quantity shares at salePrice against the
// supplied eligible parcels (remaining quantity > 0, already filtered by the
// caller for acquisition-date cutoffs). It walks the parcels in lot-method
// order, greedily consuming min(outstanding, parcel remaining) from each, and
// returns one CGT event plus one parcel delta per parcel drawn from.
//
// The input parcels are never mutated. If the eligible parcels cannot cover
// the full quantity a *DisposalError is returned and no events or deltas are
// produced, so a failed match commits nothing.
func MatchDisposal(parcels []domain.TaxParcel, stock string, saleDate time.Time, quantity int64, salePrice decimal.Decimal, method domain.LotMethod) ([]domain.CGTEvent, []domain.ParcelDelta, error) {
	if len(parcels) == 0 {
		return nil, nil, &DisposalError{Stock: stock, SaleDate: saleDate, Requested: quantity}
	}

	available := int64(0)
	for _, p := range parcels {
		available += p.RemainingQuantity
	}
	if available < quantity {
		return nil, nil, &DisposalError{Stock: stock, SaleDate: saleDate, Requested: quantity, Available: available}
	}

	taxYear := TaxYear(saleDate)
	events := make([]domain.CGTEvent, 0, 1)
	deltas := make([]domain.ParcelDelta, 0, 1)
	remainingToSell := quantity

	for _, parcel := range OrderParcels(parcels, method) {
		if remainingToSell <= 0 {
			break
		}

		sharesTaken := remainingToSell
		if parcel.RemainingQuantity < sharesTaken {
			sharesTaken = parcel.RemainingQuantity
		}

		costBase := ProportionalCostBase(parcel.CostBase, sharesTaken, parcel.Quantity)
		proceeds := decimal.NewFromInt(sharesTaken).Mul(salePrice)
		capitalGain := proceeds.Sub(costBase)
		eligible := DiscountEligible(parcel.AcquisitionDate, saleDate)

		events = append(events, domain.CGTEvent{
			TaxYear:          taxYear,
			Stock:            stock,
			SaleDate:         saleDate,
			Quantity:         sharesTaken,
			SalePrice:        salePrice,
			SaleTotal:        proceeds,
			CostBase:         costBase,
			AcquisitionDate:  parcel.AcquisitionDate,
			CapitalGain:      capitalGain,
			DiscountEligible: eligible,
			DiscountedGain:   ApplyDiscount(capitalGain, eligible),
			Method:           method,
		})

		newRemaining := parcel.RemainingQuantity - sharesTaken
		deltas = append(deltas, domain.ParcelDelta{
			ParcelID:          parcel.ParcelID,
			RemainingQuantity: newRemaining,
			Sold:              newRemaining == 0,
		})

		remainingToSell -= sharesTaken
	}

	return events, deltas, nil
}

// Unrealized estimates the CGT position of one open parcel against a current
// price as of the given date. The cost base is scaled to the remaining
// quantity; discount eligibility follows the same strict 365-day rule as
// realized disposals.
func Unrealized(parcel domain.TaxParcel, price decimal.Decimal, asOf time.Time) domain.UnrealizedGain {
	costBase := ProportionalCostBase(parcel.CostBase, parcel.RemainingQuantity, parcel.Quantity)
	currentValue := decimal.NewFromInt(parcel.RemainingQuantity).Mul(price)
	gain := currentValue.Sub(costBase)
	eligible := DiscountEligible(parcel.AcquisitionDate, asOf)

	return domain.UnrealizedGain{
		ParcelID:         parcel.ParcelID,
		Stock:            parcel.Stock,
		AcquisitionDate:  parcel.AcquisitionDate,
		Quantity:         parcel.RemainingQuantity,
		CostBase:         costBase,
		CurrentValue:     currentValue,
		Gain:             gain,
		HoldingDays:      HoldingDays(parcel.AcquisitionDate, asOf),
		DiscountEligible: eligible,
		AfterDiscount:    ApplyDiscount(gain, eligible),
	}
}
