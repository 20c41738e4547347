package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CGTSummary is the annual capital gains tax position for one tax year,
// after the 50% discount and carried-forward loss offsetting.
type CGTSummary struct {
	TaxYear               string          `json:"taxYear"`
	TotalCapitalGains     decimal.Decimal `json:"totalCapitalGains"`
	TotalCapitalLosses    decimal.Decimal `json:"totalCapitalLosses"`
	DiscountEligibleGains decimal.Decimal `json:"discountEligibleGains"`
	DiscountedGains       decimal.Decimal `json:"discountedGains"`
	NetCapitalGain        decimal.Decimal `json:"netCapitalGain"`
	CarriedForwardLosses  decimal.Decimal `json:"carriedForwardLosses"` // Outstanding balance after this aggregation
}

// UnrealizedGain is the estimated CGT position of one open parcel against a
// current market price. Computing it never mutates parcel state.
type UnrealizedGain struct {
	ParcelID         string          `json:"parcelID"`
	Stock            string          `json:"stock"`
	AcquisitionDate  time.Time       `json:"acquisitionDate"`
	Quantity         int64           `json:"quantity"` // Remaining (unsold) quantity
	CostBase         decimal.Decimal `json:"costBase"` // Proportional to remaining quantity
	CurrentValue     decimal.Decimal `json:"currentValue"`
	Gain             decimal.Decimal `json:"gain"`
	HoldingDays      int             `json:"holdingPeriodDays"`
	DiscountEligible bool            `json:"discountEligible"`
	AfterDiscount    decimal.Decimal `json:"afterDiscount"`
}

// ParcelSuggestion ranks one open parcel for a planned disposal by its
// effective (post-discount) gain per share at a given price.
type ParcelSuggestion struct {
	ParcelID              string          `json:"parcelID"`
	Stock                 string          `json:"stock"`
	AcquisitionDate       time.Time       `json:"acquisitionDate"`
	AvailableQuantity     int64           `json:"availableQuantity"`
	CostPerShare          decimal.Decimal `json:"costPerShare"`
	GainPerShare          decimal.Decimal `json:"gainPerShare"`
	DiscountEligible      bool            `json:"discountEligible"`
	EffectiveGainPerShare decimal.Decimal `json:"effectiveGainPerShare"`
	SharesForTarget       int64           `json:"sharesForTarget"`
}

// SkippedSale records one sell transaction the rebuild could not match.
type SkippedSale struct {
	TransactionID string    `json:"transactionID"`
	Stock         string    `json:"stock"`
	SaleDate      time.Time `json:"saleDate"`
	Quantity      int64     `json:"quantity"`
	Reason        string    `json:"reason"`
}

// RebuildReport summarises one rebuild-from-ledger run. Skipped sales are
// reported rather than failing the whole rebuild.
type RebuildReport struct {
	TransactionsProcessed int           `json:"transactionsProcessed"`
	ParcelsCreated        int           `json:"parcelsCreated"`
	EventsCreated         int           `json:"eventsCreated"`
	Skipped               []SkippedSale `json:"skipped"`
}
