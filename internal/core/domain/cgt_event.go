package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LotMethod selects the order in which parcels are consumed by a disposal.
type LotMethod string

const (
	MethodFIFO LotMethod = "FIFO"
	MethodLIFO LotMethod = "LIFO"
	// MethodSpecific is accepted but falls back to FIFO ordering: specific
	// identification needs per-parcel selection input that no caller supplies yet.
	MethodSpecific LotMethod = "SPECIFIC"
)

// CGTEvent is the tax consequence of matching some quantity from one parcel
// against one sale. Events are immutable once created and are grouped into
// the event log by Australian tax year.
type CGTEvent struct {
	EventID          string          `json:"eventID"` // Primary Key (UUID)
	TaxYear          string          `json:"taxYear"` // e.g. "2023-2024"
	Stock            string          `json:"stock"`
	SaleDate         time.Time       `json:"saleDate"`
	Quantity         int64           `json:"quantity"`
	SalePrice        decimal.Decimal `json:"salePrice"`
	SaleTotal        decimal.Decimal `json:"saleTotal"` // Quantity x SalePrice
	CostBase         decimal.Decimal `json:"costBase"`  // Proportional share of the parcel's cost base
	AcquisitionDate  time.Time       `json:"acquisitionDate"`
	CapitalGain      decimal.Decimal `json:"capitalGain"`
	DiscountEligible bool            `json:"discountEligible"`
	DiscountedGain   decimal.Decimal `json:"discountedGain"`
	Method           LotMethod       `json:"method"`
	CreatedAt        time.Time       `json:"createdAt"`
}
