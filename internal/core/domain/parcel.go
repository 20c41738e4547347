package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxParcel is one acquisition lot: the shares bought in a single executed
// buy transaction, tracked separately for cost-base purposes. RemainingQuantity
// only ever decreases; once it reaches zero the parcel is flagged sold and is
// no longer eligible for disposal matching.
type TaxParcel struct {
	ParcelID          string          `json:"parcelID"` // Primary Key (UUID)
	Stock             string          `json:"stock"`
	AcquisitionDate   time.Time       `json:"acquisitionDate"`
	Quantity          int64           `json:"quantity"` // Original quantity, immutable
	RemainingQuantity int64           `json:"remainingQuantity"`
	UnitCost          decimal.Decimal `json:"unitCost"`
	TotalCost         decimal.Decimal `json:"totalCost"`
	Brokerage         decimal.Decimal `json:"brokerage"`
	CostBase          decimal.Decimal `json:"costBase"` // TotalCost + Brokerage
	Sold              bool            `json:"sold"`
	CreatedAt         time.Time       `json:"createdAt"`
	LastUpdatedAt     time.Time       `json:"lastUpdatedAt"`
}

// ParcelDelta is the balance change a disposal applies to one parcel.
type ParcelDelta struct {
	ParcelID          string
	RemainingQuantity int64
	Sold              bool
}
