package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxParcel is the persistence model for one acquisition lot.
type TaxParcel struct {
	ParcelID          string          `json:"parcelID"`
	Stock             string          `json:"stock"`
	AcquisitionDate   time.Time       `json:"acquisitionDate"`
	Quantity          int64           `json:"quantity"`
	RemainingQuantity int64           `json:"remainingQuantity"`
	UnitCost          decimal.Decimal `json:"unitCost"`
	TotalCost         decimal.Decimal `json:"totalCost"`
	Brokerage         decimal.Decimal `json:"brokerage"`
	CostBase          decimal.Decimal `json:"costBase"`
	Sold              bool            `json:"sold"`
	CreatedAt         time.Time       `json:"createdAt"`
	LastUpdatedAt     time.Time       `json:"lastUpdatedAt"`
}
