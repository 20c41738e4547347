package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CGTEvent is the persistence model for one disposal-matching outcome.
type CGTEvent struct {
	EventID          string          `json:"eventID"`
	TaxYear          string          `json:"taxYear"`
	Stock            string          `json:"stock"`
	SaleDate         time.Time       `json:"saleDate"`
	Quantity         int64           `json:"quantity"`
	SalePrice        decimal.Decimal `json:"salePrice"`
	SaleTotal        decimal.Decimal `json:"saleTotal"`
	CostBase         decimal.Decimal `json:"costBase"`
	AcquisitionDate  time.Time       `json:"acquisitionDate"`
	CapitalGain      decimal.Decimal `json:"capitalGain"`
	DiscountEligible bool            `json:"discountEligible"`
	DiscountedGain   decimal.Decimal `json:"discountedGain"`
	Method           string          `json:"method"`
	CreatedAt        time.Time       `json:"createdAt"`
}
