package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapitalLoss is a net capital loss carried forward from one tax year,
// available to offset future capital gains. One row per tax year;
// RemainingLoss is consumed by later annual aggregations, oldest year first.
type CapitalLoss struct {
	LossID        string          `json:"lossID"`  // Primary Key (UUID)
	TaxYear       string          `json:"taxYear"` // Unique
	LossAmount    decimal.Decimal `json:"lossAmount"`
	RemainingLoss decimal.Decimal `json:"remainingLoss"` // RemainingLoss <= LossAmount
	Source        string          `json:"source"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}
