package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapitalLoss is the persistence model for one carried-forward loss balance.
type CapitalLoss struct {
	LossID        string          `json:"lossID"`
	TaxYear       string          `json:"taxYear"`
	LossAmount    decimal.Decimal `json:"lossAmount"`
	RemainingLoss decimal.Decimal `json:"remainingLoss"`
	Source        string          `json:"source"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}
