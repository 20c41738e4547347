package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstrumentPrice is the persistence model for a stored stock price.
type InstrumentPrice struct {
	Stock         string          `json:"stock"`
	Price         decimal.Decimal `json:"price"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}
