package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstrumentPrice is the manually maintained latest price for a stock, used
// when estimating unrealized gains.
type InstrumentPrice struct {
	Stock         string          `json:"stock"`
	Price         decimal.Decimal `json:"price"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}
