package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionSide indicates whether a ledger transaction is a buy or a sell.
type TransactionSide string

const (
	Buy  TransactionSide = "BUY"
	Sell TransactionSide = "SELL"
)

// TransactionStatus is the execution state of a ledger transaction.
// Only executed transactions participate in CGT calculations.
type TransactionStatus string

const (
	StatusExecuted  TransactionStatus = "EXECUTED"
	StatusPending   TransactionStatus = "PENDING"
	StatusCancelled TransactionStatus = "CANCELLED"
)

// Transaction is one buy or sell event in the portfolio ledger.
// The ledger is append-only from the CGT engine's point of view: the engine
// reads executed transactions in (date, insertion) order and never writes them.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (UUID)
	Stock         string            `json:"stock"`         // ASX ticker, e.g. "CBA"
	Date          time.Time         `json:"date"`          // Trade date
	Side          TransactionSide   `json:"side"`
	Quantity      int64             `json:"quantity"`
	Price         decimal.Decimal   `json:"price"` // Unit price
	Total         decimal.Decimal   `json:"total"` // Quantity x price at execution
	Fee           decimal.Decimal   `json:"fee"`   // Brokerage
	Status        TransactionStatus `json:"status"`
	AuditFields
}
