package models

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
type TransactionStatus string

const (
	StatusExecuted  TransactionStatus = "EXECUTED"
	StatusPending   TransactionStatus = "PENDING"
	StatusCancelled TransactionStatus = "CANCELLED"
)

// Transaction is the persistence model for one row of the portfolio ledger.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	Stock         string            `json:"stock"`
	Date          time.Time         `json:"date"`
	Side          TransactionSide   `json:"side"`
	Quantity      int64             `json:"quantity"`
	Price         decimal.Decimal   `json:"price"`
	Total         decimal.Decimal   `json:"total"`
	Fee           decimal.Decimal   `json:"fee"`
	Status        TransactionStatus `json:"status"`
	AuditFields
}
