package mapping

import (
	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	"github.com/asxfolio/asx_portfolio_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		Stock:         d.Stock,
		Date:          d.Date,
		Side:          models.TransactionSide(d.Side),
		Quantity:      d.Quantity,
		Price:         d.Price,
		Total:         d.Total,
		Fee:           d.Fee,
		Status:        models.TransactionStatus(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		Stock:         m.Stock,
		Date:          m.Date,
		Side:          domain.TransactionSide(m.Side),
		Quantity:      m.Quantity,
		Price:         m.Price,
		Total:         m.Total,
		Fee:           m.Fee,
		Status:        domain.TransactionStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
