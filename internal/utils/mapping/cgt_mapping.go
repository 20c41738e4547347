package mapping

import (
	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	"github.com/asxfolio/asx_portfolio_app/internal/models"
)

// ToModelCGTEvent converts a domain CGTEvent to a model CGTEvent.
func ToModelCGTEvent(d domain.CGTEvent) models.CGTEvent {
	return models.CGTEvent{
		EventID:          d.EventID,
		TaxYear:          d.TaxYear,
		Stock:            d.Stock,
		SaleDate:         d.SaleDate,
		Quantity:         d.Quantity,
		SalePrice:        d.SalePrice,
		SaleTotal:        d.SaleTotal,
		CostBase:         d.CostBase,
		AcquisitionDate:  d.AcquisitionDate,
		CapitalGain:      d.CapitalGain,
		DiscountEligible: d.DiscountEligible,
		DiscountedGain:   d.DiscountedGain,
		Method:           string(d.Method),
		CreatedAt:        d.CreatedAt,
	}
}

// ToDomainCGTEvent converts a model CGTEvent to a domain CGTEvent.
func ToDomainCGTEvent(m models.CGTEvent) domain.CGTEvent {
	return domain.CGTEvent{
		EventID:          m.EventID,
		TaxYear:          m.TaxYear,
		Stock:            m.Stock,
		SaleDate:         m.SaleDate,
		Quantity:         m.Quantity,
		SalePrice:        m.SalePrice,
		SaleTotal:        m.SaleTotal,
		CostBase:         m.CostBase,
		AcquisitionDate:  m.AcquisitionDate,
		CapitalGain:      m.CapitalGain,
		DiscountEligible: m.DiscountEligible,
		DiscountedGain:   m.DiscountedGain,
		Method:           domain.LotMethod(m.Method),
		CreatedAt:        m.CreatedAt,
	}
}

// ToDomainCGTEventSlice converts a slice of model CGTEvents to domain CGTEvents.
func ToDomainCGTEventSlice(ms []models.CGTEvent) []domain.CGTEvent {
	ds := make([]domain.CGTEvent, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCGTEvent(m)
	}
	return ds
}

// ToModelCapitalLoss converts a domain CapitalLoss to a model CapitalLoss.
func ToModelCapitalLoss(d domain.CapitalLoss) models.CapitalLoss {
	return models.CapitalLoss{
		LossID:        d.LossID,
		TaxYear:       d.TaxYear,
		LossAmount:    d.LossAmount,
		RemainingLoss: d.RemainingLoss,
		Source:        d.Source,
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ToDomainCapitalLoss converts a model CapitalLoss to a domain CapitalLoss.
func ToDomainCapitalLoss(m models.CapitalLoss) domain.CapitalLoss {
	return domain.CapitalLoss{
		LossID:        m.LossID,
		TaxYear:       m.TaxYear,
		LossAmount:    m.LossAmount,
		RemainingLoss: m.RemainingLoss,
		Source:        m.Source,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

// ToDomainCapitalLossSlice converts a slice of model CapitalLosses to domain CapitalLosses.
func ToDomainCapitalLossSlice(ms []models.CapitalLoss) []domain.CapitalLoss {
	ds := make([]domain.CapitalLoss, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCapitalLoss(m)
	}
	return ds
}
