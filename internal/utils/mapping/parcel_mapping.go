package mapping

import (
	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	"github.com/asxfolio/asx_portfolio_app/internal/models"
)

// ToModelTaxParcel converts a domain TaxParcel to a model TaxParcel.
func ToModelTaxParcel(d domain.TaxParcel) models.TaxParcel {
	return models.TaxParcel{
		ParcelID:          d.ParcelID,
		Stock:             d.Stock,
		AcquisitionDate:   d.AcquisitionDate,
		Quantity:          d.Quantity,
		RemainingQuantity: d.RemainingQuantity,
		UnitCost:          d.UnitCost,
		TotalCost:         d.TotalCost,
		Brokerage:         d.Brokerage,
		CostBase:          d.CostBase,
		Sold:              d.Sold,
		CreatedAt:         d.CreatedAt,
		LastUpdatedAt:     d.LastUpdatedAt,
	}
}

// ToDomainTaxParcel converts a model TaxParcel to a domain TaxParcel.
func ToDomainTaxParcel(m models.TaxParcel) domain.TaxParcel {
	return domain.TaxParcel{
		ParcelID:          m.ParcelID,
		Stock:             m.Stock,
		AcquisitionDate:   m.AcquisitionDate,
		Quantity:          m.Quantity,
		RemainingQuantity: m.RemainingQuantity,
		UnitCost:          m.UnitCost,
		TotalCost:         m.TotalCost,
		Brokerage:         m.Brokerage,
		CostBase:          m.CostBase,
		Sold:              m.Sold,
		CreatedAt:         m.CreatedAt,
		LastUpdatedAt:     m.LastUpdatedAt,
	}
}

// ToDomainTaxParcelSlice converts a slice of model TaxParcels to domain TaxParcels.
func ToDomainTaxParcelSlice(ms []models.TaxParcel) []domain.TaxParcel {
	ds := make([]domain.TaxParcel, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTaxParcel(m)
	}
	return ds
}
