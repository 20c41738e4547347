package mapping

import (
	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	"github.com/asxfolio/asx_portfolio_app/internal/models"
)

// ToModelInstrumentPrice converts a domain InstrumentPrice to a model InstrumentPrice.
func ToModelInstrumentPrice(d domain.InstrumentPrice) models.InstrumentPrice {
	return models.InstrumentPrice(d)
}

// ToDomainInstrumentPrice converts a model InstrumentPrice to a domain InstrumentPrice.
func ToDomainInstrumentPrice(m models.InstrumentPrice) domain.InstrumentPrice {
	return domain.InstrumentPrice(m)
}

// ToDomainInstrumentPriceSlice converts a slice of model InstrumentPrices to domain InstrumentPrices.
func ToDomainInstrumentPriceSlice(ms []models.InstrumentPrice) []domain.InstrumentPrice {
	ds := make([]domain.InstrumentPrice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInstrumentPrice(m)
	}
	return ds
}
