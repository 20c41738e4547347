package dto

import (
	"time"

	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetPriceRequest defines the payload for storing a stock price.
type SetPriceRequest struct {
	Price decimal.Decimal `json:"price" binding:"required"`
}

// PriceResponse defines the data returned for a stored price.
type PriceResponse struct {
	Stock         string          `json:"stock"`
	Price         decimal.Decimal `json:"price"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToPriceResponse converts a domain.InstrumentPrice to PriceResponse DTO.
func ToPriceResponse(p *domain.InstrumentPrice) PriceResponse {
	return PriceResponse{
		Stock:         p.Stock,
		Price:         p.Price,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ToPriceResponses converts a slice of domain.InstrumentPrice to []PriceResponse.
func ToPriceResponses(prices []domain.InstrumentPrice) []PriceResponse {
	responses := make([]PriceResponse, len(prices))
	for i, p := range prices {
		responses[i] = ToPriceResponse(&p)
	}
	return responses
}
