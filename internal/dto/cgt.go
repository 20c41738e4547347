package dto

import (
	"time"

	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordSaleRequest defines the payload for recording a sale disposal.
type RecordSaleRequest struct {
	Stock    string           `json:"stock" binding:"required,uppercase,min=2,max=6"`
	Date     time.Time        `json:"date" binding:"required"`
	Quantity int64            `json:"quantity" binding:"required,gt=0"`
	Price    decimal.Decimal  `json:"price" binding:"required"`
	Fee      decimal.Decimal  `json:"fee"`
	Method   domain.LotMethod `json:"method" binding:"omitempty,lotmethod"`
}

// CGTEventResponse defines the data returned for a realized CGT event.
type CGTEventResponse struct {
	EventID          string          `json:"eventID"`
	TaxYear          string          `json:"taxYear"`
	Stock            string          `json:"stock"`
	SaleDate         time.Time       `json:"saleDate"`
	Quantity         int64           `json:"quantity"`
	SalePrice        decimal.Decimal `json:"salePrice"`
	SaleTotal        decimal.Decimal `json:"saleTotal"`
	CostBase         decimal.Decimal `json:"costBase"`
	AcquisitionDate  time.Time       `json:"acquisitionDate"`
	CapitalGain      decimal.Decimal `json:"capitalGain"`
	DiscountEligible bool            `json:"discountEligible"`
	DiscountedGain   decimal.Decimal `json:"discountedGain"`
	Method           string          `json:"method"`
}

// ToCGTEventResponse converts a domain.CGTEvent to CGTEventResponse DTO.
func ToCGTEventResponse(ev *domain.CGTEvent) CGTEventResponse {
	return CGTEventResponse{
		EventID:          ev.EventID,
		TaxYear:          ev.TaxYear,
		Stock:            ev.Stock,
		SaleDate:         ev.SaleDate,
		Quantity:         ev.Quantity,
		SalePrice:        ev.SalePrice,
		SaleTotal:        ev.SaleTotal,
		CostBase:         ev.CostBase,
		AcquisitionDate:  ev.AcquisitionDate,
		CapitalGain:      ev.CapitalGain,
		DiscountEligible: ev.DiscountEligible,
		DiscountedGain:   ev.DiscountedGain,
		Method:           string(ev.Method),
	}
}

// ToCGTEventResponses converts a slice of domain.CGTEvent to []CGTEventResponse.
func ToCGTEventResponses(events []domain.CGTEvent) []CGTEventResponse {
	responses := make([]CGTEventResponse, len(events))
	for i, ev := range events {
		responses[i] = ToCGTEventResponse(&ev)
	}
	return responses
}

// TaxParcelResponse defines the data returned for an open tax parcel.
type TaxParcelResponse struct {
	ParcelID          string          `json:"parcelID"`
	Stock             string          `json:"stock"`
	AcquisitionDate   time.Time       `json:"acquisitionDate"`
	Quantity          int64           `json:"quantity"`
	RemainingQuantity int64           `json:"remainingQuantity"`
	UnitCost          decimal.Decimal `json:"unitCost"`
	CostBase          decimal.Decimal `json:"costBase"`
}

// ToTaxParcelResponses converts a slice of domain.TaxParcel to []TaxParcelResponse.
func ToTaxParcelResponses(parcels []domain.TaxParcel) []TaxParcelResponse {
	responses := make([]TaxParcelResponse, len(parcels))
	for i, p := range parcels {
		responses[i] = TaxParcelResponse{
			ParcelID:          p.ParcelID,
			Stock:             p.Stock,
			AcquisitionDate:   p.AcquisitionDate,
			Quantity:          p.Quantity,
			RemainingQuantity: p.RemainingQuantity,
			UnitCost:          p.UnitCost,
			CostBase:          p.CostBase,
		}
	}
	return responses
}
