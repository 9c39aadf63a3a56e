package dto

import (
	"time"

	"github.com/daybell/fx_backend/internal/models"
	"github.com/shopspring/decimal"
)

// ListRatesRequest filters the stored-rates listing by base date (YYYYMMDD).
type ListRatesRequest struct {
	Date string `form:"date" binding:"required,len=8,numeric"`
}

// FxRateResponse is one stored exchange-rate row as returned to clients.
type FxRateResponse struct {
	BaseDate     string          `json:"baseDate"`
	CurrencyCode string          `json:"currencyCode"`
	CurrencyName *string         `json:"currencyName"`
	DealBasR     decimal.Decimal `json:"dealBasR"`
	TTB          decimal.Decimal `json:"ttb"`
	TTS          decimal.Decimal `json:"tts"`
	Provider     string          `json:"provider"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToFxRateResponse converts a models.FxRate to its API shape.
func ToFxRateResponse(rate models.FxRate) FxRateResponse {
	return FxRateResponse{
		BaseDate:     rate.BaseDate.Format(time.DateOnly),
		CurrencyCode: rate.CurrencyCode,
		CurrencyName: rate.CurrencyName,
		DealBasR:     rate.DealBasR,
		TTB:          rate.TTB,
		TTS:          rate.TTS,
		Provider:     rate.Provider,
		CreatedAt:    rate.CreatedAt,
	}
}

// ToListFxRateResponse converts a slice of models.FxRate.
func ToListFxRateResponse(rates []models.FxRate) []FxRateResponse {
	responses := make([]FxRateResponse, len(rates))
	for i, rate := range rates {
		responses[i] = ToFxRateResponse(rate)
	}
	return responses
}

// BaseRateResponse is one stored policy-rate row as returned to clients.
type BaseRateResponse struct {
	StatCode   string           `json:"statCode"`
	StatName   *string          `json:"statName"`
	Cycle      string           `json:"cycle"`
	UnitName   *string          `json:"unitName"`
	TimePeriod string           `json:"timePeriod"`
	DataValue  *decimal.Decimal `json:"dataValue"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// ToBaseRateResponse converts a models.BaseRate to its API shape.
func ToBaseRateResponse(rate *models.BaseRate) BaseRateResponse {
	return BaseRateResponse{
		StatCode:   rate.StatCode,
		StatName:   rate.StatName,
		Cycle:      rate.Cycle,
		UnitName:   rate.UnitName,
		TimePeriod: rate.TimePeriod,
		DataValue:  rate.DataValue,
		CreatedAt:  rate.CreatedAt,
	}
}
