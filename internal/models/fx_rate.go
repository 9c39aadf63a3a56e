package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ProviderKoreaExim identifies the Korea Eximbank exchange-rate API as the
// source of an FxRate row.
const ProviderKoreaExim = "KOREA_EXIM"

// FxRate is one persisted daily exchange-rate observation.
// Rows are unique per (base_date, currency_code, provider); re-fetching the
// same date overwrites the existing row.
type FxRate struct {
	BaseDate     time.Time       `json:"baseDate"`
	CurrencyCode string          `json:"currencyCode"` // e.g. "USD", "JPY(100)"
	CurrencyName *string         `json:"currencyName"`
	DealBasR     decimal.Decimal `json:"dealBasR"` // 매매기준율
	TTB          decimal.Decimal `json:"ttb"`      // telegraphic transfer buying
	TTS          decimal.Decimal `json:"tts"`      // telegraphic transfer selling
	Provider     string          `json:"provider"`
	Raw          json.RawMessage `json:"raw"` // original upstream payload, kept for audit
	CreatedAt    time.Time       `json:"createdAt"`
}
