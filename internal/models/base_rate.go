package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// The Bank of Korea base-rate series as published through the ECOS
// StatisticSearch API.
const (
	BaseRateStatCode = "722Y001"
	BaseRateItemCode = "0101000"
	BaseRateCycle    = "D"
)

// BaseRate is one persisted central-bank policy-rate observation.
// Rows are unique per (stat_code, time_period).
type BaseRate struct {
	StatCode   string           `json:"statCode"`
	StatName   *string          `json:"statName"`
	Cycle      string           `json:"cycle"`
	UnitName   *string          `json:"unitName"`
	TimePeriod string           `json:"timePeriod"` // upstream TIME label, zero-padded and sortable
	DataValue  *decimal.Decimal `json:"dataValue"`  // nil when the upstream value is blank or unparsable
	Raw        json.RawMessage  `json:"raw"`
	CreatedAt  time.Time        `json:"createdAt"`
}
