package services

import (
	"context"
	"time"

	"github.com/daybell/fx_backend/internal/models"
)

// RateReaderSvc defines read operations over the stored rate data, consumed
// by the mobile client.
type RateReaderSvc interface {
	// ListRatesByDate retrieves the stored exchange rates for one base date.
	ListRatesByDate(ctx context.Context, baseDate time.Time) ([]models.FxRate, error)

	// ListLatestRates retrieves the most recent stored rate per currency.
	ListLatestRates(ctx context.Context) ([]models.FxRate, error)

	// GetLatestBaseRate retrieves the most recent stored policy rate.
	GetLatestBaseRate(ctx context.Context) (*models.BaseRate, error)
}
