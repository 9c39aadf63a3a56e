package repositories

import (
	"context"
	"time"

	"github.com/daybell/fx_backend/internal/models"
)

// FxRateRepository defines persistence operations for daily exchange rates.
type FxRateRepository interface {
	// UpsertRates writes the batch idempotently, keyed by
	// (base_date, currency_code, provider). Existing rows are overwritten.
	// Returns the number of rows written.
	UpsertRates(ctx context.Context, rates []models.FxRate) (int64, error)

	ListRatesByDate(ctx context.Context, baseDate time.Time) ([]models.FxRate, error)

	// ListLatestRates returns the most recent stored row per currency code.
	ListLatestRates(ctx context.Context) ([]models.FxRate, error)
}

// BaseRateRepository defines persistence operations for policy-rate records.
// Insert and Upsert are intentionally separate: the fetch pipeline tries a
// plain insert first and only falls back to the upsert when the insert loses
// a uniqueness race (see apperrors.ErrDuplicate).
type BaseRateRepository interface {
	// InsertBaseRate inserts a new row and returns the number of rows
	// written. A uniqueness conflict on (stat_code, time_period) is reported
	// as apperrors.ErrDuplicate.
	InsertBaseRate(ctx context.Context, rate models.BaseRate) (int64, error)

	// UpsertBaseRate inserts or overwrites the row sharing the same
	// (stat_code, time_period) key.
	UpsertBaseRate(ctx context.Context, rate models.BaseRate) (int64, error)

	FindLatestBaseRate(ctx context.Context, statCode string) (*models.BaseRate, error)
}

// RepositoryProvider bundles the repositories handed to the service layer.
type RepositoryProvider struct {
	FxRateRepo   FxRateRepository
	BaseRateRepo BaseRateRepository
}
