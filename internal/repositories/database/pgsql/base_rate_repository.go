package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/daybell/fx_backend/internal/apperrors"
	"github.com/daybell/fx_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const insertBaseRateSQL = `
	INSERT INTO ecos_base_rate (
		stat_code, stat_name, cycle, unit_name, time_period, data_value, raw
	) VALUES ($1, $2, $3, $4, $5, $6, $7);`

const upsertBaseRateSQL = `
	INSERT INTO ecos_base_rate (
		stat_code, stat_name, cycle, unit_name, time_period, data_value, raw
	) VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (stat_code, time_period) DO UPDATE SET
		stat_name  = EXCLUDED.stat_name,
		cycle      = EXCLUDED.cycle,
		unit_name  = EXCLUDED.unit_name,
		data_value = EXCLUDED.data_value,
		raw        = EXCLUDED.raw;`

// PgxBaseRateRepository implements the ports BaseRateRepository using pgxpool.
type PgxBaseRateRepository struct {
	BaseRepository
}

// NewPgxBaseRateRepository creates a new PgxBaseRateRepository.
func NewPgxBaseRateRepository(db *pgxpool.Pool) *PgxBaseRateRepository {
	return &PgxBaseRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// InsertBaseRate performs a plain insert. Uniqueness conflicts on
// (stat_code, time_period) are mapped to apperrors.ErrDuplicate so the caller
// can decide to retry as an upsert.
func (r *PgxBaseRateRepository) InsertBaseRate(ctx context.Context, rate models.BaseRate) (int64, error) {
	tag, err := r.Pool.Exec(ctx, insertBaseRateSQL,
		rate.StatCode, rate.StatName, rate.Cycle, rate.UnitName,
		rate.TimePeriod, rate.DataValue, rate.Raw,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: base rate (%s, %s)", apperrors.ErrDuplicate, rate.StatCode, rate.TimePeriod)
		}
		return 0, fmt.Errorf("failed to insert base rate: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UpsertBaseRate inserts or overwrites the row sharing the same
// (stat_code, time_period) key.
func (r *PgxBaseRateRepository) UpsertBaseRate(ctx context.Context, rate models.BaseRate) (int64, error) {
	tag, err := r.Pool.Exec(ctx, upsertBaseRateSQL,
		rate.StatCode, rate.StatName, rate.Cycle, rate.UnitName,
		rate.TimePeriod, rate.DataValue, rate.Raw,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert base rate: %w", err)
	}
	return tag.RowsAffected(), nil
}

// FindLatestBaseRate retrieves the most recent stored observation of a series.
func (r *PgxBaseRateRepository) FindLatestBaseRate(ctx context.Context, statCode string) (*models.BaseRate, error) {
	var rate models.BaseRate
	err := r.Pool.QueryRow(ctx, `
	SELECT stat_code, stat_name, cycle, unit_name, time_period, data_value, raw, created_at
	FROM ecos_base_rate
	WHERE stat_code = $1
	ORDER BY time_period DESC
	LIMIT 1;`, statCode).Scan(
		&rate.StatCode, &rate.StatName, &rate.Cycle, &rate.UnitName,
		&rate.TimePeriod, &rate.DataValue, &rate.Raw, &rate.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no base rate stored for %s", apperrors.ErrNotFound, statCode)
		}
		return nil, fmt.Errorf("failed to find latest base rate: %w", err)
	}
	return &rate, nil
}
