package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/daybell/fx_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const upsertFxRateSQL = `
	INSERT INTO fx_rates (
		base_date, currency_code, currency_name, deal_bas_r, ttb, tts, provider, raw
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (base_date, currency_code, provider) DO UPDATE SET
		currency_name = EXCLUDED.currency_name,
		deal_bas_r    = EXCLUDED.deal_bas_r,
		ttb           = EXCLUDED.ttb,
		tts           = EXCLUDED.tts,
		raw           = EXCLUDED.raw;`

const selectFxRateColumns = `
	SELECT base_date, currency_code, currency_name, deal_bas_r, ttb, tts, provider, raw, created_at
	FROM fx_rates`

// PgxFxRateRepository implements the ports FxRateRepository using pgxpool.
type PgxFxRateRepository struct {
	BaseRepository
}

// NewPgxFxRateRepository creates a new PgxFxRateRepository.
func NewPgxFxRateRepository(db *pgxpool.Pool) *PgxFxRateRepository {
	return &PgxFxRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// UpsertRates writes the records in one batch, overwriting rows that share
// the (base_date, currency_code, provider) key.
func (r *PgxFxRateRepository) UpsertRates(ctx context.Context, rates []models.FxRate) (int64, error) {
	if len(rates) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, rate := range rates {
		batch.Queue(upsertFxRateSQL,
			rate.BaseDate, rate.CurrencyCode, rate.CurrencyName,
			rate.DealBasR, rate.TTB, rate.TTS, rate.Provider, rate.Raw,
		)
	}

	results := r.Pool.SendBatch(ctx, batch)
	defer results.Close()

	var affected int64
	for i := range rates {
		tag, err := results.Exec()
		if err != nil {
			return affected, fmt.Errorf("failed to upsert fx rate %s: %w", rates[i].CurrencyCode, err)
		}
		affected += tag.RowsAffected()
	}
	return affected, nil
}

// ListRatesByDate retrieves all stored rates for one base date.
func (r *PgxFxRateRepository) ListRatesByDate(ctx context.Context, baseDate time.Time) ([]models.FxRate, error) {
	rows, err := r.Pool.Query(ctx, selectFxRateColumns+`
		WHERE base_date = $1
		ORDER BY currency_code;`, baseDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list fx rates: %w", err)
	}
	defer rows.Close()

	return scanFxRates(rows)
}

// ListLatestRates retrieves the most recent stored row per currency code.
func (r *PgxFxRateRepository) ListLatestRates(ctx context.Context) ([]models.FxRate, error) {
	rows, err := r.Pool.Query(ctx, `
	SELECT DISTINCT ON (currency_code)
		base_date, currency_code, currency_name, deal_bas_r, ttb, tts, provider, raw, created_at
	FROM fx_rates
	ORDER BY currency_code, base_date DESC;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest fx rates: %w", err)
	}
	defer rows.Close()

	return scanFxRates(rows)
}

func scanFxRates(rows pgx.Rows) ([]models.FxRate, error) {
	var rates []models.FxRate
	for rows.Next() {
		var rate models.FxRate
		if err := rows.Scan(
			&rate.BaseDate, &rate.CurrencyCode, &rate.CurrencyName,
			&rate.DealBasR, &rate.TTB, &rate.TTS, &rate.Provider, &rate.Raw, &rate.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan fx rate: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fx rates: %w", err)
	}
	return rates, nil
}
