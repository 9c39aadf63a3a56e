package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/daybell/fx_backend/internal/apperrors"
	"github.com/daybell/fx_backend/internal/clients/ecos"
	"github.com/daybell/fx_backend/internal/clients/koreaexim"
	portsrepo "github.com/daybell/fx_backend/internal/core/ports/repositories"
	"github.com/daybell/fx_backend/internal/dto"
	"github.com/daybell/fx_backend/internal/models"
	"github.com/daybell/fx_backend/internal/utils"
	"github.com/shopspring/decimal"
)

const compactDateLayout = "20060102"

// kstOffset shifts UTC to Korea Standard Time. Both upstream APIs publish on
// the KST calendar.
const kstOffset = 9 * time.Hour

// baseRateWindowDays is the trailing search window for the policy rate; the
// series only changes on announcement days, so the last week always contains
// the current value when one exists.
const baseRateWindowDays = 7

// trackedCurrencies is the fixed allow-list of Korea Eximbank unit codes the
// service persists.
var trackedCurrencies = map[string]struct{}{
	"USD":      {},
	"JPY(100)": {},
	"CNY":      {},
	"CNH":      {},
}

// The unit code for Chinese yuan is inconsistent across AP01 response
// variants, so the display name is checked as a fallback.
var yuanNameMarkers = []string{"중국", "위안"}

// ExchangeRateSource fetches the daily exchange-rate table.
type ExchangeRateSource interface {
	FetchDaily(ctx context.Context, searchDate string) ([]koreaexim.RateObservation, error)
}

// BaseRateSource fetches observations of an ECOS statistical series.
type BaseRateSource interface {
	FetchSeries(ctx context.Context, statCode, itemCode, cycle, startDate, endDate string) ([]ecos.StatRow, error)
}

// FetchService runs the two ingestion pipelines: exchange rates (fatal on
// error) and the policy rate (best effort, error folded into the result).
type FetchService struct {
	exim         ExchangeRateSource
	ecos         BaseRateSource // nil when no ECOS credential is configured
	fxRateRepo   portsrepo.FxRateRepository
	baseRateRepo portsrepo.BaseRateRepository
	logger       *slog.Logger
	now          func() time.Time
}

// NewFetchService creates a FetchService. Pass a nil BaseRateSource to skip
// the policy-rate pipeline entirely.
func NewFetchService(
	exim ExchangeRateSource,
	ecosSource BaseRateSource,
	fxRateRepo portsrepo.FxRateRepository,
	baseRateRepo portsrepo.BaseRateRepository,
	logger *slog.Logger,
) *FetchService {
	return &FetchService{
		exim:         exim,
		ecos:         ecosSource,
		fxRateRepo:   fxRateRepo,
		baseRateRepo: baseRateRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// RunFetch executes one invocation. The returned error is non-nil only when
// the exchange-rate pipeline failed; callers map it to an HTTP status via
// the apperrors sentinels it wraps.
func (s *FetchService) RunFetch(ctx context.Context, req dto.FetchRequest) (*dto.FetchResultResponse, error) {
	kstNow := s.now().UTC().Add(kstOffset)

	searchDate := strings.TrimSpace(req.Date)
	var queryDay time.Time
	if searchDate == "" {
		queryDay = kstNow.Truncate(24 * time.Hour)
		searchDate = queryDay.Format(compactDateLayout)
	} else {
		var err error
		queryDay, err = time.Parse(compactDateLayout, searchDate)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be a YYYYMMDD calendar date", apperrors.ErrValidation)
		}
	}

	observations, err := s.exim.FetchDaily(ctx, searchDate)
	if err != nil {
		return nil, err
	}

	records, err := normalizeRates(observations, queryDay)
	if err != nil {
		return nil, err
	}

	inserted, err := s.fxRateRepo.UpsertRates(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("%w: fx_rates: %v", apperrors.ErrPersistence, err)
	}
	s.logger.Info("Exchange rates stored",
		slog.String("search_date", searchDate),
		slog.Int64("inserted_count", inserted),
	)

	result := &dto.FetchResultResponse{
		Success:       true,
		Message:       "exchange rates stored successfully",
		InsertedCount: inserted,
		SearchDate:    searchDate,
		EcosAPICalled: s.ecos != nil,
	}

	if s.ecos == nil {
		msg := "ECOS_API_KEY is not configured; base-rate fetch skipped"
		result.EcosError = &msg
		s.logger.Info("Skipping base-rate fetch", slog.String("reason", "no ECOS credential"))
		return result, nil
	}

	ecosInserted, ecosErr := s.runBaseRatePipeline(ctx, queryDay, searchDate)
	result.EcosInsertedCount = ecosInserted
	if ecosErr != nil {
		// The policy rate is supplementary; its failure never fails the
		// invocation.
		msg := ecosErr.Error()
		result.EcosError = &msg
		s.logger.Warn("Base-rate pipeline failed", slog.String("error", msg))
	}

	return result, nil
}

// normalizeRates keeps successful observations of tracked currencies and
// coerces their numeric fields into persistence records.
func normalizeRates(observations []koreaexim.RateObservation, queryDay time.Time) ([]models.FxRate, error) {
	records := make([]models.FxRate, 0, len(observations))
	for _, obs := range observations {
		if obs.Result != 1 || !isTrackedCurrency(obs) {
			continue
		}

		dealBasR, err := utils.ParseUpstreamNumeric(obs.DealBasR)
		if err != nil {
			return nil, fmt.Errorf("%w: %s deal_bas_r: %v", apperrors.ErrMalformedUpstream, *obs.CurUnit, err)
		}
		ttb, err := utils.ParseUpstreamNumeric(obs.TTB)
		if err != nil {
			return nil, fmt.Errorf("%w: %s ttb: %v", apperrors.ErrMalformedUpstream, *obs.CurUnit, err)
		}
		tts, err := utils.ParseUpstreamNumeric(obs.TTS)
		if err != nil {
			return nil, fmt.Errorf("%w: %s tts: %v", apperrors.ErrMalformedUpstream, *obs.CurUnit, err)
		}
		// bkpr is kept only inside raw but must still obey the numeric contract.
		if _, err := utils.ParseUpstreamNumeric(obs.Bkpr); err != nil {
			return nil, fmt.Errorf("%w: %s bkpr: %v", apperrors.ErrMalformedUpstream, *obs.CurUnit, err)
		}

		raw, err := json.Marshal(obs)
		if err != nil {
			return nil, fmt.Errorf("%w: marshalling raw observation: %v", apperrors.ErrMalformedUpstream, err)
		}

		records = append(records, models.FxRate{
			BaseDate:     queryDay,
			CurrencyCode: *obs.CurUnit,
			CurrencyName: obs.CurNm,
			DealBasR:     dealBasR,
			TTB:          ttb,
			TTS:          tts,
			Provider:     models.ProviderKoreaExim,
			Raw:          raw,
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: upstream returned no rows for tracked currencies", apperrors.ErrNoTrackedCurrencyData)
	}
	return records, nil
}

func isTrackedCurrency(obs koreaexim.RateObservation) bool {
	if obs.CurUnit == nil {
		return false
	}
	if _, ok := trackedCurrencies[*obs.CurUnit]; ok {
		return true
	}
	if obs.CurNm == nil {
		return false
	}
	for _, marker := range yuanNameMarkers {
		if strings.Contains(*obs.CurNm, marker) {
			return true
		}
	}
	return false
}

// runBaseRatePipeline fetches, reconciles and persists the policy rate for
// the trailing window ending at queryDay. Its error is absorbed by the caller.
func (s *FetchService) runBaseRatePipeline(ctx context.Context, queryDay time.Time, endDate string) (int64, error) {
	startDate := queryDay.AddDate(0, 0, -baseRateWindowDays).Format(compactDateLayout)

	rows, err := s.ecos.FetchSeries(ctx, models.BaseRateStatCode, models.BaseRateItemCode, models.BaseRateCycle, startDate, endDate)
	if err != nil {
		return 0, err
	}

	record, err := reconcileBaseRate(rows)
	if err != nil {
		return 0, err
	}
	if record == nil {
		s.logger.Info("No base-rate observation in window",
			slog.String("start_date", startDate),
			slog.String("end_date", endDate),
		)
		return 0, nil
	}

	inserted, err := s.baseRateRepo.InsertBaseRate(ctx, *record)
	if err == nil {
		return inserted, nil
	}
	if !errors.Is(err, apperrors.ErrDuplicate) {
		return 0, err
	}

	// A concurrent or retried invocation already inserted this period; fall
	// back to the idempotent overwrite.
	s.logger.Info("Base-rate insert hit existing row, retrying as upsert",
		slog.String("time_period", record.TimePeriod),
	)
	return s.baseRateRepo.UpsertBaseRate(ctx, *record)
}

// reconcileBaseRate selects the most recent observation by period label and
// builds the single persistence record. Period labels are fixed-width and
// zero-padded, so lexicographic order equals chronological order.
func reconcileBaseRate(rows []ecos.StatRow) (*models.BaseRate, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	sorted := make([]ecos.StatRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time > sorted[j].Time
	})
	latest := sorted[0]

	// Unlike the exchange-rate normalizer, a blank or unparsable value maps
	// to NULL here: the series is supplementary.
	var dataValue *decimal.Decimal
	if v := strings.TrimSpace(latest.DataValue); v != "" {
		if parsed, err := decimal.NewFromString(v); err == nil {
			dataValue = &parsed
		}
	}

	raw, err := json.Marshal(latest)
	if err != nil {
		return nil, fmt.Errorf("%w: marshalling raw observation: %v", apperrors.ErrMalformedUpstream, err)
	}

	record := &models.BaseRate{
		StatCode:   latest.StatCode,
		Cycle:      models.BaseRateCycle,
		TimePeriod: latest.Time,
		DataValue:  dataValue,
		Raw:        raw,
	}
	if latest.StatName != "" {
		record.StatName = &latest.StatName
	}
	if latest.UnitName != "" {
		record.UnitName = &latest.UnitName
	}
	return record, nil
}
