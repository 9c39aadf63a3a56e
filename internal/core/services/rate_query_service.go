package services

import (
	"context"
	"fmt"
	"time"

	portsrepo "github.com/daybell/fx_backend/internal/core/ports/repositories"
	"github.com/daybell/fx_backend/internal/models"
)

// RateQueryService exposes the stored rate data to read-only consumers.
type RateQueryService struct {
	fxRateRepo   portsrepo.FxRateRepository
	baseRateRepo portsrepo.BaseRateRepository
}

// NewRateQueryService creates a RateQueryService.
func NewRateQueryService(fxRateRepo portsrepo.FxRateRepository, baseRateRepo portsrepo.BaseRateRepository) *RateQueryService {
	return &RateQueryService{
		fxRateRepo:   fxRateRepo,
		baseRateRepo: baseRateRepo,
	}
}

// ListRatesByDate retrieves the stored exchange rates for one base date.
func (s *RateQueryService) ListRatesByDate(ctx context.Context, baseDate time.Time) ([]models.FxRate, error) {
	rates, err := s.fxRateRepo.ListRatesByDate(ctx, baseDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates by date: %w", err)
	}
	return rates, nil
}

// ListLatestRates retrieves the most recent stored rate per currency.
func (s *RateQueryService) ListLatestRates(ctx context.Context) ([]models.FxRate, error) {
	rates, err := s.fxRateRepo.ListLatestRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest rates: %w", err)
	}
	return rates, nil
}

// GetLatestBaseRate retrieves the most recent stored policy rate.
func (s *RateQueryService) GetLatestBaseRate(ctx context.Context) (*models.BaseRate, error) {
	rate, err := s.baseRateRepo.FindLatestBaseRate(ctx, models.BaseRateStatCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest base rate: %w", err)
	}
	return rate, nil
}
