package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/daybell/fx_backend/internal/apperrors"
	"github.com/daybell/fx_backend/internal/core/services"
	"github.com/daybell/fx_backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RateQueryServiceTestSuite struct {
	suite.Suite
	mockFxRateRepo   *MockFxRateRepository
	mockBaseRateRepo *MockBaseRateRepository
	service          *services.RateQueryService
}

func (suite *RateQueryServiceTestSuite) SetupTest() {
	suite.mockFxRateRepo = new(MockFxRateRepository)
	suite.mockBaseRateRepo = new(MockBaseRateRepository)
	suite.service = services.NewRateQueryService(suite.mockFxRateRepo, suite.mockBaseRateRepo)
}

func (suite *RateQueryServiceTestSuite) TestListRatesByDate_Success() {
	ctx := context.Background()
	baseDate := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	expected := []models.FxRate{
		{BaseDate: baseDate, CurrencyCode: "USD", DealBasR: decimal.RequireFromString("1326.50"), Provider: models.ProviderKoreaExim},
	}
	suite.mockFxRateRepo.On("ListRatesByDate", ctx, baseDate).Return(expected, nil).Once()

	rates, err := suite.service.ListRatesByDate(ctx, baseDate)

	suite.Require().NoError(err)
	suite.Equal(expected, rates)
	suite.mockFxRateRepo.AssertExpectations(suite.T())
}

func (suite *RateQueryServiceTestSuite) TestListRatesByDate_RepoError() {
	ctx := context.Background()
	baseDate := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	suite.mockFxRateRepo.On("ListRatesByDate", ctx, baseDate).Return(nil, fmt.Errorf("connection reset")).Once()

	_, err := suite.service.ListRatesByDate(ctx, baseDate)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "failed to list rates by date")
}

func (suite *RateQueryServiceTestSuite) TestListLatestRates_Success() {
	ctx := context.Background()
	expected := []models.FxRate{
		{CurrencyCode: "JPY(100)", DealBasR: decimal.RequireFromString("937.21"), Provider: models.ProviderKoreaExim},
		{CurrencyCode: "USD", DealBasR: decimal.RequireFromString("1326.50"), Provider: models.ProviderKoreaExim},
	}
	suite.mockFxRateRepo.On("ListLatestRates", ctx).Return(expected, nil).Once()

	rates, err := suite.service.ListLatestRates(ctx)

	suite.Require().NoError(err)
	suite.Equal(expected, rates)
}

func (suite *RateQueryServiceTestSuite) TestGetLatestBaseRate_Success() {
	ctx := context.Background()
	value := decimal.RequireFromString("3.5")
	expected := &models.BaseRate{
		StatCode:   models.BaseRateStatCode,
		Cycle:      models.BaseRateCycle,
		TimePeriod: "20240102",
		DataValue:  &value,
	}
	suite.mockBaseRateRepo.On("FindLatestBaseRate", ctx, models.BaseRateStatCode).Return(expected, nil).Once()

	rate, err := suite.service.GetLatestBaseRate(ctx)

	suite.Require().NoError(err)
	suite.Equal(expected, rate)
	suite.mockBaseRateRepo.AssertExpectations(suite.T())
}

func (suite *RateQueryServiceTestSuite) TestGetLatestBaseRate_NotFound() {
	ctx := context.Background()
	suite.mockBaseRateRepo.On("FindLatestBaseRate", ctx, models.BaseRateStatCode).
		Return(nil, fmt.Errorf("%w: base rate", apperrors.ErrNotFound)).Once()

	_, err := suite.service.GetLatestBaseRate(ctx)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestRateQueryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateQueryServiceTestSuite))
}
