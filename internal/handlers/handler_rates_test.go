package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/daybell/fx_backend/internal/apperrors"
	"github.com/daybell/fx_backend/internal/handlers"
	"github.com/daybell/fx_backend/internal/models"
	"github.com/daybell/fx_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

type RateHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockRateService *MockRateReaderService
}

func (suite *RateHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockRateService = new(MockRateReaderService)

	suite.router = gin.New()
	fetchLimiter := limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 100})
	handlers.RegisterRoutes(suite.router, &config.Config{}, new(MockFetchService), suite.mockRateService, fetchLimiter)
}

func (suite *RateHandlerTestSuite) TestListRates_Success() {
	baseDate := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	suite.mockRateService.On("ListRatesByDate", mock.Anything, baseDate).
		Return([]models.FxRate{
			{BaseDate: baseDate, CurrencyCode: "USD", DealBasR: decimal.RequireFromString("1326.50"), Provider: models.ProviderKoreaExim},
		}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/fx/rates?date=20240102", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var body []map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body, 1)
	suite.Equal("USD", body[0]["currencyCode"])
	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestListRates_MissingDate() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/fx/rates", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRateService.AssertNotCalled(suite.T(), "ListRatesByDate", mock.Anything, mock.Anything)
}

func (suite *RateHandlerTestSuite) TestListRates_ImpossibleCalendarDate() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/fx/rates?date=20241399", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRateService.AssertNotCalled(suite.T(), "ListRatesByDate", mock.Anything, mock.Anything)
}

func (suite *RateHandlerTestSuite) TestListLatestRates_Success() {
	suite.mockRateService.On("ListLatestRates", mock.Anything).
		Return([]models.FxRate{
			{CurrencyCode: "JPY(100)", DealBasR: decimal.RequireFromString("937.21"), Provider: models.ProviderKoreaExim},
			{CurrencyCode: "USD", DealBasR: decimal.RequireFromString("1326.50"), Provider: models.ProviderKoreaExim},
		}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/fx/rates/latest", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var body []map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body, 2)
}

func (suite *RateHandlerTestSuite) TestListLatestRates_ServiceError() {
	suite.mockRateService.On("ListLatestRates", mock.Anything).
		Return(nil, fmt.Errorf("connection reset")).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/fx/rates/latest", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *RateHandlerTestSuite) TestGetLatestBaseRate_Success() {
	value := decimal.RequireFromString("3.5")
	suite.mockRateService.On("GetLatestBaseRate", mock.Anything).
		Return(&models.BaseRate{
			StatCode:   models.BaseRateStatCode,
			Cycle:      models.BaseRateCycle,
			TimePeriod: "20240102",
			DataValue:  &value,
		}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/fx/base-rate/latest", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("20240102", body["timePeriod"])
}

func (suite *RateHandlerTestSuite) TestGetLatestBaseRate_NotFound() {
	suite.mockRateService.On("GetLatestBaseRate", mock.Anything).
		Return(nil, fmt.Errorf("%w: base rate", apperrors.ErrNotFound)).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/fx/base-rate/latest", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func TestRateHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RateHandlerTestSuite))
}
