package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/daybell/fx_backend/internal/apperrors"
	portssvc "github.com/daybell/fx_backend/internal/core/ports/services"
	"github.com/daybell/fx_backend/internal/dto"
	"github.com/daybell/fx_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// rateHandler serves the stored rate data to the mobile client.
type rateHandler struct {
	rateService portssvc.RateReaderSvc
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateReaderSvc) *rateHandler {
	return &rateHandler{
		rateService: rs,
	}
}

// listRates returns the stored exchange rates for one base date (?date=YYYYMMDD).
func (h *rateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ListRatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be an 8-digit YYYYMMDD value"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	baseDate, err := time.Parse("20060102", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be a valid YYYYMMDD calendar date"})
		return
	}

	rates, err := h.rateService.ListRatesByDate(c.Request.Context(), baseDate)
	if err != nil {
		logger.Error("Failed to list rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListFxRateResponse(rates))
}

// listLatestRates returns the most recent stored rate per currency.
func (h *rateHandler) listLatestRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.rateService.ListLatestRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list latest rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list latest rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListFxRateResponse(rates))
}

// getLatestBaseRate returns the most recent stored policy rate.
func (h *rateHandler) getLatestBaseRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rate, err := h.rateService.GetLatestBaseRate(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No base rate stored yet"})
			return
		}
		logger.Error("Failed to get latest base rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get latest base rate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBaseRateResponse(rate))
}
