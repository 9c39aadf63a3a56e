package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/daybell/fx_backend/internal/apperrors"
	portssvc "github.com/daybell/fx_backend/internal/core/ports/services"
	"github.com/daybell/fx_backend/internal/dto"
	"github.com/daybell/fx_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fetchHandler handles the fetch trigger.
type fetchHandler struct {
	fetchService portssvc.FetchSvc
}

// newFetchHandler creates a new fetchHandler.
func newFetchHandler(fs portssvc.FetchSvc) *fetchHandler {
	return &fetchHandler{
		fetchService: fs,
	}
}

// triggerFetch runs one fetch invocation. The response body always carries a
// dto.FetchResultResponse-shaped JSON object on success; error outcomes get a
// JSON error body with a status that distinguishes upstream-data problems
// (400) from transport, credential and persistence failures (500).
func (h *fetchHandler) triggerFetch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.FetchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind fetch query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date parameter: must be YYYYMMDD"})
		return
	}

	result, err := h.fetchService.RunFetch(c.Request.Context(), req)
	if err != nil {
		status := statusForFetchError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Fetch invocation failed", slog.String("error", err.Error()))
		} else {
			logger.Warn("Fetch invocation rejected", slog.String("error", err.Error()))
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	logger.Info("Fetch invocation completed",
		slog.String("search_date", result.SearchDate),
		slog.Int64("inserted_count", result.InsertedCount),
		slog.Bool("ecos_api_called", result.EcosAPICalled),
		slog.Int64("ecos_inserted_count", result.EcosInsertedCount),
	)
	c.JSON(http.StatusOK, result)
}

// statusForFetchError maps the error taxonomy onto HTTP statuses:
// upstream-data-shape and logical problems are the caller's 4xx territory,
// everything else is a 500.
func statusForFetchError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrMalformedUpstream),
		errors.Is(err, apperrors.ErrUpstreamLogical),
		errors.Is(err, apperrors.ErrNoTrackedCurrencyData):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
