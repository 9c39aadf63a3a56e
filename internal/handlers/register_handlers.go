package handlers

import (
	"net/http"

	portssvc "github.com/daybell/fx_backend/internal/core/ports/services"
	"github.com/daybell/fx_backend/internal/middleware"
	"github.com/daybell/fx_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	fetchService portssvc.FetchSvc,
	rateService portssvc.RateReaderSvc,
	fetchLimiter *limiter.Limiter,
) {
	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	v1 := r.Group("/api/v1")
	registerFetchRoutes(v1, cfg, fetchService, fetchLimiter)
	registerRateRoutes(v1, rateService)
}

// registerFetchRoutes wires the fetch trigger. It is guarded by the service
// token and rate limited: each call fans out to external government APIs.
func registerFetchRoutes(rg *gin.RouterGroup, cfg *config.Config, fetchService portssvc.FetchSvc, fetchLimiter *limiter.Limiter) {
	h := newFetchHandler(fetchService)

	fx := rg.Group("/fx")
	fx.POST("/fetch",
		middleware.ServiceTokenAuth(cfg.ServiceToken),
		middleware.RateLimit(fetchLimiter),
		h.triggerFetch,
	)
}

// registerRateRoutes wires the read-only endpoints consumed by the mobile app.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateReaderSvc) {
	h := newRateHandler(rateService)

	fx := rg.Group("/fx")
	{
		fx.GET("/rates", h.listRates)
		fx.GET("/rates/latest", h.listLatestRates)
		fx.GET("/base-rate/latest", h.getLatestBaseRate)
	}
}
