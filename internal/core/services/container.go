package services

import (
	"log/slog"

	portsrepo "github.com/daybell/fx_backend/internal/core/ports/repositories"
	portssvc "github.com/daybell/fx_backend/internal/core/ports/services"
)

// Container holds all the services and manages their dependencies.
type Container struct {
	Fetch      portssvc.FetchSvc
	RateReader portssvc.RateReaderSvc
}

// NewContainer creates a new service container. ecosSource may be nil when no
// ECOS credential is configured; the fetch service then skips the policy-rate
// pipeline.
func NewContainer(
	repos *portsrepo.RepositoryProvider,
	exim ExchangeRateSource,
	ecosSource BaseRateSource,
	logger *slog.Logger,
) *Container {
	return &Container{
		Fetch:      NewFetchService(exim, ecosSource, repos.FxRateRepo, repos.BaseRateRepo, logger),
		RateReader: NewRateQueryService(repos.FxRateRepo, repos.BaseRateRepo),
	}
}

// Compile-time interface checks.
var (
	_ portssvc.FetchSvc      = (*FetchService)(nil)
	_ portssvc.RateReaderSvc = (*RateQueryService)(nil)
)
