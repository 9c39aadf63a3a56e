package services

import (
	"context"

	"github.com/daybell/fx_backend/internal/dto"
)

// FetchSvc runs one fetch invocation: the exchange-rate pipeline followed by
// the policy-rate pipeline. A non-nil error means the exchange-rate pipeline
// failed; policy-rate failures are folded into the result's EcosError field.
type FetchSvc interface {
	RunFetch(ctx context.Context, req dto.FetchRequest) (*dto.FetchResultResponse, error)
}
