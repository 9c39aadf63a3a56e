package pgsql

import (
	portsrepo "github.com/daybell/fx_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgsql repositories onto one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		FxRateRepo:   NewPgxFxRateRepository(dbPool),
		BaseRateRepo: NewPgxBaseRateRepository(dbPool),
	}
}
