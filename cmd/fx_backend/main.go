package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/daybell/fx_backend/internal/clients/ecos"
	"github.com/daybell/fx_backend/internal/clients/koreaexim"
	"github.com/daybell/fx_backend/internal/core/services"
	"github.com/daybell/fx_backend/internal/handlers"
	"github.com/daybell/fx_backend/internal/middleware"
	"github.com/daybell/fx_backend/internal/platform/config"
	"github.com/daybell/fx_backend/internal/repositories/database/pgsql"
	"github.com/daybell/fx_backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	// The mobile client reads the stored rates directly from this service.
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Upstream clients
	eximClient := koreaexim.NewClient(koreaexim.Options{
		BaseURL: cfg.KoreaEximBaseURL,
		AuthKey: cfg.KoreaEximAPIKey,
		Timeout: cfg.HTTPClientTimeout,
	})
	var ecosSource services.BaseRateSource
	if cfg.EcosAPIKey != "" {
		ecosSource = ecos.NewClient(ecos.Options{
			BaseURL: cfg.EcosBaseURL,
			AuthKey: cfg.EcosAPIKey,
			Timeout: cfg.HTTPClientTimeout,
		})
	} else {
		logger.Warn("ECOS_API_KEY not set; the policy-rate pipeline will be skipped")
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	container := services.NewContainer(repos, eximClient, ecosSource, logger)

	limiterRate, err := limiter.NewRateFromFormatted(cfg.FetchRateLimit)
	if err != nil {
		logger.Error("Invalid FETCH_RATE_LIMIT", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fetchLimiter := limiter.New(memorystore.NewStore(), limiterRate)

	handlers.RegisterRoutes(r, cfg, container.Fetch, container.RateReader, fetchLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations before the server starts
// accepting traffic.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// Open a temporary standard sql.DB connection for migrations, using the
	// pgx/v5/stdlib driver to be compatible with the main pool.
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
