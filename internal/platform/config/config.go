package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// KoreaEximAPIKey authenticates against the Korea Eximbank AP01 API.
	// Required: without it no exchange rate can ever be fetched.
	KoreaEximAPIKey  string
	KoreaEximBaseURL string

	// EcosAPIKey authenticates against the Bank of Korea ECOS API.
	// Optional: when empty the policy-rate pipeline is skipped.
	EcosAPIKey  string
	EcosBaseURL string

	// HTTPClientTimeout bounds each outbound call to the upstream APIs.
	HTTPClientTimeout time.Duration

	// ServiceToken guards the fetch trigger (empty disables the check).
	ServiceToken string

	// FetchRateLimit is a ulule/limiter formatted rate (e.g. "10-M").
	FetchRateLimit string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. Only the database URL and the Korea Eximbank key are required.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("KOREA_EXIM_API_KEY", "")
	viper.SetDefault("KOREA_EXIM_BASE_URL", "https://oapi.koreaexim.go.kr")
	viper.SetDefault("ECOS_API_KEY", "")
	viper.SetDefault("ECOS_BASE_URL", "https://ecos.bok.or.kr")
	viper.SetDefault("HTTP_CLIENT_TIMEOUT", "10s")
	viper.SetDefault("SERVICE_TOKEN", "")
	viper.SetDefault("FETCH_RATE_LIMIT", "10-M")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:      viper.GetString("PGSQL_URL"),
		Port:             viper.GetString("PORT"),
		IsProduction:     viper.GetBool("IS_PRODUCTION"),
		KoreaEximAPIKey:  viper.GetString("KOREA_EXIM_API_KEY"),
		KoreaEximBaseURL: viper.GetString("KOREA_EXIM_BASE_URL"),
		EcosAPIKey:       viper.GetString("ECOS_API_KEY"),
		EcosBaseURL:      viper.GetString("ECOS_BASE_URL"),
		ServiceToken:     viper.GetString("SERVICE_TOKEN"),
		FetchRateLimit:   viper.GetString("FETCH_RATE_LIMIT"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PGSQL_URL environment variable is required")
	}
	if cfg.KoreaEximAPIKey == "" {
		return nil, fmt.Errorf("KOREA_EXIM_API_KEY environment variable is required")
	}

	timeout, err := time.ParseDuration(viper.GetString("HTTP_CLIENT_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_CLIENT_TIMEOUT: %w", err)
	}
	cfg.HTTPClientTimeout = timeout

	return cfg, nil
}
