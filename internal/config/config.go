// Package config loads and validates runtime configuration from the
// environment and an optional .env file using Viper.
// Fail-fast: if a required variable is missing or invalid, startup aborts.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Matcher provider names accepted by MATCHER_PROVIDER.
const (
	MatcherProviderHTTP   = "http"
	MatcherProviderGemini = "gemini"
)

// Config holds all runtime configuration for the shortlist service.
type Config struct {
	// Port is the HTTP listen port (e.g. "8083").
	Port string `mapstructure:"SHORTLIST_PORT"`
	// DatabaseURL is the Postgres DSN. Required.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// RedisURL is the Redis connection URL used for the cache and the
	// notification channel. Optional; when empty an in-memory cache is used
	// and notifications are log-only.
	RedisURL string `mapstructure:"REDIS_URL"`
	// IdentityURL is the base URL of the identity service whose GET /session
	// endpoint resolves the current user. Optional; when empty the service
	// runs unauthenticated.
	IdentityURL string `mapstructure:"IDENTITY_URL"`
	// IdentityToken is the bearer token sent to the identity service.
	IdentityToken string `mapstructure:"IDENTITY_TOKEN"`
	// MatcherProvider selects the matching backend: "http" or "gemini".
	MatcherProvider string `mapstructure:"MATCHER_PROVIDER"`
	// MatcherURL is the endpoint of the hosted matching operation. Required
	// when MatcherProvider is "http".
	MatcherURL string `mapstructure:"MATCHER_URL"`
	// GeminiAPIKey authenticates the Gemini matcher. Required when
	// MatcherProvider is "gemini".
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	// GeminiModel overrides the default Gemini model name.
	GeminiModel string `mapstructure:"GEMINI_MODEL"`
	// CacheTTLMinutes bounds how long list results stay cached.
	CacheTTLMinutes int `mapstructure:"CACHE_TTL_MINUTES"`
	// MaintenanceIntervalHours is how often the cron maintenance cycle fires.
	MaintenanceIntervalHours int `mapstructure:"MAINTENANCE_INTERVAL_HOURS"`
	// JSONLog switches zap to JSON encoding.
	JSONLog bool `mapstructure:"JSON_LOG"`
	// Debug lowers the log level to debug.
	Debug bool `mapstructure:"DEBUG"`
}

// Load reads .env (if present), then builds and validates Config from the
// environment. Env vars override .env values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // missing .env is fine (e.g. in CI)

	v.AutomaticEnv()

	v.SetDefault("SHORTLIST_PORT", "8083")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("IDENTITY_URL", "")
	v.SetDefault("IDENTITY_TOKEN", "")
	v.SetDefault("MATCHER_PROVIDER", MatcherProviderHTTP)
	v.SetDefault("MATCHER_URL", "")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "")
	v.SetDefault("CACHE_TTL_MINUTES", 10)
	v.SetDefault("MAINTENANCE_INTERVAL_HOURS", 6)
	v.SetDefault("JSON_LOG", false)
	v.SetDefault("DEBUG", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	switch cfg.MatcherProvider {
	case MatcherProviderHTTP:
		if cfg.MatcherURL == "" {
			return nil, errors.New("MATCHER_URL is required when MATCHER_PROVIDER=http")
		}
	case MatcherProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, errors.New("GEMINI_API_KEY is required when MATCHER_PROVIDER=gemini")
		}
	default:
		return nil, fmt.Errorf("MATCHER_PROVIDER must be %q or %q, got %q",
			MatcherProviderHTTP, MatcherProviderGemini, cfg.MatcherProvider)
	}

	if cfg.CacheTTLMinutes < 1 {
		return nil, fmt.Errorf("CACHE_TTL_MINUTES must be a positive integer, got %d", cfg.CacheTTLMinutes)
	}
	if cfg.MaintenanceIntervalHours < 1 {
		return nil, fmt.Errorf("MAINTENANCE_INTERVAL_HOURS must be a positive integer, got %d", cfg.MaintenanceIntervalHours)
	}

	return &cfg, nil
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}
