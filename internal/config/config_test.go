package config_test

import (
	"strings"
	"testing"

	"github.com/zanybarlee/a8-manpower/internal/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/shortlist")
	t.Setenv("MATCHER_URL", "http://localhost:9000/match")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}
	if cfg.Port != "8083" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8083")
	}
	if cfg.MatcherProvider != config.MatcherProviderHTTP {
		t.Errorf("MatcherProvider = %q, want %q", cfg.MatcherProvider, config.MatcherProviderHTTP)
	}
	if cfg.CacheTTLMinutes != 10 {
		t.Errorf("CacheTTLMinutes = %d, want 10", cfg.CacheTTLMinutes)
	}
	if cfg.MaintenanceIntervalHours != 6 {
		t.Errorf("MaintenanceIntervalHours = %d, want 6", cfg.MaintenanceIntervalHours)
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MATCHER_URL", "http://localhost:9000/match")

	_, err := config.Load()
	if err == nil {
		t.Fatal("Load should fail without DATABASE_URL")
	}
	if !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Errorf("error %q should mention DATABASE_URL", err)
	}
}

func TestLoad_HTTPProviderRequiresMatcherURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/shortlist")
	t.Setenv("MATCHER_PROVIDER", "http")
	t.Setenv("MATCHER_URL", "")

	_, err := config.Load()
	if err == nil {
		t.Fatal("Load should fail when MATCHER_PROVIDER=http and MATCHER_URL is empty")
	}
}

func TestLoad_GeminiProviderRequiresAPIKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/shortlist")
	t.Setenv("MATCHER_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := config.Load()
	if err == nil {
		t.Fatal("Load should fail when MATCHER_PROVIDER=gemini and GEMINI_API_KEY is empty")
	}
}

func TestLoad_UnknownProviderRejected(t *testing.T) {
	setRequired(t)
	t.Setenv("MATCHER_PROVIDER", "magic")

	_, err := config.Load()
	if err == nil {
		t.Fatal("Load should reject unknown MATCHER_PROVIDER")
	}
}

func TestLoad_InvalidCacheTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("CACHE_TTL_MINUTES", "0")

	_, err := config.Load()
	if err == nil {
		t.Fatal("Load should reject CACHE_TTL_MINUTES < 1")
	}
}
