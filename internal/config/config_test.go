package config_test

import (
	"testing"
	"time"

	"github.com/johnwards/hublens/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.DefaultLimit != 100 || cfg.MaxLimit != 200 {
		t.Errorf("limits = %d/%d, want 100/200", cfg.DefaultLimit, cfg.MaxLimit)
	}
	if cfg.MaxFilters != 8 {
		t.Errorf("MaxFilters = %d, want 8", cfg.MaxFilters)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want 1h", cfg.CacheTTL)
	}
	if cfg.RevenueThreshold != "1000000" {
		t.Errorf("RevenueThreshold = %q", cfg.RevenueThreshold)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HUBLENS_ADDR", ":9999")
	t.Setenv("HUBLENS_MAX_FILTERS", "3")
	t.Setenv("HUBLENS_CACHE_TTL", "15m")
	t.Setenv("HUBSPOT_ACCESS_TOKEN", "pat-test")

	cfg := config.Load()

	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Addr)
	}
	if cfg.MaxFilters != 3 {
		t.Errorf("MaxFilters = %d, want 3", cfg.MaxFilters)
	}
	if cfg.CacheTTL != 15*time.Minute {
		t.Errorf("CacheTTL = %v, want 15m", cfg.CacheTTL)
	}
	if cfg.HubSpotToken != "pat-test" {
		t.Errorf("HubSpotToken = %q", cfg.HubSpotToken)
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("HUBLENS_MAX_FILTERS", "lots")
	t.Setenv("HUBLENS_CACHE_TTL", "soon")

	cfg := config.Load()

	if cfg.MaxFilters != 8 {
		t.Errorf("MaxFilters = %d, want default 8", cfg.MaxFilters)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want default 1h", cfg.CacheTTL)
	}
}
