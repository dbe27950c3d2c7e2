package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Addr      string // HUBLENS_ADDR, default ":8080"
	AuthToken string // HUBLENS_AUTH_TOKEN, optional bearer token for this API

	HubSpotToken   string // HUBSPOT_ACCESS_TOKEN, optional; without it the seeded catalog serves
	HubSpotBaseURL string // HUBSPOT_BASE_URL, default the public API

	RateLimitPerMinute int           // HUBSPOT_RATE_LIMIT, default 100
	CacheTTL           time.Duration // HUBLENS_CACHE_TTL, default 1h

	DefaultLimit int // HUBLENS_DEFAULT_LIMIT, default 100
	MaxLimit     int // HUBLENS_MAX_LIMIT, default 200
	MaxFilters   int // HUBLENS_MAX_FILTERS, default 8

	RevenueThreshold      string // HUBLENS_REVENUE_THRESHOLD, default "1000000"
	LargeCompanyEmployees string // HUBLENS_LARGE_EMPLOYEES, default "1000"
	SmallCompanyEmployees string // HUBLENS_SMALL_EMPLOYEES, default "100"
	RecentWindowDays      int    // HUBLENS_RECENT_DAYS, default 30
}

// Load reads configuration from the environment with sensible defaults. A
// .env file in the working directory is loaded first when present.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	return Config{
		Addr:                  envOr("HUBLENS_ADDR", ":8080"),
		AuthToken:             os.Getenv("HUBLENS_AUTH_TOKEN"),
		HubSpotToken:          os.Getenv("HUBSPOT_ACCESS_TOKEN"),
		HubSpotBaseURL:        os.Getenv("HUBSPOT_BASE_URL"),
		RateLimitPerMinute:    envIntOr("HUBSPOT_RATE_LIMIT", 100),
		CacheTTL:              envDurationOr("HUBLENS_CACHE_TTL", time.Hour),
		DefaultLimit:          envIntOr("HUBLENS_DEFAULT_LIMIT", 100),
		MaxLimit:              envIntOr("HUBLENS_MAX_LIMIT", 200),
		MaxFilters:            envIntOr("HUBLENS_MAX_FILTERS", 8),
		RevenueThreshold:      envOr("HUBLENS_REVENUE_THRESHOLD", "1000000"),
		LargeCompanyEmployees: envOr("HUBLENS_LARGE_EMPLOYEES", "1000"),
		SmallCompanyEmployees: envOr("HUBLENS_SMALL_EMPLOYEES", "100"),
		RecentWindowDays:      envIntOr("HUBLENS_RECENT_DAYS", 30),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v)
		return fallback
	}
	return d
}
