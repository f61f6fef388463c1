package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries all environment-driven settings for the planner service.
type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	DatabaseURL string

	RedisAddr string
	RedisPass string
	RedisDB   int

	GeoBaseURL   string
	GeoAPIKey    string
	GeoRateRPS   int
	RouteTimeout time.Duration
	CacheTTL     time.Duration

	POIBaseURL string
	POIAPIKey  string
	POISeed    string

	LegConcurrency int
}

// Load reads configuration from the environment with development defaults.
func Load() Config {
	return Config{
		AppEnv:      Get("APP_ENV", "prod"),
		HTTPAddr:    Get("HTTP_ADDR", ":8080"),
		MetricsAddr: Get("METRICS_ADDR", ""),

		DatabaseURL: Get("DATABASE_URL", ""),

		RedisAddr: Get("REDIS_ADDR", ""),
		RedisPass: Get("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),

		GeoBaseURL:   Get("GEO_BASE_URL", ""),
		GeoAPIKey:    Get("GEO_API_KEY", ""),
		GeoRateRPS:   atoi("GEO_RATE_RPS", 20),
		RouteTimeout: time.Duration(atoi("ROUTE_TIMEOUT_MS", 8000)) * time.Millisecond,
		CacheTTL:     time.Duration(atoi("ROUTE_CACHE_TTL_SECONDS", 3600)) * time.Second,

		POIBaseURL: Get("POI_BASE_URL", ""),
		POIAPIKey:  Get("POI_API_KEY", ""),
		POISeed:    Get("POI_SEED_PATH", "data/seeds/pois.json"),

		LegConcurrency: atoi("LEG_CONCURRENCY", 5),
	}
}

// Get returns an environment variable or a fallback.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func atoi(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
