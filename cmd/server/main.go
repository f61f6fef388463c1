package main

import (
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	_ "github.com/jackc/pgx/v5/stdlib"

	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/geo"
	"trip-planner-service/internal/adapters/poi"
	"trip-planner-service/internal/adapters/trips"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/platform/config"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

// geoProvider is what the composition root needs from the geo adapter.
type geoProvider interface {
	ports.RouteProvider
	ports.Geocoder
}

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, the geo provider) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	cfg := config.Load()
	logger := obs.NewLogger(cfg.AppEnv)
	registry := obs.InitRegistry()

	var routeCache ports.RouteCache
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisRouteCache(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rc.Close()
		routeCache = rc
	} else {
		logger.Warn().Msg("REDIS_ADDR not set, route caching disabled")
	}

	var provider geoProvider
	if cfg.GeoBaseURL != "" {
		p, err := geo.NewProvider(cfg.GeoBaseURL, cfg.GeoAPIKey, cfg.GeoRateRPS, routeCache, cfg.CacheTTL)
		if err != nil {
			logger.Fatal().Err(err).Msg("geo provider setup failed")
		}
		provider = p
	} else {
		logger.Warn().Msg("GEO_BASE_URL not set, using straight-line route estimates")
		provider = geo.NewStaticProvider()
	}

	var source ports.CandidateSource
	if cfg.POIBaseURL != "" {
		s, err := poi.NewHTTPSource(cfg.POIBaseURL, cfg.POIAPIKey)
		if err != nil {
			logger.Fatal().Err(err).Msg("place source setup failed")
		}
		source = s
	} else {
		s, err := poi.LoadSeed(cfg.POISeed)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.POISeed).Msg("seed load failed")
		}
		logger.Info().Str("path", cfg.POISeed).Msg("POI_BASE_URL not set, serving candidates from seed file")
		source = s
	}

	var store ports.TripStore
	if cfg.DatabaseURL != "" {
		sqlDB, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("postgres connection failed")
		}
		defer sqlDB.Close()
		store = trips.NewPostgresStore(sqlDB)
	} else {
		logger.Warn().Msg("DATABASE_URL not set, storing trips in memory")
		store = trips.NewMemoryStore()
	}

	composer := &services.Composer{
		Provider:     provider,
		Concurrency:  cfg.LegConcurrency,
		RouteTimeout: cfg.RouteTimeout,
		Logger:       logger,
	}
	optimizer := &services.Optimizer{Composer: composer, Source: source}

	router := api.NewRouter(api.Deps{
		Source:    source,
		Geo:       provider,
		Provider:  provider,
		Composer:  composer,
		Optimizer: optimizer,
		Store:     store,
		Logger:    logger,
		Registry:  registry,
	})

	// Timeouts are tuned for cold-cache itinerary generation (external API latency).
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logger.Info().Str("addr", cfg.HTTPAddr).Msg("server listening")
	logger.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}
