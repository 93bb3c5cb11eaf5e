package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/joho/godotenv"

	"github.com/couchcryptid/country-explorer/internal/adapter/cache"
	httpadapter "github.com/couchcryptid/country-explorer/internal/adapter/http"
	"github.com/couchcryptid/country-explorer/internal/config"
	"github.com/couchcryptid/country-explorer/internal/observability"
	"github.com/couchcryptid/country-explorer/internal/refresh"
	"github.com/couchcryptid/country-explorer/internal/resolver"
)

func main() {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	countrySrc := resolver.DefaultCountrySources(cfg.CountriesDatasetPath, cfg.UpstreamTimeout, logger)
	countries := resolver.NewServerCountries(countrySrc, logger, metrics)

	var store cache.Store
	var deps []sharedobs.ReadinessChecker
	if cfg.RedisAddr != "" {
		rdb := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		defer rdb.Close()
		redisStore := cache.NewRedis(rdb, "country-explorer", cfg.CacheTTL, logger)
		store = redisStore
		deps = append(deps, redisStore)
		logger.Info("redis response cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	} else {
		store = cache.NewLRU(cfg.CacheSize, cfg.CacheTTL, nil)
		logger.Info("in-memory response cache enabled", "size", cfg.CacheSize, "ttl", cfg.CacheTTL)
	}
	cached := resolver.NewCachedCountries(countries, store, metrics, logger)

	if cfg.NewsAPIKey == "" {
		logger.Warn("NEWSAPI_KEY not set, news served from RSS only")
	}
	newsSrc := resolver.DefaultNewsSources(cfg.NewsAPIKey, "en", cfg.UpstreamTimeout, logger)
	news := resolver.NewServerNews(newsSrc, logger, metrics)

	weatherSrc := resolver.DefaultWeatherSources(cfg.OpenWeatherAPIKey, cfg.UpstreamTimeout, logger)
	weather := resolver.NewWeather(weatherSrc, logger, metrics)

	refresher := refresh.New(cached, cfg.RefreshInterval, nil, logger, metrics)
	ready := httpadapter.NewReadiness(append(deps, refresher)...)
	srv := httpadapter.NewServer(httpadapter.Options{
		Addr:           cfg.HTTPAddr,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Countries:      cached,
		News:           news,
		Weather:        weather,
		Ready:          ready,
		Metrics:        metrics,
		Logger:         logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Keep the country list warm; /readyz fails until the first load.
	go func() {
		_ = refresher.Run(ctx)
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
