// Command explorer browses countries from the terminal over the client-side
// fallback chains, with favorites and theme kept in a local state file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/country-explorer/internal/adapter/proxyclient"
	"github.com/couchcryptid/country-explorer/internal/config"
	"github.com/couchcryptid/country-explorer/internal/observability"
	"github.com/couchcryptid/country-explorer/internal/resolver"
	"github.com/couchcryptid/country-explorer/internal/state"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	level := cfg.LogLevel
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	logger := observability.NewCLILogger(os.Stderr, level)

	proxy := proxyclient.NewClient(cfg.ProxyBaseURL, cfg.UpstreamTimeout, logger)

	countrySrc := resolver.DefaultCountrySources(cfg.CountriesDatasetPath, cfg.UpstreamTimeout, logger)
	countrySrc.Proxy = proxy
	newsSrc := resolver.DefaultNewsSources(cfg.NewsAPIKey, "", cfg.UpstreamTimeout, logger)
	newsSrc.Relay = proxy

	app := state.NewApp(state.NewFileStore(cfg.StatePath))
	if err := app.Load(); err != nil {
		logger.Warn("state not loaded, starting fresh", "path", cfg.StatePath, "error", err)
	}

	deps := &explorer{
		countries: resolver.NewClientCountries(countrySrc, logger, nil),
		weather:   resolver.NewWeather(resolver.DefaultWeatherSources(cfg.OpenWeatherAPIKey, cfg.UpstreamTimeout, logger), logger, nil),
		news:      resolver.NewClientNews(newsSrc, logger, nil),
		app:       app,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(deps).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}
