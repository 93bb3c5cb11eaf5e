package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// UpstreamTimeout bounds every outbound call, one fallback step each.
	UpstreamTimeout time.Duration

	// Provider credentials. Empty values select the key-less fallbacks.
	NewsAPIKey        string
	OpenWeatherAPIKey string

	// CountriesDatasetPath points at the packaged country dataset, if any.
	CountriesDatasetPath string

	// Response cache configuration.
	CacheTTL      time.Duration
	CacheSize     int
	RedisAddr     string
	RedisPassword string

	// RefreshInterval is how often the proxy reloads the country list.
	RefreshInterval time.Duration

	CORSAllowedOrigins []string

	// Explorer client configuration.
	ProxyBaseURL string
	StatePath    string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	upstreamTimeout, err := parsePositiveDuration("UPSTREAM_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}

	cacheTTL, err := parsePositiveDuration("CACHE_TTL", "10m")
	if err != nil {
		return nil, err
	}

	refreshInterval, err := parsePositiveDuration("REFRESH_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}

	cacheSize, err := parseCacheSize()
	if err != nil {
		return nil, err
	}

	addr := sharedcfg.EnvOrDefault("HTTP_ADDR", ":3001")
	if port := os.Getenv("PORT"); port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return nil, errors.New("invalid PORT")
		}
		addr = ":" + port
	}

	statePath := os.Getenv("STATE_PATH")
	if statePath == "" {
		statePath = defaultStatePath()
	}

	cfg := &Config{
		HTTPAddr:        addr,
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		UpstreamTimeout: upstreamTimeout,

		NewsAPIKey:        firstEnv("NEWSAPI_KEY", "VITE_NEWS_API_KEY"),
		OpenWeatherAPIKey: firstEnv("OPENWEATHER_API_KEY", "VITE_OPENWEATHER_API_KEY"),

		CountriesDatasetPath: os.Getenv("COUNTRIES_DATASET_PATH"),

		CacheTTL:      cacheTTL,
		CacheSize:     cacheSize,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		RefreshInterval: refreshInterval,

		CORSAllowedOrigins: splitList(sharedcfg.EnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),

		ProxyBaseURL: strings.TrimRight(sharedcfg.EnvOrDefault("PROXY_BASE_URL", "http://localhost:3001"), "/"),
		StatePath:    statePath,
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		return nil, errors.New("CORS_ALLOWED_ORIGINS must name at least one origin")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseCacheSize() (int, error) {
	s := os.Getenv("CACHE_SIZE")
	if s == "" {
		return 256, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid CACHE_SIZE")
	}
	return n, nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "country-explorer-state.json"
	}
	return filepath.Join(dir, "country-explorer", "state.json")
}
