package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNewsKey = "news-test-key"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STATE_PATH", "/tmp/state.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3001", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.UpstreamTimeout)
	assert.Empty(t, cfg.NewsAPIKey)
	assert.Empty(t, cfg.OpenWeatherAPIKey)
	assert.Empty(t, cfg.CountriesDatasetPath)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 256, cfg.CacheSize)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "http://localhost:3001", cfg.ProxyBaseURL)
	assert.Equal(t, "/tmp/state.json", cfg.StatePath)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("NEWSAPI_KEY", testNewsKey)
	t.Setenv("OPENWEATHER_API_KEY", "ow-key")
	t.Setenv("COUNTRIES_DATASET_PATH", "/data/countries.json")
	t.Setenv("CACHE_TTL", "1h")
	t.Setenv("CACHE_SIZE", "32")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_PASSWORD", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://explorer.example")
	t.Setenv("PROXY_BASE_URL", "http://proxy:3001/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, testNewsKey, cfg.NewsAPIKey)
	assert.Equal(t, "ow-key", cfg.OpenWeatherAPIKey)
	assert.Equal(t, "/data/countries.json", cfg.CountriesDatasetPath)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 32, cfg.CacheSize)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "secret", cfg.RedisPassword)
	assert.Equal(t, []string{"http://localhost:5173", "https://explorer.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "http://proxy:3001", cfg.ProxyBaseURL)
}

func TestLoad_PortOverridesAddr(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("PORT", "4000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":4000", cfg.HTTPAddr)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "http")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestLoad_ViteKeyFallbacks(t *testing.T) {
	t.Setenv("VITE_NEWS_API_KEY", "vite-news")
	t.Setenv("VITE_OPENWEATHER_API_KEY", "vite-weather")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "vite-news", cfg.NewsAPIKey)
	assert.Equal(t, "vite-weather", cfg.OpenWeatherAPIKey)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidUpstreamTimeout(t *testing.T) {
	t.Setenv("UPSTREAM_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPSTREAM_TIMEOUT")
}

func TestLoad_InvalidCacheTTL(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_TTL")
}

func TestLoad_InvalidRefreshInterval(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "0s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
}

func TestLoad_InvalidCacheSize(t *testing.T) {
	t.Setenv("CACHE_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_SIZE")
}

func TestLoad_EmptyCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " , ")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CORS_ALLOWED_ORIGINS")
}
