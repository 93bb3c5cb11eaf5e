package openweather

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL, key string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		apiKey:     key,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_CurrentByCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Berlin", q.Get("q"))
		assert.Equal(t, "k", q.Get("appid"))
		assert.Equal(t, "metric", q.Get("units"))
		_, _ = w.Write([]byte(`{"main":{"temp":12.5,"humidity":81},"wind":{"speed":3.6},"weather":[{"description":"light rain","icon":"10d"}]}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL, "k").CurrentByCity(context.Background(), "Berlin")
	require.NoError(t, err)
	assert.InDelta(t, 12.5, got.Temp, 1e-9)
	require.NotNil(t, got.Humidity)
	assert.InDelta(t, 81.0, *got.Humidity, 1e-9)
	assert.InDelta(t, 3.6, got.Wind, 1e-9)
	assert.Equal(t, "light rain", got.Description)
	require.NotNil(t, got.Icon)
	assert.Equal(t, "10d", *got.Icon)
}

func TestClient_CurrentByCity_DefaultDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"main":{"temp":1},"wind":{"speed":0},"weather":[]}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL, "k").CurrentByCity(context.Background(), "Oslo")
	require.NoError(t, err)
	assert.Equal(t, "—", got.Description)
	assert.Nil(t, got.Icon)
	assert.Nil(t, got.Humidity)
}

func TestClient_CurrentByCity_NoKey(t *testing.T) {
	_, err := testClient("http://127.0.0.1:0", "").CurrentByCity(context.Background(), "Berlin")
	assert.ErrorIs(t, err, ErrNoKey)
}

func TestClient_CurrentByCity_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, "bad").CurrentByCity(context.Background(), "Berlin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestClient_CurrentByCity_MissingTemperature(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, "k").CurrentByCity(context.Background(), "Berlin")
	require.Error(t, err)
}
