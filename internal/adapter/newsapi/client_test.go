package newsapi

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

	"github.com/couchcryptid/country-explorer/internal/domain"
)

func testClient(baseURL, key, language string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		apiKey:     key,
		language:   language,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_TopHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/top-headlines", r.URL.Path)
		assert.Equal(t, "de", q.Get("country"))
		assert.Equal(t, "k", q.Get("apiKey"))
		assert.Equal(t, "3", q.Get("pageSize"))
		assert.Equal(t, "en", q.Get("language"))
		_, _ = w.Write([]byte(`{"status":"ok","totalResults":1,"articles":[{"title":"Berlin news","url":"https://example.com/1","author":"x"}]}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL, "k", "en").TopHeadlines(context.Background(), "DE", 3)
	require.NoError(t, err)
	assert.Equal(t, []domain.NewsItem{{Title: "Berlin news", URL: "https://example.com/1"}}, got)
}

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/everything", r.URL.Path)
		assert.Equal(t, "Germany", q.Get("q"))
		assert.Equal(t, "publishedAt", q.Get("sortBy"))
		assert.Empty(t, q.Get("language"))
		_, _ = w.Write([]byte(`{"status":"ok","articles":[]}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL, "k", "").Search(context.Background(), "Germany", 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_StatusNotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","code":"rateLimited","message":"slow down"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, "k", "").Search(context.Background(), "x", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rateLimited")
}

func TestClient_NoKey(t *testing.T) {
	c := testClient("http://127.0.0.1:0", "", "")
	assert.False(t, c.Configured())

	_, err := c.TopHeadlines(context.Background(), "de", 3)
	assert.ErrorIs(t, err, ErrNoKey)
	_, err = c.Search(context.Background(), "Germany", 3)
	assert.ErrorIs(t, err, ErrNoKey)
}

func TestClient_EmptyArguments(t *testing.T) {
	c := testClient("http://127.0.0.1:0", "k", "")

	_, err := c.TopHeadlines(context.Background(), "", 3)
	require.Error(t, err)
	_, err = c.Search(context.Background(), "  ", 3)
	require.Error(t, err)
}
