// Package proxyclient talks to the country-explorer proxy, the first-choice
// data path for clients.
package proxyclient

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/country-explorer/internal/adapter/upstream"
	"github.com/couchcryptid/country-explorer/internal/domain"
)

// Client calls the proxy's /api endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a proxy client for baseURL, e.g. http://localhost:3001.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: upstream.NewHTTPClient(timeout),
		baseURL:    baseURL,
		logger:     logger,
	}
}

// List fetches the proxy's country list.
func (c *Client) List(ctx context.Context) ([]domain.RawCountry, error) {
	var out []domain.RawCountry
	if err := upstream.GetJSON(ctx, c.httpClient, "proxy countries", c.baseURL+"/api/countries", nil, &out); err != nil {
		return nil, err
	}
	c.logger.Debug("proxy countries response", "count", len(out))
	return out, nil
}

type newsResponse struct {
	Articles []domain.NewsItem `json:"articles"`
}

// TopNews runs the proxy's server-side news chain.
func (c *Client) TopNews(ctx context.Context, country, query string, pageSize int) ([]domain.NewsItem, error) {
	v := url.Values{}
	if country != "" {
		v.Set("country", country)
	}
	if query != "" {
		v.Set("q", query)
	}
	if pageSize > 0 {
		v.Set("pageSize", strconv.Itoa(pageSize))
	}
	u := c.baseURL + "/api/news/top"
	if len(v) > 0 {
		u += "?" + v.Encode()
	}

	var resp newsResponse
	if err := upstream.GetJSON(ctx, c.httpClient, "proxy news", u, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Articles, nil
}
