// Package mirror fetches the country dataset from independently hosted static
// copies of mledoze/countries.
package mirror

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/country-explorer/internal/adapter/upstream"
	"github.com/couchcryptid/country-explorer/internal/domain"
)

// Default mirrors, tried in this order.
var Defaults = []struct{ Name, URL string }{
	{"mirror-jsdelivr", "https://cdn.jsdelivr.net/gh/mledoze/countries@master/countries.json"},
	{"mirror-unpkg", "https://unpkg.com/mledoze-countries@latest/countries.json"},
	{"mirror-github", "https://raw.githubusercontent.com/mledoze/countries/master/countries.json"},
}

// Client serves one mirror URL as a domain.CountryList.
type Client struct {
	name       string
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a mirror client for url.
func NewClient(name, url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		name:       name,
		url:        url,
		httpClient: upstream.NewHTTPClient(timeout),
		logger:     logger,
	}
}

// NewDefaultClients returns clients for the default mirrors in order.
func NewDefaultClients(timeout time.Duration, logger *slog.Logger) []*Client {
	out := make([]*Client, 0, len(Defaults))
	for _, m := range Defaults {
		out = append(out, NewClient(m.Name, m.URL, timeout, logger))
	}
	return out
}

// Name identifies the mirror in logs and metrics.
func (c *Client) Name() string { return c.name }

// List fetches the mirror's JSON array as-is.
func (c *Client) List(ctx context.Context) ([]domain.RawCountry, error) {
	var out []domain.RawCountry
	if err := upstream.GetJSON(ctx, c.httpClient, c.name, c.url, nil, &out); err != nil {
		return nil, err
	}
	c.logger.Debug("mirror response", "mirror", c.name, "count", len(out))
	return out, nil
}
