package restcountries

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/country-explorer/internal/adapter/upstream"
	"github.com/couchcryptid/country-explorer/internal/domain"
)

// DefaultBaseURL is the REST Countries v3.1 API.
const DefaultBaseURL = "https://restcountries.com/v3.1"

// ListFields is the reduced projection requested for the country list.
var ListFields = []string{
	"name", "cca2", "cca3", "capital", "region", "subregion", "population",
	"area", "flags", "languages", "currencies", "borders", "latlng",
}

// Client implements domain.CountryAPI against REST Countries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a REST Countries client.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: upstream.NewHTTPClient(timeout),
		baseURL:    DefaultBaseURL,
		logger:     logger,
	}
}

// All lists every country. An empty fields slice requests the full payload.
func (c *Client) All(ctx context.Context, fields []string) ([]domain.RawCountry, error) {
	u := c.baseURL + "/all"
	if len(fields) > 0 {
		u += "?" + url.Values{"fields": {strings.Join(fields, ",")}}.Encode()
	}
	return c.list(ctx, u, "all")
}

// ByName looks countries up by name. fullText requests an exact full-name
// match; otherwise the API matches substrings.
func (c *Client) ByName(ctx context.Context, name string, fullText bool) ([]domain.RawCountry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("restcountries: empty country name")
	}
	u := fmt.Sprintf("%s/name/%s", c.baseURL, url.PathEscape(name))
	if fullText {
		u += "?fullText=true"
	}
	return c.list(ctx, u, "name")
}

func (c *Client) list(ctx context.Context, u, endpoint string) ([]domain.RawCountry, error) {
	var out []domain.RawCountry
	if err := upstream.GetJSON(ctx, c.httpClient, "restcountries "+endpoint, u, nil, &out); err != nil {
		return nil, err
	}
	c.logger.Debug("restcountries response", "endpoint", endpoint, "count", len(out))
	return out, nil
}
