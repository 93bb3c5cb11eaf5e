// Package newsapi queries NewsAPI's top-headlines and everything endpoints.
package newsapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/country-explorer/internal/adapter/upstream"
	"github.com/couchcryptid/country-explorer/internal/domain"
)

// DefaultBaseURL is the NewsAPI v2 root.
const DefaultBaseURL = "https://newsapi.org/v2"

// ErrNoKey is returned when the client has no API key.
var ErrNoKey = errors.New("newsapi: no API key configured")

// Client implements domain.HeadlineProvider and domain.NewsSearcher.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
	logger     *slog.Logger
}

// NewClient creates a NewsAPI client. language, when set, restricts results
// to that ISO-639-1 language.
func NewClient(apiKey, language string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: upstream.NewHTTPClient(timeout),
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		language:   language,
		logger:     logger,
	}
}

// Configured reports whether the client has a key.
func (c *Client) Configured() bool { return c.apiKey != "" }

type articlesResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"articles"`
}

// TopHeadlines returns headlines for a two-letter country code.
func (c *Client) TopHeadlines(ctx context.Context, country string, pageSize int) ([]domain.NewsItem, error) {
	country = strings.ToLower(strings.TrimSpace(country))
	if country == "" {
		return nil, errors.New("newsapi: empty country")
	}
	return c.articles(ctx, "top-headlines", url.Values{"country": {country}}, pageSize)
}

// Search returns the most recent articles matching query.
func (c *Client) Search(ctx context.Context, query string, pageSize int) ([]domain.NewsItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("newsapi: empty query")
	}
	return c.articles(ctx, "everything", url.Values{"q": {query}, "sortBy": {"publishedAt"}}, pageSize)
}

func (c *Client) articles(ctx context.Context, endpoint string, v url.Values, pageSize int) ([]domain.NewsItem, error) {
	if !c.Configured() {
		return nil, ErrNoKey
	}
	v.Set("apiKey", c.apiKey)
	if pageSize > 0 {
		v.Set("pageSize", strconv.Itoa(pageSize))
	}
	if c.language != "" {
		v.Set("language", c.language)
	}

	source := "newsapi " + endpoint
	var resp articlesResponse
	if err := upstream.GetJSON(ctx, c.httpClient, source, c.baseURL+"/"+endpoint+"?"+v.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("%s: status %q: %s %s", source, resp.Status, resp.Code, resp.Message)
	}

	out := make([]domain.NewsItem, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		out = append(out, domain.NewsItem{Title: a.Title, URL: a.URL})
	}
	c.logger.Debug("newsapi response", "endpoint", endpoint, "count", len(out))
	return out, nil
}
