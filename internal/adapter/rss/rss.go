// Package rss scrapes headlines from the Google News RSS search feed, the
// key-less last resort for news.
package rss

import (
	"bytes"
	"context"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/couchcryptid/country-explorer/internal/adapter/upstream"
	"github.com/couchcryptid/country-explorer/internal/domain"
)

// DefaultSearchURL is the Google News RSS search endpoint.
const DefaultSearchURL = "https://news.google.com/rss/search"

// itemPattern extracts title/link pairs from documents gofeed rejects.
var itemPattern = regexp.MustCompile(`(?s)<item>.*?<title>(?:<!\[CDATA\[(.*?)\]\]>|(.*?))</title>.*?<link>(.*?)</link>.*?</item>`)

// Client implements domain.NewsSearcher over an RSS search feed.
type Client struct {
	httpClient *http.Client
	searchURL  string
	logger     *slog.Logger
}

// NewClient creates a Google News RSS client.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: upstream.NewHTTPClient(timeout),
		searchURL:  DefaultSearchURL,
		logger:     logger,
	}
}

// Search fetches the feed for query and returns up to pageSize items in
// feed order.
func (c *Client) Search(ctx context.Context, query string, pageSize int) ([]domain.NewsItem, error) {
	v := url.Values{
		"q":    {query},
		"hl":   {"en-US"},
		"gl":   {"US"},
		"ceid": {"US:en"},
	}
	body, err := upstream.Get(ctx, c.httpClient, "rss", c.searchURL+"?"+v.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return c.extract(body, pageSize), nil
}

// extract parses body as a feed, falling back to a pattern scan when the
// document is not a feed gofeed understands.
func (c *Client) extract(body []byte, limit int) []domain.NewsItem {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		c.logger.Debug("rss parse failed, scanning items", "error", err)
		return scan(body, limit)
	}

	out := make([]domain.NewsItem, 0, limit)
	for _, it := range feed.Items {
		if len(out) >= limit {
			break
		}
		item := domain.NewsItem{Title: strings.TrimSpace(it.Title), URL: strings.TrimSpace(it.Link)}
		if item.Title == "" || item.URL == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func scan(body []byte, limit int) []domain.NewsItem {
	out := make([]domain.NewsItem, 0, limit)
	for _, m := range itemPattern.FindAllSubmatch(body, -1) {
		if len(out) >= limit {
			break
		}
		title := string(m[1])
		if title == "" {
			title = html.UnescapeString(string(m[2]))
		}
		item := domain.NewsItem{
			Title: strings.TrimSpace(title),
			URL:   strings.TrimSpace(html.UnescapeString(string(m[3]))),
		}
		if item.Title == "" || item.URL == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
