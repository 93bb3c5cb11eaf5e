package resolver

import (
	"context"
	"log/slog"
	"strings"

	"github.com/couchcryptid/country-explorer/internal/domain"
	"github.com/couchcryptid/country-explorer/internal/fallback"
)

// News page size bounds.
const (
	DefaultNewsPageSize = domain.MaxNews
	MaxNewsPageSize     = 20
)

// NewsSources are the news providers. Headlines and Search are NewsAPI and
// are nil without a key; Relay is the proxy and only used client-side.
type NewsSources struct {
	Relay     domain.NewsRelay
	Headlines domain.HeadlineProvider
	Search    domain.NewsSearcher
	RSS       domain.NewsSearcher
}

// News resolves short headline lists.
type News struct {
	src      NewsSources
	name     string
	logger   *slog.Logger
	observer fallback.Observer
}

// NewClientNews builds the client profile: proxy, headlines, search, RSS.
func NewClientNews(src NewsSources, logger *slog.Logger, observer fallback.Observer) *News {
	return &News{src: src, name: "news-client", logger: logger, observer: observer}
}

// NewServerNews builds the proxy profile: headlines, search, RSS. Relay in
// src is ignored.
func NewServerNews(src NewsSources, logger *slog.Logger, observer fallback.Observer) *News {
	src.Relay = nil
	return &News{src: src, name: "news-server", logger: logger, observer: observer}
}

// ClampPageSize maps n into [1, MaxNewsPageSize], with DefaultNewsPageSize
// for unset values.
func ClampPageSize(n int) int {
	switch {
	case n <= 0:
		return DefaultNewsPageSize
	case n > MaxNewsPageSize:
		return MaxNewsPageSize
	}
	return n
}

// TopHeadlines returns up to domain.MaxNews items for a country.
func (n *News) TopHeadlines(ctx context.Context, code, name string) []domain.NewsItem {
	return n.Top(ctx, code, name, domain.MaxNews)
}

// Top returns up to pageSize items. Headlines need a country code; the
// search steps use q, else the country code, else "world".
func (n *News) Top(ctx context.Context, country, q string, pageSize int) []domain.NewsItem {
	pageSize = ClampPageSize(pageSize)
	country = strings.ToLower(strings.TrimSpace(country))
	q = strings.TrimSpace(q)
	query := q
	if query == "" {
		query = country
	}
	if query == "" {
		query = "world"
	}

	var relay, headlines, search, rss func(context.Context) ([]domain.NewsItem, error)
	if n.src.Relay != nil {
		relay = func(ctx context.Context) ([]domain.NewsItem, error) {
			return n.src.Relay.TopNews(ctx, country, q, pageSize)
		}
	}
	if n.src.Headlines != nil && country != "" {
		headlines = func(ctx context.Context) ([]domain.NewsItem, error) {
			return n.src.Headlines.TopHeadlines(ctx, country, pageSize)
		}
	}
	if n.src.Search != nil {
		search = func(ctx context.Context) ([]domain.NewsItem, error) {
			return n.src.Search.Search(ctx, query, pageSize)
		}
	}
	if n.src.RSS != nil {
		rss = func(ctx context.Context) ([]domain.NewsItem, error) {
			return n.src.RSS.Search(ctx, query, pageSize)
		}
	}

	chain := fallback.New(n.name, fallback.NonEmpty[domain.NewsItem], n.logger,
		fallback.Source[[]domain.NewsItem]{Name: "proxy", Fetch: relay},
		fallback.Source[[]domain.NewsItem]{Name: "newsapi-headlines", Fetch: headlines},
		fallback.Source[[]domain.NewsItem]{Name: "newsapi-everything", Fetch: search},
		fallback.Source[[]domain.NewsItem]{Name: "google-news-rss", Fetch: rss},
	)
	if n.observer != nil {
		chain.WithObserver(n.observer)
	}

	out, _ := chain.Resolve(ctx)
	if len(out) > pageSize {
		out = out[:pageSize]
	}
	if out == nil {
		return []domain.NewsItem{}
	}
	return out
}
