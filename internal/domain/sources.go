package domain

import "context"

// CountryList is any source able to produce the full country list.
type CountryList interface {
	List(ctx context.Context) ([]RawCountry, error)
}

// CountryListFunc adapts a function to CountryList.
type CountryListFunc func(ctx context.Context) ([]RawCountry, error)

// List calls f.
func (f CountryListFunc) List(ctx context.Context) ([]RawCountry, error) { return f(ctx) }

// CountryAPI is the primary country REST API.
type CountryAPI interface {
	// All lists every country. An empty fields slice requests the full payload.
	All(ctx context.Context, fields []string) ([]RawCountry, error)

	// ByName looks countries up by name, exactly when fullText is set and by
	// substring otherwise.
	ByName(ctx context.Context, name string, fullText bool) ([]RawCountry, error)
}

// HeadlineProvider returns country-filtered top headlines.
type HeadlineProvider interface {
	TopHeadlines(ctx context.Context, country string, pageSize int) ([]NewsItem, error)
}

// NewsSearcher returns recent articles matching a free-text query.
type NewsSearcher interface {
	Search(ctx context.Context, query string, pageSize int) ([]NewsItem, error)
}

// NewsRelay is a proxy that runs the whole news chain on the caller's behalf.
type NewsRelay interface {
	TopNews(ctx context.Context, country, query string, pageSize int) ([]NewsItem, error)
}
