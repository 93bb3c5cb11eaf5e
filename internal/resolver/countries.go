package resolver

import (
	"context"
	"log/slog"
	"strings"

	"github.com/couchcryptid/country-explorer/internal/adapter/restcountries"
	"github.com/couchcryptid/country-explorer/internal/domain"
	"github.com/couchcryptid/country-explorer/internal/fallback"
)

// NamedList is a country list source with a name for logs and metrics.
type NamedList struct {
	Name string
	List domain.CountryList
}

// CountrySources are the providers a Countries resolver draws from. Nil
// providers are skipped.
type CountrySources struct {
	Packaged domain.CountryList
	Proxy    domain.CountryList
	API      domain.CountryAPI
	Mirrors  []NamedList
	Bundled  domain.CountryList
}

// Countries resolves the country list and single-country lookups.
type Countries struct {
	src      CountrySources
	all      *fallback.Chain[[]domain.RawCountry]
	logger   *slog.Logger
	observer fallback.Observer
}

// NewClientCountries builds the client profile: packaged dataset, proxy,
// packaged dataset, REST fields, REST full, mirrors, packaged dataset,
// bundled file.
func NewClientCountries(src CountrySources, logger *slog.Logger, observer fallback.Observer) *Countries {
	sources := []fallback.Source[[]domain.RawCountry]{
		listSource("packaged", src.Packaged, false),
		listSource("proxy", src.Proxy, false),
		listSource("packaged-retry", src.Packaged, false),
	}
	sources = append(sources, apiSources(src.API)...)
	sources = append(sources, mirrorSources(src.Mirrors)...)
	sources = append(sources,
		listSource("packaged-final", src.Packaged, false),
		listSource("bundled", src.Bundled, true),
	)
	return newCountries(src, "countries-client", sources, logger, observer)
}

// NewServerCountries builds the proxy profile: REST fields, REST full,
// mirrors, packaged dataset, bundled file. Proxy in src is ignored.
func NewServerCountries(src CountrySources, logger *slog.Logger, observer fallback.Observer) *Countries {
	src.Proxy = nil
	sources := apiSources(src.API)
	sources = append(sources, mirrorSources(src.Mirrors)...)
	sources = append(sources,
		listSource("packaged", src.Packaged, false),
		listSource("bundled", src.Bundled, true),
	)
	return newCountries(src, "countries-server", sources, logger, observer)
}

func newCountries(src CountrySources, name string, sources []fallback.Source[[]domain.RawCountry], logger *slog.Logger, observer fallback.Observer) *Countries {
	chain := fallback.New(name, fallback.NonEmpty[domain.RawCountry], logger, sources...)
	if observer != nil {
		chain.WithObserver(observer)
	}
	return &Countries{src: src, all: chain, logger: logger, observer: observer}
}

// FetchAll returns the first non-empty country list, or an empty slice when
// every source fails.
func (c *Countries) FetchAll(ctx context.Context) []domain.RawCountry {
	out, _ := c.all.Resolve(ctx)
	if out == nil {
		return []domain.RawCountry{}
	}
	return out
}

// FetchByName looks a country up by name: exact API match, substring API
// match, then the bundled file by case-insensitive common name. When nothing
// matches it returns the bundled file's first entry, or an empty slice if
// the bundled file is empty too.
func (c *Countries) FetchByName(ctx context.Context, name string) []domain.RawCountry {
	var exact, partial func(context.Context) ([]domain.RawCountry, error)
	if c.src.API != nil {
		exact = func(ctx context.Context) ([]domain.RawCountry, error) { return c.src.API.ByName(ctx, name, true) }
		partial = func(ctx context.Context) ([]domain.RawCountry, error) { return c.src.API.ByName(ctx, name, false) }
	}
	var match, first func(context.Context) ([]domain.RawCountry, error)
	if c.src.Bundled != nil {
		match = func(ctx context.Context) ([]domain.RawCountry, error) {
			all, err := c.src.Bundled.List(ctx)
			if err != nil {
				return nil, err
			}
			var out []domain.RawCountry
			for _, raw := range all {
				if strings.EqualFold(domain.CommonName(raw), strings.TrimSpace(name)) {
					out = append(out, domain.MirrorCompat(raw))
				}
			}
			return out, nil
		}
		first = func(ctx context.Context) ([]domain.RawCountry, error) {
			all, err := c.src.Bundled.List(ctx)
			if err != nil || len(all) == 0 {
				return nil, err
			}
			return []domain.RawCountry{domain.MirrorCompat(all[0])}, nil
		}
	}

	chain := fallback.New("countries-by-name", fallback.NonEmpty[domain.RawCountry], c.logger,
		fallback.Source[[]domain.RawCountry]{Name: "restcountries-fulltext", Fetch: exact},
		fallback.Source[[]domain.RawCountry]{Name: "restcountries-partial", Fetch: partial},
		fallback.Source[[]domain.RawCountry]{Name: "bundled-match", Fetch: match},
		fallback.Source[[]domain.RawCountry]{Name: "bundled-first", Fetch: first},
	)
	if c.observer != nil {
		chain.WithObserver(c.observer)
	}

	out, _ := chain.Resolve(ctx)
	if out == nil {
		return []domain.RawCountry{}
	}
	return out
}

// FetchByCode returns the normalized record with the given cca3 from the
// full list.
func (c *Countries) FetchByCode(ctx context.Context, cca3 string) (domain.CountryRecord, bool) {
	cca3 = strings.ToUpper(strings.TrimSpace(cca3))
	if cca3 == "" {
		return domain.CountryRecord{}, false
	}
	rec, ok := domain.IndexByCCA3(domain.NormalizeAll(c.FetchAll(ctx)))[cca3]
	return rec, ok
}

func apiSources(api domain.CountryAPI) []fallback.Source[[]domain.RawCountry] {
	var withFields, full func(context.Context) ([]domain.RawCountry, error)
	if api != nil {
		withFields = func(ctx context.Context) ([]domain.RawCountry, error) { return api.All(ctx, restcountries.ListFields) }
		full = func(ctx context.Context) ([]domain.RawCountry, error) { return api.All(ctx, nil) }
	}
	return []fallback.Source[[]domain.RawCountry]{
		{Name: "restcountries-fields", Fetch: withFields},
		{Name: "restcountries-full", Fetch: full},
	}
}

func mirrorSources(mirrors []NamedList) []fallback.Source[[]domain.RawCountry] {
	out := make([]fallback.Source[[]domain.RawCountry], 0, len(mirrors))
	for _, m := range mirrors {
		out = append(out, listSource(m.Name, m.List, true))
	}
	return out
}

// listSource adapts a CountryList. compat applies the mirror transform to
// every record.
func listSource(name string, list domain.CountryList, compat bool) fallback.Source[[]domain.RawCountry] {
	if list == nil {
		return fallback.Source[[]domain.RawCountry]{Name: name}
	}
	return fallback.Source[[]domain.RawCountry]{
		Name: name,
		Fetch: func(ctx context.Context) ([]domain.RawCountry, error) {
			out, err := list.List(ctx)
			if err != nil || !compat {
				return out, err
			}
			return domain.MirrorCompatAll(out), nil
		},
	}
}
