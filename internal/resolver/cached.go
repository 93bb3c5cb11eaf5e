package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/couchcryptid/country-explorer/internal/adapter/cache"
	"github.com/couchcryptid/country-explorer/internal/domain"
)

const keyAll = "countries:all"

// ErrEmptyRefresh is returned by Refresh when no source produced a country.
var ErrEmptyRefresh = errors.New("country refresh produced no records")

// CountryFetcher is the read side of Countries.
type CountryFetcher interface {
	FetchAll(ctx context.Context) []domain.RawCountry
	FetchByName(ctx context.Context, name string) []domain.RawCountry
}

// CacheObserver records cache hits and misses.
type CacheObserver interface {
	ObserveCache(cache string, hit bool)
}

// CachedCountries wraps a CountryFetcher with a response cache and collapses
// concurrent identical lookups into one chain run.
type CachedCountries struct {
	inner    CountryFetcher
	store    cache.Store
	group    singleflight.Group
	observer CacheObserver
	logger   *slog.Logger
}

// NewCachedCountries creates the cache decorator. observer may be nil.
func NewCachedCountries(inner CountryFetcher, store cache.Store, observer CacheObserver, logger *slog.Logger) *CachedCountries {
	return &CachedCountries{inner: inner, store: store, observer: observer, logger: logger}
}

// FetchAll returns the cached list or runs the inner chain.
func (c *CachedCountries) FetchAll(ctx context.Context) []domain.RawCountry {
	return c.fetch(ctx, keyAll, c.inner.FetchAll)
}

// Refresh reruns the list chain and replaces the cached list. It reports how
// many countries were stored.
func (c *CachedCountries) Refresh(ctx context.Context) (int, error) {
	out := c.load(ctx, keyAll, c.inner.FetchAll)
	if len(out) == 0 {
		return 0, ErrEmptyRefresh
	}
	return len(out), nil
}

// FetchByName returns the cached lookup or runs the inner chain. Keys are
// case-insensitive.
func (c *CachedCountries) FetchByName(ctx context.Context, name string) []domain.RawCountry {
	key := "countries:name:" + strings.ToLower(strings.TrimSpace(name))
	return c.fetch(ctx, key, func(ctx context.Context) []domain.RawCountry {
		return c.inner.FetchByName(ctx, name)
	})
}

// fetch only caches non-empty results so an outage is not remembered.
func (c *CachedCountries) fetch(ctx context.Context, key string, run func(context.Context) []domain.RawCountry) []domain.RawCountry {
	if out, ok := c.lookup(ctx, key); ok {
		return out
	}
	return c.load(ctx, key, run)
}

func (c *CachedCountries) load(ctx context.Context, key string, run func(context.Context) []domain.RawCountry) []domain.RawCountry {
	v, _, _ := c.group.Do(key, func() (any, error) {
		// Shared by every waiter, so one caller going away must not cancel it.
		shared := context.WithoutCancel(ctx)
		out := run(shared)
		if len(out) > 0 {
			if b, err := json.Marshal(out); err == nil {
				c.store.Set(shared, key, b)
			} else {
				c.logger.Warn("country cache encode failed", "key", key, "error", err)
			}
		}
		return out, nil
	})
	return v.([]domain.RawCountry)
}

func (c *CachedCountries) lookup(ctx context.Context, key string) ([]domain.RawCountry, bool) {
	b, ok := c.store.Get(ctx, key)
	if ok {
		var out []domain.RawCountry
		if err := json.Unmarshal(b, &out); err != nil {
			c.logger.Warn("country cache decode failed", "key", key, "error", err)
			ok = false
		} else {
			c.observe(true)
			return out, true
		}
	}
	c.observe(false)
	return nil, false
}

func (c *CachedCountries) observe(hit bool) {
	if c.observer != nil {
		c.observer.ObserveCache("countries", hit)
	}
}
