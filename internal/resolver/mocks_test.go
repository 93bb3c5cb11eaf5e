package resolver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/couchcryptid/country-explorer/internal/domain"
)

var errUpstream = errors.New("upstream down")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// callLog records source invocations in order.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) get() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakeList struct {
	name    string
	log     *callLog
	records []domain.RawCountry
	err     error
}

func (f *fakeList) List(context.Context) ([]domain.RawCountry, error) {
	f.log.add(f.name)
	return f.records, f.err
}

type fakeAPI struct {
	log    *callLog
	all    []domain.RawCountry
	allErr error
	byName map[bool][]domain.RawCountry
	err    error
}

func (f *fakeAPI) All(_ context.Context, fields []string) ([]domain.RawCountry, error) {
	if len(fields) > 0 {
		f.log.add("api-fields")
	} else {
		f.log.add("api-full")
	}
	return f.all, f.allErr
}

func (f *fakeAPI) ByName(_ context.Context, _ string, fullText bool) ([]domain.RawCountry, error) {
	if fullText {
		f.log.add("api-fulltext")
	} else {
		f.log.add("api-partial")
	}
	return f.byName[fullText], f.err
}

type fakeCityWeather struct {
	calls int
	snap  domain.WeatherSnapshot
	err   error
}

func (f *fakeCityWeather) CurrentByCity(context.Context, string) (domain.WeatherSnapshot, error) {
	f.calls++
	return f.snap, f.err
}

type fakeGeocoder struct {
	calls int
	place domain.Place
	found bool
	err   error
}

func (f *fakeGeocoder) Geocode(context.Context, string) (domain.Place, bool, error) {
	f.calls++
	return f.place, f.found, f.err
}

type fakeForecast struct {
	calls  [][2]float64
	snap   domain.WeatherSnapshot
	err    error
	failAt map[[2]float64]bool
}

func (f *fakeForecast) CurrentByCoords(_ context.Context, lat, lng float64) (domain.WeatherSnapshot, error) {
	key := [2]float64{lat, lng}
	f.calls = append(f.calls, key)
	if f.err != nil || f.failAt[key] {
		return domain.WeatherSnapshot{}, errUpstream
	}
	return f.snap, nil
}

type fakeRelay struct {
	log   *callLog
	items []domain.NewsItem
	err   error
	args  []string
}

func (f *fakeRelay) TopNews(_ context.Context, country, query string, _ int) ([]domain.NewsItem, error) {
	f.log.add("relay")
	f.args = []string{country, query}
	return f.items, f.err
}

type fakeHeadlines struct {
	log     *callLog
	items   []domain.NewsItem
	err     error
	country string
}

func (f *fakeHeadlines) TopHeadlines(_ context.Context, country string, _ int) ([]domain.NewsItem, error) {
	f.log.add("headlines")
	f.country = country
	return f.items, f.err
}

type fakeSearch struct {
	name  string
	log   *callLog
	items []domain.NewsItem
	err   error
	query string
}

func (f *fakeSearch) Search(_ context.Context, query string, _ int) ([]domain.NewsItem, error) {
	f.log.add(f.name)
	f.query = query
	return f.items, f.err
}

func items(n int) []domain.NewsItem {
	out := make([]domain.NewsItem, n)
	for i := range out {
		out[i] = domain.NewsItem{Title: string(rune('A' + i)), URL: "https://news.example/" + string(rune('a'+i))}
	}
	return out
}
