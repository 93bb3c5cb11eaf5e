package resolver

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/couchcryptid/country-explorer/internal/domain"
	"github.com/couchcryptid/country-explorer/internal/fallback"
)

// WeatherSources are the weather providers. Primary is the credentialed
// provider and is nil when no key is configured.
type WeatherSources struct {
	Primary  domain.CityWeather
	Geocoder domain.Geocoder
	Forecast domain.CoordWeather
}

// Weather resolves current conditions by city or coordinates.
type Weather struct {
	src      WeatherSources
	logger   *slog.Logger
	observer fallback.Observer
}

// NewWeather creates a weather resolver.
func NewWeather(src WeatherSources, logger *slog.Logger, observer fallback.Observer) *Weather {
	return &Weather{src: src, logger: logger, observer: observer}
}

// ByCity tries the primary provider, then geocodes city and asks the
// forecast provider. nil means no source produced a snapshot.
func (w *Weather) ByCity(ctx context.Context, city string) *domain.WeatherSnapshot {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil
	}

	var primary, geocoded func(context.Context) (*domain.WeatherSnapshot, error)
	if w.src.Primary != nil {
		primary = func(ctx context.Context) (*domain.WeatherSnapshot, error) {
			snap, err := w.src.Primary.CurrentByCity(ctx, city)
			if err != nil {
				return nil, err
			}
			return &snap, nil
		}
	}
	if w.src.Geocoder != nil && w.src.Forecast != nil {
		geocoded = func(ctx context.Context) (*domain.WeatherSnapshot, error) {
			place, ok, err := w.src.Geocoder.Geocode(ctx, city)
			if err != nil || !ok {
				return nil, err
			}
			return w.atCoords(ctx, place.Latitude, place.Longitude)
		}
	}

	out, _ := w.chain("weather-city",
		fallback.Source[*domain.WeatherSnapshot]{Name: "openweather", Fetch: primary},
		fallback.Source[*domain.WeatherSnapshot]{Name: "open-meteo-geocoded", Fetch: geocoded},
	).Resolve(ctx)
	return out
}

// ByCityOrCoords prefers a direct coordinate lookup when coords is a finite
// [lat, lng] pair and falls back to ByCity otherwise. The result comes
// entirely from one path.
func (w *Weather) ByCityOrCoords(ctx context.Context, city string, coords []float64) *domain.WeatherSnapshot {
	var direct func(context.Context) (*domain.WeatherSnapshot, error)
	if validCoords(coords) && w.src.Forecast != nil {
		direct = func(ctx context.Context) (*domain.WeatherSnapshot, error) {
			return w.atCoords(ctx, coords[0], coords[1])
		}
	}
	byCity := func(ctx context.Context) (*domain.WeatherSnapshot, error) {
		return w.ByCity(ctx, city), nil
	}

	out, _ := w.chain("weather-coords",
		fallback.Source[*domain.WeatherSnapshot]{Name: "open-meteo-coords", Fetch: direct},
		fallback.Source[*domain.WeatherSnapshot]{Name: "by-city", Fetch: byCity},
	).Resolve(ctx)
	return out
}

func (w *Weather) atCoords(ctx context.Context, lat, lng float64) (*domain.WeatherSnapshot, error) {
	snap, err := w.src.Forecast.CurrentByCoords(ctx, lat, lng)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (w *Weather) chain(name string, sources ...fallback.Source[*domain.WeatherSnapshot]) *fallback.Chain[*domain.WeatherSnapshot] {
	c := fallback.New(name, fallback.NotNil[domain.WeatherSnapshot], w.logger, sources...)
	if w.observer != nil {
		c.WithObserver(w.observer)
	}
	return c
}

func validCoords(c []float64) bool {
	if len(c) != 2 {
		return false
	}
	for _, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
