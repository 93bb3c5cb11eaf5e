package resolver

import (
	"log/slog"
	"time"

	"github.com/couchcryptid/country-explorer/internal/adapter/dataset"
	"github.com/couchcryptid/country-explorer/internal/adapter/mirror"
	"github.com/couchcryptid/country-explorer/internal/adapter/newsapi"
	"github.com/couchcryptid/country-explorer/internal/adapter/openmeteo"
	"github.com/couchcryptid/country-explorer/internal/adapter/openweather"
	"github.com/couchcryptid/country-explorer/internal/adapter/restcountries"
	"github.com/couchcryptid/country-explorer/internal/adapter/rss"
)

// DefaultCountrySources wires the public country providers: REST Countries,
// the default mirrors, the packaged dataset at datasetPath (skipped when
// empty) and the bundled file. The proxy source is left for the caller.
func DefaultCountrySources(datasetPath string, timeout time.Duration, logger *slog.Logger) CountrySources {
	src := CountrySources{
		API:     restcountries.NewClient(timeout, logger),
		Bundled: dataset.NewBundled(),
	}
	if datasetPath != "" {
		src.Packaged = dataset.NewFile(datasetPath, logger)
	}
	for _, m := range mirror.NewDefaultClients(timeout, logger) {
		src.Mirrors = append(src.Mirrors, NamedList{Name: m.Name(), List: m})
	}
	return src
}

// DefaultWeatherSources wires Open-Meteo, plus OpenWeather when apiKey is
// set.
func DefaultWeatherSources(apiKey string, timeout time.Duration, logger *slog.Logger) WeatherSources {
	meteo := openmeteo.NewClient(timeout, logger)
	src := WeatherSources{Geocoder: meteo, Forecast: meteo}
	if apiKey != "" {
		src.Primary = openweather.NewClient(apiKey, timeout, logger)
	}
	return src
}

// DefaultNewsSources wires Google News RSS, plus NewsAPI when apiKey is set.
// language restricts NewsAPI results and may be empty.
func DefaultNewsSources(apiKey, language string, timeout time.Duration, logger *slog.Logger) NewsSources {
	src := NewsSources{RSS: rss.NewClient(timeout, logger)}
	if apiKey != "" {
		client := newsapi.NewClient(apiKey, language, timeout, logger)
		src.Headlines, src.Search = client, client
	}
	return src
}
