// Package openmeteo provides key-less geocoding and current conditions from
// Open-Meteo.
package openmeteo

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/country-explorer/internal/adapter/upstream"
	"github.com/couchcryptid/country-explorer/internal/domain"
)

// Default endpoints.
const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
)

// Description is reported for every Open-Meteo snapshot, which carries no
// text summary.
const Description = "Current weather"

// Client implements domain.Geocoder and domain.CoordWeather.
type Client struct {
	httpClient   *http.Client
	geocodingURL string
	forecastURL  string
	logger       *slog.Logger
}

// NewClient creates an Open-Meteo client.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient:   upstream.NewHTTPClient(timeout),
		geocodingURL: DefaultGeocodingURL,
		forecastURL:  DefaultForecastURL,
		logger:       logger,
	}
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// Geocode returns the first match for name only.
func (c *Client) Geocode(ctx context.Context, name string) (domain.Place, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Place{}, false, nil
	}

	v := url.Values{"name": {name}, "count": {"1"}}
	var resp geocodeResponse
	if err := upstream.GetJSON(ctx, c.httpClient, "open-meteo geocoding", c.geocodingURL+"?"+v.Encode(), nil, &resp); err != nil {
		return domain.Place{}, false, err
	}
	if len(resp.Results) == 0 {
		c.logger.Debug("open-meteo geocoding: no match", "name", name)
		return domain.Place{}, false, nil
	}

	r := resp.Results[0]
	return domain.Place{Name: r.Name, Latitude: r.Latitude, Longitude: r.Longitude}, true, nil
}

type forecastResponse struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		Windspeed   float64 `json:"windspeed"`
	} `json:"current_weather"`
}

// CurrentByCoords returns current conditions at lat, lng. Humidity and icon
// are always nil.
func (c *Client) CurrentByCoords(ctx context.Context, lat, lng float64) (domain.WeatherSnapshot, error) {
	v := url.Values{
		"latitude":        {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude":       {strconv.FormatFloat(lng, 'f', -1, 64)},
		"current_weather": {"true"},
	}
	var resp forecastResponse
	if err := upstream.GetJSON(ctx, c.httpClient, "open-meteo forecast", c.forecastURL+"?"+v.Encode(), nil, &resp); err != nil {
		return domain.WeatherSnapshot{}, err
	}
	if resp.CurrentWeather == nil {
		return domain.WeatherSnapshot{}, errors.New("open-meteo forecast: no current_weather")
	}
	return domain.WeatherSnapshot{
		Temp:        resp.CurrentWeather.Temperature,
		Wind:        resp.CurrentWeather.Windspeed,
		Description: Description,
	}, nil
}
