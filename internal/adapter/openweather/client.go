// Package openweather reads current conditions from the credentialed
// OpenWeather API.
package openweather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/country-explorer/internal/adapter/upstream"
	"github.com/couchcryptid/country-explorer/internal/domain"
)

// DefaultBaseURL is the OpenWeather current-weather endpoint.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// ErrNoKey is returned when the client has no API key.
var ErrNoKey = errors.New("openweather: no API key configured")

// Client implements domain.CityWeather.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// NewClient creates an OpenWeather client.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: upstream.NewHTTPClient(timeout),
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Configured reports whether the client has a key.
func (c *Client) Configured() bool { return c.apiKey != "" }

type currentResponse struct {
	Main struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// CurrentByCity returns metric current conditions for city.
func (c *Client) CurrentByCity(ctx context.Context, city string) (domain.WeatherSnapshot, error) {
	if !c.Configured() {
		return domain.WeatherSnapshot{}, ErrNoKey
	}
	city = strings.TrimSpace(city)
	if city == "" {
		return domain.WeatherSnapshot{}, errors.New("openweather: empty city")
	}

	v := url.Values{"q": {city}, "appid": {c.apiKey}, "units": {"metric"}}
	var resp currentResponse
	if err := upstream.GetJSON(ctx, c.httpClient, "openweather", c.baseURL+"?"+v.Encode(), nil, &resp); err != nil {
		return domain.WeatherSnapshot{}, err
	}
	if resp.Main.Temp == nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("openweather: no temperature for %q", city)
	}

	snap := domain.WeatherSnapshot{
		Temp:        *resp.Main.Temp,
		Humidity:    resp.Main.Humidity,
		Wind:        resp.Wind.Speed,
		Description: "—",
	}
	if len(resp.Weather) > 0 {
		if d := resp.Weather[0].Description; d != "" {
			snap.Description = d
		}
		if icon := resp.Weather[0].Icon; icon != "" {
			snap.Icon = &icon
		}
	}
	c.logger.Debug("openweather response", "city", city, "temp", snap.Temp)
	return snap, nil
}
