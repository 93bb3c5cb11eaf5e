package domain

import "context"

// Geocoder resolves a city name to coordinates.
type Geocoder interface {
	// Geocode returns the first match for name. A zero Place and false mean
	// the provider knows no such place.
	Geocode(ctx context.Context, name string) (Place, bool, error)
}

// CityWeather reports current conditions by city name.
type CityWeather interface {
	CurrentByCity(ctx context.Context, city string) (WeatherSnapshot, error)
}

// CoordWeather reports current conditions by coordinates.
type CoordWeather interface {
	CurrentByCoords(ctx context.Context, lat, lng float64) (WeatherSnapshot, error)
}
