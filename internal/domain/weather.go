package domain

// WeatherSnapshot is the current conditions for one place. It is never
// persisted.
type WeatherSnapshot struct {
	Temp        float64  `json:"temp"`
	Humidity    *float64 `json:"humidity"`
	Wind        float64  `json:"wind"`
	Description string   `json:"description"`
	Icon        *string  `json:"icon"`
}

// Place is a geocoded location.
type Place struct {
	Name      string
	Latitude  float64
	Longitude float64
}
