package weather

import (
	"context"
	"encoding/json"
	"fmt"
)

// OneCall is the subset of the OpenWeatherMap One Call response the service uses.
// Hourly and Daily are nil when the upstream omitted them.
type OneCall struct {
	Current        map[string]any    `json:"current"`
	Hourly         []json.RawMessage `json:"hourly"`
	Daily          []json.RawMessage `json:"daily"`
	Alerts         []json.RawMessage `json:"alerts"`
	TimezoneOffset int               `json:"timezone_offset"`
}

// Provider fetches weather data for coordinates.
type Provider interface {
	OneCall(ctx context.Context, lat, lon float64, units string) (OneCall, error)
	AirPollution(ctx context.Context, lat, lon float64) (json.RawMessage, error)
}

// Place is a geocoding match.
type Place struct {
	Lat   float64
	Lon   float64
	Name  string
	State string
}

// ZipLookup resolves postal codes.
type ZipLookup interface {
	// LookupZip returns false when the code is unknown in country.
	LookupZip(ctx context.Context, country, zip string) (Place, bool, error)
}

// CityLookup resolves free-form "City[,State][,Country]" queries.
type CityLookup interface {
	LookupCity(ctx context.Context, query string) (Place, bool, error)
}

// APIError is a non-success response from an upstream API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}
