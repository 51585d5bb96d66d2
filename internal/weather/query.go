package weather

import (
	"strconv"
	"strings"
)

// DefaultUnits is used when a query does not name a unit system.
const DefaultUnits = "imperial"

// Feature identifies one lookup offered by the service.
type Feature string

const (
	FeatureWeather    Feature = "weather"
	FeatureForecast   Feature = "forecast"
	FeatureAlerts     Feature = "alerts"
	FeatureAirQuality Feature = "air_quality"
	FeatureUV         Feature = "uv"
)

// Features lists every feature in display order.
var Features = []Feature{FeatureWeather, FeatureForecast, FeatureAlerts, FeatureAirQuality, FeatureUV}

// Endpoint returns the API path serving f.
func (f Feature) Endpoint() string { return "/api/" + string(f) }

// Label is the human-readable name used in error messages.
func (f Feature) Label() string {
	switch f {
	case FeatureWeather:
		return "Weather"
	case FeatureForecast:
		return "Forecast"
	case FeatureAlerts:
		return "Alerts"
	case FeatureAirQuality:
		return "Air Quality"
	case FeatureUV:
		return "UV"
	default:
		return string(f)
	}
}

// keyedByUnits reports whether results for f depend on the unit system.
func (f Feature) keyedByUnits() bool {
	return f == FeatureWeather || f == FeatureForecast || f == FeatureAlerts
}

// Query is the request body accepted by every feature endpoint.
type Query struct {
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
	Units   string `json:"units"`
}

// Location is a resolved query.
type Location struct {
	City    string  `json:"city"`
	State   string  `json:"state"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
}

// Result is the outcome of a feature lookup.
type Result struct {
	Data     any
	Location Location
	Cached   bool
}

func cacheKey(f Feature, loc Location, units string) string {
	key := strconv.FormatFloat(loc.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(loc.Lon, 'f', -1, 64)
	if f.keyedByUnits() {
		key += "," + units
	}
	return key
}

func normalizeUnits(units string) string {
	units = strings.TrimSpace(units)
	if units == "" {
		return DefaultUnits
	}
	return units
}
