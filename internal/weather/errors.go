package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned when no OpenWeatherMap key is configured.
	ErrMissingAPIKey = errors.New("API key not set")
	// ErrLocationNotFound is returned when a query resolves to no coordinates.
	ErrLocationNotFound = errors.New("Location not found") //nolint:staticcheck // user-facing message
	// ErrForecastMissing is returned when the upstream omits daily or hourly data.
	ErrForecastMissing = errors.New("Forecast data missing from API response") //nolint:staticcheck // user-facing message
)

// LimitError is returned once the daily request quota is used up.
type LimitError struct {
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("API daily limit of %d reached. Try again tomorrow.", e.Limit)
}

// FeatureError is an upstream failure while serving a feature.
type FeatureError struct {
	Feature Feature
	Err     error
}

func (e *FeatureError) Error() string {
	var apiErr *APIError
	if errors.As(e.Err, &apiErr) {
		return fmt.Sprintf("%s API error: %s", e.Feature.Label(), apiErr.Message)
	}
	if errors.Is(e.Err, ErrForecastMissing) {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s API request failed: %v", e.Feature.Label(), e.Err)
}

func (e *FeatureError) Unwrap() error { return e.Err }
