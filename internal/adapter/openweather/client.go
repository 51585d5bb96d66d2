package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/radiooperator-site/internal/observability"
	"github.com/couchcryptid/radiooperator-site/internal/weather"
)

const (
	defaultBaseURL = "https://api.openweathermap.org"
	providerLabel  = "openweathermap"
)

// Client implements weather.Provider and weather.CityLookup using the
// OpenWeatherMap One Call, Air Pollution, and direct geocoding APIs.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an OpenWeatherMap client.
func NewClient(apiKey string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: defaultBaseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// LookupCity resolves a "city[,state][,country]" query to the first match.
func (c *Client) LookupCity(ctx context.Context, query string) (weather.Place, bool, error) {
	params := url.Values{
		"q":     {query},
		"limit": {"1"},
		"appid": {c.apiKey},
	}

	var matches []geocodeMatch
	if err := c.get(ctx, "/geo/1.0/direct", params, &matches); err != nil {
		return weather.Place{}, false, err
	}
	if len(matches) == 0 {
		c.logger.Debug("city not found", "query", query)
		return weather.Place{}, false, nil
	}

	m := matches[0]
	return weather.Place{Lat: m.Lat, Lon: m.Lon, Name: m.Name, State: m.State}, true, nil
}

// OneCall fetches current conditions, forecasts, and alerts. An empty units
// value requests the upstream default.
func (c *Client) OneCall(ctx context.Context, lat, lon float64, units string) (weather.OneCall, error) {
	params := coordParams(lat, lon, c.apiKey)
	if units != "" {
		params.Set("units", units)
	}

	var resp oneCallResponse
	if err := c.get(ctx, "/data/3.0/onecall", params, &resp); err != nil {
		return weather.OneCall{}, err
	}
	return weather.OneCall{
		Current:        resp.Current,
		Hourly:         resp.Hourly,
		Daily:          resp.Daily,
		Alerts:         resp.Alerts,
		TimezoneOffset: resp.TimezoneOffset,
	}, nil
}

// AirPollution fetches the air quality index payload unchanged.
func (c *Client) AirPollution(ctx context.Context, lat, lon float64) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/data/2.5/air_pollution", coordParams(lat, lon, c.apiKey), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func coordParams(lat, lon float64, apiKey string) url.Values {
	return url.Values{
		"lat":   {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(lon, 'f', -1, 64)},
		"appid": {apiKey},
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues(providerLabel).Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("%s request: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &weather.APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// errorMessage prefers the "message" field of an error body and falls back
// to the raw body text.
func errorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "empty error response"
	}
	return msg
}

// OpenWeatherMap API response types.

type geocodeMatch struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}

type oneCallResponse struct {
	Current        map[string]any    `json:"current"`
	Hourly         []json.RawMessage `json:"hourly"`
	Daily          []json.RawMessage `json:"daily"`
	Alerts         []json.RawMessage `json:"alerts"`
	TimezoneOffset int               `json:"timezone_offset"`
}
