// Package zippopotam resolves postal codes with the Zippopotam.us API.
package zippopotam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/radiooperator-site/internal/observability"
	"github.com/couchcryptid/radiooperator-site/internal/weather"
)

// Client implements weather.ZipLookup.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Zippopotam.us client.
func NewClient(timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://api.zippopotam.us",
		metrics:    metrics,
		logger:     logger,
	}
}

// LookupZip returns the first place registered for zip in country.
// Unknown codes report ok=false without an error.
func (c *Client) LookupZip(ctx context.Context, country, zip string) (weather.Place, bool, error) {
	u := fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(country), url.PathEscape(zip))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return weather.Place{}, false, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues("zippopotam").Observe(time.Since(start).Seconds())
	if err != nil {
		return weather.Place{}, false, fmt.Errorf("zip lookup request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.logger.Debug("zip not found", "country", country, "zip", zip)
		return weather.Place{}, false, nil
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return weather.Place{}, false, &weather.APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var zr response
	if err := json.NewDecoder(resp.Body).Decode(&zr); err != nil {
		return weather.Place{}, false, fmt.Errorf("decode response: %w", err)
	}
	if len(zr.Places) == 0 {
		return weather.Place{}, false, nil
	}

	p := zr.Places[0]
	lat, err := strconv.ParseFloat(p.Latitude, 64)
	if err != nil {
		return weather.Place{}, false, fmt.Errorf("parse latitude %q: %w", p.Latitude, err)
	}
	lon, err := strconv.ParseFloat(p.Longitude, 64)
	if err != nil {
		return weather.Place{}, false, fmt.Errorf("parse longitude %q: %w", p.Longitude, err)
	}
	return weather.Place{Lat: lat, Lon: lon, Name: p.PlaceName, State: p.StateAbbreviation}, true, nil
}

type response struct {
	PostCode string  `json:"post code"`
	Country  string  `json:"country"`
	Places   []place `json:"places"`
}

// Coordinates arrive as strings.
type place struct {
	PlaceName         string `json:"place name"`
	Longitude         string `json:"longitude"`
	Latitude          string `json:"latitude"`
	State             string `json:"state"`
	StateAbbreviation string `json:"state abbreviation"`
}
