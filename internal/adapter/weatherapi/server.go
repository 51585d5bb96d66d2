// Package weatherapi serves the Weather Alert Pro JSON API and its usage
// dashboard.
package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/radiooperator-site/internal/adapter/cache"
	"github.com/couchcryptid/radiooperator-site/internal/observability"
	"github.com/couchcryptid/radiooperator-site/internal/usage"
	"github.com/couchcryptid/radiooperator-site/internal/weather"
)

const maxBodyBytes = 64 << 10

// WeatherService answers feature lookups.
type WeatherService interface {
	Lookup(ctx context.Context, f weather.Feature, q weather.Query, clientIP string) (weather.Result, error)
	CheckReadiness(ctx context.Context) error
}

// UsageReporter exposes the daily counter and usage log.
type UsageReporter interface {
	Snapshot() usage.Snapshot
}

// CacheReporter exposes the live cache contents.
type CacheReporter interface {
	Snapshot() []cache.Entry
}

// Server exposes the feature endpoints, the usage report, and health,
// readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	service    WeatherService
	usage      UsageReporter
	cache      CacheReporter
	metrics    *observability.Metrics
	logger     *slog.Logger

	trustProxy bool
}

// NewServer creates the weather API server. With trustProxy set, client
// addresses come from the first X-Forwarded-For hop.
func NewServer(addr string, trustProxy bool, service WeatherService, usageReport UsageReporter, cacheReport CacheReporter, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		usage:   usageReport,
		cache:   cacheReport,
		metrics: metrics,
		logger:  logger,

		trustProxy: trustProxy,
	}

	for _, f := range weather.Features {
		mux.HandleFunc("POST "+f.Endpoint(), s.handleFeature(f))
	}
	mux.HandleFunc("GET /api/usage", s.handleUsage)
	mux.HandleFunc("GET /api/usage/html", s.handleUsageHTML)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(service))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("weather api starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type featureResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Cached  bool   `json:"cached"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleFeature(f weather.Feature) http.HandlerFunc {
	endpoint := f.Endpoint()
	return func(w http.ResponseWriter, r *http.Request) {
		var q weather.Query
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
		if err := dec.Decode(&q); err != nil && !errors.Is(err, io.EOF) {
			s.metrics.APIRequests.WithLabelValues(endpoint, "error").Inc()
			writeJSON(w, http.StatusBadRequest, featureResponse{Error: "invalid request body"})
			return
		}

		res, err := s.service.Lookup(r.Context(), f, q, clientIP(r, s.trustProxy))
		if err != nil {
			s.metrics.APIRequests.WithLabelValues(endpoint, "error").Inc()
			status := statusFor(err)
			if status == http.StatusInternalServerError {
				s.logger.Error("feature request failed", "endpoint", endpoint, "error", err)
			}
			writeJSON(w, status, featureResponse{Error: err.Error()})
			return
		}

		outcome := "success"
		if res.Cached {
			outcome = "cached"
		}
		s.metrics.APIRequests.WithLabelValues(endpoint, outcome).Inc()
		writeJSON(w, http.StatusOK, featureResponse{
			Success: true,
			Data:    res.Data,
			City:    res.Location.City,
			State:   res.Location.State,
			Country: res.Location.Country,
			Cached:  res.Cached,
		})
	}
}

func statusFor(err error) int {
	var limitErr *weather.LimitError
	var featureErr *weather.FeatureError
	switch {
	case errors.As(err, &limitErr):
		return http.StatusTooManyRequests
	case errors.Is(err, weather.ErrLocationNotFound):
		return http.StatusNotFound
	case errors.Is(err, weather.ErrMissingAPIKey):
		return http.StatusServiceUnavailable
	case errors.As(err, &featureErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// clientIP returns the peer address, or the first X-Forwarded-For hop when
// the proxy in front is trusted.
func clientIP(r *http.Request, trustProxy bool) string {
	if fwd := r.Header.Get("X-Forwarded-For"); trustProxy && fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type usageResponse struct {
	Date             string                       `json:"date"`
	APIRequestsToday int                          `json:"api_requests_today"`
	APIDailyLimit    int                          `json:"api_daily_limit"`
	Cache            map[string]map[string][2]any `json:"cache"`
}

func (s *Server) handleUsage(w http.ResponseWriter, _ *http.Request) {
	snap := s.usage.Snapshot()
	contents := make(map[string]map[string][2]any)
	for _, e := range s.cache.Snapshot() {
		byKey, ok := contents[e.Feature]
		if !ok {
			byKey = make(map[string][2]any)
			contents[e.Feature] = byKey
		}
		byKey[e.Key] = [2]any{e.StoredAt.Unix(), e.Value}
	}
	writeJSON(w, http.StatusOK, usageResponse{
		Date:             snap.Date,
		APIRequestsToday: snap.Count,
		APIDailyLimit:    snap.Limit,
		Cache:            contents,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client went away
}
