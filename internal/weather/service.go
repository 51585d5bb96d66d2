package weather

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/couchcryptid/radiooperator-site/internal/observability"
)

// Cache stores feature results by key.
type Cache interface {
	Get(feature, key string) (any, bool)
	Put(feature, key string, value any)
}

// Quota admits requests against a daily limit.
type Quota interface {
	// Allow counts one request and reports whether it fits in today's limit.
	Allow(ctx context.Context) (count int, allowed bool)
	Limit() int
}

// UsageRecorder logs who called which endpoint.
type UsageRecorder interface {
	Record(ctx context.Context, endpoint, clientIP string)
}

// Dependencies wires a Service. Usage may be nil.
type Dependencies struct {
	Locator   *Locator
	Provider  Provider
	Cache     Cache
	Quota     Quota
	Usage     UsageRecorder
	APIKeySet bool
	Metrics   *observability.Metrics
	Logger    *slog.Logger
}

// Service answers feature lookups.
type Service struct {
	locator   *Locator
	provider  Provider
	cache     Cache
	quota     Quota
	usage     UsageRecorder
	apiKeySet bool
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewService creates a Service.
func NewService(d Dependencies) *Service {
	return &Service{
		locator:   d.Locator,
		provider:  d.Provider,
		cache:     d.Cache,
		quota:     d.Quota,
		usage:     d.Usage,
		apiKeySet: d.APIKeySet,
		metrics:   d.Metrics,
		logger:    d.Logger,
	}
}

// CheckReadiness reports ready once an API key is configured.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.apiKeySet {
		return ErrMissingAPIKey
	}
	return nil
}

type fetchFunc func(ctx context.Context, loc Location, units string) (any, error)

// Lookup serves feature f for q.
func (s *Service) Lookup(ctx context.Context, f Feature, q Query, clientIP string) (Result, error) {
	var fetch fetchFunc
	switch f {
	case FeatureWeather:
		fetch = s.fetchCurrent
	case FeatureForecast:
		fetch = s.fetchForecast
	case FeatureAlerts:
		fetch = s.fetchAlerts
	case FeatureAirQuality:
		fetch = s.fetchAirQuality
	case FeatureUV:
		fetch = s.fetchUV
	default:
		return Result{}, errors.New("unknown feature " + string(f))
	}
	return s.run(ctx, f, q, clientIP, fetch)
}

func (s *Service) run(ctx context.Context, f Feature, q Query, clientIP string, fetch fetchFunc) (Result, error) {
	if s.usage != nil {
		s.usage.Record(ctx, f.Endpoint(), clientIP)
	}

	count, allowed := s.quota.Allow(ctx)
	s.metrics.RequestsToday.Set(float64(count))
	if !allowed {
		s.metrics.LimitRejections.Inc()
		return Result{}, &LimitError{Limit: s.quota.Limit()}
	}
	if !s.apiKeySet {
		return Result{}, ErrMissingAPIKey
	}

	units := normalizeUnits(q.Units)
	loc, err := s.locator.Locate(ctx, q)
	if err != nil {
		return Result{}, err
	}

	key := cacheKey(f, loc, units)
	if cached, ok := s.cache.Get(string(f), key); ok {
		s.metrics.CacheLookups.WithLabelValues(string(f), "hit").Inc()
		return Result{Data: cached, Location: loc, Cached: true}, nil
	}
	s.metrics.CacheLookups.WithLabelValues(string(f), "miss").Inc()

	data, err := fetch(ctx, loc, units)
	if err != nil {
		s.logger.Warn("feature lookup failed", "feature", f, "lat", loc.Lat, "lon", loc.Lon, "error", err)
		return Result{}, &FeatureError{Feature: f, Err: err}
	}

	s.cache.Put(string(f), key, data)
	return Result{Data: data, Location: loc}, nil
}

// CurrentConditions is the weather feature payload.
type CurrentConditions struct {
	Current        map[string]any `json:"current"`
	Location       Location       `json:"location"`
	TimezoneOffset int            `json:"timezone_offset"`
}

func (s *Service) fetchCurrent(ctx context.Context, loc Location, units string) (any, error) {
	oc, err := s.provider.OneCall(ctx, loc.Lat, loc.Lon, units)
	if err != nil {
		return nil, err
	}
	return CurrentConditions{
		Current:        enhanceCurrent(oc.Current),
		Location:       loc,
		TimezoneOffset: oc.TimezoneOffset,
	}, nil
}

// enhanceCurrent copies current and adds compass direction, mph wind speed,
// and inHg pressure. The upstream values are left untouched.
func enhanceCurrent(current map[string]any) map[string]any {
	out := make(map[string]any, len(current)+4)
	for k, v := range current {
		out[k] = v
	}

	deg, hasDeg := number(current["wind_deg"])
	if hasDeg {
		out["wind_direction_degrees"] = deg
		out["wind_direction_compass"] = Compass(deg)
	} else {
		out["wind_direction_degrees"] = nil
		out["wind_direction_compass"] = nil
	}

	speed, _ := number(current["wind_speed"])
	out["wind_speed_mph"] = MPSToMPH(speed)

	pressure, _ := number(current["pressure"])
	out["pressure_inhg"] = HPaToInHg(pressure)

	return out
}

// Forecast is the forecast feature payload.
type Forecast struct {
	Daily          []json.RawMessage `json:"daily"`
	Hourly         []json.RawMessage `json:"hourly"`
	Location       Location          `json:"location"`
	TimezoneOffset int               `json:"timezone_offset"`
}

func (s *Service) fetchForecast(ctx context.Context, loc Location, units string) (any, error) {
	oc, err := s.provider.OneCall(ctx, loc.Lat, loc.Lon, units)
	if err != nil {
		return nil, err
	}
	if oc.Daily == nil || oc.Hourly == nil {
		return nil, ErrForecastMissing
	}
	return Forecast{
		Daily:          oc.Daily,
		Hourly:         oc.Hourly,
		Location:       loc,
		TimezoneOffset: oc.TimezoneOffset,
	}, nil
}

// Alerts is the alerts feature payload.
type Alerts struct {
	Alerts []json.RawMessage `json:"alerts"`
}

func (s *Service) fetchAlerts(ctx context.Context, loc Location, units string) (any, error) {
	oc, err := s.provider.OneCall(ctx, loc.Lat, loc.Lon, units)
	if err != nil {
		return nil, err
	}
	alerts := oc.Alerts
	if alerts == nil {
		alerts = []json.RawMessage{}
	}
	return Alerts{Alerts: alerts}, nil
}

func (s *Service) fetchAirQuality(ctx context.Context, loc Location, _ string) (any, error) {
	return s.provider.AirPollution(ctx, loc.Lat, loc.Lon)
}

// UVIndex is the uv feature payload.
type UVIndex struct {
	UVI      float64  `json:"uvi"`
	Sunrise  any      `json:"sunrise"`
	Sunset   any      `json:"sunset"`
	Clouds   any      `json:"clouds"`
	Humidity any      `json:"humidity"`
	Pressure any      `json:"pressure"`
	Location Location `json:"location"`
}

// UV values do not depend on units, so the upstream default is requested.
func (s *Service) fetchUV(ctx context.Context, loc Location, _ string) (any, error) {
	oc, err := s.provider.OneCall(ctx, loc.Lat, loc.Lon, "")
	if err != nil {
		return nil, err
	}
	uvi, _ := number(oc.Current["uvi"])
	return UVIndex{
		UVI:      uvi,
		Sunrise:  oc.Current["sunrise"],
		Sunset:   oc.Current["sunset"],
		Clouds:   oc.Current["clouds"],
		Humidity: oc.Current["humidity"],
		Pressure: oc.Current["pressure"],
		Location: loc,
	}, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
