package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "radiooperator"

// Metrics holds the Prometheus counters, histograms, and gauges for the site
// and the weather service.
type Metrics struct {
	// Homepage metrics.
	PageViews        prometheus.Counter
	PageRenderErrors prometheus.Counter

	// Weather API metrics.
	APIRequests      *prometheus.CounterVec   // labels: endpoint, outcome={success,cached,error}
	CacheLookups     *prometheus.CounterVec   // labels: feature, result={hit,miss}
	UpstreamDuration *prometheus.HistogramVec // labels: provider={openweathermap,zippopotam,ipapi}
	LimitRejections  prometheus.Counter
	RequestsToday    prometheus.Gauge

	// Usage event publishing.
	UsageEventsPublished prometheus.Counter
	UsagePublishErrors   prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.PageViews,
		m.PageRenderErrors,
		m.APIRequests,
		m.CacheLookups,
		m.UpstreamDuration,
		m.LimitRejections,
		m.RequestsToday,
		m.UsageEventsPublished,
		m.UsagePublishErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PageViews: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_views_total",
			Help:      "Total homepage renders served.",
		}),
		PageRenderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_render_errors_total",
			Help:      "Total homepage template failures.",
		}),
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_api_requests_total",
			Help:      "Weather API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_cache_lookups_total",
			Help:      "Weather cache lookups by feature and result.",
		}, []string{"feature", "result"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		LimitRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_api_limit_rejections_total",
			Help:      "Requests refused because the daily API limit was reached.",
		}),
		RequestsToday: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "weather_api_requests_today",
			Help:      "Upstream-backed requests counted against today's limit.",
		}),
		UsageEventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "usage_events_published_total",
			Help:      "Usage log entries published to Kafka.",
		}),
		UsagePublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "usage_publish_errors_total",
			Help:      "Usage log entries that failed to publish.",
		}),
	}
}
