package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec

	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
	CacheEntries     prometheus.Gauge

	RateDelayedTotal prometheus.Counter
	RateDelaySeconds prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_gateway_requests_total",
				Help: "Total number of search requests processed",
			},
			[]string{"kind", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_gateway_request_duration_seconds",
				Help:    "Search request duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"kind"},
		),
		RequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "search_gateway_requests_in_flight",
				Help: "Number of search requests currently being processed",
			},
		),

		UpstreamRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_gateway_upstream_requests_total",
				Help: "Total number of upstream provider requests",
			},
			[]string{"kind", "status"},
		),
		UpstreamRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_gateway_upstream_request_duration_seconds",
				Help:    "Upstream request duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"kind"},
		),

		CacheHitsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "search_gateway_cache_hits_total",
				Help: "Total number of cache hits",
			},
		),
		CacheMissesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "search_gateway_cache_misses_total",
				Help: "Total number of cache misses",
			},
		),
		CacheEntries: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "search_gateway_cache_entries",
				Help: "Current number of cache entries",
			},
		),

		RateDelayedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "search_gateway_rate_delayed_total",
				Help: "Total number of upstream calls delayed by the rate limiter",
			},
		),
		RateDelaySeconds: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_gateway_rate_delay_seconds",
				Help:    "Time spent waiting for rate limiter admission",
				Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60},
			},
		),
	}

	return m
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func (m *Metrics) RecordRequest(kind, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(kind, status).Inc()
	m.RequestDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func (m *Metrics) RecordUpstream(kind, status string, duration time.Duration) {
	m.UpstreamRequestsTotal.WithLabelValues(kind, status).Inc()
	m.UpstreamRequestDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func (m *Metrics) RecordCacheHit() {
	m.CacheHitsTotal.Inc()
}

func (m *Metrics) RecordCacheMiss() {
	m.CacheMissesTotal.Inc()
}

func (m *Metrics) SetCacheEntries(count float64) {
	m.CacheEntries.Set(count)
}

func (m *Metrics) RecordRateDelay(duration time.Duration) {
	if duration > 0 {
		m.RateDelayedTotal.Inc()
	}
	m.RateDelaySeconds.Observe(duration.Seconds())
}

func (m *Metrics) IncRequestsInFlight() {
	m.RequestsInFlight.Inc()
}

func (m *Metrics) DecRequestsInFlight() {
	m.RequestsInFlight.Dec()
}
