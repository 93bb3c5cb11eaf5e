package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "country_explorer"

// Metrics holds the Prometheus counters and histograms for the fallback
// chains, the response cache, and the proxy's HTTP surface.
type Metrics struct {
	// Fallback chain metrics.
	SourceAttempts *prometheus.CounterVec   // labels: chain, source, outcome={success,empty,error,skipped}
	SourceDuration *prometheus.HistogramVec // labels: chain, source
	ChainExhausted *prometheus.CounterVec   // labels: chain

	// Cache metrics.
	CacheLookups *prometheus.CounterVec // labels: cache, result={hit,miss}

	// Refresher metrics.
	RefreshRuns      *prometheus.CounterVec // labels: outcome={success,error}
	RefreshDuration  prometheus.Histogram
	RefresherRunning prometheus.Gauge

	// HTTP metrics.
	HTTPRequests *prometheus.CounterVec // labels: route, status
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SourceAttempts,
		m.SourceDuration,
		m.ChainExhausted,
		m.CacheLookups,
		m.RefreshRuns,
		m.RefreshDuration,
		m.RefresherRunning,
		m.HTTPRequests,
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
		SourceAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_attempts_total",
			Help:      "Fallback source attempts by chain, source, and outcome.",
		}, []string{"chain", "source", "outcome"}),
		SourceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_duration_seconds",
			Help:      "Duration of a single fallback source attempt.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15},
		}, []string{"chain", "source"}),
		ChainExhausted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chain_exhausted_total",
			Help:      "Fallback chains where every source failed.",
		}, []string{"chain"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_total",
			Help:      "Response cache lookups by cache and result.",
		}, []string{"cache", "result"}),
		RefreshRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_runs_total",
			Help:      "Country list refreshes by outcome.",
		}, []string{"outcome"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a country list refresh.",
			Buckets:   prometheus.DefBuckets,
		}),
		RefresherRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "refresher_running",
			Help:      "Whether the country list refresher is running (1 = running, 0 = stopped).",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Proxy HTTP requests by route pattern and status code.",
		}, []string{"route", "status"}),
	}
}

// ObserveAttempt records one fallback source attempt.
func (m *Metrics) ObserveAttempt(chain, source, outcome string, elapsed time.Duration) {
	m.SourceAttempts.WithLabelValues(chain, source, outcome).Inc()
	if outcome != "skipped" {
		m.SourceDuration.WithLabelValues(chain, source).Observe(elapsed.Seconds())
	}
}

// ObserveExhausted records a chain in which no source succeeded.
func (m *Metrics) ObserveExhausted(chain string) {
	m.ChainExhausted.WithLabelValues(chain).Inc()
}

// ObserveCache records a cache hit or miss.
func (m *Metrics) ObserveCache(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(cache, result).Inc()
}

// ObserveRefresh records one country list refresh.
func (m *Metrics) ObserveRefresh(outcome string, elapsed time.Duration) {
	m.RefreshRuns.WithLabelValues(outcome).Inc()
	m.RefreshDuration.Observe(elapsed.Seconds())
}

// SetRefresherRunning flips the refresher_running gauge.
func (m *Metrics) SetRefresherRunning(running bool) {
	if running {
		m.RefresherRunning.Set(1)
		return
	}
	m.RefresherRunning.Set(0)
}
