package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lookup outcomes recorded by ObserveLookup.
const (
	OutcomeFound       = "found"
	OutcomeNotFound    = "not_found"
	OutcomeError       = "error"
	OutcomeConfigError = "config_error"
)

// Metrics holds the collectors of one App. Each App gets its own registry so
// tests can start several apps in one process.
type Metrics struct {
	Registry *prometheus.Registry

	lookups       *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	httpRequests  *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "namecard",
				Subsystem: "cards",
				Name:      "lookups_total",
				Help:      "Card lookups by outcome.",
			},
			[]string{"outcome"},
		),
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "namecard",
				Subsystem: "store",
				Name:      "query_duration_seconds",
				Help:      "Duration of card store queries.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
			},
			[]string{"backend"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "namecard",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),
	}

	m.Registry.MustRegister(
		m.lookups,
		m.queryDuration,
		m.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveLookup(outcome string) {
	m.lookups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveQuery(backend string, d time.Duration) {
	m.queryDuration.WithLabelValues(backend).Observe(d.Seconds())
}

func (m *Metrics) ObserveRequest(method, route, status string) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
