// Package metrics owns the Prometheus collectors for the service. A single
// *Metrics satisfies the observer interfaces declared by estimate, ai and
// store, so those packages never import Prometheus themselves.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nyashahama/market-entry-advisor/internal/estimate"
)

const namespace = "market_entry"

// Metrics holds every collector. Build it with New; the zero value panics.
type Metrics struct {
	reg *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	estimates     *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
	completions   *prometheus.CounterVec
	completionDur *prometheus.HistogramVec

	sessions prometheus.Counter
	entries  prometheus.Counter

	authRejected prometheus.Counter
	rateLimited  prometheus.Counter
}

// New registers all collectors, plus the Go and process collectors, on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,

		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),

		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),

		estimates: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimates_total",
			Help:      "Analyses served, by kind, source and whether the fallback answered.",
		}, []string{"kind", "source", "fallback"}),

		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimate_cache_lookups_total",
			Help:      "Estimate cache lookups by kind and result.",
		}, []string{"kind", "result"}),

		completions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_completions_total",
			Help:      "Language model calls by provider and status.",
		}, []string{"provider", "status"}),

		completionDur: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_completion_duration_seconds",
			Help:      "Language model call latency by provider.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}, []string{"provider"}),

		sessions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Chat sessions created.",
		}),

		entries: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_entries_total",
			Help:      "Chat turns recorded across all sessions.",
		}),

		authRejected: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_rejected_total",
			Help:      "Requests rejected for a missing or invalid bearer token.",
		}),

		rateLimited: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-token rate limiter.",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// ObserveHTTP records one finished request. route is the chi route pattern,
// not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(route, method string, status int, took time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(took.Seconds())
}

// EstimateServed implements estimate.Observer.
func (m *Metrics) EstimateServed(kind string, source estimate.Source, fellBack bool) {
	m.estimates.WithLabelValues(kind, string(source), strconv.FormatBool(fellBack)).Inc()
}

// CacheLookup implements estimate.Observer.
func (m *Metrics) CacheLookup(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(kind, result).Inc()
}

// ObserveCompletion implements ai.Observer.
func (m *Metrics) ObserveCompletion(provider string, took time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.completions.WithLabelValues(provider, status).Inc()
	m.completionDur.WithLabelValues(provider).Observe(took.Seconds())
}

// SessionStarted implements store.Observer.
func (m *Metrics) SessionStarted() { m.sessions.Inc() }

// EntryAppended implements store.Observer.
func (m *Metrics) EntryAppended() { m.entries.Inc() }

func (m *Metrics) AuthRejected() { m.authRejected.Inc() }

func (m *Metrics) RateLimited() { m.rateLimited.Inc() }
