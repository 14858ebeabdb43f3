// Package metrics exposes search and content counters on a private
// Prometheus registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Search outcomes.
const (
	OutcomeOK         = "ok"
	OutcomeEmptyQuery = "empty_query"
	OutcomeError      = "error"
)

// Metrics holds the collectors of one server instance.
type Metrics struct {
	registry *prometheus.Registry

	searchRequests *prometheus.CounterVec
	searchDuration prometheus.Histogram
	searchResults  prometheus.Histogram
	documents      prometheus.Gauge
	reloads        *prometheus.CounterVec
}

// New creates the collectors and registers them with Go runtime metrics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		searchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "teasite_search_requests_total",
			Help: "Search requests by outcome.",
		}, []string{"outcome"}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "teasite_search_duration_seconds",
			Help:    "Time spent answering search requests.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "teasite_search_results",
			Help:    "Number of results returned per search.",
			Buckets: prometheus.LinearBuckets(0, 2, 6),
		}),
		documents: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "teasite_content_documents",
			Help: "Documents in the current content collection.",
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "teasite_content_reloads_total",
			Help: "Content reloads by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		m.searchRequests,
		m.searchDuration,
		m.searchResults,
		m.documents,
		m.reloads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveSearch records one search request.
func (m *Metrics) ObserveSearch(outcome string, results int, elapsed time.Duration) {
	m.searchRequests.WithLabelValues(outcome).Inc()
	m.searchDuration.Observe(elapsed.Seconds())
	if outcome == OutcomeOK {
		m.searchResults.Observe(float64(results))
	}
}

// ObserveReload records a content reload and the resulting document count.
func (m *Metrics) ObserveReload(err error, documents int) {
	if err != nil {
		m.reloads.WithLabelValues(OutcomeError).Inc()
		return
	}
	m.reloads.WithLabelValues(OutcomeOK).Inc()
	m.documents.Set(float64(documents))
}

// SetDocuments records the size of the current collection.
func (m *Metrics) SetDocuments(n int) {
	m.documents.Set(float64(n))
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
