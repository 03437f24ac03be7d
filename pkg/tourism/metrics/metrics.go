// Package metrics exports fetch and fallback counters for the tourism
// resolver as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendant/simple-tourism/pkg/tourism"
)

const namespace = "tourism"

// Recorder implements tourism.Recorder on a Prometheus registry
type Recorder struct {
	registry *prometheus.Registry

	FetchTotal      *prometheus.CounterVec
	FetchDuration   *prometheus.HistogramVec
	ResolutionTotal *prometheus.CounterVec
}

// New registers the metrics on a fresh registry. Each Recorder owns its
// registry so several can coexist in one process.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		FetchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Collection fetches by outcome (success, empty, unavailable, failed).",
		}, []string{"collection", "outcome"}),
		FetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time spent probing and reading a collection.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collection"}),
		ResolutionTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolution_total",
			Help:      "Resolved sections by source and reason.",
		}, []string{"section", "source", "reason"}),
	}
}

// ObserveFetch records one collection fetch
func (r *Recorder) ObserveFetch(collection tourism.CollectionName, outcome string, elapsed time.Duration) {
	r.FetchTotal.WithLabelValues(string(collection), outcome).Inc()
	r.FetchDuration.WithLabelValues(string(collection)).Observe(elapsed.Seconds())
}

// ObserveResolution records one resolved section
func (r *Recorder) ObserveResolution(section tourism.Section, outcome tourism.Outcome) {
	r.ResolutionTotal.WithLabelValues(string(section), string(outcome.Source), string(outcome.Reason)).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
