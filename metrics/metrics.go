// Package metrics exposes Prometheus collectors for solve activity.
//
// Every Recorder owns a private registry, so several services (or tests) in
// one process never collide on metric names.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "crucible"

// Solve outcomes.
const (
	OutcomeFound       = "found"
	OutcomeUnreachable = "unreachable"
	OutcomeError       = "error"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Recorder groups the collectors and their registry.
type Recorder struct {
	registry *prometheus.Registry

	solves   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	settled  *prometheus.HistogramVec
	lookups  *prometheus.CounterVec
}

// New creates a Recorder with all collectors registered. Process and Go
// runtime collectors are included when withRuntime is true.
func New(withRuntime bool) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "solves_total",
				Help:      "Solved (grid, policy) pairs by outcome.",
			},
			[]string{"policy", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "solve_duration_seconds",
				Help:      "Wall time of one shortest-path search.",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
			},
			[]string{"policy"},
		),
		settled: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "states_settled",
				Help:      "Augmented states settled per search.",
				Buckets:   prometheus.ExponentialBuckets(16, 4, 10),
			},
			[]string{"policy"},
		),
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Answer cache lookups by result.",
			},
			[]string{"result"},
		),
	}

	r.registry.MustRegister(r.solves, r.duration, r.settled, r.lookups)
	if withRuntime {
		r.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return r
}

// ObserveSolve records one finished search.
func (r *Recorder) ObserveSolve(policy, outcome string, elapsed time.Duration, settled int) {
	if r == nil {
		return
	}
	r.solves.WithLabelValues(policy, outcome).Inc()
	r.duration.WithLabelValues(policy).Observe(elapsed.Seconds())
	if settled > 0 {
		r.settled.WithLabelValues(policy).Observe(float64(settled))
	}
}

// ObserveCache records one cache lookup.
func (r *Recorder) ObserveCache(result string) {
	if r == nil {
		return
	}
	r.lookups.WithLabelValues(result).Inc()
}

// Registry returns the private registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
