// Package metrics exposes the Prometheus collectors of the API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	breedLookups *prometheus.CounterVec
}

// MustNew constructs the collectors and registers them with reg. Tests pass a
// fresh prometheus.NewRegistry() to avoid duplicate registration panics.
func MustNew(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "spycats",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route, method and status.",
			},
			[]string{"route", "method", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "spycats",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by route and method.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		breedLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "spycats",
				Subsystem: "breeds",
				Name:      "lookups_total",
				Help:      "Breed classifier lookups by outcome.",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(m.requests, m.latency, m.breedLookups)
	return m
}

// ObserveRequest is safe to call on a nil *Metrics.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// BreedLookup matches breeds.Observer. Safe to call on a nil *Metrics.
func (m *Metrics) BreedLookup(outcome string) {
	if m == nil {
		return
	}
	m.breedLookups.WithLabelValues(outcome).Inc()
}
