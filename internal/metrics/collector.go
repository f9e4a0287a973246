// Package metrics exposes solver and HTTP metrics in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry so that several collectors (one per test,
// for instance) never clash on registration.
type Collector struct {
	registry *prometheus.Registry

	solvesTotal   *prometheus.CounterVec
	solveDuration *prometheus.HistogramVec

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewCollector creates and registers all metrics under namespace
func NewCollector(namespace string) *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.solvesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Total number of solver invocations by solver and outcome",
		},
		[]string{"solver", "outcome"},
	)

	c.solveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Solver wall time in seconds",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		},
		[]string{"solver"},
	)

	c.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	c.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	c.registry.MustRegister(
		c.solvesTotal,
		c.solveDuration,
		c.httpRequestsTotal,
		c.httpRequestDuration,
		collectors.NewGoCollector(),
	)
	return c
}

// ObserveSolve records one solver invocation
func (c *Collector) ObserveSolve(solver string, outcome string, seconds float64) {
	c.solvesTotal.WithLabelValues(solver, outcome).Inc()
	c.solveDuration.WithLabelValues(solver).Observe(seconds)
}

// ObserveHTTP records one HTTP request
func (c *Collector) ObserveHTTP(method, path, status string, seconds float64) {
	c.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	c.httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// Registry returns the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Nop discards all observations
type Nop struct{}

func (Nop) ObserveSolve(string, string, float64) {}
