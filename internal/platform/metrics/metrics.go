// Package metrics exposes Prometheus collectors for the ephemeris and the HTTP API.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "astro_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	ephemerisCalls   *prometheus.CounterVec
	ephemerisLatency *prometheus.HistogramVec

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
)

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		ephemerisCalls = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "ephemeris_calls_total",
				Help: "Total ephemeris calls by call type, provider and result",
			},
			[]string{"call", "provider", "result"},
		)
		ephemerisLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "ephemeris_latency_seconds",
				Help:    "Ephemeris call latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"call", "provider"},
		)

		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)

		prometheus.MustRegister(
			ephemerisCalls,
			ephemerisLatency,
			httpRequests,
			httpLatency,
		)
	})
}

// ObserveEphemeris records one ephemeris call.
func ObserveEphemeris(call, provider, result string, duration time.Duration) {
	if provider == "" {
		provider = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if ephemerisCalls != nil {
		ephemerisCalls.WithLabelValues(call, provider, result).Inc()
	}
	if ephemerisLatency != nil {
		ephemerisLatency.WithLabelValues(call, provider).Observe(duration.Seconds())
	}
}

// ObserveHTTP records one served request. route is the matched route pattern.
func ObserveHTTP(method, route, status string, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, route, status).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
