// Package metrics provides Prometheus metrics for the WhatsOnChain MCP server.
// It tracks tool calls, upstream API latency, cache performance and throttling.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "whatsonchain_mcp"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures tool call latency distribution
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing tool calls
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of requests currently being processed",
	}, []string{"tool"})

	// CacheHits counts response cache hits
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "cache_hits_total",
		Help:      "Total cache hit count",
	})

	// CacheMisses counts response cache misses
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "cache_misses_total",
		Help:      "Total cache miss count",
	})

	// CacheSize tracks current cache entry count
	CacheSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "cache_entries",
		Help:      "Current number of cache entries",
	})

	// CacheEvictions counts entries pushed out by the size limit
	CacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "cache_evictions_total",
		Help:      "Total cache eviction count",
	})

	// APILatency measures WhatsOnChain call latency by network and endpoint
	APILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "woc_api_latency_seconds",
		Help:      "WhatsOnChain API call latency by network and endpoint",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "endpoint"})

	// APIRequestsTotal counts WhatsOnChain API requests
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "woc_api_requests_total",
		Help:      "Total WhatsOnChain API requests by network, endpoint and status",
	}, []string{"network", "endpoint", "status"})

	// APIErrors counts WhatsOnChain API errors by error kind
	APIErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "woc_api_errors_total",
		Help:      "WhatsOnChain API errors by network, endpoint and error kind",
	}, []string{"network", "endpoint", "kind"})

	// CoalescedRequests counts GETs answered by another caller's in-flight request
	CoalescedRequests = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "woc_api_coalesced_total",
		Help:      "Requests served by an identical in-flight request",
	})

	// ThrottleWaits counts dispatches that were held back by the throttle
	ThrottleWaits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "throttle_waits_total",
		Help:      "Requests delayed by the unauthenticated request spacing",
	})

	// ThrottleWaitDuration measures how long dispatches were held back
	ThrottleWaitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "throttle_wait_seconds",
		Help:      "Time spent waiting for the request throttle",
		Buckets:   []float64{.01, .05, .1, .25, .334, .5, 1, 2.5, 5},
	})

	// RateLimitRejections counts HTTP transport requests rejected due to rate limiting
	RateLimitRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "rate_limit_rejections_total",
		Help:      "Requests rejected due to rate limiting",
	})

	// AuthFailures counts authentication failures
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "auth_failures_total",
		Help:      "Authentication failure count by reason",
	}, []string{"reason"})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})

	// HTTPRequestsTotal counts HTTP transport requests
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method and status",
	}, []string{"method", "status"})

	// HTTPRequestDuration measures HTTP transport request latency
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency distribution",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path"})
)

// RecordRequest records a completed tool call with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RequestsTotal.WithLabelValues(tool, status).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordAPICall records a WhatsOnChain API call. errorKind is empty on success.
func RecordAPICall(network, endpoint string, duration float64, errorKind string) {
	status := "success"
	if errorKind != "" {
		status = "error"
		APIErrors.WithLabelValues(network, endpoint, errorKind).Inc()
	}
	APIRequestsTotal.WithLabelValues(network, endpoint, status).Inc()
	APILatency.WithLabelValues(network, endpoint).Observe(duration)
}

// RecordCacheAccess records a cache hit or miss
func RecordCacheAccess(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// SetCacheSize updates the current cache size gauge
func SetCacheSize(size int64) {
	CacheSize.Set(float64(size))
}

// RecordThrottleWait records time spent waiting for a dispatch slot.
// Waits under a millisecond are not counted as throttled.
func RecordThrottleWait(waited time.Duration) {
	if waited < time.Millisecond {
		return
	}
	ThrottleWaits.Inc()
	ThrottleWaitDuration.Observe(waited.Seconds())
}
