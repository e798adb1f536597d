package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Space Tools metrics - using explicit registration
var (
	// Request counters
	RequestsTotal *prometheus.CounterVec

	// Tool call counters
	ToolCallsTotal *prometheus.CounterVec

	// Tool duration histogram
	ToolDuration *prometheus.HistogramVec

	// NASA API latency
	UpstreamLatency *prometheus.HistogramVec
)

// init creates and registers all metrics with the default registry
func init() {
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nasa",
			Subsystem: "space_tools",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nasa",
			Subsystem: "space_tools",
			Name:      "tool_calls_total",
			Help:      "Total tool invocations",
		},
		[]string{"tool_name", "source", "status"},
	)

	ToolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nasa",
			Subsystem: "space_tools",
			Name:      "tool_duration_seconds",
			Help:      "Tool execution duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"tool_name", "source"},
	)

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nasa",
			Subsystem: "space_tools",
			Name:      "upstream_latency_seconds",
			Help:      "NASA API response time in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(ToolCallsTotal)
	prometheus.MustRegister(ToolDuration)
	prometheus.MustRegister(UpstreamLatency)
	log.Info().Msg("Space Tools metrics registered with Prometheus")
}

// RecordRequest records an HTTP request
func RecordRequest(method, status string) {
	RequestsTotal.WithLabelValues(method, status).Inc()
}

// RecordToolCall records a tool invocation
func RecordToolCall(toolName, source, status string, durationSec float64) {
	if source == "" {
		source = "unknown"
	}
	if status == "" {
		status = "unknown"
	}
	ToolCallsTotal.WithLabelValues(toolName, source, status).Inc()
	ToolDuration.WithLabelValues(toolName, source).Observe(durationSec)
}

// RecordUpstreamLatency records NASA API response time
func RecordUpstreamLatency(endpoint string, durationSec float64) {
	UpstreamLatency.WithLabelValues(endpoint).Observe(durationSec)
}
