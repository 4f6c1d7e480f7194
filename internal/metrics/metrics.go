// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - API endpoint latency and throughput
// - Chat broadcast store (messages, presence, fan-out)
// - Stream connections (SSE and WebSocket)
// - Media server circuit breaker

// Stream transports used as label values.
const (
	TransportSSE       = "sse"
	TransportWebSocket = "websocket"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, // Optimized for API latency
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Chat Store Metrics
	ChatMessagesAppended = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_messages_appended_total",
			Help: "Total number of chat messages appended to the log",
		},
	)

	ChatMessagesTrimmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_messages_trimmed_total",
			Help: "Total number of chat messages discarded by the retention bound",
		},
	)

	ChatMessagesRetained = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_messages_retained",
			Help: "Current number of messages held in the chat log",
		},
	)

	ChatPresenceEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_presence_entries",
			Help: "Current number of entries in the raw presence table (not swept)",
		},
	)

	ChatPresenceExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_presence_expired_total",
			Help: "Total number of presence entries removed by the liveness window",
		},
	)

	ChatBroadcasts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_broadcasts_total",
			Help: "Total number of broadcasts by event type",
		},
		[]string{"event_type"},
	)

	ChatSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_subscribers",
			Help: "Current number of registered broadcast subscribers",
		},
	)

	ChatSubscriberPanics = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_subscriber_panics_total",
			Help: "Total number of subscriber callbacks that panicked during broadcast",
		},
	)

	ChatCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_commands_total",
			Help: "Total number of chat write commands by action and result",
		},
		[]string{"action", "result"},
	)

	// Stream Connection Metrics
	StreamConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chat_stream_connections",
			Help: "Current number of open chat stream connections",
		},
		[]string{"transport"},
	)

	StreamFramesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_stream_frames_sent_total",
			Help: "Total number of frames written to stream connections",
		},
		[]string{"transport"},
	)

	StreamOverflows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_stream_overflows_total",
			Help: "Total number of stream connections closed because their frame queue was full",
		},
		[]string{"transport"},
	)

	StreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_stream_errors_total",
			Help: "Total number of stream write or protocol errors",
		},
		[]string{"transport", "error_type"},
	)

	// Media Server Cache Metrics
	MediaCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_cache_hits_total",
			Help: "Total number of media server responses served from cache",
		},
		[]string{"endpoint"},
	)

	MediaCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_cache_misses_total",
			Help: "Total number of media server cache misses",
		},
		[]string{"endpoint"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordChatCommand records the outcome of a chat write command.
func RecordChatCommand(action, result string) {
	ChatCommands.WithLabelValues(action, result).Inc()
}

// TrackStreamConnection tracks open stream connections per transport.
func TrackStreamConnection(transport string, open bool) {
	if open {
		StreamConnections.WithLabelValues(transport).Inc()
	} else {
		StreamConnections.WithLabelValues(transport).Dec()
	}
}

// UpdateChatGauges sets the store size gauges from a sampled snapshot.
func UpdateChatGauges(messages, presenceEntries, subscribers int) {
	ChatMessagesRetained.Set(float64(messages))
	ChatPresenceEntries.Set(float64(presenceEntries))
	ChatSubscribers.Set(float64(subscribers))
}
