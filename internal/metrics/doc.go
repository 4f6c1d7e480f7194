// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:3857/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Chat Store Metrics:
  - chat_messages_appended_total, chat_messages_trimmed_total (counters)
  - chat_messages_retained, chat_presence_entries, chat_subscribers (gauges)
  - chat_presence_expired_total (counter)
  - chat_broadcasts_total (counter), labels: event_type
  - chat_subscriber_panics_total (counter)
  - chat_commands_total (counter), labels: action, result

Stream Metrics (labels: transport = sse | websocket):
  - chat_stream_connections (gauge)
  - chat_stream_frames_sent_total, chat_stream_overflows_total (counters)
  - chat_stream_errors_total (counter), extra label: error_type

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge), 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: labels name, result (success, failure, rejected)
  - circuit_breaker_transitions_total: labels name, from, to
  - circuit_breaker_consecutive_failures: labels name

# Usage

	metrics.RecordAPIRequest("GET", "/api/chat", "200", time.Since(start))
	metrics.TrackStreamConnection(metrics.TransportSSE, true)
	defer metrics.TrackStreamConnection(metrics.TransportSSE, false)

Gauges describing store size are refreshed by the chat stats sampler, see
internal/chat.StatsSampler.
*/
package metrics
