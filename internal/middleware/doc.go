// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

/*
Package middleware provides HTTP middleware shared by all routes.

  - RequestID: reuses or generates X-Request-ID and puts it in the context
    so logging.Ctx adds request_id to every line.
  - PrometheusMetrics: api_requests_total, api_request_duration_seconds and
    api_active_requests, labelled by chi route pattern.

Both are plain func(http.Handler) http.Handler and are mounted on the chi
router in internal/api. The metrics wrapper forwards Flush, Hijack and
Unwrap, which the SSE and WebSocket chat streams depend on.
*/
package middleware
