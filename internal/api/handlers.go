// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package api

import (
	"time"

	"github.com/rawdawg23/jellyfin-store/internal/chat"
	"github.com/rawdawg23/jellyfin-store/internal/config"
	"github.com/rawdawg23/jellyfin-store/internal/mediaserver"
)

// MediaServer is the Jellyfin boundary the handlers read from.
// mediaserver.CircuitBreakerClient and mediaserver.CachedClient implement it.
type MediaServer = mediaserver.HealthReporter

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_chat.go: chat snapshots, SSE stream and write commands
//   - handlers_websocket.go: websocket stream transport
//   - handlers_health.go: liveness and readiness probes
//   - handlers_media.go: read-only Jellyfin endpoints
type Handler struct {
	hub       *chat.Hub
	store     *chat.Store
	media     MediaServer // nil when Jellyfin is disabled
	config    *config.Config
	keepalive time.Duration
	startTime time.Time
}

// NewHandler creates the API handler.
//
// Dependencies:
//   - hub: opens stream feeds on the shared broadcast store
//   - media: Jellyfin client, or nil when the integration is disabled
//   - cfg: application configuration (CORS origins, keepalive interval)
//
// Example:
//
//	handler := api.NewHandler(hub, media, cfg)
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(":3857", router.Setup())
func NewHandler(hub *chat.Hub, media MediaServer, cfg *config.Config) *Handler {
	h := &Handler{
		hub:       hub,
		store:     hub.Store(),
		media:     media,
		config:    cfg,
		startTime: time.Now(),
	}
	if cfg != nil {
		h.keepalive = cfg.Chat.KeepaliveInterval
	}
	return h
}
