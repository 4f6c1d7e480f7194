// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rawdawg23/jellyfin-store/internal/logging"
	"github.com/rawdawg23/jellyfin-store/internal/metrics"
	ws "github.com/rawdawg23/jellyfin-store/internal/websocket"
)

// ChatWebSocket upgrades to a websocket and streams the same frames as the
// SSE endpoint. The handler blocks until the stream ends.
//
// @Summary Chat WebSocket stream
// @Tags Chat
// @Success 101 "Switching protocols"
// @Failure 503 "Server is shutting down"
// @Router /api/chat/ws [get]
func (h *Handler) ChatWebSocket(w http.ResponseWriter, r *http.Request) {
	feed, err := h.hub.Open(metrics.TransportWebSocket)
	if err != nil {
		writeChatError(w, http.StatusServiceUnavailable, msgUnavailable)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		feed.Close()
		metrics.StreamErrors.WithLabelValues(metrics.TransportWebSocket, "upgrade").Inc()
		logging.Ctx(r.Context()).Debug().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	ctx := logging.ContextWithLogger(r.Context(), logging.WithComponent("websocket"))
	client := ws.NewClient(conn, feed)
	logging.Ctx(ctx).Debug().Uint64("client", client.ID()).Msg("WebSocket chat stream opened")
	client.Run(ctx)
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout against slow clients.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Browsers always send Origin; accepting an empty one bypasses CORS
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	// No config means tests or development
	if h.config == nil {
		return true
	}

	for _, allowedOrigin := range h.config.Security.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
