// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rawdawg23/jellyfin-store/internal/chat"
	"github.com/rawdawg23/jellyfin-store/internal/models"
)

// mediaHealthTimeout bounds the Jellyfin ping done by the readiness probe.
const mediaHealthTimeout = 3 * time.Second

// ReadinessData is the payload of the readiness probe.
type ReadinessData struct {
	Ready       bool                      `json:"ready_to_serve"`
	Chat        chat.Stats                `json:"chat"`
	OpenStreams int                       `json:"open_streams"`
	MediaServer *models.MediaServerHealth `json:"media_server"`
	Uptime      float64                   `json:"uptime"`
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
//
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse "Process is alive"
// @Router /api/v1/health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "ok",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// The chat relay is ready while the stream hub accepts connections; the
// optional Jellyfin integration is reported but never blocks readiness.
//
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse{data=ReadinessData} "Accepting streams"
// @Failure 503 {object} models.APIResponse{data=ReadinessData} "Stream hub has shut down"
// @Router /api/v1/health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	data := ReadinessData{
		Ready:       !h.hub.Closed(),
		Chat:        h.store.Stats(),
		OpenStreams: h.hub.Count(),
		MediaServer: &models.MediaServerHealth{Enabled: false},
		Uptime:      time.Since(h.startTime).Seconds(),
	}

	if h.media != nil {
		ctx, cancel := context.WithTimeout(r.Context(), mediaHealthTimeout)
		mh := h.media.Health(ctx)
		cancel()
		data.MediaServer = &mh
	}

	statusCode := http.StatusOK
	status := "ready"
	if !data.Ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data:   data,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
