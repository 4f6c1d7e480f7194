// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/rawdawg23/jellyfin-store/internal/mediaserver"
)

// MediaServerInfo returns the Jellyfin server's system information.
//
// Method: GET
// Path: /api/v1/media/server
//
// Response:
//   - 200: Server information retrieved successfully
//   - 502: Jellyfin request failed
//   - 503: Jellyfin integration disabled or circuit breaker open
//
// @Summary Jellyfin server information
// @Tags Media
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 502 {object} models.APIResponse "Jellyfin request failed"
// @Failure 503 {object} models.APIResponse "Integration disabled or circuit open"
// @Router /api/v1/media/server [get]
func (h *Handler) MediaServerInfo(w http.ResponseWriter, r *http.Request) {
	if !h.requireMedia(w) {
		return
	}
	start := time.Now()
	info, err := h.media.GetServerInfo(r.Context())
	if err != nil {
		respondMediaError(w, err)
		return
	}
	respondData(w, info, start)
}

// MediaUsers returns the Jellyfin user list.
//
// Method: GET
// Path: /api/v1/media/users
//
// @Summary Jellyfin users
// @Tags Media
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 502 {object} models.APIResponse "Jellyfin request failed"
// @Failure 503 {object} models.APIResponse "Integration disabled or circuit open"
// @Router /api/v1/media/users [get]
func (h *Handler) MediaUsers(w http.ResponseWriter, r *http.Request) {
	if !h.requireMedia(w) {
		return
	}
	start := time.Now()
	users, err := h.media.GetUsers(r.Context())
	if err != nil {
		respondMediaError(w, err)
		return
	}
	respondData(w, users, start)
}

// MediaLibraries returns the Jellyfin libraries.
//
// Method: GET
// Path: /api/v1/media/libraries
//
// @Summary Jellyfin libraries
// @Tags Media
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 502 {object} models.APIResponse "Jellyfin request failed"
// @Failure 503 {object} models.APIResponse "Integration disabled or circuit open"
// @Router /api/v1/media/libraries [get]
func (h *Handler) MediaLibraries(w http.ResponseWriter, r *http.Request) {
	if !h.requireMedia(w) {
		return
	}
	start := time.Now()
	libraries, err := h.media.GetLibraries(r.Context())
	if err != nil {
		respondMediaError(w, err)
		return
	}
	respondData(w, libraries, start)
}

// requireMedia checks the Jellyfin integration is enabled and returns true
// if it is, false if an error was sent
func (h *Handler) requireMedia(w http.ResponseWriter) bool {
	if h.media == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Jellyfin integration is not enabled", nil)
		return false
	}
	return true
}

func respondMediaError(w http.ResponseWriter, err error) {
	if errors.Is(err, mediaserver.ErrCircuitOpen) {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Jellyfin is temporarily unavailable", err)
		return
	}
	respondError(w, http.StatusBadGateway, ErrCodeExternalServiceFail, "Jellyfin request failed", err)
}
