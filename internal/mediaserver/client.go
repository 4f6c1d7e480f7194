// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package mediaserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/rawdawg23/jellyfin-store/internal/models"
)

var (
	// ErrCircuitOpen is returned while the circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("mediaserver: circuit breaker open")

	// ErrNotConfigured is returned by New when the server URL or API key is missing.
	ErrNotConfigured = errors.New("mediaserver: url and api key are required")
)

// Client defines the read-only media server operations the store exposes.
// Both JellyfinClient and CircuitBreakerClient implement this interface.
type Client interface {
	Ping(ctx context.Context) error
	GetServerInfo(ctx context.Context) (*models.JellyfinServerInfo, error)
	GetUsers(ctx context.Context) ([]models.JellyfinUser, error)
	GetLibraries(ctx context.Context) ([]models.JellyfinLibrary, error)
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("jellyfin %s returned status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("jellyfin %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}
