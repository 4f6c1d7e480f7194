// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package chat

import (
	"context"
	"time"

	"github.com/rawdawg23/jellyfin-store/internal/logging"
)

// PresenceSweeper periodically removes expired presence entries and
// broadcasts users_update when something was removed.
//
// It is an opt-in addition to the lazy expire-on-read behaviour of
// Store.GetOnlineUsers and is only started when chat.presence_sweep_interval
// is positive.
//
// PresenceSweeper implements suture.Service.
type PresenceSweeper struct {
	store    *Store
	interval time.Duration
}

// NewPresenceSweeper creates a sweeper. interval must be positive.
func NewPresenceSweeper(store *Store, interval time.Duration) *PresenceSweeper {
	return &PresenceSweeper{store: store, interval: interval}
}

// Serve runs the sweep loop until ctx is canceled.
func (p *PresenceSweeper) Serve(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	logging.Info().Dur("interval", p.interval).Msg("Presence sweeper started")

	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("Presence sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			if removed := p.store.SweepExpired(); removed > 0 {
				logging.Debug().Int("removed", removed).Msg("Expired presence entries swept")
			}
		}
	}
}

// String returns the service name for supervisor logging.
func (p *PresenceSweeper) String() string {
	return "chat-presence-sweeper"
}
