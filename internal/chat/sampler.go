// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package chat

import (
	"context"
	"time"

	"github.com/rawdawg23/jellyfin-store/internal/metrics"
)

// StatsSampler copies Store.Stats into the chat Prometheus gauges on a
// fixed interval. It reads the raw presence table and never sweeps, so
// sampling does not change expiry behaviour.
//
// StatsSampler implements suture.Service.
type StatsSampler struct {
	store    *Store
	interval time.Duration
}

// NewStatsSampler creates a sampler. Non-positive intervals default to 10s.
func NewStatsSampler(store *Store, interval time.Duration) *StatsSampler {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &StatsSampler{store: store, interval: interval}
}

// Serve samples once immediately, then on every tick until ctx is canceled.
func (s *StatsSampler) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Sample()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Sample()
		}
	}
}

// Sample records the current store size.
func (s *StatsSampler) Sample() {
	st := s.store.Stats()
	metrics.UpdateChatGauges(st.Messages, st.Presence, st.Subscribers)
}

// String returns the service name for supervisor logging.
func (s *StatsSampler) String() string {
	return "chat-stats-sampler"
}
