// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package mediaserver

import (
	"context"
	"time"

	"github.com/rawdawg23/jellyfin-store/internal/logging"
)

// CachePurger drops expired responses from a CachedClient on a fixed
// interval. Reads already skip expired entries; the purger only bounds how
// long they stay in memory when nobody asks for them.
//
// CachePurger implements suture.Service.
type CachePurger struct {
	client   *CachedClient
	interval time.Duration
}

// NewCachePurger creates a purger. Non-positive intervals default to the
// cache TTL.
func NewCachePurger(client *CachedClient, interval time.Duration) *CachePurger {
	if interval <= 0 {
		interval = client.cache.TTL()
	}
	return &CachePurger{client: client, interval: interval}
}

// Serve purges on every tick until ctx is canceled.
func (p *CachePurger) Serve(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.PurgeOnce()
		}
	}
}

// PurgeOnce removes expired responses and returns how many were removed.
func (p *CachePurger) PurgeOnce() int {
	removed := p.client.Purge()
	if removed > 0 {
		stats := p.client.CacheStats()
		logging.Debug().
			Int("removed", removed).
			Int64("keys", stats.TotalKeys).
			Float64("hit_rate", p.client.cache.HitRate()).
			Msg("Purged expired Jellyfin responses")
	}
	return removed
}

// String returns the service name for supervisor logging.
func (p *CachePurger) String() string {
	return "media-cache-purger"
}
