// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package mediaserver

import (
	"context"
	"time"

	"github.com/rawdawg23/jellyfin-store/internal/cache"
	"github.com/rawdawg23/jellyfin-store/internal/metrics"
	"github.com/rawdawg23/jellyfin-store/internal/models"
)

// Cache keys and metrics labels for the cached reads.
const (
	cacheKeyServerInfo = "server_info"
	cacheKeyUsers      = "users"
	cacheKeyLibraries  = "libraries"
)

// HealthReporter is a Client that can describe its own availability.
// CircuitBreakerClient and CachedClient implement it.
type HealthReporter interface {
	Client
	Health(ctx context.Context) models.MediaServerHealth
}

var _ HealthReporter = (*CachedClient)(nil)

// CachedClient keeps successful reads for a fixed TTL. Errors are never
// cached, so an open circuit is retried on the next call. Ping and Health
// always reach the wrapped client.
//
// Cached values are shared between callers and must not be modified.
type CachedClient struct {
	next  HealthReporter
	cache *cache.Cache
}

// NewCachedClient wraps next with a response cache of the given TTL.
func NewCachedClient(next HealthReporter, ttl time.Duration) *CachedClient {
	return newCachedClient(next, cache.New(ttl))
}

func newCachedClient(next HealthReporter, c *cache.Cache) *CachedClient {
	return &CachedClient{next: next, cache: c}
}

// Ping checks reachability without the cache.
func (c *CachedClient) Ping(ctx context.Context) error {
	return c.next.Ping(ctx)
}

// Health reports the wrapped client's health.
func (c *CachedClient) Health(ctx context.Context) models.MediaServerHealth {
	return c.next.Health(ctx)
}

// GetServerInfo returns server information, cached.
func (c *CachedClient) GetServerInfo(ctx context.Context) (*models.JellyfinServerInfo, error) {
	return cachedGet(ctx, c.cache, cacheKeyServerInfo, c.next.GetServerInfo)
}

// GetUsers returns the user list, cached.
func (c *CachedClient) GetUsers(ctx context.Context) ([]models.JellyfinUser, error) {
	return cachedGet(ctx, c.cache, cacheKeyUsers, c.next.GetUsers)
}

// GetLibraries returns the virtual folders, cached.
func (c *CachedClient) GetLibraries(ctx context.Context) ([]models.JellyfinLibrary, error) {
	return cachedGet(ctx, c.cache, cacheKeyLibraries, c.next.GetLibraries)
}

// Purge drops expired responses and returns how many were removed.
func (c *CachedClient) Purge() int {
	return c.cache.Purge()
}

// CacheStats returns the hit and miss counters of the response cache.
func (c *CachedClient) CacheStats() cache.Stats {
	return c.cache.GetStats()
}

func cachedGet[T any](ctx context.Context, c *cache.Cache, key string, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			metrics.MediaCacheHits.WithLabelValues(key).Inc()
			return typed, nil
		}
		c.Delete(key)
	}
	metrics.MediaCacheMisses.WithLabelValues(key).Inc()

	result, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.Set(key, result)
	return result, nil
}
