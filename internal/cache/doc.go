// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

// Package cache provides a small thread-safe TTL cache.
//
// The media server integration uses it to keep Jellyfin server info, users
// and libraries for a short window so storefront pages polling
// /api/v1/media do not turn into one upstream request each. Hit and miss
// counters are available through GetStats and HitRate.
package cache
