// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

/*
Package mediaserver is the boundary to an external Jellyfin server.

The store only reads from Jellyfin: server information, the user list and the
library (virtual folder) list. JellyfinClient talks to the REST API with an
X-Emby-Token API key and throttles outbound requests with a
golang.org/x/time/rate limiter. CircuitBreakerClient wraps any Client with
sony/gobreaker so an unreachable server fails fast:

	jf, err := mediaserver.NewJellyfinClient(cfg.Jellyfin)
	if err != nil {
	    return err
	}
	client := mediaserver.NewCircuitBreakerClient(jf)
	users, err := client.GetUsers(ctx)

Breaker state, transitions and request outcomes are exported as Prometheus
metrics labelled "jellyfin-api". While the circuit is open every call returns
an error wrapping ErrCircuitOpen.
*/
package mediaserver
