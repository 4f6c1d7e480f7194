// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

/*
Package models defines the wire types shared by the chat store, the HTTP
and WebSocket transports, and the Jellyfin integration.

Chat models:
  - Sender: identity snapshot taken from the client payload
  - Message: immutable chat message with a server-assigned id and timestamp
  - PresenceEntry: live presence record keyed by identity id
  - Event: one stream frame, {"type": ..., "data": ...}
  - InitData, MessagesSnapshot, UsersSnapshot: snapshot payloads

Media server models mirror the Jellyfin REST API field names (PascalCase)
so responses decode without renaming. APIResponse wraps non-chat endpoints
such as /api/v1/health and /api/v1/media.

Chat JSON uses camelCase keys (lastSeen, userId) to match the storefront
client. Timestamps marshal as RFC 3339 in UTC.
*/
package models
