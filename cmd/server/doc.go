// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

/*
Package main is the entry point for the Jellyfin Store chat server.

The server hosts the storefront's live chat: an in-memory broadcast store of
recent messages and user presence, served over a single /api/chat endpoint
as JSON snapshots, a Server-Sent Events stream, and JSON commands. A
WebSocket variant of the stream lives at /api/chat/ws. An optional
Jellyfin integration exposes server info, users and libraries under
/api/v1/media.

# Application Architecture

	RootSupervisor ("jellyfin-store")
	├── MessagingSupervisor ("messaging-layer")
	│   ├── chat stream hub
	│   ├── chat stats sampler
	│   ├── presence sweeper (optional)
	│   └── media cache purger (when JELLYFIN_CACHE_TTL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTP server

# Configuration

Koanf v2 layers built-in defaults, an optional YAML file (CONFIG_PATH,
./config.yaml or /etc/jellyfin-store/config.yaml) and environment
variables:

	HTTP_PORT=3857
	CHAT_MAX_MESSAGES=100
	CHAT_PRESENCE_TTL=30s
	JELLYFIN_ENABLED=true
	JELLYFIN_URL=http://jellyfin:8096
	JELLYFIN_API_KEY=...
	LOG_LEVEL=debug

# API Documentation

Swagger UI is served at /swagger/index.html. The document is registered by
the docs package imported below.

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The hub closes all open
chat streams and the HTTP server drains in-flight requests for up to
HTTP_SHUTDOWN_TIMEOUT.
*/
package main
