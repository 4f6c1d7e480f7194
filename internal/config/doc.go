// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

/*
Package config loads application configuration with koanf.

Precedence, lowest to highest: built-in defaults, an optional YAML file
(CONFIG_PATH, then config.yaml / config.yml, then /etc/jellyfin-store/),
then mapped environment variables.

# Example config.yaml

	server:
	  port: 3857
	chat:
	  max_messages: 100
	  presence_ttl: 30s
	  stream_buffer: 256
	  keepalive_interval: 15s
	  presence_sweep_interval: 0s
	security:
	  cors_origins: ["https://store.example.com"]
	  rate_limit_reqs: 100
	  rate_limit_window: 1m
	jellyfin:
	  enabled: true
	  url: http://jellyfin:8096
	  # api_key is usually supplied through JELLYFIN_API_KEY
	logging:
	  level: info
	  format: json

# Environment Variables

	HTTP_HOST, HTTP_PORT, HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT,
	HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
	CHAT_MAX_MESSAGES, CHAT_PRESENCE_TTL, CHAT_STREAM_BUFFER,
	CHAT_KEEPALIVE_INTERVAL, CHAT_PRESENCE_SWEEP_INTERVAL, CHAT_STATS_INTERVAL
	CORS_ORIGINS (comma separated), RATE_LIMIT_REQS, RATE_LIMIT_WINDOW,
	DISABLE_RATE_LIMIT
	JELLYFIN_ENABLED, JELLYFIN_URL, JELLYFIN_API_KEY, JELLYFIN_USER_ID,
	JELLYFIN_TIMEOUT, JELLYFIN_RATE_LIMIT
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Durations use Go syntax (30s, 1m).
*/
package config
