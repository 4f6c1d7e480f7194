// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package config

import "time"

// Config holds all application configuration.
// Load it with LoadWithKoanf.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Chat     ChatConfig     `koanf:"chat"`
	Security SecurityConfig `koanf:"security"`
	Jellyfin JellyfinConfig `koanf:"jellyfin"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// ReadTimeout bounds reading a request including its body.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds one-shot responses. Stream connections clear
	// their own write deadline.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	IdleTimeout time.Duration `koanf:"idle_timeout"`

	// ShutdownTimeout is the grace period for in-flight requests on stop.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// ChatConfig holds broadcast store and stream settings.
type ChatConfig struct {
	// MaxMessages is the message log retention bound.
	MaxMessages int `koanf:"max_messages"`

	// PresenceTTL is the liveness window of presence entries.
	PresenceTTL time.Duration `koanf:"presence_ttl"`

	// StreamBuffer is the per-connection frame queue length. A connection
	// whose queue fills is closed.
	StreamBuffer int `koanf:"stream_buffer"`

	// KeepaliveInterval is how often SSE connections get a comment line.
	// Zero disables keepalives.
	KeepaliveInterval time.Duration `koanf:"keepalive_interval"`

	// PresenceSweepInterval enables the background presence sweeper when
	// positive. Zero keeps expiry strictly lazy.
	PresenceSweepInterval time.Duration `koanf:"presence_sweep_interval"`

	// StatsInterval is how often store size gauges are sampled.
	StatsInterval time.Duration `koanf:"stats_interval"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// JellyfinConfig holds the optional Jellyfin media server connection.
type JellyfinConfig struct {
	Enabled bool   `koanf:"enabled"`
	URL     string `koanf:"url"`
	APIKey  string `koanf:"api_key"`

	// UserID is appended to the device id sent to Jellyfin. Optional.
	UserID string `koanf:"user_id"`

	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`

	// CacheTTL keeps server info, users and libraries for this long.
	// Zero disables caching.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}
