// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rawdawg23/jellyfin-store/internal/logging"
)

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateChat(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateJellyfin(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		return fmt.Errorf("HTTP timeouts must not be negative")
	}
	return nil
}

func (c *Config) validateChat() error {
	if c.Chat.MaxMessages < 1 {
		return fmt.Errorf("CHAT_MAX_MESSAGES must be at least 1, got %d", c.Chat.MaxMessages)
	}
	if c.Chat.PresenceTTL <= 0 {
		return fmt.Errorf("CHAT_PRESENCE_TTL must be positive, got %s", c.Chat.PresenceTTL)
	}
	if c.Chat.StreamBuffer < 1 {
		return fmt.Errorf("CHAT_STREAM_BUFFER must be at least 1, got %d", c.Chat.StreamBuffer)
	}
	if c.Chat.KeepaliveInterval < 0 {
		return fmt.Errorf("CHAT_KEEPALIVE_INTERVAL must not be negative")
	}
	if c.Chat.PresenceSweepInterval < 0 {
		return fmt.Errorf("CHAT_PRESENCE_SWEEP_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQS must be at least 1 when rate limiting is enabled")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	return nil
}

// validateJellyfin validates the Jellyfin connection (only if enabled).
func (c *Config) validateJellyfin() error {
	if !c.Jellyfin.Enabled {
		return nil
	}
	if c.Jellyfin.URL == "" {
		return fmt.Errorf("JELLYFIN_URL is required when JELLYFIN_ENABLED=true")
	}
	if err := validateHTTPURL(c.Jellyfin.URL, "JELLYFIN_URL"); err != nil {
		return err
	}
	if strings.TrimSpace(c.Jellyfin.APIKey) == "" {
		return fmt.Errorf("JELLYFIN_API_KEY is required when JELLYFIN_ENABLED=true")
	}
	if c.Jellyfin.RequestsPerSecond <= 0 {
		return fmt.Errorf("JELLYFIN_RATE_LIMIT must be positive")
	}
	if c.Jellyfin.CacheTTL < 0 {
		return fmt.Errorf("JELLYFIN_CACHE_TTL must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, disabled")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateHTTPURL checks for an http(s) base URL with a host and no query.
func validateHTTPURL(rawURL, fieldName string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsed.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters", fieldName)
	}
	return nil
}
