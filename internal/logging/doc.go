// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

/*
Package logging provides the process-wide zerolog logger.

# Quick Start

	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})

	logging.Info().Str("addr", addr).Msg("HTTP server listening")
	logging.Error().Err(err).Msg("Failed to encode stream frame")

	// Request-scoped, adds request_id
	logging.Ctx(r.Context()).Warn().Str("action", action).Msg("Invalid chat action")

Always terminate a chain with Msg or Send, otherwise nothing is written.

# Configuration

Level, format and caller come from the logging section of the config
(LOG_LEVEL, LOG_FORMAT, LOG_CALLER).

# slog

NewSlogLogger returns a *slog.Logger writing through zerolog. The supervisor
tree hands it to sutureslog so restart and backoff events share one output.

# Sanitizing

Chat identities are unverified client input and the Jellyfin API key is a
secret. Log them through SanitizeUserID and SanitizeToken.
*/
package logging
