// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package api

import "errors"

// Common API errors
var (
	// ErrInvalidAction indicates a chat command with an unknown action
	ErrInvalidAction = errors.New("invalid action")
)
