// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

// Package validation wraps a singleton go-playground/validator instance.
//
// Chat write commands are decoded into tagged structs and validated before
// anything touches the broadcast store:
//
//	type sendMessageData struct {
//	    Content string        `json:"content" validate:"required,max=4000"`
//	    Sender  models.Sender `json:"sender"`
//	}
//
// Field names in errors follow json tags ("sender.id", not "Sender.ID").
// "max" on a string counts runes.
package validation
