// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package models

import (
	"time"
)

// APIResponse is the envelope used by the health and media-server endpoints.
// The chat endpoint answers with bare bodies instead.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"server_name": "living-room"},
//	  "metadata": {"timestamp": "2026-01-28T12:00:00Z", "query_time_ms": 12}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {"code": "SERVICE_UNAVAILABLE", "message": "Jellyfin integration is not enabled"},
//	  "metadata": {"timestamp": "2026-01-28T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is the error detail of an enveloped response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
