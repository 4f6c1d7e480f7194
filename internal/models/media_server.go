// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package models

// JellyfinServerInfo represents Jellyfin server system information.
type JellyfinServerInfo struct {
	ServerName         string `json:"ServerName"`
	Version            string `json:"Version"`
	ID                 string `json:"Id"`
	OperatingSystem    string `json:"OperatingSystem"`
	HasUpdateAvailable bool   `json:"HasUpdateAvailable"`
}

// JellyfinUser represents a Jellyfin user account.
type JellyfinUser struct {
	ID               string `json:"Id"`
	Name             string `json:"Name"`
	HasPassword      bool   `json:"HasPassword"`
	LastActivityDate string `json:"LastActivityDate,omitempty"`
	PrimaryImageTag  string `json:"PrimaryImageTag,omitempty"`
	EnableAutoLogin  bool   `json:"EnableAutoLogin"`
}

// JellyfinLibrary represents a virtual folder (library) on a Jellyfin server.
type JellyfinLibrary struct {
	Name           string   `json:"Name"`
	ItemID         string   `json:"ItemId"`
	CollectionType string   `json:"CollectionType,omitempty"`
	Locations      []string `json:"Locations"`
}

// MediaServerHealth is the readiness view of the configured media server.
type MediaServerHealth struct {
	Enabled   bool   `json:"enabled"`
	Reachable bool   `json:"reachable"`
	State     string `json:"circuit_state,omitempty"`
	Error     string `json:"error,omitempty"`
}
