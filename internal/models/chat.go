// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package models

import "time"

// Event types carried on the chat stream.
const (
	EventTypeInit        = "init"
	EventTypeMessage     = "message"
	EventTypeUsersUpdate = "users_update"
)

// Sender is the identity snapshot embedded in messages and presence entries.
// It is taken verbatim from the client payload and never verified.
type Sender struct {
	ID     string `json:"id" validate:"required,max=128"`
	Name   string `json:"name" validate:"required,max=128"`
	Avatar string `json:"avatar,omitempty" validate:"max=2048"`
	Role   string `json:"role,omitempty" validate:"max=64"`
}

// Message is a single chat message. Messages are immutable once created.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// PresenceEntry is a user's live presence record.
type PresenceEntry struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar,omitempty"`
	Role     string    `json:"role,omitempty"`
	LastSeen time.Time `json:"lastSeen"`
}

// NewPresenceEntry builds a presence entry for the given identity.
func NewPresenceEntry(s Sender, lastSeen time.Time) PresenceEntry {
	return PresenceEntry{
		ID:       s.ID,
		Name:     s.Name,
		Avatar:   s.Avatar,
		Role:     s.Role,
		LastSeen: lastSeen,
	}
}

// Event is the envelope delivered to subscribers and encoded as one stream frame.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// InitData is the payload of the first frame on every stream connection.
type InitData struct {
	Messages []Message       `json:"messages"`
	Users    []PresenceEntry `json:"users"`
}

// MessagesSnapshot is the response body of GET ?action=messages.
type MessagesSnapshot struct {
	Messages []Message `json:"messages"`
}

// UsersSnapshot is the response body of GET ?action=users.
type UsersSnapshot struct {
	Users []PresenceEntry `json:"users"`
}
