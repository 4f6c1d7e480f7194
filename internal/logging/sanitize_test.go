// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package logging

import "testing"

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"short", "***"},
		{"exactly12chr", "***"},
		{"0123456789abcdef0123", "0123...0123"},
	}
	for _, tt := range tests {
		if got := SanitizeToken(tt.in); got != tt.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeUserID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"u1", "***"},
		{"12345678", "***"},
		{"user-12345678", "user...5678"},
	}
	for _, tt := range tests {
		if got := SanitizeUserID(tt.in); got != tt.want {
			t.Errorf("SanitizeUserID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world", 5, "hello..."},
		{"multibyte", "héllo wörld", 4, "héll..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeContent(tt.in, tt.max); got != tt.want {
				t.Errorf("SanitizeContent(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}
