// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	_ "github.com/rawdawg23/jellyfin-store/docs"
)

func TestRouter_SwaggerDocument(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)

	rec := env.do(http.MethodGet, "/swagger/doc.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("doc.json is not JSON: %v", err)
	}
	if doc.Info.Title != "Jellyfin Store Chat API" {
		t.Errorf("title = %q", doc.Info.Title)
	}
	for _, path := range []string{
		"/api/chat",
		"/api/chat/ws",
		"/api/v1/health/live",
		"/api/v1/health/ready",
		"/api/v1/media/server",
		"/api/v1/media/users",
		"/api/v1/media/libraries",
	} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("path %s missing from swagger document", path)
		}
	}
}

func TestRouter_SwaggerUI(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)

	rec := env.do(http.MethodGet, "/swagger/index.html", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "swagger-ui") {
		t.Error("index page does not mount swagger-ui")
	}
}
