// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package mediaserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/rawdawg23/jellyfin-store/internal/config"
	"github.com/rawdawg23/jellyfin-store/internal/models"
)

const (
	clientName    = "JellyfinStore"
	clientVersion = "1.0.0"
	deviceID      = "jellyfin-store"

	// maxErrorBody caps how much of an error response is kept.
	maxErrorBody = 512
)

// Ensure JellyfinClient implements Client
var _ Client = (*JellyfinClient)(nil)

// JellyfinClient provides access to the Jellyfin REST API.
// Requests are throttled to the configured rate.
type JellyfinClient struct {
	baseURL    string
	apiKey     string
	deviceID   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewJellyfinClient creates a Jellyfin API client from config.
//
// Parameters:
//   - URL: Jellyfin server URL (e.g., http://localhost:8096)
//   - APIKey: Jellyfin API key from Admin Dashboard > API Keys
//   - UserID: optional, appended to the device id
//   - RequestsPerSecond: outbound request rate; 0 disables throttling
func NewJellyfinClient(cfg config.JellyfinConfig) (*JellyfinClient, error) {
	if cfg.URL == "" || cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	device := deviceID
	if cfg.UserID != "" {
		device = deviceID + "-" + cfg.UserID
	}

	return &JellyfinClient{
		baseURL:  strings.TrimSuffix(cfg.URL, "/"),
		apiKey:   cfg.APIKey,
		deviceID: device,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
	}, nil
}

// Ping tests connectivity to the Jellyfin server
func (c *JellyfinClient) Ping(ctx context.Context) error {
	resp, err := c.doRequest(ctx, "/System/Ping")
	if err != nil {
		return fmt.Errorf("jellyfin ping failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Endpoint: "ping", StatusCode: resp.StatusCode}
	}
	return nil
}

// GetServerInfo retrieves Jellyfin server system information
func (c *JellyfinClient) GetServerInfo(ctx context.Context) (*models.JellyfinServerInfo, error) {
	var info models.JellyfinServerInfo
	if err := c.getJSON(ctx, "/System/Info", "system info", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetUsers retrieves all users from Jellyfin
func (c *JellyfinClient) GetUsers(ctx context.Context) ([]models.JellyfinUser, error) {
	users := []models.JellyfinUser{}
	if err := c.getJSON(ctx, "/Users", "users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetLibraries retrieves the server's virtual folders
func (c *JellyfinClient) GetLibraries(ctx context.Context) ([]models.JellyfinLibrary, error) {
	libraries := []models.JellyfinLibrary{}
	if err := c.getJSON(ctx, "/Library/VirtualFolders", "libraries", &libraries); err != nil {
		return nil, err
	}
	return libraries, nil
}

// getJSON performs a GET and decodes a 200 response into out.
func (c *JellyfinClient) getJSON(ctx context.Context, endpoint, what string, out interface{}) error {
	resp, err := c.doRequest(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("jellyfin %s request failed: %w", what, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)) //nolint:errcheck // best-effort error context
		return &StatusError{Endpoint: what, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode jellyfin %s: %w", what, err)
	}
	return nil
}

// doRequest waits for the rate limiter, then performs an authenticated GET.
func (c *JellyfinClient) doRequest(ctx context.Context, endpoint string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Emby-Token", c.apiKey)
	req.Header.Set("X-Emby-Client", clientName)
	req.Header.Set("X-Emby-Device-Name", clientName)
	req.Header.Set("X-Emby-Device-Id", c.deviceID)
	req.Header.Set("X-Emby-Client-Version", clientVersion)
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}
