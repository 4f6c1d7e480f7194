// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/rawdawg23/jellyfin-store/docs" // Register swagger docs
	"github.com/rawdawg23/jellyfin-store/internal/api"
	"github.com/rawdawg23/jellyfin-store/internal/chat"
	"github.com/rawdawg23/jellyfin-store/internal/config"
	"github.com/rawdawg23/jellyfin-store/internal/logging"
	"github.com/rawdawg23/jellyfin-store/internal/mediaserver"
	"github.com/rawdawg23/jellyfin-store/internal/supervisor"
	"github.com/rawdawg23/jellyfin-store/internal/supervisor/services"
)

// @title Jellyfin Store Chat API
// @version 1.0
// @description Real-time chat and presence relay for the Jellyfin Store marketplace.
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
// @BasePath /
func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Int("max_messages", cfg.Chat.MaxMessages).
		Dur("presence_ttl", cfg.Chat.PresenceTTL).
		Bool("jellyfin_enabled", cfg.Jellyfin.Enabled).
		Msg("Starting Jellyfin Store chat server")

	store := chat.NewStore(chat.StoreConfig{
		MaxMessages: cfg.Chat.MaxMessages,
		PresenceTTL: cfg.Chat.PresenceTTL,
	})
	hub := chat.NewHub(store, cfg.Chat.StreamBuffer)

	media, cached, err := initMediaServer(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize Jellyfin client")
	}

	handler := api.NewHandler(hub, media, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// sutureslog needs slog; the adapter forwards to zerolog
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddMessagingService(hub)
	tree.AddMessagingService(chat.NewStatsSampler(store, cfg.Chat.StatsInterval))
	if cfg.Chat.PresenceSweepInterval > 0 {
		tree.AddMessagingService(chat.NewPresenceSweeper(store, cfg.Chat.PresenceSweepInterval))
		logging.Info().Dur("interval", cfg.Chat.PresenceSweepInterval).Msg("Presence sweeper enabled")
	}
	if cached != nil {
		tree.AddMessagingService(mediaserver.NewCachePurger(cached, 0))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Server stopped")
}

// initMediaServer returns nil when the Jellyfin integration is disabled.
// The result is typed as the interface so a disabled client stays a nil
// interface rather than a typed nil. The cached client is also returned
// when the response cache is enabled so its purger can be supervised.
func initMediaServer(cfg *config.Config) (api.MediaServer, *mediaserver.CachedClient, error) {
	if !cfg.Jellyfin.Enabled {
		logging.Info().Msg("Jellyfin integration disabled")
		return nil, nil, nil
	}

	client, err := mediaserver.NewJellyfinClient(cfg.Jellyfin)
	if err != nil {
		return nil, nil, err
	}

	logging.Info().
		Str("url", cfg.Jellyfin.URL).
		Str("api_key", logging.SanitizeToken(cfg.Jellyfin.APIKey)).
		Float64("requests_per_second", cfg.Jellyfin.RequestsPerSecond).
		Dur("cache_ttl", cfg.Jellyfin.CacheTTL).
		Msg("Jellyfin integration enabled")

	breaker := mediaserver.NewCircuitBreakerClient(client)
	if cfg.Jellyfin.CacheTTL <= 0 {
		return breaker, nil, nil
	}
	cached := mediaserver.NewCachedClient(breaker, cfg.Jellyfin.CacheTTL)
	return cached, cached, nil
}
