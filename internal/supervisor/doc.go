// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

/*
Package supervisor provides process supervision for the store using suture v4.

# Overview

Long-running services are organized into two layers:

	RootSupervisor ("jellyfin-store")
	├── MessagingSupervisor ("messaging-layer")
	│   ├── chat.Hub ("chat-stream-hub")
	│   ├── chat.StatsSampler ("chat-stats-sampler")
	│   └── chat.PresenceSweeper (if chat.presence_sweep_interval > 0)
	└── APISupervisor ("api-layer")
	    └── services.HTTPServerService ("http-server")

A crashing messaging service is restarted on its own while the API layer
keeps answering snapshot queries and probes. Supervisor events are logged
through sutureslog on the slog adapter from internal/logging.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddMessagingService(hub)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

# Shutdown

Canceling the context stops both layers. The hub closes every open chat
stream, which lets http.Server.Shutdown finish without waiting for its
timeout on long-lived requests. Services still running after
ShutdownTimeout show up in UnstoppedServiceReport.

# Return Values

  - nil: service stopped cleanly and is not restarted
  - error: service crashed and is restarted with backoff
  - ctx.Err(): shutdown requested
*/
package supervisor
