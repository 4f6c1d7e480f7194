// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

/*
Package services provides suture.Service wrappers for components that do
not follow suture's Serve(ctx) pattern themselves.

# HTTP Server

HTTPServerService adapts the blocking ListenAndServe/Shutdown pair:

	server := &http.Server{Addr: cfg.Server.Addr(), Handler: router.Setup()}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

# Return Values

	nil         -> service stopped cleanly, not restarted
	error       -> service crashed, supervisor restarts it
	ctx.Err()   -> shutdown requested, normal termination

The chat stream hub, stats sampler and presence sweeper in internal/chat
implement suture.Service directly and need no wrapper.
*/
package services
