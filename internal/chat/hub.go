// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package chat

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rawdawg23/jellyfin-store/internal/logging"
)

// ErrHubClosed is returned by Hub.Open once the hub has shut down.
var ErrHubClosed = errors.New("chat: stream hub is shut down")

// ShutdownReason identifies why the hub closed its feeds.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful shutdown path.
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline means the parent deadline expired.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Hub opens feeds for stream connections and tracks them so they can be
// closed when the process shuts down. http.Server.Shutdown neither cancels
// long-lived request contexts nor touches hijacked WebSocket connections,
// so without the hub open streams would hold shutdown until its timeout.
//
// Hub implements suture.Service.
type Hub struct {
	store  *Store
	buffer int

	mu     sync.Mutex
	nextID uint64
	feeds  map[uint64]*Feed
	closed bool
}

// NewHub creates a hub whose feeds have a queue of buffer events.
func NewHub(store *Store, buffer int) *Hub {
	return &Hub{
		store:  store,
		buffer: buffer,
		feeds:  make(map[uint64]*Feed),
	}
}

// Store returns the broadcast store behind the hub.
func (h *Hub) Store() *Store {
	return h.store
}

// Open subscribes a new feed for a stream connection. The caller must
// Close it when the connection ends.
func (h *Hub) Open(transport string) (*Feed, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}

	h.nextID++
	id := h.nextID
	feed := h.store.OpenFeed(transport, h.buffer)
	feed.onClose = func() { h.remove(id) }
	h.feeds[id] = feed

	logging.Debug().
		Uint64("feed", id).
		Str("transport", transport).
		Int("open_feeds", len(h.feeds)).
		Msg("Chat stream opened")
	return feed, nil
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.feeds[id]; ok {
		delete(h.feeds, id)
		logging.Debug().Uint64("feed", id).Int("open_feeds", len(h.feeds)).Msg("Chat stream closed")
	}
}

// Count returns the number of open feeds.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.feeds)
}

// Closed reports whether the hub has shut down and refuses new feeds.
func (h *Hub) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// Serve blocks until ctx is done, then closes every open feed and refuses
// new ones.
func (h *Hub) Serve(ctx context.Context) error {
	logging.Info().Msg("Chat stream hub started")
	<-ctx.Done()

	reason := ShutdownReasonContextCanceled
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		reason = ShutdownReasonContextDeadline
	}
	closed := h.closeAll()

	logging.Info().
		Str("reason", string(reason)).
		Int("closed_feeds", closed).
		Msg("Chat stream hub stopped")
	return ctx.Err()
}

// closeAll marks the hub closed and closes feeds in the order they opened.
func (h *Hub) closeAll() int {
	h.mu.Lock()
	h.closed = true
	ids := make([]uint64, 0, len(h.feeds))
	for id := range h.feeds {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	feeds := make([]*Feed, 0, len(ids))
	for _, id := range ids {
		feeds = append(feeds, h.feeds[id])
	}
	h.mu.Unlock()

	// Close outside the hub lock: Feed.Close calls back into remove
	for _, f := range feeds {
		f.Close()
	}
	return len(feeds)
}

// String returns the service name for supervisor logging.
func (h *Hub) String() string {
	return "chat-stream-hub"
}
