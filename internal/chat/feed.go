// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package chat

import (
	"sync"
	"sync/atomic"

	"github.com/rawdawg23/jellyfin-store/internal/metrics"
	"github.com/rawdawg23/jellyfin-store/internal/models"
)

// Feed is the store side of one stream connection: a subscription paired
// with a bounded event queue and an initial snapshot.
//
// The store listener only ever enqueues without blocking. When the queue is
// full the feed marks itself overflowed and closes Done, and the transport
// is expected to drop the connection so the client reconnects with a fresh
// init frame. Nothing is enqueued once Done is closed.
//
// LIFETIME: Close unregisters the listener before closing Done, so after
// Close returns no event can reach the queue. Close is idempotent.
type Feed struct {
	// Init is the snapshot captured atomically with the subscription.
	Init models.InitData

	transport string
	events    chan models.Event
	done      chan struct{}

	mu     sync.Mutex
	closed bool

	overflowed  atomic.Bool
	unsubscribe func()
	onClose     func()
	closeOnce   sync.Once
}

// OpenFeed subscribes a new feed with a queue of buffer events.
// transport is used as the metrics label.
func (s *Store) OpenFeed(transport string, buffer int) *Feed {
	if buffer < 1 {
		buffer = 1
	}
	f := &Feed{
		transport: transport,
		events:    make(chan models.Event, buffer),
		done:      make(chan struct{}),
	}
	f.Init, f.unsubscribe = s.SubscribeWithSnapshot(f.enqueue)
	metrics.TrackStreamConnection(transport, true)
	return f
}

// enqueue is the store listener. It runs under the store lock.
func (f *Feed) enqueue(ev models.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	select {
	case f.events <- ev:
	default:
		f.overflowed.Store(true)
		f.closed = true
		close(f.done)
		metrics.StreamOverflows.WithLabelValues(f.transport).Inc()
	}
}

// Events returns the queue of live events in broadcast order.
func (f *Feed) Events() <-chan models.Event {
	return f.events
}

// Done is closed when the feed overflows or is closed.
func (f *Feed) Done() <-chan struct{} {
	return f.done
}

// Overflowed reports whether the feed was closed because its queue filled.
func (f *Feed) Overflowed() bool {
	return f.overflowed.Load()
}

// Transport returns the transport label the feed was opened with.
func (f *Feed) Transport() string {
	return f.transport
}

// Close unregisters the feed from the store and closes Done.
func (f *Feed) Close() {
	f.closeOnce.Do(func() {
		f.unsubscribe()

		f.mu.Lock()
		if !f.closed {
			f.closed = true
			close(f.done)
		}
		f.mu.Unlock()

		metrics.TrackStreamConnection(f.transport, false)
		if f.onClose != nil {
			f.onClose()
		}
	})
}
