// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

/*
Package chat implements the in-process broadcast store behind the store's
real-time chat: a bounded message log, a presence table with a liveness
window, and a synchronous publish/subscribe registry.

# Store

A single Store is constructed in main and injected into the HTTP and
WebSocket layers. All state lives in memory for the lifetime of the process.

	store := chat.NewStore(chat.DefaultStoreConfig())

	unsubscribe := store.Subscribe(func(ev models.Event) {
	    // must not block or call back into store
	})
	defer unsubscribe()

	store.AppendMessage(store.NewMessage("hello", sender))

# Retention

The message log keeps the newest MaxMessages entries (100 by default) in
creation order and discards the oldest first.

# Presence

SetUserOnline and SetUserOffline broadcast the raw presence table.
TouchUserActivity refreshes LastSeen silently. Expiry is lazy: entries
older than PresenceTTL (30s by default) are removed the next time
GetOnlineUsers or SubscribeWithSnapshot runs. PresenceSweeper adds an
optional periodic sweep.

# Fan-out

Listeners run synchronously, in registration order, inside the store's
critical section. A panicking listener is recovered, logged and counted in
chat_subscriber_panics_total; the remaining listeners still receive the
event. Transports that write to the network must hand events to their own
goroutine through a bounded queue.

# Services

PresenceSweeper and StatsSampler implement suture.Service and run in the
messaging layer of the supervisor tree.
*/
package chat
