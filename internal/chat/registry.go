// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package chat

import "github.com/rawdawg23/jellyfin-store/internal/models"

// Listener receives every event broadcast by the Store.
//
// Listeners are invoked synchronously while the Store holds its lock, so they
// must not block and must not call back into the Store.
type Listener func(event models.Event)

// subscription pairs a listener with its registration token.
type subscription struct {
	token    uint64
	listener Listener
}

// registry holds subscriptions in registration order.
// Not safe for concurrent use; the Store serializes access.
type registry struct {
	next uint64
	subs []subscription
}

// add registers a listener and returns its token. Tokens are never reused.
func (r *registry) add(l Listener) uint64 {
	r.next++
	r.subs = append(r.subs, subscription{token: r.next, listener: l})
	return r.next
}

// remove drops the subscription with the given token.
// Returns false if the token was not registered.
func (r *registry) remove(token uint64) bool {
	for i, sub := range r.subs {
		if sub.token == token {
			// Keep registration order for the remaining subscribers
			copy(r.subs[i:], r.subs[i+1:])
			r.subs[len(r.subs)-1] = subscription{}
			r.subs = r.subs[:len(r.subs)-1]
			return true
		}
	}
	return false
}

// len returns the number of live subscriptions.
func (r *registry) len() int {
	return len(r.subs)
}
