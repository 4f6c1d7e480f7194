// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package chat

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rawdawg23/jellyfin-store/internal/logging"
	"github.com/rawdawg23/jellyfin-store/internal/metrics"
	"github.com/rawdawg23/jellyfin-store/internal/models"
)

const (
	// DefaultMaxMessages is the retention bound of the message log.
	DefaultMaxMessages = 100

	// DefaultPresenceTTL is the liveness window of a presence entry.
	DefaultPresenceTTL = 30 * time.Second
)

// StoreConfig configures a Store.
type StoreConfig struct {
	// MaxMessages caps the message log. Oldest messages are discarded first.
	MaxMessages int

	// PresenceTTL is how long a presence entry stays live without activity.
	PresenceTTL time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// DefaultStoreConfig returns the production retention and liveness settings.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		MaxMessages: DefaultMaxMessages,
		PresenceTTL: DefaultPresenceTTL,
		Now:         time.Now,
	}
}

// Stats is a point-in-time view of the store size.
// Presence counts the raw table and does not apply the liveness window.
type Stats struct {
	Messages    int `json:"messages"`
	Presence    int `json:"presence_entries"`
	Subscribers int `json:"subscribers"`
}

// Store is the single source of truth for chat history, live presence and
// event fan-out.
//
// ATOMICITY: every mutation and its broadcast run inside one critical section,
// so subscribers observe events in exactly the order mutations were applied
// and never see a half-applied mutation. Broadcast is synchronous: each
// mutation reaches every registered listener before the mutator returns.
type Store struct {
	mu sync.Mutex

	maxMessages int
	presenceTTL time.Duration
	now         func() time.Time

	messages []models.Message

	// presence is keyed by identity id; presenceOrder keeps insertion order
	// so snapshots are stable. Replacing an entry keeps its position.
	presence      map[string]models.PresenceEntry
	presenceOrder []string

	subs registry
}

// NewStore creates a Store. Zero or negative settings fall back to defaults.
func NewStore(cfg StoreConfig) *Store {
	if cfg.MaxMessages <= 0 {
		cfg.MaxMessages = DefaultMaxMessages
	}
	if cfg.PresenceTTL <= 0 {
		cfg.PresenceTTL = DefaultPresenceTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Store{
		maxMessages: cfg.MaxMessages,
		presenceTTL: cfg.PresenceTTL,
		now:         cfg.Now,
		messages:    make([]models.Message, 0, cfg.MaxMessages),
		presence:    make(map[string]models.PresenceEntry),
	}
}

// NewMessage builds a message with a fresh id and the store clock's timestamp.
//
// Ids are UUIDv7, which sort in creation order within a process.
func (s *Store) NewMessage(content string, sender models.Sender) models.Message {
	id, err := uuid.NewV7()
	if err != nil {
		// Only fails if the system random source is broken
		logging.Warn().Err(err).Msg("UUIDv7 generation failed, falling back to random id")
		id = uuid.New()
	}

	return models.Message{
		ID:        id.String(),
		Content:   content,
		Sender:    sender,
		Timestamp: s.now().UTC().Truncate(time.Millisecond),
	}
}

// AppendMessage appends msg to the log, trims the head to the retention
// bound and broadcasts a message event.
func (s *Store) AppendMessage(msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, msg)
	metrics.ChatMessagesAppended.Inc()

	if overflow := len(s.messages) - s.maxMessages; overflow > 0 {
		// Shift in place so the backing array does not grow without bound
		n := copy(s.messages, s.messages[overflow:])
		for i := n; i < len(s.messages); i++ {
			s.messages[i] = models.Message{}
		}
		s.messages = s.messages[:n]
		metrics.ChatMessagesTrimmed.Add(float64(overflow))
	}

	s.broadcastLocked(models.Event{Type: models.EventTypeMessage, Data: msg})
}

// GetMessages returns a copy of the message log in creation order.
func (s *Store) GetMessages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messagesLocked()
}

// SetUserOnline inserts or replaces the presence entry for entry.ID with
// LastSeen set to now, then broadcasts the raw presence table.
func (s *Store) SetUserOnline(entry models.PresenceEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.LastSeen = s.now()
	if _, exists := s.presence[entry.ID]; !exists {
		s.presenceOrder = append(s.presenceOrder, entry.ID)
	}
	s.presence[entry.ID] = entry

	s.broadcastLocked(models.Event{Type: models.EventTypeUsersUpdate, Data: s.usersLocked()})
}

// SetUserOffline removes the presence entry for id, if any, and broadcasts
// the resulting raw presence table. Removing an absent id is not an error.
func (s *Store) SetUserOffline(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deletePresenceLocked(id)
	s.broadcastLocked(models.Event{Type: models.EventTypeUsersUpdate, Data: s.usersLocked()})
}

// TouchUserActivity refreshes LastSeen for id. Unknown ids are ignored.
// Activity pings never broadcast.
func (s *Store) TouchUserActivity(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.presence[id]
	if !ok {
		return
	}
	entry.LastSeen = s.now()
	s.presence[id] = entry
}

// GetOnlineUsers removes every entry whose LastSeen is older than the
// liveness window and returns a copy of what remains.
//
// This lazy sweep is the only expiry path unless a PresenceSweeper is
// running. Broadcasts between reads may still carry entries that this
// call would remove.
func (s *Store) GetOnlineUsers() []models.PresenceEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	return s.usersLocked()
}

// SweepExpired removes expired presence entries and broadcasts the table
// when at least one entry was removed. Returns the number removed.
func (s *Store) SweepExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.sweepLocked()
	if removed > 0 {
		s.broadcastLocked(models.Event{Type: models.EventTypeUsersUpdate, Data: s.usersLocked()})
	}
	return removed
}

// Subscribe registers listener for every future broadcast and returns a
// function that unregisters it. The returned function is safe to call
// more than once.
func (s *Store) Subscribe(listener Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscribeLocked(listener)
}

// SubscribeWithSnapshot registers listener and captures the init payload in
// the same critical section. No event can fall between the snapshot and the
// first delivery to listener.
func (s *Store) SubscribeWithSnapshot(listener Listener) (models.InitData, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	snapshot := models.InitData{
		Messages: s.messagesLocked(),
		Users:    s.usersLocked(),
	}
	return snapshot, s.subscribeLocked(listener)
}

// Stats returns the current store size without sweeping presence.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Stats{
		Messages:    len(s.messages),
		Presence:    len(s.presence),
		Subscribers: s.subs.len(),
	}
}

func (s *Store) subscribeLocked(listener Listener) func() {
	token := s.subs.add(listener)
	metrics.ChatSubscribers.Set(float64(s.subs.len()))
	logging.Debug().Uint64("subscription", token).Int("subscribers", s.subs.len()).Msg("Chat subscriber registered")

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.subs.remove(token) {
				metrics.ChatSubscribers.Set(float64(s.subs.len()))
				logging.Debug().Uint64("subscription", token).Int("subscribers", s.subs.len()).Msg("Chat subscriber removed")
			}
		})
	}
}

// broadcastLocked delivers event to every listener in registration order.
// A panicking listener is logged and skipped.
func (s *Store) broadcastLocked(event models.Event) {
	metrics.ChatBroadcasts.WithLabelValues(event.Type).Inc()
	for _, sub := range s.subs.subs {
		deliver(sub, event)
	}
}

func deliver(sub subscription, event models.Event) {
	defer func() {
		if r := recover(); r != nil {
			metrics.ChatSubscriberPanics.Inc()
			logging.Error().
				Uint64("subscription", sub.token).
				Str("event_type", event.Type).
				Str("panic", fmt.Sprint(r)).
				Msg("Chat subscriber panicked during broadcast")
		}
	}()
	sub.listener(event)
}

// sweepLocked drops entries whose LastSeen is strictly older than the
// liveness window. An entry exactly at the boundary is kept.
func (s *Store) sweepLocked() int {
	now := s.now()
	removed := 0
	kept := s.presenceOrder[:0]
	for _, id := range s.presenceOrder {
		if now.Sub(s.presence[id].LastSeen) > s.presenceTTL {
			delete(s.presence, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	for i := len(kept); i < len(s.presenceOrder); i++ {
		s.presenceOrder[i] = ""
	}
	s.presenceOrder = kept

	if removed > 0 {
		metrics.ChatPresenceExpired.Add(float64(removed))
	}
	return removed
}

func (s *Store) deletePresenceLocked(id string) {
	if _, ok := s.presence[id]; !ok {
		return
	}
	delete(s.presence, id)
	for i, existing := range s.presenceOrder {
		if existing == id {
			s.presenceOrder = append(s.presenceOrder[:i], s.presenceOrder[i+1:]...)
			break
		}
	}
}

// messagesLocked returns a copy of the log. Never nil.
func (s *Store) messagesLocked() []models.Message {
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// usersLocked returns a copy of the raw presence table. Never nil.
func (s *Store) usersLocked() []models.PresenceEntry {
	out := make([]models.PresenceEntry, 0, len(s.presenceOrder))
	for _, id := range s.presenceOrder {
		out = append(out, s.presence[id])
	}
	return out
}
