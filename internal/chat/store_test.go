// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package chat

import (
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/rawdawg23/jellyfin-store/internal/logging"
	"github.com/rawdawg23/jellyfin-store/internal/metrics"
	"github.com/rawdawg23/jellyfin-store/internal/models"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

// fakeClock is a manually advanced clock for liveness tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(clock *fakeClock) *Store {
	cfg := DefaultStoreConfig()
	cfg.Now = clock.Now
	return NewStore(cfg)
}

// recorder collects events delivered to a listener.
type recorder struct {
	events []models.Event
}

func (r *recorder) listen(ev models.Event) {
	r.events = append(r.events, ev)
}

func testSender(id string) models.Sender {
	return models.Sender{ID: id, Name: "User " + id, Role: "member"}
}

func testUser(id string) models.PresenceEntry {
	return models.NewPresenceEntry(testSender(id), time.Time{})
}

func presenceIDs(users []models.PresenceEntry) []string {
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewStore_Defaults(t *testing.T) {
	s := NewStore(StoreConfig{})

	if s.maxMessages != DefaultMaxMessages {
		t.Errorf("maxMessages = %d, want %d", s.maxMessages, DefaultMaxMessages)
	}
	if s.presenceTTL != DefaultPresenceTTL {
		t.Errorf("presenceTTL = %v, want %v", s.presenceTTL, DefaultPresenceTTL)
	}
	if s.now == nil {
		t.Error("now should default to time.Now")
	}

	if msgs := s.GetMessages(); msgs == nil || len(msgs) != 0 {
		t.Errorf("GetMessages on empty store = %#v, want empty non-nil slice", msgs)
	}
	if users := s.GetOnlineUsers(); users == nil || len(users) != 0 {
		t.Errorf("GetOnlineUsers on empty store = %#v, want empty non-nil slice", users)
	}
}

func TestStore_AppendMessage_OrderAndRetention(t *testing.T) {
	tests := []struct {
		name     string
		appended int
		wantLen  int
		wantHead int
	}{
		{"below bound", 10, 10, 0},
		{"at bound", 100, 100, 0},
		{"one over bound", 101, 100, 1},
		{"far over bound", 250, 100, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(newFakeClock())

			for i := 0; i < tt.appended; i++ {
				s.AppendMessage(s.NewMessage(fmt.Sprintf("msg-%d", i), testSender("u1")))
				if n := len(s.GetMessages()); n > DefaultMaxMessages {
					t.Fatalf("log length %d exceeds bound after %d appends", n, i+1)
				}
			}

			msgs := s.GetMessages()
			if len(msgs) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(msgs), tt.wantLen)
			}
			for i, m := range msgs {
				want := fmt.Sprintf("msg-%d", tt.wantHead+i)
				if m.Content != want {
					t.Fatalf("msgs[%d].Content = %q, want %q", i, m.Content, want)
				}
			}
		})
	}
}

func TestStore_GetMessages_ReturnsSnapshot(t *testing.T) {
	s := newTestStore(newFakeClock())
	s.AppendMessage(s.NewMessage("first", testSender("u1")))

	snapshot := s.GetMessages()
	s.AppendMessage(s.NewMessage("second", testSender("u1")))

	if len(snapshot) != 1 {
		t.Fatalf("snapshot observed later append: len = %d", len(snapshot))
	}

	snapshot[0].Content = "mutated"
	if got := s.GetMessages()[0].Content; got != "first" {
		t.Errorf("store observed caller mutation: %q", got)
	}
}

func TestStore_NewMessage(t *testing.T) {
	clock := newFakeClock()
	s := newTestStore(clock)

	sender := testSender("u1")
	first := s.NewMessage("hello", sender)
	clock.Advance(time.Millisecond)
	second := s.NewMessage("world", sender)

	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", first.ID, second.ID)
	}
	if first.ID >= second.ID {
		t.Errorf("ids should increase in creation order: %q >= %q", first.ID, second.ID)
	}
	if !first.Timestamp.Equal(clock.Now().Add(-time.Millisecond)) {
		t.Errorf("timestamp = %v, want store clock time", first.Timestamp)
	}
	if first.Sender != sender {
		t.Errorf("sender = %+v, want %+v", first.Sender, sender)
	}
}

func TestStore_AppendMessage_Broadcasts(t *testing.T) {
	s := newTestStore(newFakeClock())
	rec := &recorder{}
	s.Subscribe(rec.listen)

	m := s.NewMessage("hi", testSender("u1"))
	s.AppendMessage(m)

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	ev := rec.events[0]
	if ev.Type != models.EventTypeMessage {
		t.Errorf("event type = %q, want %q", ev.Type, models.EventTypeMessage)
	}
	if got, ok := ev.Data.(models.Message); !ok || got.ID != m.ID {
		t.Errorf("event data = %#v, want message %s", ev.Data, m.ID)
	}
}

func TestStore_Presence_Liveness(t *testing.T) {
	clock := newFakeClock()
	s := newTestStore(clock)

	s.SetUserOnline(testUser("u1"))
	if ids := presenceIDs(s.GetOnlineUsers()); !equalStrings(ids, []string{"u1"}) {
		t.Fatalf("online = %v, want [u1]", ids)
	}

	clock.Advance(31 * time.Second)
	if ids := presenceIDs(s.GetOnlineUsers()); len(ids) != 0 {
		t.Fatalf("online after 31s = %v, want none", ids)
	}

	// Idempotent absence: activity cannot revive an expired entry
	s.TouchUserActivity("u1")
	clock.Advance(time.Second)
	for i := 0; i < 3; i++ {
		if ids := presenceIDs(s.GetOnlineUsers()); len(ids) != 0 {
			t.Fatalf("read %d: expired entry reappeared: %v", i, ids)
		}
	}

	s.SetUserOnline(testUser("u1"))
	if ids := presenceIDs(s.GetOnlineUsers()); !equalStrings(ids, []string{"u1"}) {
		t.Errorf("online after re-add = %v, want [u1]", ids)
	}
}

func TestStore_Presence_WindowBoundary(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{"fresh", 0, true},
		{"inside window", 29 * time.Second, true},
		{"exactly at window", 30 * time.Second, true},
		{"just past window", 30*time.Second + time.Millisecond, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			s := newTestStore(clock)
			s.SetUserOnline(testUser("u1"))

			clock.Advance(tt.elapsed)
			got := len(s.GetOnlineUsers()) == 1
			if got != tt.want {
				t.Errorf("online = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStore_TouchUserActivity_ExtendsWindow(t *testing.T) {
	clock := newFakeClock()
	s := newTestStore(clock)

	s.SetUserOnline(testUser("u1"))
	s.SetUserOnline(testUser("u2"))

	clock.Advance(20 * time.Second)
	s.TouchUserActivity("u1")

	clock.Advance(20 * time.Second)
	if ids := presenceIDs(s.GetOnlineUsers()); !equalStrings(ids, []string{"u1"}) {
		t.Errorf("online = %v, want [u1]", ids)
	}
}

func TestStore_TouchUserActivity_NoBroadcast(t *testing.T) {
	s := newTestStore(newFakeClock())
	s.SetUserOnline(testUser("u1"))

	rec := &recorder{}
	s.Subscribe(rec.listen)

	s.TouchUserActivity("u1")
	s.TouchUserActivity("missing")

	if len(rec.events) != 0 {
		t.Errorf("activity pings broadcast %d events", len(rec.events))
	}
	if ids := presenceIDs(s.GetOnlineUsers()); !equalStrings(ids, []string{"u1"}) {
		t.Errorf("touch on missing id changed table: %v", ids)
	}
}

func TestStore_SetUserOnline_ReplacesInPlace(t *testing.T) {
	s := newTestStore(newFakeClock())

	s.SetUserOnline(testUser("u1"))
	s.SetUserOnline(testUser("u2"))

	renamed := testUser("u1")
	renamed.Name = "Renamed"
	s.SetUserOnline(renamed)

	users := s.GetOnlineUsers()
	if ids := presenceIDs(users); !equalStrings(ids, []string{"u1", "u2"}) {
		t.Fatalf("online = %v, want [u1 u2]", ids)
	}
	if users[0].Name != "Renamed" {
		t.Errorf("entry not replaced: name = %q", users[0].Name)
	}
}

func TestStore_SetUserOffline(t *testing.T) {
	s := newTestStore(newFakeClock())
	s.SetUserOnline(testUser("u1"))
	s.SetUserOnline(testUser("u2"))

	rec := &recorder{}
	s.Subscribe(rec.listen)

	s.SetUserOffline("u1")
	s.SetUserOffline("absent")

	if ids := presenceIDs(s.GetOnlineUsers()); !equalStrings(ids, []string{"u2"}) {
		t.Errorf("online = %v, want [u2]", ids)
	}

	if len(rec.events) != 2 {
		t.Fatalf("expected 2 users_update events, got %d", len(rec.events))
	}
	for _, ev := range rec.events {
		if ev.Type != models.EventTypeUsersUpdate {
			t.Errorf("event type = %q, want %q", ev.Type, models.EventTypeUsersUpdate)
		}
		users, ok := ev.Data.([]models.PresenceEntry)
		if !ok {
			t.Fatalf("event data type = %T", ev.Data)
		}
		if ids := presenceIDs(users); !equalStrings(ids, []string{"u2"}) {
			t.Errorf("broadcast table = %v, want [u2]", ids)
		}
	}
}

func TestStore_UsersUpdate_CarriesRawTable(t *testing.T) {
	clock := newFakeClock()
	s := newTestStore(clock)

	s.SetUserOnline(testUser("stale"))
	clock.Advance(45 * time.Second)

	rec := &recorder{}
	s.Subscribe(rec.listen)

	// No read has happened, so the stale entry is still in the raw table
	s.SetUserOnline(testUser("fresh"))

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	users := rec.events[0].Data.([]models.PresenceEntry)
	if ids := presenceIDs(users); !equalStrings(ids, []string{"stale", "fresh"}) {
		t.Errorf("broadcast table = %v, want [stale fresh]", ids)
	}

	if ids := presenceIDs(s.GetOnlineUsers()); !equalStrings(ids, []string{"fresh"}) {
		t.Errorf("online = %v, want [fresh]", ids)
	}
}

func TestStore_Broadcast_RegistrationOrder(t *testing.T) {
	s := newTestStore(newFakeClock())

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		s.Subscribe(func(models.Event) { order = append(order, i) })
	}

	s.AppendMessage(s.NewMessage("x", testSender("u1")))
	s.SetUserOnline(testUser("u1"))

	want := []int{0, 1, 2, 3, 4, 0, 1, 2, 3, 4}
	if len(order) != len(want) {
		t.Fatalf("deliveries = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("deliveries = %v, want %v", order, want)
		}
	}
}

func TestStore_Broadcast_PanicIsolation(t *testing.T) {
	s := newTestStore(newFakeClock())

	before := &recorder{}
	after := &recorder{}
	s.Subscribe(before.listen)
	s.Subscribe(func(models.Event) { panic("listener failure") })
	s.Subscribe(after.listen)

	panics := testutil.ToFloat64(metrics.ChatSubscriberPanics)

	s.AppendMessage(s.NewMessage("x", testSender("u1")))
	s.SetUserOffline("u1")

	if len(before.events) != 2 || len(after.events) != 2 {
		t.Errorf("deliveries before=%d after=%d, want 2 each", len(before.events), len(after.events))
	}
	if got := testutil.ToFloat64(metrics.ChatSubscriberPanics); got != panics+2 {
		t.Errorf("panic counter = %v, want %v", got, panics+2)
	}
	if n := len(s.GetMessages()); n != 1 {
		t.Errorf("mutation lost after listener panic: %d messages", n)
	}
}

func TestStore_Unsubscribe(t *testing.T) {
	s := newTestStore(newFakeClock())
	rec := &recorder{}

	unsubscribe := s.Subscribe(rec.listen)

	m1 := s.NewMessage("m1", testSender("u1"))
	s.AppendMessage(m1)
	if len(rec.events) != 1 || rec.events[0].Data.(models.Message).ID != m1.ID {
		t.Fatalf("expected m1 delivery, got %#v", rec.events)
	}

	unsubscribe()
	unsubscribe()

	s.AppendMessage(s.NewMessage("m2", testSender("u1")))
	if len(rec.events) != 1 {
		t.Errorf("received %d events after unsubscribe, want 1", len(rec.events))
	}
	if n := s.Stats().Subscribers; n != 0 {
		t.Errorf("subscribers = %d, want 0", n)
	}
}

func TestStore_Unsubscribe_KeepsOthers(t *testing.T) {
	s := newTestStore(newFakeClock())
	a, b, c := &recorder{}, &recorder{}, &recorder{}

	s.Subscribe(a.listen)
	unsubB := s.Subscribe(b.listen)
	s.Subscribe(c.listen)

	unsubB()
	s.SetUserOnline(testUser("u1"))

	if len(a.events) != 1 || len(b.events) != 0 || len(c.events) != 1 {
		t.Errorf("deliveries a=%d b=%d c=%d, want 1 0 1", len(a.events), len(b.events), len(c.events))
	}
}

func TestStore_SubscribeWithSnapshot(t *testing.T) {
	clock := newFakeClock()
	s := newTestStore(clock)

	snap, unsubscribe := s.SubscribeWithSnapshot(func(models.Event) {})
	if snap.Messages == nil || snap.Users == nil {
		t.Fatal("empty snapshot must use empty slices, not nil")
	}
	unsubscribe()

	s.AppendMessage(s.NewMessage("m1", testSender("u1")))
	s.SetUserOnline(testUser("old"))
	clock.Advance(31 * time.Second)
	s.SetUserOnline(testUser("new"))

	rec := &recorder{}
	snap, unsubscribe = s.SubscribeWithSnapshot(rec.listen)
	defer unsubscribe()

	if len(snap.Messages) != 1 {
		t.Errorf("snapshot messages = %d, want 1", len(snap.Messages))
	}
	if ids := presenceIDs(snap.Users); !equalStrings(ids, []string{"new"}) {
		t.Errorf("snapshot users = %v, want [new]", ids)
	}

	s.AppendMessage(s.NewMessage("m2", testSender("u1")))
	if len(rec.events) != 1 {
		t.Errorf("live events after snapshot = %d, want 1", len(rec.events))
	}
}

func TestStore_SweepExpired(t *testing.T) {
	clock := newFakeClock()
	s := newTestStore(clock)
	rec := &recorder{}

	s.SetUserOnline(testUser("u1"))
	s.Subscribe(rec.listen)

	if removed := s.SweepExpired(); removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
	if len(rec.events) != 0 {
		t.Errorf("sweep with nothing expired broadcast %d events", len(rec.events))
	}

	clock.Advance(31 * time.Second)
	if removed := s.SweepExpired(); removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if len(rec.events) != 1 || rec.events[0].Type != models.EventTypeUsersUpdate {
		t.Fatalf("expected one users_update, got %#v", rec.events)
	}
	if users := rec.events[0].Data.([]models.PresenceEntry); len(users) != 0 {
		t.Errorf("broadcast table = %v, want empty", presenceIDs(users))
	}
}

func TestStore_Stats_DoesNotSweep(t *testing.T) {
	clock := newFakeClock()
	s := newTestStore(clock)

	s.SetUserOnline(testUser("u1"))
	s.AppendMessage(s.NewMessage("m", testSender("u1")))
	unsubscribe := s.Subscribe(func(models.Event) {})
	defer unsubscribe()

	clock.Advance(time.Minute)

	st := s.Stats()
	if st.Messages != 1 || st.Presence != 1 || st.Subscribers != 1 {
		t.Errorf("stats = %+v, want 1/1/1", st)
	}
}

func TestStore_ConcurrentMutations(t *testing.T) {
	s := NewStore(DefaultStoreConfig())

	var (
		mu       sync.Mutex
		received []string
	)
	s.Subscribe(func(ev models.Event) {
		if ev.Type == models.EventTypeMessage {
			mu.Lock()
			received = append(received, ev.Data.(models.Message).ID)
			mu.Unlock()
		}
	})

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			id := fmt.Sprintf("u%d", w)
			for i := 0; i < 50; i++ {
				s.AppendMessage(s.NewMessage("x", testSender(id)))
				s.SetUserOnline(testUser(id))
				s.TouchUserActivity(id)
				_ = s.GetOnlineUsers()
			}
		}(w)
	}
	wg.Wait()

	msgs := s.GetMessages()
	if len(msgs) != DefaultMaxMessages {
		t.Fatalf("messages = %d, want %d", len(msgs), DefaultMaxMessages)
	}

	// The log tail must match the broadcast order exactly
	tail := received[len(received)-len(msgs):]
	for i := range msgs {
		if msgs[i].ID != tail[i] {
			t.Fatalf("log order diverges from broadcast order at %d", i)
		}
	}
	if n := len(s.GetOnlineUsers()); n != 8 {
		t.Errorf("online users = %d, want 8", n)
	}
}
