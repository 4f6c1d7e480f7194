// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package api

import (
	"bufio"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/rawdawg23/jellyfin-store/internal/chat"
	"github.com/rawdawg23/jellyfin-store/internal/config"
	"github.com/rawdawg23/jellyfin-store/internal/logging"
	"github.com/rawdawg23/jellyfin-store/internal/models"
)

func init() {
	logging.Init(logging.Config{Level: "error", Output: io.Discard})
}

// testEnv bundles a handler with the store and hub behind it.
type testEnv struct {
	store   *chat.Store
	hub     *chat.Hub
	handler *Handler
	router  http.Handler
}

func testConfig() *config.Config {
	return &config.Config{
		Chat: config.ChatConfig{StreamBuffer: 16},
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
		},
	}
}

func newTestEnv(t *testing.T, cfg *config.Config, media MediaServer) *testEnv {
	t.Helper()
	store := chat.NewStore(chat.DefaultStoreConfig())
	hub := chat.NewHub(store, 16)
	h := NewHandler(hub, media, cfg)
	return &testEnv{
		store:   store,
		hub:     hub,
		handler: h,
		router:  NewRouter(h, cfg).Setup(),
	}
}

// do sends a request through the router.
func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// eventLog records store broadcasts.
type eventLog struct {
	mu     sync.Mutex
	events []models.Event
}

func (l *eventLog) listen(ev models.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// sseFrame is one decoded `data:` frame.
type sseFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// readSSELine returns the next non-empty line of an event stream.
func readSSELine(t *testing.T, rd *bufio.Reader) string {
	t.Helper()
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		for {
			line, err := rd.ReadString('\n')
			line = strings.TrimRight(line, "\n")
			if err != nil || line != "" {
				ch <- result{line, err}
				return
			}
		}
	}()
	select {
	case res := <-ch:
		if res.err != nil {
			t.Fatalf("read stream: %v", res.err)
		}
		return res.line
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for stream frame")
		return ""
	}
}

// readSSEFrame reads the next data frame, skipping comments.
func readSSEFrame(t *testing.T, rd *bufio.Reader) sseFrame {
	t.Helper()
	for {
		line := readSSELine(t, rd)
		if strings.HasPrefix(line, ":") {
			continue
		}
		payload, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			t.Fatalf("unexpected stream line %q", line)
		}
		var f sseFrame
		if err := json.Unmarshal([]byte(payload), &f); err != nil {
			t.Fatalf("decode frame %q: %v", payload, err)
		}
		return f
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}
