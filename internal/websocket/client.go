// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package websocket

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/rawdawg23/jellyfin-store/internal/chat"
	"github.com/rawdawg23/jellyfin-store/internal/logging"
	"github.com/rawdawg23/jellyfin-store/internal/metrics"
	"github.com/rawdawg23/jellyfin-store/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024 // clients only send small control messages
)

// Client message types. Event frames reuse the chat event types.
const (
	MessageTypePing = "ping"
	MessageTypePong = "pong"
)

// Message is a control message from or to the client.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// clientIDCounter gives every client a unique, increasing ID for logs.
var clientIDCounter atomic.Uint64

// Client streams one chat feed over one websocket connection.
type Client struct {
	id      uint64
	conn    *websocket.Conn
	feed    *chat.Feed
	control chan Message
	log     zerolog.Logger
}

// NewClient pairs an upgraded connection with an open feed. The client owns
// both from here on and closes them when Run returns.
func NewClient(conn *websocket.Conn, feed *chat.Feed) *Client {
	return &Client{
		id:      clientIDCounter.Add(1),
		conn:    conn,
		feed:    feed,
		control: make(chan Message, 16),
		log:     logging.Logger(),
	}
}

// ID returns the client's unique identifier.
func (c *Client) ID() uint64 {
	return c.id
}

// Run sends the init frame, then every feed event, until the client goes
// away, the feed closes, or ctx is done. The feed is always closed before
// Run returns. Logs go to the logger in ctx, tagged with the client ID.
func (c *Client) Run(ctx context.Context) {
	c.log = logging.Ctx(ctx).With().Uint64("client", c.id).Logger()

	readDone := make(chan struct{})
	go c.readPump(readDone)

	c.writePump(ctx, readDone)
}

// readPump handles client control messages until the connection fails.
func (c *Client) readPump(done chan<- struct{}) {
	defer close(done)

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				metrics.StreamErrors.WithLabelValues(metrics.TransportWebSocket, "read").Inc()
				c.log.Warn().Err(err).Msg("unexpected websocket close error")
			}
			return
		}

		if msg.Type == MessageTypePing {
			select {
			case c.control <- Message{Type: MessageTypePong}:
			default:
			}
		}
	}
}

// writePump owns every write to the connection.
func (c *Client) writePump(ctx context.Context, readDone <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	closeCode, closeText := websocket.CloseNormalClosure, ""

	defer func() {
		ticker.Stop()
		c.feed.Close()
		if c.feed.Overflowed() {
			closeCode, closeText = websocket.CloseTryAgainLater, "slow consumer"
		}
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(closeCode, closeText),
			time.Now().Add(writeWait))
		_ = c.conn.Close() // Explicitly ignore error - best-effort cleanup
	}()

	init := models.Event{Type: models.EventTypeInit, Data: c.feed.Init}
	if !c.writeFrame(init) {
		return
	}

	for {
		select {
		case ev := <-c.feed.Events():
			if !c.writeFrame(ev) {
				return
			}

		case msg := <-c.control:
			if !c.writeFrame(msg) {
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.feed.Done():
			if c.feed.Overflowed() {
				c.log.Warn().Msg("websocket client too slow, closing stream")
			}
			return

		case <-readDone:
			return

		case <-ctx.Done():
			closeCode = websocket.CloseGoingAway
			return
		}
	}
}

// writeFrame encodes v as one JSON text message. Returns false if the
// connection should be dropped.
func (c *Client) writeFrame(v interface{}) bool {
	data, err := json.Marshal(v)
	if err != nil {
		metrics.StreamErrors.WithLabelValues(metrics.TransportWebSocket, "encode").Inc()
		c.log.Error().Err(err).Msg("failed to encode websocket frame")
		return false
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.log.Error().Err(err).Msg("failed to set write deadline")
		return false
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		metrics.StreamErrors.WithLabelValues(metrics.TransportWebSocket, "write").Inc()
		return false
	}

	metrics.StreamFramesSent.WithLabelValues(metrics.TransportWebSocket).Inc()
	return true
}
