// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/rawdawg23/jellyfin-store/internal/logging"
	"github.com/rawdawg23/jellyfin-store/internal/metrics"
	"github.com/rawdawg23/jellyfin-store/internal/models"
	"github.com/rawdawg23/jellyfin-store/internal/validation"
)

// Chat command actions
const (
	ActionSendMessage  = "send_message"
	ActionUserOnline   = "user_online"
	ActionUserOffline  = "user_offline"
	ActionUserActivity = "user_activity"
)

// maxCommandBytes caps a chat command body.
const maxCommandBytes = 64 << 10

// sseKeepalive is an SSE comment line; clients ignore it.
var sseKeepalive = []byte(": keepalive\n\n")

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// SendMessageData is the data of a send_message command.
type SendMessageData struct {
	Content string        `json:"content" validate:"required,max=4000"`
	Sender  models.Sender `json:"sender"`
}

// UserOnlineData is the data of a user_online command.
type UserOnlineData struct {
	User models.Sender `json:"user"`
}

// UserIDData is the data of user_offline and user_activity commands.
type UserIDData struct {
	UserID string `json:"userId" validate:"required,max=128"`
}

// commandResult is the acknowledgement of a write command.
type commandResult struct {
	Success bool            `json:"success"`
	Message *models.Message `json:"message,omitempty"`
}

// ChatQuery handles GET /api/chat.
//
// ?action=messages and ?action=users return snapshots. Any other request
// opens the event stream.
//
// @Summary Chat snapshot or live event stream
// @Tags Chat
// @Produce json
// @Produce text/event-stream
// @Param action query string false "Snapshot to return" Enums(messages, users)
// @Success 200 {object} models.MessagesSnapshot "Snapshot body or event stream"
// @Failure 503 {object} chatError "Server is shutting down"
// @Router /api/chat [get]
func (h *Handler) ChatQuery(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("action") {
	case "messages":
		writeJSON(w, http.StatusOK, models.MessagesSnapshot{Messages: h.store.GetMessages()})
	case "users":
		writeJSON(w, http.StatusOK, models.UsersSnapshot{Users: h.store.GetOnlineUsers()})
	default:
		h.ChatStream(w, r)
	}
}

// ChatStream serves the Server-Sent Events stream: one init frame with the
// current state, then every store event until the client goes away, the
// feed overflows, or the server shuts down.
func (h *Handler) ChatStream(w http.ResponseWriter, r *http.Request) {
	feed, err := h.hub.Open(metrics.TransportSSE)
	if err != nil {
		writeChatError(w, http.StatusServiceUnavailable, msgUnavailable)
		return
	}
	defer feed.Close()

	rc := http.NewResponseController(w)
	// The server's write timeout would cut the stream off
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		logging.Warn().Err(err).Msg("Failed to clear write deadline for chat stream")
	}

	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	log := logging.Ctx(r.Context()).With().Str("transport", feed.Transport()).Logger()
	log.Debug().Msg("Chat stream opened")

	if !writeSSEFrame(w, rc, models.Event{Type: models.EventTypeInit, Data: feed.Init}) {
		return
	}

	var keepalive <-chan time.Time
	if h.keepalive > 0 {
		ticker := time.NewTicker(h.keepalive)
		defer ticker.Stop()
		keepalive = ticker.C
	}

	for {
		select {
		case ev := <-feed.Events():
			if !writeSSEFrame(w, rc, ev) {
				return
			}

		case <-keepalive:
			if _, err := w.Write(sseKeepalive); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}

		case <-feed.Done():
			if feed.Overflowed() {
				log.Warn().Msg("Chat stream client too slow, closing stream")
			}
			return

		case <-r.Context().Done():
			log.Debug().Msg("Chat stream closed by client")
			return
		}
	}
}

// writeSSEFrame writes one `data: <json>` frame and flushes it.
func writeSSEFrame(w io.Writer, rc *http.ResponseController, ev models.Event) bool {
	data, err := json.Marshal(ev)
	if err != nil {
		metrics.StreamErrors.WithLabelValues(metrics.TransportSSE, "encode").Inc()
		logging.Error().Err(err).Str("event_type", ev.Type).Msg("Failed to encode chat stream frame")
		return false
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		metrics.StreamErrors.WithLabelValues(metrics.TransportSSE, "write").Inc()
		return false
	}
	if err := rc.Flush(); err != nil {
		metrics.StreamErrors.WithLabelValues(metrics.TransportSSE, "flush").Inc()
		return false
	}
	metrics.StreamFramesSent.WithLabelValues(metrics.TransportSSE).Inc()
	return true
}

// ChatCommand handles POST /api/chat.
//
// Response:
//   - 200: {"success":true} or {"success":true,"message":{...}}
//   - 400: {"error":"Invalid action"} for an unknown action
//   - 400: {"error":"Invalid request","details":[...]} when validation fails
//   - 500: {"error":"Internal server error"} when the body cannot be decoded
//
// @Summary Chat write command
// @Tags Chat
// @Accept json
// @Produce json
// @Param command body ChatRequest true "Command"
// @Success 200 {object} commandResult "Command applied"
// @Failure 400 {object} chatError "Invalid action or invalid data"
// @Failure 500 {object} chatError "Malformed body"
// @Router /api/chat [post]
func (h *Handler) ChatCommand(w http.ResponseWriter, r *http.Request) {
	log := logging.Ctx(r.Context())

	var cmd ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCommandBytes)).Decode(&cmd); err != nil {
		log.Error().Err(err).Msg("Failed to decode chat command")
		metrics.RecordChatCommand("unknown", "error")
		writeChatError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	result, err := h.dispatch(&cmd)
	if err != nil {
		var verr *validation.RequestValidationError
		switch {
		case errors.Is(err, ErrInvalidAction):
			log.Warn().Str("action", sanitizeLogValue(cmd.Action)).Msg("Unknown chat action")
			metrics.RecordChatCommand("unknown", "invalid")
			writeChatError(w, http.StatusBadRequest, msgInvalidAction)
		case errors.As(err, &verr):
			log.Debug().Str("action", cmd.Action).Str("error", verr.Error()).Msg("Invalid chat command")
			metrics.RecordChatCommand(cmd.Action, "invalid")
			writeJSON(w, http.StatusBadRequest, chatError{Error: msgInvalidRequest, Details: verr.Errors()})
		default:
			log.Error().Err(err).Str("action", cmd.Action).Msg("Chat command failed")
			metrics.RecordChatCommand(cmd.Action, "error")
			writeChatError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	metrics.RecordChatCommand(cmd.Action, "ok")
	writeJSON(w, http.StatusOK, result)
}

// dispatch decodes and validates the command data and applies it to the store.
func (h *Handler) dispatch(cmd *ChatRequest) (*commandResult, error) {
	switch cmd.Action {
	case ActionSendMessage:
		var data SendMessageData
		if err := decodeCommandData(cmd.Data, &data); err != nil {
			return nil, err
		}
		msg := h.store.NewMessage(data.Content, data.Sender)
		h.store.AppendMessage(msg)
		logging.Debug().
			Str("message_id", msg.ID).
			Str("sender", logging.SanitizeUserID(data.Sender.ID)).
			Msg("Chat message appended")
		logging.Trace().
			Str("message_id", msg.ID).
			Str("preview", logging.SanitizeContent(msg.Content, 64)).
			Msg("Chat message content")
		return &commandResult{Success: true, Message: &msg}, nil

	case ActionUserOnline:
		var data UserOnlineData
		if err := decodeCommandData(cmd.Data, &data); err != nil {
			return nil, err
		}
		h.store.SetUserOnline(models.NewPresenceEntry(data.User, time.Time{}))
		return &commandResult{Success: true}, nil

	case ActionUserOffline:
		var data UserIDData
		if err := decodeCommandData(cmd.Data, &data); err != nil {
			return nil, err
		}
		h.store.SetUserOffline(data.UserID)
		return &commandResult{Success: true}, nil

	case ActionUserActivity:
		var data UserIDData
		if err := decodeCommandData(cmd.Data, &data); err != nil {
			return nil, err
		}
		h.store.TouchUserActivity(data.UserID)
		return &commandResult{Success: true}, nil

	default:
		return nil, ErrInvalidAction
	}
}

// decodeCommandData unmarshals raw into v and validates it. Missing data
// decodes to the zero value, which then fails validation.
func decodeCommandData(raw json.RawMessage, v interface{}) error {
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, v); err != nil {
			return fmt.Errorf("decode command data: %w", err)
		}
	}
	if verr := validation.ValidateStruct(v); verr != nil {
		return verr
	}
	return nil
}
