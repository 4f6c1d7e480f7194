// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

/*
Package api exposes the chat broadcast store over HTTP.

# Chat endpoint

	GET  /api/chat?action=messages   {"messages":[...]}
	GET  /api/chat?action=users      {"users":[...]} (expired entries are swept first)
	GET  /api/chat                   text/event-stream
	GET  /api/chat/ws                websocket carrying the same frames
	POST /api/chat                   {"action":"...","data":{...}}

The event stream starts with an init frame holding the full current state and
then carries one frame per store mutation:

	data: {"type":"init","data":{"messages":[],"users":[]}}

	data: {"type":"message","data":{"id":"...","content":"hi",...}}

	data: {"type":"users_update","data":[...]}

Comment lines (": keepalive") are sent on idle streams when
chat.keepalive_interval is positive. A stream whose frame queue fills up is
closed; the client reconnects and gets a fresh init frame.

Write commands:

	send_message   {"content":"...","sender":{"id":"...","name":"..."}}   -> {"success":true,"message":{...}}
	user_online    {"user":{"id":"...","name":"..."}}                     -> {"success":true}
	user_offline   {"userId":"..."}                                        -> {"success":true}
	user_activity  {"userId":"..."}                                        -> {"success":true}

Unknown actions get 400 {"error":"Invalid action"}, payloads failing
validation get 400 {"error":"Invalid request","details":[...]} and bodies
that cannot be decoded get 500 {"error":"Internal server error"}.

# Other endpoints

	GET /api/v1/health/live
	GET /api/v1/health/ready
	GET /api/v1/media/server|users|libraries   (503 unless Jellyfin is enabled)
	GET /metrics
	GET /swagger/*   (Swagger UI over the docs package)

Health and media endpoints use the models.APIResponse envelope.

# Middleware

Global: request ID, real IP, panic recovery, CORS (go-chi/cors) and
Prometheus request metrics. Route groups add per-IP rate limits
(go-chi/httprate) and security headers. Only the media group is compressed,
so stream frames are never buffered by a compressor.
*/
package api
