// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

/*
Package websocket streams the chat feed over gorilla/websocket.

It is the second transport next to Server-Sent Events and carries exactly the
same frames, one JSON text message each:

	{"type":"init","data":{"messages":[...],"users":[...]}}
	{"type":"message","data":{...}}
	{"type":"users_update","data":[...]}

Clients may send {"type":"ping"} and receive {"type":"pong"}. Protocol-level
pings keep idle connections alive.

Each Client owns one chat.Feed, so the subscription and the connection live
and die together: when the peer goes away, the feed overflows, or the hub
shuts down, the feed is closed and then the connection. A feed overflow
closes the socket with 1013 (try again later).

All writes happen on the goroutine that calls Run; readPump only queues
control replies.
*/
package websocket
