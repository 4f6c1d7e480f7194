// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

// Package docs registers the OpenAPI document served at /swagger/doc.json.
//
// The document mirrors the swag annotations on the API handlers and the
// general info block in cmd/server. Regenerate it after changing either:
//
//	swag init -g cmd/server/main.go -o docs --outputTypes go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/chat": {
            "get": {
                "description": "action=messages or action=users returns a snapshot. Any other request opens a text/event-stream with an init frame followed by live message and users_update frames.",
                "produces": ["application/json", "text/event-stream"],
                "tags": ["Chat"],
                "summary": "Chat snapshot or live event stream",
                "parameters": [
                    {
                        "enum": ["messages", "users"],
                        "type": "string",
                        "description": "Snapshot to return",
                        "name": "action",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "Snapshot body or event stream"},
                    "503": {"description": "Server is shutting down", "schema": {"$ref": "#/definitions/api.chatError"}}
                }
            },
            "post": {
                "description": "Runs send_message, user_online, user_offline or user_activity. Every successful command except user_activity is broadcast to open streams.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Chat write command",
                "parameters": [
                    {
                        "description": "Command",
                        "name": "command",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/api.ChatRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Command applied", "schema": {"$ref": "#/definitions/api.commandResult"}},
                    "400": {"description": "Invalid action or invalid data", "schema": {"$ref": "#/definitions/api.chatError"}},
                    "500": {"description": "Malformed body", "schema": {"$ref": "#/definitions/api.chatError"}}
                }
            }
        },
        "/api/chat/ws": {
            "get": {
                "description": "Upgrades to a WebSocket that carries the same init and live frames as the event stream.",
                "tags": ["Chat"],
                "summary": "Chat WebSocket stream",
                "responses": {
                    "101": {"description": "Switching protocols"},
                    "503": {"description": "Server is shutting down"}
                }
            }
        },
        "/api/v1/health/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "Process is alive", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/v1/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Accepting streams", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Stream hub has shut down", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/v1/media/server": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Media"],
                "summary": "Jellyfin server information",
                "responses": {
                    "200": {"description": "Server information", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "502": {"description": "Jellyfin request failed", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Integration disabled or circuit open", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/v1/media/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Media"],
                "summary": "Jellyfin users",
                "responses": {
                    "200": {"description": "User list", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "502": {"description": "Jellyfin request failed", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Integration disabled or circuit open", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/v1/media/libraries": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Media"],
                "summary": "Jellyfin libraries",
                "responses": {
                    "200": {"description": "Library list", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "502": {"description": "Jellyfin request failed", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Integration disabled or circuit open", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.ChatRequest": {
            "type": "object",
            "properties": {
                "action": {"type": "string", "enum": ["send_message", "user_online", "user_offline", "user_activity"]},
                "data": {"type": "object"}
            }
        },
        "api.chatError": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "array", "items": {"type": "object"}}
            }
        },
        "api.commandResult": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"$ref": "#/definitions/models.Message"}
            }
        },
        "models.Sender": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "avatar": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "models.Message": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "content": {"type": "string"},
                "sender": {"$ref": "#/definitions/models.Sender"},
                "timestamp": {"type": "string", "format": "date-time"}
            }
        },
        "models.PresenceEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "avatar": {"type": "string"},
                "role": {"type": "string"},
                "lastSeen": {"type": "string", "format": "date-time"}
            }
        },
        "models.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.APIResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "data": {},
                "metadata": {
                    "type": "object",
                    "properties": {
                        "timestamp": {"type": "string", "format": "date-time"},
                        "query_time_ms": {"type": "integer"}
                    }
                },
                "error": {"$ref": "#/definitions/models.APIError"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Jellyfin Store Chat API",
	Description:      "Real-time chat and presence relay for the Jellyfin Store marketplace.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
