package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ContentGuard API",
        "description": "Content moderation console backend",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Operator session lifecycle"},
        {"name": "Review", "description": "Pending moderation queue"},
        {"name": "History", "description": "Decided items and exports"},
        {"name": "Dashboard", "description": "Moderation summary"},
        {"name": "Policies", "description": "Moderation policy catalogue"},
        {"name": "API Keys", "description": "Platform integration keys"},
        {"name": "Notifications", "description": "Operator notification feed"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Log in with the demo credentials",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Signed in", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/signup": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Create a moderator session",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/SignupRequest"}}
                ],
                "responses": {
                    "200": {"description": "Signed up", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/password-strength": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Score a candidate password",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"type": "object", "properties": {"password": {"type": "string"}}}}
                ],
                "responses": {
                    "200": {"description": "Score and label", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/session": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current session state",
                "responses": {
                    "200": {"description": "Session snapshot", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "End the operator session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Logged out", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/review": {
            "get": {
                "tags": ["Review"],
                "summary": "Current queue view",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Queue view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Session loading"}
                }
            }
        },
        "/review/filters": {
            "put": {
                "tags": ["Review"],
                "summary": "Replace queue filters",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/QueueFilters"}}
                ],
                "responses": {
                    "200": {"description": "Queue view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/review/mode": {
            "put": {
                "tags": ["Review"],
                "summary": "Switch between list and single mode",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"type": "object", "properties": {"mode": {"type": "string", "enum": ["list", "single"]}}}}
                ],
                "responses": {
                    "200": {"description": "Queue view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/review/items/{id}/review": {
            "post": {
                "tags": ["Review"],
                "summary": "Open an item in single mode",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Queue view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/review/next": {
            "post": {
                "tags": ["Review"],
                "summary": "Advance to the next pending item",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Queue view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/review/previous": {
            "post": {
                "tags": ["Review"],
                "summary": "Step back to the previous pending item",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Queue view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/review/items/{id}/approve": {
            "post": {
                "tags": ["Review"],
                "summary": "Approve a pending item",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "body", "name": "payload", "schema": {"type": "object", "properties": {"notes": {"type": "string"}}}}
                ],
                "responses": {
                    "200": {"description": "Queue view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown item", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Item already decided", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/review/items/{id}/reject": {
            "post": {
                "tags": ["Review"],
                "summary": "Reject a pending item with a violation category",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/RejectRequest"}}
                ],
                "responses": {
                    "200": {"description": "Queue view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Category missing", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/history": {
            "get": {
                "tags": ["History"],
                "summary": "Search decided items",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "search", "type": "string"},
                    {"in": "query", "name": "dateRange", "type": "string", "enum": ["today", "week", "month", "all"]},
                    {"in": "query", "name": "contentType", "type": "string"},
                    {"in": "query", "name": "decision", "type": "string", "enum": ["all", "approved", "rejected"]},
                    {"in": "query", "name": "platform", "type": "string"},
                    {"in": "query", "name": "page", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "History page", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/history/exports": {
            "post": {
                "tags": ["History"],
                "summary": "Queue a history export",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/HistoryExportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Export job queued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/history/exports/{id}": {
            "get": {
                "tags": ["History"],
                "summary": "Export job status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Export job", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown job", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/history/exports/download/{token}": {
            "get": {
                "tags": ["History"],
                "summary": "Download a finished export",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"in": "path", "name": "token", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Export file"},
                    "403": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Moderation summary",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Dashboard stats", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/policies": {
            "get": {
                "tags": ["Policies"],
                "summary": "List policies",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "search", "type": "string"},
                    {"in": "query", "name": "category", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Policies", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Policies"],
                "summary": "Create a policy",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/PolicyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Admin only", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/policies/{id}": {
            "put": {
                "tags": ["Policies"],
                "summary": "Update a policy",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/PolicyRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Policies"],
                "summary": "Delete a policy",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api-keys": {
            "get": {
                "tags": ["API Keys"],
                "summary": "List API keys with masked secrets",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "API keys", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["API Keys"],
                "summary": "Create an API key",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/APIKeyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api-keys/{id}/toggle": {
            "post": {
                "tags": ["API Keys"],
                "summary": "Flip an API key between active and inactive",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Toggled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api-keys/{id}/regenerate": {
            "post": {
                "tags": ["API Keys"],
                "summary": "Issue a new secret for an API key",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Regenerated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "Recent notifications, newest first",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "limit", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Notifications", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/stream": {
            "get": {
                "tags": ["Notifications"],
                "summary": "Websocket notification stream",
                "parameters": [
                    {"in": "query", "name": "access_token", "type": "string"}
                ],
                "responses": {
                    "101": {"description": "Switching protocols"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "SignupRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "name": {"type": "string"},
                "agreeToTerms": {"type": "boolean"}
            },
            "required": ["email", "password", "name", "agreeToTerms"]
        },
        "QueueFilters": {
            "type": "object",
            "properties": {
                "contentType": {"type": "string", "enum": ["all", "image", "video", "comment"]},
                "platform": {"type": "string"},
                "sortOrder": {"type": "string", "enum": ["newest", "oldest"]}
            }
        },
        "RejectRequest": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "notes": {"type": "string"}
            },
            "required": ["category"]
        },
        "HistoryExportRequest": {
            "type": "object",
            "properties": {
                "format": {"type": "string", "enum": ["csv", "pdf"]},
                "filters": {"type": "object"}
            },
            "required": ["format"]
        },
        "PolicyRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "severity": {"type": "string", "enum": ["low", "medium", "high"]},
                "automated": {"type": "boolean"}
            },
            "required": ["name", "description"]
        },
        "APIKeyRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "platform": {"type": "string"}
            },
            "required": ["name", "platform"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalCount": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
