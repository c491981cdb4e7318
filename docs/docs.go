// Package docs holds the OpenAPI document served at /swagger/doc.json.
// Regenerate with: swag init -g cmd/legislativas/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Legislativas OSS",
            "url": "https://github.com/custodia-labs/legislativas/issues"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/generate-answer": {
            "post": {
                "description": "Answers a question using only the electoral programs of the selected parties (all parties when the selection is empty). Budget and upstream problems are reported in the answer text with status 200.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Answers"],
                "summary": "Answer a question",
                "parameters": [
                    {
                        "description": "Question and party selection",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.GenerateAnswerRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.AnswerResult"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "500": {"description": "Failed to generate answer", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/v1/parties": {
            "get": {
                "description": "Returns the configured parties in display order",
                "produces": ["application/json"],
                "tags": ["Answers"],
                "summary": "List parties",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.PartiesResponse"}}
                }
            }
        },
        "/api/v1/admin/cache": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Drops every cached program document (admin only)",
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Purge document cache",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.StatusResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "403": {"description": "Forbidden - admin only", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/queries": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Lists the newest query log entries (admin only)",
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Recent queries",
                "parameters": [
                    {"type": "integer", "description": "Maximum entries (default 50, max 500)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.QueriesResponse"}},
                    "400": {"description": "Invalid limit", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "403": {"description": "Forbidden - admin only", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Returns the health status of the API",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.StatusResponse"}}
                }
            }
        },
        "/ready": {
            "get": {
                "description": "Pings the configured Redis and PostgreSQL backends",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.StatusResponse"}},
                    "503": {"description": "A backend is unreachable", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/version": {
            "get": {
                "description": "Returns the current API version",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Get API version",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.VersionResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.AnswerOutcome": {
            "type": "string",
            "enum": ["answered", "budget_exceeded", "no_context"]
        },
        "domain.AnswerResult": {
            "type": "object",
            "properties": {
                "answer": {"type": "string"},
                "estimatedTokens": {"type": "integer"},
                "outcome": {"$ref": "#/definitions/domain.AnswerOutcome"},
                "query": {"type": "string"},
                "sourceDocuments": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "domain.Party": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "logo": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "domain.QueryRecord": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "duration": {"type": "integer", "example": 1500000},
                "estimated_tokens": {"type": "integer"},
                "id": {"type": "string"},
                "model": {"type": "string"},
                "outcome": {"$ref": "#/definitions/domain.AnswerOutcome"},
                "party_ids": {"type": "array", "items": {"type": "string"}},
                "question": {"type": "string"}
            }
        },
        "http.ErrorResponse": {
            "description": "API error response",
            "type": "object",
            "properties": {
                "details": {"type": "string", "example": "unexpected EOF"},
                "error": {"type": "string", "example": "Question is required and cannot be empty."}
            }
        },
        "http.GenerateAnswerRequest": {
            "description": "Question over a party selection",
            "type": "object",
            "properties": {
                "question": {"type": "string", "example": "O que propõem para a habitação?"},
                "selectedPartyIds": {"type": "array", "items": {"type": "string"}, "example": ["PS", "AD"]}
            }
        },
        "http.PartiesResponse": {
            "description": "Configured parties in display order",
            "type": "object",
            "properties": {
                "parties": {"type": "array", "items": {"$ref": "#/definitions/domain.Party"}}
            }
        },
        "http.QueriesResponse": {
            "description": "Recent query log entries, newest first",
            "type": "object",
            "properties": {
                "queries": {"type": "array", "items": {"$ref": "#/definitions/domain.QueryRecord"}}
            }
        },
        "http.StatusResponse": {
            "description": "Simple status response",
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"}
            }
        },
        "http.VersionResponse": {
            "description": "API version response",
            "type": "object",
            "properties": {
                "version": {"type": "string", "example": "1.0.0"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT Bearer token. Format: \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Legislativas API",
	Description:      "Answers questions about Portuguese electoral programs using only the programs' own text.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
