// Package docs registers the OpenAPI document served at /swagger/doc.json.
//
// Regenerate with: swag init -g cmd/dri-core/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Returns dependency health and whether a completion provider is configured",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.HealthResponse"}},
                    "503": {"description": "Database unreachable", "schema": {"$ref": "#/definitions/http.HealthResponse"}}
                }
            }
        },
        "/indicators": {
            "get": {
                "description": "Returns the loaded indicator catalogue in catalogue order",
                "produces": ["application/json"],
                "tags": ["Indicators"],
                "summary": "List indicators",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.IndicatorDefinition"}}}
                }
            }
        },
        "/companies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Companies"],
                "summary": "List companies",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Company"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Stores a company. Per-category and overall scores are computed server side; client supplied aggregates are ignored.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Companies"],
                "summary": "Create company",
                "parameters": [
                    {"description": "Company", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.CompanyInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Company"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "403": {"description": "Admin access required", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/companies/{id}/scores": {
            "get": {
                "description": "Aggregates the stored raw scores against the current catalogue",
                "produces": ["application/json"],
                "tags": ["Scores"],
                "summary": "Company scores",
                "parameters": [
                    {"type": "integer", "description": "Company ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ScoreResult"}},
                    "404": {"description": "Company not found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/scores/preview": {
            "post": {
                "description": "Aggregates arbitrary raw scores without storing anything",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Scores"],
                "summary": "Preview scores",
                "parameters": [
                    {"description": "Raw scores", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.PreviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ScoreResult"}}
                }
            }
        },
        "/leaderboard": {
            "get": {
                "description": "Companies ranked by overall score, ties broken by name",
                "produces": ["application/json"],
                "tags": ["Scores"],
                "summary": "Leaderboard",
                "parameters": [
                    {"type": "integer", "description": "Maximum entries; 0 or absent returns all", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.LeaderboardEntry"}}}
                }
            }
        },
        "/llm/chat": {
            "post": {
                "description": "Answers one chat turn with topic-relevant context. Provider failures return a canned reply, never an error.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Assistant"],
                "summary": "Assistant chat turn",
                "parameters": [
                    {"description": "Conversation and page context", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.ChatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ChatResponse"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/llm-explain": {
            "post": {
                "description": "Describes an indicator, its rationale and how it is scored",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Assistant"],
                "summary": "Explain indicator",
                "parameters": [
                    {"description": "Indicator name", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.ExplainRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ExplainResponse"}},
                    "400": {"description": "Criterion name not provided", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/feedback": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Newest feedback first. Requires an admin or reviewer token.",
                "produces": ["application/json"],
                "tags": ["Feedback"],
                "summary": "List feedback",
                "parameters": [
                    {"type": "integer", "description": "Maximum entries (default 100, max 1000)", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Filter by route", "name": "route", "in": "query"},
                    {"type": "string", "description": "Filter by indicator", "name": "indicator_name", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.FeedbackListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Stores a message from the feedback widget. session_id, route and message are required.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Feedback"],
                "summary": "Submit feedback",
                "parameters": [
                    {"description": "Feedback", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.FeedbackInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.FeedbackSavedResponse"}},
                    "400": {"description": "Missing required fields", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/badge/{id}": {
            "get": {
                "description": "Renders a 120x30 SVG badge showing the company's overall score",
                "produces": ["image/svg+xml"],
                "tags": ["Companies"],
                "summary": "Score badge",
                "parameters": [
                    {"type": "integer", "description": "Company ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "SVG image", "schema": {"type": "string"}},
                    "404": {"description": "Company not found", "schema": {"type": "string"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Authenticate with email and password to receive a JWT token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Staff login",
                "parameters": [
                    {"description": "Login credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.LoginResponse"}},
                    "401": {"description": "Invalid credentials or account disabled", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "invalid request body"}}
        },
        "http.HealthResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "version": {"type": "string"},
                "openai_configured": {"type": "boolean"},
                "components": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "http.PreviewRequest": {
            "type": "object",
            "properties": {"scores": {"type": "object", "additionalProperties": {"type": "number"}}}
        },
        "http.ExplainRequest": {
            "type": "object",
            "properties": {"criterion_name": {"type": "string"}}
        },
        "http.ExplainResponse": {
            "type": "object",
            "properties": {"explanation": {"type": "string"}}
        },
        "http.FeedbackSavedResponse": {
            "type": "object",
            "properties": {"saved": {"type": "boolean"}, "id": {"type": "string"}}
        },
        "http.FeedbackListResponse": {
            "type": "object",
            "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/domain.Feedback"}}}
        },
        "domain.IndicatorDefinition": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "category": {"type": "string"},
                "category_label": {"type": "string"},
                "scoring_logic": {"type": "string", "example": "0=No; 1=Basic; 2=Full"},
                "rationale": {"type": "string"},
                "question": {"type": "string"},
                "legend": {"type": "string"}
            }
        },
        "domain.Company": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "website": {"type": "string"},
                "scores": {"type": "object", "additionalProperties": {"type": "number"}},
                "evaluations": {"type": "array", "items": {"type": "object"}},
                "drgScores": {"type": "object", "additionalProperties": {"type": "number"}},
                "overallScore": {"type": "number"},
                "lastUpdated": {"type": "string"}
            }
        },
        "domain.CompanyInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "website": {"type": "string"},
                "scores": {"type": "object", "additionalProperties": {"type": "number"}},
                "evaluations": {"type": "array", "items": {"type": "object"}}
            }
        },
        "domain.ScoreResult": {
            "type": "object",
            "properties": {
                "per_category": {"type": "object", "additionalProperties": {"type": "number"}},
                "overall": {"type": "number"}
            }
        },
        "domain.LeaderboardEntry": {
            "type": "object",
            "properties": {
                "company_id": {"type": "integer"},
                "name": {"type": "string"},
                "overall": {"type": "number"},
                "rank": {"type": "integer"}
            }
        },
        "domain.ChatRequest": {
            "type": "object",
            "properties": {
                "messages": {"type": "array", "items": {"type": "object", "properties": {"role": {"type": "string"}, "content": {"type": "string"}}}},
                "context": {"type": "object"},
                "max_tokens": {"type": "integer"},
                "temperature": {"type": "number"},
                "model": {"type": "string"},
                "system_prompt": {"type": "string"}
            }
        },
        "domain.ChatResponse": {
            "type": "object",
            "properties": {"reply": {"type": "string"}, "detected_drg": {"type": "string"}}
        },
        "domain.FeedbackInput": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "route": {"type": "string"},
                "indicator_name": {"type": "string"},
                "drg_short_code": {"type": "string"},
                "feedback_type": {"type": "string"},
                "message": {"type": "string"},
                "assistant_message": {"type": "string"},
                "consent": {"type": "boolean"},
                "device": {"type": "string"},
                "viewport_w": {"type": "integer"}
            }
        },
        "domain.Feedback": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "session_id": {"type": "string"},
                "route": {"type": "string"},
                "message": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "domain.LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "domain.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "refresh_token": {"type": "string"},
                "expires_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT token.",
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
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Digital Responsibility Index API",
	Description:      "Scores organisations against the DRI indicator catalogue and answers questions about the evaluation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
