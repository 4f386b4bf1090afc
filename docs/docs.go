// Package docs registers the OpenAPI document served at /swagger/doc.json.
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
        "/v1/analyze": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analysis"],
                "summary": "Score a text on a scale",
                "parameters": [
                    {
                        "description": "Text, scale and topic",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.AnalyzeRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AnalyzeResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "502": {"description": "Remote failure", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "503": {"description": "Rate limited", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/v1/scales": {
            "get": {
                "produces": ["application/json"],
                "tags": ["scales"],
                "summary": "List scoring scales",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/scales/{name}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["scales"],
                "summary": "Get one scale with its levels and bands",
                "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Unknown scale", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/v1/topics": {
            "get": {
                "produces": ["application/json"],
                "tags": ["scales"],
                "summary": "List topics for the topic picker",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Admin login",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.LoginResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/v1/analyses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "List stored analyses, newest first",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"type": "string", "name": "scale", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/v1/analyses/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Get a stored analysis",
                "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Analysis"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "model.AnalyzeRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "topic": {"type": "string"},
                "customTopic": {"type": "string"},
                "scale": {"type": "string", "enum": ["toxicity", "dignity"]},
                "sessionId": {"type": "string"}
            }
        },
        "model.ScoreResult": {
            "type": "object",
            "properties": {
                "score": {"type": "integer"},
                "explanation": {"type": "string"},
                "category": {"type": "string"},
                "improvementTips": {"type": "array", "items": {"type": "string"}}
            }
        },
        "model.Analysis": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "scale": {"type": "string"},
                "topic": {"type": "string"},
                "text": {"type": "string"},
                "result": {"$ref": "#/definitions/model.ScoreResult"},
                "degraded": {"type": "boolean"},
                "reason": {"type": "string"},
                "cached": {"type": "boolean"},
                "createdAt": {"type": "string"}
            }
        },
        "model.Display": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "label": {"type": "string"},
                "badge": {"type": "string"},
                "scoreColor": {"type": "string"},
                "levelColor": {"type": "string"},
                "description": {"type": "string"},
                "percent": {"type": "integer"},
                "max": {"type": "integer"},
                "lowLabel": {"type": "string"},
                "highLabel": {"type": "string"}
            }
        },
        "model.AnalyzeResponse": {
            "type": "object",
            "properties": {
                "analysis": {"$ref": "#/definitions/model.Analysis"},
                "display": {"$ref": "#/definitions/model.Display"}
            }
        },
        "model.LoginRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "model.LoginResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "adminId": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Peacemaker API",
	Description:      "Scores text for toxicity or dignity using a generative model.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
