// Package docs registers the OpenAPI description served at /swagger.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Organiser login",
                "parameters": [
                    {"description": "Admin password", "name": "input", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handlers.loginInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}}
                }
            }
        },
        "/brackets/preview": {
            "post": {
                "description": "Generates a bracket, schedule, group stage or court allocation without saving it.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["brackets"],
                "summary": "Preview a draw",
                "parameters": [
                    {"description": "Draw settings", "name": "input", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/services.GenerateInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.tournamentEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}}
                }
            }
        },
        "/tournaments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Search tournaments",
                "parameters": [
                    {"type": "string", "description": "Fuzzy name query", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Replaces any tournament stored under the same name and notifies websocket watchers.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Generate and save a tournament",
                "parameters": [
                    {"description": "Draw settings", "name": "input", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/services.GenerateInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.tournamentEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}}
                }
            }
        },
        "/tournaments/{name}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Get a stored tournament",
                "parameters": [
                    {"type": "string", "description": "Tournament name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.tournamentEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["tournaments"],
                "summary": "Delete a tournament",
                "parameters": [
                    {"type": "string", "description": "Tournament name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}}
                }
            }
        },
        "/tournaments/{name}/text": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["tournaments"],
                "summary": "Plain-text schedule",
                "parameters": [
                    {"type": "string", "description": "Tournament name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}}
                }
            }
        },
        "/tournaments/{name}/publish": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Publish the schedule to object storage",
                "parameters": [
                    {"type": "string", "description": "Tournament name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/storage.UploadResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}}
                }
            }
        },
        "/imports/registrations": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Reads the Name column of the first table on every page.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["imports"],
                "summary": "Import participants from registration pages",
                "parameters": [
                    {"description": "Registration page URLs", "name": "input", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handlers.importInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}}
                }
            }
        },
        "/ws/tournaments/{name}": {
            "get": {
                "description": "Upgrades to a websocket that receives BRACKET_UPDATED and TOURNAMENT_DELETED messages.",
                "tags": ["realtime"],
                "summary": "Watch a tournament",
                "parameters": [
                    {"type": "string", "description": "Tournament name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "101": {"description": "Switching Protocols"}
                }
            }
        }
    },
    "definitions": {
        "handlers.errorEnvelope": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handlers.loginInput": {
            "type": "object",
            "properties": {"password": {"type": "string"}}
        },
        "handlers.importInput": {
            "type": "object",
            "properties": {"urls": {"type": "array", "items": {"type": "string"}}}
        },
        "handlers.tournamentEnvelope": {
            "type": "object",
            "properties": {"tournament": {"$ref": "#/definitions/models.Tournament"}}
        },
        "services.GenerateInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "format": {"type": "string", "enum": ["single_elimination", "round_robin", "groups", "courts"]},
                "participants": {"type": "array", "items": {"type": "string"}},
                "participants_text": {"type": "string"},
                "team_count": {"type": "integer"},
                "courts": {"type": "integer"},
                "rules": {"type": "string"},
                "date": {"type": "string"},
                "seed": {"type": "integer"},
                "shuffle_round_robin": {"type": "boolean"}
            }
        },
        "brackets.Match": {
            "type": "array",
            "items": {"type": "string"}
        },
        "brackets.Round": {
            "type": "array",
            "items": {"$ref": "#/definitions/brackets.Match"}
        },
        "brackets.GroupStage": {
            "type": "object",
            "properties": {
                "groups": {"type": "array", "items": {"type": "array", "items": {"type": "string"}}},
                "schedules": {"type": "array", "items": {"type": "array", "items": {"$ref": "#/definitions/brackets.Round"}}}
            }
        },
        "brackets.Court": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "teams": {"type": "array", "items": {"type": "string"}}
            }
        },
        "brackets.CourtAllocation": {
            "type": "object",
            "properties": {
                "courts": {"type": "array", "items": {"$ref": "#/definitions/brackets.Court"}},
                "unassigned": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.Tournament": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "format": {"type": "string"},
                "participants": {"type": "array", "items": {"type": "string"}},
                "seed": {"type": "integer"},
                "round_robin_shuffled": {"type": "boolean"},
                "rules": {"type": "string"},
                "date": {"type": "string"},
                "bracket": {"type": "array", "items": {"$ref": "#/definitions/brackets.Match"}},
                "schedule": {"type": "array", "items": {"$ref": "#/definitions/brackets.Round"}},
                "groups": {"$ref": "#/definitions/brackets.GroupStage"},
                "courts": {"$ref": "#/definitions/brackets.CourtAllocation"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "storage.UploadResult": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "location": {"type": "string"},
                "etag": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	Schemes:          []string{},
	Title:            "tourney API",
	Description:      "Bracket, round-robin, group-stage and court draws for small tournaments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
