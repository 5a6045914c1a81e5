// Package docs registers the OpenAPI description of the JSON endpoints.
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
        "/machine/{id}/toggle": {
            "post": {
                "produces": ["application/json"],
                "tags": ["machines"],
                "summary": "Toggle machine selection",
                "parameters": [
                    {"type": "string", "description": "Machine ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.toggleResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.successResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.successResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.successResponse"}}
                }
            }
        },
        "/totals": {
            "get": {
                "produces": ["application/json"],
                "tags": ["machines"],
                "summary": "Current totals",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "number"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.successResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.successResponse"}}
                }
            }
        },
        "/save-report": {
            "post": {
                "description": "Aggregates the selected machines into today's record (replacing an earlier one) and resets the fleet.",
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Save today's report",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.saveReportResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.successResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.successResponse"}}
                }
            }
        },
        "/record/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Delete a record",
                "parameters": [
                    {"type": "string", "description": "Record ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.successResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.successResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.successResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.successResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Record": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "date": {"type": "string", "example": "2024-01-05"},
                "totals": {"type": "object", "additionalProperties": {"type": "number"}},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.saveReportResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "record": {"$ref": "#/definitions/domain.Record"}
            }
        },
        "handler.successResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "handler.toggleResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "isSelected": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Coffee Machine Inventory Admin",
	Description:      "JSON endpoints of the vending fleet ingredient inventory admin.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
