// Package docs registers the swagger description of the shoeshop API.
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
                "description": "Check if the service and its stores are reachable",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/shoes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["shoes"],
                "summary": "List shoes",
                "parameters": [
                    {"type": "string", "description": "Brand", "name": "brand", "in": "query"},
                    {"type": "string", "description": "Category", "name": "category", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Page offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.listResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["shoes"],
                "summary": "Create shoe",
                "parameters": [
                    {"description": "Shoe", "name": "shoe", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.Shoe"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Shoe"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/api/shoes/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["shoes"],
                "summary": "Get shoe by id",
                "parameters": [{"type": "string", "description": "Shoe ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Shoe"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/api/orders": {
            "post": {
                "description": "Reserves stock for every line; prices come from the catalogue",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Place an order",
                "parameters": [
                    {"description": "Order", "name": "order", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/api/analytics/sales": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Sales per day or month",
                "parameters": [
                    {"type": "string", "description": "RFC3339 or YYYY-MM-DD, default 30 days ago", "name": "from", "in": "query"},
                    {"type": "string", "description": "RFC3339 or YYYY-MM-DD, default now", "name": "to", "in": "query"},
                    {"type": "string", "default": "day", "description": "day or month", "name": "bucket", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.SalesPoint"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Shoe": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "brand": {"type": "string"},
                "model": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "price": {"type": "number"},
                "variants": {"type": "array", "items": {"$ref": "#/definitions/domain.Variant"}},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.Variant": {
            "type": "object",
            "properties": {
                "color": {"type": "string"},
                "image_url": {"type": "string"},
                "sizes": {"type": "array", "items": {"$ref": "#/definitions/domain.SizeStock"}}
            }
        },
        "domain.SizeStock": {
            "type": "object",
            "properties": {
                "size": {"type": "number"},
                "stock": {"type": "integer"}
            }
        },
        "domain.SalesPoint": {
            "type": "object",
            "properties": {
                "period": {"type": "string"},
                "orders": {"type": "integer"},
                "revenue": {"type": "number"}
            }
        },
        "http.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "http.listResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "pagination": {"$ref": "#/definitions/http.pagination"}
            }
        },
        "http.pagination": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "total": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Shoeshop API",
	Description:      "Catalogue, orders, refunds, payroll, restocks and delivery of a shoe shop.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
