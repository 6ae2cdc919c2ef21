// Package docs registers the OpenAPI document served under /swagger.
// Regenerate the paths from the handler annotations with
// `swag init -g cmd/server/main.go` when routes change.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {"get": {"tags": ["system"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}},
        "/ready": {"get": {"tags": ["system"], "summary": "Readiness probe, pings the database", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}},
        "/batches/": {
            "get": {"tags": ["batches"], "summary": "List product batches, newest first", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["batches"], "summary": "Create a product batch", "description": "Every field is required. batch_produced is capped at 1000000 sets. Responds 201 with the batch inside the standard response envelope, not a bare 200 body like earlier clients of this endpoint saw.", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Duplicate request"}}}
        },
        "/batches/{id}": {
            "get": {"tags": ["batches"], "summary": "Get a product batch", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["batches"], "summary": "Delete a product batch and its scenarios", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/batches/{id}/scenario": {"post": {"tags": ["batches"], "summary": "Estimate and store a scenario", "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}}}},
        "/batches/{id}/scenarios": {"get": {"tags": ["batches"], "summary": "List a batch's scenarios, newest first", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/batches/{id}/series": {"post": {"tags": ["batches"], "summary": "Estimate at a fractional sell-through rate", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/batches/{id}/forecast_curve": {"post": {"tags": ["batches"], "summary": "Sweep batch sizes and return the profit curve", "responses": {"200": {"description": "OK"}}}},
        "/inventory/items": {
            "get": {"tags": ["inventory"], "summary": "List items", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["inventory"], "summary": "Create a stocked item", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/inventory/items/low-stock": {"get": {"tags": ["inventory"], "summary": "List items at or below their threshold", "responses": {"200": {"description": "OK"}}}},
        "/inventory/items/{id}": {
            "get": {"tags": ["inventory"], "summary": "Get an item", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["inventory"], "summary": "Update an item", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["inventory"], "summary": "Delete an item", "responses": {"204": {"description": "No Content"}}}
        },
        "/inventory/items/{id}/adjust": {"post": {"tags": ["inventory"], "summary": "Apply a signed stock change", "responses": {"200": {"description": "OK"}, "422": {"description": "Insufficient stock"}}}},
        "/inventory/items/{id}/transactions": {"get": {"tags": ["inventory"], "summary": "List stock movements, newest first", "responses": {"200": {"description": "OK"}}}},
        "/inventory/bundles": {
            "get": {"tags": ["bundles"], "summary": "List bundles with components", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["bundles"], "summary": "Create a bundle", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/inventory/bundles/{id}": {
            "get": {"tags": ["bundles"], "summary": "Get a bundle", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["bundles"], "summary": "Delete a bundle", "responses": {"204": {"description": "No Content"}}}
        },
        "/inventory/bundles/{id}/availability": {"get": {"tags": ["bundles"], "summary": "Sellable count of one bundle", "responses": {"200": {"description": "OK"}}}},
        "/inventory/availability": {"get": {"tags": ["bundles"], "summary": "Sellable count of every bundle", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds the document metadata; the server may override Host.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Preorder Forecast API",
	Description:      "Batch profitability forecasts and bundle availability over component stock.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
