// Package docs holds swagger spec of the customer registry API
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
        "/api/auth/login": {
            "post": {
                "description": "Verifies provided credentials and signs access token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [
                    {"description": "User credentials", "name": "login", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.credentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.accessToken"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/validation.PayloadError"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.BusinessErr"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/echo.HTTPError"}}
                }
            }
        },
        "/api/auth/signup": {
            "post": {
                "description": "Register new API operator account based on provided credentials",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Signup new account",
                "parameters": [
                    {"description": "New user credentials", "name": "signup", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.credentials"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.newUser"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/validation.PayloadError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.BusinessErr"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/echo.HTTPError"}}
                }
            }
        },
        "/api/v1/customers": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Returns all active customers ordered by id",
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "Get all customers",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Customer"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/echo.HTTPError"}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Creates new customer, id and demonym are assigned by the service",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "New Customer",
                "parameters": [
                    {"description": "Data for new customer", "name": "newCustomer", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.newCustomer"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Customer"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/validation.PayloadError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.BusinessErr"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errors.BusinessErr"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/echo.HTTPError"}}
                }
            }
        },
        "/api/v1/customers/country/{code}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Returns active customers of the country, list is empty if there are none",
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "Get customers by country",
                "parameters": [
                    {"type": "integer", "description": "ISO 3166-1 numeric country code", "name": "code", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Customer"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/echo.HTTPError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/echo.HTTPError"}}
                }
            }
        },
        "/api/v1/customers/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Returns single active customer with provided id",
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "Get single customer by id",
                "parameters": [
                    {"type": "integer", "description": "Customer id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Customer"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/echo.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.BusinessErr"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/echo.HTTPError"}}
                }
            },
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Updates contacts and country of existing customer, omitted contacts stay untouched",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "Update Customer",
                "parameters": [
                    {"type": "integer", "description": "Customer id", "name": "id", "in": "path", "required": true},
                    {"description": "Customer changes", "name": "customerChanges", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.customerChanges"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Customer"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/validation.PayloadError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.BusinessErr"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.BusinessErr"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errors.BusinessErr"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/echo.HTTPError"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Disables or removes customer depending on configured delete mode",
                "tags": ["customers"],
                "summary": "Delete customer by id",
                "parameters": [
                    {"type": "integer", "description": "Customer id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Successful status code"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/echo.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.BusinessErr"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/echo.HTTPError"}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["ops"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "Service is up"}
                }
            }
        }
    },
    "definitions": {
        "echo.HTTPError": {
            "type": "object",
            "properties": {
                "message": {}
            }
        },
        "errors.BusinessErr": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "target": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "validation.PayloadError": {
            "type": "object",
            "properties": {
                "errors": {"type": "array", "items": {"$ref": "#/definitions/validation.Violation"}}
            }
        },
        "validation.Violation": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handlers.credentials": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "maxLength": 320},
                "password": {"type": "string", "maxLength": 24, "minLength": 4}
            }
        },
        "handlers.newUser": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "handlers.accessToken": {
            "type": "object",
            "properties": {
                "accessToken": {"type": "string"},
                "expiresAt": {"type": "integer"}
            }
        },
        "handlers.newCustomer": {
            "type": "object",
            "required": ["firstName", "lastName", "email", "address", "phone", "country"],
            "properties": {
                "firstName": {"type": "string", "maxLength": 50},
                "middleName": {"type": "string", "maxLength": 50},
                "lastName": {"type": "string", "maxLength": 50},
                "secondLastName": {"type": "string", "maxLength": 50},
                "email": {"type": "string", "maxLength": 100},
                "address": {"type": "string", "maxLength": 200},
                "phone": {"type": "string", "maxLength": 15, "minLength": 10},
                "country": {"type": "integer"}
            }
        },
        "handlers.customerChanges": {
            "type": "object",
            "required": ["country"],
            "properties": {
                "email": {"type": "string", "maxLength": 100},
                "address": {"type": "string", "maxLength": 200},
                "phone": {"type": "string", "maxLength": 15, "minLength": 10},
                "country": {"type": "integer"}
            }
        },
        "model.Customer": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "firstName": {"type": "string"},
                "middleName": {"type": "string"},
                "lastName": {"type": "string"},
                "secondLastName": {"type": "string"},
                "email": {"type": "string"},
                "address": {"type": "string"},
                "phone": {"type": "string"},
                "country": {"type": "integer"},
                "demonym": {"type": "string"},
                "disabled": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Customer Registry API",
	Description:      "Customer records enriched with country demonyms. v1 routes are served by postgres store, v2 routes by mongo store.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
