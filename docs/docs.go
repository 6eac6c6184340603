// Package docs registers the OpenAPI description of the session gateway
// with swag so echo-swagger can serve it under /swagger/.
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
        "/v1/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Current session",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}}
            }
        },
        "/v1/session/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Login",
                "parameters": [{
                    "description": "Email or username and password",
                    "name": "body",
                    "in": "body",
                    "required": true,
                    "schema": {"$ref": "#/definitions/handler.loginRequest"}
                }],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "504": {"description": "Gateway Timeout", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/v1/session/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Register",
                "parameters": [{
                    "description": "Account details",
                    "name": "body",
                    "in": "body",
                    "required": true,
                    "schema": {"$ref": "#/definitions/domain.RegistrationRequest"}
                }],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/v1/session/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Logout",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}}
            }
        },
        "/v1/session/refresh": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Refresh tokens",
                "parameters": [{"type": "boolean", "name": "force", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/v1/appointments": {
            "get": {"tags": ["appointments"], "summary": "List all appointments", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["appointments"], "summary": "Book an appointment", "responses": {"201": {"description": "Created"}}}
        },
        "/v1/appointments/patient/{id}": {
            "get": {"tags": ["appointments"], "summary": "Appointments of a patient", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/appointments/doctor/{id}": {
            "get": {"tags": ["appointments"], "summary": "Appointments of a doctor", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/appointments/{id}/status": {
            "patch": {"tags": ["appointments"], "summary": "Update appointment status", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/appointments/{id}/cancel": {
            "patch": {"tags": ["appointments"], "summary": "Cancel an appointment", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/appointments/slots": {
            "get": {"tags": ["appointments"], "summary": "Free slots", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/appointments/stats": {
            "get": {"tags": ["appointments"], "summary": "Appointment counts", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/doctors": {
            "get": {"tags": ["doctors"], "summary": "List doctors", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/doctors/{id}": {
            "get": {"tags": ["doctors"], "summary": "Get doctor", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/patients": {
            "get": {"tags": ["patients"], "summary": "List patients", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["patients"], "summary": "Create patient", "responses": {"201": {"description": "Created"}}}
        },
        "/v1/patients/{id}": {
            "get": {"tags": ["patients"], "summary": "Get patient", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["patients"], "summary": "Update patient", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/admin/stats/global": {"get": {"tags": ["admin"], "summary": "Global statistics", "responses": {"200": {"description": "OK"}}}},
        "/v1/admin/stats/period": {"get": {"tags": ["admin"], "summary": "Statistics over a period", "responses": {"200": {"description": "OK"}}}},
        "/v1/admin/stats/doctors": {"get": {"tags": ["admin"], "summary": "Per-doctor statistics", "responses": {"200": {"description": "OK"}}}},
        "/v1/admin/stats/dashboard": {"get": {"tags": ["admin"], "summary": "Dashboard", "responses": {"200": {"description": "OK"}}}},
        "/v1/admin/stats/recent": {"get": {"tags": ["admin"], "summary": "Recent activity", "responses": {"200": {"description": "OK"}}}},
        "/v1/admin/stats/ratios": {"get": {"tags": ["admin"], "summary": "Cancellation, completion and confirmation rates", "responses": {"200": {"description": "OK"}}}}
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {"identifier": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "isAuthenticated": {"type": "boolean"},
                "isLoading": {"type": "boolean"},
                "error": {"type": "string"},
                "redirectPath": {"type": "string"},
                "user": {"type": "object"}
            }
        },
        "domain.RegistrationRequest": {
            "type": "object",
            "required": ["username", "email", "password", "firstName", "lastName", "role"],
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "role": {"type": "string", "enum": ["PATIENT", "DOCTOR"]},
                "specialty": {"type": "string"},
                "licenseNumber": {"type": "string"}
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
	Title:            "RDV360 Session Gateway",
	Description:      "Local gateway owning the RDV360 session and proxying appointment, doctor, patient and admin endpoints.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
