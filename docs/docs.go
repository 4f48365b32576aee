// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/server/docs.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Service health",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.HealthStatus"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/health/live": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Readiness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.HealthStatus"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "503": {
                        "description": "Database is not reachable",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/admin/companies": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Create company",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Request body",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.CreateCompanyRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.CreateCompanyResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "422": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            },
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "List companies",
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/models.Company"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/admin/locations": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Create location for a company",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Request body",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.AdminCreateLocationRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.Location"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "422": {
                        "description": "Unknown company",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/admin/sensors": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Create sensor for any location",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Request body",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.CreateSensorRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.CreateSensorResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "422": {
                        "description": "Unknown location",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/admin/audit": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Query audit events",
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "array",
                        "items": {
                            "type": "string"
                        },
                        "collectionFormat": "multi",
                        "description": "Event types",
                        "name": "type",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "success or failure",
                        "name": "outcome",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "admin, company, sensor, system",
                        "name": "actor_type",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Actor id",
                        "name": "actor_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Epoch seconds or RFC3339",
                        "name": "since",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Epoch seconds or RFC3339",
                        "name": "until",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 100,
                        "description": "Page size (1-1000)",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Offset",
                        "name": "offset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/audit.Event"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "503": {
                        "description": "Audit logging is not configured",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/admin/stats": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Request statistics",
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/middleware.EndpointStats"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/locations": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Locations"
                ],
                "summary": "Create location",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "CompanyKey": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Request body",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.LocationInput"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.Location"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "422": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            },
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Locations"
                ],
                "summary": "List locations",
                "security": [
                    {
                        "CompanyKey": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/models.Location"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/locations/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Locations"
                ],
                "summary": "Get location",
                "security": [
                    {
                        "CompanyKey": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Resource id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.Location"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            },
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Locations"
                ],
                "summary": "Update location",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "CompanyKey": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Resource id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.LocationInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.Location"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Locations"
                ],
                "summary": "Delete location",
                "security": [
                    {
                        "CompanyKey": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Resource id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.MessageResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "409": {
                        "description": "Location still has sensors",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/sensors": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sensors"
                ],
                "summary": "Create sensor",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "CompanyKey": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Request body",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.CreateSensorRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.CreateSensorResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "422": {
                        "description": "Unknown or foreign location",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            },
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sensors"
                ],
                "summary": "List sensors",
                "security": [
                    {
                        "CompanyKey": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Only sensors of this location",
                        "name": "location_id",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/models.Sensor"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/sensors/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sensors"
                ],
                "summary": "Get sensor",
                "security": [
                    {
                        "CompanyKey": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Resource id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.Sensor"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            },
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sensors"
                ],
                "summary": "Update sensor",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "CompanyKey": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Resource id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.SensorInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.Sensor"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sensors"
                ],
                "summary": "Delete sensor",
                "security": [
                    {
                        "CompanyKey": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Resource id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.MessageResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "409": {
                        "description": "Sensor has readings",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/sensors/{id}/rotate-key": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sensors"
                ],
                "summary": "Rotate sensor key",
                "security": [
                    {
                        "CompanyKey": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Resource id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.RotateSensorKeyResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/sensor_data": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sensor Data"
                ],
                "summary": "Ingest readings",
                "description": "With the X-Sensor-API-Key header every record belongs to that sensor. Without it each record names its sensor in sensor_api_key. The body is one record or an array.",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "SensorKey": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Readings",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.IngestRecord"
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.IngestResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Malformed JSON",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "401": {
                        "description": "Unknown sensor key",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "422": {
                        "description": "Invalid readings",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            },
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sensor Data"
                ],
                "summary": "Query readings",
                "security": [
                    {
                        "CompanyKey": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Sensor ids: repeated, comma separated or a JSON array",
                        "name": "sensor_ids",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Epoch seconds or RFC3339 (alias from_timestamp)",
                        "name": "from_time",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Epoch seconds or RFC3339 (alias to_timestamp)",
                        "name": "to_time",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.SensorDataResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "A sensor is unknown or not owned by the caller",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "422": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "data": {},
                "error": {
                    "$ref": "#/definitions/api.APIError"
                },
                "meta": {
                    "$ref": "#/definitions/api.APIMeta"
                }
            }
        },
        "api.APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "details": {},
                "request_id": {
                    "type": "string"
                }
            }
        },
        "api.APIMeta": {
            "type": "object",
            "properties": {
                "request_id": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string",
                    "format": "date-time"
                },
                "duration_ms": {
                    "type": "integer"
                },
                "pagination": {
                    "$ref": "#/definitions/api.PaginationMeta"
                }
            }
        },
        "api.PaginationMeta": {
            "type": "object",
            "properties": {
                "total": {
                    "type": "integer"
                },
                "count": {
                    "type": "integer"
                },
                "offset": {
                    "type": "integer"
                },
                "limit": {
                    "type": "integer"
                },
                "has_more": {
                    "type": "boolean"
                }
            }
        },
        "api.HealthStatus": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                },
                "database_connected": {
                    "type": "boolean"
                },
                "uptime_seconds": {
                    "type": "number"
                }
            }
        },
        "audit.Actor": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "audit.Target": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "audit.Source": {
            "type": "object",
            "properties": {
                "ip_address": {
                    "type": "string"
                },
                "user_agent": {
                    "type": "string"
                }
            }
        },
        "audit.Event": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string",
                    "format": "date-time"
                },
                "type": {
                    "type": "string"
                },
                "severity": {
                    "type": "string"
                },
                "outcome": {
                    "type": "string"
                },
                "actor": {
                    "$ref": "#/definitions/audit.Actor"
                },
                "target": {
                    "$ref": "#/definitions/audit.Target"
                },
                "source": {
                    "$ref": "#/definitions/audit.Source"
                },
                "action": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "metadata": {},
                "request_id": {
                    "type": "string"
                }
            }
        },
        "middleware.EndpointStats": {
            "type": "object",
            "properties": {
                "endpoint": {
                    "type": "string"
                },
                "request_count": {
                    "type": "integer"
                },
                "error_count": {
                    "type": "integer"
                },
                "avg_ms": {
                    "type": "number"
                },
                "p50_ms": {
                    "type": "integer"
                },
                "p95_ms": {
                    "type": "integer"
                },
                "p99_ms": {
                    "type": "integer"
                },
                "max_ms": {
                    "type": "integer"
                }
            }
        },
        "models.Company": {
            "type": "object",
            "properties": {
                "company_id": {
                    "type": "integer"
                },
                "company_name": {
                    "type": "string"
                },
                "api_key_prefix": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "models.CreateCompanyRequest": {
            "type": "object",
            "required": [
                "company_name"
            ],
            "properties": {
                "company_name": {
                    "type": "string",
                    "maxLength": 200
                }
            }
        },
        "models.CreateCompanyResponse": {
            "type": "object",
            "properties": {
                "company_id": {
                    "type": "integer"
                },
                "company_name": {
                    "type": "string"
                },
                "api_key_prefix": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "company_api_key": {
                    "type": "string"
                }
            }
        },
        "models.Location": {
            "type": "object",
            "properties": {
                "location_id": {
                    "type": "integer"
                },
                "company_id": {
                    "type": "integer"
                },
                "location_name": {
                    "type": "string"
                },
                "location_country": {
                    "type": "string"
                },
                "location_city": {
                    "type": "string"
                },
                "location_meta": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "models.LocationInput": {
            "type": "object",
            "required": [
                "location_name"
            ],
            "properties": {
                "location_name": {
                    "type": "string",
                    "maxLength": 200
                },
                "location_country": {
                    "type": "string",
                    "maxLength": 100
                },
                "location_city": {
                    "type": "string",
                    "maxLength": 100
                },
                "location_meta": {
                    "type": "string",
                    "maxLength": 4096
                }
            }
        },
        "models.AdminCreateLocationRequest": {
            "type": "object",
            "required": [
                "company_id",
                "location_name"
            ],
            "properties": {
                "company_id": {
                    "type": "integer"
                },
                "location_name": {
                    "type": "string",
                    "maxLength": 200
                },
                "location_country": {
                    "type": "string",
                    "maxLength": 100
                },
                "location_city": {
                    "type": "string",
                    "maxLength": 100
                },
                "location_meta": {
                    "type": "string",
                    "maxLength": 4096
                }
            }
        },
        "models.Sensor": {
            "type": "object",
            "properties": {
                "sensor_id": {
                    "type": "integer"
                },
                "location_id": {
                    "type": "integer"
                },
                "company_id": {
                    "type": "integer"
                },
                "sensor_name": {
                    "type": "string"
                },
                "sensor_category": {
                    "type": "string"
                },
                "sensor_meta": {
                    "type": "string"
                },
                "api_key_prefix": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "models.SensorInput": {
            "type": "object",
            "required": [
                "sensor_name"
            ],
            "properties": {
                "sensor_name": {
                    "type": "string",
                    "maxLength": 200
                },
                "sensor_category": {
                    "type": "string",
                    "maxLength": 100
                },
                "sensor_meta": {
                    "type": "string",
                    "maxLength": 4096
                }
            }
        },
        "models.CreateSensorRequest": {
            "type": "object",
            "required": [
                "location_id",
                "sensor_name"
            ],
            "properties": {
                "location_id": {
                    "type": "integer"
                },
                "sensor_name": {
                    "type": "string",
                    "maxLength": 200
                },
                "sensor_category": {
                    "type": "string",
                    "maxLength": 100
                },
                "sensor_meta": {
                    "type": "string",
                    "maxLength": 4096
                }
            }
        },
        "models.CreateSensorResponse": {
            "type": "object",
            "properties": {
                "sensor_id": {
                    "type": "integer"
                },
                "location_id": {
                    "type": "integer"
                },
                "company_id": {
                    "type": "integer"
                },
                "sensor_name": {
                    "type": "string"
                },
                "sensor_category": {
                    "type": "string"
                },
                "sensor_meta": {
                    "type": "string"
                },
                "api_key_prefix": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "sensor_api_key": {
                    "type": "string"
                }
            }
        },
        "models.RotateSensorKeyResponse": {
            "type": "object",
            "properties": {
                "sensor_id": {
                    "type": "integer"
                },
                "sensor_api_key": {
                    "type": "string"
                },
                "api_key_prefix": {
                    "type": "string"
                }
            }
        },
        "models.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                }
            }
        },
        "models.IngestRecord": {
            "type": "object",
            "required": [
                "json_data"
            ],
            "properties": {
                "sensor_api_key": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string",
                    "description": "Epoch seconds or RFC3339"
                },
                "json_data": {
                    "type": "object"
                }
            }
        },
        "models.IngestResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "accepted": {
                    "type": "integer"
                }
            }
        },
        "models.Reading": {
            "type": "object",
            "properties": {
                "reading_id": {
                    "type": "integer"
                },
                "sensor_id": {
                    "type": "integer"
                },
                "timestamp": {
                    "type": "string",
                    "format": "date-time"
                },
                "data": {}
            }
        },
        "models.SensorDataResponse": {
            "type": "object",
            "properties": {
                "sensor_data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Reading"
                    }
                },
                "count": {
                    "type": "integer"
                },
                "truncated": {
                    "type": "boolean"
                }
            }
        }
    },
    "securityDefinitions": {
        "BasicAuth": {
            "type": "basic"
        },
        "CompanyKey": {
            "type": "apiKey",
            "name": "X-Company-API-Key",
            "in": "header"
        },
        "SensorKey": {
            "type": "apiKey",
            "name": "X-Sensor-API-Key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Sensorgrid API",
	Description:      "Multi-tenant IoT telemetry ingestion and query API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
