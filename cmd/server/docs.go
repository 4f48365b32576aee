// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

// @title Sensorgrid API
// @version 1.0
// @description Multi-tenant telemetry ingestion and query API.
// @description
// @description Companies own locations, locations own sensors, sensors own readings.
// @description Every credential sees only its own subtree; resources of other
// @description tenants are reported as NOT_FOUND.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {"code": "NOT_FOUND", "message": "Resource not found"},
// @description   "meta": {"request_id": "...", "timestamp": "2026-01-01T00:00:00Z"}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/sensorgrid/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.basic BasicAuth
// @description Admin username and password.
//
// @securityDefinitions.apikey CompanyKey
// @in header
// @name X-Company-API-Key
// @description Company API key returned once by POST /admin/companies.
//
// @securityDefinitions.apikey SensorKey
// @in header
// @name X-Sensor-API-Key
// @description Sensor API key returned once by POST /sensors.
//
// @tag.name Health
// @tag.description Liveness and readiness probes
//
// @tag.name Admin
// @tag.description Tenant provisioning, audit trail and request statistics
//
// @tag.name Locations
// @tag.description Sites owned by the calling company
//
// @tag.name Sensors
// @tag.description Devices under the calling company's locations
//
// @tag.name SensorData
// @tag.description Reading ingestion and time-range queries
package main
