// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

/*
Package api provides the HTTP surface of Sensorgrid: the chi router, the
handlers and the JSON envelope every response is wrapped in.

# Routes

All routes live under /api/v1:

	GET    /health, /health/live, /health/ready     public
	POST   /admin/companies                         admin (HTTP Basic)
	GET    /admin/companies, /admin/audit, /admin/stats
	POST   /admin/locations, /admin/sensors
	GET    /locations, POST /locations              company key
	GET    /locations/{id}, PUT, DELETE
	GET    /sensors[?location_id=], POST /sensors
	GET    /sensors/{id}, PUT, DELETE
	POST   /sensors/{id}/rotate-key
	GET    /sensor_data?sensor_ids=&from_time=&to_time=
	POST   /sensor_data                             sensor key (header or per record)

Prometheus metrics are served at /metrics and the OpenAPI document at
/swagger/.

# Response Envelope

	{
	  "success": true,
	  "data": {...},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}
	}

Errors carry {"code", "message", "details"} in place of data. Resources
owned by another company are reported as NOT_FOUND, exactly like ids
that do not exist.

# Middleware Order

RequestID, RealIP, audit source, Recoverer, CORS, security headers,
Prometheus, performance sampling. Route groups then add rate limiting,
credential resolution, route authorization and, for company reads,
gzip compression.
*/
package api
