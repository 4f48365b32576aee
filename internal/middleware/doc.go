// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

// Package middleware holds the HTTP middleware that is specific to this
// service. Generic concerns (recovery, real IP, CORS, rate limiting,
// compression) come from chi and its sibling modules and are assembled in
// the api package.
//
// All middleware here has the chi signature func(http.Handler) http.Handler:
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID)
//	r.Use(middleware.SecurityHeaders)
//	r.Use(middleware.PrometheusMetrics)
//	r.Use(monitor.Middleware)
//
// Metrics and samples are keyed by route pattern, so a path such as
// /api/v1/sensors/42 is reported as /api/v1/sensors/{id}.
package middleware
