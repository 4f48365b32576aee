// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/sensorgrid/internal/apperr"
	"github.com/tomtom215/sensorgrid/internal/audit"
	"github.com/tomtom215/sensorgrid/internal/auth"
	"github.com/tomtom215/sensorgrid/internal/ingest"
	"github.com/tomtom215/sensorgrid/internal/middleware"
	"github.com/tomtom215/sensorgrid/internal/provisioning"
	"github.com/tomtom215/sensorgrid/internal/telemetry"
)

// HealthChecker reports whether the database is reachable.
// Satisfied by *database.DB.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Dependencies are the services the handlers call. Audit and Performance
// may be nil.
type Dependencies struct {
	Health       HealthChecker
	Provisioning *provisioning.Service
	Ingest       *ingest.Service
	Telemetry    *telemetry.Service
	Audit        *audit.Logger
	Performance  *middleware.PerformanceMonitor
	Version      string
}

// Handler serves the HTTP API.
//
// Handler methods are split across files:
//   - handlers_health.go: health probes
//   - handlers_admin.go: admin provisioning, audit and stats
//   - handlers_locations.go, handlers_sensors.go: company resources
//   - handlers_sensor_data.go: ingestion and query
type Handler struct {
	health       HealthChecker
	provisioning *provisioning.Service
	ingest       *ingest.Service
	telemetry    *telemetry.Service
	audit        *audit.Logger
	perfMon      *middleware.PerformanceMonitor
	version      string
	startTime    time.Time
}

// NewHandler creates the API handler.
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		health:       deps.Health,
		provisioning: deps.Provisioning,
		ingest:       deps.Ingest,
		telemetry:    deps.Telemetry,
		audit:        deps.Audit,
		perfMon:      deps.Performance,
		version:      deps.Version,
		startTime:    time.Now(),
	}
}

// companyID returns the company of the authenticated principal. The
// company routes are mounted behind RequireCompany, so a missing
// principal means the router is misconfigured.
func companyID(r *http.Request) (int64, error) {
	p := auth.PrincipalFromContext(r.Context())
	if p == nil || p.Role != auth.RoleCompany {
		return 0, apperr.ErrInvalidCredential
	}
	return p.CompanyID, nil
}
