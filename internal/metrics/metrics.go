// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package metrics

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBConnectionPoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "duckdb_connection_pool_size",
			Help: "Current number of database connections in use",
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	// Authentication Metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Credential resolutions by principal kind and outcome",
		},
		[]string{"principal", "outcome"}, // principal: admin, company, sensor; outcome: success, failure
	)

	AuthzDenials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authz_denials_total",
			Help: "Requests rejected by route authorization",
		},
		[]string{"role"},
	)

	// Ingestion Metrics
	IngestReadingsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_readings_accepted_total",
			Help: "Total number of readings durably stored",
		},
	)

	IngestRecordsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_records_rejected_total",
			Help: "Ingest records rejected before or during storage",
		},
		[]string{"reason"}, // credential, invalid, rate_limited, storage
	)

	IngestBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingest_batch_size",
			Help:    "Number of records per ingest request",
			Buckets: []float64{1, 5, 10, 50, 100, 250, 500, 1000},
		},
	)

	// Query Metrics
	QueryRowsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "query_rows_returned",
			Help:    "Number of readings returned per sensor data query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	QueryTruncated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "query_truncated_total",
			Help: "Sensor data queries whose result hit the row cap",
		},
	)

	// Provisioning Metrics
	ProvisioningOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provisioning_operations_total",
			Help: "Provisioning mutations by entity and operation",
		},
		[]string{"entity", "operation"}, // entity: company, location, sensor; operation: create, update, delete, rotate_key
	)

	// Audit Metrics
	AuditEventsWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_events_written_total",
			Help: "Audit events persisted to the audit store",
		},
	)

	AuditEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_events_dropped_total",
			Help: "Audit events dropped because the buffer was full",
		},
	)

	// Application Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, classifyDBError(err)).Inc()
	}
}

// classifyDBError maps driver errors to a small, fixed label set.
func classifyDBError(err error) string {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "no_rows"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "constraint"):
		return "constraint"
	case strings.Contains(msg, "conflict"):
		return "tx_conflict"
	default:
		return "other"
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAuthAttempt records the outcome of a credential resolution.
func RecordAuthAttempt(principal string, ok bool) {
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	AuthAttempts.WithLabelValues(principal, outcome).Inc()
}

// RecordIngest records the result of one ingest request.
func RecordIngest(batchSize, accepted int) {
	IngestBatchSize.Observe(float64(batchSize))
	IngestReadingsAccepted.Add(float64(accepted))
}

// RecordIngestRejected records rejected ingest records by reason.
func RecordIngestRejected(reason string, count int) {
	if count <= 0 {
		return
	}
	IngestRecordsRejected.WithLabelValues(reason).Add(float64(count))
}

// RecordQuery records the size of a sensor data query result.
func RecordQuery(rows int, truncated bool) {
	QueryRowsReturned.Observe(float64(rows))
	if truncated {
		QueryTruncated.Inc()
	}
}

// RecordProvisioning records a successful provisioning mutation.
func RecordProvisioning(entity, operation string) {
	ProvisioningOperations.WithLabelValues(entity, operation).Inc()
}
