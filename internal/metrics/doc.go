// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto
and exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Requests rejected by the IP rate limiter

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries
    Labels: operation, table, error_type

Domain Metrics:
  - auth_attempts_total: Credential resolutions by principal and outcome
  - authz_denials_total: Route authorization rejections by role
  - ingest_readings_accepted_total, ingest_records_rejected_total, ingest_batch_size
  - query_rows_returned, query_truncated_total
  - provisioning_operations_total
  - audit_events_written_total, audit_events_dropped_total

Label values are drawn from fixed sets. Never use tenant ids, sensor ids or
API keys as labels.
*/
package metrics
