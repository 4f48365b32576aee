// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

/*
Package config provides layered configuration for Sensorgrid.

# Configuration Sources

Values are loaded with Koanf v2 in three layers, later layers winning:

  - Built-in defaults (defaultConfig)
  - A YAML file: CONFIG_PATH, else config.yaml / /etc/sensorgrid/config.yaml
  - Environment variables mapped through envMappings

# Environment Variables

Database:
  - DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS

HTTP Server:
  - HTTP_HOST, HTTP_PORT, HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT,
    HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT, HTTP_MAX_BODY_BYTES, ENVIRONMENT
  - SLOW_REQUEST_THRESHOLD: log requests slower than this (0 disables)

Security:
  - ADMIN_USERNAME, ADMIN_PASSWORD: bootstrap admin (stored bcrypt-hashed)
  - BCRYPT_COST
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - ADMIN_RATE_LIMIT_REQUESTS, INGEST_RATE_LIMIT_REQUESTS: per-window budgets
    for the admin and ingest route groups
  - CORS_ORIGINS: comma-separated
  - CASBIN_POLICY_PATH: optional route policy override

Ingestion:
  - INGEST_BATCH_MODE: atomic (default) or per_record
  - INGEST_TIMESTAMP_AUTHORITY: caller (default) or server
  - INGEST_MAX_BATCH_SIZE, INGEST_MAX_PAYLOAD_BYTES
  - INGEST_PER_SENSOR_RATE, INGEST_PER_SENSOR_BURST

Query:
  - QUERY_MAX_SENSOR_IDS, QUERY_MAX_ROWS

Audit and maintenance:
  - AUDIT_ENABLED, AUDIT_BUFFER_SIZE, AUDIT_RETENTION_DAYS,
    AUDIT_CLEANUP_INTERVAL, AUDIT_LOG_TO_STDOUT
  - CHECKPOINT_INTERVAL

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
*/
package config
