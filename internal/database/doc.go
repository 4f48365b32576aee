// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

// Package database provides the DuckDB-backed storage layer for Sensorgrid.
//
// # Overview
//
// The package owns the single *sql.DB handle, the schema and versioned
// migrations, and typed accessors for every table. A *DB is created once in
// cmd/server and injected into the auth, provisioning, ingest and telemetry
// services; tests create an isolated ":memory:" instance per test.
//
// # Architecture
//
//   - database.go: lifecycle (open, pool, initialize, close)
//   - database_schema.go: sequences, tables and indexes
//   - migrations.go: versioned migrations tracked in schema_migrations
//   - database_utils.go: context timeouts, checkpoint, metrics helper
//   - admins.go, companies.go: identity records
//   - locations.go, sensors.go: ownership tree CRUD
//   - readings.go: telemetry append and scoped range reads
//
// # Ownership Scoping
//
// Accessors that read or mutate tenant data take a scope.Predicate and embed
// it in the statement's own WHERE clause. A statement that matches zero rows
// returns apperr.ErrNotFoundOrForbidden; there is no separate ownership read.
//
// Child rows are inserted with INSERT ... SELECT ... FROM <parent> WHERE
// <predicate>, so a missing or foreign parent inserts nothing and surfaces as
// apperr.ErrInvalidArgument. Deletes refuse to orphan children and return
// apperr.ErrConflict instead.
//
// # Database Technology
//
// DuckDB is used through the CGO driver github.com/duckdb/duckdb-go/v2.
// Extension autoloading is disabled; the schema relies only on core types.
// JSON payloads are stored as VARCHAR and validated before insert.
package database
