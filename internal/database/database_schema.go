// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext bounds schema creation and migrations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// Referential integrity is enforced by the accessors rather than FOREIGN KEY
// constraints: DuckDB rejects updates to any row referenced by a foreign key
// and has no ON DELETE actions. Child inserts select from the parent row and
// deletes check for children inside the same transaction.
var schemaStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS company_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS location_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS sensor_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS reading_id_seq START 1`,

	`CREATE TABLE IF NOT EXISTS admins (
		username VARCHAR PRIMARY KEY,
		password_hash VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS companies (
		company_id BIGINT PRIMARY KEY DEFAULT nextval('company_id_seq'),
		company_name VARCHAR NOT NULL,
		api_key_prefix VARCHAR NOT NULL,
		api_key_hash VARCHAR NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS locations (
		location_id BIGINT PRIMARY KEY DEFAULT nextval('location_id_seq'),
		company_id BIGINT NOT NULL,
		location_name VARCHAR NOT NULL,
		location_country VARCHAR NOT NULL DEFAULT '',
		location_city VARCHAR NOT NULL DEFAULT '',
		location_meta VARCHAR NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sensors (
		sensor_id BIGINT PRIMARY KEY DEFAULT nextval('sensor_id_seq'),
		location_id BIGINT NOT NULL,
		sensor_name VARCHAR NOT NULL,
		sensor_category VARCHAR NOT NULL DEFAULT '',
		sensor_meta VARCHAR NOT NULL DEFAULT '',
		api_key_prefix VARCHAR NOT NULL,
		api_key_hash VARCHAR NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,

	// payload holds the validated JSON document text
	`CREATE TABLE IF NOT EXISTS readings (
		reading_id BIGINT PRIMARY KEY DEFAULT nextval('reading_id_seq'),
		sensor_id BIGINT NOT NULL,
		timestamp TIMESTAMP NOT NULL,
		payload VARCHAR NOT NULL,
		received_at TIMESTAMP NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_locations_company ON locations(company_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sensors_location ON sensors(location_id)`,
}

// createTables creates sequences, tables and indexes. Every statement is
// idempotent so it runs on each start.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}
