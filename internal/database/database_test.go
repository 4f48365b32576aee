// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package database

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/tomtom215/sensorgrid/internal/config"
	"github.com/tomtom215/sensorgrid/internal/models"
	"github.com/tomtom215/sensorgrid/internal/scope"
)

// testDBSemaphore limits concurrent database creation to prevent resource exhaustion in CI.
// The semaphore is held for the entire test, so only one test has an active
// DuckDB connection at any time.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB creates a new in-memory test database.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	db, err := New(&config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "512MB",
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})
	return db
}

var keySeq atomic.Int64

// testKey returns a unique (prefix, hash) pair for fixtures.
func testKey(kind string) (string, string) {
	hash := fmt.Sprintf("%s-hash-%06d", kind, keySeq.Add(1))
	return hash[:8], hash
}

func mustCompany(t *testing.T, db *DB, name string) *models.Company {
	t.Helper()
	prefix, hash := testKey("company")
	c, err := db.CreateCompany(context.Background(), name, prefix, hash)
	if err != nil {
		t.Fatalf("CreateCompany(%q) error = %v", name, err)
	}
	return c
}

func mustLocation(t *testing.T, db *DB, companyID int64, name string) *models.Location {
	t.Helper()
	l, err := db.CreateLocation(context.Background(), companyID, models.LocationInput{
		Name: name, Country: "NL", City: "Utrecht",
	})
	if err != nil {
		t.Fatalf("CreateLocation(%q) error = %v", name, err)
	}
	return l
}

func mustSensor(t *testing.T, db *DB, companyID, locationID int64, name string) (*models.Sensor, string) {
	t.Helper()
	prefix, hash := testKey("sensor")
	s, err := db.CreateSensor(context.Background(), scope.Location(companyID, locationID),
		models.SensorInput{Name: name, Category: "temperature"}, prefix, hash)
	if err != nil {
		t.Fatalf("CreateSensor(%q) error = %v", name, err)
	}
	return s, hash
}

func TestNew_InitializesSchema(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	for _, table := range []string{"admins", "companies", "locations", "sensors", "readings", "schema_migrations"} {
		var n int
		err := db.Conn().QueryRowContext(ctx,
			`SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?`, table).Scan(&n)
		if err != nil {
			t.Fatalf("information_schema lookup for %s: %v", table, err)
		}
		if n != 1 {
			t.Errorf("table %s missing", table)
		}
	}

	version, err := db.GetCurrentSchemaVersion(ctx)
	if err != nil {
		t.Fatalf("GetCurrentSchemaVersion() error = %v", err)
	}
	if want := migrations[len(migrations)-1].Version; version != want {
		t.Errorf("schema version = %d, want %d", version, want)
	}
}

func TestRunVersionedMigrations_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	if err := db.runVersionedMigrations(); err != nil {
		t.Fatalf("second runVersionedMigrations() error = %v", err)
	}

	var n int
	if err := db.Conn().QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if n != len(migrations) {
		t.Errorf("schema_migrations rows = %d, want %d", n, len(migrations))
	}
}

func TestEnsureContext(t *testing.T) {
	db := &DB{}

	//nolint:staticcheck // nil context is handled explicitly
	ctx, cancel := db.ensureContext(nil)
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Error("nil context should receive a deadline")
	}

	ctx2, cancel2 := db.ensureContext(context.Background())
	defer cancel2()
	if _, ok := ctx2.Deadline(); !ok {
		t.Error("context without deadline should receive one")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{fmt.Errorf(`Constraint Error: Duplicate key "api_key_hash: x" violates unique constraint`), true},
		{fmt.Errorf("connection refused"), false},
	}
	for _, tt := range tests {
		if got := isUniqueViolation(tt.err); got != tt.want {
			t.Errorf("isUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
