// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package database

import (
	"context"
	"testing"
)

func TestUpsertAdmin(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.UpsertAdmin(ctx, "root", "hash-1"); err != nil {
		t.Fatalf("UpsertAdmin() error = %v", err)
	}
	if err := db.UpsertAdmin(ctx, "root", "hash-2"); err != nil {
		t.Fatalf("UpsertAdmin() second call error = %v", err)
	}

	a, err := db.GetAdmin(ctx, "root")
	if err != nil {
		t.Fatalf("GetAdmin() error = %v", err)
	}
	if a == nil || a.PasswordHash != "hash-2" {
		t.Fatalf("GetAdmin() = %+v, want password hash replaced", a)
	}
}

func TestGetAdmin_Unknown(t *testing.T) {
	db := setupTestDB(t)

	a, err := db.GetAdmin(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetAdmin() error = %v", err)
	}
	if a != nil {
		t.Errorf("GetAdmin() = %+v, want nil", a)
	}
}
