// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/sensorgrid/internal/models"
)

// UpsertAdmin creates the admin or replaces its password hash.
func (db *DB) UpsertAdmin(ctx context.Context, username, passwordHash string) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO admins (username, password_hash, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash`,
		username, passwordHash, time.Now().UTC())
	observe("UPSERT", "admins", start, err)
	if err != nil {
		return fmt.Errorf("failed to upsert admin: %w", err)
	}
	return nil
}

// GetAdmin returns the admin with the given username, or nil if none exists.
func (db *DB) GetAdmin(ctx context.Context, username string) (*models.Admin, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var a models.Admin
	err := db.conn.QueryRowContext(ctx,
		`SELECT username, password_hash, created_at FROM admins WHERE username = ?`,
		username).Scan(&a.Username, &a.PasswordHash, &a.CreatedAt)
	observe("SELECT", "admins", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &a, nil
}
