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

	"github.com/tomtom215/sensorgrid/internal/apperr"
	"github.com/tomtom215/sensorgrid/internal/models"
	"github.com/tomtom215/sensorgrid/internal/scope"
)

const locationColumns = `location_id, company_id, location_name, location_country, location_city, location_meta, created_at, updated_at`

func scanLocation(row rowScanner) (*models.Location, error) {
	var l models.Location
	err := row.Scan(&l.ID, &l.CompanyID, &l.Name, &l.Country, &l.City, &l.Meta, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateLocation inserts a location under companyID. The row is selected
// from the companies table, so a missing company inserts nothing and
// returns apperr.ErrInvalidArgument.
func (db *DB) CreateLocation(ctx context.Context, companyID int64, in models.LocationInput) (*models.Location, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	now := time.Now().UTC()
	parent := scope.Company(companyID)
	args := append([]any{in.Name, in.Country, in.City, in.Meta, now, now}, parent.Args...)

	start := time.Now()
	l, err := scanLocation(db.conn.QueryRowContext(ctx, `
		INSERT INTO locations (company_id, location_name, location_country, location_city, location_meta, created_at, updated_at)
		SELECT company_id, CAST(? AS VARCHAR), CAST(? AS VARCHAR), CAST(? AS VARCHAR), CAST(? AS VARCHAR),
			CAST(? AS TIMESTAMP), CAST(? AS TIMESTAMP)
		FROM companies `+parent.Where()+`
		RETURNING `+locationColumns,
		args...))
	observe("INSERT", "locations", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Invalid("company %d does not exist", companyID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert location: %w", err)
	}
	return l, nil
}

// ListLocations returns the locations matching pred ordered by id.
func (db *DB) ListLocations(ctx context.Context, pred scope.Predicate) ([]models.Location, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+locationColumns+` FROM locations `+pred.Where()+` ORDER BY location_id`,
		pred.Args...)
	observe("SELECT", "locations", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer closeWithLog(rows, "locations rows")

	locations := make([]models.Location, 0)
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, *l)
	}
	return locations, rows.Err()
}

// GetLocation returns the single location matching pred.
func (db *DB) GetLocation(ctx context.Context, pred scope.Predicate) (*models.Location, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	l, err := scanLocation(db.conn.QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM locations `+pred.Where(), pred.Args...))
	observe("SELECT", "locations", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return l, nil
}

// UpdateLocation replaces the mutable fields of the location matching pred.
func (db *DB) UpdateLocation(ctx context.Context, pred scope.Predicate, in models.LocationInput) (*models.Location, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	args := append([]any{in.Name, in.Country, in.City, in.Meta, time.Now().UTC()}, pred.Args...)

	start := time.Now()
	l, err := scanLocation(db.conn.QueryRowContext(ctx, `
		UPDATE locations
		SET location_name = ?, location_country = ?, location_city = ?, location_meta = ?, updated_at = ?
		`+pred.Where()+`
		RETURNING `+locationColumns,
		args...))
	observe("UPDATE", "locations", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}
	return l, nil
}

// DeleteLocation deletes the location matching pred unless it still has
// sensors, in which case apperr.ErrConflict is returned and nothing changes.
func (db *DB) DeleteLocation(ctx context.Context, pred scope.Predicate) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	guarded := pred.And(`NOT EXISTS (SELECT 1 FROM sensors WHERE sensors.location_id = locations.location_id)`)

	start := time.Now()
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM locations `+guarded.Where(), guarded.Args...)
		if err != nil {
			return fmt.Errorf("failed to delete location: %w", err)
		}
		return classifyGuardedDelete(ctx, tx, res, "locations", pred, "location still has sensors")
	})
	observe("DELETE", "locations", start, err)
	return err
}

// classifyGuardedDelete turns a zero-row guarded delete into either
// ErrConflict (the scoped row exists but has children) or
// ErrNotFoundOrForbidden (no row in scope).
func classifyGuardedDelete(ctx context.Context, tx queryer, res sql.Result, table string, pred scope.Predicate, conflictMsg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}

	var remaining int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+` `+pred.Where(), pred.Args...).Scan(&remaining)
	if err != nil {
		return fmt.Errorf("failed to check %s after delete: %w", table, err)
	}
	if remaining > 0 {
		return apperr.Conflict("%s", conflictMsg)
	}
	return apperr.ErrNotFoundOrForbidden
}
