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

// Sensor predicates are written against the bare sensors table, so they are
// applied in a derived table before the join that adds company_id.
const sensorSelect = `
	SELECT s.sensor_id, s.location_id, l.company_id, s.sensor_name, s.sensor_category, s.sensor_meta,
		s.api_key_prefix, s.api_key_hash, s.created_at, s.updated_at
	FROM (SELECT * FROM sensors %s) s
	JOIN locations l ON l.location_id = s.location_id`

func scanSensor(row rowScanner) (*models.Sensor, error) {
	var s models.Sensor
	err := row.Scan(&s.ID, &s.LocationID, &s.CompanyID, &s.Name, &s.Category, &s.Meta,
		&s.APIKeyPrefix, &s.APIKeyHash, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (db *DB) getSensor(ctx context.Context, q queryer, pred scope.Predicate) (*models.Sensor, error) {
	s, err := scanSensor(q.QueryRowContext(ctx, fmt.Sprintf(sensorSelect, pred.Where()), pred.Args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sensor: %w", err)
	}
	return s, nil
}

func sensorByID(sensorID int64) scope.Predicate {
	return scope.NewWhereBuilder().AddClause("sensor_id = ?", sensorID).Build()
}

// CreateSensor inserts a sensor under the location matching parent. A
// parent predicate that matches no location inserts nothing and returns
// apperr.ErrInvalidArgument.
func (db *DB) CreateSensor(ctx context.Context, parent scope.Predicate, in models.SensorInput, keyPrefix, keyHash string) (*models.Sensor, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	now := time.Now().UTC()
	args := append([]any{in.Name, in.Category, in.Meta, keyPrefix, keyHash, now, now}, parent.Args...)

	var created *models.Sensor
	start := time.Now()
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, `
			INSERT INTO sensors (location_id, sensor_name, sensor_category, sensor_meta,
				api_key_prefix, api_key_hash, created_at, updated_at)
			SELECT location_id, CAST(? AS VARCHAR), CAST(? AS VARCHAR), CAST(? AS VARCHAR),
				CAST(? AS VARCHAR), CAST(? AS VARCHAR), CAST(? AS TIMESTAMP), CAST(? AS TIMESTAMP)
			FROM locations `+parent.Where()+`
			RETURNING sensor_id`,
			args...).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.Invalid("location not found in caller's scope")
		}
		if err != nil {
			if isUniqueViolation(err) {
				return apperr.Conflict("sensor api key collision")
			}
			return fmt.Errorf("failed to insert sensor: %w", err)
		}

		created, err = db.getSensor(ctx, tx, sensorByID(id))
		return err
	})
	observe("INSERT", "sensors", start, err)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListSensors returns the sensors matching pred ordered by id.
func (db *DB) ListSensors(ctx context.Context, pred scope.Predicate) ([]models.Sensor, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		fmt.Sprintf(sensorSelect, pred.Where())+` ORDER BY s.sensor_id`, pred.Args...)
	observe("SELECT", "sensors", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list sensors: %w", err)
	}
	defer closeWithLog(rows, "sensors rows")

	sensors := make([]models.Sensor, 0)
	for rows.Next() {
		s, err := scanSensor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sensor: %w", err)
		}
		sensors = append(sensors, *s)
	}
	return sensors, rows.Err()
}

// GetSensor returns the single sensor matching pred.
func (db *DB) GetSensor(ctx context.Context, pred scope.Predicate) (*models.Sensor, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	s, err := db.getSensor(ctx, db.conn, pred)
	observe("SELECT", "sensors", start, err)
	return s, err
}

// GetSensorByKeyHash returns the sensor owning keyHash, or nil if none does.
func (db *DB) GetSensorByKeyHash(ctx context.Context, keyHash string) (*models.Sensor, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	pred := scope.NewWhereBuilder().AddClause("api_key_hash = ?", keyHash).Build()

	start := time.Now()
	s, err := db.getSensor(ctx, db.conn, pred)
	observe("SELECT", "sensors", start, err)
	if errors.Is(err, apperr.ErrNotFoundOrForbidden) {
		return nil, nil
	}
	return s, err
}

// UpdateSensor replaces the mutable fields of the sensor matching pred.
func (db *DB) UpdateSensor(ctx context.Context, pred scope.Predicate, in models.SensorInput) (*models.Sensor, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	args := append([]any{in.Name, in.Category, in.Meta, time.Now().UTC()}, pred.Args...)
	return db.updateSensor(ctx, "UPDATE", `
		UPDATE sensors
		SET sensor_name = ?, sensor_category = ?, sensor_meta = ?, updated_at = ?
		`+pred.Where()+`
		RETURNING sensor_id`, args)
}

// RotateSensorKey replaces the key of the sensor matching pred. The previous
// key stops resolving as soon as the statement commits.
func (db *DB) RotateSensorKey(ctx context.Context, pred scope.Predicate, keyPrefix, keyHash string) (*models.Sensor, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	args := append([]any{keyPrefix, keyHash, time.Now().UTC()}, pred.Args...)
	return db.updateSensor(ctx, "ROTATE", `
		UPDATE sensors
		SET api_key_prefix = ?, api_key_hash = ?, updated_at = ?
		`+pred.Where()+`
		RETURNING sensor_id`, args)
}

func (db *DB) updateSensor(ctx context.Context, operation, query string, args []any) (*models.Sensor, error) {
	var updated *models.Sensor
	start := time.Now()
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, query, args...).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.ErrNotFoundOrForbidden
		}
		if err != nil {
			if isUniqueViolation(err) {
				return apperr.Conflict("sensor api key collision")
			}
			return fmt.Errorf("failed to update sensor: %w", err)
		}

		updated, err = db.getSensor(ctx, tx, sensorByID(id))
		return err
	})
	observe(operation, "sensors", start, err)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteSensor deletes the sensor matching pred unless it has readings, in
// which case apperr.ErrConflict is returned and nothing changes.
func (db *DB) DeleteSensor(ctx context.Context, pred scope.Predicate) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	guarded := pred.And(`NOT EXISTS (SELECT 1 FROM readings WHERE readings.sensor_id = sensors.sensor_id)`)

	start := time.Now()
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM sensors `+guarded.Where(), guarded.Args...)
		if err != nil {
			return fmt.Errorf("failed to delete sensor: %w", err)
		}
		return classifyGuardedDelete(ctx, tx, res, "sensors", pred, "sensor still has readings")
	})
	observe("DELETE", "sensors", start, err)
	return err
}

// CountSensors returns how many sensors match pred.
func (db *DB) CountSensors(ctx context.Context, pred scope.Predicate) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var n int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM sensors `+pred.Where(), pred.Args...).Scan(&n)
	observe("COUNT", "sensors", start, err)
	if err != nil {
		return 0, fmt.Errorf("failed to count sensors: %w", err)
	}
	return n, nil
}
