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

// insertReadingSQL selects from sensors so a reading for a sensor deleted
// after key resolution inserts nothing.
const insertReadingSQL = `
	INSERT INTO readings (sensor_id, timestamp, payload, received_at)
	SELECT sensor_id, CAST(? AS TIMESTAMP), CAST(? AS VARCHAR), CAST(? AS TIMESTAMP)
	FROM sensors WHERE sensor_id = ?
	RETURNING reading_id`

func insertReading(ctx context.Context, q queryer, r *models.Reading, receivedAt time.Time) error {
	err := q.QueryRowContext(ctx, insertReadingSQL,
		r.Timestamp.UTC(), string(r.Data), receivedAt, r.SensorID).Scan(&r.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.Invalid("sensor %d does not exist", r.SensorID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert reading: %w", err)
	}
	return nil
}

// InsertReadings stores readings in input order and sets each ID.
//
// With atomic set, all rows are written in one transaction and any failure
// leaves nothing behind. Otherwise every row commits on its own and a
// failure stops the loop; the returned count is the number of rows already
// committed.
func (db *DB) InsertReadings(ctx context.Context, readings []models.Reading, atomic bool) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	receivedAt := time.Now().UTC()
	start := time.Now()

	if atomic {
		err := db.withTx(ctx, func(tx *sql.Tx) error {
			for i := range readings {
				if err := insertReading(ctx, tx, &readings[i], receivedAt); err != nil {
					return fmt.Errorf("record %d: %w", i, err)
				}
			}
			return nil
		})
		observe("INSERT", "readings", start, err)
		if err != nil {
			return 0, err
		}
		return len(readings), nil
	}

	written := 0
	for i := range readings {
		if err := insertReading(ctx, db.conn, &readings[i], receivedAt); err != nil {
			observe("INSERT", "readings", start, err)
			return written, fmt.Errorf("record %d: %w", i, err)
		}
		written++
	}
	observe("INSERT", "readings", start, nil)
	return written, nil
}

// QueryReadings returns up to limit readings matching pred, ordered by
// sensor id, timestamp and reading id. truncated reports whether more rows
// matched than were returned. Payloads are returned as stored and are not
// validated here.
func (db *DB) QueryReadings(ctx context.Context, pred scope.Predicate, limit int) (readings []models.Reading, truncated bool, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	args := append(append([]any{}, pred.Args...), limit+1)

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT r.reading_id, r.sensor_id, r.timestamp, r.payload
		FROM `+scope.ReadingsFrom+`
		`+pred.Where()+`
		ORDER BY r.sensor_id, r.timestamp, r.reading_id
		LIMIT ?`, args...)
	observe("SELECT", "readings", start, err)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query readings: %w", err)
	}
	defer closeWithLog(rows, "readings rows")

	readings = make([]models.Reading, 0)
	for rows.Next() {
		var (
			r       models.Reading
			payload string
		)
		if err := rows.Scan(&r.ID, &r.SensorID, &r.Timestamp, &payload); err != nil {
			return nil, false, fmt.Errorf("failed to scan reading: %w", err)
		}
		r.Timestamp = r.Timestamp.UTC()
		r.Data = []byte(payload)
		readings = append(readings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("error iterating readings: %w", err)
	}

	if len(readings) > limit {
		return readings[:limit], true, nil
	}
	return readings, false, nil
}
