// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/sensorgrid/internal/apperr"
	"github.com/tomtom215/sensorgrid/internal/models"
	"github.com/tomtom215/sensorgrid/internal/scope"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func reading(sensorID int64, offset time.Duration, payload string) models.Reading {
	return models.Reading{SensorID: sensorID, Timestamp: t0.Add(offset), Data: []byte(payload)}
}

func TestInsertReadings_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	c := mustCompany(t, db, "Acme")
	l := mustLocation(t, db, c.ID, "HQ")
	s, _ := mustSensor(t, db, c.ID, l.ID, "probe")

	batch := []models.Reading{reading(s.ID, 0, `{"temp":21.5}`)}
	n, err := db.InsertReadings(ctx, batch, true)
	if err != nil {
		t.Fatalf("InsertReadings() error = %v", err)
	}
	if n != 1 || batch[0].ID == 0 {
		t.Fatalf("InsertReadings() = %d, id %d", n, batch[0].ID)
	}

	pred, err := scope.Readings(c.ID, []int64{s.ID}, t0, t0)
	if err != nil {
		t.Fatalf("scope.Readings() error = %v", err)
	}
	got, truncated, err := db.QueryReadings(ctx, pred, 100)
	if err != nil {
		t.Fatalf("QueryReadings() error = %v", err)
	}
	if truncated {
		t.Error("truncated = true for a single row")
	}
	if len(got) != 1 {
		t.Fatalf("QueryReadings() = %d rows, want 1 (inclusive bounds)", len(got))
	}
	if !got[0].Timestamp.Equal(t0) || string(got[0].Data) != `{"temp":21.5}` || got[0].ID != batch[0].ID {
		t.Errorf("QueryReadings()[0] = %+v", got[0])
	}
}

func TestInsertReadings_Atomic(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	c := mustCompany(t, db, "Acme")
	l := mustLocation(t, db, c.ID, "HQ")
	s, _ := mustSensor(t, db, c.ID, l.ID, "probe")

	batch := []models.Reading{
		reading(s.ID, 0, `{"a":1}`),
		reading(987654, time.Second, `{"a":2}`),
	}
	n, err := db.InsertReadings(ctx, batch, true)
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("InsertReadings() error = %v, want ErrInvalidArgument", err)
	}
	if n != 0 {
		t.Errorf("atomic InsertReadings() reported %d written", n)
	}

	pred, _ := scope.Readings(c.ID, []int64{s.ID}, t0.Add(-time.Hour), t0.Add(time.Hour))
	got, _, err := db.QueryReadings(ctx, pred, 100)
	if err != nil {
		t.Fatalf("QueryReadings() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("atomic batch left %d rows behind", len(got))
	}
}

func TestInsertReadings_PerRecord(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	c := mustCompany(t, db, "Acme")
	l := mustLocation(t, db, c.ID, "HQ")
	s, _ := mustSensor(t, db, c.ID, l.ID, "probe")

	batch := []models.Reading{
		reading(s.ID, 0, `{"a":1}`),
		reading(s.ID, time.Second, `{"a":2}`),
		reading(987654, 2*time.Second, `{"a":3}`),
		reading(s.ID, 3*time.Second, `{"a":4}`),
	}
	n, err := db.InsertReadings(ctx, batch, false)
	if err == nil {
		t.Fatal("InsertReadings() error = nil, want failure on missing sensor")
	}
	if n != 2 {
		t.Errorf("per-record InsertReadings() written = %d, want 2", n)
	}

	pred, _ := scope.Readings(c.ID, []int64{s.ID}, t0.Add(-time.Hour), t0.Add(time.Hour))
	got, _, err := db.QueryReadings(ctx, pred, 100)
	if err != nil {
		t.Fatalf("QueryReadings() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("committed rows = %d, want 2", len(got))
	}
}

func TestQueryReadings_OrderScopeAndTruncation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	acme := mustCompany(t, db, "Acme")
	globex := mustCompany(t, db, "Globex")
	hq := mustLocation(t, db, acme.ID, "HQ")
	lab := mustLocation(t, db, globex.ID, "Lab")
	s1, _ := mustSensor(t, db, acme.ID, hq.ID, "s1")
	s2, _ := mustSensor(t, db, acme.ID, hq.ID, "s2")
	foreign, _ := mustSensor(t, db, globex.ID, lab.ID, "g")

	_, err := db.InsertReadings(ctx, []models.Reading{
		reading(s2.ID, 2*time.Minute, `{"n":4}`),
		reading(s1.ID, time.Minute, `{"n":2}`),
		reading(s2.ID, 0, `{"n":3}`),
		reading(s1.ID, 0, `{"n":1}`),
		reading(foreign.ID, 0, `{"n":99}`),
		reading(s1.ID, time.Hour, `{"n":"outside"}`),
	}, true)
	if err != nil {
		t.Fatalf("InsertReadings() error = %v", err)
	}

	pred, err := scope.Readings(acme.ID, []int64{s1.ID, s2.ID, foreign.ID}, t0, t0.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("scope.Readings() error = %v", err)
	}
	got, truncated, err := db.QueryReadings(ctx, pred, 100)
	if err != nil {
		t.Fatalf("QueryReadings() error = %v", err)
	}
	if truncated {
		t.Error("truncated = true")
	}

	want := []string{`{"n":1}`, `{"n":2}`, `{"n":3}`, `{"n":4}`}
	if len(got) != len(want) {
		t.Fatalf("QueryReadings() = %d rows, want %d", len(got), len(want))
	}
	for i, r := range got {
		if string(r.Data) != want[i] {
			t.Errorf("row %d = %s, want %s", i, r.Data, want[i])
		}
		if r.SensorID == foreign.ID {
			t.Errorf("row %d belongs to another company", i)
		}
	}

	capped, truncated, err := db.QueryReadings(ctx, pred, 3)
	if err != nil {
		t.Fatalf("QueryReadings(limit 3) error = %v", err)
	}
	if !truncated || len(capped) != 3 {
		t.Errorf("QueryReadings(limit 3) = %d rows, truncated %v", len(capped), truncated)
	}
}
