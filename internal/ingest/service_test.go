// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package ingest

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sensorgrid/internal/apperr"
	"github.com/tomtom215/sensorgrid/internal/auth"
	"github.com/tomtom215/sensorgrid/internal/config"
	"github.com/tomtom215/sensorgrid/internal/logging"
	"github.com/tomtom215/sensorgrid/internal/models"
)

// mockStore records inserted readings. failAt makes the n-th reading fail.
type mockStore struct {
	mu       sync.Mutex
	readings []models.Reading
	atomic   bool
	calls    int
	failAt   int
}

func (m *mockStore) InsertReadings(_ context.Context, readings []models.Reading, atomic bool) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.atomic = atomic

	if m.failAt > 0 && m.failAt <= len(readings) {
		if atomic {
			return 0, errors.New("disk full")
		}
		m.readings = append(m.readings, readings[:m.failAt-1]...)
		return m.failAt - 1, errors.New("disk full")
	}
	m.readings = append(m.readings, readings...)
	return len(readings), nil
}

type mockResolver map[string]*auth.Principal

func (m mockResolver) ResolveSensors(_ context.Context, keys []string) (map[string]*auth.Principal, error) {
	out := make(map[string]*auth.Principal)
	for _, k := range keys {
		p, ok := m[k]
		if !ok {
			return nil, apperr.ErrInvalidCredential
		}
		out[k] = p
	}
	return out, nil
}

var fixedNow = time.Date(2025, 5, 1, 12, 30, 45, 900_000_000, time.UTC)

func testIngestConfig() config.IngestConfig {
	return config.IngestConfig{
		BatchMode:          config.BatchModeAtomic,
		TimestampAuthority: config.TimestampAuthorityCaller,
		MaxBatchSize:       10,
		MaxPayloadBytes:    64,
	}
}

func newTestService(store *mockStore, cfg config.IngestConfig, limiter *SensorLimiter) *Service {
	resolver := mockResolver{
		"sgs_one": {Role: auth.RoleSensor, SensorID: 1, CompanyID: 1},
		"sgs_two": {Role: auth.RoleSensor, SensorID: 2, CompanyID: 1},
	}
	svc := NewService(store, resolver, cfg, limiter, logging.NewTestLogger(io.Discard))
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func sensorPrincipal(id int64) *auth.Principal {
	return &auth.Principal{Role: auth.RoleSensor, SensorID: id, CompanyID: 1}
}

func record(data string, ts *time.Time) models.IngestRecord {
	rec := models.IngestRecord{Data: json.RawMessage(data)}
	if ts != nil {
		rec.Timestamp = &models.Timestamp{Time: *ts}
	}
	return rec
}

func TestIngest_StoresReadings(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	svc := newTestService(store, testIngestConfig(), nil)
	callerTS := time.Date(2025, 4, 30, 8, 0, 0, 0, time.UTC)

	res, err := svc.Ingest(context.Background(), sensorPrincipal(7), []models.IngestRecord{
		record(`{ "temp" : 21.5 }`, &callerTS),
		record(`[1, 2, 3]`, nil),
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if res.Accepted != 2 {
		t.Errorf("Accepted = %d, want 2", res.Accepted)
	}
	if !store.atomic {
		t.Error("default batch mode should be atomic")
	}

	got := store.readings
	if got[0].SensorID != 7 || got[1].SensorID != 7 {
		t.Errorf("sensor ids = %d, %d", got[0].SensorID, got[1].SensorID)
	}
	if string(got[0].Data) != `{"temp":21.5}` {
		t.Errorf("payload not compacted: %s", got[0].Data)
	}
	if !got[0].Timestamp.Equal(callerTS) {
		t.Errorf("caller timestamp = %v, want %v", got[0].Timestamp, callerTS)
	}
	if want := fixedNow.Truncate(time.Second); !got[1].Timestamp.Equal(want) {
		t.Errorf("default timestamp = %v, want %v", got[1].Timestamp, want)
	}
}

func TestIngest_ServerTimestampAuthority(t *testing.T) {
	t.Parallel()

	cfg := testIngestConfig()
	cfg.TimestampAuthority = config.TimestampAuthorityServer
	store := &mockStore{}
	svc := newTestService(store, cfg, nil)
	callerTS := time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.Ingest(context.Background(), sensorPrincipal(1), []models.IngestRecord{record(`{}`, &callerTS)}); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if want := fixedNow.Truncate(time.Second); !store.readings[0].Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want server time %v", store.readings[0].Timestamp, want)
	}
}

func TestIngest_RejectsBeforeWriting(t *testing.T) {
	t.Parallel()

	big := `{"blob":"` + strings.Repeat("x", 64) + `"}`

	tests := []struct {
		name    string
		records []models.IngestRecord
	}{
		{"empty batch", nil},
		{"too many", make([]models.IngestRecord, 11)},
		{"scalar payload", []models.IngestRecord{record(`{}`, nil), record(`42`, nil)}},
		{"string payload", []models.IngestRecord{record(`"hello"`, nil)}},
		{"null payload", []models.IngestRecord{record(`null`, nil)}},
		{"missing payload", []models.IngestRecord{{}}},
		{"malformed", []models.IngestRecord{record(`{"a":`, nil)}},
		{"oversized", []models.IngestRecord{record(big, nil)}},
		{"record key with header", []models.IngestRecord{{SensorAPIKey: "sgs_one", Data: json.RawMessage(`{}`)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{}
			svc := newTestService(store, testIngestConfig(), nil)

			_, err := svc.Ingest(context.Background(), sensorPrincipal(1), tt.records)
			if !errors.Is(err, apperr.ErrInvalidArgument) {
				t.Errorf("Ingest() error = %v, want ErrInvalidArgument", err)
			}
			if store.calls != 0 {
				t.Errorf("store called %d times, want 0", store.calls)
			}
		})
	}
}

func TestIngest_RequiresSensorPrincipal(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockStore{}, testIngestConfig(), nil)
	company := &auth.Principal{Role: auth.RoleCompany, CompanyID: 1}

	if _, err := svc.Ingest(context.Background(), company, []models.IngestRecord{record(`{}`, nil)}); !errors.Is(err, apperr.ErrInvalidCredential) {
		t.Errorf("Ingest(company) error = %v, want ErrInvalidCredential", err)
	}
}

func TestIngestBatch(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	svc := newTestService(store, testIngestConfig(), nil)
	ctx := context.Background()

	res, err := svc.IngestBatch(ctx, []models.IngestRecord{
		{SensorAPIKey: "sgs_one", Data: json.RawMessage(`{"a":1}`)},
		{SensorAPIKey: "sgs_two", Data: json.RawMessage(`{"b":2}`)},
		{SensorAPIKey: "sgs_one", Data: json.RawMessage(`{"c":3}`)},
	})
	if err != nil {
		t.Fatalf("IngestBatch() error = %v", err)
	}
	if res.Accepted != 3 {
		t.Errorf("Accepted = %d, want 3", res.Accepted)
	}
	ids := []int64{store.readings[0].SensorID, store.readings[1].SensorID, store.readings[2].SensorID}
	if ids[0] != 1 || ids[1] != 2 || ids[2] != 1 {
		t.Errorf("sensor ids = %v, want [1 2 1]", ids)
	}

	// One unknown key rejects the whole batch.
	store2 := &mockStore{}
	svc2 := newTestService(store2, testIngestConfig(), nil)
	_, err = svc2.IngestBatch(ctx, []models.IngestRecord{
		{SensorAPIKey: "sgs_one", Data: json.RawMessage(`{}`)},
		{SensorAPIKey: "sgs_bogus", Data: json.RawMessage(`{}`)},
	})
	if !errors.Is(err, apperr.ErrInvalidCredential) {
		t.Errorf("IngestBatch(unknown key) error = %v, want ErrInvalidCredential", err)
	}
	if store2.calls != 0 {
		t.Error("nothing may be written when a key is unknown")
	}

	_, err = svc2.IngestBatch(ctx, []models.IngestRecord{{Data: json.RawMessage(`{}`)}})
	if !errors.Is(err, apperr.ErrInvalidCredential) {
		t.Errorf("IngestBatch(missing key) error = %v, want ErrInvalidCredential", err)
	}
}

func TestIngest_PerRecordPartialFailure(t *testing.T) {
	t.Parallel()

	cfg := testIngestConfig()
	cfg.BatchMode = config.BatchModePerRecord
	store := &mockStore{failAt: 3}
	svc := newTestService(store, cfg, nil)

	records := []models.IngestRecord{record(`{}`, nil), record(`{}`, nil), record(`{}`, nil), record(`{}`, nil)}
	res, err := svc.Ingest(context.Background(), sensorPrincipal(1), records)
	if err == nil {
		t.Fatal("expected error")
	}
	if apperr.IsClientError(err) {
		t.Errorf("storage failure classified as client error: %v", err)
	}
	if res.Accepted != 2 {
		t.Errorf("Accepted = %d, want 2", res.Accepted)
	}
	if store.atomic {
		t.Error("per_record mode must not request a transaction")
	}
}

func TestIngest_RateLimited(t *testing.T) {
	t.Parallel()

	limiter := NewSensorLimiter(1, 3)
	limiter.now = func() time.Time { return fixedNow }
	store := &mockStore{}
	svc := newTestService(store, testIngestConfig(), limiter)
	ctx := context.Background()

	two := []models.IngestRecord{record(`{}`, nil), record(`{}`, nil)}
	if _, err := svc.Ingest(ctx, sensorPrincipal(1), two); err != nil {
		t.Fatalf("first Ingest() error = %v", err)
	}
	if _, err := svc.Ingest(ctx, sensorPrincipal(1), two); !errors.Is(err, apperr.ErrRateLimited) {
		t.Errorf("second Ingest() error = %v, want ErrRateLimited", err)
	}
	// Other sensors have their own bucket.
	if _, err := svc.Ingest(ctx, sensorPrincipal(2), two); err != nil {
		t.Errorf("other sensor Ingest() error = %v", err)
	}
	if len(store.readings) != 4 {
		t.Errorf("stored %d readings, want 4", len(store.readings))
	}
}

func TestSensorLimiter_Cleanup(t *testing.T) {
	t.Parallel()

	now := fixedNow
	limiter := NewSensorLimiter(10, 10)
	limiter.now = func() time.Time { return now }

	limiter.AllowN(1, 1)
	now = now.Add(2 * time.Hour)
	limiter.AllowN(2, 1)

	if removed := limiter.cleanup(); removed != 1 {
		t.Errorf("cleanup() removed %d, want 1", removed)
	}
	if limiter.size() != 1 {
		t.Errorf("size() = %d, want 1", limiter.size())
	}
}
