// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package audit

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/sensorgrid/internal/config"
	"github.com/tomtom215/sensorgrid/internal/logging"
	"github.com/tomtom215/sensorgrid/internal/metrics"
)

func testAuditConfig(buffer int) config.AuditConfig {
	return config.AuditConfig{
		Enabled:         true,
		BufferSize:      buffer,
		RetentionDays:   30,
		CleanupInterval: time.Hour,
	}
}

// flush runs the writer with an already-canceled context so every queued
// event is written before it returns.
func flush(t *testing.T, l *Logger) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}

func TestLogger_LogFillsDefaults(t *testing.T) {
	store := NewMemoryStore(100)
	logger := NewLogger(store, testAuditConfig(10))

	logger.Log(&Event{
		Type:        EventTypeCompanyCreated,
		Severity:    SeverityInfo,
		Outcome:     OutcomeSuccess,
		Actor:       Actor{ID: "root", Type: "admin"},
		Action:      "create",
		Description: "Company created",
	})
	flush(t, logger)

	events, err := store.Query(context.Background(), QueryFilter{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].ID == "" {
		t.Error("expected generated event ID")
	}
	if events[0].Timestamp.IsZero() {
		t.Error("expected generated timestamp")
	}
}

func TestLogger_Disabled(t *testing.T) {
	store := NewMemoryStore(100)
	cfg := testAuditConfig(10)
	cfg.Enabled = false
	logger := NewLogger(store, cfg)

	logger.Log(&Event{Type: EventTypeAuthFailure})
	flush(t, logger)

	if store.Len() != 0 {
		t.Errorf("disabled logger stored %d events", store.Len())
	}
}

func TestLogger_BufferFullDrops(t *testing.T) {
	store := NewMemoryStore(100)
	logger := NewLogger(store, testAuditConfig(2))

	before := testutil.ToFloat64(metrics.AuditEventsDropped)
	for range 5 {
		logger.Log(&Event{Type: EventTypeAuthFailure, Severity: SeverityWarning})
	}
	flush(t, logger)

	if store.Len() != 2 {
		t.Errorf("stored %d events, want 2", store.Len())
	}
	if got := testutil.ToFloat64(metrics.AuditEventsDropped) - before; got != 3 {
		t.Errorf("dropped counter delta = %v, want 3", got)
	}
}

func TestLogger_HelpersCarryRequestID(t *testing.T) {
	store := NewMemoryStore(100)
	logger := NewLogger(store, testAuditConfig(10))

	req := httptest.NewRequest("GET", "/sensor_data", nil)
	req.RemoteAddr = "10.0.0.9:51234"
	req.Header.Set("User-Agent", "probe/1.0")
	src := SourceFromRequest(req)

	ctx := logging.ContextWithRequestID(context.Background(), "req-42")
	ctx = ContextWithSource(ctx, src)

	logger.LogAuthFailure(ctx, "sensor", "sgs_abcd...", src, "unknown key")
	logger.LogAuthzDenied(ctx, Actor{ID: "7", Type: "sensor"}, src, "/admin/companies", "POST")
	logger.LogProvisioning(ctx, EventTypeSensorKeyRotated, Actor{ID: "3", Type: "company"},
		Target{ID: "11", Type: "sensor"}, "rotate_key", "Sensor key rotated")
	flush(t, logger)

	events, err := store.Query(context.Background(), QueryFilter{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	for _, e := range events {
		if e.RequestID != "req-42" {
			t.Errorf("%s: RequestID = %q, want req-42", e.Type, e.RequestID)
		}
		if e.Source.IPAddress != "10.0.0.9" {
			t.Errorf("%s: IPAddress = %q, want 10.0.0.9", e.Type, e.Source.IPAddress)
		}
	}
}

func TestLogger_Cleanup(t *testing.T) {
	store := NewMemoryStore(100)
	logger := NewLogger(store, testAuditConfig(10))
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, age := range []int{1, 29, 31, 90} {
		_ = store.Save(ctx, &Event{ID: fmt.Sprintf("evt-%d", age), Timestamp: now.AddDate(0, 0, -age)})
	}

	logger.cleanup(ctx, now)

	if store.Len() != 2 {
		t.Errorf("after cleanup %d events remain, want 2", store.Len())
	}
}

func TestLogger_RunRetentionDisabledWaitsForShutdown(t *testing.T) {
	cfg := testAuditConfig(1)
	cfg.RetentionDays = 0
	logger := NewLogger(NewMemoryStore(10), cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := logger.RunRetention(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("RunRetention() error = %v, want DeadlineExceeded", err)
	}
}

func TestMemoryStore_FilterAndPaging(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(3)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	types := []EventType{EventTypeAuthFailure, EventTypeSensorCreated, EventTypeAuthFailure, EventTypeLocationDeleted}
	for i, typ := range types {
		_ = store.Save(ctx, &Event{ID: string(rune('a' + i)), Type: typ, Timestamp: base.Add(time.Duration(i) * time.Minute)})
	}

	// Capacity 3 evicts the oldest event.
	if store.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", store.Len())
	}

	failures, _ := store.Query(ctx, QueryFilter{Types: []EventType{EventTypeAuthFailure}})
	if len(failures) != 1 || failures[0].ID != "c" {
		t.Errorf("auth failures = %+v, want only event c", failures)
	}

	page, _ := store.Query(ctx, QueryFilter{Limit: 1, Offset: 1})
	if len(page) != 1 || page[0].ID != "c" {
		t.Errorf("page = %+v, want event c (newest first, offset 1)", page)
	}

	n, _ := store.Count(ctx, QueryFilter{})
	if n != 3 {
		t.Errorf("Count() = %d, want 3", n)
	}
}
