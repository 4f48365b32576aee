// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sensorgrid/internal/audit"
	"github.com/tomtom215/sensorgrid/internal/auth"
	"github.com/tomtom215/sensorgrid/internal/authz"
	"github.com/tomtom215/sensorgrid/internal/config"
	"github.com/tomtom215/sensorgrid/internal/database"
	"github.com/tomtom215/sensorgrid/internal/ingest"
	"github.com/tomtom215/sensorgrid/internal/logging"
	"github.com/tomtom215/sensorgrid/internal/middleware"
	"github.com/tomtom215/sensorgrid/internal/provisioning"
	"github.com/tomtom215/sensorgrid/internal/telemetry"
)

const (
	testAdminUser     = "root"
	testAdminPassword = "correct-horse-battery"
)

// testDBSemaphore serializes DuckDB setup across parallel tests.
var testDBSemaphore = make(chan struct{}, 1)

type testServer struct {
	t       *testing.T
	handler http.Handler
	db      *database.DB
	audit   *audit.Logger
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "512MB"})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	logger := logging.NewTestLogger(io.Discard)

	resolver := auth.NewResolver(db, 4)
	if err := resolver.SeedAdmin(context.Background(), testAdminUser, testAdminPassword); err != nil {
		t.Fatalf("SeedAdmin() error = %v", err)
	}

	enforcer, err := authz.NewEnforcer(authz.DefaultEnforcerConfig())
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	t.Cleanup(enforcer.Close)

	auditLogger := audit.NewLogger(audit.NewMemoryStore(1000), config.AuditConfig{Enabled: true, BufferSize: 1000})

	ingestCfg := config.IngestConfig{
		BatchMode:          config.BatchModeAtomic,
		TimestampAuthority: config.TimestampAuthorityCaller,
		MaxBatchSize:       100,
		MaxPayloadBytes:    4096,
	}

	perfMon := middleware.NewPerformanceMonitor(100, 0)
	handler := NewHandler(Dependencies{
		Health:       db,
		Provisioning: provisioning.NewService(db, auditLogger, logger),
		Ingest:       ingest.NewService(db, resolver, ingestCfg, nil, logger),
		Telemetry:    telemetry.NewService(db, config.QueryConfig{MaxSensorIDs: 10, MaxRows: 1000}, logger),
		Audit:        auditLogger,
		Performance:  perfMon,
		Version:      "test",
	})

	authMiddleware := auth.NewMiddleware(resolver, enforcer, auditLogger, WriteError)
	chiMW := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})

	return &testServer{
		t:       t,
		handler: NewRouter(handler, authMiddleware, chiMW, perfMon, 1<<20).SetupChi(),
		db:      db,
		audit:   auditLogger,
	}
}

// testEnvelope mirrors APIResponse with undecoded data.
type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

type header struct{ name, value string }

func adminAuth() header {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth(testAdminUser, testAdminPassword)
	return header{"Authorization", req.Header.Get("Authorization")}
}

func companyKey(key string) header { return header{auth.HeaderCompanyKey, key} }

func sensorKey(key string) header { return header{auth.HeaderSensorKey, key} }

// do sends a request; body may be nil, a string (sent raw) or a value to
// marshal.
func (s *testServer) do(method, path string, body any, headers ...header) (*httptest.ResponseRecorder, testEnvelope) {
	s.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			s.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		req.Header.Set(h.name, h.value)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env testEnvelope
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			s.t.Fatalf("decode envelope: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, env
}

// mustStatus fails the test unless rec has the wanted status.
func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d\nbody: %s", rec.Code, want, rec.Body.String())
	}
}

func decodeData[T any](t *testing.T, env testEnvelope) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatalf("decode data: %v\n%s", err, env.Data)
	}
	return v
}

// flushAudit writes queued audit events to the store.
func (s *testServer) flushAudit() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = s.audit.Run(ctx)
}
