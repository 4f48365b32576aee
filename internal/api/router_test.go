// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/sensorgrid/internal/models"
)

// tenant is a company with one location and one sensor.
type tenant struct {
	companyKey string
	companyID  int64
	locationID int64
	sensorID   int64
	sensorKey  string
}

func (s *testServer) provisionTenant(name string) tenant {
	s.t.Helper()

	rec, env := s.do(http.MethodPost, "/api/v1/admin/companies",
		models.CreateCompanyRequest{CompanyName: name}, adminAuth())
	mustStatus(s.t, rec, http.StatusCreated)
	company := decodeData[models.CreateCompanyResponse](s.t, env)

	rec, env = s.do(http.MethodPost, "/api/v1/locations",
		map[string]string{"location_name": name + " plant", "location_city": "Berlin"},
		companyKey(company.APIKey))
	mustStatus(s.t, rec, http.StatusCreated)
	loc := decodeData[models.Location](s.t, env)

	rec, env = s.do(http.MethodPost, "/api/v1/sensors",
		map[string]any{"location_id": loc.ID, "sensor_name": "probe", "sensor_category": "thermal"},
		companyKey(company.APIKey))
	mustStatus(s.t, rec, http.StatusCreated)
	sensor := decodeData[models.CreateSensorResponse](s.t, env)

	return tenant{
		companyKey: company.APIKey,
		companyID:  company.ID,
		locationID: loc.ID,
		sensorID:   sensor.ID,
		sensorKey:  sensor.APIKey,
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec, env := s.do(http.MethodGet, "/api/v1/health", nil)
	mustStatus(t, rec, http.StatusOK)
	health := decodeData[HealthStatus](t, env)
	if health.Status != "healthy" || !health.DatabaseConnected {
		t.Errorf("health = %+v", health)
	}

	rec, _ = s.do(http.MethodGet, "/api/v1/health/live", nil)
	mustStatus(t, rec, http.StatusOK)
	rec, _ = s.do(http.MethodGet, "/api/v1/health/ready", nil)
	mustStatus(t, rec, http.StatusOK)
}

func TestEnvelopeCarriesRequestID(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec, env := s.do(http.MethodGet, "/api/v1/health", nil, header{"X-Request-ID", "req-123"})
	mustStatus(t, rec, http.StatusOK)
	if env.Meta == nil || env.Meta.RequestID != "req-123" {
		t.Errorf("meta = %+v, want request id req-123", env.Meta)
	}
	if got := rec.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("X-Request-ID header = %q", got)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec, env := s.do(http.MethodGet, "/api/v1/nothing-here", nil)
	mustStatus(t, rec, http.StatusNotFound)
	if env.Success || env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("envelope = %+v", env)
	}
}

func TestAdminRequiresCredentials(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	tests := []struct {
		name    string
		headers []header
	}{
		{"no credentials", nil},
		{"wrong password", []header{{"Authorization", "Basic cm9vdDp3cm9uZw=="}}}, // root:wrong
		{"company key is not admin", []header{companyKey("sgc_not-a-real-key")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(http.MethodGet, "/api/v1/admin/companies", nil, tt.headers...)
			mustStatus(t, rec, http.StatusUnauthorized)
			if rec.Header().Get("WWW-Authenticate") == "" {
				t.Error("missing WWW-Authenticate challenge")
			}
			if env.Error == nil || env.Error.Code != ErrCodeUnauthorized {
				t.Errorf("error = %+v", env.Error)
			}
		})
	}
}

func TestProvisioningFlow(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	acme := s.provisionTenant("Acme")

	rec, env := s.do(http.MethodGet, "/api/v1/locations", nil, companyKey(acme.companyKey))
	mustStatus(t, rec, http.StatusOK)
	if locs := decodeData[[]models.Location](t, env); len(locs) != 1 || locs[0].City != "Berlin" {
		t.Errorf("locations = %+v", locs)
	}

	path := fmt.Sprintf("/api/v1/locations/%d", acme.locationID)
	rec, env = s.do(http.MethodPut, path,
		map[string]string{"location_name": "HQ", "location_country": "DE"}, companyKey(acme.companyKey))
	mustStatus(t, rec, http.StatusOK)
	if loc := decodeData[models.Location](t, env); loc.Name != "HQ" || loc.City != "" {
		t.Errorf("updated location = %+v, want full replacement", loc)
	}

	rec, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/sensors?location_id=%d", acme.locationID), nil, companyKey(acme.companyKey))
	mustStatus(t, rec, http.StatusOK)
	sensors := decodeData[[]models.Sensor](t, env)
	if len(sensors) != 1 || sensors[0].ID != acme.sensorID {
		t.Fatalf("sensors = %+v", sensors)
	}
	if strings.Contains(rec.Body.String(), acme.sensorKey) {
		t.Error("sensor key leaked in listing")
	}

	rec, _ = s.do(http.MethodDelete, path, nil, companyKey(acme.companyKey))
	mustStatus(t, rec, http.StatusConflict)

	rec, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/sensors/%d", acme.sensorID), nil, companyKey(acme.companyKey))
	mustStatus(t, rec, http.StatusOK)
	rec, _ = s.do(http.MethodDelete, path, nil, companyKey(acme.companyKey))
	mustStatus(t, rec, http.StatusOK)
	rec, _ = s.do(http.MethodGet, path, nil, companyKey(acme.companyKey))
	mustStatus(t, rec, http.StatusNotFound)
}

func TestCrossTenantAccessIsNotFound(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	acme := s.provisionTenant("Acme")
	globex := s.provisionTenant("Globex")

	paths := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, fmt.Sprintf("/api/v1/locations/%d", acme.locationID), nil},
		{http.MethodPut, fmt.Sprintf("/api/v1/locations/%d", acme.locationID), map[string]string{"location_name": "x"}},
		{http.MethodDelete, fmt.Sprintf("/api/v1/locations/%d", acme.locationID), nil},
		{http.MethodGet, fmt.Sprintf("/api/v1/sensors/%d", acme.sensorID), nil},
		{http.MethodDelete, fmt.Sprintf("/api/v1/sensors/%d", acme.sensorID), nil},
		{http.MethodPost, fmt.Sprintf("/api/v1/sensors/%d/rotate-key", acme.sensorID), nil},
		{http.MethodGet, fmt.Sprintf("/api/v1/sensor_data?sensor_ids=%d&from_time=0&to_time=2000000000", acme.sensorID), nil},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rec, env := s.do(p.method, p.path, p.body, companyKey(globex.companyKey))
			mustStatus(t, rec, http.StatusNotFound)
			if env.Error == nil || env.Error.Code != ErrCodeNotFound {
				t.Errorf("error = %+v", env.Error)
			}
		})
	}

	// A sensor under another company's location is an invalid reference.
	rec, _ := s.do(http.MethodPost, "/api/v1/sensors",
		map[string]any{"location_id": acme.locationID, "sensor_name": "intruder"}, companyKey(globex.companyKey))
	mustStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestIngestAndQuery(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	acme := s.provisionTenant("Acme")

	// Header mode, array body, mixed timestamp formats.
	rec, env := s.do(http.MethodPost, "/api/v1/sensor_data",
		`[{"timestamp":1714564800,"json_data":{"t":1}},{"timestamp":"2024-05-01T12:00:10Z","json_data":{"t":2}}]`,
		sensorKey(acme.sensorKey))
	mustStatus(t, rec, http.StatusCreated)
	if got := decodeData[models.IngestResponse](t, env); got.Accepted != 2 {
		t.Errorf("accepted = %d, want 2", got.Accepted)
	}

	// Body mode, single object.
	rec, _ = s.do(http.MethodPost, "/api/v1/sensor_data",
		fmt.Sprintf(`{"sensor_api_key":%q,"timestamp":1714564820,"json_data":{"t":3}}`, acme.sensorKey))
	mustStatus(t, rec, http.StatusCreated)

	forms := []string{
		fmt.Sprintf("sensor_ids=%d&from_time=1714564800&to_time=1714564820", acme.sensorID),
		fmt.Sprintf("sensor_ids=[%d]&from_timestamp=2024-05-01T12:00:00Z&to_timestamp=2024-05-01T12:00:20Z", acme.sensorID),
		fmt.Sprintf("sensor_ids=%d,%d&from_time=1714564800&to_time=1714564820", acme.sensorID, acme.sensorID),
	}
	for _, q := range forms {
		t.Run(q, func(t *testing.T) {
			rec, env := s.do(http.MethodGet, "/api/v1/sensor_data?"+q, nil, companyKey(acme.companyKey))
			mustStatus(t, rec, http.StatusOK)
			got := decodeData[models.SensorDataResponse](t, env)
			if got.Count != 3 || len(got.SensorData) != 3 {
				t.Fatalf("count = %d, want 3", got.Count)
			}
			for i, want := range []string{`{"t":1}`, `{"t":2}`, `{"t":3}`} {
				if string(got.SensorData[i].Data) != want {
					t.Errorf("reading %d = %s, want %s", i, got.SensorData[i].Data, want)
				}
			}
		})
	}

	rec, env = s.do(http.MethodGet,
		fmt.Sprintf("/api/v1/sensor_data?sensor_ids=%d&from_time=1714564800", acme.sensorID), nil, companyKey(acme.companyKey))
	mustStatus(t, rec, http.StatusUnprocessableEntity)
	if env.Error == nil || env.Error.Message != "to_time is required" {
		t.Errorf("error = %+v", env.Error)
	}

	// Readings block sensor deletion.
	rec, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/sensors/%d", acme.sensorID), nil, companyKey(acme.companyKey))
	mustStatus(t, rec, http.StatusConflict)
}

func TestIngestRejectsBadCredentials(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	acme := s.provisionTenant("Acme")

	rec, _ := s.do(http.MethodPost, "/api/v1/sensor_data", `{"json_data":{"t":1}}`, sensorKey("sgs_unknown"))
	mustStatus(t, rec, http.StatusUnauthorized)

	rec, _ = s.do(http.MethodPost, "/api/v1/sensor_data", `{"sensor_api_key":"sgs_unknown","json_data":{"t":1}}`)
	mustStatus(t, rec, http.StatusUnauthorized)

	// A company key does not authorize ingestion.
	rec, _ = s.do(http.MethodPost, "/api/v1/sensor_data", `{"json_data":{"t":1}}`, sensorKey(acme.companyKey))
	mustStatus(t, rec, http.StatusUnauthorized)

	// After rotation the old key stops working.
	rec, env := s.do(http.MethodPost, fmt.Sprintf("/api/v1/sensors/%d/rotate-key", acme.sensorID), nil, companyKey(acme.companyKey))
	mustStatus(t, rec, http.StatusOK)
	rotated := decodeData[models.RotateSensorKeyResponse](t, env)

	rec, _ = s.do(http.MethodPost, "/api/v1/sensor_data", `{"json_data":{"t":1}}`, sensorKey(acme.sensorKey))
	mustStatus(t, rec, http.StatusUnauthorized)
	rec, _ = s.do(http.MethodPost, "/api/v1/sensor_data", `{"json_data":{"t":1}}`, sensorKey(rotated.APIKey))
	mustStatus(t, rec, http.StatusCreated)
}

func TestRequestBodyErrors(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	acme := s.provisionTenant("Acme")

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"malformed json", `{"location_name":`, http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown field", `{"location_name":"x","owner":"someone"}`, http.StatusBadRequest, ErrCodeBadRequest},
		{"blank name", `{"location_name":"   "}`, http.StatusUnprocessableEntity, ErrCodeValidationFailed},
		{"missing name", `{}`, http.StatusUnprocessableEntity, ErrCodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(http.MethodPost, "/api/v1/locations", tt.body, companyKey(acme.companyKey))
			mustStatus(t, rec, tt.wantCode)
			if env.Error == nil || env.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantErr)
			}
		})
	}
}

func TestAdminAuditTrail(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	s.provisionTenant("Acme")

	// One failed attempt lands in the trail as well.
	s.do(http.MethodGet, "/api/v1/locations", nil, companyKey("sgc_bogus"))
	s.flushAudit()

	rec, env := s.do(http.MethodGet, "/api/v1/admin/audit?type=company.created", nil, adminAuth())
	mustStatus(t, rec, http.StatusOK)
	if events := decodeData[[]map[string]any](t, env); len(events) != 1 {
		t.Errorf("company.created events = %d, want 1", len(events))
	}
	if env.Meta == nil || env.Meta.Pagination == nil || env.Meta.Pagination.Total != 1 {
		t.Errorf("pagination = %+v", env.Meta)
	}

	rec, env = s.do(http.MethodGet, "/api/v1/admin/audit?type=auth.failure", nil, adminAuth())
	mustStatus(t, rec, http.StatusOK)
	if events := decodeData[[]map[string]any](t, env); len(events) == 0 {
		t.Error("expected an auth.failure event")
	}

	rec, _ = s.do(http.MethodGet, "/api/v1/admin/audit?limit=0", nil, adminAuth())
	mustStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestAdminStats(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	s.do(http.MethodGet, "/api/v1/health", nil)

	rec, env := s.do(http.MethodGet, "/api/v1/admin/stats", nil, adminAuth())
	mustStatus(t, rec, http.StatusOK)
	if !strings.Contains(string(env.Data), "/api/v1/health") {
		t.Errorf("stats = %s, want health endpoint", env.Data)
	}
}
