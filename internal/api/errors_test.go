// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sensorgrid/internal/apperr"
)

func TestWriteErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"invalid credential", apperr.ErrInvalidCredential, http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid or missing API key"},
		{"unauthorized", apperr.ErrUnauthorized, http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid username or password"},
		{"forbidden", apperr.ErrForbidden, http.StatusForbidden, ErrCodeForbidden, "Not permitted for this credential"},
		{"not found wrapped", fmt.Errorf("get sensor: %w", apperr.ErrNotFoundOrForbidden), http.StatusNotFound, ErrCodeNotFound, "Resource not found"},
		{"invalid with detail", apperr.Invalid("from_time must not be after to_time"), http.StatusUnprocessableEntity, ErrCodeInvalidArgument, "from_time must not be after to_time"},
		{"conflict with detail", fmt.Errorf("delete: %w", apperr.Conflict("location has sensors")), http.StatusConflict, ErrCodeConflict, "location has sensors"},
		{"rate limited", apperr.ErrRateLimited, http.StatusTooManyRequests, ErrCodeTooManyRequests, "Rate limit exceeded"},
		{"data integrity hides detail", fmt.Errorf("%w: reading 42", apperr.ErrDataIntegrity), http.StatusInternalServerError, ErrCodeDataIntegrity, "Stored data failed integrity checks"},
		{"unknown", errors.New("duckdb: disk I/O error"), http.StatusInternalServerError, ErrCodeInternalError, "An internal error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp APIResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Success || resp.Error == nil {
				t.Fatalf("response = %+v, want error envelope", resp)
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Error.Code, tt.wantCode)
			}
			if resp.Error.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", resp.Error.Message, tt.wantMessage)
			}
			if strings.Contains(rec.Body.String(), "duckdb") {
				t.Error("storage error text leaked to client")
			}
		})
	}
}

func TestWriteErrorWithDetails(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	err := fmt.Errorf("record 3: %w", apperr.ErrInvalidCredential)
	writeErrorWithDetails(rec, httptest.NewRequest(http.MethodPost, "/", nil), err, map[string]int{"accepted": 2})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"accepted":2`) {
		t.Errorf("body = %s, want accepted detail", rec.Body.String())
	}
}
