// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/sensorgrid/internal/apperr"
	"github.com/tomtom215/sensorgrid/internal/models"
	"github.com/tomtom215/sensorgrid/internal/validation"
)

// decodeBody decodes the JSON request body into dst and validates it.
// It writes the error response itself and reports whether the handler
// may continue.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	rw := NewResponseWriter(w, r)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeDecodeError(rw, err)
		return false
	}
	if dec.More() {
		rw.BadRequest("Request body must contain a single JSON value")
		return false
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return false
	}
	return true
}

func writeDecodeError(rw *ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		rw.Error(http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge,
			fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit))
	case errors.Is(err, io.EOF):
		rw.BadRequest("Request body is empty")
	default:
		rw.BadRequest("Malformed JSON body")
	}
}

// decodeIngestBody accepts either one record object or an array of records.
func decodeIngestBody(w http.ResponseWriter, r *http.Request) ([]models.IngestRecord, bool) {
	rw := NewResponseWriter(w, r)

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeDecodeError(rw, err)
		return nil, false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		rw.BadRequest("Request body is empty")
		return nil, false
	}

	var records []models.IngestRecord
	if raw[0] == '[' {
		err = json.Unmarshal(raw, &records)
	} else {
		var rec models.IngestRecord
		err = json.Unmarshal(raw, &rec)
		records = []models.IngestRecord{rec}
	}
	if err != nil {
		rw.BadRequest("Malformed JSON body")
		return nil, false
	}
	return records, true
}

// pathID parses a positive integer URL parameter. Malformed ids are
// reported as not found so they behave like ids outside the caller's scope.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.ErrNotFoundOrForbidden
	}
	return id, nil
}

// optionalInt64Query parses an optional positive integer query parameter.
func optionalInt64Query(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, apperr.Invalid("%s must be a positive integer", name)
	}
	return &v, nil
}

// intQuery parses an optional integer query parameter within [lo, hi].
func intQuery(r *http.Request, name string, def, lo, hi int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		return 0, apperr.Invalid("%s must be an integer between %d and %d", name, lo, hi)
	}
	return v, nil
}

// parseSensorIDs accepts repeated parameters (?sensor_ids=1&sensor_ids=2),
// comma separated values (?sensor_ids=1,2) and a JSON array
// (?sensor_ids=[1,2]), in any combination.
func parseSensorIDs(values []string) ([]int64, error) {
	var ids []int64
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		if strings.HasPrefix(value, "[") {
			var arr []int64
			if err := json.Unmarshal([]byte(value), &arr); err != nil {
				return nil, apperr.Invalid("sensor_ids must be a JSON array of integers")
			}
			ids = append(ids, arr...)
			continue
		}

		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, apperr.Invalid("sensor_ids must be integers, got %q", part)
			}
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		return nil, apperr.Invalid("sensor_ids is required")
	}
	return ids, nil
}

// timeQuery reads a required time bound from the first non-empty of names.
func timeQuery(r *http.Request, names ...string) (time.Time, error) {
	q := r.URL.Query()
	for _, name := range names {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		t, err := models.ParseTime(raw)
		if err != nil {
			return time.Time{}, apperr.Invalid("%s must be epoch seconds or RFC3339", name)
		}
		return t, nil
	}
	return time.Time{}, apperr.Invalid("%s is required", names[0])
}
