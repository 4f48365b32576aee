// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package models

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Reading is one immutable telemetry sample.
type Reading struct {
	ID        int64           `json:"reading_id"`
	SensorID  int64           `json:"sensor_id"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// Timestamp accepts either epoch seconds (number) or an RFC3339 string and
// always holds a UTC value truncated to whole seconds.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := ParseTime(s)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	}

	secs, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("timestamp must be epoch seconds or RFC3339: %s", b)
	}
	t.Time = time.Unix(secs, 0).UTC()
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC().Format(time.RFC3339))
}

// ParseTime parses epoch seconds or RFC3339 into a UTC, second-resolution time.
func ParseTime(s string) (time.Time, error) {
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("time must be epoch seconds or RFC3339: %q", s)
	}
	return parsed.UTC().Truncate(time.Second), nil
}

// IngestRecord is one element of a POST /sensor_data body. SensorAPIKey is
// optional when the X-Sensor-API-Key header is sent.
type IngestRecord struct {
	SensorAPIKey string          `json:"sensor_api_key,omitempty"`
	Timestamp    *Timestamp      `json:"timestamp,omitempty"`
	Data         json.RawMessage `json:"json_data"`
}

// IngestResponse acknowledges stored readings.
type IngestResponse struct {
	Message  string `json:"message"`
	Accepted int    `json:"accepted"`
}

// SensorDataResponse is the body of GET /sensor_data.
type SensorDataResponse struct {
	SensorData []Reading `json:"sensor_data"`
	Count      int       `json:"count"`
	Truncated  bool      `json:"truncated"`
}
