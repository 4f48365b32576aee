// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package audit

import (
	"context"
	"time"

	"github.com/goccy/go-json"
)

// EventType categorizes audit events.
type EventType string

const (
	// Authentication events
	EventTypeAuthFailure EventType = "auth.failure"

	// Authorization events
	EventTypeAuthzDenied EventType = "authz.denied"

	// Provisioning events
	EventTypeCompanyCreated    EventType = "company.created"
	EventTypeLocationCreated   EventType = "location.created"
	EventTypeLocationUpdated   EventType = "location.updated"
	EventTypeLocationDeleted   EventType = "location.deleted"
	EventTypeSensorCreated     EventType = "sensor.created"
	EventTypeSensorUpdated     EventType = "sensor.updated"
	EventTypeSensorDeleted     EventType = "sensor.deleted"
	EventTypeSensorKeyRotated  EventType = "sensor.key_rotated"
	EventTypeAdminBootstrapped EventType = "admin.bootstrapped"
)

// Severity indicates the severity level of an audit event.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Outcome indicates whether an action succeeded or failed.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Event represents a security audit event.
type Event struct {
	ID          string          `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	Type        EventType       `json:"type"`
	Severity    Severity        `json:"severity"`
	Outcome     Outcome         `json:"outcome"`
	Actor       Actor           `json:"actor"`
	Target      *Target         `json:"target,omitempty"`
	Source      Source          `json:"source"`
	Action      string          `json:"action"`
	Description string          `json:"description"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	RequestID   string          `json:"request_id,omitempty"`
}

// Actor represents who performed an action.
type Actor struct {
	// ID is the principal's identifier: admin username, company id or sensor id.
	ID string `json:"id"`

	// Type of actor (admin, company, sensor, system, anonymous).
	Type string `json:"type"`

	// Name is a display name or key prefix. Never a secret.
	Name string `json:"name,omitempty"`
}

// Target represents the object of an action.
type Target struct {
	ID   string `json:"id"`
	Type string `json:"type"` // company, location, sensor, route
	Name string `json:"name,omitempty"`
}

// Source represents where a request originated.
type Source struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent,omitempty"`
}

// Store defines the interface for audit event persistence.
type Store interface {
	// Save persists an audit event.
	Save(ctx context.Context, event *Event) error

	// Query retrieves events matching the filter, newest first.
	Query(ctx context.Context, filter QueryFilter) ([]Event, error)

	// Count returns the number of events matching the filter.
	Count(ctx context.Context, filter QueryFilter) (int64, error)

	// Delete removes events older than the given time.
	Delete(ctx context.Context, olderThan time.Time) (int64, error)
}

// Recorder accepts events for asynchronous persistence. *Logger implements it.
type Recorder interface {
	Log(event *Event)
}

// QueryFilter defines filtering options for audit queries.
type QueryFilter struct {
	Types     []EventType `json:"types,omitempty"`
	Outcomes  []Outcome   `json:"outcomes,omitempty"`
	ActorType string      `json:"actor_type,omitempty"`
	ActorID   string      `json:"actor_id,omitempty"`
	StartTime *time.Time  `json:"start_time,omitempty"`
	EndTime   *time.Time  `json:"end_time,omitempty"`
	Limit     int         `json:"limit,omitempty"`
	Offset    int         `json:"offset,omitempty"`
}

const (
	defaultQueryLimit = 100
	maxQueryLimit     = 1000
)

// normalizedLimit clamps Limit to (0, maxQueryLimit].
func (f QueryFilter) normalizedLimit() int {
	switch {
	case f.Limit <= 0:
		return defaultQueryLimit
	case f.Limit > maxQueryLimit:
		return maxQueryLimit
	default:
		return f.Limit
	}
}
