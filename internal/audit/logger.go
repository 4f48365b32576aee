// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package audit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/sensorgrid/internal/config"
	"github.com/tomtom215/sensorgrid/internal/logging"
	"github.com/tomtom215/sensorgrid/internal/metrics"
)

const saveTimeout = 5 * time.Second

// Logger is the asynchronous audit trail. Log never blocks the request
// path; Run drains the buffer into the store.
type Logger struct {
	cfg       config.AuditConfig
	store     Store
	eventChan chan *Event
	running   atomic.Bool
}

// NewLogger creates a new audit logger. store may be nil, in which case
// events are only written to the application log when LogToStdout is set.
func NewLogger(store Store, cfg config.AuditConfig) *Logger {
	size := cfg.BufferSize
	if size < 1 {
		size = 1
	}
	return &Logger{
		cfg:       cfg,
		store:     store,
		eventChan: make(chan *Event, size),
	}
}

// Enabled reports whether audit logging is active.
func (l *Logger) Enabled() bool {
	return l.cfg.Enabled
}

// Log records an audit event. Missing ID, Timestamp and RequestID are
// filled in. When the buffer is full the event is dropped and counted.
func (l *Logger) Log(event *Event) {
	if event == nil || !l.cfg.Enabled {
		return
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	select {
	case l.eventChan <- event:
	default:
		metrics.AuditEventsDropped.Inc()
		logging.Warn().Str("event_id", event.ID).Str("type", string(event.Type)).Msg("Audit event buffer full, dropping event")
	}
}

// Run writes buffered events until ctx is canceled, then drains whatever
// is still queued. It returns ctx.Err() on normal shutdown.
func (l *Logger) Run(ctx context.Context) error {
	l.running.Store(true)
	defer l.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			l.drain()
			return ctx.Err()
		case event := <-l.eventChan:
			l.writeEvent(event)
		}
	}
}

// Running reports whether a writer is attached to the buffer.
func (l *Logger) Running() bool {
	return l.running.Load()
}

func (l *Logger) drain() {
	for {
		select {
		case event := <-l.eventChan:
			l.writeEvent(event)
		default:
			return
		}
	}
}

// writeEvent persists an event. A context independent of the writer's is
// used so the final drain still reaches the store during shutdown.
func (l *Logger) writeEvent(event *Event) {
	if l.cfg.LogToStdout {
		l.logToStdout(event)
	}

	if l.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := l.store.Save(ctx, event); err != nil {
		logging.Error().Err(err).Str("event_id", event.ID).Msg("Failed to save audit event")
		return
	}
	metrics.AuditEventsWritten.Inc()
}

func (l *Logger) logToStdout(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal audit event")
		return
	}
	logging.Info().RawJSON("event", data).Msg("Audit event")
}

// Query retrieves events matching the filter.
func (l *Logger) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	return l.store.Query(ctx, filter)
}

// Count returns the number of events matching the filter.
func (l *Logger) Count(ctx context.Context, filter QueryFilter) (int64, error) {
	return l.store.Count(ctx, filter)
}

// RunRetention deletes events older than RetentionDays every
// CleanupInterval until ctx is canceled. A zero retention keeps events
// forever and the routine just waits for shutdown.
func (l *Logger) RunRetention(ctx context.Context) error {
	if l.store == nil || l.cfg.RetentionDays <= 0 || l.cfg.CleanupInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(l.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.cleanup(ctx, time.Now().UTC())
		}
	}
}

func (l *Logger) cleanup(ctx context.Context, now time.Time) {
	cutoff := now.AddDate(0, 0, -l.cfg.RetentionDays)
	count, err := l.store.Delete(ctx, cutoff)
	if err != nil {
		logging.Error().Err(err).Msg("Audit cleanup error")
		return
	}
	if count > 0 {
		logging.Info().Int64("count", count).Time("cutoff", cutoff).Msg("Cleaned up old audit events")
	}
}

// Helpers for common audit events.

// LogAuthFailure records a rejected credential. name must never be the
// secret itself; pass a redacted key or the submitted username.
func (l *Logger) LogAuthFailure(ctx context.Context, principal, name string, source Source, reason string) {
	l.Log(&Event{
		Type:     EventTypeAuthFailure,
		Severity: SeverityWarning,
		Outcome:  OutcomeFailure,
		Actor: Actor{
			ID:   "anonymous",
			Type: principal,
			Name: name,
		},
		Source:      source,
		Action:      "authenticate",
		Description: "Authentication failed: " + reason,
		Metadata:    mustJSON(map[string]string{"reason": reason}),
		RequestID:   logging.RequestIDFromContext(ctx),
	})
}

// LogAuthzDenied records a role calling a route it may not use.
func (l *Logger) LogAuthzDenied(ctx context.Context, actor Actor, source Source, resource, action string) {
	l.Log(&Event{
		Type:     EventTypeAuthzDenied,
		Severity: SeverityWarning,
		Outcome:  OutcomeFailure,
		Actor:    actor,
		Source:   source,
		Action:   "authorize",
		Target: &Target{
			ID:   resource,
			Type: "route",
		},
		Description: "Authorization denied for " + action + " on " + resource,
		Metadata: mustJSON(map[string]string{
			"resource":         resource,
			"requested_action": action,
		}),
		RequestID: logging.RequestIDFromContext(ctx),
	})
}

// LogProvisioning records a successful create, update, delete or key rotation.
func (l *Logger) LogProvisioning(ctx context.Context, eventType EventType, actor Actor, target Target, action, description string) {
	l.Log(&Event{
		Type:        eventType,
		Severity:    SeverityInfo,
		Outcome:     OutcomeSuccess,
		Actor:       actor,
		Target:      &target,
		Source:      SourceFromContext(ctx),
		Action:      action,
		Description: description,
		RequestID:   logging.RequestIDFromContext(ctx),
	})
}

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

// SystemActor is the actor for events raised by the server itself.
func SystemActor() Actor {
	return Actor{ID: "system", Type: "system", Name: "Sensorgrid"}
}

type sourceKey struct{}

// ContextWithSource stores the request's origin so services deeper in the
// call chain can attribute events without seeing the *http.Request.
func ContextWithSource(ctx context.Context, src Source) context.Context {
	return context.WithValue(ctx, sourceKey{}, src)
}

// SourceFromContext returns the Source stored by ContextWithSource.
func SourceFromContext(ctx context.Context) Source {
	if src, ok := ctx.Value(sourceKey{}).(Source); ok {
		return src
	}
	return Source{}
}

// SourceFromRequest extracts source information from an HTTP request.
// RemoteAddr is used as-is; chi's RealIP middleware rewrites it upstream
// when the server runs behind a trusted proxy.
func SourceFromRequest(r *http.Request) Source {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return Source{
		IPAddress: strings.TrimSpace(ip),
		UserAgent: r.UserAgent(),
	}
}
