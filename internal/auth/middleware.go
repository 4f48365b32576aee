// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/sensorgrid/internal/apperr"
	"github.com/tomtom215/sensorgrid/internal/audit"
	"github.com/tomtom215/sensorgrid/internal/logging"
	"github.com/tomtom215/sensorgrid/internal/metrics"
)

// Credential headers.
const (
	HeaderCompanyKey = "X-Company-API-Key"
	HeaderSensorKey  = "X-Sensor-API-Key"

	// Legacy header names still accepted from older clients.
	legacyCompanyKeyHeader = "company_api_key"
	legacyUsernameHeader   = "username"
	legacyPasswordHeader   = "password"
)

// ErrorWriter renders err as an HTTP response. The api package supplies
// its envelope writer.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// Authorizer decides whether a role may call method on path.
// Satisfied by *authz.Enforcer.
type Authorizer interface {
	Enforce(role, path, method string) (bool, error)
}

// AuditLogger records authentication and authorization failures.
// Satisfied by *audit.Logger.
type AuditLogger interface {
	LogAuthFailure(ctx context.Context, principal, name string, source audit.Source, reason string)
	LogAuthzDenied(ctx context.Context, actor audit.Actor, source audit.Source, resource, action string)
}

// Middleware authenticates requests and attaches the Principal to the
// request context.
type Middleware struct {
	resolver   *Resolver
	authorizer Authorizer
	audit      AuditLogger
	writeError ErrorWriter
}

// NewMiddleware creates the auth middleware. authorizer and auditLogger
// may be nil.
func NewMiddleware(resolver *Resolver, authorizer Authorizer, auditLogger AuditLogger, writeError ErrorWriter) *Middleware {
	return &Middleware{
		resolver:   resolver,
		authorizer: authorizer,
		audit:      auditLogger,
		writeError: writeError,
	}
}

// RequireAdmin accepts HTTP Basic credentials or the legacy
// username/password headers.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := adminCredentials(r)
		if !ok {
			m.reject(w, r, RoleAdmin, "", "missing credentials", apperr.ErrUnauthorized)
			return
		}

		p, err := m.resolver.ResolveAdmin(r.Context(), username, password)
		if err != nil {
			m.reject(w, r, RoleAdmin, logging.SanitizeValue(username), "invalid username or password", err)
			return
		}

		m.serve(w, r, next, p)
	})
}

// RequireCompany accepts the X-Company-API-Key header or the legacy
// company_api_key header.
func (m *Middleware) RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := firstHeader(r, HeaderCompanyKey, legacyCompanyKeyHeader)
		if key == "" {
			m.reject(w, r, RoleCompany, "", "missing API key", apperr.ErrInvalidCredential)
			return
		}

		p, err := m.resolver.ResolveCompany(r.Context(), key)
		if err != nil {
			m.reject(w, r, RoleCompany, logging.RedactKey(key), "unknown API key", err)
			return
		}

		m.serve(w, r, next, p)
	})
}

// RequireSensor accepts the X-Sensor-API-Key header.
func (m *Middleware) RequireSensor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(HeaderSensorKey)
		if key == "" {
			m.reject(w, r, RoleSensor, "", "missing API key", apperr.ErrInvalidCredential)
			return
		}
		m.resolveSensor(w, r, next, key)
	})
}

// OptionalSensor resolves X-Sensor-API-Key when present. Without the
// header the request passes through unauthenticated and the handler is
// responsible for resolving per-record keys.
func (m *Middleware) OptionalSensor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(HeaderSensorKey)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}
		m.resolveSensor(w, r, next, key)
	})
}

func (m *Middleware) resolveSensor(w http.ResponseWriter, r *http.Request, next http.Handler, key string) {
	p, err := m.resolver.ResolveSensor(r.Context(), key)
	if err != nil {
		m.reject(w, r, RoleSensor, logging.RedactKey(key), "unknown API key", err)
		return
	}
	m.serve(w, r, next, p)
}

// serve authorizes p for the route and calls next with p in the context.
func (m *Middleware) serve(w http.ResponseWriter, r *http.Request, next http.Handler, p *Principal) {
	if m.authorizer != nil {
		allowed, err := m.authorizer.Enforce(string(p.Role), r.URL.Path, r.Method)
		if err != nil {
			m.writeError(w, r, err)
			return
		}
		if !allowed {
			metrics.AuthzDenials.WithLabelValues(string(p.Role)).Inc()
			if m.audit != nil {
				m.audit.LogAuthzDenied(r.Context(), p.Actor(), audit.SourceFromRequest(r), r.URL.Path, r.Method)
			}
			logging.Ctx(r.Context()).Warn().
				Str("role", string(p.Role)).
				Str("path", r.URL.Path).
				Str("method", r.Method).
				Msg("Route authorization denied")
			m.writeError(w, r, apperr.ErrForbidden)
			return
		}
	}

	next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
}

// reject writes the failure. Only credential mismatches are audited;
// storage errors pass through to the error writer untouched.
func (m *Middleware) reject(w http.ResponseWriter, r *http.Request, role Role, name, reason string, err error) {
	isCredentialError := errors.Is(err, apperr.ErrUnauthorized) || errors.Is(err, apperr.ErrInvalidCredential)
	if isCredentialError && m.audit != nil {
		m.audit.LogAuthFailure(r.Context(), string(role), name, audit.SourceFromRequest(r), reason)
	}
	if role == RoleAdmin && isCredentialError {
		w.Header().Set("WWW-Authenticate", BasicChallenge)
	}
	m.writeError(w, r, err)
}

func adminCredentials(r *http.Request) (username, password string, ok bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		username, password, err := ParseBasicAuth(header)
		return username, password, err == nil
	}

	username = r.Header.Get(legacyUsernameHeader)
	password = r.Header.Get(legacyPasswordHeader)
	return username, password, username != "" && password != ""
}

func firstHeader(r *http.Request, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(r.Header.Get(name)); v != "" {
			return v
		}
	}
	return ""
}
