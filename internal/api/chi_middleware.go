// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/sensorgrid/internal/audit"
	"github.com/tomtom215/sensorgrid/internal/auth"
	"github.com/tomtom215/sensorgrid/internal/config"
)

// ChiMiddlewareConfig configures CORS and the per-group rate limits.
type ChiMiddlewareConfig struct {
	CORSAllowedOrigins []string
	CORSMaxAge         int // seconds

	// Requests per RateLimitWindow per client IP.
	APIRateLimit      int
	AdminRateLimit    int
	IngestRateLimit   int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// ChiMiddlewareConfigFrom derives the middleware config from settings.
func ChiMiddlewareConfigFrom(sec config.SecurityConfig) *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins: sec.CORSOrigins,
		CORSMaxAge:         86400,
		APIRateLimit:       sec.RateLimitReqs,
		AdminRateLimit:     sec.AdminRateLimitReqs,
		IngestRateLimit:    sec.IngestRateLimitReqs,
		RateLimitWindow:    sec.RateLimitWindow,
		RateLimitDisabled:  sec.RateLimitDisabled,
	}
}

// ChiMiddleware builds the CORS and rate limit middleware.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware creates the middleware factory. CORS allows no origin
// unless one is configured.
func NewChiMiddleware(cfg *ChiMiddlewareConfig) *ChiMiddleware {
	return &ChiMiddleware{
		config: cfg,
		cors: cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{
				"Content-Type", "Authorization", "X-Request-ID",
				auth.HeaderCompanyKey, auth.HeaderSensorKey,
			},
			ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
			AllowCredentials: false,
			MaxAge:           cfg.CORSMaxAge,
		}),
	}
}

// CORS handles preflight requests. It must be global so OPTIONS requests
// reach it before any auth middleware.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimitAPI limits the company API.
func (m *ChiMiddleware) RateLimitAPI() func(http.Handler) http.Handler {
	return m.limit(m.config.APIRateLimit)
}

// RateLimitAdmin limits the admin API, which accepts passwords.
func (m *ChiMiddleware) RateLimitAdmin() func(http.Handler) http.Handler {
	return m.limit(m.config.AdminRateLimit)
}

// RateLimitIngest limits reading ingestion.
func (m *ChiMiddleware) RateLimitIngest() func(http.Handler) http.Handler {
	return m.limit(m.config.IngestRateLimit)
}

func (m *ChiMiddleware) limit(requests int) func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		requests,
		m.config.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rateLimited),
	)
}

func rateLimited(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Error(http.StatusTooManyRequests, ErrCodeTooManyRequests, "Rate limit exceeded, retry later")
}

// auditSource stores the client address and user agent for audit events.
// It runs after RealIP so the address is the forwarded one.
func auditSource(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := audit.ContextWithSource(r.Context(), audit.SourceFromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
