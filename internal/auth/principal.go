// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package auth

import (
	"context"
	"strconv"

	"github.com/tomtom215/sensorgrid/internal/audit"
)

// Role is the kind of authenticated principal. It doubles as the casbin
// subject for route authorization.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCompany Role = "company"
	RoleSensor  Role = "sensor"
)

// Principal is the identity attached to a request after credential
// resolution. Only the fields relevant to Role are set.
type Principal struct {
	Role Role

	// Admin
	Username string

	// Company and sensor
	CompanyID   int64
	CompanyName string

	// Sensor
	SensorID   int64
	LocationID int64

	// KeyPrefix identifies the API key that authenticated the request.
	KeyPrefix string
}

// Actor converts the principal into an audit actor.
func (p *Principal) Actor() audit.Actor {
	switch p.Role {
	case RoleAdmin:
		return audit.Actor{ID: p.Username, Type: string(p.Role), Name: p.Username}
	case RoleCompany:
		return audit.Actor{ID: strconv.FormatInt(p.CompanyID, 10), Type: string(p.Role), Name: p.CompanyName}
	case RoleSensor:
		return audit.Actor{ID: strconv.FormatInt(p.SensorID, 10), Type: string(p.Role), Name: p.KeyPrefix}
	default:
		return audit.Actor{ID: "anonymous", Type: "anonymous"}
	}
}

type contextKey string

const principalContextKey contextKey = "principal"

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext returns the principal stored by the auth
// middleware, or nil for unauthenticated requests.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, ok := ctx.Value(principalContextKey).(*Principal)
	if !ok {
		return nil
	}
	return p
}
