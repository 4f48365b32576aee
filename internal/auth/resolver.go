// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package auth

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/sensorgrid/internal/apperr"
	"github.com/tomtom215/sensorgrid/internal/logging"
	"github.com/tomtom215/sensorgrid/internal/metrics"
	"github.com/tomtom215/sensorgrid/internal/models"
)

// Store defines the lookups required for credential resolution.
// Satisfied by *database.DB. Lookups return (nil, nil) when nothing matches.
type Store interface {
	GetAdmin(ctx context.Context, username string) (*models.Admin, error)
	UpsertAdmin(ctx context.Context, username, passwordHash string) error
	GetCompanyByKeyHash(ctx context.Context, keyHash string) (*models.Company, error)
	GetSensorByKeyHash(ctx context.Context, keyHash string) (*models.Sensor, error)
}

// Resolver turns presented credentials into a Principal. It never writes
// except through SeedAdmin.
type Resolver struct {
	store      Store
	bcryptCost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewResolver creates a credential resolver.
func NewResolver(store Store, bcryptCost int) *Resolver {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Resolver{store: store, bcryptCost: bcryptCost}
}

// dummy returns a hash at the configured cost, compared against when the
// username is unknown so response time does not reveal which admins exist.
func (r *Resolver) dummy() []byte {
	r.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("sensorgrid-no-such-admin"), r.bcryptCost)
		if err != nil {
			logging.Error().Err(err).Msg("Failed to build dummy bcrypt hash")
		}
		r.dummyHash = h
	})
	return r.dummyHash
}

// ResolveAdmin verifies an admin username and password.
func (r *Resolver) ResolveAdmin(ctx context.Context, username, password string) (*Principal, error) {
	admin, err := r.store.GetAdmin(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if admin == nil {
		_ = bcrypt.CompareHashAndPassword(r.dummy(), []byte(password))
		metrics.RecordAuthAttempt(string(RoleAdmin), false)
		return nil, apperr.ErrUnauthorized
	}

	if !CheckPassword(admin.PasswordHash, password) {
		metrics.RecordAuthAttempt(string(RoleAdmin), false)
		return nil, apperr.ErrUnauthorized
	}

	metrics.RecordAuthAttempt(string(RoleAdmin), true)
	return &Principal{Role: RoleAdmin, Username: admin.Username}, nil
}

// ResolveCompany looks a company up by its API key.
func (r *Resolver) ResolveCompany(ctx context.Context, apiKey string) (*Principal, error) {
	if apiKey == "" {
		metrics.RecordAuthAttempt(string(RoleCompany), false)
		return nil, apperr.ErrInvalidCredential
	}

	company, err := r.store.GetCompanyByKeyHash(ctx, HashKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to look up company key: %w", err)
	}
	if company == nil {
		metrics.RecordAuthAttempt(string(RoleCompany), false)
		return nil, apperr.ErrInvalidCredential
	}

	metrics.RecordAuthAttempt(string(RoleCompany), true)
	return &Principal{
		Role:        RoleCompany,
		CompanyID:   company.ID,
		CompanyName: company.Name,
		KeyPrefix:   company.APIKeyPrefix,
	}, nil
}

// ResolveSensor looks a sensor up by its API key. The principal carries
// the owning location and company.
func (r *Resolver) ResolveSensor(ctx context.Context, apiKey string) (*Principal, error) {
	if apiKey == "" {
		metrics.RecordAuthAttempt(string(RoleSensor), false)
		return nil, apperr.ErrInvalidCredential
	}

	sensor, err := r.store.GetSensorByKeyHash(ctx, HashKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to look up sensor key: %w", err)
	}
	if sensor == nil {
		metrics.RecordAuthAttempt(string(RoleSensor), false)
		return nil, apperr.ErrInvalidCredential
	}

	metrics.RecordAuthAttempt(string(RoleSensor), true)
	return &Principal{
		Role:       RoleSensor,
		CompanyID:  sensor.CompanyID,
		SensorID:   sensor.ID,
		LocationID: sensor.LocationID,
		KeyPrefix:  sensor.APIKeyPrefix,
	}, nil
}

// ResolveSensors resolves every distinct key in keys. It fails on the
// first unknown key, so callers can reject a whole batch before writing.
func (r *Resolver) ResolveSensors(ctx context.Context, keys []string) (map[string]*Principal, error) {
	resolved := make(map[string]*Principal, len(keys))
	for _, key := range keys {
		if _, ok := resolved[key]; ok {
			continue
		}
		p, err := r.ResolveSensor(ctx, key)
		if err != nil {
			return nil, err
		}
		resolved[key] = p
	}
	return resolved, nil
}

// SeedAdmin creates or updates the bootstrap admin account.
func (r *Resolver) SeedAdmin(ctx context.Context, username, password string) error {
	if username == "" {
		return fmt.Errorf("admin username is required")
	}
	hash, err := HashPassword(password, r.bcryptCost)
	if err != nil {
		return err
	}
	if err := r.store.UpsertAdmin(ctx, username, hash); err != nil {
		return fmt.Errorf("failed to seed admin %q: %w", username, err)
	}
	logging.Info().Str("username", username).Msg("Bootstrap admin account ready")
	return nil
}
