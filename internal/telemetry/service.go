// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package telemetry

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/sensorgrid/internal/apperr"
	"github.com/tomtom215/sensorgrid/internal/config"
	"github.com/tomtom215/sensorgrid/internal/metrics"
	"github.com/tomtom215/sensorgrid/internal/models"
	"github.com/tomtom215/sensorgrid/internal/scope"
)

// Store reads sensors and readings. Satisfied by *database.DB.
type Store interface {
	CountSensors(ctx context.Context, pred scope.Predicate) (int, error)
	QueryReadings(ctx context.Context, pred scope.Predicate, limit int) ([]models.Reading, bool, error)
}

// Request selects readings of SensorIDs with timestamps in [From, To].
type Request struct {
	SensorIDs []int64
	From      time.Time
	To        time.Time
}

// Result holds matching readings ordered by sensor id, timestamp and
// reading id. Truncated is set when more rows matched than MaxRows.
type Result struct {
	Readings  []models.Reading
	Truncated bool
}

// Service answers telemetry queries for a company.
type Service struct {
	store  Store
	cfg    config.QueryConfig
	logger zerolog.Logger
}

// NewService creates a query service.
func NewService(store Store, cfg config.QueryConfig, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		cfg:    cfg,
		logger: logger.With().Str("component", "telemetry").Logger(),
	}
}

// Query returns the readings of the requested sensors. Every sensor must
// belong to companyID; a single foreign or unknown id rejects the whole
// request with ErrNotFoundOrForbidden.
func (s *Service) Query(ctx context.Context, companyID int64, req Request) (*Result, error) {
	ids, err := s.normalizeIDs(req.SensorIDs)
	if err != nil {
		return nil, err
	}

	pred, err := scope.Readings(companyID, ids, req.From, req.To)
	if err != nil {
		return nil, err
	}

	owned, err := s.store.CountSensors(ctx, scope.SensorSet(companyID, ids))
	if err != nil {
		return nil, fmt.Errorf("check sensor ownership: %w", err)
	}
	if owned != len(ids) {
		return nil, apperr.ErrNotFoundOrForbidden
	}

	readings, truncated, err := s.store.QueryReadings(ctx, pred, s.cfg.MaxRows)
	if err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}

	for i := range readings {
		if !json.Valid(readings[i].Data) {
			s.logger.Error().
				Int64("reading_id", readings[i].ID).
				Int64("sensor_id", readings[i].SensorID).
				Msg("Stored payload is not valid JSON")
			return nil, fmt.Errorf("reading %d: %w", readings[i].ID, apperr.ErrDataIntegrity)
		}
	}

	metrics.RecordQuery(len(readings), truncated)
	if truncated {
		s.logger.Warn().
			Int64("company_id", companyID).
			Int("max_rows", s.cfg.MaxRows).
			Msg("Telemetry query truncated")
	}

	return &Result{Readings: readings, Truncated: truncated}, nil
}

// normalizeIDs sorts and deduplicates ids and enforces the id limit.
func (s *Service) normalizeIDs(ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, apperr.Invalid("sensor_ids must contain at least one id")
	}

	out := slices.Clone(ids)
	slices.Sort(out)
	out = slices.Compact(out)

	if out[0] <= 0 {
		return nil, apperr.Invalid("sensor_ids must be positive integers")
	}
	if len(out) > s.cfg.MaxSensorIDs {
		return nil, apperr.Invalid("at most %d distinct sensor_ids may be requested", s.cfg.MaxSensorIDs)
	}
	return out, nil
}
