// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package ingest

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/sensorgrid/internal/apperr"
	"github.com/tomtom215/sensorgrid/internal/auth"
	"github.com/tomtom215/sensorgrid/internal/config"
	"github.com/tomtom215/sensorgrid/internal/metrics"
	"github.com/tomtom215/sensorgrid/internal/models"
)

// Rejection reasons reported to metrics.
const (
	reasonBatchSize   = "batch_size"
	reasonPayload     = "invalid_payload"
	reasonCredential  = "invalid_credential"
	reasonRateLimited = "rate_limited"
	reasonStorage     = "storage"
)

// Store persists readings. Satisfied by *database.DB.
type Store interface {
	InsertReadings(ctx context.Context, readings []models.Reading, atomic bool) (int, error)
}

// SensorResolver resolves the per-record keys of the legacy batch form.
// Satisfied by *auth.Resolver.
type SensorResolver interface {
	ResolveSensors(ctx context.Context, keys []string) (map[string]*auth.Principal, error)
}

// Result reports how many readings were stored.
type Result struct {
	Accepted int
}

// Service validates and stores sensor readings.
type Service struct {
	store    Store
	resolver SensorResolver
	cfg      config.IngestConfig
	limiter  *SensorLimiter
	logger   zerolog.Logger
	now      func() time.Time
}

// NewService creates an ingestion service. limiter may be nil to disable
// per-sensor rate limiting.
func NewService(store Store, resolver SensorResolver, cfg config.IngestConfig, limiter *SensorLimiter, logger zerolog.Logger) *Service {
	return &Service{
		store:    store,
		resolver: resolver,
		cfg:      cfg,
		limiter:  limiter,
		logger:   logger.With().Str("component", "ingest").Logger(),
		now:      time.Now,
	}
}

// Ingest stores readings for a sensor authenticated by header. Records
// must not carry their own sensor_api_key.
func (s *Service) Ingest(ctx context.Context, sensor *auth.Principal, records []models.IngestRecord) (Result, error) {
	if sensor == nil || sensor.Role != auth.RoleSensor {
		return Result{}, apperr.ErrInvalidCredential
	}
	if err := s.checkBatchSize(len(records)); err != nil {
		return Result{}, err
	}
	for i := range records {
		if records[i].SensorAPIKey != "" {
			metrics.RecordIngestRejected(reasonPayload, len(records))
			return Result{}, apperr.Invalid("record %d: sensor_api_key must not be combined with the %s header", i, auth.HeaderSensorKey)
		}
	}

	sensors := make([]int64, len(records))
	for i := range sensors {
		sensors[i] = sensor.SensorID
	}
	return s.write(ctx, records, sensors)
}

// IngestBatch stores readings where every record names its sensor by
// sensor_api_key. All keys are resolved before anything is written; one
// unknown key rejects the whole request.
func (s *Service) IngestBatch(ctx context.Context, records []models.IngestRecord) (Result, error) {
	if err := s.checkBatchSize(len(records)); err != nil {
		return Result{}, err
	}

	keys := make([]string, len(records))
	for i := range records {
		if records[i].SensorAPIKey == "" {
			metrics.RecordIngestRejected(reasonCredential, len(records))
			return Result{}, fmt.Errorf("record %d: missing sensor_api_key: %w", i, apperr.ErrInvalidCredential)
		}
		keys[i] = records[i].SensorAPIKey
	}

	resolved, err := s.resolver.ResolveSensors(ctx, keys)
	if err != nil {
		metrics.RecordIngestRejected(reasonCredential, len(records))
		return Result{}, err
	}

	sensors := make([]int64, len(records))
	for i, key := range keys {
		sensors[i] = resolved[key].SensorID
	}
	return s.write(ctx, records, sensors)
}

// write validates every record, applies rate limits and writes.
// sensors[i] is the owner of records[i].
func (s *Service) write(ctx context.Context, records []models.IngestRecord, sensors []int64) (Result, error) {
	now := s.now().UTC().Truncate(time.Second)

	readings := make([]models.Reading, len(records))
	for i := range records {
		payload, err := s.normalizePayload(records[i].Data)
		if err != nil {
			metrics.RecordIngestRejected(reasonPayload, len(records))
			return Result{}, apperr.Invalid("record %d: %s", i, err)
		}
		readings[i] = models.Reading{
			SensorID:  sensors[i],
			Timestamp: s.timestampFor(records[i], now),
			Data:      payload,
		}
	}

	if err := s.checkRate(sensors); err != nil {
		metrics.RecordIngestRejected(reasonRateLimited, len(records))
		return Result{}, err
	}

	atomic := s.cfg.BatchMode != config.BatchModePerRecord
	written, err := s.store.InsertReadings(ctx, readings, atomic)
	metrics.RecordIngest(len(records), written)
	if err != nil {
		metrics.RecordIngestRejected(reasonStorage, len(records)-written)
		s.logger.Error().Err(err).
			Int("records", len(records)).
			Int("written", written).
			Bool("atomic", atomic).
			Msg("Failed to store readings")
		return Result{Accepted: written}, fmt.Errorf("stored %d of %d readings: %w", written, len(records), err)
	}

	return Result{Accepted: written}, nil
}

func (s *Service) checkBatchSize(n int) error {
	if n == 0 {
		metrics.RecordIngestRejected(reasonBatchSize, 1)
		return apperr.Invalid("at least one reading is required")
	}
	if n > s.cfg.MaxBatchSize {
		metrics.RecordIngestRejected(reasonBatchSize, n)
		return apperr.Invalid("batch of %d readings exceeds the limit of %d", n, s.cfg.MaxBatchSize)
	}
	return nil
}

// normalizePayload checks that data is a JSON object or array within the
// size limit and returns it compacted.
func (s *Service) normalizePayload(data json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("json_data is required")
	}
	if len(trimmed) > s.cfg.MaxPayloadBytes {
		return nil, fmt.Errorf("json_data is %d bytes, limit is %d", len(trimmed), s.cfg.MaxPayloadBytes)
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return nil, fmt.Errorf("json_data must be a JSON object or array")
	}
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("json_data is not valid JSON")
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, fmt.Errorf("json_data is not valid JSON")
	}
	return buf.Bytes(), nil
}

// timestampFor applies the configured timestamp authority.
func (s *Service) timestampFor(rec models.IngestRecord, now time.Time) time.Time {
	if s.cfg.TimestampAuthority == config.TimestampAuthorityServer {
		return now
	}
	if rec.Timestamp != nil && !rec.Timestamp.IsZero() {
		return rec.Timestamp.UTC()
	}
	return now
}

func (s *Service) checkRate(sensors []int64) error {
	if s.limiter == nil {
		return nil
	}

	counts := make(map[int64]int)
	for _, id := range sensors {
		counts[id]++
	}
	for id, n := range counts {
		if !s.limiter.AllowN(id, n) {
			s.logger.Warn().Int64("sensor_id", id).Int("readings", n).Msg("Sensor exceeded ingest rate")
			return fmt.Errorf("sensor %d: %w", id, apperr.ErrRateLimited)
		}
	}
	return nil
}
