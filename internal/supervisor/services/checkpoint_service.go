// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Checkpointer is satisfied by *database.DB.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// checkpointTimeout bounds a single CHECKPOINT.
const checkpointTimeout = 2 * time.Minute

// CheckpointService periodically flushes the DuckDB WAL into the main
// database file and runs a last checkpoint on shutdown.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
	logger   zerolog.Logger
}

// NewCheckpointService creates the service. A non-positive interval
// disables the periodic checkpoint; the shutdown checkpoint still runs.
func NewCheckpointService(db Checkpointer, interval time.Duration, logger zerolog.Logger) *CheckpointService {
	return &CheckpointService{
		db:       db,
		interval: interval,
		logger:   logger.With().Str("service", "checkpoint").Logger(),
	}
}

// Serve implements suture.Service. Checkpoint failures are logged and
// retried on the next tick rather than restarting the service.
func (s *CheckpointService) Serve(ctx context.Context) error {
	var tick <-chan time.Time
	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			// ctx is done; the final checkpoint gets its own deadline.
			s.checkpoint(context.Background())
			return ctx.Err()

		case <-tick:
			s.checkpoint(ctx)
		}
	}
}

func (s *CheckpointService) checkpoint(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, checkpointTimeout)
	defer cancel()

	start := time.Now()
	if err := s.db.Checkpoint(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Database checkpoint failed")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("Database checkpoint complete")
}

// String implements fmt.Stringer.
func (s *CheckpointService) String() string {
	return "db-checkpoint"
}
