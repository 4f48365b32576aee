// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package services

import (
	"context"
	"errors"
)

// Runner is a long-running loop that blocks until ctx is canceled.
//
// Satisfied by:
//   - *audit.Logger (Run: buffered event writer)
//   - audit retention, via RunnerFunc(logger.RunRetention)
//   - *ingest.SensorLimiter (Run: idle limiter eviction)
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerFunc adapts a method value to Runner.
type RunnerFunc func(ctx context.Context) error

// Run calls f(ctx).
func (f RunnerFunc) Run(ctx context.Context) error { return f(ctx) }

// RunnerService supervises a Runner under a fixed name.
type RunnerService struct {
	runner Runner
	name   string
}

// NewRunnerService wraps runner.
func NewRunnerService(name string, runner Runner) *RunnerService {
	return &RunnerService{runner: runner, name: name}
}

// Serve implements suture.Service. A runner that returns ctx.Err() after
// cancellation is a clean stop; any other return is a failure and suture
// restarts it.
func (s *RunnerService) Serve(ctx context.Context) error {
	err := s.runner.Run(ctx)
	if ctx.Err() != nil && (err == nil || errors.Is(err, ctx.Err())) {
		return ctx.Err()
	}
	if err == nil {
		return errors.New(s.name + " stopped unexpectedly")
	}
	return err
}

// String implements fmt.Stringer.
func (s *RunnerService) String() string {
	return s.name
}
