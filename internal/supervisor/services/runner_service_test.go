// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

func TestRunnerService_CleanStop(t *testing.T) {
	svc := NewRunnerService("audit-writer", RunnerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if svc.String() != "audit-writer" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestRunnerService_Failures(t *testing.T) {
	t.Run("error is returned", func(t *testing.T) {
		boom := errors.New("store unavailable")
		svc := NewRunnerService("retention", RunnerFunc(func(context.Context) error { return boom }))

		if err := svc.Serve(context.Background()); !errors.Is(err, boom) {
			t.Errorf("Serve() = %v, want %v", err, boom)
		}
	})

	t.Run("early nil return is a failure", func(t *testing.T) {
		svc := NewRunnerService("limiter-cleanup", RunnerFunc(func(context.Context) error { return nil }))

		err := svc.Serve(context.Background())
		if err == nil || errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want unexpected stop error", err)
		}
	})
}

func TestRunnerService_RestartedBySupervisor(t *testing.T) {
	starts := make(chan struct{}, 10)
	svc := NewRunnerService("flaky", RunnerFunc(func(context.Context) error {
		starts <- struct{}{}
		return errors.New("flaky")
	}))

	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          time.Second,
	})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)
	defer func() {
		cancel()
		<-errCh
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-starts:
		case <-time.After(2 * time.Second):
			t.Fatalf("runner started %d times, want at least 2", i)
		}
	}
}
