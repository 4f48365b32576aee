// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

/*
Package supervisor provides process supervision for Sensorgrid using
suture v4.

# Overview

Long-running components are organized into three layers:

	RootSupervisor ("sensorgrid")
	├── StorageSupervisor ("storage-layer")
	│   └── CheckpointService
	├── BackgroundSupervisor ("background-layer")
	│   ├── audit-writer       (audit.Logger.Run)
	│   ├── audit-retention    (audit.Logger.RunRetention)
	│   └── limiter-cleanup    (ingest.SensorLimiter.Run, if per-sensor limits are on)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crash in one layer is restarted inside that layer; the HTTP server keeps
serving while a background loop backs off.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, addr, timeout, logger))

	errCh := tree.ServeBackground(ctx)
	<-errCh

# Failure Handling

Each supervisor keeps a failure counter that decays over FailureDecay
seconds. Past FailureThreshold it waits FailureBackoff before the next
restart. Events (start, stop, panic, backoff) are logged through
sutureslog, which writes into the zerolog pipeline via the slog adapter
in internal/logging.

See also: internal/supervisor/services.
*/
package supervisor
