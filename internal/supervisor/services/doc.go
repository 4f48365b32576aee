// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

/*
Package services provides suture.Service wrappers for Sensorgrid's
long-running components.

Each wrapper implements:

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer, which suture uses to name the service in its event log.

# Available Services

HTTPServerService runs the API server and shuts it down gracefully when
the supervisor stops.

RunnerService wraps any Run(ctx) loop: the audit event writer, the audit
retention sweep and the per-sensor limiter eviction.

CheckpointService issues a DuckDB CHECKPOINT on an interval and once more
on shutdown.

# Usage Example

	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.ShutdownTimeout, logger))
	tree.AddBackgroundService(services.NewRunnerService("audit-writer", auditLogger))
	tree.AddBackgroundService(services.NewRunnerService("audit-retention", services.RunnerFunc(auditLogger.RunRetention)))
	tree.AddStorageService(services.NewCheckpointService(db, cfg.Maintenance.CheckpointInterval, logger))
*/
package services
