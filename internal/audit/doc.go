// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

/*
Package audit provides the security audit trail for sensorgrid.

Rejected credentials, authorization denials and every provisioning
mutation (company, location and sensor create/update/delete, sensor key
rotation) are recorded as Events. Telemetry ingestion and queries are not
audited; they are covered by Prometheus metrics instead.

# Architecture

	handler / service  --Log()-->  buffered channel  --Run()-->  Store
	                                     |
	                               full: drop + metric

Log never blocks. Logger.Run is supervised as a long-running service and
drains the buffer on shutdown. Logger.RunRetention deletes events older
than the configured retention.

# Stores

  - DuckDBStore: audit_events table in the main database
  - MemoryStore: bounded in-memory store for tests and development

# Secrets

Events never carry API keys or passwords. Callers pass
logging.RedactKey(key) as the actor name for failed key lookups.
*/
package audit
