// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

/*
Package main is the entry point for the Sensorgrid server.

Sensorgrid stores JSON telemetry from sensors and serves it back to the
company that owns them. Ownership is a strict tree (company, location,
sensor, reading) and every credential is confined to its own subtree.

# Application Architecture

	RootSupervisor ("sensorgrid")
	├── StorageSupervisor ("storage-layer")
	│   └── DuckDB checkpoint
	├── BackgroundSupervisor ("background-layer")
	│   ├── Audit writer
	│   ├── Audit retention
	│   └── Sensor limiter cleanup (optional)
	└── APISupervisor ("api-layer")
	    └── HTTP server

Initialization order:

 1. Configuration: koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog
 3. Database: DuckDB schema and indexes
 4. Audit store and bootstrap admin account
 5. Casbin route policy
 6. Provisioning, ingestion and telemetry services
 7. chi router and HTTP server
 8. Supervisor tree

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests for up to HTTP_SHUTDOWN_TIMEOUT, the audit writer
flushes its buffer and a final CHECKPOINT runs before the database closes.

# Example Usage

	export ADMIN_USERNAME=admin
	export ADMIN_PASSWORD=$(openssl rand -base64 18)
	export DUCKDB_PATH=/data/sensorgrid.duckdb
	./sensorgrid

	curl -u admin:$ADMIN_PASSWORD -d '{"company_name":"Acme"}' \
	  http://localhost:8080/api/v1/admin/companies
*/
package main
