// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

// Package models provides the typed records and request/response shapes
// shared by the storage, service and HTTP layers.
//
// Ownership forms a strict tree: Company -> Location -> Sensor -> Reading.
// Secret material (API key hashes, password hashes) is tagged json:"-" and
// never leaves the process; plaintext keys appear only in the Create*
// responses, exactly once.
package models
