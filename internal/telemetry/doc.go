// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

// Package telemetry answers time-range queries over stored readings.
//
// A query names sensor ids and an inclusive [from, to] window. Ownership
// is checked for the full id set before any reading is read, so a company
// cannot learn whether a foreign sensor has data. Stored payloads are
// re-validated on the way out; a corrupt payload fails the query instead
// of being skipped.
package telemetry
