// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

// Package ingest accepts telemetry readings from sensors.
//
// Two request shapes exist. Ingest takes a sensor authenticated by the
// X-Sensor-API-Key header. IngestBatch takes the legacy body where every
// record carries sensor_api_key; all keys are resolved before anything is
// written.
//
// Every payload must be a JSON object or array within the configured size
// limit and is stored compacted. Timestamps come from the caller unless
// ingest.timestamp_authority is "server". With ingest.batch_mode "atomic"
// a request is all or nothing; with "per_record" earlier readings survive
// a later failure and the error reports how many were stored.
package ingest
