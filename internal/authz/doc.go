// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

// Package authz decides which principal roles may call which routes,
// using a Casbin model and policy embedded in the binary.
//
// Subjects are roles (admin, company, sensor), objects are request paths
// matched with keyMatch2, and actions are HTTP methods matched with an
// anchored regular expression. Tenant isolation is not decided here: a
// company allowed on /api/v1/sensors/:id still only sees its own sensors
// through the scope predicates in the storage layer.
//
// The embedded policy can be replaced with a CSV file
// (security.casbin_policy_path), loaded through the Casbin file adapter.
package authz
