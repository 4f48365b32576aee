// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

// Package provisioning manages the ownership tree: admins create companies,
// and companies (or admins on their behalf) create locations and sensors.
//
// Company-facing operations take the caller's company id and build the
// matching scope predicate, so a resource owned by another tenant is
// indistinguishable from one that does not exist. Plaintext API keys are
// returned only from CreateCompany, CreateSensor* and RotateSensorKey.
package provisioning
