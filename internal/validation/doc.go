// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

// Package validation validates decoded request bodies with
// go-playground/validator v10.
//
// A single validator instance is shared process-wide so struct metadata is
// parsed once. Errors are reported under each field's JSON name and
// translated into short English messages:
//
//	var req models.CreateSensorRequest
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // respond 422 with apiErr.Code == "VALIDATION_FAILED"
//	}
//
// Besides the built-in tags, "notblank" rejects whitespace-only strings.
package validation
