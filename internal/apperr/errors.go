// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

// Package apperr defines the error taxonomy shared by the storage, service
// and HTTP layers. Every failure surfaced to a client is classified by
// errors.Is against one of the sentinels below; the api package owns the
// mapping from sentinel to HTTP status.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredential is returned when an API key is missing or does
	// not match any company or sensor.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrUnauthorized is returned when admin username/password verification fails.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFoundOrForbidden collapses "does not exist" and "exists but is
	// owned by another company" into one outcome so callers cannot probe
	// for other tenants' resources.
	ErrNotFoundOrForbidden = errors.New("not found")

	// ErrInvalidArgument marks a malformed request or a reference to a
	// parent entity that does not exist in the caller's scope.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict is returned when a mutation would break referential
	// integrity, such as deleting a location that still has sensors.
	ErrConflict = errors.New("conflict")

	// ErrDataIntegrity marks stored data that cannot be decoded.
	ErrDataIntegrity = errors.New("data integrity error")

	// ErrForbidden is returned when an authenticated principal calls a
	// route its role may not use.
	ErrForbidden = errors.New("forbidden")

	// ErrRateLimited is returned when a sensor exceeds its ingest rate.
	ErrRateLimited = errors.New("rate limited")
)

// Invalid wraps ErrInvalidArgument with a client-safe detail message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Conflict wraps ErrConflict with a client-safe detail message.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// IsClientError reports whether err belongs to a class that is caused by
// the request rather than by the server.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidCredential) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrNotFoundOrForbidden) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrRateLimited)
}
