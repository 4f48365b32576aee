// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/sensorgrid/internal/apperr"
	"github.com/tomtom215/sensorgrid/internal/logging"
)

// errorClass is the HTTP rendering of one error sentinel.
type errorClass struct {
	sentinel error
	status   int
	code     string
	message  string // used when the error carries no client detail
}

// errorClasses is checked in order; the first errors.Is match wins.
var errorClasses = []errorClass{
	{apperr.ErrInvalidCredential, http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid or missing API key"},
	{apperr.ErrUnauthorized, http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid username or password"},
	{apperr.ErrForbidden, http.StatusForbidden, ErrCodeForbidden, "Not permitted for this credential"},
	{apperr.ErrNotFoundOrForbidden, http.StatusNotFound, ErrCodeNotFound, "Resource not found"},
	{apperr.ErrInvalidArgument, http.StatusUnprocessableEntity, ErrCodeInvalidArgument, "Invalid argument"},
	{apperr.ErrConflict, http.StatusConflict, ErrCodeConflict, "Conflict"},
	{apperr.ErrRateLimited, http.StatusTooManyRequests, ErrCodeTooManyRequests, "Rate limit exceeded"},
	{apperr.ErrDataIntegrity, http.StatusInternalServerError, ErrCodeDataIntegrity, "Stored data failed integrity checks"},
}

// WriteError renders err in the envelope. Client errors carry the detail
// attached by apperr.Invalid / apperr.Conflict; server errors are logged
// and answered with a generic message so storage text never leaks.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	writeErrorWithDetails(w, r, err, nil)
}

// writeErrorWithDetails is WriteError with a details payload.
func writeErrorWithDetails(w http.ResponseWriter, r *http.Request, err error, details any) {
	rw := NewResponseWriter(w, r)

	for _, c := range errorClasses {
		if !errors.Is(err, c.sentinel) {
			continue
		}
		if c.status >= http.StatusInternalServerError {
			logging.Ctx(r.Context()).Error().Err(err).Str("code", c.code).Msg("Request failed")
			rw.ErrorWithDetails(c.status, c.code, c.message, details)
			return
		}
		rw.ErrorWithDetails(c.status, c.code, clientMessage(err, c), details)
		return
	}

	logging.Ctx(r.Context()).Error().Err(err).Msg("Unhandled error")
	rw.ErrorWithDetails(http.StatusInternalServerError, ErrCodeInternalError, "An internal error occurred", details)
}

// clientMessage extracts the detail that apperr.Invalid and apperr.Conflict
// append after the sentinel text ("invalid argument: <detail>").
func clientMessage(err error, c errorClass) string {
	prefix := c.sentinel.Error() + ": "
	msg := err.Error()
	if i := strings.LastIndex(msg, prefix); i >= 0 && i+len(prefix) < len(msg) {
		return msg[i+len(prefix):]
	}
	return c.message
}
