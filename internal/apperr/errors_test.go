// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestInvalid(t *testing.T) {
	t.Parallel()

	err := Invalid("sensor_ids must contain at least %d id", 1)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Invalid() should wrap ErrInvalidArgument, got %v", err)
	}
	want := "invalid argument: sensor_ids must contain at least 1 id"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIsClientError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"invalid credential", ErrInvalidCredential, true},
		{"wrapped not found", fmt.Errorf("get location: %w", ErrNotFoundOrForbidden), true},
		{"conflict helper", Conflict("location has sensors"), true},
		{"rate limited", ErrRateLimited, true},
		{"forbidden", ErrForbidden, true},
		{"data integrity", ErrDataIntegrity, false},
		{"plain error", errors.New("disk full"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsClientError(tt.err); got != tt.want {
				t.Errorf("IsClientError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
