// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package validation

import (
	"strings"
	"sync"
	"testing"
)

type sensorRequest struct {
	LocationID int64  `json:"location_id" validate:"required,gt=0"`
	Name       string `json:"sensor_name" validate:"required,notblank,max=10"`
	Category   string `json:"sensor_category,omitempty" validate:"omitempty,oneof=temp humidity"`
	Secret     string `json:"-" validate:"max=3"`
}

func TestValidateStruct_Valid(t *testing.T) {
	t.Parallel()

	req := sensorRequest{LocationID: 1, Name: "probe", Category: "temp"}
	if err := ValidateStruct(&req); err != nil {
		t.Fatalf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStruct_FieldNamesAndMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       sensorRequest
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name:      "missing location",
			req:       sensorRequest{Name: "probe"},
			wantField: "location_id",
			wantTag:   "required",
			wantMsg:   "location_id is required",
		},
		{
			name:      "negative location",
			req:       sensorRequest{LocationID: -4, Name: "probe"},
			wantField: "location_id",
			wantTag:   "gt",
			wantMsg:   "location_id must be greater than 0",
		},
		{
			name:      "blank name",
			req:       sensorRequest{LocationID: 1, Name: "   "},
			wantField: "sensor_name",
			wantTag:   "notblank",
			wantMsg:   "sensor_name must not be blank",
		},
		{
			name:      "long name",
			req:       sensorRequest{LocationID: 1, Name: strings.Repeat("n", 11)},
			wantField: "sensor_name",
			wantTag:   "max",
			wantMsg:   "sensor_name must be at most 10 characters",
		},
		{
			name:      "bad category",
			req:       sensorRequest{LocationID: 1, Name: "probe", Category: "pressure"},
			wantField: "sensor_category",
			wantTag:   "oneof",
			wantMsg:   "sensor_category must be one of: temp humidity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verr := ValidateStruct(&tt.req)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("got field=%q tag=%q, want %q %q", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStruct_HiddenFieldUsesGoName(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct(&sensorRequest{LocationID: 1, Name: "p", Secret: "toolong"})
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	if got := verr.Errors()[0].Field(); got != "Secret" {
		t.Errorf("Field() = %q, want Secret", got)
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	single := ValidateStruct(&sensorRequest{Name: "probe"}).ToAPIError()
	if single.Code != ErrorCode {
		t.Errorf("Code = %q, want %q", single.Code, ErrorCode)
	}
	if single.Details["field"] != "location_id" {
		t.Errorf("Details[field] = %v", single.Details["field"])
	}

	multi := ValidateStruct(&sensorRequest{}).ToAPIError()
	fields, ok := multi.Details["fields"].([]map[string]any)
	if !ok || len(fields) != 2 {
		t.Fatalf("Details[fields] = %#v, want two entries", multi.Details["fields"])
	}
	if !strings.Contains(multi.Message, "location_id is required") || !strings.Contains(multi.Message, "sensor_name is required") {
		t.Errorf("Message = %q", multi.Message)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty Message = %q", empty.Message)
	}
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	got := make(chan any, 10)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got <- GetValidator()
		}()
	}
	wg.Wait()
	close(got)

	first := GetValidator()
	for v := range got {
		if v != first {
			t.Fatal("GetValidator() returned different instances")
		}
	}
}
