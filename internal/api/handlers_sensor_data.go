// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package api

import (
	"net/http"

	"github.com/tomtom215/sensorgrid/internal/auth"
	"github.com/tomtom215/sensorgrid/internal/ingest"
	"github.com/tomtom215/sensorgrid/internal/logging"
	"github.com/tomtom215/sensorgrid/internal/models"
	"github.com/tomtom215/sensorgrid/internal/telemetry"
)

// PostSensorData stores readings. With the X-Sensor-API-Key header every
// record belongs to that sensor; without it each record names its sensor
// in sensor_api_key. The body is one record or an array of records.
//
// @Summary Ingest readings
// @Tags Sensor Data
// @Accept json
// @Produce json
// @Security SensorKey
// @Param body body []models.IngestRecord true "Readings"
// @Success 201 {object} APIResponse{data=models.IngestResponse}
// @Failure 400 {object} APIResponse "Malformed JSON"
// @Failure 401 {object} APIResponse "Unknown sensor key"
// @Failure 422 {object} APIResponse
// @Failure 429 {object} APIResponse
// @Router /sensor_data [post]
func (h *Handler) PostSensorData(w http.ResponseWriter, r *http.Request) {
	records, ok := decodeIngestBody(w, r)
	if !ok {
		return
	}

	var (
		res ingest.Result
		err error
	)
	if sensor := auth.PrincipalFromContext(r.Context()); sensor != nil {
		res, err = h.ingest.Ingest(r.Context(), sensor, records)
	} else {
		res, err = h.ingest.IngestBatch(r.Context(), records)
	}
	if err != nil {
		if res.Accepted > 0 {
			logging.Ctx(r.Context()).Warn().
				Int("accepted", res.Accepted).
				Int("records", len(records)).
				Msg("Readings partially stored")
			writeErrorWithDetails(w, r, err, map[string]int{"accepted": res.Accepted})
			return
		}
		WriteError(w, r, err)
		return
	}

	WriteCreated(w, r, models.IngestResponse{
		Message:  "Readings stored",
		Accepted: res.Accepted,
	})
}

// GetSensorData returns readings of the caller's sensors within an
// inclusive time range, ordered by sensor, timestamp and reading id.
//
// @Summary Query readings
// @Tags Sensor Data
// @Produce json
// @Security CompanyKey
// @Param sensor_ids query string true "Sensor ids: repeated, comma separated or a JSON array"
// @Param from_time query string true "Epoch seconds or RFC3339 (alias from_timestamp)"
// @Param to_time query string true "Epoch seconds or RFC3339 (alias to_timestamp)"
// @Success 200 {object} APIResponse{data=models.SensorDataResponse}
// @Failure 404 {object} APIResponse "A sensor is unknown or not owned by the caller"
// @Failure 422 {object} APIResponse
// @Router /sensor_data [get]
func (h *Handler) GetSensorData(w http.ResponseWriter, r *http.Request) {
	company, err := companyID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	req, err := sensorDataRequest(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	res, err := h.telemetry.Query(r.Context(), company, req)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteSuccess(w, r, models.SensorDataResponse{
		SensorData: res.Readings,
		Count:      len(res.Readings),
		Truncated:  res.Truncated,
	})
}

func sensorDataRequest(r *http.Request) (telemetry.Request, error) {
	ids, err := parseSensorIDs(r.URL.Query()["sensor_ids"])
	if err != nil {
		return telemetry.Request{}, err
	}
	from, err := timeQuery(r, "from_time", "from_timestamp")
	if err != nil {
		return telemetry.Request{}, err
	}
	to, err := timeQuery(r, "to_time", "to_timestamp")
	if err != nil {
		return telemetry.Request{}, err
	}
	return telemetry.Request{SensorIDs: ids, From: from, To: to}, nil
}
