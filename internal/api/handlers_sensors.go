// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package api

import (
	"net/http"

	"github.com/tomtom215/sensorgrid/internal/models"
)

// CreateSensor creates a sensor under one of the caller's locations and
// returns its API key once.
//
// @Summary Create sensor
// @Tags Sensors
// @Accept json
// @Produce json
// @Security CompanyKey
// @Param body body models.CreateSensorRequest true "Sensor"
// @Success 201 {object} APIResponse{data=models.CreateSensorResponse}
// @Failure 422 {object} APIResponse "Unknown or foreign location"
// @Router /sensors [post]
func (h *Handler) CreateSensor(w http.ResponseWriter, r *http.Request) {
	company, err := companyID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var req models.CreateSensorRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.provisioning.CreateSensor(r.Context(), company, req)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteCreated(w, r, resp)
}

// ListSensors lists the caller's sensors, optionally for one location.
//
// @Summary List sensors
// @Tags Sensors
// @Produce json
// @Security CompanyKey
// @Param location_id query int false "Only sensors of this location"
// @Success 200 {object} APIResponse{data=[]models.Sensor}
// @Router /sensors [get]
func (h *Handler) ListSensors(w http.ResponseWriter, r *http.Request) {
	company, err := companyID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	locationID, err := optionalInt64Query(r, "location_id")
	if err != nil {
		WriteError(w, r, err)
		return
	}

	sensors, err := h.provisioning.ListSensors(r.Context(), company, locationID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, r, sensors)
}

// GetSensor returns one of the caller's sensors.
//
// @Summary Get sensor
// @Tags Sensors
// @Produce json
// @Security CompanyKey
// @Param id path int true "Sensor id"
// @Success 200 {object} APIResponse{data=models.Sensor}
// @Failure 404 {object} APIResponse
// @Router /sensors/{id} [get]
func (h *Handler) GetSensor(w http.ResponseWriter, r *http.Request) {
	company, id, err := companyAndID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	sensor, err := h.provisioning.GetSensor(r.Context(), company, id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, r, sensor)
}

// UpdateSensor replaces the mutable fields of a sensor.
//
// @Summary Update sensor
// @Tags Sensors
// @Accept json
// @Produce json
// @Security CompanyKey
// @Param id path int true "Sensor id"
// @Param body body models.SensorInput true "Sensor"
// @Success 200 {object} APIResponse{data=models.Sensor}
// @Failure 404 {object} APIResponse
// @Router /sensors/{id} [put]
func (h *Handler) UpdateSensor(w http.ResponseWriter, r *http.Request) {
	company, id, err := companyAndID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var in models.SensorInput
	if !decodeBody(w, r, &in) {
		return
	}

	sensor, err := h.provisioning.UpdateSensor(r.Context(), company, id, in)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, r, sensor)
}

// DeleteSensor deletes a sensor that has no stored readings.
//
// @Summary Delete sensor
// @Tags Sensors
// @Produce json
// @Security CompanyKey
// @Param id path int true "Sensor id"
// @Success 200 {object} APIResponse{data=models.MessageResponse}
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse "Sensor has readings"
// @Router /sensors/{id} [delete]
func (h *Handler) DeleteSensor(w http.ResponseWriter, r *http.Request) {
	company, id, err := companyAndID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if err := h.provisioning.DeleteSensor(r.Context(), company, id); err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, r, models.MessageResponse{Message: "Sensor deleted"})
}

// RotateSensorKey replaces a sensor's API key. The old key stops working
// immediately.
//
// @Summary Rotate sensor key
// @Tags Sensors
// @Produce json
// @Security CompanyKey
// @Param id path int true "Sensor id"
// @Success 200 {object} APIResponse{data=models.RotateSensorKeyResponse}
// @Failure 404 {object} APIResponse
// @Router /sensors/{id}/rotate-key [post]
func (h *Handler) RotateSensorKey(w http.ResponseWriter, r *http.Request) {
	company, id, err := companyAndID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	resp, err := h.provisioning.RotateSensorKey(r.Context(), company, id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, r, resp)
}
