// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package api

import (
	"net/http"

	"github.com/tomtom215/sensorgrid/internal/models"
)

// CreateLocation creates a location owned by the caller's company.
//
// @Summary Create location
// @Tags Locations
// @Accept json
// @Produce json
// @Security CompanyKey
// @Param body body models.LocationInput true "Location"
// @Success 201 {object} APIResponse{data=models.Location}
// @Failure 422 {object} APIResponse
// @Router /locations [post]
func (h *Handler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	company, err := companyID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var in models.LocationInput
	if !decodeBody(w, r, &in) {
		return
	}

	loc, err := h.provisioning.CreateLocation(r.Context(), company, in)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteCreated(w, r, loc)
}

// ListLocations lists the caller's locations.
//
// @Summary List locations
// @Tags Locations
// @Produce json
// @Security CompanyKey
// @Success 200 {object} APIResponse{data=[]models.Location}
// @Router /locations [get]
func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	company, err := companyID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	locs, err := h.provisioning.ListLocations(r.Context(), company)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, r, locs)
}

// GetLocation returns one of the caller's locations.
//
// @Summary Get location
// @Tags Locations
// @Produce json
// @Security CompanyKey
// @Param id path int true "Location id"
// @Success 200 {object} APIResponse{data=models.Location}
// @Failure 404 {object} APIResponse
// @Router /locations/{id} [get]
func (h *Handler) GetLocation(w http.ResponseWriter, r *http.Request) {
	company, id, err := companyAndID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	loc, err := h.provisioning.GetLocation(r.Context(), company, id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, r, loc)
}

// UpdateLocation replaces the mutable fields of a location.
//
// @Summary Update location
// @Tags Locations
// @Accept json
// @Produce json
// @Security CompanyKey
// @Param id path int true "Location id"
// @Param body body models.LocationInput true "Location"
// @Success 200 {object} APIResponse{data=models.Location}
// @Failure 404 {object} APIResponse
// @Router /locations/{id} [put]
func (h *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	company, id, err := companyAndID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var in models.LocationInput
	if !decodeBody(w, r, &in) {
		return
	}

	loc, err := h.provisioning.UpdateLocation(r.Context(), company, id, in)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, r, loc)
}

// DeleteLocation deletes a location that has no sensors.
//
// @Summary Delete location
// @Tags Locations
// @Produce json
// @Security CompanyKey
// @Param id path int true "Location id"
// @Success 200 {object} APIResponse{data=models.MessageResponse}
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse "Location still has sensors"
// @Router /locations/{id} [delete]
func (h *Handler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	company, id, err := companyAndID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if err := h.provisioning.DeleteLocation(r.Context(), company, id); err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, r, models.MessageResponse{Message: "Location deleted"})
}

// companyAndID returns the caller's company and the {id} path parameter.
func companyAndID(r *http.Request) (company, id int64, err error) {
	if company, err = companyID(r); err != nil {
		return 0, 0, err
	}
	if id, err = pathID(r, "id"); err != nil {
		return 0, 0, err
	}
	return company, id, nil
}
