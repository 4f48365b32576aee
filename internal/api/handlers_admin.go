// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/sensorgrid/internal/apperr"
	"github.com/tomtom215/sensorgrid/internal/audit"
	"github.com/tomtom215/sensorgrid/internal/middleware"
	"github.com/tomtom215/sensorgrid/internal/models"
)

// AdminCreateCompany provisions a company and returns its API key once.
//
// @Summary Create company
// @Tags Admin
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param body body models.CreateCompanyRequest true "Company"
// @Success 201 {object} APIResponse{data=models.CreateCompanyResponse}
// @Failure 401 {object} APIResponse
// @Failure 422 {object} APIResponse
// @Router /admin/companies [post]
func (h *Handler) AdminCreateCompany(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCompanyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.provisioning.CreateCompany(r.Context(), req.CompanyName)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteCreated(w, r, resp)
}

// AdminListCompanies lists every company.
//
// @Summary List companies
// @Tags Admin
// @Produce json
// @Security BasicAuth
// @Success 200 {object} APIResponse{data=[]models.Company}
// @Router /admin/companies [get]
func (h *Handler) AdminListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.provisioning.ListCompanies(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, r, companies)
}

// AdminCreateLocation creates a location for the company named in the body.
//
// @Summary Create location for a company
// @Tags Admin
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param body body models.AdminCreateLocationRequest true "Location"
// @Success 201 {object} APIResponse{data=models.Location}
// @Failure 422 {object} APIResponse
// @Router /admin/locations [post]
func (h *Handler) AdminCreateLocation(w http.ResponseWriter, r *http.Request) {
	var req models.AdminCreateLocationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	loc, err := h.provisioning.CreateLocation(r.Context(), req.CompanyID, req.LocationInput)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteCreated(w, r, loc)
}

// AdminCreateSensor creates a sensor under any location.
//
// @Summary Create sensor for any location
// @Tags Admin
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param body body models.CreateSensorRequest true "Sensor"
// @Success 201 {object} APIResponse{data=models.CreateSensorResponse}
// @Failure 422 {object} APIResponse
// @Router /admin/sensors [post]
func (h *Handler) AdminCreateSensor(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSensorRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.provisioning.CreateSensorAsAdmin(r.Context(), req)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteCreated(w, r, resp)
}

// AdminAuditEvents pages through the audit log, newest first.
//
// @Summary Query audit events
// @Tags Admin
// @Produce json
// @Security BasicAuth
// @Param type query []string false "Event types" collectionFormat(multi)
// @Param outcome query string false "success or failure"
// @Param actor_type query string false "admin, company, sensor, system"
// @Param actor_id query string false "Actor id"
// @Param since query string false "Epoch seconds or RFC3339"
// @Param until query string false "Epoch seconds or RFC3339"
// @Param limit query int false "Page size (1-1000)" default(100)
// @Param offset query int false "Offset"
// @Success 200 {object} APIResponse{data=[]audit.Event}
// @Failure 503 {object} APIResponse
// @Router /admin/audit [get]
func (h *Handler) AdminAuditEvents(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		NewResponseWriter(w, r).Error(http.StatusServiceUnavailable, ErrCodeUnavailable, "Audit logging is not configured")
		return
	}

	filter, err := auditFilter(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	events, err := h.audit.Query(r.Context(), filter)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	total, err := h.audit.Count(r.Context(), filter)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	NewResponseWriter(w, r).SuccessWithPagination(events, &PaginationMeta{
		Total:   total,
		Count:   len(events),
		Offset:  filter.Offset,
		Limit:   filter.Limit,
		HasMore: int64(filter.Offset+len(events)) < total,
	})
}

func auditFilter(r *http.Request) (audit.QueryFilter, error) {
	q := r.URL.Query()
	filter := audit.QueryFilter{
		ActorType: q.Get("actor_type"),
		ActorID:   q.Get("actor_id"),
	}

	for _, t := range q["type"] {
		filter.Types = append(filter.Types, audit.EventType(t))
	}
	if outcome := q.Get("outcome"); outcome != "" {
		if outcome != string(audit.OutcomeSuccess) && outcome != string(audit.OutcomeFailure) {
			return filter, apperr.Invalid("outcome must be success or failure")
		}
		filter.Outcomes = []audit.Outcome{audit.Outcome(outcome)}
	}

	var err error
	if filter.StartTime, err = optionalTimeQuery(r, "since"); err != nil {
		return filter, err
	}
	if filter.EndTime, err = optionalTimeQuery(r, "until"); err != nil {
		return filter, err
	}
	if filter.Limit, err = intQuery(r, "limit", 100, 1, 1000); err != nil {
		return filter, err
	}
	if filter.Offset, err = intQuery(r, "offset", 0, 0, 1_000_000); err != nil {
		return filter, err
	}
	return filter, nil
}

func optionalTimeQuery(r *http.Request, name string) (*time.Time, error) {
	if r.URL.Query().Get(name) == "" {
		return nil, nil
	}
	t, err := timeQuery(r, name)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// AdminStats returns request latency statistics per route.
//
// @Summary Request statistics
// @Tags Admin
// @Produce json
// @Security BasicAuth
// @Success 200 {object} APIResponse{data=[]middleware.EndpointStats}
// @Router /admin/stats [get]
func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats := []middleware.EndpointStats{}
	if h.perfMon != nil {
		stats = h.perfMon.Stats()
	}
	WriteSuccess(w, r, stats)
}
