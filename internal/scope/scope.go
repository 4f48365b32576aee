// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

// Package scope translates a resolved company identity into SQL predicates
// that confine reads and writes to the company's ownership tree
// (Company -> Location -> Sensor -> Reading).
//
// The same predicate is used as the WHERE clause of SELECT, UPDATE and
// DELETE statements, so a mutation that matches zero rows is the single
// signal for "not found or not owned".
//
// Location and sensor predicates use unqualified column names and are
// valid against the bare locations / sensors tables. Reading predicates
// are qualified with the aliases declared in ReadingsFrom.
package scope

import (
	"time"

	"github.com/tomtom215/sensorgrid/internal/apperr"
)

// ReadingsFrom is the join that Readings predicates are written against.
const ReadingsFrom = "readings r JOIN sensors s ON s.sensor_id = r.sensor_id JOIN locations l ON l.location_id = s.location_id"

// Predicate is a parameterized boolean SQL expression.
type Predicate struct {
	SQL  string
	Args []any
}

// Where renders the predicate as a WHERE clause.
func (p Predicate) Where() string {
	return "WHERE " + p.SQL
}

// And returns a new predicate that also requires clause.
func (p Predicate) And(clause string, args ...any) Predicate {
	merged := make([]any, 0, len(p.Args)+len(args))
	merged = append(merged, p.Args...)
	merged = append(merged, args...)
	return Predicate{SQL: "(" + p.SQL + ") AND " + clause, Args: merged}
}

// Company matches the company row itself.
func Company(companyID int64) Predicate {
	return NewWhereBuilder().AddClause("company_id = ?", companyID).Build()
}

// Locations matches every location owned by companyID.
func Locations(companyID int64) Predicate {
	return NewWhereBuilder().AddClause("company_id = ?", companyID).Build()
}

// Location matches one location only if companyID owns it.
func Location(companyID, locationID int64) Predicate {
	return NewWhereBuilder().
		AddClause("location_id = ?", locationID).
		AddClause("company_id = ?", companyID).
		Build()
}

// AnyLocation matches a location by id regardless of owner. Used only on
// the admin provisioning path.
func AnyLocation(locationID int64) Predicate {
	return NewWhereBuilder().AddClause("location_id = ?", locationID).Build()
}

// Sensors matches every sensor whose location is owned by companyID.
func Sensors(companyID int64) Predicate {
	return NewWhereBuilder().
		AddClause("location_id IN (SELECT location_id FROM locations WHERE company_id = ?)", companyID).
		Build()
}

// Sensor matches one sensor only if companyID owns it through its location.
func Sensor(companyID, sensorID int64) Predicate {
	return Sensors(companyID).And("sensor_id = ?", sensorID)
}

// SensorSet matches the given sensor ids that companyID owns.
func SensorSet(companyID int64, sensorIDs []int64) Predicate {
	return NewWhereBuilder().
		AddClause("location_id IN (SELECT location_id FROM locations WHERE company_id = ?)", companyID).
		AddIn("sensor_id", sensorIDs).
		Build()
}

// Readings matches readings of the given sensors, within [from, to]
// inclusive, belonging to companyID. It fails with ErrInvalidArgument if
// sensorIDs is empty or the range is inverted.
func Readings(companyID int64, sensorIDs []int64, from, to time.Time) (Predicate, error) {
	if len(sensorIDs) == 0 {
		return Predicate{}, apperr.Invalid("sensor_ids must contain at least one id")
	}
	if from.After(to) {
		return Predicate{}, apperr.Invalid("from_time must not be after to_time")
	}

	return NewWhereBuilder().
		AddClause("l.company_id = ?", companyID).
		AddIn("r.sensor_id", sensorIDs).
		AddTimeRange("r.timestamp", from, to).
		Build(), nil
}
