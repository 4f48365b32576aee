// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package scope

import (
	"fmt"
	"strings"
	"time"
)

// WhereBuilder accumulates AND-ed clauses with positional "?" arguments.
// Values never reach the SQL text; only placeholders do.
type WhereBuilder struct {
	clauses []string
	args    []any
}

// NewWhereBuilder returns an empty builder.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []any{},
	}
}

// AddClause appends a clause and its arguments.
func (wb *WhereBuilder) AddClause(clause string, args ...any) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddIn appends "column IN (?, ...)". An empty id list appends a clause
// that matches nothing rather than being dropped.
func (wb *WhereBuilder) AddIn(column string, ids []int64) *WhereBuilder {
	if len(ids) == 0 {
		wb.clauses = append(wb.clauses, "FALSE")
		return wb
	}
	placeholders := make([]string, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		wb.args = append(wb.args, id)
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")))
	return wb
}

// AddTimeRange appends an inclusive "column BETWEEN ? AND ?".
func (wb *WhereBuilder) AddTimeRange(column string, from, to time.Time) *WhereBuilder {
	wb.clauses = append(wb.clauses, column+" BETWEEN ? AND ?")
	wb.args = append(wb.args, from, to)
	return wb
}

// Build joins the clauses with AND. An empty builder yields "1=1".
func (wb *WhereBuilder) Build() Predicate {
	if len(wb.clauses) == 0 {
		return Predicate{SQL: "1=1", Args: []any{}}
	}
	return Predicate{SQL: strings.Join(wb.clauses, " AND "), Args: wb.args}
}

// Count returns the number of clauses added so far.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}
