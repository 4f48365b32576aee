// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/sensorgrid/internal/apperr"
	"github.com/tomtom215/sensorgrid/internal/models"
)

const companyColumns = `company_id, company_name, api_key_prefix, api_key_hash, created_at`

func scanCompany(row rowScanner) (*models.Company, error) {
	var c models.Company
	if err := row.Scan(&c.ID, &c.Name, &c.APIKeyPrefix, &c.APIKeyHash, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCompany inserts a company and returns it with its assigned id.
// A duplicate key hash is reported as apperr.ErrConflict.
func (db *DB) CreateCompany(ctx context.Context, name, keyPrefix, keyHash string) (*models.Company, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	c, err := scanCompany(db.conn.QueryRowContext(ctx, `
		INSERT INTO companies (company_name, api_key_prefix, api_key_hash, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING `+companyColumns,
		name, keyPrefix, keyHash, time.Now().UTC()))
	observe("INSERT", "companies", start, err)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("company api key collision")
		}
		return nil, fmt.Errorf("failed to insert company: %w", err)
	}
	return c, nil
}

// ListCompanies returns all companies ordered by id.
func (db *DB) ListCompanies(ctx context.Context) ([]models.Company, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY company_id`)
	observe("SELECT", "companies", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer closeWithLog(rows, "companies rows")

	companies := make([]models.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

// GetCompanyByKeyHash returns the company owning keyHash, or nil if none does.
func (db *DB) GetCompanyByKeyHash(ctx context.Context, keyHash string) (*models.Company, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	c, err := scanCompany(db.conn.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE api_key_hash = ?`, keyHash))
	observe("SELECT", "companies", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company by key: %w", err)
	}
	return c, nil
}
