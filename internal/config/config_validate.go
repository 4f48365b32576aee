// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package config

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateIngest(); err != nil {
		return err
	}

	if err := c.validateQuery(); err != nil {
		return err
	}

	if err := c.validateAudit(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("HTTP_MAX_BODY_BYTES must be positive")
	}
	if c.Server.SlowRequestThreshold < 0 {
		return fmt.Errorf("SLOW_REQUEST_THRESHOLD must be >= 0")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

func (c *Config) validateSecurity() error {
	if (c.Security.AdminUsername == "") != (c.Security.AdminPassword == "") {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	if c.IsProduction() && c.Security.AdminPassword != "" && len(c.Security.AdminPassword) < 12 {
		return fmt.Errorf("ADMIN_PASSWORD must be at least 12 characters in production")
	}
	if c.Security.BcryptCost < bcrypt.MinCost || c.Security.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return c.validateRateLimits()
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > 100000 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000")
	}
	if c.Security.AdminRateLimitReqs < 1 {
		return fmt.Errorf("ADMIN_RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.IngestRateLimitReqs < 1 {
		return fmt.Errorf("INGEST_RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow < time.Second {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s")
	}
	return nil
}

var validBatchModes = map[string]bool{
	BatchModeAtomic:    true,
	BatchModePerRecord: true,
}

var validTimestampAuthorities = map[string]bool{
	TimestampAuthorityCaller: true,
	TimestampAuthorityServer: true,
}

func (c *Config) validateIngest() error {
	if !validBatchModes[c.Ingest.BatchMode] {
		return fmt.Errorf("INGEST_BATCH_MODE must be one of: atomic, per_record")
	}
	if !validTimestampAuthorities[c.Ingest.TimestampAuthority] {
		return fmt.Errorf("INGEST_TIMESTAMP_AUTHORITY must be one of: caller, server")
	}
	if c.Ingest.MaxBatchSize < 1 {
		return fmt.Errorf("INGEST_MAX_BATCH_SIZE must be at least 1")
	}
	if c.Ingest.MaxPayloadBytes < 2 {
		return fmt.Errorf("INGEST_MAX_PAYLOAD_BYTES must be at least 2")
	}
	if c.Ingest.PerSensorRate < 0 {
		return fmt.Errorf("INGEST_PER_SENSOR_RATE must be >= 0")
	}
	if c.Ingest.PerSensorRate > 0 && c.Ingest.PerSensorBurst < 1 {
		return fmt.Errorf("INGEST_PER_SENSOR_BURST must be at least 1 when rate limiting is enabled")
	}
	return nil
}

func (c *Config) validateQuery() error {
	if c.Query.MaxSensorIDs < 1 {
		return fmt.Errorf("QUERY_MAX_SENSOR_IDS must be at least 1")
	}
	if c.Query.MaxRows < 1 {
		return fmt.Errorf("QUERY_MAX_ROWS must be at least 1")
	}
	return nil
}

func (c *Config) validateAudit() error {
	if !c.Audit.Enabled {
		return nil
	}
	if c.Audit.BufferSize < 1 {
		return fmt.Errorf("AUDIT_BUFFER_SIZE must be at least 1")
	}
	if c.Audit.RetentionDays < 0 {
		return fmt.Errorf("AUDIT_RETENTION_DAYS must be >= 0")
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
