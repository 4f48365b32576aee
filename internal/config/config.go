// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values for every setting
//  2. Config File: optional YAML file (config.yaml or CONFIG_PATH)
//  3. Environment Variables: override any mapped setting
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Database    DatabaseConfig    `koanf:"database"`
	Server      ServerConfig      `koanf:"server"`
	Security    SecurityConfig    `koanf:"security"`
	Ingest      IngestConfig      `koanf:"ingest"`
	Query       QueryConfig       `koanf:"query"`
	Audit       AuditConfig       `koanf:"audit"`
	Maintenance MaintenanceConfig `koanf:"maintenance"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = use NumCPU
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes"`
	Environment     string        `koanf:"environment"` // development, staging, production

	// SlowRequestThreshold logs requests slower than this; 0 disables.
	SlowRequestThreshold time.Duration `koanf:"slow_request_threshold"`
}

// Addr returns the listen address for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds authentication, authorization and rate limit settings.
type SecurityConfig struct {
	// AdminUsername and AdminPassword seed the bootstrap admin account at
	// startup. The password is stored only as a bcrypt hash.
	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`
	BcryptCost    int    `koanf:"bcrypt_cost"`

	// RateLimitReqs per RateLimitWindow applies per client IP to the
	// company API. Admin and ingest routes have their own budgets.
	RateLimitReqs       int           `koanf:"rate_limit_reqs"`
	AdminRateLimitReqs  int           `koanf:"admin_rate_limit_reqs"`
	IngestRateLimitReqs int           `koanf:"ingest_rate_limit_reqs"`
	RateLimitWindow     time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled   bool          `koanf:"rate_limit_disabled"`
	CORSOrigins         []string      `koanf:"cors_origins"`

	// CasbinPolicyPath optionally replaces the built-in route policy.
	CasbinPolicyPath string `koanf:"casbin_policy_path"`
}

// Batch modes for sensor data ingestion.
const (
	BatchModeAtomic    = "atomic"
	BatchModePerRecord = "per_record"
)

// Timestamp authorities for ingested readings.
const (
	TimestampAuthorityCaller = "caller"
	TimestampAuthorityServer = "server"
)

// IngestConfig controls how sensor readings are accepted.
type IngestConfig struct {
	// BatchMode is "atomic" (one transaction per request) or "per_record"
	// (each reading commits independently; earlier rows survive a failure).
	BatchMode string `koanf:"batch_mode"`

	// TimestampAuthority is "caller" (use the supplied timestamp when
	// present) or "server" (always stamp the receive time).
	TimestampAuthority string `koanf:"timestamp_authority"`

	MaxBatchSize    int `koanf:"max_batch_size"`
	MaxPayloadBytes int `koanf:"max_payload_bytes"`

	// PerSensorRate is the sustained readings/second allowed per sensor.
	// 0 disables per-sensor limiting.
	PerSensorRate  float64 `koanf:"per_sensor_rate"`
	PerSensorBurst int     `koanf:"per_sensor_burst"`
}

// QueryConfig bounds telemetry queries.
type QueryConfig struct {
	MaxSensorIDs int `koanf:"max_sensor_ids"`
	MaxRows      int `koanf:"max_rows"`
}

// AuditConfig controls the audit trail.
type AuditConfig struct {
	Enabled         bool          `koanf:"enabled"`
	BufferSize      int           `koanf:"buffer_size"`
	RetentionDays   int           `koanf:"retention_days"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
	LogToStdout     bool          `koanf:"log_to_stdout"`
}

// MaintenanceConfig controls background database upkeep.
type MaintenanceConfig struct {
	// CheckpointInterval is how often the WAL is folded into the database
	// file. 0 disables periodic checkpoints.
	CheckpointInterval time.Duration `koanf:"checkpoint_interval"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes file:line in log output.
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration with the following precedence (highest last):
//  1. Built-in defaults
//  2. Config file (config.yaml, or the path in CONFIG_PATH)
//  3. Environment variables
func Load() (*Config, error) {
	return LoadWithKoanf()
}
