// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the locations searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/sensorgrid/config.yaml",
	"/etc/sensorgrid/config.yml",
}

// ConfigPathEnvVar names an explicit config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:      "/data/sensorgrid.duckdb",
			MaxMemory: "1GB",
			Threads:   0,
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    8 << 20, // 8MB
			Environment:     "development",

			SlowRequestThreshold: time.Second,
		},
		Security: SecurityConfig{
			AdminUsername:     "",
			AdminPassword:     "",
			BcryptCost:        12,
			RateLimitReqs:       100,
			AdminRateLimitReqs:  30,
			IngestRateLimitReqs: 600,
			RateLimitWindow:     time.Minute,
			RateLimitDisabled:   false,
			CORSOrigins:         []string{},
			CasbinPolicyPath:    "",
		},
		Ingest: IngestConfig{
			BatchMode:          BatchModeAtomic,
			TimestampAuthority: TimestampAuthorityCaller,
			MaxBatchSize:       1000,
			MaxPayloadBytes:    64 << 10,
			PerSensorRate:      0,
			PerSensorBurst:     100,
		},
		Query: QueryConfig{
			MaxSensorIDs: 500,
			MaxRows:      100000,
		},
		Audit: AuditConfig{
			Enabled:         true,
			BufferSize:      1000,
			RetentionDays:   90,
			CleanupInterval: 24 * time.Hour,
			LogToStdout:     false,
		},
		Maintenance: MaintenanceConfig{
			CheckpointInterval: 15 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf layers defaults, an optional YAML file and environment
// variables, then validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are keys that may arrive as comma-separated strings
// from the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf keys.
// Unmapped variables are ignored so the process environment cannot leak
// arbitrary keys into the config tree.
var envMappings = map[string]string{
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	"http_port":              "server.port",
	"http_host":              "server.host",
	"http_read_timeout":      "server.read_timeout",
	"http_write_timeout":     "server.write_timeout",
	"http_idle_timeout":      "server.idle_timeout",
	"http_shutdown_timeout":  "server.shutdown_timeout",
	"http_max_body_bytes":    "server.max_body_bytes",
	"environment":            "server.environment",
	"slow_request_threshold": "server.slow_request_threshold",

	"admin_username":             "security.admin_username",
	"admin_password":             "security.admin_password",
	"bcrypt_cost":                "security.bcrypt_cost",
	"rate_limit_requests":        "security.rate_limit_reqs",
	"admin_rate_limit_requests":  "security.admin_rate_limit_reqs",
	"ingest_rate_limit_requests": "security.ingest_rate_limit_reqs",
	"rate_limit_window":          "security.rate_limit_window",
	"disable_rate_limit":         "security.rate_limit_disabled",
	"cors_origins":               "security.cors_origins",
	"casbin_policy_path":         "security.casbin_policy_path",

	"ingest_batch_mode":          "ingest.batch_mode",
	"ingest_timestamp_authority": "ingest.timestamp_authority",
	"ingest_max_batch_size":      "ingest.max_batch_size",
	"ingest_max_payload_bytes":   "ingest.max_payload_bytes",
	"ingest_per_sensor_rate":     "ingest.per_sensor_rate",
	"ingest_per_sensor_burst":    "ingest.per_sensor_burst",

	"query_max_sensor_ids": "query.max_sensor_ids",
	"query_max_rows":       "query.max_rows",

	"audit_enabled":          "audit.enabled",
	"audit_buffer_size":      "audit.buffer_size",
	"audit_retention_days":   "audit.retention_days",
	"audit_cleanup_interval": "audit.cleanup_interval",
	"audit_log_to_stdout":    "audit.log_to_stdout",

	"checkpoint_interval": "maintenance.checkpoint_interval",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
