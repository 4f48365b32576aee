// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package database

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/tomtom215/sensorgrid/internal/metrics"
)

// Connection Pool Configuration:
//   - MaxOpenConns: based on CPU count for parallelism
//   - MaxIdleConns: 2 for efficient connection reuse
//   - ConnMaxLifetime: 1 hour to prevent stale connections
//   - ConnMaxIdleTime: 5 minutes for idle connection cleanup
func (db *DB) configureConnectionPool() error {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("initial ping failed: %w", err)
	}
	return nil
}

// PoolStats publishes the number of in-use connections to Prometheus.
func (db *DB) PoolStats() {
	metrics.DBConnectionPoolSize.Set(float64(db.conn.Stats().InUse))
}
