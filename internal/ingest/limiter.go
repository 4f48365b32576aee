// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package ingest

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/sensorgrid/internal/logging"
)

const (
	limiterCleanupInterval = time.Minute
	limiterIdleTTL         = time.Hour
)

// SensorLimiter is a token bucket per sensor. A request for n readings
// consumes n tokens, so a batch larger than the burst is always refused.
type SensorLimiter struct {
	limiters map[int64]*limiterEntry
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewSensorLimiter allows perSecond readings per sensor with the given burst.
func NewSensorLimiter(perSecond float64, burst int) *SensorLimiter {
	return &SensorLimiter{
		limiters: make(map[int64]*limiterEntry),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		now:      time.Now,
	}
}

// AllowN reports whether sensorID may store n more readings now.
func (l *SensorLimiter) AllowN(sensorID int64, n int) bool {
	now := l.now()

	l.mu.Lock()
	entry, exists := l.limiters[sensorID]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[sensorID] = entry
	}
	entry.lastAccess = now
	limiter := entry.limiter
	l.mu.Unlock()

	return limiter.AllowN(now, n)
}

// Run removes limiters of sensors idle for longer than an hour until ctx
// is canceled.
func (l *SensorLimiter) Run(ctx context.Context) error {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := l.cleanup(); removed > 0 {
				logging.Debug().Int("removed", removed).Msg("Pruned idle sensor rate limiters")
			}
		}
	}
}

func (l *SensorLimiter) cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	threshold := l.now().Add(-limiterIdleTTL)
	removed := 0
	for id, entry := range l.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(l.limiters, id)
			removed++
		}
	}
	return removed
}

func (l *SensorLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
