// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package authz

import (
	"sync"
	"time"
)

// Paths carry resource ids, so the key space grows with traffic.
const defaultCacheEntries = 10000

// enforcementCache caches authorization decisions. Entries expire lazily;
// when maxEntries is reached the whole cache is reset.
type enforcementCache struct {
	ttl        time.Duration
	maxEntries int
	mu         sync.RWMutex
	items      map[string]cacheItem
}

type cacheItem struct {
	allowed   bool
	expiresAt time.Time
}

func newEnforcementCache(ttl time.Duration, maxEntries int) *enforcementCache {
	return &enforcementCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		items:      make(map[string]cacheItem),
	}
}

func (c *enforcementCache) key(role, path, method string) string {
	return role + "\x00" + path + "\x00" + method
}

func (c *enforcementCache) get(role, path, method string) (allowed, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[c.key(role, path, method)]
	if !found || time.Now().After(item.expiresAt) {
		return false, false
	}
	return item.allowed, true
}

func (c *enforcementCache) set(role, path, method string, allowed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) >= c.maxEntries {
		c.items = make(map[string]cacheItem)
	}
	c.items[c.key(role, path, method)] = cacheItem{
		allowed:   allowed,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *enforcementCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
