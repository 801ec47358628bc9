// Package cache provides a small in-process TTL cache for dashboard
// aggregates and sync-status lookups. It is process-local (not shared across
// instances) and is passed into services by the constructor so that lifecycle
// and test isolation stay explicit.
//
// Two TTL classes are used by convention:
//   - short (~30s):  sync-status polling entries
//   - medium (~5m):  dashboard aggregates
//
// The reconciliation engine invalidates the "dashboard:" and "sync-status:"
// key prefixes after every successful write; the extra breadth (all users,
// not just the affected one) is traded for simplicity.
package cache

import (
	"strings"
	"sync"
	"time"
)

// Key prefixes cleared by the reconciliation engine after ledger writes.
const (
	PrefixDashboard  = "dashboard:"
	PrefixSyncStatus = "sync-status:"
)

// entry is one cached value with its expiry deadline.
type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a mutex-guarded map with per-entry TTLs and opportunistic
// eviction of expired entries during writes. Safe for concurrent use.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	defaultTTL time.Duration
	writes     uint64
}

// New constructs a Cache. defaultTTL applies when Set is called with ttl <= 0;
// values <= 0 are coerced to one minute.
func New(defaultTTL time.Duration) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = time.Minute
	}
	return &Cache{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
	}
}

// Get returns the cached value for key and whether it was present and fresh.
// Expired entries are removed on access.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for ttl (or the default TTL when ttl <= 0).
// Every ~1000 writes, expired entries are swept to bound memory.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.writes++
	if c.writes >= 1000 {
		for k, e := range c.entries {
			if now.After(e.expiresAt) {
				delete(c.entries, k)
			}
		}
		c.writes = 0
	}

	c.entries[key] = entry{value: value, expiresAt: now.Add(ttl)}
}

// DeleteByPrefix removes every entry whose key starts with prefix and
// returns the number of entries removed.
func (c *Cache) DeleteByPrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Len returns the number of entries currently stored (including any that
// expired but have not been swept yet).
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// DashboardKey builds the cache key for a user's dashboard summary over a
// period expressed as "from..to" (both yyyy-mm-dd).
func DashboardKey(userID, period string) string {
	return PrefixDashboard + userID + ":" + period
}

// SyncStatusKey builds the cache key for a user's sync-status snapshot.
func SyncStatusKey(userID string) string {
	return PrefixSyncStatus + userID
}
