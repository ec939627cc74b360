// Package cache provides an in-memory TTL cache for read-heavy backend
// endpoints. Entries expire purely by time; there is no explicit
// invalidation path.
package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Clock abstracts time.Now so expiry can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Item represents a cached item.
type Item struct {
	Value     any
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Stats tracks cache statistics.
type Stats struct {
	Hits   int64
	Misses int64
	Sets   int64
	Size   int64
}

// TTLCache is a concurrency-safe key-value cache with per-entry TTL.
// Memory grows with distinct key cardinality; expired entries are
// overwritten on the next miss for the same key.
type TTLCache struct {
	mu    sync.RWMutex
	items map[string]*Item
	clock Clock
	stats Stats
}

// New creates a TTLCache using the real clock.
func New() *TTLCache {
	return NewWithClock(SystemClock{})
}

// NewWithClock creates a TTLCache with an injected clock.
func NewWithClock(clock Clock) *TTLCache {
	return &TTLCache{
		items: make(map[string]*Item),
		clock: clock,
	}
}

// Get retrieves a live entry. Expired entries count as misses.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, exists := c.items[key]
	if !exists || c.clock.Now().After(item.ExpiresAt) {
		c.stats.Misses++
		return nil, false
	}

	c.stats.Hits++
	return item.Value, true
}

// Set stores a value with the given TTL.
func (c *TTLCache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	c.items[key] = &Item{
		Value:     value,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	c.stats.Sets++
	c.stats.Size = int64(len(c.items))
}

// GetStats returns a snapshot of the cache counters.
func (c *TTLCache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := c.stats
	stats.Size = int64(len(c.items))
	return stats
}

// Key builds a cache key from a function identity and its normalized
// argument tuple. Distinct arguments (including locale) never collide.
func Key(fn string, args ...any) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, fn)
	for _, arg := range args {
		parts = append(parts, fmt.Sprintf("%v", arg))
	}
	return strings.Join(parts, "|")
}
