package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock advances only when told to.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func TestTTLCache(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := NewWithClock(clock)

	t.Run("miss on empty cache", func(t *testing.T) {
		_, ok := c.Get("missing")
		assert.False(t, ok)
	})

	t.Run("hit within TTL", func(t *testing.T) {
		c.Set("k", "v", 15*time.Minute)
		clock.Advance(14 * time.Minute)

		v, ok := c.Get("k")
		assert.True(t, ok)
		assert.Equal(t, "v", v)
	})

	t.Run("miss after expiry", func(t *testing.T) {
		clock.Advance(2 * time.Minute) // now 16m after Set

		_, ok := c.Get("k")
		assert.False(t, ok)
	})

	t.Run("repopulate after expiry", func(t *testing.T) {
		c.Set("k", "v2", time.Hour)
		v, ok := c.Get("k")
		assert.True(t, ok)
		assert.Equal(t, "v2", v)
	})
}

func TestTTLCacheStats(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	c := NewWithClock(clock)

	c.Set("a", 1, time.Minute)
	c.Get("a")
	c.Get("b")

	stats := c.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.Equal(t, int64(1), stats.Size)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "search|vpn|10|en-us", Key("search", "vpn", 10, "en-us"))
	assert.NotEqual(t, Key("search", "vpn", 10, "en-us"), Key("search", "vpn", 10, "de"))
	assert.NotEqual(t, Key("article", int64(5)), Key("section", int64(5)))
}
