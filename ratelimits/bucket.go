package ratelimits

import (
	"sync"
	"time"
)

const (
	// How many events a user may fire per window
	COOLDOWN_RATE = 30

	// How long one window lasts
	COOLDOWN_WINDOW = 120 * time.Second
)

// Global pointer to a container instance
var Container = &CooldownContainer{}

// Per-user cooldown state for one window
type bucket struct {
	windowStart time.Time
	uses        int
}

// Container struct to lock the bucket map
type CooldownContainer struct {
	sync.Mutex

	rate    int
	per     time.Duration
	buckets map[string]*bucket

	// swapped out in tests for a simulated clock
	now func() time.Time
}

// Allocates the map with the default template
func (c *CooldownContainer) Init() {
	c.Configure(COOLDOWN_RATE, COOLDOWN_WINDOW)
}

// Configure (re)initializes the container with a custom rate and window
func (c *CooldownContainer) Configure(rate int, per time.Duration) {
	c.Lock()
	c.rate = rate
	c.per = per
	c.buckets = make(map[string]*bucket)
	if c.now == nil {
		c.now = time.Now
	}
	c.Unlock()
}

// Allow records one event for $user and reports whether it may be processed.
// Expired buckets are swept lazily on every call; the sweep is O(active
// users), which is bounded by recent event volume.
func (c *CooldownContainer) Allow(user string) bool {
	c.Lock()
	defer c.Unlock()

	now := c.now()
	for id, b := range c.buckets {
		if now.After(b.windowStart.Add(c.per)) {
			delete(c.buckets, id)
		}
	}

	b, ok := c.buckets[user]
	if !ok {
		c.buckets[user] = &bucket{windowStart: now, uses: 1}
		return true
	}

	b.uses++
	return b.uses <= c.rate
}

// Tracked reports how many users currently hold a bucket
func (c *CooldownContainer) Tracked() int {
	c.Lock()
	defer c.Unlock()

	return len(c.buckets)
}
