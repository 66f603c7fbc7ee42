// Package cache holds rendered pages for a fixed window.
//
// Entries move through absent -> populated -> expired -> absent. Expired
// entries are dropped lazily on lookup and swept whenever a value is stored.
// Nothing in the write paths invalidates the cache, so a cached page can lag
// behind the database for up to the TTL. InvalidateAll also discards the
// result of any computation already running, so the next lookup recomputes.
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Clock returns the current time
type Clock func() time.Time

type entry struct {
	value     []byte
	expiresAt time.Time
}

// PageCache is a process-wide keyed store with a single TTL
type PageCache struct {
	ttl   time.Duration
	now   Clock
	group singleflight.Group

	mu       sync.Mutex
	entries  map[string]entry
	gen      uint64
	inflight map[string]int
}

// Option configures a PageCache
type Option func(*PageCache)

// WithClock replaces time.Now, mainly for tests
func WithClock(clock Clock) Option {
	return func(c *PageCache) {
		c.now = clock
	}
}

// New returns an empty cache whose entries live for ttl
func New(ttl time.Duration, opts ...Option) *PageCache {
	c := &PageCache{
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[string]entry),
		inflight: make(map[string]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the lifetime of a cache entry
func (c *PageCache) TTL() time.Duration {
	return c.ttl
}

// Get returns the value for key if it is present and not expired
func (c *PageCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for one TTL
func (c *PageCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store(key, value)
}

// store must be called with mu held
func (c *PageCache) store(key string, value []byte) {
	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = entry{value: value, expiresAt: now.Add(c.ttl)}
}

// GetOrCompute returns the cached value for key, or runs compute, stores its
// result and returns it. Concurrent misses on the same key share one compute
// call. Errors are returned to every waiter and are not cached.
func (c *PageCache) GetOrCompute(key string, compute func() ([]byte, error)) ([]byte, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if value, ok := c.Get(key); ok {
			return value, nil
		}
		gen := c.begin(key)
		defer c.end(key)

		value, err := compute()
		if err != nil {
			return nil, err
		}
		if c.ttl > 0 {
			c.storeIfCurrent(key, value, gen)
		}
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// begin registers a running computation for key and returns the current
// generation
func (c *PageCache) begin(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inflight[key]++
	return c.gen
}

func (c *PageCache) end(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inflight[key]--; c.inflight[key] <= 0 {
		delete(c.inflight, key)
	}
}

// storeIfCurrent stores value unless InvalidateAll ran since gen was taken
func (c *PageCache) storeIfCurrent(key string, value []byte, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		return
	}
	c.store(key, value)
}

// InvalidateAll drops every entry regardless of key or expiry. Computations
// still running keep serving their own callers but are not stored, and later
// lookups no longer wait on them.
func (c *PageCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
	c.gen++
	for key := range c.inflight {
		c.group.Forget(key)
	}
}

// Len returns the number of stored entries, expired ones included
func (c *PageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
