package content

import (
	"context"
	"sync"
	"time"

	"truckshop-platform/pkg/logger"
	"truckshop-platform/pkg/signalbus"
)

// DefaultTTL bounds how long a fetched content map is served without
// rechecking the row store.
const DefaultTTL = 60 * time.Second

// FetchFunc loads the flattened content map from the row store (directly or
// over HTTP, depending on which process owns the cache).
type FetchFunc func(ctx context.Context) (map[string]string, error)

// Cache is the session-local TTL cache over the flattened content map.
// Database values are merged over the static default table on every refresh,
// so a known key never resolves to a blank string. The cache never returns an
// error: a failed refresh serves the last-known map, or pure defaults when
// nothing was ever fetched.
type Cache struct {
	fetch FetchFunc
	ttl   time.Duration
	now   func() time.Time
	log   logger.Logger

	mu        sync.Mutex
	data      map[string]string
	fetchedAt time.Time
	valid     bool
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL overrides the default 60s expiry.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock injects the time source, for deterministic TTL tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

func NewCache(fetch FetchFunc, opts ...CacheOption) *Cache {
	c := &Cache{
		fetch: fetch,
		ttl:   DefaultTTL,
		now:   time.Now,
		log:   logger.Get().WithComponent("content-cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the content map, refetching when the cached copy is older than
// the TTL or was invalidated.
func (c *Cache) Get(ctx context.Context) map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.now().Sub(c.fetchedAt) < c.ttl {
		return copyMap(c.data)
	}

	fetched, err := c.fetch(ctx)
	if err != nil {
		c.log.Warn("Content fetch failed, serving last-known map", logger.Err(err))
		if c.data != nil {
			return copyMap(c.data)
		}
		return Defaults()
	}

	merged := Defaults()
	for k, v := range fetched {
		merged[k] = v
	}

	c.data = merged
	c.fetchedAt = c.now()
	c.valid = true

	return copyMap(c.data)
}

// Invalidate forces the next Get to refetch regardless of TTL.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}

// Bind subscribes the cache to content update signals. Returns the
// unsubscribe function; the owner must call it on teardown.
func (c *Cache) Bind(bus *signalbus.Bus) func() {
	return bus.Subscribe(signalbus.ChannelContent, func(signalbus.Payload) {
		c.Invalidate()
	})
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
