package querycache

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/bookplay-admin/internal/metrics"
)

const defaultTTL = 30 * time.Second

type entry struct {
	value   any
	expires time.Time
}

// Cache is a keyed, TTL-bound store of backend query results. Concurrent
// fetches of the same key share one upstream call. Errors are never stored.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	inflight   map[string]struct{}
	generation uint64
	ttl        time.Duration
	now        func() time.Time
	group      singleflight.Group
	metrics    *metrics.Recorder
}

// New constructs an empty Cache. A non-positive ttl falls back to 30s.
func New(ttl time.Duration, rec *metrics.Recorder) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{
		entries:  make(map[string]entry),
		inflight: make(map[string]struct{}),
		ttl:      ttl,
		now:      time.Now,
		metrics:  rec,
	}
}

// Fetch returns the fresh cached value for key, or runs fn and caches its
// result. A cached value of a different type is treated as a miss.
func Fetch[T any](ctx context.Context, c *Cache, key string, fn func(context.Context) (T, error)) (T, error) {
	if v, ok := c.lookup(key); ok {
		if typed, ok := v.(T); ok {
			c.metrics.RecordCacheLookup(true)
			return typed, nil
		}
	}
	c.metrics.RecordCacheLookup(false)

	// The load is shared, so one waiter leaving must not cancel it for the rest.
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		gen := c.begin(key)
		v, err := fn(loadCtx)
		c.finish(key, gen, v, err)
		return v, err
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		typed, ok := res.Val.(T)
		if !ok {
			return zero, nil
		}
		return typed, nil
	}
}

// Get returns the fresh cached value for key.
func (c *Cache) Get(key string) (any, bool) {
	return c.lookup(key)
}

// Set stores value under key with the cache TTL.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expires: c.now().Add(c.ttl)}
}

// Generation returns a token for SetIfUnchanged. Every Invalidate or Clear
// moves it forward.
func (c *Cache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// SetIfUnchanged stores value under key only when no invalidation happened
// since gen was taken. It reports whether the value was stored.
func (c *Cache) SetIfUnchanged(key string, gen uint64, value any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	c.entries[key] = entry{value: value, expires: c.now().Add(c.ttl)}
	return true
}

// Invalidate drops every key equal to prefix or nested under it
// ("business/1" drops "business/1/bookings" but not "business/10").
// Fetches already in flight for those keys will not populate the cache.
func (c *Cache) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	dropped := 0
	for key := range c.entries {
		if matches(key, prefix) {
			delete(c.entries, key)
			dropped++
		}
	}
	for key := range c.inflight {
		if matches(key, prefix) {
			c.group.Forget(key)
		}
	}
	return dropped
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.entries = make(map[string]entry)
	for key := range c.inflight {
		c.group.Forget(key)
	}
}

// Len returns the number of stored entries, fresh or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) lookup(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expires) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) begin(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight[key] = struct{}{}
	return c.generation
}

func (c *Cache) finish(key string, gen uint64, value any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, key)
	if err != nil || gen != c.generation {
		return
	}
	c.entries[key] = entry{value: value, expires: c.now().Add(c.ttl)}
}

func matches(key, prefix string) bool {
	if prefix == "" {
		return true
	}
	return key == prefix || strings.HasPrefix(key, prefix+"/")
}
