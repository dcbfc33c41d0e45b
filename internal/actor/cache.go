package actor

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// fetchTimeout bounds a shared fetch, which outlives any single caller.
const fetchTimeout = 30 * time.Second

// Cache holds query results by key for a short TTL. Concurrent misses on
// one key share a single fetch. Callers must not modify returned values.
type Cache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	entries map[string]cacheEntry
	// gen is bumped by Invalidate so a fetch that started earlier does not
	// store a stale result.
	gen   uint64
	group singleflight.Group
}

type cacheEntry struct {
	value   interface{}
	expires time.Time
}

// NewCache returns a cache; a ttl <= 0 disables caching but keeps the
// fetch deduplication.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Do returns the cached value for key or runs fetch. The fetch is shared
// by every caller waiting on key, so it runs detached from ctx; ctx only
// bounds how long this caller waits.
func (c *Cache) Do(ctx context.Context, key string, fetch func(context.Context) (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Before(e.expires) {
		c.mu.Unlock()
		return e.value, nil
	}
	gen := c.gen
	c.mu.Unlock()

	ch := c.group.DoChan(key, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		v, err := fetch(fctx)
		if err != nil || c.ttl <= 0 {
			return v, err
		}
		c.mu.Lock()
		if c.gen == gen {
			c.entries[key] = cacheEntry{value: v, expires: c.now().Add(c.ttl)}
		}
		c.mu.Unlock()
		return v, nil
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Invalidate drops each key and every key scoped under it ("key/...").
func (c *Cache) Invalidate(keys ...string) {
	if len(keys) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	for k := range c.entries {
		for _, key := range keys {
			if k == key || strings.HasPrefix(k, key+"/") {
				delete(c.entries, k)
				break
			}
		}
	}
	for _, key := range keys {
		c.group.Forget(key)
	}
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	now := c.now()
	for _, e := range c.entries {
		if now.Before(e.expires) {
			n++
		}
	}
	return n
}
