package extras

import (
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/goliatone/go-guides/internal/reqctx"
)

type cacheKey struct {
	contextID uuid.UUID
	locale    string
}

// Cache memoizes extras per (context identity, locale). Entries are never
// explicitly evicted in the unbounded mode: they live as long as the owning
// route module, scoped by context identity. A bounded LRU mode is available
// for hosts that prefer explicit memory ceilings.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]*Extras
	bounded *lru.Cache[cacheKey, *Extras]
}

// CacheOption customizes cache construction.
type CacheOption func(*Cache) error

// WithMaxEntries switches the cache to a bounded LRU with the given capacity.
func WithMaxEntries(n int) CacheOption {
	return func(c *Cache) error {
		if n <= 0 {
			return nil
		}
		bounded, err := lru.New[cacheKey, *Extras](n)
		if err != nil {
			return err
		}
		c.bounded = bounded
		c.entries = nil
		return nil
	}
}

// NewCache constructs an extras cache, unbounded by default.
func NewCache(opts ...CacheOption) (*Cache, error) {
	cache := &Cache{entries: make(map[cacheKey]*Extras)}
	for _, opt := range opts {
		if err := opt(cache); err != nil {
			return nil, err
		}
	}
	return cache, nil
}

// GetOrCompute returns the cached extras for the request, computing them via
// build exactly once per (context identity, locale). Each request owns its
// context, so the computation is effectively single-flight per request.
func (c *Cache) GetOrCompute(ctx *reqctx.Context, build BuildFunc) *Extras {
	if ctx == nil || build == nil {
		return nil
	}
	key := cacheKey{contextID: ctx.ID, locale: ctx.Locale}

	c.mu.Lock()
	if cached, ok := c.get(key); ok {
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	computed := build(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	// A concurrent caller sharing the same context wins the race once.
	if cached, ok := c.get(key); ok {
		return cached
	}
	c.put(key, computed)
	return computed
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bounded != nil {
		return c.bounded.Len()
	}
	return len(c.entries)
}

func (c *Cache) get(key cacheKey) (*Extras, bool) {
	if c.bounded != nil {
		return c.bounded.Get(key)
	}
	cached, ok := c.entries[key]
	return cached, ok
}

func (c *Cache) put(key cacheKey, value *Extras) {
	if c.bounded != nil {
		c.bounded.Add(key, value)
		return
	}
	c.entries[key] = value
}
