package container

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"

	"rocket-container/internal/platform/metrics"
)

// Cache is a fixed-capacity least-recently-used store mapping container id to
// an assembled Container. It is the only piece of shared mutable state in the
// gateway; the underlying lru.Cache is internally mutex-guarded, so concurrent
// lookups never corrupt recency ordering or capacity bookkeeping. Two racing
// misses for the same id may both run the loader; the second insert simply
// overwrites with an equivalent value.
type Cache struct {
	lru     *lru.Cache[int, Container]
	metrics *metrics.Metrics
}

// NewCache returns a Cache holding at most capacity containers. Capacity is
// fixed for the lifetime of the cache. Metrics may be nil.
func NewCache(capacity int, m *metrics.Metrics) (*Cache, error) {
	if capacity <= 0 {
		return nil, errors.New("cache capacity must be positive")
	}
	inner, err := lru.NewWithEvict[int, Container](capacity, func(int, Container) {
		if m != nil {
			m.IncCacheEvictions()
		}
	})
	if err != nil {
		return nil, err
	}
	return &Cache{lru: inner, metrics: m}, nil
}

// GetOrLoad returns the cached Container for id, marking it most recently
// used. On a miss the loader is invoked; on success the result is inserted
// (evicting the least-recently-used entry if at capacity) and returned. A
// loader failure inserts nothing and is propagated as-is.
func (c *Cache) GetOrLoad(id int, load func() (Container, error)) (Container, error) {
	if cached, ok := c.lru.Get(id); ok {
		if c.metrics != nil {
			c.metrics.IncCacheHits()
		}
		return cached, nil
	}
	if c.metrics != nil {
		c.metrics.IncCacheMisses()
	}

	loaded, err := load()
	if err != nil {
		return Container{}, err
	}
	c.lru.Add(id, loaded)
	return loaded, nil
}

// PutMany inserts the given containers in order, each insertion individually
// respecting capacity and eviction as if inserted one at a time. Used by the
// catalog-listing path to prime the cache.
func (c *Cache) PutMany(containers []Container) {
	for _, ct := range containers {
		c.lru.Add(ct.ID, ct)
	}
}

// Len returns the number of containers currently cached.
func (c *Cache) Len() int {
	return c.lru.Len()
}
