package gridcell

import (
	"github.com/gogpu/gridcell/cache"
)

// SurfaceCache maps DrawCacheKeys to rendered Surfaces. It is owned by one
// GridRenderer and bounded by an LRU policy.
type SurfaceCache struct {
	entries *cache.Sharded[DrawCacheKey, *Surface]
}

// NewSurfaceCache creates a cache holding up to capacity surfaces per
// shard (cache.DefaultCapacity when capacity <= 0).
func NewSurfaceCache(capacity int) *SurfaceCache {
	c := &SurfaceCache{
		entries: cache.NewSharded[DrawCacheKey, *Surface](capacity, DrawCacheKey.hash),
	}
	c.entries.OnEvict(func(key DrawCacheKey, s *Surface) {
		Logger().Debug("gridcell: surface evicted",
			"width", key.Width, "height", key.Height, "bytes", s.ByteSize())
	})
	return c
}

// GetOrRender returns the surface cached under key. On a miss it calls
// render once and caches the result. A failing render caches nothing.
func (c *SurfaceCache) GetOrRender(key DrawCacheKey, render func() (*Surface, error)) (*Surface, error) {
	return c.entries.GetOrCreate(key, render)
}

// Get returns the surface cached under key without rendering.
func (c *SurfaceCache) Get(key DrawCacheKey) (*Surface, bool) {
	return c.entries.Get(key)
}

// Len returns the number of cached surfaces.
func (c *SurfaceCache) Len() int {
	return c.entries.Len()
}

// Clear drops every cached surface.
func (c *SurfaceCache) Clear() {
	c.entries.Clear()
}

// Stats returns the cache counters.
func (c *SurfaceCache) Stats() cache.Stats {
	return c.entries.Stats()
}
