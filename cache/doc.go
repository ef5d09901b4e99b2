// Package cache provides the bounded LRU cache behind the cell surface cache.
//
// Sharded[K, V] splits its entries across 16 shards, each with its own lock
// and LRU list, so that independent views or parallel painters do not
// contend on a single mutex.
//
//	c := cache.NewSharded[string, *Surface](256, cache.StringHasher)
//	s, err := c.GetOrCreate("A1", func() (*Surface, error) {
//	    return paint("A1")
//	})
//
// # Creation
//
// GetOrCreate runs the create function with the shard lock held, so a key is
// created at most once even when several goroutines miss at the same time.
// A create function that returns an error, or panics, leaves the cache
// unchanged.
//
// # Thread Safety
//
// Sharded is safe for concurrent use and must not be copied after creation.
package cache
