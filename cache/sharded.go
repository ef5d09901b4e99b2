package cache

import (
	"hash/fnv"
	"math"
	"sync"
	"sync/atomic"
)

const (
	// ShardCount is the number of shards. Must be a power of 2.
	ShardCount = 16

	// DefaultCapacity is the default maximum number of entries per shard.
	DefaultCapacity = 256

	shardMask = ShardCount - 1
)

// Hasher computes the hash used to pick a shard for a key.
type Hasher[K any] func(K) uint64

// StringHasher computes the FNV-1a hash of s.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// Float64Hasher hashes the IEEE 754 bits of f.
func Float64Hasher(f float64) uint64 {
	return mixBits(math.Float64bits(f))
}

// mixBits spreads the low-entropy bits of float keys across the shard mask.
func mixBits(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	return x
}

// Sharded is a thread-safe LRU cache split into ShardCount shards.
// Each shard holds at most Capacity entries; inserting into a full shard
// evicts that shard's least recently used entry.
type Sharded[K comparable, V any] struct {
	shards   [ShardCount]*shard[K, V]
	hasher   Hasher[K]
	capacity int
	onEvict  func(K, V)

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[K, V]
	lru     lruList[K]
}

type entry[K comparable, V any] struct {
	key   K
	value V
	node  *lruNode[K]
}

// NewSharded creates a cache holding up to capacity entries per shard.
// If capacity <= 0, DefaultCapacity is used.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *Sharded[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Sharded[K, V]{
		hasher:   hasher,
		capacity: capacity,
	}
	for i := range c.shards {
		c.shards[i] = &shard[K, V]{entries: make(map[K]*entry[K, V])}
	}
	return c
}

// OnEvict registers fn to be called for every entry removed by capacity
// pressure. fn runs outside the shard lock. It must be set before the cache
// is shared between goroutines.
func (c *Sharded[K, V]) OnEvict(fn func(K, V)) {
	c.onEvict = fn
}

func (c *Sharded[K, V]) shardFor(key K) *shard[K, V] {
	return c.shards[c.hasher(key)&shardMask]
}

// Get returns the value stored under key and marks it as recently used.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	v, ok := c.shardFor(key).lookup(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (c *Sharded[K, V]) Set(key K, value V) {
	s := c.shardFor(key)
	s.mu.Lock()
	evicted := c.insertLocked(s, key, value)
	s.mu.Unlock()
	c.notify(evicted)
}

// GetOrCreate returns the value stored under key, or calls create and stores
// its result. create runs with the shard lock held, so it is invoked at most
// once per key until the entry is evicted or deleted. When create returns an
// error (or panics) nothing is stored and the error is returned as is.
func (c *Sharded[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	s := c.shardFor(key)
	if v, ok := s.lookup(key); ok {
		c.hits.Add(1)
		return v, nil
	}

	value, evicted, err := c.createLocked(s, key, create)
	c.notify(evicted)
	return value, err
}

func (c *Sharded[K, V]) createLocked(s *shard[K, V], key K, create func() (V, error)) (V, []*entry[K, V], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have created the entry while we waited.
	if e, ok := s.entries[key]; ok {
		s.lru.Touch(e.node)
		c.hits.Add(1)
		return e.value, nil, nil
	}
	c.misses.Add(1)

	value, err := create()
	if err != nil {
		var zero V
		return zero, nil, err
	}
	return value, c.insertLocked(s, key, value), nil
}

// insertLocked stores value and returns the entries evicted to make room.
// Caller must hold s.mu.
func (c *Sharded[K, V]) insertLocked(s *shard[K, V], key K, value V) []*entry[K, V] {
	if e, ok := s.entries[key]; ok {
		e.value = value
		s.lru.Touch(e.node)
		return nil
	}

	var evicted []*entry[K, V]
	for s.lru.Len() >= c.capacity {
		oldest, ok := s.lru.PopOldest()
		if !ok {
			break
		}
		evicted = append(evicted, s.entries[oldest])
		delete(s.entries, oldest)
	}
	c.evictions.Add(uint64(len(evicted)))

	s.entries[key] = &entry[K, V]{key: key, value: value, node: s.lru.PushFront(key)}
	return evicted
}

func (c *Sharded[K, V]) notify(evicted []*entry[K, V]) {
	if c.onEvict == nil {
		return
	}
	for _, e := range evicted {
		c.onEvict(e.key, e.value)
	}
}

func (s *shard[K, V]) lookup(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	s.lru.Touch(e.node)
	return e.value, true
}

// Delete removes key. Reports whether an entry was removed.
func (c *Sharded[K, V]) Delete(key K) bool {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false
	}
	s.lru.Remove(e.node)
	delete(s.entries, key)
	return true
}

// Clear removes all entries. Statistics are kept.
func (c *Sharded[K, V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[K]*entry[K, V])
		s.lru.Clear()
		s.mu.Unlock()
	}
}

// Len returns the number of entries across all shards.
func (c *Sharded[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

// Capacity returns the per-shard capacity.
func (c *Sharded[K, V]) Capacity() int {
	return c.capacity
}

// Stats returns a snapshot of the cache counters.
func (c *Sharded[K, V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Len:           c.Len(),
		Capacity:      c.capacity,
		TotalCapacity: c.capacity * ShardCount,
		Hits:          hits,
		Misses:        misses,
		HitRate:       hitRate,
		Evictions:     c.evictions.Load(),
	}
}

// ResetStats zeroes the hit, miss and eviction counters.
func (c *Sharded[K, V]) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the per-shard capacity.
	Capacity int
	// TotalCapacity is Capacity * ShardCount.
	TotalCapacity int
	// Hits counts lookups that found an entry.
	Hits uint64
	// Misses counts lookups that did not.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), or 0 before the first lookup.
	HitRate float64
	// Evictions counts entries removed by capacity pressure.
	Evictions uint64
}
