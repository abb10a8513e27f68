// Package cache provides a bounded in-memory byte cache with LRU eviction,
// used by file-backed library backends to keep hot waveform segments
// decoded between queries.
package cache

import (
	"container/list"
	"errors"
	"sync"
)

// Cache errors.
var (
	ErrItemTooLarge = errors.New("item exceeds cache capacity")
	ErrClosed       = errors.New("cache is closed")
)

// Stats holds cache counters.
type Stats struct {
	Capacity  int64
	Size      int64
	ItemCount int64
	Hits      int64
	Misses    int64
	Evictions int64
}

// WaveCache is an LRU byte cache. All mutation is serialized behind a
// mutex, so a Ready backend may be queried from multiple goroutines.
type WaveCache struct {
	capacity int64
	size     int64

	items    map[string]*list.Element
	eviction *list.List
	closed   bool

	mu sync.Mutex

	stats Stats
}

type entry struct {
	key   string
	value []byte
	size  int64
}

// New creates a cache bounded to capacity bytes. A capacity of zero or
// less yields a cache that stores nothing, which keeps call sites free of
// "is caching on" branches.
func New(capacity int64) *WaveCache {
	return &WaveCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		stats:    Stats{Capacity: capacity},
	}
}

// Get retrieves a value from the cache.
func (c *WaveCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, false
	}
	elem, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	c.eviction.MoveToFront(elem)
	c.stats.Hits++
	return elem.Value.(*entry).value, true
}

// Put stores a value. Values larger than the whole cache are refused.
func (c *WaveCache) Put(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	valueSize := int64(len(value))
	if valueSize > c.capacity {
		return ErrItemTooLarge
	}

	if elem, ok := c.items[key]; ok {
		c.eviction.MoveToFront(elem)
		e := elem.Value.(*entry)
		c.size += valueSize - e.size
		e.value = value
		e.size = valueSize
	} else {
		elem := c.eviction.PushFront(&entry{key: key, value: value, size: valueSize})
		c.items[key] = elem
		c.size += valueSize
	}

	for c.size > c.capacity && c.eviction.Len() > 1 {
		c.evictOldest()
	}
	return nil
}

// Size returns the current cache size in bytes.
func (c *WaveCache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Stats returns a snapshot of the cache counters.
func (c *WaveCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.Size = c.size
	stats.ItemCount = int64(len(c.items))
	return stats
}

// Close drops every entry and refuses further Puts. Gets after Close miss.
func (c *WaveCache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.eviction.Init()
	c.size = 0
	c.closed = true
}

// evictOldest removes the least recently used item. Caller holds the lock.
func (c *WaveCache) evictOldest() {
	elem := c.eviction.Back()
	if elem == nil {
		return
	}
	e := elem.Value.(*entry)
	c.eviction.Remove(elem)
	delete(c.items, e.key)
	c.size -= e.size
	c.stats.Evictions++
}
