// Package sizecache implements the bounded, size-accounted LRU cache
// described in spec.md §4.1: entries are evicted from the least-recently-used
// end once the running total of recorded sizes exceeds a configured maximum.
package sizecache

import (
	"container/list"
	"sync"
)

// ExpireCallback is invoked, if provided, with the key of each entry
// evicted by Add.
type ExpireCallback func(key interface{})

type entry struct {
	key   interface{}
	size  uint64
	value interface{}
}

// SizeCache is an LRU cache bounded by the total recorded size of its
// entries rather than by entry count. It is safe for concurrent use; under
// concurrent Add calls for the same key, the last Add to acquire the lock
// wins and the cache remains well-formed (§5, "Shared-resource policy").
type SizeCache struct {
	mu       sync.Mutex
	maxSize  uint64
	totalSize uint64
	lru      *list.List
	cache    map[interface{}]*list.Element
	onExpire ExpireCallback
}

// New returns a SizeCache that evicts least-recently-used entries once
// the sum of recorded sizes exceeds maxSize. With maxSize == 0 every entry
// of non-zero size is evicted as soon as it is added; zero-size entries stay.
func New(maxSize uint64) *SizeCache {
	return NewWithExpireCallback(maxSize, nil)
}

// NewWithExpireCallback is like New, but invokes onExpire for every entry
// evicted to make room.
func NewWithExpireCallback(maxSize uint64, onExpire ExpireCallback) *SizeCache {
	return &SizeCache{
		maxSize:  maxSize,
		lru:      list.New(),
		cache:    map[interface{}]*list.Element{},
		onExpire: onExpire,
	}
}

// Add inserts or refreshes the entry for key, recording size and value and
// marking it most-recently-used. If key was already present, its previous
// size is first subtracted from the running total (§4.1 step 1). Entries
// are then evicted from the least-recently-used end until the total is at
// most maxSize (§4.1 step 3).
func (c *SizeCache) Add(key interface{}, size uint64, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.cache[key]; ok {
		c.totalSize -= el.Value.(*entry).size
		c.lru.Remove(el)
		delete(c.cache, key)
	}

	el := c.lru.PushBack(&entry{key, size, value})
	c.cache[key] = el
	c.totalSize += size

	for c.totalSize > c.maxSize {
		front := c.lru.Front()
		if front == nil {
			break
		}
		c.evict(front)
	}
}

// evict must be called with c.mu held.
func (c *SizeCache) evict(el *list.Element) {
	e := el.Value.(*entry)
	c.lru.Remove(el)
	delete(c.cache, e.key)
	c.totalSize -= e.size
	if c.onExpire != nil {
		c.onExpire(e.key)
	}
}

// Get returns the value stored for key, if any, marking it
// most-recently-used.
func (c *SizeCache) Get(key interface{}) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.cache[key]
	if !ok {
		return nil, false
	}
	c.lru.MoveToBack(el)
	return el.Value.(*entry).value, true
}

// Drop removes key's entry, if present, without invoking onExpire.
func (c *SizeCache) Drop(key interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.cache[key]
	if !ok {
		return
	}
	e := el.Value.(*entry)
	c.lru.Remove(el)
	delete(c.cache, key)
	c.totalSize -= e.size
}

// Purge empties the cache without invoking onExpire.
func (c *SizeCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Init()
	c.cache = map[interface{}]*list.Element{}
	c.totalSize = 0
}
