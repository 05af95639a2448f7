// Package lru provides a fixed-capacity least-recently-used cache.
//
// Cache is not safe for concurrent use. Wrap it in a mutex, or keep it
// owned by a single consumer goroutine.
package lru

import (
	"container/list"
	"errors"
)

// ErrInvalidCapacity is returned by New for a capacity below 1.
var ErrInvalidCapacity = errors.New("lru: capacity must be >= 1")

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Cache maps keys to values, evicting the least recently used entry once
// capacity is reached. Front of the list is newest.
type Cache[K comparable, V any] struct {
	capacity int
	items    *list.List
	lookup   map[K]*list.Element
}

// New creates a Cache holding at most capacity entries.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return &Cache[K, V]{
		capacity: capacity,
		items:    list.New(),
		lookup:   make(map[K]*list.Element, capacity),
	}, nil
}

// Get returns the value for key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	el, ok := c.lookup[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.items.MoveToFront(el)
	return el.Value.(*entry[K, V]).value, true
}

// Put inserts or updates key and marks it most recently used. Inserting
// into a full cache evicts the oldest entry first.
func (c *Cache[K, V]) Put(key K, value V) {
	if el, ok := c.lookup[key]; ok {
		el.Value.(*entry[K, V]).value = value
		c.items.MoveToFront(el)
		return
	}

	if c.items.Len() >= c.capacity {
		c.evictOldest()
	}
	c.lookup[key] = c.items.PushFront(&entry[K, V]{key: key, value: value})
}

// Contains reports whether key is cached without touching its recency.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.lookup[key]
	return ok
}

// Remove deletes key. Returns false if it was not cached.
func (c *Cache[K, V]) Remove(key K) bool {
	el, ok := c.lookup[key]
	if !ok {
		return false
	}
	c.items.Remove(el)
	delete(c.lookup, key)
	return true
}

// Clear drops every entry.
func (c *Cache[K, V]) Clear() {
	c.items.Init()
	clear(c.lookup)
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int { return c.items.Len() }

// Cap returns the maximum number of entries.
func (c *Cache[K, V]) Cap() int { return c.capacity }

// Empty reports whether the cache holds nothing.
func (c *Cache[K, V]) Empty() bool { return c.items.Len() == 0 }

// Each calls fn for every entry from newest to oldest until fn returns
// false. fn must not modify the cache.
func (c *Cache[K, V]) Each(fn func(key K, value V) bool) {
	for el := c.items.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry[K, V])
		if !fn(e.key, e.value) {
			return
		}
	}
}

// Oldest returns the least recently used entry without touching it.
func (c *Cache[K, V]) Oldest() (K, V, bool) {
	return c.peek(c.items.Back())
}

// Newest returns the most recently used entry without touching it.
func (c *Cache[K, V]) Newest() (K, V, bool) {
	return c.peek(c.items.Front())
}

func (c *Cache[K, V]) peek(el *list.Element) (K, V, bool) {
	if el == nil {
		var k K
		var v V
		return k, v, false
	}
	e := el.Value.(*entry[K, V])
	return e.key, e.value, true
}

func (c *Cache[K, V]) evictOldest() {
	el := c.items.Back()
	if el == nil {
		return
	}
	c.items.Remove(el)
	delete(c.lookup, el.Value.(*entry[K, V]).key)
}
