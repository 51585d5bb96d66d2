// Package cache holds weather feature results in a bounded LRU with a
// time-to-live.
package cache

import (
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Cache is a thread-safe LRU keyed by feature and key. Entries older than the
// TTL are treated as missing. It implements weather.Cache.
type Cache struct {
	maxEntries int
	ttl        time.Duration
	clock      clockwork.Clock

	mu      sync.Mutex
	entries map[string]*entry
	head    *entry // most recently used
	tail    *entry // least recently used
}

type entry struct {
	id       string
	feature  string
	key      string
	value    any
	storedAt time.Time
	prev     *entry
	next     *entry
}

// Entry is a cached value as reported by Snapshot.
type Entry struct {
	Feature  string
	Key      string
	StoredAt time.Time
	Value    any
}

// New creates a cache. A nil clock uses the real clock.
func New(maxEntries int, ttl time.Duration, clock clockwork.Clock) *Cache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache{
		maxEntries: maxEntries,
		ttl:        ttl,
		clock:      clock,
		entries:    make(map[string]*entry),
	}
}

func entryID(feature, key string) string { return feature + "\x00" + key }

// Get returns the live value for feature and key.
func (c *Cache) Get(feature, key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[entryID(feature, key)]
	if !ok {
		return nil, false
	}
	if c.expired(e, c.clock.Now()) {
		c.drop(e)
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

// Put stores value, restarting its TTL.
func (c *Cache) Put(feature, key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	id := entryID(feature, key)
	if e, ok := c.entries[id]; ok {
		e.value = value
		e.storedAt = now
		c.moveToFront(e)
		return
	}

	e := &entry{id: id, feature: feature, key: key, value: value, storedAt: now}
	c.entries[id] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.drop(c.tail)
	}
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	c.head, c.tail = nil, nil
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Snapshot lists live entries sorted by feature and key. It does not affect
// recency.
func (c *Cache) Snapshot() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if c.expired(e, now) {
			continue
		}
		out = append(out, Entry{Feature: e.feature, Key: e.key, StoredAt: e.storedAt, Value: e.value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Feature != out[j].Feature {
			return out[i].Feature < out[j].Feature
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func (c *Cache) expired(e *entry, now time.Time) bool {
	return c.ttl > 0 && now.Sub(e.storedAt) >= c.ttl
}

func (c *Cache) drop(e *entry) {
	if e == nil {
		return
	}
	delete(c.entries, e.id)
	c.remove(e)
}

func (c *Cache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *Cache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *Cache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}
