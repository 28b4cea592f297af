package cache

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Local is a mutex-guarded in-process cache bounded by entry count. Entries
// expire by TTL on read. When the bound is exceeded, the oldest-inserted
// entries are dropped in bulk rather than tracking access order per read.
type Local struct {
	mu         sync.Mutex
	entries    map[string]localEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

type localEntry struct {
	value      []byte
	insertedAt time.Time
}

func NewLocal(ttl time.Duration, maxEntries int) *Local {
	return &Local{
		entries:    make(map[string]localEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *Local) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.insertedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *Local) Set(_ context.Context, key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = localEntry{value: value, insertedAt: c.now()}

	if len(c.entries) > c.maxEntries {
		c.evictOldest()
	}
}

// evictOldest drops the oldest-inserted tenth of the bound (at least enough
// to get back under it). Called with the lock held.
func (c *Local) evictOldest() {
	type aged struct {
		key        string
		insertedAt time.Time
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{key: k, insertedAt: e.insertedAt})
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].insertedAt.Before(all[j].insertedAt)
	})

	drop := len(c.entries) - c.maxEntries
	if batch := c.maxEntries / 10; batch > drop {
		drop = batch
	}
	if drop > len(all) {
		drop = len(all)
	}
	for _, a := range all[:drop] {
		delete(c.entries, a.key)
	}
}

func (c *Local) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Local) Close() error { return nil }
