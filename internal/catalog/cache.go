package catalog

import (
	"sync"
	"time"
)

// listCache memoizes the raw row slab of each sheet for a fixed TTL. It only
// serves read paths; every mutating Service call invalidates the sheet it
// touched before returning, so writers always re-read fresh data.
type listCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	rows    [][]string
	fetched time.Time
}

func newListCache(ttl time.Duration) *listCache {
	return &listCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// get returns the cached rows for sheet if they are still fresh.
func (c *listCache) get(sheet string) ([][]string, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[sheet]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.fetched) > c.ttl {
		delete(c.entries, sheet)
		return nil, false
	}
	return entry.rows, true
}

func (c *listCache) put(sheet string, rows [][]string) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[sheet] = cacheEntry{rows: rows, fetched: c.now()}
}

func (c *listCache) invalidate(sheet string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, sheet)
}
