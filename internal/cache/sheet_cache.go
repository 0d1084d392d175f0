package cache

import (
	"sync"
	"time"
)

// SheetCache is an in-process TTL cache for raw sheet data, keyed by
// "spreadsheetID::range". The clock is injected so expiry is testable
// without sleeping.
type SheetCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]sheetEntry
}

type sheetEntry struct {
	values   [][]any
	storedAt time.Time
}

// NewSheetCache builds a cache with the given TTL. A nil now falls back to
// the wall clock. TTL <= 0 disables caching entirely.
func NewSheetCache(ttl time.Duration, now func() time.Time) *SheetCache {
	if now == nil {
		now = time.Now
	}
	return &SheetCache{
		ttl:   ttl,
		now:   now,
		items: make(map[string]sheetEntry),
	}
}

// Key joins a spreadsheet ID and an A1 range into a cache key.
func Key(spreadsheetID, a1Range string) string {
	return spreadsheetID + "::" + a1Range
}

// Get returns the cached values for key, or false when absent or expired.
// Expired entries are evicted on read.
func (c *SheetCache) Get(key string) ([][]any, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.now().Sub(e.storedAt) >= c.ttl {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.values, true
}

// Set stores values under key with the current timestamp.
func (c *SheetCache) Set(key string, values [][]any) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.items[key] = sheetEntry{values: values, storedAt: c.now()}
	c.mu.Unlock()
}

// Clear drops every entry. The report job calls this before fetching so the
// emailed snapshot is never stale.
func (c *SheetCache) Clear() {
	c.mu.Lock()
	c.items = make(map[string]sheetEntry)
	c.mu.Unlock()
}

// Len reports the number of live entries, counting expired ones until they
// are read.
func (c *SheetCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
