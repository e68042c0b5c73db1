package store

import (
	"sync"
	"time"

	"expense-manager/internal/domain/interfaces/repository"
)

// TableCache holds one cached snapshot of a remote table: the materialized
// rows plus the timestamp of the last successful refresh. An entry is either
// empty (forcing a refresh on the next read) or carries a refresh timestamp
// used to compute staleness. One instance is shared process-wide per table.
type TableCache struct {
	mu          sync.RWMutex
	rows        []repository.Row
	lastRefresh time.Time
}

func NewTableCache() *TableCache {
	return &TableCache{}
}

// Snapshot returns the cached rows and the last refresh time. The returned
// slice is shared; callers must not mutate it.
func (c *TableCache) Snapshot() ([]repository.Row, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rows, c.lastRefresh
}

// Replace swaps in a freshly read snapshot. A refresh racing an invalidation
// is resolved last-write-wins.
func (c *TableCache) Replace(rows []repository.Row, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = rows
	c.lastRefresh = at
}

// Invalidate empties the entry and clears its refresh timestamp so the next
// read is forced to the backing store.
func (c *TableCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = nil
	c.lastRefresh = time.Time{}
}

// Stale reports whether a read at now must refresh: the entry is empty, has
// never been refreshed, or its snapshot is older than ttl. A ttl of zero
// means the snapshot never expires by age.
func (c *TableCache) Stale(now time.Time, ttl time.Duration) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.rows) == 0 || c.lastRefresh.IsZero() {
		return true
	}
	if ttl <= 0 {
		return false
	}
	return now.Sub(c.lastRefresh) > ttl
}
