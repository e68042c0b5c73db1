package store

import (
	"testing"
	"time"

	"expense-manager/internal/domain/interfaces/repository"

	"github.com/stretchr/testify/assert"
)

func TestTableCacheStaleness(t *testing.T) {
	c := NewTableCache()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, c.Stale(now, time.Minute), "empty cache is always stale")

	c.Replace([]repository.Row{{"User ID": "42"}}, now)
	assert.False(t, c.Stale(now, time.Minute))
	assert.False(t, c.Stale(now.Add(time.Minute), time.Minute), "exactly at the threshold is still fresh")
	assert.True(t, c.Stale(now.Add(time.Minute+time.Second), time.Minute))
}

func TestTableCacheZeroTTLNeverExpiresByAge(t *testing.T) {
	c := NewTableCache()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	c.Replace([]repository.Row{{"User ID": "42"}}, now)
	assert.False(t, c.Stale(now.Add(1000*time.Hour), 0))
}

func TestTableCacheInvalidate(t *testing.T) {
	c := NewTableCache()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	c.Replace([]repository.Row{{"User ID": "42"}}, now)
	c.Invalidate()

	rows, lastRefresh := c.Snapshot()
	assert.Empty(t, rows)
	assert.True(t, lastRefresh.IsZero())
	assert.True(t, c.Stale(now, 0))
}
