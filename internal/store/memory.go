package store

import (
	"errors"
	"sync"
	"time"

	"github.com/weatherpocket/weatherpocket/internal/weather"
)

// ErrNotFound is returned when no fresh snapshot is cached for a location.
var ErrNotFound = errors.New("no cached snapshot for location")

type entry struct {
	snapshot  weather.Snapshot
	fetchedAt time.Time
}

// MemoryCache is a concurrency-safe in-memory snapshot cache keyed by the
// canonical location ID. A snapshot older than staleAfter is treated as
// absent, so callers re-fetch instead of serving stale data.
type MemoryCache struct {
	mu sync.RWMutex

	data       map[string]entry
	staleAfter time.Duration
	now        func() time.Time
}

// NewMemoryCache creates a MemoryCache. staleAfter <= 0 means snapshots
// never go stale.
func NewMemoryCache(staleAfter time.Duration) *MemoryCache {
	return &MemoryCache{
		data:       make(map[string]entry),
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// Put stores a snapshot for a location, replacing any previous one. A
// late-arriving result for a location the caller no longer cares about is
// harmless: entries are independent and the next Get simply ignores it
// once stale.
func (c *MemoryCache) Put(id string, snap weather.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[id] = entry{snapshot: snap, fetchedAt: c.now()}
}

// Get returns the cached snapshot for a location, or ErrNotFound when the
// location was never fetched or its snapshot has gone stale.
func (c *MemoryCache) Get(id string) (weather.Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[id]
	if !ok {
		return weather.Snapshot{}, ErrNotFound
	}
	if c.staleAfter > 0 && c.now().Sub(e.fetchedAt) > c.staleAfter {
		return weather.Snapshot{}, ErrNotFound
	}
	return e.snapshot, nil
}

// Evict removes any cached snapshot for a location.
func (c *MemoryCache) Evict(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, id)
}
