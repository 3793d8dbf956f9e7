package board

import (
	"sync"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

// Rough footprint of one cache entry: the key, the slice header, an average
// of eight positions and the map's own overhead.
const emptyCacheEntrySize = 8 + 24 + 8*16 + 48

// DefaultCacheMemoryFraction is the share of system memory the empty-tile
// cache may grow to before it is cleared.
const DefaultCacheMemoryFraction = 0.05

const minCacheEntries = 1 << 12

// TableLock is the locking behaviour of the cache. A single-threaded caller
// can use NoLock and skip synchronization entirely.
type TableLock interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type NoLock struct{}

func (NoLock) Lock()    {}
func (NoLock) Unlock()  {}
func (NoLock) RLock()   {}
func (NoLock) RUnlock() {}

// CacheStats is a snapshot of the cache counters.
type CacheStats struct {
	Entries int
	Lookups uint64
	Hits    uint64
	Clears  uint64
}

// EmptyTileCache memoizes EmptyTiles by exact state. Search players see the
// same states many times, but the cache gains one entry per distinct state,
// so it is bounded and callers doing long runs should Clear it between
// decisions or games.
type EmptyTileCache struct {
	TableLock
	entries    map[State][]Position
	maxEntries int

	lookups atomic.Uint64
	hits    atomic.Uint64
	clears  atomic.Uint64
}

// NewEmptyTileCache creates a cache holding at most maxEntries states. A
// non-positive maxEntries means unbounded.
func NewEmptyTileCache(maxEntries int) *EmptyTileCache {
	return &EmptyTileCache{
		TableLock:  NoLock{},
		entries:    make(map[State][]Position),
		maxEntries: maxEntries,
	}
}

// MaxEntriesForMemory returns how many entries fit in the given fraction of
// the total system memory.
func MaxEntriesForMemory(fraction float64) int {
	total := memory.TotalMemory()
	n := int(fraction * float64(total) / emptyCacheEntrySize)
	if n < minCacheEntries {
		n = minCacheEntries
	}
	log.Debug().Uint64("total-system-memory-bytes", total).
		Float64("fraction", fraction).
		Int("max-entries", n).
		Msg("empty-tile-cache-size")
	return n
}

func (c *EmptyTileCache) SetSingleThreadedMode() {
	c.TableLock = NoLock{}
}

func (c *EmptyTileCache) SetMultiThreadedMode() {
	c.TableLock = new(sync.RWMutex)
}

// Get returns the cached empty positions for s. The returned slice is
// shared and must not be modified.
func (c *EmptyTileCache) Get(s State) ([]Position, bool) {
	c.RLock()
	defer c.RUnlock()
	c.lookups.Add(1)
	p, ok := c.entries[s]
	if ok {
		c.hits.Add(1)
	}
	return p, ok
}

// Insert stores the empty positions for s. If the cache is full it is
// cleared first.
func (c *EmptyTileCache) Insert(s State, p []Position) {
	c.Lock()
	defer c.Unlock()
	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		log.Debug().Int("entries", len(c.entries)).Msg("empty-tile-cache-full")
		clear(c.entries)
		c.clears.Add(1)
	}
	c.entries[s] = p
}

// Clear drops every entry and resets the counters.
func (c *EmptyTileCache) Clear() {
	c.Lock()
	defer c.Unlock()
	clear(c.entries)
	c.lookups.Store(0)
	c.hits.Store(0)
	c.clears.Store(0)
}

func (c *EmptyTileCache) Len() int {
	c.RLock()
	defer c.RUnlock()
	return len(c.entries)
}

func (c *EmptyTileCache) MaxEntries() int {
	return c.maxEntries
}

func (c *EmptyTileCache) Stats() CacheStats {
	return CacheStats{
		Entries: c.Len(),
		Lookups: c.lookups.Load(),
		Hits:    c.hits.Load(),
		Clears:  c.clears.Load(),
	}
}
