package board

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// Mode selects whether an Engine validates its arguments.
type Mode int32

const (
	// ValidatingMode checks every argument and fails fast with a
	// ValidationError.
	ValidatingMode Mode = iota
	// PerformanceMode skips range checks. Passing bad arguments in this
	// mode has undefined results.
	PerformanceMode
)

func (m Mode) String() string {
	switch m {
	case ValidatingMode:
		return "validating"
	case PerformanceMode:
		return "performance"
	}
	return fmt.Sprintf("Mode(%d)", int32(m))
}

// Engine is the entry point that games and players use to work with board
// states. It owns the empty-tile cache and the validation mode; everyone
// sharing an Engine sees the same mode.
type Engine struct {
	mode  atomic.Int32
	cache *EmptyTileCache
}

// NewEngine creates a validating engine that uses cache for EmptyTiles. If
// cache is nil, one sized from system memory is created.
func NewEngine(cache *EmptyTileCache) *Engine {
	InitTables()
	if cache == nil {
		cache = NewEmptyTileCache(MaxEntriesForMemory(DefaultCacheMemoryFraction))
	}
	return &Engine{cache: cache}
}

func (e *Engine) Mode() Mode {
	return Mode(e.mode.Load())
}

// SetMode switches between validating and performance mode and returns the
// previous mode so callers can restore it.
func (e *Engine) SetMode(m Mode) Mode {
	prev := Mode(e.mode.Swap(int32(m)))
	if prev != m {
		log.Debug().Stringer("from", prev).Stringer("to", m).Msg("engine-mode-changed")
	}
	return prev
}

func (e *Engine) validating() bool {
	return e.Mode() == ValidatingMode
}

func (e *Engine) Cache() *EmptyTileCache {
	return e.cache
}

// ClearCache empties the empty-tile cache.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

func (e *Engine) SimulateMoves(s State) [NumActions]State {
	return SimulateMoves(s)
}

func (e *Engine) SimulateMove(s State, a Action) (State, error) {
	if !e.validating() && !a.Valid() {
		return s, nil
	}
	return SimulateMove(s, a)
}

func (e *Engine) ValidMoves(s State) []ValidMove {
	return ValidMoves(s)
}

// EmptyTiles returns the empty positions of s, consulting the cache first.
// The returned slice is shared with the cache and must not be modified.
func (e *Engine) EmptyTiles(s State) []Position {
	if p, ok := e.cache.Get(s); ok {
		return p
	}
	p := EmptyTiles(s)
	e.cache.Insert(s, p)
	return p
}

// SetTile places exponent value at row, col. The occupied-cell check is
// always made; range checks only in ValidatingMode.
func (e *Engine) SetTile(s State, row, col, value int) (State, error) {
	if e.validating() {
		return SetTile(s, row, col, value)
	}
	return setTileUnchecked(s, row, col, value)
}
