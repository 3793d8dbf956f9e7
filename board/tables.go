package board

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

const numRows = 1 << 16

var (
	leftMoves  [numRows]Row
	rightMoves [numRows]Row

	tablesOnce  sync.Once
	tablesReady atomic.Bool
)

// MoveRowLeft slides and merges a single row towards its left edge. Equal
// neighbours merge into one tile with the next exponent; a merged tile does
// not merge again in the same move. Two tiles at MaxExponent stay apart,
// since their sum would not fit in a nibble.
func MoveRowLeft(r Row) Row {
	var nonZero [Dim]uint8
	n := 0
	for col := range Dim {
		if e := r.Cell(col); e != 0 {
			nonZero[n] = e
			n++
		}
	}
	var out [Dim]uint8
	j := 0
	for i := 0; i < n; i++ {
		if i+1 < n && nonZero[i] == nonZero[i+1] && nonZero[i] < MaxExponent {
			out[j] = nonZero[i] + 1
			// skip the partner we just consumed
			i++
		} else {
			out[j] = nonZero[i]
		}
		j++
	}
	return RowFromCells(out)
}

// MoveRowRight slides and merges a row towards its right edge.
func MoveRowRight(r Row) Row {
	return MoveRowLeft(r.Reverse()).Reverse()
}

// InitTables precomputes the left and right result of every possible row.
// It is safe to call any number of times, from any goroutine; only the
// first call does any work.
func InitTables() {
	tablesOnce.Do(func() {
		for i := range numRows {
			r := Row(i)
			leftMoves[i] = MoveRowLeft(r)
			rightMoves[i] = MoveRowRight(r)
		}
		tablesReady.Store(true)
		log.Debug().Int("rows", numRows).Msg("initialized-move-tables")
	})
}

// TablesInitialized reports whether InitTables has completed.
func TablesInitialized() bool {
	return tablesReady.Load()
}

// LeftTable returns the precomputed result of sliding r to the left.
func LeftTable(r Row) Row {
	InitTables()
	return leftMoves[r]
}

// RightTable returns the precomputed result of sliding r to the right.
func RightTable(r Row) Row {
	InitTables()
	return rightMoves[r]
}
