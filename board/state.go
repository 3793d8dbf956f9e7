// Package board implements the 4x4 bitboard for 2048. A whole board fits in
// a single uint64: sixteen nibbles, each holding the base-2 exponent of the
// tile in that cell (0 means the cell is empty). The most significant nibble
// is the top-left cell, and cells follow in row-major order from there.
package board

import "math/bits"

const (
	// Dim is the number of rows (and columns) on the board.
	Dim = 4
	// NumCells is the number of cells on the board.
	NumCells = Dim * Dim
	// MaxExponent is the largest exponent that fits in a nibble. Two tiles
	// with this exponent never merge.
	MaxExponent = 15

	rowMask    = 0xFFFF
	nibbleMask = 0xF
)

// State is an entire board packed into 64 bits. It is a plain value; every
// operation returns a new State.
type State uint64

// Row is one horizontal slice of the board. Its leftmost cell is the most
// significant nibble.
type Row uint16

// Position is a (row, col) coordinate on the board. Row 0 is the top row
// and col 0 is the leftmost column.
type Position struct {
	Row int
	Col int
}

func cellShift(row, col int) uint {
	return uint(NumCells-1-(row*Dim+col)) * 4 & 63
}

func rowShift(row int) uint {
	return uint(Dim-1-row) * 16 & 63
}

// Tile returns the exponent stored at row, col. No bounds checking is done.
func (s State) Tile(row, col int) uint8 {
	return uint8(s>>cellShift(row, col)) & nibbleMask
}

// Row returns the 16-bit slice for row idx, where 0 is the top row.
func (s State) Row(idx int) Row {
	return Row(s >> rowShift(idx))
}

// WithRow returns a copy of s with row idx replaced by r.
func (s State) WithRow(idx int, r Row) State {
	shift := rowShift(idx)
	return s&^(State(rowMask)<<shift) | State(r)<<shift
}

// Cell returns the exponent in column col of the row.
func (r Row) Cell(col int) uint8 {
	return uint8(r>>(uint(Dim-1-col)*4&15)) & nibbleMask
}

// RowFromCells packs four exponents, leftmost first, into a Row.
func RowFromCells(cells [Dim]uint8) Row {
	return Row(cells[0]&nibbleMask)<<12 | Row(cells[1]&nibbleMask)<<8 |
		Row(cells[2]&nibbleMask)<<4 | Row(cells[3]&nibbleMask)
}

// Cells unpacks the row into four exponents, leftmost first.
func (r Row) Cells() [Dim]uint8 {
	return [Dim]uint8{r.Cell(0), r.Cell(1), r.Cell(2), r.Cell(3)}
}

// Reverse mirrors the row horizontally.
func (r Row) Reverse() Row {
	return (r >> 12) | ((r >> 4) & 0x00F0) | ((r << 4) & 0x0F00) | (r << 12)
}

// Unpack returns the sixteen exponents of s in row-major order, starting at
// the top-left cell.
func Unpack(s State) [NumCells]uint8 {
	var cells [NumCells]uint8
	for i := range NumCells {
		cells[i] = uint8(s>>(uint(NumCells-1-i)*4)) & nibbleMask
	}
	return cells
}

// Pack is the inverse of Unpack. Exponents are truncated to four bits.
func Pack(cells [NumCells]uint8) State {
	var s State
	for i, e := range cells {
		s |= State(e&nibbleMask) << (uint(NumCells-1-i) * 4)
	}
	return s
}

// FaceValue converts an exponent to the number shown on the tile. An empty
// cell has a face value of 0, not 1.
func FaceValue(e uint8) int {
	if e == 0 {
		return 0
	}
	return 1 << e
}

// Score is the sum of the face values of all tiles on the board.
func Score(s State) int {
	score := 0
	for s != 0 {
		score += FaceValue(uint8(s & nibbleMask))
		s >>= 4
	}
	return score
}

// MaxTile returns the largest exponent on the board.
func MaxTile(s State) uint8 {
	var m uint8
	for s != 0 {
		if e := uint8(s & nibbleMask); e > m {
			m = e
		}
		s >>= 4
	}
	return m
}

// CountEmpty returns the number of empty cells.
func CountEmpty(s State) int {
	// Fold every nibble down to its lowest bit; a set bit means non-empty.
	x := uint64(s)
	x |= x >> 2
	x |= x >> 1
	x &= 0x1111111111111111
	return NumCells - bits.OnesCount64(x)
}
