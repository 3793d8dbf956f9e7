package board

import "fmt"

// column gathers column col into a synthetic row, with the top cell as the
// most significant nibble. Sliding that row left is the same as sliding the
// column up.
func column(s State, col int) Row {
	return Row(s.Tile(0, col))<<12 | Row(s.Tile(1, col))<<8 |
		Row(s.Tile(2, col))<<4 | Row(s.Tile(3, col))
}

// withColumn scatters a synthetic column row back into column col of s.
// Column col of s must be empty.
func withColumn(s State, col int, r Row) State {
	for row := range Dim {
		s |= State(r.Cell(row)) << cellShift(row, col)
	}
	return s
}

// SimulateMoves returns the result of every action on s, in the order
// [Left, Right, Up, Down]. An entry equal to s means that action moves
// nothing.
func SimulateMoves(s State) [NumActions]State {
	InitTables()
	var left, right, up, down State
	for row := range Dim {
		r := s.Row(row)
		left = left.WithRow(row, leftMoves[r])
		right = right.WithRow(row, rightMoves[r])
	}
	for col := range Dim {
		c := column(s, col)
		up = withColumn(up, col, leftMoves[c])
		down = withColumn(down, col, rightMoves[c])
	}
	return [NumActions]State{left, right, up, down}
}

// SimulateMove applies a single action to s.
func SimulateMove(s State, a Action) (State, error) {
	if !a.Valid() {
		return s, fmt.Errorf("%w: %d", ErrInvalidAction, uint8(a))
	}
	InitTables()
	var out State
	switch a {
	case Left, Right:
		table := &leftMoves
		if a == Right {
			table = &rightMoves
		}
		for row := range Dim {
			out = out.WithRow(row, table[s.Row(row)])
		}
	case Up, Down:
		table := &leftMoves
		if a == Down {
			table = &rightMoves
		}
		for col := range Dim {
			out = withColumn(out, col, table[column(s, col)])
		}
	}
	return out, nil
}

// ValidMoves lists the actions that change s, paired with their results,
// in [Left, Right, Up, Down] order.
func ValidMoves(s State) []ValidMove {
	results := SimulateMoves(s)
	moves := make([]ValidMove, 0, NumActions)
	for i, next := range results {
		if next != s {
			moves = append(moves, ValidMove{Action: Action(i), State: next})
		}
	}
	return moves
}

// HasValidMove reports whether any action changes s.
func HasValidMove(s State) bool {
	for _, next := range SimulateMoves(s) {
		if next != s {
			return true
		}
	}
	return false
}

// EmptyTiles returns the coordinates of every empty cell, in row-major
// order.
func EmptyTiles(s State) []Position {
	empty := make([]Position, 0, CountEmpty(s))
	for i := range NumCells {
		if (s>>(uint(NumCells-1-i)*4))&nibbleMask == 0 {
			empty = append(empty, Position{Row: i / Dim, Col: i % Dim})
		}
	}
	return empty
}

// PlaceTile ORs exponent value into the cell at row, col without any range
// checks. The caller is responsible for the cell being empty and in range.
func PlaceTile(s State, row, col int, value uint8) State {
	return s | State(value&nibbleMask)<<cellShift(row, col)
}

// SetTile places exponent value at row, col. It fails if the cell is not
// empty or if any argument is out of range.
func SetTile(s State, row, col, value int) (State, error) {
	if err := checkRange("value", value, 0, MaxExponent); err != nil {
		return s, err
	}
	if err := checkRange("row", row, 0, Dim-1); err != nil {
		return s, err
	}
	if err := checkRange("col", col, 0, Dim-1); err != nil {
		return s, err
	}
	return setTileUnchecked(s, row, col, value)
}

func setTileUnchecked(s State, row, col, value int) (State, error) {
	if s.Tile(row, col) != 0 {
		return s, fmt.Errorf("%w: row %d, col %d", ErrTileOccupied, row, col)
	}
	return PlaceTile(s, row, col, uint8(value)), nil
}
