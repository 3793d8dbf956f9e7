package board

import (
	"errors"
	"math/rand/v2"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func randomStates(n int) []State {
	rng := rand.New(rand.NewPCG(7, 11))
	states := make([]State, n)
	for i := range states {
		states[i] = State(rng.Uint64())
	}
	return states
}

func TestPackUnpackRoundTrip(t *testing.T) {
	is := is.New(t)
	states := append(randomStates(1000), 0, ^State(0), 0x1234567890ABCDEF)
	for _, s := range states {
		is.Equal(Pack(Unpack(s)), s)
	}
}

func TestTileCoordinates(t *testing.T) {
	is := is.New(t)
	s := State(0x1234567890ABCDEF)
	cells := Unpack(s)
	is.Equal(cells[0], uint8(1))
	is.Equal(cells[15], uint8(0xF))
	is.Equal(s.Tile(0, 0), uint8(1))
	is.Equal(s.Tile(0, 3), uint8(4))
	is.Equal(s.Tile(2, 1), uint8(0))
	is.Equal(s.Tile(2, 2), uint8(0xA))
	is.Equal(s.Tile(3, 3), uint8(0xF))
	is.Equal(s.Row(0), Row(0x1234))
	is.Equal(s.Row(3), Row(0xCDEF))
	is.Equal(s.WithRow(1, 0), State(0x1234000090ABCDEF))
}

func TestRowHelpers(t *testing.T) {
	is := is.New(t)
	is.Equal(Row(0x1234).Reverse(), Row(0x4321))
	is.Equal(Row(0x1234).Cells(), [Dim]uint8{1, 2, 3, 4})
	is.Equal(RowFromCells([Dim]uint8{0xA, 0, 3, 0}), Row(0xA030))
}

func TestMoveRowLeftLiterals(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		in, left, right Row
	}{
		{0x1100, 0x2000, 0x0002},
		{0x1111, 0x2200, 0x0022},
		{0xFFFF, 0xFFFF, 0xFFFF},
		{0x2240, 0x3400, 0x0034},
		{0x0001, 0x1000, 0x0001},
		{0x1010, 0x2000, 0x0002},
		{0x1120, 0x2200, 0x0022},
		{0xFF00, 0xFF00, 0x00FF},
		{0xEEFF, 0xFFF0, 0x0FFF},
		{0x1212, 0x1212, 0x1212},
		{0x0000, 0x0000, 0x0000},
	}
	for _, c := range cases {
		is.Equal(MoveRowLeft(c.in), c.left)
		is.Equal(MoveRowRight(c.in), c.right)
	}
}

func hasMergeablePair(r Row) bool {
	cells := r.Cells()
	for i := 0; i < Dim-1; i++ {
		if cells[i] != 0 && cells[i] == cells[i+1] && cells[i] < MaxExponent {
			return true
		}
	}
	return false
}

func TestMoveRowLeftSettles(t *testing.T) {
	is := is.New(t)
	for i := range numRows {
		moved := MoveRowLeft(Row(i))
		cells := moved.Cells()
		// compacted against the left edge
		seenEmpty := false
		for _, e := range cells {
			if e == 0 {
				seenEmpty = true
			} else {
				is.True(!seenEmpty)
			}
		}
		if !hasMergeablePair(moved) {
			is.Equal(MoveRowLeft(moved), moved)
		}
	}
}

func TestTablesMatchAlgorithm(t *testing.T) {
	is := is.New(t)
	InitTables()
	InitTables()
	is.True(TablesInitialized())
	for i := range numRows {
		r := Row(i)
		is.Equal(LeftTable(r), MoveRowLeft(r))
		is.Equal(RightTable(r), MoveRowRight(r))
	}
}

func TestSimulateMovesTopRowPair(t *testing.T) {
	is := is.New(t)
	s := State(0x1100000000000000)
	results := SimulateMoves(s)
	is.Equal(len(results), NumActions)
	is.Equal(results[Left], State(0x2000000000000000))
	is.Equal(results[Right], State(0x0002000000000000))
	is.Equal(results[Up], s)
	is.Equal(results[Down], State(0x0000000000001100))

	moves := ValidMoves(s)
	is.Equal(len(moves), 3)
	is.Equal(moves[0], ValidMove{Left, 0x2000000000000000})
	is.Equal(moves[1], ValidMove{Right, 0x0002000000000000})
	is.Equal(moves[2], ValidMove{Down, 0x0000000000001100})
}

func TestSimulateMovesColumns(t *testing.T) {
	is := is.New(t)
	// left column holds 2, 2, 4, 0 from top to bottom
	s := Pack([NumCells]uint8{
		1, 0, 0, 0,
		1, 0, 0, 0,
		2, 0, 0, 0,
		0, 0, 0, 0,
	})
	up := Pack([NumCells]uint8{
		2, 0, 0, 0,
		2, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	})
	down := Pack([NumCells]uint8{
		0, 0, 0, 0,
		0, 0, 0, 0,
		2, 0, 0, 0,
		2, 0, 0, 0,
	})
	results := SimulateMoves(s)
	is.Equal(results[Up], up)
	is.Equal(results[Down], down)
	is.Equal(results[Left], s)
}

func TestSimulateMoveAgreesWithSimulateMoves(t *testing.T) {
	is := is.New(t)
	for _, s := range randomStates(2000) {
		all := SimulateMoves(s)
		for _, a := range Actions {
			one, err := SimulateMove(s, a)
			is.NoErr(err)
			is.Equal(one, all[a])
		}
	}
	_, err := SimulateMove(0, Action(9))
	is.True(errors.Is(err, ErrInvalidAction))
}

func TestValidMovesExcludeUnchanged(t *testing.T) {
	is := is.New(t)
	for _, s := range randomStates(2000) {
		all := SimulateMoves(s)
		moves := ValidMoves(s)
		expected := 0
		for _, next := range all {
			if next != s {
				expected++
			}
		}
		is.Equal(len(moves), expected)
		is.Equal(HasValidMove(s), expected > 0)
		for _, m := range moves {
			is.True(m.State != s)
			is.Equal(all[m.Action], m.State)
		}
	}
}

func TestMovesPreserveScore(t *testing.T) {
	is := is.New(t)
	// a merge turns two 2^e tiles into one 2^(e+1) tile
	for _, s := range randomStates(500) {
		for _, m := range ValidMoves(s) {
			is.Equal(Score(m.State), Score(s))
		}
	}
}

func TestEmptyTiles(t *testing.T) {
	is := is.New(t)
	all := EmptyTiles(0)
	is.Equal(len(all), NumCells)
	for i, p := range all {
		is.Equal(p, Position{Row: i / Dim, Col: i % Dim})
	}
	is.Equal(len(EmptyTiles(^State(0))), 0)

	s := Pack([NumCells]uint8{
		1, 0, 1, 1,
		1, 1, 1, 1,
		1, 1, 1, 1,
		1, 1, 1, 0,
	})
	is.Equal(EmptyTiles(s), []Position{{0, 1}, {3, 3}})
	is.Equal(CountEmpty(s), 2)
}

func TestSetTile(t *testing.T) {
	is := is.New(t)
	s, err := SetTile(0, 1, 2, 5)
	is.NoErr(err)
	is.Equal(s.Tile(1, 2), uint8(5))
	is.Equal(Unpack(s)[6], uint8(5))

	_, err = SetTile(s, 1, 2, 1)
	is.True(errors.Is(err, ErrTileOccupied))

	for _, bad := range [][3]int{{-1, 0, 1}, {4, 0, 1}, {0, -1, 1}, {0, 4, 1}, {0, 0, 16}, {0, 0, -1}} {
		_, err = SetTile(0, bad[0], bad[1], bad[2])
		is.True(errors.Is(err, ErrOutOfRange))
		var verr *ValidationError
		is.True(errors.As(err, &verr))
	}

	// every empty cell accepts every exponent
	for _, p := range EmptyTiles(s) {
		for v := 1; v <= MaxExponent; v++ {
			next, err := SetTile(s, p.Row, p.Col, v)
			is.NoErr(err)
			is.Equal(int(next.Tile(p.Row, p.Col)), v)
		}
	}
}

func TestScoreAndMaxTile(t *testing.T) {
	is := is.New(t)
	is.Equal(Score(0), 0)
	is.Equal(Score(0x1100000000000000), 4)
	is.Equal(Score(0xB000000000000001), 2048+2)
	is.Equal(MaxTile(0xB000000000000001), uint8(11))
	is.Equal(CountEmpty(0xB000000000000001), 14)
	is.Equal(CountEmpty(0), NumCells)
	is.Equal(FaceValue(0), 0)
	is.Equal(FaceValue(3), 8)
}

func TestParseAction(t *testing.T) {
	is := is.New(t)
	for str, a := range map[string]Action{"left": Left, "A": Left, "Right": Right, "d": Right, "w": Up, "UP": Up, "s": Down, "down": Down} {
		got, err := ParseAction(str)
		is.NoErr(err)
		is.Equal(got, a)
	}
	_, err := ParseAction("sideways")
	is.True(errors.Is(err, ErrInvalidAction))
	is.Equal(Down.String(), "DOWN")
}

func TestToDisplayText(t *testing.T) {
	is := is.New(t)
	text := ToDisplayText(0xB000000000000001)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	is.Equal(len(lines), 9)
	is.True(strings.Contains(lines[1], "2048"))
	is.True(strings.Contains(lines[7], "2"))
	is.Equal(ToHexText(0x1234567890ABCDEF), "1 2 3 4\n5 6 7 8\n9 0 A B\nC D E F\n")
}
