package expectimax

import (
	"errors"
	"math/rand/v2"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/game2048/ai/player"
	"github.com/domino14/game2048/board"
	"github.com/domino14/game2048/evaluation"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func newEngine() *board.Engine {
	return board.NewEngine(board.NewEmptyTileCache(1 << 14))
}

func TestDepthZeroMatchesHeuristic(t *testing.T) {
	is := is.New(t)
	w := evaluation.DefaultWeights()
	e := newEngine()
	xp := NewPlayer(e, evaluation.NewCombined(w), 0)
	hp := player.NewHeuristicPlayer(w)
	rng := rand.New(rand.NewPCG(21, 12))
	checked := 0
	for checked < 300 {
		s := board.State(rng.Uint64() & 0x3333333333333333)
		moves := e.ValidMoves(s)
		if len(moves) == 0 {
			continue
		}
		a, err := xp.ChooseAction(moves)
		is.NoErr(err)
		b, err := hp.ChooseAction(moves)
		is.NoErr(err)
		is.Equal(a, b)
		checked++
	}
}

func TestChoosesValidMove(t *testing.T) {
	is := is.New(t)
	e := newEngine()
	xp := NewPlayer(e, evaluation.NewCombined(evaluation.DefaultWeights()), 2)
	s := board.State(0x1210230012000100)
	moves := e.ValidMoves(s)
	m, err := xp.ChooseAction(moves)
	is.NoErr(err)
	is.True(player.Contains(moves, m))
	st := xp.Stats()
	is.True(st.Nodes > 0)
	is.True(st.Leaves > 0)
}

func TestMemoIsUsedWithinDecision(t *testing.T) {
	is := is.New(t)
	e := newEngine()
	xp := NewPlayer(e, evaluation.EmptyCount, 4)
	s := board.State(0x1100000000000000)
	moves := e.ValidMoves(s)
	_, err := xp.ChooseAction(moves)
	is.NoErr(err)
	first := xp.Stats()
	is.True(first.MemoHits > 0)

	// The memo is rebuilt for every decision, so a repeat does the same work.
	_, err = xp.ChooseAction(moves)
	is.NoErr(err)
	is.Equal(xp.Stats().Nodes, first.Nodes)
	is.Equal(xp.Stats().MemoHits, first.MemoHits)
}

func TestChanceLayerExpectation(t *testing.T) {
	is := is.New(t)
	e := newEngine()
	// A chance node at depth 1 spawns once and evaluates the leaves, so its
	// value is the expectation of the leaf evaluation over every spawn.
	sum := evaluation.TileSum
	xp := NewPlayer(e, sum, 2)
	s := board.State(0x1212212112122120)
	v := xp.search(s, 1, chanceLayer)
	// One empty cell: 0.9 * (score+2) + 0.1 * (score+4).
	base := float64(board.Score(s))
	want := 0.9*(base+2) + 0.1*(base+4)
	is.True(v > want-1e-9 && v < want+1e-9)
}

func TestFullBoardChanceIsLeaf(t *testing.T) {
	is := is.New(t)
	xp := NewPlayer(newEngine(), evaluation.TileSum, 3)
	s := board.State(0x1212212112122121)
	is.Equal(xp.search(s, 2, chanceLayer), float64(board.Score(s)))
	is.Equal(xp.search(s, 2, playerLayer), float64(board.Score(s)))
}

func TestNoMoves(t *testing.T) {
	is := is.New(t)
	xp := NewPlayer(newEngine(), evaluation.TileSum, DefaultDepth)
	_, err := xp.ChooseAction(nil)
	is.True(errors.Is(err, player.ErrNoValidMoves))
	is.Equal(xp.Name(), player.ExpectimaxPlayerName)
	is.Equal(NewPlayer(newEngine(), evaluation.TileSum, -3).Depth(), 0)
}
