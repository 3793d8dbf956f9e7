// Package expectimax implements a depth-limited expectimax search player.
// Player layers take the best move; chance layers average over every
// possible tile spawn, weighted by how likely it is.
package expectimax

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/game2048/ai/player"
	"github.com/domino14/game2048/board"
	"github.com/domino14/game2048/evaluation"
)

const DefaultDepth = 8

const (
	twoProbability  = 1 - board.FourProbability
	fourProbability = board.FourProbability
)

type layer uint8

const (
	playerLayer layer = iota
	chanceLayer
)

type memoKey struct {
	state board.State
	depth int
	layer layer
}

// SearchStats describes the work done for the most recent decision.
type SearchStats struct {
	Nodes    uint64
	MemoHits uint64
	Leaves   uint64
	Elapsed  time.Duration
}

// Player chooses moves by expectimax search. It is not safe for concurrent
// use; the memo table is rebuilt for every decision.
type Player struct {
	engine *board.Engine
	eval   evaluation.Evaluator
	depth  int

	memo  map[memoKey]float64
	stats SearchStats
}

// NewPlayer creates an expectimax player that searches depth plies (player
// and chance layers both count) and scores the leaves with eval.
func NewPlayer(engine *board.Engine, eval evaluation.Evaluator, depth int) *Player {
	if depth < 0 {
		depth = 0
	}
	return &Player{
		engine: engine,
		eval:   eval,
		depth:  depth,
		memo:   make(map[memoKey]float64),
	}
}

func (p *Player) Name() string {
	return player.ExpectimaxPlayerName
}

func (p *Player) Depth() int {
	return p.depth
}

// Stats returns the search statistics of the last ChooseAction call.
func (p *Player) Stats() SearchStats {
	return p.stats
}

func (p *Player) String() string {
	return fmt.Sprintf("<expectimax depth=%d>", p.depth)
}

func (p *Player) ChooseAction(moves []board.ValidMove) (board.ValidMove, error) {
	if len(moves) == 0 {
		return board.ValidMove{}, player.ErrNoValidMoves
	}
	clear(p.memo)
	p.stats = SearchStats{}
	st := time.Now()

	topValue := -player.Infinity
	var topMove board.ValidMove
	for _, m := range moves {
		v := p.search(m.State, p.depth-1, chanceLayer)
		if v > topValue {
			topValue = v
			topMove = m
		}
	}
	p.stats.Elapsed = time.Since(st)
	log.Debug().
		Uint64("nodes", p.stats.Nodes).
		Uint64("memo-hits", p.stats.MemoHits).
		Uint64("leaves", p.stats.Leaves).
		Int("memo-size", len(p.memo)).
		Dur("elapsed", p.stats.Elapsed).
		Str("action", topMove.Action.String()).
		Float64("value", topValue).
		Msg("expectimax-search")
	return topMove, nil
}

func (p *Player) leaf(s board.State) float64 {
	p.stats.Leaves++
	return p.eval.Evaluate(s)
}

func (p *Player) search(s board.State, depth int, l layer) float64 {
	p.stats.Nodes++
	if depth <= 0 {
		return p.leaf(s)
	}
	key := memoKey{state: s, depth: depth, layer: l}
	if v, ok := p.memo[key]; ok {
		p.stats.MemoHits++
		return v
	}
	var v float64
	if l == playerLayer {
		v = p.maxNode(s, depth)
	} else {
		v = p.chanceNode(s, depth)
	}
	p.memo[key] = v
	return v
}

func (p *Player) maxNode(s board.State, depth int) float64 {
	moves := p.engine.ValidMoves(s)
	if len(moves) == 0 {
		return p.leaf(s)
	}
	best := -player.Infinity
	for _, m := range moves {
		if v := p.search(m.State, depth-1, chanceLayer); v > best {
			best = v
		}
	}
	return best
}

func (p *Player) chanceNode(s board.State, depth int) float64 {
	empties := p.engine.EmptyTiles(s)
	if len(empties) == 0 {
		return p.leaf(s)
	}
	cellWeight := 1 / float64(len(empties))
	expected := 0.0
	for _, pos := range empties {
		two := board.PlaceTile(s, pos.Row, pos.Col, 1)
		four := board.PlaceTile(s, pos.Row, pos.Col, 2)
		expected += cellWeight * twoProbability * p.search(two, depth-1, playerLayer)
		expected += cellWeight * fourProbability * p.search(four, depth-1, playerLayer)
	}
	return expected
}
