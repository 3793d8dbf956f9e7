package player

import (
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"github.com/domino14/game2048/board"
)

const (
	DefaultRollouts = 100
	DefaultMaxMoves = 200
)

// MonteCarloPlayer plays each candidate move out many times with random
// moves and picks the one with the best average final tile sum.
type MonteCarloPlayer struct {
	rng      *rand.Rand
	rollouts int
	maxMoves int
}

func NewMonteCarloPlayer(rng *rand.Rand, rollouts, maxMoves int) *MonteCarloPlayer {
	if rollouts <= 0 {
		rollouts = DefaultRollouts
	}
	if maxMoves <= 0 {
		maxMoves = DefaultMaxMoves
	}
	return &MonteCarloPlayer{rng: rng, rollouts: rollouts, maxMoves: maxMoves}
}

// rollout spawns a tile on s and then plays random moves until the game
// ends or maxMoves is reached. Rollout states are not worth caching, so it
// works on the board functions directly.
func (p *MonteCarloPlayer) rollout(s board.State) int {
	s = board.AddRandomTile(s, board.EmptyTiles(s), p.rng)
	for i := 0; i < p.maxMoves; i++ {
		moves := board.ValidMoves(s)
		if len(moves) == 0 {
			break
		}
		s = moves[p.rng.IntN(len(moves))].State
		s = board.AddRandomTile(s, board.EmptyTiles(s), p.rng)
	}
	return board.Score(s)
}

func (p *MonteCarloPlayer) ChooseAction(moves []board.ValidMove) (board.ValidMove, error) {
	if len(moves) == 0 {
		return board.ValidMove{}, ErrNoValidMoves
	}
	topValue := -Infinity
	var topMove board.ValidMove
	for _, m := range moves {
		total := 0
		for i := 0; i < p.rollouts; i++ {
			total += p.rollout(m.State)
		}
		avg := float64(total) / float64(p.rollouts)
		log.Trace().Str("action", m.Action.String()).Float64("avg", avg).Msg("rollouts-done")
		if avg > topValue {
			topValue = avg
			topMove = m
		}
	}
	return topMove, nil
}

func (p *MonteCarloPlayer) Name() string {
	return MonteCarloPlayerName
}

func (p *MonteCarloPlayer) String() string {
	return fmt.Sprintf("<MonteCarloPlayer rollouts=%d maxMoves=%d>", p.rollouts, p.maxMoves)
}
