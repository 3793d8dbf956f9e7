package player

import (
	"math/rand/v2"

	"github.com/domino14/game2048/board"
)

// RandomPlayer picks uniformly among the valid moves.
type RandomPlayer struct {
	rng *rand.Rand
}

func NewRandomPlayer(rng *rand.Rand) *RandomPlayer {
	return &RandomPlayer{rng: rng}
}

func (p *RandomPlayer) ChooseAction(moves []board.ValidMove) (board.ValidMove, error) {
	if len(moves) == 0 {
		return board.ValidMove{}, ErrNoValidMoves
	}
	return moves[p.rng.IntN(len(moves))], nil
}

func (p *RandomPlayer) Name() string {
	return RandomPlayerName
}
