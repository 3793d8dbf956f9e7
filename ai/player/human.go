package player

import (
	"fmt"

	"github.com/domino14/game2048/board"
)

// ActionSource supplies the actions a person wants to make, from a
// keyboard, a shell, or anywhere else.
type ActionSource interface {
	NextAction() (board.Action, error)
}

// ActionSourceFunc adapts a function to ActionSource.
type ActionSourceFunc func() (board.Action, error)

func (f ActionSourceFunc) NextAction() (board.Action, error) {
	return f()
}

// HumanPlayer asks its source for an action and accepts it only if it is
// one of the valid moves.
type HumanPlayer struct {
	source ActionSource
}

func NewHumanPlayer(source ActionSource) *HumanPlayer {
	return &HumanPlayer{source: source}
}

func (p *HumanPlayer) ChooseAction(moves []board.ValidMove) (board.ValidMove, error) {
	if len(moves) == 0 {
		return board.ValidMove{}, ErrNoValidMoves
	}
	a, err := p.source.NextAction()
	if err != nil {
		return board.ValidMove{}, err
	}
	for _, m := range moves {
		if m.Action == a {
			return m, nil
		}
	}
	return board.ValidMove{}, fmt.Errorf("%w: %v", ErrIllegalHumanMove, a)
}

func (p *HumanPlayer) Name() string {
	return HumanPlayerName
}
