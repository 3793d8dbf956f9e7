package game

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/domino14/game2048/board"
)

// Observer watches a game. It is told about the initial board once per
// Reset and about every board after a move.
type Observer interface {
	OnInitialBoard(state board.State, score int)
	OnUpdate(state board.State, moveCount int, score int)
}

type NopObserver struct{}

func (NopObserver) OnInitialBoard(board.State, int) {}
func (NopObserver) OnUpdate(board.State, int, int) {}

// LogObserver writes every board to a zerolog logger at debug level.
type LogObserver struct {
	Logger zerolog.Logger
}

func (o LogObserver) OnInitialBoard(state board.State, score int) {
	o.Logger.Debug().Str("state", fmt.Sprintf("%016x", uint64(state))).
		Int("score", score).Msg("initial-board")
}

func (o LogObserver) OnUpdate(state board.State, moveCount int, score int) {
	o.Logger.Debug().Str("state", fmt.Sprintf("%016x", uint64(state))).
		Int("move", moveCount).Int("score", score).Msg("board-update")
}
