// Package player contains the automatic (and one not so automatic) players
// of 2048. Every player picks one move out of the valid moves the game
// hands it.
package player

import (
	"errors"
	"fmt"

	"github.com/domino14/game2048/board"
	"github.com/domino14/game2048/evaluation"
)

const (
	// Infinity is a shockingly large number.
	Infinity = 1e300
)

const (
	RandomPlayerName        = "random"
	MaxEmptyCellsPlayerName = "maxemptycells"
	MinMaxPlayerName        = "minmax"
	HeuristicPlayerName     = "heuristic"
	MonteCarloPlayerName    = "montecarlo"
	HumanPlayerName         = "human"
	ExpectimaxPlayerName    = "expectimax"
)

var (
	ErrNoValidMoves     = errors.New("no valid moves to choose from")
	ErrIllegalHumanMove = errors.New("that move is not allowed right now")
)

// Player chooses a move. moves is never empty when the game calls it, and
// the returned move must be one of them.
type Player interface {
	ChooseAction(moves []board.ValidMove) (board.ValidMove, error)
	Name() string
}

// BestMove returns the move whose resulting state scores highest. Ties go
// to the earliest move.
func BestMove(moves []board.ValidMove, eval evaluation.Evaluator) (board.ValidMove, float64) {
	topValue := -Infinity
	var topMove board.ValidMove
	for _, m := range moves {
		if v := eval.Evaluate(m.State); v > topValue {
			topValue = v
			topMove = m
		}
	}
	return topMove, topValue
}

// Contains reports whether choice is exactly one of moves.
func Contains(moves []board.ValidMove, choice board.ValidMove) bool {
	for _, m := range moves {
		if m == choice {
			return true
		}
	}
	return false
}

// EvaluatorPlayer plays greedily, one ply deep, by whatever evaluator it is
// given.
type EvaluatorPlayer struct {
	name string
	eval evaluation.Evaluator
}

func NewEvaluatorPlayer(name string, eval evaluation.Evaluator) *EvaluatorPlayer {
	return &EvaluatorPlayer{name: name, eval: eval}
}

// NewMaxEmptyCellsPlayer keeps as many cells open as it can.
func NewMaxEmptyCellsPlayer() *EvaluatorPlayer {
	return NewEvaluatorPlayer(MaxEmptyCellsPlayerName, evaluation.EmptyCount)
}

// NewMinMaxPlayer maximizes the sum of the tiles after its move. The name
// is historical; there is no minimizing involved.
func NewMinMaxPlayer() *EvaluatorPlayer {
	return NewEvaluatorPlayer(MinMaxPlayerName, evaluation.TileSum)
}

// NewHeuristicPlayer picks the move with the best weighted heuristic score.
func NewHeuristicPlayer(w evaluation.Weights) *EvaluatorPlayer {
	return NewEvaluatorPlayer(HeuristicPlayerName, evaluation.NewCombined(w))
}

func (p *EvaluatorPlayer) ChooseAction(moves []board.ValidMove) (board.ValidMove, error) {
	if len(moves) == 0 {
		return board.ValidMove{}, ErrNoValidMoves
	}
	m, _ := BestMove(moves, p.eval)
	return m, nil
}

func (p *EvaluatorPlayer) Evaluator() evaluation.Evaluator {
	return p.eval
}

func (p *EvaluatorPlayer) Name() string {
	return p.name
}

func (p *EvaluatorPlayer) String() string {
	return fmt.Sprintf("<EvaluatorPlayer %s>", p.name)
}
