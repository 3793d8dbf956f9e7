package automatic

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/domino14/game2048/ai/player"
	"github.com/domino14/game2048/board"
	"github.com/domino14/game2048/config"
	"github.com/domino14/game2048/evaluation"
	"github.com/domino14/game2048/expectimax"
)

var ErrUnknownPlayer = errors.New("unknown player")

// PlayerNames are the players NewPlayer can build, in the order the
// benchmark reports them.
var PlayerNames = []string{
	player.RandomPlayerName,
	player.MaxEmptyCellsPlayerName,
	player.MinMaxPlayerName,
	player.HeuristicPlayerName,
	player.MonteCarloPlayerName,
	player.ExpectimaxPlayerName,
}

// NewPlayer builds an automatic player by name. rng feeds the players that
// need randomness. Human players are built by whoever owns the input.
func NewPlayer(name string, engine *board.Engine, cfg *config.Config, rng *rand.Rand) (player.Player, error) {
	switch strings.ToLower(name) {
	case player.RandomPlayerName:
		return player.NewRandomPlayer(rng), nil
	case player.MaxEmptyCellsPlayerName:
		return player.NewMaxEmptyCellsPlayer(), nil
	case player.MinMaxPlayerName:
		return player.NewMinMaxPlayer(), nil
	case player.HeuristicPlayerName:
		w, err := cfg.Weights()
		if err != nil {
			return nil, err
		}
		return player.NewHeuristicPlayer(w), nil
	case player.MonteCarloPlayerName:
		return player.NewMonteCarloPlayer(rng,
			cfg.GetInt(config.ConfigMonteCarloRollouts),
			cfg.GetInt(config.ConfigMonteCarloMaxMoves)), nil
	case player.ExpectimaxPlayerName:
		w, err := cfg.Weights()
		if err != nil {
			return nil, err
		}
		return expectimax.NewPlayer(engine, evaluation.NewCombined(w),
			cfg.GetInt(config.ConfigExpectimaxDepth)), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownPlayer, name)
}
