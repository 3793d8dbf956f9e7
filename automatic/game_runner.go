// Package automatic runs computer players through many games of 2048 and
// summarizes how they did.
package automatic

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/game2048/ai/player"
	"github.com/domino14/game2048/board"
	"github.com/domino14/game2048/config"
	"github.com/domino14/game2048/game"
)

const logHeader = "player,game,seed,score,maxtile,moves,millis,state\n"

// GameRunner plays complete games for one player at a time.
type GameRunner struct {
	engine  *board.Engine
	config  *config.Config
	logchan chan string
}

// NewGameRunner instantiates a runner. logchan may be nil.
func NewGameRunner(engine *board.Engine, cfg *config.Config, logchan chan string) *GameRunner {
	return &GameRunner{engine: engine, config: cfg, logchan: logchan}
}

// GameOutcome is one finished game.
type GameOutcome struct {
	game.Result
	Seed    uint64
	Elapsed time.Duration
}

// PlayGame builds the named player and plays one game with the given spawn
// and player seeds.
func (r *GameRunner) PlayGame(playerName string, gameIdx int, gameSeed, playerSeed uint64) (GameOutcome, error) {
	rng := rand.New(rand.NewPCG(playerSeed, gameSeed))
	p, err := NewPlayer(playerName, r.engine, r.config, rng)
	if err != nil {
		return GameOutcome{}, err
	}
	return r.Play(p, gameIdx, gameSeed)
}

// Play plays one game with p to completion.
func (r *GameRunner) Play(p player.Player, gameIdx int, gameSeed uint64) (GameOutcome, error) {
	g := game.NewGame(r.engine, p, game.WithSeed(gameSeed))
	st := time.Now()
	g.Reset()
	res, err := g.PlayToCompletion()
	out := GameOutcome{Result: res, Seed: g.RandSeed(), Elapsed: time.Since(st)}
	if err != nil {
		return out, err
	}
	log.Debug().Str("player", p.Name()).Int("game", gameIdx).Int("score", res.Score).
		Int("moves", res.Moves).Dur("elapsed", out.Elapsed).Msg("game-finished")

	if r.logchan != nil {
		r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v,%v,%v,%016x\n",
			p.Name(),
			gameIdx,
			out.Seed,
			res.Score,
			res.MaxTile(),
			res.Moves,
			out.Elapsed.Milliseconds(),
			uint64(res.State))
	}
	return out, nil
}
