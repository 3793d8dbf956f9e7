// Package game runs a single game of 2048: it owns the current board, spawns
// random tiles, and asks a Player for every move until no move is left.
// A Game doesn't care how it is played; AI players, human players, etc. are
// handed to it from outside.
package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/game2048/ai/player"
	"github.com/domino14/game2048/board"
)

// PlayState is where a game is in its lifecycle.
type PlayState int

const (
	Uninitialized PlayState = iota
	Playing
	GameOver
)

func (p PlayState) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Playing:
		return "playing"
	case GameOver:
		return "game-over"
	}
	return fmt.Sprintf("PlayState(%d)", int(p))
}

var ErrIllegalPlayerChoice = errors.New("player chose a move that is not among the valid moves")

// Result is what's left once a game is over.
type Result struct {
	Score int         `json:"score" yaml:"score"`
	State board.State `json:"state" yaml:"state"`
	Moves int         `json:"moves" yaml:"moves"`
}

func (r Result) MaxTile() int {
	return board.FaceValue(board.MaxTile(r.State))
}

func seededRandSource(seed uint64) (uint64, *rand.Rand) {
	if seed == 0 {
		seed = frand.Uint64n(^uint64(0)) + 1
	}
	return seed, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Game is the internal game structure.
type Game struct {
	engine   *board.Engine
	player   player.Player
	observer Observer

	state     board.State
	initial   board.State
	moveCount int
	playing   PlayState

	randSeed   uint64
	randSource *rand.Rand
}

// Option configures a Game.
type Option func(*Game)

// WithSeed seeds the tile spawner. A zero seed picks a random one.
func WithSeed(seed uint64) Option {
	return func(g *Game) {
		g.randSeed, g.randSource = seededRandSource(seed)
	}
}

// WithRNG hands the game an existing generator.
func WithRNG(rng *rand.Rand) Option {
	return func(g *Game) {
		g.randSeed = 0
		g.randSource = rng
	}
}

func WithObserver(o Observer) Option {
	return func(g *Game) {
		g.observer = o
	}
}

// WithInitialState starts every Reset from s instead of an empty board.
// Starting tiles are still added until at most board.SpawnThreshold cells
// are empty.
func WithInitialState(s board.State) Option {
	return func(g *Game) {
		g.initial = s
	}
}

// NewGame creates a game for p on engine. Call Reset before stepping.
func NewGame(engine *board.Engine, p player.Player, opts ...Option) *Game {
	g := &Game{
		engine:   engine,
		player:   p,
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.randSource == nil {
		g.randSeed, g.randSource = seededRandSource(0)
	}
	return g
}

// Reset puts the game back at the start: the initial board plus random
// tiles until at most board.SpawnThreshold cells are empty.
func (g *Game) Reset() {
	g.state = g.initial
	g.moveCount = 0
	for board.CountEmpty(g.state) > board.SpawnThreshold {
		g.AddRandomTile()
	}
	g.playing = Playing
	log.Debug().Str("state", fmt.Sprintf("%016x", uint64(g.state))).
		Str("player", g.player.Name()).Msg("game-reset")
	g.observer.OnInitialBoard(g.state, board.Score(g.state))
}

// AddRandomTile spawns a 2 (90%) or a 4 (10%) on a random empty cell. It
// does nothing on a full board.
func (g *Game) AddRandomTile() {
	g.state = g.engine.AddRandomTile(g.state, g.randSource)
}

// Step plays one move. It returns false, with no error, once the game is
// over. Errors from the player are returned as is and leave the board
// untouched.
func (g *Game) Step() (bool, error) {
	if g.playing == Uninitialized {
		g.Reset()
	}
	if g.playing == GameOver {
		return false, nil
	}
	moves := g.engine.ValidMoves(g.state)
	if len(moves) == 0 {
		g.playing = GameOver
		log.Debug().Int("score", board.Score(g.state)).Int("moves", g.moveCount).
			Str("player", g.player.Name()).Msg("game-over")
		return false, nil
	}
	choice, err := g.player.ChooseAction(moves)
	if err != nil {
		return false, err
	}
	if !player.Contains(moves, choice) {
		return false, fmt.Errorf("%w: %s chose %v", ErrIllegalPlayerChoice, g.player.Name(), choice)
	}
	g.state = choice.State
	g.AddRandomTile()
	g.moveCount++
	log.Trace().Str("action", choice.Action.String()).Int("move", g.moveCount).Msg("moved")
	g.observer.OnUpdate(g.state, g.moveCount, board.Score(g.state))
	return true, nil
}

// PlayToCompletion steps until the game is over.
func (g *Game) PlayToCompletion() (Result, error) {
	for {
		moved, err := g.Step()
		if err != nil {
			return g.Result(), err
		}
		if !moved {
			return g.Result(), nil
		}
	}
}

func (g *Game) Result() Result {
	return Result{Score: board.Score(g.state), State: g.state, Moves: g.moveCount}
}

func (g *Game) State() board.State {
	return g.state
}

func (g *Game) MoveCount() int {
	return g.moveCount
}

func (g *Game) Score() int {
	return board.Score(g.state)
}

func (g *Game) Player() player.Player {
	return g.player
}

// SetPlayer swaps who makes the next move.
func (g *Game) SetPlayer(p player.Player) {
	g.player = p
}

func (g *Game) Playing() PlayState {
	return g.playing
}

func (g *Game) Engine() *board.Engine {
	return g.engine
}

// RandSeed is the seed of the tile spawner, or 0 if the generator was
// passed in with WithRNG.
func (g *Game) RandSeed() uint64 {
	return g.randSeed
}

func (g *Game) ValidMoves() []board.ValidMove {
	return g.engine.ValidMoves(g.state)
}

func (g *Game) String() string {
	return fmt.Sprintf("%s\nscore: %d  moves: %d  player: %s  state: %s\n",
		board.ToDisplayText(g.state), board.Score(g.state), g.moveCount,
		g.player.Name(), g.playing)
}
