package automatic

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/game2048/ai/player"
	"github.com/domino14/game2048/board"
	"github.com/domino14/game2048/config"
	"github.com/domino14/game2048/expectimax"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func newEngine() *board.Engine {
	return board.NewEngine(board.NewEmptyTileCache(1 << 14))
}

func TestNewPlayer(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigExpectimaxDepth, 2)
	rng := rand.New(rand.NewPCG(1, 1))
	for _, name := range PlayerNames {
		p, err := NewPlayer(name, newEngine(), cfg, rng)
		is.NoErr(err)
		is.Equal(p.Name(), name)
	}
	p, err := NewPlayer("EXPECTIMAX", newEngine(), cfg, rng)
	is.NoErr(err)
	is.Equal(p.(*expectimax.Player).Depth(), 2)

	_, err = NewPlayer("deepblue", newEngine(), cfg, rng)
	is.True(errors.Is(err, ErrUnknownPlayer))
}

func TestSeeds(t *testing.T) {
	is := is.New(t)
	is.Equal(BaseSeed(5), uint64(5))
	is.True(BaseSeed(0) != 0)
	is.Equal(GameSeed(10, 3), GameSeed(10, 3))
	is.True(GameSeed(10, 3) != GameSeed(10, 4))
	is.True(PlayerSeed(10, "random", 0) != PlayerSeed(10, "minmax", 0))
}

func TestBenchmark(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	engine := newEngine()
	var logbuf bytes.Buffer
	report, err := Benchmark(context.Background(), engine, cfg, BenchmarkOptions{
		Players:   []string{player.RandomPlayerName, player.MaxEmptyCellsPlayerName},
		NumGames:  5,
		Seed:      77,
		LogWriter: &logbuf,
	})
	is.NoErr(err)
	is.Equal(report.Seed, uint64(77))
	is.Equal(len(report.Players), 2)
	for _, p := range report.Players {
		is.Equal(p.Games, 5)
		is.True(p.AvgScore > 0)
		is.True(float64(p.MaxScore) >= p.AvgScore)
		is.True(float64(p.MinScore) <= p.MedianScore)
		is.Equal(board.Score(p.Best()), p.MaxScore)
		is.Equal(len(p.Scores()), 5)
		total := 0
		for _, c := range p.HighestTiles {
			total += c
		}
		is.Equal(total, 5)
	}
	// Engine mode is restored.
	is.Equal(engine.Mode(), board.ValidatingMode)

	lines := strings.Split(strings.TrimSpace(logbuf.String()), "\n")
	is.Equal(len(lines), 11)
	is.Equal(lines[0]+"\n", logHeader)
	is.True(strings.HasPrefix(lines[1], "random,0,"))

	text := report.String()
	is.True(strings.Contains(text, "maxemptycells"))
	is.True(strings.Contains(text, "best board"))

	var yamlbuf bytes.Buffer
	is.NoErr(report.WriteYAML(&yamlbuf))
	is.True(strings.Contains(yamlbuf.String(), "games_per_player: 5"))
}

func TestBenchmarkIsReproducible(t *testing.T) {
	cfg := config.DefaultConfig()
	opts := BenchmarkOptions{Players: []string{player.RandomPlayerName}, NumGames: 3, Seed: 12}
	a, err := Benchmark(context.Background(), newEngine(), cfg, opts)
	assert.NoError(t, err)
	b, err := Benchmark(context.Background(), newEngine(), cfg, opts)
	assert.NoError(t, err)
	pa, ok := a.Player(player.RandomPlayerName)
	assert.True(t, ok)
	pb, _ := b.Player(player.RandomPlayerName)
	assert.Equal(t, pa.AvgScore, pb.AvgScore)
	assert.Equal(t, pa.BestState, pb.BestState)
}

func TestBenchmarkUnknownPlayer(t *testing.T) {
	_, err := Benchmark(context.Background(), newEngine(), config.DefaultConfig(),
		BenchmarkOptions{Players: []string{"nobody"}, NumGames: 1})
	assert.ErrorIs(t, err, ErrUnknownPlayer)
	assert.Equal(t, int64(0), IsPlaying.Value())
}

func TestBenchmarkCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	engine := newEngine()
	report, err := Benchmark(ctx, engine, config.DefaultConfig(),
		BenchmarkOptions{Players: []string{player.MinMaxPlayerName}, NumGames: 10})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, report.Players, 1)
	assert.Equal(t, 0, report.Players[0].Games)
	assert.Equal(t, board.ValidatingMode, engine.Mode())
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigBenchmarkGames, 7)
	opts := BenchmarkOptionsFromConfig(cfg)
	assert.Equal(t, 7, opts.NumGames)
	assert.Equal(t, []string{"random", "maxemptycells", "minmax", "heuristic"}, opts.Players)
}
