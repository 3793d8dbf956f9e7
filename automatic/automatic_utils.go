package automatic

import (
	"context"
	"errors"
	"expvar"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/game2048/board"
	"github.com/domino14/game2048/config"
)

var (
	GamesCounter *expvar.Int
	IsPlaying    *expvar.Int
)

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

func init() {
	GamesCounter = expvar.NewInt("gamesPlayed")
	IsPlaying = expvar.NewInt("isPlaying")
}

// BenchmarkOptions says what to benchmark.
type BenchmarkOptions struct {
	Players  []string
	NumGames int
	// Seed is the base seed; 0 picks one at random.
	Seed uint64
	// LogWriter, if set, receives one CSV line per game.
	LogWriter io.Writer
}

// Benchmark plays NumGames games for each player, one after the other, and
// summarizes them. The engine is switched to performance mode for the run
// and put back the way it was afterwards. A cancelled context stops the run
// between games and returns the partial report with the context's error.
func Benchmark(ctx context.Context, engine *board.Engine, cfg *config.Config, opts BenchmarkOptions) (*Report, error) {
	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)

	for _, name := range opts.Players {
		// Fail on a bad name before playing anything.
		if _, err := NewPlayer(name, engine, cfg, nil); err != nil {
			return nil, err
		}
	}

	prevMode := engine.SetMode(board.PerformanceMode)
	defer engine.SetMode(prevMode)

	base := BaseSeed(opts.Seed)
	log.Info().Strs("players", opts.Players).Int("games", opts.NumGames).
		Uint64("seed", base).Msg("benchmark-starting")

	var logchan chan string
	writer := errgroup.Group{}
	if opts.LogWriter != nil {
		logchan = make(chan string, 100)
		writer.Go(func() error {
			defer log.Debug().Msg("benchmark-log-writer-exiting")
			if _, err := io.WriteString(opts.LogWriter, logHeader); err != nil {
				// Keep draining so the games don't block.
				for range logchan {
				}
				return err
			}
			var werr error
			for msg := range logchan {
				if werr != nil {
					continue
				}
				_, werr = io.WriteString(opts.LogWriter, msg)
			}
			return werr
		})
	}

	report := &Report{Seed: base, GamesPerPlayer: opts.NumGames}
	runner := NewGameRunner(engine, cfg, logchan)
	tstart := time.Now()
	var runErr error

playerLoop:
	for _, name := range opts.Players {
		sum := newSummary(name)
		for i := 0; i < opts.NumGames; i++ {
			if err := ctx.Err(); err != nil {
				log.Info().Msg("got stop signal, stopping benchmark")
				report.Players = append(report.Players, sum.finish())
				runErr = err
				break playerLoop
			}
			out, err := runner.PlayGame(name, i, GameSeed(base, i), PlayerSeed(base, name, i))
			if err != nil {
				runErr = err
				break playerLoop
			}
			sum.add(out)
			GamesCounter.Add(1)
		}
		engine.ClearCache()
		report.Players = append(report.Players, sum.finish())
	}

	if logchan != nil {
		close(logchan)
	}
	if err := writer.Wait(); err != nil && runErr == nil {
		runErr = err
	}
	report.Elapsed = time.Since(tstart)
	log.Info().Dur("elapsed", report.Elapsed).Msg("benchmark-finished")
	return report, runErr
}

// BenchmarkOptionsFromConfig reads the benchmark keys of cfg.
func BenchmarkOptionsFromConfig(cfg *config.Config) BenchmarkOptions {
	return BenchmarkOptions{
		Players:  cfg.GetStringSlice(config.ConfigBenchmarkPlayers),
		NumGames: cfg.GetInt(config.ConfigBenchmarkGames),
		Seed:     cfg.GetUint64(config.ConfigSeed),
	}
}
