package automatic

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"github.com/domino14/game2048/ai/player"
	"github.com/domino14/game2048/board"
	"github.com/domino14/game2048/config"
	"github.com/domino14/game2048/evaluation"
	"github.com/domino14/game2048/stats"
)

const (
	mutationSigma  = 0.3
	toggleChance   = 0.15
	maxInitialOpt  = 200.0
	defaultTuneGen = 10
)

// TuneOptions says how long to search for heuristic weights.
type TuneOptions struct {
	Generations int
	// Population is the number of mutated candidates tried per generation.
	Population int
	// GamesPerCandidate games are played by every candidate, all with the
	// same spawn seeds.
	GamesPerCandidate int
	// Seed is the base seed; 0 picks one at random.
	Seed uint64
}

// TuneResult is the best set of weights found.
type TuneResult struct {
	Weights   evaluation.Weights
	MeanScore float64
	// Start is the mean score of the weights the search started from.
	Start       float64
	Generations int
	Seed        uint64
}

// Tune hill-climbs the weights of the one-ply heuristic player, starting
// from the configured weights. Each generation mutates the best weights so
// far and keeps a candidate only if its mean score over the shared games
// is higher. The optional features can be switched on or off by a
// mutation. A cancelled context returns the best result so far with the
// context's error.
func Tune(ctx context.Context, engine *board.Engine, cfg *config.Config, opts TuneOptions) (TuneResult, error) {
	if IsPlaying.Value() > 0 {
		return TuneResult{}, ErrAlreadyPlaying
	}
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)

	w, err := cfg.Weights()
	if err != nil {
		return TuneResult{}, err
	}
	if opts.Generations <= 0 {
		opts.Generations = defaultTuneGen
	}
	opts.Population = max(opts.Population, 1)
	opts.GamesPerCandidate = max(opts.GamesPerCandidate, 1)

	prevMode := engine.SetMode(board.PerformanceMode)
	defer engine.SetMode(prevMode)

	base := BaseSeed(opts.Seed)
	rng := rand.New(rand.NewPCG(base, ^base))
	runner := NewGameRunner(engine, cfg, nil)

	log.Info().Int("generations", opts.Generations).Int("population", opts.Population).
		Int("games", opts.GamesPerCandidate).Uint64("seed", base).Stringer("weights", w).
		Msg("tune-starting")

	best := TuneResult{Weights: w, Seed: base}
	best.MeanScore, err = meanScore(ctx, runner, w, base, opts.GamesPerCandidate)
	if err != nil {
		return best, err
	}
	best.Start = best.MeanScore

	for gen := 0; gen < opts.Generations; gen++ {
		for i := 0; i < opts.Population; i++ {
			cand := mutateWeights(best.Weights, rng)
			score, err := meanScore(ctx, runner, cand, base, opts.GamesPerCandidate)
			if err != nil {
				return best, err
			}
			if score > best.MeanScore {
				log.Debug().Int("generation", gen).Float64("score", score).
					Stringer("weights", cand).Msg("tune-improved")
				best.Weights, best.MeanScore = cand, score
			}
		}
		best.Generations = gen + 1
		log.Info().Int("generation", gen).Float64("best", best.MeanScore).
			Stringer("weights", best.Weights).Msg("tune-generation")
	}
	return best, nil
}

func meanScore(ctx context.Context, runner *GameRunner, w evaluation.Weights, base uint64, games int) (float64, error) {
	var st stats.Statistic
	for i := 0; i < games; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		out, err := runner.Play(player.NewHeuristicPlayer(w), i, GameSeed(base, i))
		if err != nil {
			return 0, err
		}
		st.Push(float64(out.Score))
		GamesCounter.Add(1)
	}
	return st.Mean(), nil
}

// mutateWeights scales each core weight by a log-normal factor. An
// optional weight that is off is switched on now and then; one that is on
// is scaled like the others or switched off.
func mutateWeights(w evaluation.Weights, rng *rand.Rand) evaluation.Weights {
	scale := func(v float64) float64 {
		return v * math.Exp(rng.NormFloat64()*mutationSigma)
	}
	for _, v := range []*float64{&w.Empty, &w.Monotonicity, &w.Smoothness, &w.MaxTile} {
		*v = scale(*v)
	}
	for _, v := range []*float64{&w.Mergeability, &w.CornerValue, &w.PatternMatching} {
		switch {
		case *v == 0 && rng.Float64() < toggleChance:
			*v = 1 + rng.Float64()*(maxInitialOpt-1)
		case *v != 0 && rng.Float64() < toggleChance:
			*v = 0
		case *v != 0:
			*v = scale(*v)
		}
	}
	return w
}
