package automatic

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/domino14/game2048/board"
	"github.com/domino14/game2048/stats"
)

const (
	histogramBins  = 15
	histogramWidth = 50
)

// PlayerSummary aggregates every game one player played in a benchmark.
type PlayerSummary struct {
	Player       string        `yaml:"player"`
	Games        int           `yaml:"games"`
	AvgScore     float64       `yaml:"avg_score"`
	StdevScore   float64       `yaml:"stdev_score"`
	CI95         float64       `yaml:"ci95"`
	MedianScore  float64       `yaml:"median_score"`
	MinScore     int           `yaml:"min_score"`
	MaxScore     int           `yaml:"max_score"`
	BestState    string        `yaml:"best_state"`
	AvgMoves     float64       `yaml:"avg_moves"`
	AvgTime      time.Duration `yaml:"avg_time"`
	HighestTiles map[int]int   `yaml:"highest_tiles"`

	scores []float64
	best   board.State
}

type summaryBuilder struct {
	name   string
	scores stats.Sample
	moves  stats.Statistic
	millis stats.Statistic
	best   GameOutcome
	tiles  map[int]int
}

func newSummary(name string) *summaryBuilder {
	return &summaryBuilder{name: name, tiles: make(map[int]int)}
}

func (b *summaryBuilder) add(o GameOutcome) {
	if b.scores.Iterations() == 0 || o.Score > b.best.Score {
		b.best = o
	}
	b.scores.Push(float64(o.Score))
	b.moves.Push(float64(o.Moves))
	b.millis.Push(float64(o.Elapsed.Microseconds()) / 1000)
	b.tiles[o.MaxTile()]++
}

func (b *summaryBuilder) finish() PlayerSummary {
	return PlayerSummary{
		Player:       b.name,
		Games:        b.scores.Iterations(),
		AvgScore:     b.scores.Mean(),
		StdevScore:   b.scores.Stdev(),
		CI95:         b.scores.ConfidenceInterval(95),
		MedianScore:  b.scores.Median(),
		MinScore:     int(b.scores.Min()),
		MaxScore:     int(b.scores.Max()),
		BestState:    fmt.Sprintf("%016x", uint64(b.best.State)),
		AvgMoves:     b.moves.Mean(),
		AvgTime:      time.Duration(b.millis.Mean() * float64(time.Millisecond)),
		HighestTiles: b.tiles,
		scores:       b.scores.Values(),
		best:         b.best.State,
	}
}

// Scores returns the final score of every game, in no particular order.
func (s PlayerSummary) Scores() []float64 {
	return s.scores
}

// Best returns the final board of the highest scoring game.
func (s PlayerSummary) Best() board.State {
	return s.best
}

// Report is the outcome of a benchmark.
type Report struct {
	Seed           uint64          `yaml:"seed"`
	GamesPerPlayer int             `yaml:"games_per_player"`
	Elapsed        time.Duration   `yaml:"elapsed"`
	Players        []PlayerSummary `yaml:"players"`
}

func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// Player returns the summary for a player by name.
func (r *Report) Player(name string) (PlayerSummary, bool) {
	return lo.Find(r.Players, func(s PlayerSummary) bool { return s.Player == name })
}

// String renders the report as text, with a score histogram per player.
func (r *Report) String() string {
	var ss strings.Builder
	fmt.Fprintf(&ss, "Benchmark: %d games per player, seed %d, took %v\n\n",
		r.GamesPerPlayer, r.Seed, r.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(&ss, "%-14s%8s%10s%10s%10s%10s%10s%12s\n",
		"Player", "Games", "Avg", "Stdev", "Median", "Max", "Moves", "Time/game")
	for _, p := range r.Players {
		fmt.Fprintf(&ss, "%-14s%8d%10.1f%10.1f%10.1f%10d%10.1f%12v\n",
			p.Player, p.Games, p.AvgScore, p.StdevScore, p.MedianScore,
			p.MaxScore, p.AvgMoves, p.AvgTime.Round(time.Microsecond))
	}
	for _, p := range r.Players {
		if p.Games == 0 {
			continue
		}
		fmt.Fprintf(&ss, "\n%s: avg %.1f ± %.1f (95%%)\n", p.Player, p.AvgScore, p.CI95)
		tiles := lo.Keys(p.HighestTiles)
		slices.Sort(tiles)
		for _, t := range tiles {
			fmt.Fprintf(&ss, "  reached %5d: %d\n", t, p.HighestTiles[t])
		}
		ss.WriteString("  best board:\n")
		ss.WriteString(board.ToDisplayText(p.best))
		if len(p.scores) > 1 && p.MinScore != p.MaxScore {
			ss.WriteString("  scores:\n")
			histogram.Fprint(&ss, histogram.Hist(histogramBins, p.scores), histogram.Linear(histogramWidth))
		}
	}
	return ss.String()
}
