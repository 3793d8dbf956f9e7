// Package evaluation scores 2048 boards for the heuristic and search
// players.
package evaluation

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/domino14/game2048/board"
)

// Evaluator assigns a value to a board state; players prefer higher values.
type Evaluator interface {
	Evaluate(s board.State) float64
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(s board.State) float64

func (f EvaluatorFunc) Evaluate(s board.State) float64 {
	return f(s)
}

var (
	// EmptyCount values a state by its number of empty cells.
	EmptyCount = EvaluatorFunc(func(s board.State) float64 {
		return float64(board.CountEmpty(s))
	})
	// TileSum values a state by the sum of its face values.
	TileSum = EvaluatorFunc(func(s board.State) float64 {
		return float64(board.Score(s))
	})
)

// Feature computes one heuristic term from the unpacked cells of a board.
type Feature func(cells *[board.NumCells]uint8) float64

type component struct {
	name    string
	feature Feature
	weight  float64
}

// Combined is a weighted linear combination of features.
type Combined struct {
	weights    Weights
	components []component
}

// NewCombined builds the heuristic for w. The four core features are
// always present; the optional ones only when their weight is non-zero.
func NewCombined(w Weights) *Combined {
	components := []component{
		{FeatureEmptyCells, EmptyCells, w.Empty},
		{FeatureMonotonicity, Monotonicity, w.Monotonicity},
		{FeatureSmoothness, Smoothness, w.Smoothness},
		{FeatureMaxTile, MaxTile, w.MaxTile},
	}
	for _, opt := range []component{
		{FeatureMergeability, Mergeability, w.Mergeability},
		{FeatureCornerValue, CornerValue, w.CornerValue},
		{FeaturePatternMatching, PatternMatching, w.PatternMatching},
	} {
		if opt.weight != 0 {
			components = append(components, opt)
		}
	}
	return &Combined{weights: w, components: components}
}

// FeatureNames lists the features c uses, in evaluation order.
func (c *Combined) FeatureNames() []string {
	return lo.Map(c.components, func(comp component, _ int) string { return comp.name })
}

func (c *Combined) Weights() Weights {
	return c.weights
}

func (c *Combined) Evaluate(s board.State) float64 {
	cells := board.Unpack(s)
	return lo.SumBy(c.components, func(comp component) float64 {
		return comp.weight * comp.feature(&cells)
	})
}

// Breakdown returns the unweighted value of every feature for s.
func (c *Combined) Breakdown(s board.State) map[string]float64 {
	cells := board.Unpack(s)
	return lo.SliceToMap(c.components, func(comp component) (string, float64) {
		return comp.name, comp.feature(&cells)
	})
}

func (c *Combined) String() string {
	return fmt.Sprintf("<Combined %v>", c.weights)
}
