package evaluation

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/game2048/board"
)

func TestFeaturesSingleTile(t *testing.T) {
	is := is.New(t)
	cells := board.Unpack(0x1000000000000000)
	is.Equal(EmptyCells(&cells), 15.0)
	is.Equal(Monotonicity(&cells), -2.0)
	is.Equal(Smoothness(&cells), 0.0)
	is.Equal(MaxTile(&cells), 1.0)

	c := NewCombined(DefaultWeights())
	is.Equal(c.Evaluate(0x1000000000000000), 15*270.0-2*470.0+100.0)
}

func TestFeaturesPair(t *testing.T) {
	is := is.New(t)
	s := board.State(0x1100000000000000)
	c := NewCombined(DefaultWeights())
	is.Equal(c.Breakdown(s), map[string]float64{
		FeatureEmptyCells:   14,
		FeatureMonotonicity: -3,
		FeatureSmoothness:   0,
		FeatureMaxTile:      1,
	})
	is.Equal(c.Evaluate(s), 14*270.0-3*470.0+100.0)
}

func TestSmoothnessUsesFaceValues(t *testing.T) {
	is := is.New(t)
	// 2, 8 in the top row and 32 below the 2; the empty cells don't count
	cells := board.Unpack(board.Pack([board.NumCells]uint8{
		1, 3, 0, 0,
		5, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}))
	is.Equal(Smoothness(&cells), -float64((8-2)+(32-2)))
	// exponent differences: row0 2+3, row1 5, col0 4+5, col1 3
	is.Equal(Monotonicity(&cells), -22.0)
}

func TestFullBoardMonotonicity(t *testing.T) {
	is := is.New(t)
	cells := board.Unpack(0x1111111111111111)
	is.Equal(Monotonicity(&cells), 0.0)
	is.Equal(Smoothness(&cells), 0.0)
	is.Equal(EmptyCells(&cells), 0.0)
}

func TestPresets(t *testing.T) {
	is := is.New(t)
	w, err := Preset("default")
	is.NoErr(err)
	is.Equal(w, DefaultWeights())
	w, err = Preset("ALT")
	is.NoErr(err)
	is.Equal(w.Monotonicity, 47.0)
	is.Equal(w.Empty, 270.0)
	_, err = Preset("bogus")
	is.True(errors.Is(err, ErrUnknownPreset))
}

func TestSimpleEvaluators(t *testing.T) {
	is := is.New(t)
	is.Equal(EmptyCount.Evaluate(0x1100000000000000), 14.0)
	is.Equal(TileSum.Evaluate(0x1100000000000002), 8.0)
}

func TestMergeability(t *testing.T) {
	is := is.New(t)
	cells := board.Unpack(board.Pack([board.NumCells]uint8{
		1, 1, 0, 0,
		2, 0, 2, 2,
		1, 2, 1, 2,
		0, 0, 0, 0,
	}))
	// a run of two, then a run of three across the gap
	is.Equal(Mergeability(&cells), 5.0)
}

func TestCornerValue(t *testing.T) {
	is := is.New(t)
	var empty [board.NumCells]uint8
	is.Equal(CornerValue(&empty), 0.0)

	cells := board.Unpack(0x3000000000000000)
	is.Equal(CornerValue(&cells), 250.0)

	cells = board.Unpack(0x1000000000000001)
	is.Equal(CornerValue(&cells), 500.0)
}

func TestPatternMatching(t *testing.T) {
	is := is.New(t)
	cells := board.Unpack(0x1000000000000000)
	is.Equal(PatternMatching(&cells), 30*1000.0/2048)

	cells = board.Unpack(0x3000000000000000)
	is.Equal(PatternMatching(&cells), 125.0)

	// The snake tail scores nothing.
	cells = board.Unpack(0x0000000000003000)
	is.Equal(PatternMatching(&cells), 0.0)
}

func TestOptionalFeaturesOffByDefault(t *testing.T) {
	is := is.New(t)
	c := NewCombined(DefaultWeights())
	is.Equal(c.FeatureNames(), []string{FeatureEmptyCells, FeatureMonotonicity,
		FeatureSmoothness, FeatureMaxTile})

	w := DefaultWeights()
	w.CornerValue = 2
	c = NewCombined(w)
	is.Equal(len(c.FeatureNames()), 5)
	s := board.State(0x3000000000000000)
	is.Equal(c.Breakdown(s)[FeatureCornerValue], 250.0)
	is.Equal(c.Evaluate(s), NewCombined(DefaultWeights()).Evaluate(s)+2*250.0)
}

func TestWeightsRoundTripThroughFile(t *testing.T) {
	is := is.New(t)
	w := DefaultWeights()
	w.PatternMatching = 186
	path := filepath.Join(t.TempDir(), "weights.yaml")
	is.NoErr(SaveWeightsFile(path, w))
	got, err := LoadWeightsFile(path, Weights{})
	is.NoErr(err)
	is.Equal(got, w)
}

func TestDecodeWeights(t *testing.T) {
	is := is.New(t)
	w, err := DecodeWeights(strings.NewReader("smoothness: 29\ncorner_value: 67\n"), DefaultWeights())
	is.NoErr(err)
	is.Equal(w.Smoothness, 29.0)
	is.Equal(w.CornerValue, 67.0)
	is.Equal(w.Empty, 270.0)

	w, err = DecodeWeights(strings.NewReader(""), DefaultWeights())
	is.NoErr(err)
	is.Equal(w, DefaultWeights())

	_, err = DecodeWeights(strings.NewReader("sparkle: 3\n"), DefaultWeights())
	is.True(err != nil)

	var buf bytes.Buffer
	is.NoErr(EncodeWeights(&buf, DefaultWeights()))
	is.True(!strings.Contains(buf.String(), "mergeability"))
	is.True(strings.Contains(buf.String(), "max_tile: 100"))
}
