package evaluation

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnknownPreset = errors.New("unknown heuristic preset")

const (
	PresetDefault = "default"
	// PresetAlt is the variant with a ten times smaller monotonicity weight.
	PresetAlt = "alt"
)

// Weights are the multipliers of the heuristic features. The last three
// are off unless given a weight.
type Weights struct {
	Empty        float64 `yaml:"empty" json:"empty"`
	Monotonicity float64 `yaml:"monotonicity" json:"monotonicity"`
	Smoothness   float64 `yaml:"smoothness" json:"smoothness"`
	MaxTile      float64 `yaml:"max_tile" json:"max_tile"`

	Mergeability    float64 `yaml:"mergeability,omitempty" json:"mergeability,omitempty"`
	CornerValue     float64 `yaml:"corner_value,omitempty" json:"corner_value,omitempty"`
	PatternMatching float64 `yaml:"pattern_matching,omitempty" json:"pattern_matching,omitempty"`
}

func DefaultWeights() Weights {
	return Weights{
		Empty:        270.0,
		Monotonicity: 470.0,
		Smoothness:   15.0,
		MaxTile:      100.0,
	}
}

// Preset returns the weights of a named preset.
func Preset(name string) (Weights, error) {
	switch strings.ToLower(name) {
	case "", PresetDefault:
		return DefaultWeights(), nil
	case PresetAlt:
		w := DefaultWeights()
		w.Monotonicity = 47.0
		return w, nil
	}
	return Weights{}, fmt.Errorf("%w: %v", ErrUnknownPreset, name)
}

// DecodeWeights reads YAML weights from r on top of base; keys missing
// from the document keep their base value. Unknown keys are an error.
func DecodeWeights(r io.Reader, base Weights) (Weights, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	w := base
	if err := dec.Decode(&w); err != nil {
		if errors.Is(err, io.EOF) {
			return base, nil
		}
		return base, fmt.Errorf("decoding weights: %w", err)
	}
	return w, nil
}

// LoadWeightsFile reads weights from a YAML file on top of base.
func LoadWeightsFile(path string, base Weights) (Weights, error) {
	f, err := os.Open(path)
	if err != nil {
		return base, err
	}
	defer f.Close()
	return DecodeWeights(f, base)
}

func EncodeWeights(wr io.Writer, w Weights) error {
	enc := yaml.NewEncoder(wr)
	enc.SetIndent(2)
	if err := enc.Encode(w); err != nil {
		return err
	}
	return enc.Close()
}

func SaveWeightsFile(path string, w Weights) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeWeights(f, w); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (w Weights) String() string {
	s := fmt.Sprintf("empty=%.1f mono=%.1f smooth=%.1f max=%.1f",
		w.Empty, w.Monotonicity, w.Smoothness, w.MaxTile)
	if w.Mergeability != 0 {
		s += fmt.Sprintf(" merge=%.1f", w.Mergeability)
	}
	if w.CornerValue != 0 {
		s += fmt.Sprintf(" corner=%.1f", w.CornerValue)
	}
	if w.PatternMatching != 0 {
		s += fmt.Sprintf(" pattern=%.1f", w.PatternMatching)
	}
	return s
}
