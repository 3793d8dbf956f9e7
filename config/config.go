// Package config loads settings from defaults, the environment
// (GAME2048_*), and command-line flags, in increasing order of priority.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domino14/game2048/board"
	"github.com/domino14/game2048/evaluation"
)

const (
	ConfigDebug                    = "debug"
	ConfigCPUProfile               = "cpu-profile"
	ConfigMemProfile               = "mem-profile"
	ConfigSeed                     = "seed"
	ConfigPerformanceMode          = "performance-mode"
	ConfigExpectimaxDepth          = "expectimax-depth"
	ConfigHeuristicPreset          = "heuristic-preset"
	ConfigWeightEmpty              = "weight-empty"
	ConfigWeightMonotonicity       = "weight-monotonicity"
	ConfigWeightSmoothness         = "weight-smoothness"
	ConfigWeightMaxTile            = "weight-max-tile"
	ConfigWeightMergeability       = "weight-mergeability"
	ConfigWeightCornerValue        = "weight-corner-value"
	ConfigWeightPatternMatching    = "weight-pattern-matching"
	ConfigHeuristicWeightsFile     = "heuristic-weights-file"
	ConfigMonteCarloRollouts       = "montecarlo-rollouts"
	ConfigMonteCarloMaxMoves       = "montecarlo-max-moves"
	ConfigEmptyCacheMemoryFraction = "empty-cache-memory-fraction"
	ConfigEmptyCacheMaxEntries     = "empty-cache-max-entries"
	ConfigBenchmarkGames           = "benchmark-games"
	ConfigBenchmarkPlayers         = "benchmark-players"
	ConfigBenchmarkLog             = "benchmark-log"
	ConfigBenchmarkReport          = "benchmark-report"
)

const envPrefix = "game2048"

type Config struct {
	*viper.Viper
	args []string
}

// DefaultConfig returns a config holding only the defaults. Tests use it
// directly.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigMemProfile, "")
	c.SetDefault(ConfigSeed, uint64(0))
	c.SetDefault(ConfigPerformanceMode, false)
	c.SetDefault(ConfigExpectimaxDepth, 8)
	c.SetDefault(ConfigHeuristicPreset, evaluation.PresetDefault)
	c.SetDefault(ConfigHeuristicWeightsFile, "")
	c.SetDefault(ConfigMonteCarloRollouts, 100)
	c.SetDefault(ConfigMonteCarloMaxMoves, 200)
	c.SetDefault(ConfigEmptyCacheMemoryFraction, 0.05)
	c.SetDefault(ConfigEmptyCacheMaxEntries, 0)
	c.SetDefault(ConfigBenchmarkGames, 100)
	c.SetDefault(ConfigBenchmarkPlayers, []string{"random", "maxemptycells", "minmax", "heuristic"})
	c.SetDefault(ConfigBenchmarkLog, "")
	c.SetDefault(ConfigBenchmarkReport, "")
}

func (c *Config) Load(args []string) error {
	if c.Viper == nil {
		c.Viper = viper.New()
	}
	c.setDefaults()
	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	fs := pflag.NewFlagSet("game2048", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigCPUProfile, "", "file to write a CPU profile to")
	fs.String(ConfigMemProfile, "", "file to write a memory profile to")
	fs.Uint64(ConfigSeed, 0, "random seed for tile spawns and random players; 0 picks one")
	fs.Bool(ConfigPerformanceMode, false, "skip argument validation in the board engine")
	fs.Int(ConfigExpectimaxDepth, 8, "expectimax search depth")
	fs.String(ConfigHeuristicPreset, evaluation.PresetDefault, "heuristic weight preset (default, alt)")
	fs.Float64(ConfigWeightEmpty, 0, "override the empty-cells weight")
	fs.Float64(ConfigWeightMonotonicity, 0, "override the monotonicity weight")
	fs.Float64(ConfigWeightSmoothness, 0, "override the smoothness weight")
	fs.Float64(ConfigWeightMaxTile, 0, "override the max-tile weight")
	fs.Float64(ConfigWeightMergeability, 0, "weight of the mergeability feature (off by default)")
	fs.Float64(ConfigWeightCornerValue, 0, "weight of the corner-value feature (off by default)")
	fs.Float64(ConfigWeightPatternMatching, 0, "weight of the pattern-matching feature (off by default)")
	fs.String(ConfigHeuristicWeightsFile, "", "YAML file of weights applied on top of the preset")
	fs.Int(ConfigMonteCarloRollouts, 100, "rollouts per candidate move")
	fs.Int(ConfigMonteCarloMaxMoves, 200, "maximum random moves per rollout")
	fs.Float64(ConfigEmptyCacheMemoryFraction, 0.05, "fraction of system memory for the empty-tile cache")
	fs.Int(ConfigEmptyCacheMaxEntries, 0, "empty-tile cache size; 0 sizes it from memory")
	fs.Int(ConfigBenchmarkGames, 100, "games per player in a benchmark")
	fs.StringSlice(ConfigBenchmarkPlayers, nil, "players to benchmark")
	fs.String(ConfigBenchmarkLog, "", "file to write a per-game CSV log to")
	fs.String(ConfigBenchmarkReport, "", "file to write a YAML benchmark report to")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	// Only flags that were actually set override env and defaults.
	fs.Visit(func(f *pflag.Flag) {
		c.Set(f.Name, c.flagValue(fs, f))
	})
	return nil
}

func (c *Config) flagValue(fs *pflag.FlagSet, f *pflag.Flag) any {
	switch f.Value.Type() {
	case "stringSlice":
		v, _ := fs.GetStringSlice(f.Name)
		return v
	}
	return f.Value.String()
}

// Args returns the positional arguments left over after flag parsing.
func (c *Config) Args() []string {
	return c.args
}

// Weights returns the heuristic weights: the preset, then the weights
// file if one is configured, then any weight that was explicitly set.
func (c *Config) Weights() (evaluation.Weights, error) {
	w, err := evaluation.Preset(c.GetString(ConfigHeuristicPreset))
	if err != nil {
		return w, err
	}
	if path := c.GetString(ConfigHeuristicWeightsFile); path != "" {
		w, err = evaluation.LoadWeightsFile(path, w)
		if err != nil {
			return w, err
		}
	}
	for key, dst := range map[string]*float64{
		ConfigWeightEmpty:        &w.Empty,
		ConfigWeightMonotonicity: &w.Monotonicity,
		ConfigWeightSmoothness:   &w.Smoothness,
		ConfigWeightMaxTile:      &w.MaxTile,

		ConfigWeightMergeability:    &w.Mergeability,
		ConfigWeightCornerValue:     &w.CornerValue,
		ConfigWeightPatternMatching: &w.PatternMatching,
	} {
		if c.IsSet(key) {
			*dst = c.GetFloat64(key)
		}
	}
	return w, nil
}

// EmptyTileCacheEntries is the configured empty-tile cache capacity.
func (c *Config) EmptyTileCacheEntries() int {
	if n := c.GetInt(ConfigEmptyCacheMaxEntries); n > 0 {
		return n
	}
	return board.MaxEntriesForMemory(c.GetFloat64(ConfigEmptyCacheMemoryFraction))
}

// SanitizedSettings returns all settings, fit for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
