package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/game2048/ai/player"
	"github.com/domino14/game2048/automatic"
	"github.com/domino14/game2048/board"
	"github.com/domino14/game2048/config"
	"github.com/domino14/game2048/evaluation"
	"github.com/domino14/game2048/game"
)

const defaultAIPlayer = player.HeuristicPlayerName

func (sc *ShellController) gameStatus() string {
	var ss strings.Builder
	ss.WriteString(board.ToDisplayText(sc.game.State()))
	fmt.Fprintf(&ss, "Score: %d   Moves: %d\n", sc.game.Score(), sc.game.MoveCount())
	moves := sc.game.ValidMoves()
	if len(moves) == 0 {
		ss.WriteString("Game over!")
		return ss.String()
	}
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = strings.ToLower(m.Action.String())
	}
	ss.WriteString("Valid moves: " + strings.Join(names, ", "))
	return ss.String()
}

func (sc *ShellController) aiPlayer(name string) (player.Player, error) {
	if name == "" {
		name = defaultAIPlayer
	}
	return automatic.NewPlayer(name, sc.engine, sc.config, sc.rng)
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	opts := []game.Option{game.WithRNG(sc.rng)}
	if s, ok := cmd.options["seed"]; ok {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, err
		}
		opts = []game.Option{game.WithSeed(seed)}
	}
	if s, ok := cmd.options["state"]; ok {
		st, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 64)
		if err != nil {
			return nil, err
		}
		opts = append(opts, game.WithInitialState(board.State(st)))
	}
	if sc.config.GetBool(config.ConfigDebug) {
		opts = append(opts, game.WithObserver(game.LogObserver{Logger: log.Logger}))
	}
	sc.game = game.NewGame(sc.engine, player.NewHumanPlayer(sc.human), opts...)
	sc.game.Reset()
	return msg(sc.gameStatus()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) > 0 && cmd.args[0] == "hex" {
		return msg(board.ToHexText(sc.game.State())), nil
	}
	return msg(sc.gameStatus()), nil
}

func (sc *ShellController) move(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: move <left|right|up|down>")
	}
	a, err := board.ParseAction(cmd.args[0])
	if err != nil {
		return nil, err
	}
	sc.human.set(a)
	sc.game.SetPlayer(player.NewHumanPlayer(sc.human))
	if _, err := sc.game.Step(); err != nil {
		return nil, err
	}
	return msg(sc.gameStatus()), nil
}

func (sc *ShellController) step(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	var name string
	if len(cmd.args) > 0 {
		name = cmd.args[0]
	}
	p, err := sc.aiPlayer(name)
	if err != nil {
		return nil, err
	}
	n := 1
	if s, ok := cmd.options["n"]; ok {
		if n, err = strconv.Atoi(s); err != nil {
			return nil, err
		}
	}
	sc.game.SetPlayer(p)
	for i := 0; i < n; i++ {
		moved, err := sc.game.Step()
		if err != nil {
			return nil, err
		}
		if !moved {
			break
		}
	}
	return msg(sc.gameStatus()), nil
}

func (sc *ShellController) hint(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	var name string
	if len(cmd.args) > 0 {
		name = cmd.args[0]
	}
	p, err := sc.aiPlayer(name)
	if err != nil {
		return nil, err
	}
	moves := sc.game.ValidMoves()
	if len(moves) == 0 {
		return msg("Game over!"), nil
	}
	m, err := p.ChooseAction(moves)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%s would play %s", p.Name(), strings.ToLower(m.Action.String()))), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	var name string
	if len(cmd.args) > 0 {
		name = cmd.args[0]
	}
	p, err := sc.aiPlayer(name)
	if err != nil {
		return nil, err
	}
	if sc.game == nil || sc.game.Playing() == game.GameOver {
		if _, err := sc.newGame(&shellcmd{options: cmd.options}); err != nil {
			return nil, err
		}
	}
	sc.game.SetPlayer(p)
	res, err := sc.game.PlayToCompletion()
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%s\n%s finished with score %d (max tile %d) in %d moves",
		sc.gameStatus(), p.Name(), res.Score, res.MaxTile(), res.Moves)), nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	w, err := sc.config.Weights()
	if err != nil {
		return nil, err
	}
	c := evaluation.NewCombined(w)
	s := sc.game.State()
	bd := c.Breakdown(s)
	var ss strings.Builder
	fmt.Fprintf(&ss, "Weights: %v\n", w)
	for _, f := range c.FeatureNames() {
		fmt.Fprintf(&ss, "  %-17s %12.1f\n", f, bd[f])
	}
	fmt.Fprintf(&ss, "  %-17s %12.1f", "total", c.Evaluate(s))
	return msg(ss.String()), nil
}

func (sc *ShellController) bench(cmd *shellcmd) (*Response, error) {
	opts := automatic.BenchmarkOptionsFromConfig(sc.config)
	if len(cmd.args) > 0 {
		n, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, fmt.Errorf("number of games: %w", err)
		}
		opts.NumGames = n
	}
	if len(cmd.args) > 1 {
		opts.Players = cmd.args[1:]
	}
	if s, ok := cmd.options["seed"]; ok {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, err
		}
		opts.Seed = seed
	}
	logPath := sc.config.GetString(config.ConfigBenchmarkLog)
	if s, ok := cmd.options["log"]; ok {
		logPath = s
	}
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		opts.LogWriter = f
	}

	ctx, cancel := context.WithCancel(context.Background())
	sc.cancel = cancel
	defer func() {
		cancel()
		sc.cancel = nil
	}()
	report, err := automatic.Benchmark(ctx, sc.engine, sc.config, opts)
	if err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}

	reportPath := sc.config.GetString(config.ConfigBenchmarkReport)
	if s, ok := cmd.options["report"]; ok {
		reportPath = s
	}
	if reportPath != "" {
		f, ferr := os.Create(reportPath)
		if ferr != nil {
			return nil, ferr
		}
		defer f.Close()
		if ferr = report.WriteYAML(f); ferr != nil {
			return nil, ferr
		}
	}
	if err != nil {
		return msg("Benchmark interrupted.\n" + report.String()), nil
	}
	return msg(report.String()), nil
}

func (sc *ShellController) tune(cmd *shellcmd) (*Response, error) {
	opts := automatic.TuneOptions{
		Population:        4,
		GamesPerCandidate: 10,
		Seed:              sc.config.GetUint64(config.ConfigSeed),
	}
	var err error
	if len(cmd.args) > 0 {
		if opts.Generations, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, fmt.Errorf("number of generations: %w", err)
		}
	}
	for key, dst := range map[string]*int{
		"population": &opts.Population,
		"games":      &opts.GamesPerCandidate,
	} {
		if s, ok := cmd.options[key]; ok {
			if *dst, err = strconv.Atoi(s); err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
		}
	}
	if s, ok := cmd.options["seed"]; ok {
		if opts.Seed, err = strconv.ParseUint(s, 10, 64); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	sc.cancel = cancel
	defer func() {
		cancel()
		sc.cancel = nil
	}()
	res, err := automatic.Tune(ctx, sc.engine, sc.config, opts)
	if err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}
	var ss strings.Builder
	if err != nil {
		ss.WriteString("Tuning interrupted.\n")
	}
	fmt.Fprintf(&ss, "After %d generations (seed %d): mean score %.1f, started at %.1f\n",
		res.Generations, res.Seed, res.MeanScore, res.Start)
	fmt.Fprintf(&ss, "Weights: %v", res.Weights)
	if out, ok := cmd.options["out"]; ok {
		if err := evaluation.SaveWeightsFile(out, res.Weights); err != nil {
			return nil, err
		}
		fmt.Fprintf(&ss, "\nSaved to %s; load with setconfig %s %s",
			out, config.ConfigHeuristicWeightsFile, out)
	}
	return msg(ss.String()), nil
}

func (sc *ShellController) mode(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg("Engine mode: " + sc.engine.Mode().String()), nil
	}
	var m board.Mode
	switch cmd.args[0] {
	case "validating":
		m = board.ValidatingMode
	case "performance":
		m = board.PerformanceMode
	default:
		return nil, errors.New("mode " + cmd.args[0] + " is not a valid choice")
	}
	prev := sc.engine.SetMode(m)
	return msg(fmt.Sprintf("Engine mode: %v (was %v)", m, prev)), nil
}

func (sc *ShellController) setConfig(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: setconfig <key> <value>")
	}
	key := cmd.args[0]
	if !sc.config.IsSet(key) && !strings.HasPrefix(key, "weight-") {
		return nil, fmt.Errorf("unknown config key %q", key)
	}
	var val any = cmd.args[1]
	if key == config.ConfigBenchmarkPlayers {
		val = cmd.args[1:]
	}
	old := sc.config.Get(key)
	sc.config.Set(key, val)
	if _, err := sc.config.Weights(); err != nil {
		sc.config.Set(key, old)
		return nil, err
	}
	return msg(fmt.Sprintf("set %s to %v", key, val)), nil
}
