// Package shell is an interactive readline shell for playing and
// benchmarking 2048.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/game2048/ai/player"
	"github.com/domino14/game2048/automatic"
	"github.com/domino14/game2048/board"
	"github.com/domino14/game2048/config"
	"github.com/domino14/game2048/game"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("trying to set an option but not providing a value")
	errNoGame            = errors.New("no game in progress; type new to start one")
	errExit              = errors.New("exit")
)

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

// Response is what a command has to say.
type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

type ShellController struct {
	l      *readline.Instance
	out    io.Writer
	config *config.Config
	engine *board.Engine

	game  *game.Game
	human *pendingAction
	rng   *rand.Rand

	cancel     context.CancelFunc
	gitVersion string
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func newController(cfg *config.Config, out io.Writer) *ShellController {
	engine := board.NewEngine(board.NewEmptyTileCache(cfg.EmptyTileCacheEntries()))
	if cfg.GetBool(config.ConfigPerformanceMode) {
		engine.SetMode(board.PerformanceMode)
	}
	seed := automatic.BaseSeed(cfg.GetUint64(config.ConfigSeed))
	return &ShellController{
		out:    out,
		config: cfg,
		engine: engine,
		human:  &pendingAction{},
		rng:    rand.New(rand.NewPCG(seed, seed>>1)),
	}
}

func NewShellController(cfg *config.Config, gitVersion string) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[33m2048>\033[0m ",
		HistoryFile:     "/tmp/game2048_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
		AutoComplete:        completer,
	})
	if err != nil {
		panic(err)
	}
	sc := newController(cfg, l.Stderr())
	sc.l = l
	sc.gitVersion = gitVersion
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[fields[idx][1:]] = fields[idx+1]
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit":
		sig <- syscall.SIGINT
		return nil, errExit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "show":
		return sc.show(cmd)
	case "move", "m":
		return sc.move(cmd)
	case "left", "right", "up", "down", "w", "a", "s", "d":
		return sc.move(&shellcmd{cmd: "move", args: []string{cmd.cmd}})
	case "step":
		return sc.step(cmd)
	case "hint":
		return sc.hint(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "eval":
		return sc.eval(cmd)
	case "bench":
		return sc.bench(cmd)
	case "tune":
		return sc.tune(cmd)
	case "mode":
		return sc.mode(cmd)
	case "setconfig":
		return sc.setConfig(cmd)
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
		return nil, fmt.Errorf("unrecognized command %q; type help", cmd.cmd)
	}
}

// Execute runs one command line and prints its output.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.standardModeSwitch(line, sig)
	if errors.Is(err, errExit) {
		return
	}
	if err != nil {
		sc.showError(err)
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			sig <- syscall.SIGINT
			break
		}
		sc.Execute(sig, line)
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup releases what the shell holds on to.
func (sc *ShellController) Cleanup() {
	if sc.cancel != nil {
		sc.cancel()
	}
	sc.engine.ClearCache()
	log.Debug().Interface("cache", sc.engine.Cache().Stats()).Msg("shell-cleanup")
}

// pendingAction feeds one queued action to the human player.
type pendingAction struct {
	action board.Action
	ok     bool
}

func (p *pendingAction) set(a board.Action) {
	p.action, p.ok = a, true
}

func (p *pendingAction) NextAction() (board.Action, error) {
	if !p.ok {
		return 0, errors.New("no move entered")
	}
	p.ok = false
	return p.action, nil
}

var _ player.ActionSource = (*pendingAction)(nil)
