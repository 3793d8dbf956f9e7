package shell

import (
	"embed"
	"strings"

	"github.com/chzyer/readline"
)

//go:embed helptext
var helptext embed.FS

var commandNames = []string{
	"new", "show", "move", "left", "right", "up", "down", "step", "hint",
	"autoplay", "eval", "bench", "tune", "mode", "setconfig", "help", "exit",
}

func playerItems() []readline.PrefixCompleterInterface {
	return []readline.PrefixCompleterInterface{
		readline.PcItem("random"),
		readline.PcItem("maxemptycells"),
		readline.PcItem("minmax"),
		readline.PcItem("heuristic"),
		readline.PcItem("montecarlo"),
		readline.PcItem("expectimax"),
	}
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("new"),
	readline.PcItem("show", readline.PcItem("hex")),
	readline.PcItem("move",
		readline.PcItem("left"), readline.PcItem("right"),
		readline.PcItem("up"), readline.PcItem("down")),
	readline.PcItem("step", playerItems()...),
	readline.PcItem("hint", playerItems()...),
	readline.PcItem("autoplay", playerItems()...),
	readline.PcItem("eval"),
	readline.PcItem("bench"),
	readline.PcItem("tune"),
	readline.PcItem("mode", readline.PcItem("validating"), readline.PcItem("performance")),
	readline.PcItem("setconfig"),
	readline.PcItem("help", readline.PcItemDynamic(func(string) []string { return commandNames })),
	readline.PcItem("exit"),
)

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	topic := "usage"
	if len(cmd.args) > 0 {
		topic = strings.ToLower(cmd.args[0])
	}
	dat, err := helptext.ReadFile("helptext/" + topic + ".txt")
	if err != nil {
		return msg("There is no help text for the topic " + topic), nil
	}
	return msg(strings.TrimRight(string(dat), "\n")), nil
}
