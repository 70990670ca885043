package repl

import (
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

func (r *REPL) readInput() (string, error) {
	line, err := r.rl.Readline()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

func (r *REPL) parseCommand(input string) (bool, string, string) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return false, "", ""
	}

	parts := strings.SplitN(input, " ", 2)
	command := strings.ToLower(parts[0])

	args := ""
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}

	return true, command, args
}

var commandCompleter = readline.NewPrefixCompleter(
	readline.PcItem("/help"),
	readline.PcItem("/show"),
	readline.PcItem("/prev"),
	readline.PcItem("/next"),
	readline.PcItem("/today"),
	readline.PcItem("/month"),
	readline.PcItem("/day"),
	readline.PcItem("/time"),
	readline.PcItem("/platform",
		readline.PcItem("instagram"),
		readline.PcItem("tiktok"),
		readline.PcItem("twitter"),
		readline.PcItem("onlyfans"),
	),
	readline.PcItem("/draft"),
	readline.PcItem("/note", readline.PcItem("ai")),
	readline.PcItem("/email", readline.PcItem("on"), readline.PcItem("off")),
	readline.PcItem("/save"),
	readline.PcItem("/close"),
	readline.PcItem("/suggest"),
	readline.PcItem("/pick"),
	readline.PcItem("/delete"),
	readline.PcItem("/reload"),
	readline.PcItem("/plan"),
	readline.PcItem("/quit"),
)

func setupReadline(historyFile string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:              "> ",
		HistoryFile:         historyFile,
		AutoComplete:        commandCompleter,
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
}

func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt)
}
