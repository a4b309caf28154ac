// Command cmdparserepl is an interactive demo of the command dispatcher:
// it registers a small example tree and drives it from a readline prompt
// (which also offers the dispatcher's completion suggestions), rendering
// status and errors with pterm and logging failures with zap.
package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"go.uber.org/zap"

	cmdparser "github.com/AyzekReborn/Command-Parser"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	dispatcher := buildDispatcher()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:       "cmd> ",
		AutoComplete: completer{dispatcher},
	})
	if err != nil {
		logger.Fatal("readline init failed", zap.Error(err))
	}
	defer rl.Close() //nolint:errcheck

	pterm.Info.Println("type a command, or 'quit' to exit")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			return
		}
		if err != nil {
			logger.Error("readline error", zap.Error(err))
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" {
			return
		}

		n, err := dispatcher.ParseExecute(context.Background(), line)
		if err != nil {
			pterm.Error.Println(err.Error())
			logger.Warn("command failed", zap.String("input", line), zap.Error(err))
			continue
		}
		pterm.Success.Printfln("ran %d command(s)", n)
	}
}

// completer bridges readline's AutoCompleter interface to the
// dispatcher's own suggestion engine.
type completer struct{ d *cmdparser.Dispatcher }

func (c completer) Do(line []rune, pos int) ([][]rune, int) {
	input := string(line[:pos])
	parse := c.d.Parse(context.Background(), input)
	suggestions, err := c.d.CompletionSuggestionsCursor(parse, pos)
	if err != nil || suggestions == nil {
		return nil, 0
	}
	var out [][]rune
	for _, s := range suggestions.Suggestions {
		out = append(out, []rune(s.Text[pos-suggestions.Range.Start:]))
	}
	return out, pos - suggestions.Range.Start
}

// buildDispatcher registers a small example tree exercising literals,
// an argument, and a redirect — enough to drive completion and execution
// end-to-end.
func buildDispatcher() *cmdparser.Dispatcher {
	d := cmdparser.NewDispatcher()

	d.Register(cmdparser.Literal("echo").
		Then(cmdparser.Argument("message", cmdparser.StringPhrase).
			ExecutesFunc(func(c *cmdparser.CommandContext) error {
				fmt.Println(c.String("message"))
				return nil
			})))

	whoami := d.Register(cmdparser.Literal("whoami").
		ExecutesFunc(func(c *cmdparser.CommandContext) error {
			fmt.Println("guest")
			return nil
		}))

	d.Register(cmdparser.Literal("help").
		Redirect(whoami))

	return d
}
