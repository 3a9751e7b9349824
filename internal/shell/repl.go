package shell

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"paramshell/internal/commands"
	"paramshell/internal/logger"
	"paramshell/internal/version"
)

// DefaultPrompt is shown before every interactive line.
const DefaultPrompt = "paramshell> "

// LineReader is the part of a readline instance the loop needs.
type LineReader interface {
	Readline() (string, error)
}

// Run starts an interactive prompt with history and tab completion of
// command names. It returns when the user exits or ctx is cancelled.
func (s *Session) Run(ctx context.Context, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            DefaultPrompt,
		HistoryFile:       historyFile,
		AutoComplete:      Completer(commands.GlobalRegistry),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := rl.Close(); err != nil {
			logger.Debug("Failed to close readline", "error", err)
		}
	}()

	s.Printer.Info("paramshell v" + version.GetBaseVersion() + " - type 'help' for commands, 'exit' to quit.")
	return s.Loop(ctx, rl)
}

// Loop reads lines until EOF, "exit" or "quit", or until ctx is cancelled.
// Command failures are reported and do not end the loop. An interrupt on an
// empty line ends it.
func (s *Session) Loop(ctx context.Context, reader LineReader) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := reader.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if strings.TrimSpace(line) == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "exit", "quit":
			return nil
		}
		_ = s.ProcessInput(ctx, line)
	}
}

// Completer offers command and sub command names from registry. It is
// rebuilt on every key press so commands loaded later are offered too.
func Completer(registry *commands.Registry) readline.AutoCompleter {
	return readline.NewPrefixCompleter(readline.PcItemDynamic(func(string) []string {
		return registry.Names()
	}, readline.PcItemDynamic(func(line string) []string {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return nil
		}
		cmd, ok := registry.Get(fields[0])
		if !ok {
			return nil
		}
		return cmd.SubCommandNames()
	})))
}
