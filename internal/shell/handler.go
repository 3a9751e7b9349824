// Package shell wires configuration, services and the command dispatcher
// together and runs command lines from a prompt, a script or the CLI.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"

	"paramshell/internal/commands"
	_ "paramshell/internal/commands/builtin" // Import for side effects (init functions)
	"paramshell/internal/logger"
	"paramshell/internal/output"
	"paramshell/internal/parser"
	"paramshell/internal/services"
	"paramshell/pkg/paramtypes"
)

// Session is a ready to use shell: resolved settings, a printer and a
// dispatcher over the global command registry.
type Session struct {
	Settings   services.Settings
	Printer    *output.Printer
	Dispatcher *commands.Dispatcher
	Schemes    *services.SchemeService
}

// InitializeServices resolves the configuration, registers and initializes
// every service and builds the session. Output goes to stdout.
func InitializeServices(config *services.ConfigurationService, stdout io.Writer) (*Session, error) {
	if err := config.Initialize(); err != nil {
		return nil, err
	}
	settings, err := config.Settings()
	if err != nil {
		return nil, err
	}

	commands.GlobalRegistry.SetVerifySchemes(settings.DevMode)

	markdownStyle := "auto"
	if settings.TestMode || !output.IsTerminal() {
		markdownStyle = "notty"
	}
	markdown := services.NewMarkdownService(markdownStyle)
	schemes := services.NewSchemeService(commands.GlobalRegistry, settings.SchemeFiles...)

	registry := services.GetGlobalRegistry()
	for _, service := range []paramtypes.Service{
		config,
		markdown,
		services.NewHelpService(markdown),
		services.NewShiftService(),
		schemes,
	} {
		if registry.HasService(service.Name()) {
			continue
		}
		if err := registry.RegisterService(service); err != nil {
			return nil, err
		}
	}

	if err := registry.InitializeAll(); err != nil {
		return nil, err
	}

	if registered, err := services.GetGlobalSchemeService(); err == nil {
		schemes = registered
	}

	printer, err := NewPrinter(settings, stdout)
	if err != nil {
		return nil, err
	}
	output.SetGlobalPrinter(printer)

	env, err := config.Environment()
	if err != nil {
		return nil, err
	}

	logger.Debug("Services initialized", "schemeFiles", settings.SchemeFiles, "devMode", settings.DevMode)
	return &Session{
		Settings:   settings,
		Printer:    printer,
		Dispatcher: commands.NewDispatcher(commands.GlobalRegistry, env, commands.WithPrinter(printer)),
		Schemes:    schemes,
	}, nil
}

// NewPrinter builds the printer described by the output and theme settings.
func NewPrinter(settings services.Settings, w io.Writer) (*output.Printer, error) {
	if settings.TestMode {
		return output.NewPrinter(output.WithWriter(w), output.TestMode()), nil
	}

	mode, err := output.ParseMode(settings.Output)
	if err != nil {
		return nil, err
	}
	theme, err := output.LoadTheme(settings.Theme, w)
	if err != nil {
		return nil, err
	}
	return output.NewPrinter(output.WithWriter(w), output.WithMode(mode), output.WithStyles(theme)), nil
}

// ProcessInput runs one command line and reports any failure through the
// printer. The error is returned so callers can decide whether to go on.
func (s *Session) ProcessInput(ctx context.Context, line string) error {
	err := s.Dispatcher.Dispatch(ctx, line)
	if err != nil {
		logger.Debug("Command failed", "command", line, "error", err)
		s.report(err)
	}
	return err
}

// RunScript runs every command of a script in order and stops at the first
// failing line.
func (s *Session) RunScript(ctx context.Context, content string) error {
	lines, err := parser.ParseScript(content)
	if err != nil {
		s.Printer.Error(err.Error())
		return err
	}
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.ProcessInput(ctx, line.Raw); err != nil {
			return fmt.Errorf("line %d: %w", line.LineNumber, err)
		}
	}
	return nil
}

func (s *Session) report(err error) {
	var matchErr *commands.MatchError
	var unknown *commands.UnknownCommandError
	switch {
	case errors.As(err, &matchErr):
		s.Printer.MatchError(matchErr.Command, matchErr.Outcome)
	case errors.As(err, &unknown):
		s.Printer.Error(err.Error())
		s.Printer.Hint("Type help for available commands")
	default:
		s.Printer.Error(err.Error())
	}
}
