package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"paramshell/internal/logger"
	"paramshell/internal/output"
	"paramshell/internal/parser"
	"paramshell/internal/requirements"
	"paramshell/internal/scheme"
	"paramshell/pkg/paramtypes"
)

// Dispatcher turns command lines into handler calls.
type Dispatcher struct {
	registry *Registry
	env      requirements.Environment
	printer  *output.Printer
	newID    func() string
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithPrinter sets the printer handed to handlers.
func WithPrinter(printer *output.Printer) DispatcherOption {
	return func(d *Dispatcher) {
		if printer != nil {
			d.printer = printer
		}
	}
}

// WithIDGenerator replaces the invocation id generator.
func WithIDGenerator(newID func() string) DispatcherOption {
	return func(d *Dispatcher) {
		if newID != nil {
			d.newID = newID
		}
	}
}

// NewDispatcher creates a dispatcher over registry. env supplies the facts
// variant requirements are checked against.
func NewDispatcher(registry *Registry, env requirements.Environment, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		env:      env,
		printer:  output.GetGlobalPrinter(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch tokenizes line and runs it. Blank and comment lines do nothing.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) error {
	cmdLine, err := parser.ParseLine(line)
	if errors.Is(err, parser.ErrEmptyInput) {
		return nil
	}
	if err != nil {
		return err
	}
	return d.DispatchTokens(ctx, cmdLine.Tokens)
}

// DispatchTokens resolves the command named by tokens, picks the first
// variant whose requirements hold and whose scheme matches, and runs its
// handler. When no variant matches, the failure that got furthest through the
// input is returned as a *MatchError.
func (d *Dispatcher) DispatchTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	id := d.newID()
	logger.CommandExecution(id, tokens[0], tokens)

	cmd, path, rest, ok := d.registry.Resolve(tokens)
	if !ok {
		suggestion, _ := Suggest(tokens[0], d.registry.Names())
		return &UnknownCommandError{Name: tokens[0], Suggestion: suggestion}
	}
	commandPath := strings.Join(path, " ")

	if len(cmd.Variants) == 0 {
		return missingSubCommand(cmd, commandPath, rest)
	}

	eligible, blocked := d.eligibleVariants(cmd.Variants)
	if len(eligible) == 0 {
		return &RequirementError{Command: commandPath, Requirement: blocked}
	}

	var best *MatchError
	for _, v := range eligible {
		outcome := scheme.Match(rest, v.Scheme)
		if outcome.Matches() {
			logger.Debug("Variant matched", "invocation", id, "command", commandPath, "variant", v.Name)
			return d.run(ctx, v, &Invocation{
				ID:       id,
				Path:     path,
				Variant:  v.Name,
				Outcome:  outcome,
				Env:      d.env,
				Printer:  d.printer,
				Registry: d.registry,
			})
		}

		logger.MatchFailure(commandPath, v.Name, outcome.Result.ErrMessage, outcome.Result.ErrItemPath)
		candidate := &MatchError{Command: commandPath, Variant: v.Name, Outcome: outcome}
		if best == nil || candidate.furtherThan(best) {
			best = candidate
		}
	}
	best.Tried = len(eligible)
	return best
}

func (d *Dispatcher) eligibleVariants(variants []Variant) ([]Variant, paramtypes.Requirement) {
	var eligible []Variant
	var blocked paramtypes.Requirement
	for i, v := range variants {
		req, failed := requirements.FirstFailing(v.Requirements, d.env)
		if failed {
			logger.Debug("Variant unavailable", "variant", v.Name, "requirement", req.Kind)
			if i == 0 || len(eligible) == 0 {
				blocked = req
			}
			continue
		}
		eligible = append(eligible, v)
	}
	return eligible, blocked
}

func (d *Dispatcher) run(ctx context.Context, v Variant, inv *Invocation) error {
	handler := v.Handler
	if handler == nil {
		handler = EchoHandler
	}
	if err := handler(ctx, inv); err != nil {
		return fmt.Errorf("%s: %w", inv.CommandPath(), err)
	}
	return nil
}

func missingSubCommand(cmd *Command, commandPath string, rest []string) error {
	names := cmd.SubCommandNames()
	if len(rest) == 0 {
		return &UnknownCommandError{Parent: commandPath, Available: names}
	}
	suggestion, _ := Suggest(rest[0], names)
	return &UnknownCommandError{Name: rest[0], Parent: commandPath, Suggestion: suggestion, Available: names}
}
