// Package commands provides command registration and dispatch for paramshell.
// A command owns one or more variants; each variant is a parameter scheme plus
// the requirements a caller must meet and the handler that runs on a match.
package commands

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"paramshell/internal/output"
	"paramshell/internal/requirements"
	"paramshell/internal/scheme"
	"paramshell/pkg/paramtypes"
)

// Source records where a command was defined.
type Source int

const (
	// SourceBuiltin commands are implemented in Go and take precedence.
	SourceBuiltin Source = iota
	// SourceFile commands come from scheme files and have no Go handler.
	SourceFile
)

func (s Source) String() string {
	if s == SourceFile {
		return "file"
	}
	return "builtin"
}

// Handler runs a matched variant.
type Handler func(ctx context.Context, inv *Invocation) error

// Variant is one accepted form of a command.
type Variant struct {
	Name         string
	Description  string
	Scheme       paramtypes.ParametersList
	Requirements []paramtypes.Requirement
	Examples     []paramtypes.HelpExample
	Handler      Handler
}

// Command is a named command with variants, sub commands or both.
type Command struct {
	Name        string
	Description string
	Source      Source
	Variants    []Variant
	SubCommands []*Command
	Notes       []string
}

// SubCommand finds a direct sub command by case-insensitive name.
func (c *Command) SubCommand(name string) (*Command, bool) {
	for _, sub := range c.SubCommands {
		if strings.EqualFold(sub.Name, name) {
			return sub, true
		}
	}
	return nil, false
}

// SubCommandNames lists the direct sub command names in declaration order.
func (c *Command) SubCommandNames() []string {
	names := make([]string, len(c.SubCommands))
	for i, sub := range c.SubCommands {
		names[i] = sub.Name
	}
	return names
}

// HelpInfo describes the command for the help service. path is the full
// command path, e.g. "shift add".
func (c *Command) HelpInfo(path string) paramtypes.HelpInfo {
	info := paramtypes.HelpInfo{
		Command:     path,
		Description: c.Description,
		Notes:       c.Notes,
	}
	for _, v := range c.Variants {
		info.Variants = append(info.Variants, paramtypes.HelpVariant{
			Name:        v.Name,
			Description: v.Description,
			Usage:       strings.TrimSpace(path + " " + scheme.Usage(v.Scheme)),
		})
		info.Examples = append(info.Examples, v.Examples...)
	}
	for _, sub := range c.SubCommands {
		info.Variants = append(info.Variants, paramtypes.HelpVariant{
			Name:        sub.Name,
			Description: sub.Description,
			Usage:       path + " " + sub.Name + " ...",
		})
	}
	return info
}

// Invocation is handed to a handler after a successful match.
type Invocation struct {
	ID      string
	Path    []string
	Variant string
	Outcome paramtypes.MatchOutcome
	Env     requirements.Environment
	Printer *output.Printer
	// Registry is the registry the command was resolved from.
	Registry *Registry
}

// CommandPath returns the space separated command path.
func (inv *Invocation) CommandPath() string {
	return strings.Join(inv.Path, " ")
}

// Params returns the match result holding the bound parameters.
func (inv *Invocation) Params() paramtypes.MatchResult {
	return inv.Outcome.Result
}

// EchoHandler prints the bound parameters. Commands loaded from scheme files
// use it since they have no behaviour of their own.
func EchoHandler(_ context.Context, inv *Invocation) error {
	result := inv.Params()
	inv.Printer.Success(fmt.Sprintf("%s (%s) matched", inv.CommandPath(), inv.Variant))
	for _, name := range slices.Sorted(maps.Keys(result.ProcessedParams)) {
		inv.Printer.Println(fmt.Sprintf("  %s = %s", name, formatValue(result.ProcessedParams[name])))
	}
	return nil
}

func formatValue(v any) string {
	switch value := v.(type) {
	case time.Time:
		return value.Format("02/01/2006")
	case fmt.Stringer:
		return value.String()
	case string:
		return fmt.Sprintf("%q", value)
	}
	return fmt.Sprint(v)
}
