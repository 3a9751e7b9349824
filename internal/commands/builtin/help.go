package builtin

import (
	"context"
	"fmt"
	"strings"

	"paramshell/internal/commands"
	"paramshell/internal/services"
	pt "paramshell/pkg/paramtypes"
)

func helpCommand() *commands.Command {
	return &commands.Command{
		Name:        "help",
		Description: "Show the available commands or the usage of one command",
		Source:      commands.SourceBuiltin,
		Variants: []commands.Variant{{
			Name: "default",
			Scheme: pt.ParametersList{
				pt.StringParam("command").AsOptional(),
				pt.StringParam("subcommand").AsOptional(),
			},
			Examples: []pt.HelpExample{
				{Command: "help", Description: "List every command"},
				{Command: "help shift add", Description: "Show how to add a shift"},
			},
			Handler: showHelp,
		}},
	}
}

func showHelp(_ context.Context, inv *commands.Invocation) error {
	help, err := services.GetGlobalHelpService()
	if err != nil {
		return fmt.Errorf("help service not available: %w", err)
	}

	params := inv.Params()
	name, ok := params.String("command")
	if !ok {
		var infos []pt.HelpInfo
		for _, cmd := range inv.Registry.GetAll() {
			infos = append(infos, cmd.HelpInfo(cmd.Name))
		}
		rendered, err := help.RenderOverview(infos)
		if err != nil {
			return err
		}
		inv.Printer.Print(rendered)
		return nil
	}

	tokens := []string{name}
	if sub, ok := params.String("subcommand"); ok {
		tokens = append(tokens, sub)
	}
	cmd, path, rest, found := inv.Registry.Resolve(tokens)
	if !found {
		suggestion, _ := commands.Suggest(name, inv.Registry.Names())
		return &commands.UnknownCommandError{Name: name, Suggestion: suggestion}
	}
	if len(rest) > 0 {
		names := cmd.SubCommandNames()
		suggestion, _ := commands.Suggest(rest[0], names)
		return &commands.UnknownCommandError{
			Name:       rest[0],
			Parent:     strings.Join(path, " "),
			Suggestion: suggestion,
			Available:  names,
		}
	}

	rendered, err := help.RenderCommand(cmd.HelpInfo(strings.Join(path, " ")))
	if err != nil {
		return err
	}
	inv.Printer.Print(rendered)
	return nil
}
