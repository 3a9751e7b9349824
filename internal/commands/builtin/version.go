package builtin

import (
	"context"
	"fmt"

	"paramshell/internal/commands"
	"paramshell/internal/version"
	pt "paramshell/pkg/paramtypes"
)

func versionCommand() *commands.Command {
	return &commands.Command{
		Name:        "version",
		Description: "Show paramshell version information",
		Source:      commands.SourceBuiltin,
		Variants: []commands.Variant{{
			Name:    "default",
			Scheme:  pt.ParametersList{pt.LiteralParam("--detailed").AsNamedPair()},
			Handler: showVersion,
		}},
		Notes: []string{"The client version checked by variant requirements is set with --client-version."},
	}
}

// showVersion prints the version line, followed by the build details and the
// client version requirements are checked against when --detailed is given.
func showVersion(_ context.Context, inv *commands.Invocation) error {
	if !inv.Params().Has("--detailed") {
		inv.Printer.Println(version.GetFormattedVersion())
		return nil
	}

	inv.Printer.Println(version.GetDetailedVersion())
	inv.Printer.Println(fmt.Sprintf("Client version: %s", inv.Env.ClientVersion()))
	return nil
}
