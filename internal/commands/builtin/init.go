// Package builtin provides the commands paramshell ships with: the schedule
// and shift roster commands, stats, help and version.
package builtin

import (
	"fmt"

	"paramshell/internal/commands"
)

// dateLayout is how dates are printed back to the user.
const dateLayout = "02/01/2006"

func init() {
	for _, cmd := range Commands() {
		if err := commands.GlobalRegistry.Register(cmd); err != nil {
			panic(fmt.Sprintf("failed to register %s command: %v", cmd.Name, err))
		}
	}
}

// Commands returns fresh copies of every builtin command.
func Commands() []*commands.Command {
	return []*commands.Command{
		scheduleCommand(),
		shiftCommand(),
		statsCommand(),
		helpCommand(),
		versionCommand(),
	}
}
