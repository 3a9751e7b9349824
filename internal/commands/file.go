package commands

import (
	"fmt"

	"paramshell/internal/scheme"
)

// FromFile converts the commands of a scheme file into file commands.
// Their variants print the bound parameters when matched.
func FromFile(file *scheme.File) ([]*Command, error) {
	commands := make([]*Command, 0, len(file.Commands))
	for _, spec := range file.Commands {
		cmd, err := fromSpec(spec)
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}

func fromSpec(spec scheme.CommandSpec) (*Command, error) {
	cmd := &Command{
		Name:        spec.Name,
		Description: spec.Description,
		Source:      SourceFile,
	}
	for _, variantSpec := range spec.Variants {
		list, err := variantSpec.Scheme()
		if err != nil {
			return nil, fmt.Errorf("command %s variant %s: %w", spec.Name, variantSpec.Name, err)
		}
		cmd.Variants = append(cmd.Variants, Variant{
			Name:        variantSpec.Name,
			Description: variantSpec.Description,
			Scheme:      list,
			Handler:     EchoHandler,
		})
	}
	for _, subSpec := range spec.SubCommands {
		sub, err := fromSpec(subSpec)
		if err != nil {
			return nil, fmt.Errorf("command %s: %w", spec.Name, err)
		}
		cmd.SubCommands = append(cmd.SubCommands, sub)
	}
	return cmd, nil
}
