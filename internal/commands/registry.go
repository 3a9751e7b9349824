package commands

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"paramshell/internal/logger"
	"paramshell/internal/scheme"
)

// Registry manages command registration and lookup. Command names are
// case-insensitive. Builtin commands take precedence over commands loaded
// from scheme files.
type Registry struct {
	mu            sync.RWMutex
	commands      map[string]*Command
	verifySchemes bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
	}
}

// SetVerifySchemes turns scheme verification on registration on or off.
// It is meant for development builds: a scheme that fails verification is
// refused instead of misbehaving at match time.
func (r *Registry) SetVerifySchemes(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verifySchemes = enabled
}

// Register adds a command. Registering a builtin over a file command replaces
// it; the opposite, and any other duplicate, is an error.
func (r *Registry) Register(cmd *Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.validate(cmd); err != nil {
		return err
	}

	key := strings.ToLower(cmd.Name)
	if existing, exists := r.commands[key]; exists {
		if existing.Source != SourceFile || cmd.Source != SourceBuiltin {
			return fmt.Errorf("command %s already registered (%s)", cmd.Name, existing.Source)
		}
		logger.Debug("Builtin command replaces file command", "command", cmd.Name)
	}

	r.commands[key] = cmd
	return nil
}

// ReplaceFileCommands swaps every file command for cmds. Nothing changes
// when any of cmds is invalid.
func (r *Registry) ReplaceFileCommands(cmds []*Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make(map[string]*Command, len(r.commands)+len(cmds))
	for key, cmd := range r.commands {
		if cmd.Source == SourceBuiltin {
			next[key] = cmd
		}
	}

	var errs []error
	for _, cmd := range cmds {
		if cmd.Source != SourceFile {
			errs = append(errs, fmt.Errorf("command %s is not a file command", cmd.Name))
			continue
		}
		if err := r.validate(cmd); err != nil {
			errs = append(errs, err)
			continue
		}
		key := strings.ToLower(cmd.Name)
		if existing, exists := next[key]; exists {
			if existing.Source == SourceBuiltin {
				logger.Debug("File command shadowed by builtin", "command", cmd.Name)
				continue
			}
			errs = append(errs, fmt.Errorf("command %s defined more than once", cmd.Name))
			continue
		}
		next[key] = cmd
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	r.commands = next
	return nil
}

// Unregister removes a command. Unknown names are ignored.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.commands, strings.ToLower(name))
}

// Get looks up a top-level command.
func (r *Registry) Get(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, exists := r.commands[strings.ToLower(name)]
	return cmd, exists
}

// GetAll returns every command sorted by name.
func (r *Registry) GetAll() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	commands := make([]*Command, 0, len(r.commands))
	for _, key := range slices.Sorted(maps.Keys(r.commands)) {
		commands = append(commands, r.commands[key])
	}
	return commands
}

// Names returns the sorted top-level command names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.commands))
}

// Resolve walks tokens down the command tree. It returns the deepest command
// reached, the names on the way there and the tokens left for the matcher.
func (r *Registry) Resolve(tokens []string) (*Command, []string, []string, bool) {
	if len(tokens) == 0 {
		return nil, nil, nil, false
	}
	cmd, ok := r.Get(tokens[0])
	if !ok {
		return nil, nil, nil, false
	}

	path := []string{cmd.Name}
	i := 1
	for i < len(tokens) {
		sub, found := cmd.SubCommand(tokens[i])
		if !found {
			break
		}
		cmd = sub
		path = append(path, sub.Name)
		i++
	}
	return cmd, path, tokens[i:], true
}

func (r *Registry) validate(cmd *Command) error {
	if cmd == nil {
		return fmt.Errorf("command cannot be nil")
	}
	return r.validateTree(cmd, cmd.Name, cmd.Source)
}

func (r *Registry) validateTree(cmd *Command, path string, source Source) error {
	if strings.TrimSpace(cmd.Name) == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if strings.ContainsAny(cmd.Name, " \t") {
		return fmt.Errorf("command name %q cannot contain whitespace", cmd.Name)
	}
	if len(cmd.Variants) == 0 && len(cmd.SubCommands) == 0 {
		return fmt.Errorf("command %s has neither variants nor sub commands", path)
	}

	seen := make(map[string]bool, len(cmd.SubCommands))
	for _, sub := range cmd.SubCommands {
		key := strings.ToLower(sub.Name)
		if seen[key] {
			return fmt.Errorf("command %s: duplicate sub command %s", path, sub.Name)
		}
		seen[key] = true
		if err := r.validateTree(sub, path+" "+sub.Name, source); err != nil {
			return err
		}
	}

	for _, v := range cmd.Variants {
		if v.Handler == nil && source == SourceBuiltin {
			return fmt.Errorf("command %s variant %s has no handler", path, v.Name)
		}
		if r.verifySchemes {
			if err := scheme.Verify(v.Scheme); err != nil {
				return fmt.Errorf("command %s variant %s: %w", path, v.Name, err)
			}
		}
	}
	return nil
}

// GlobalRegistry holds the builtin commands, which register themselves in init.
var GlobalRegistry = NewRegistry()
