package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pt "paramshell/pkg/paramtypes"
)

func noop(context.Context, *Invocation) error { return nil }

func simpleCommand(name string, source Source) *Command {
	return &Command{
		Name:   name,
		Source: source,
		Variants: []Variant{{
			Name:    "default",
			Scheme:  pt.ParametersList{pt.NumberParam("id")},
			Handler: noop,
		}},
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(simpleCommand("Stats", SourceBuiltin)))

	cmd, ok := registry.Get("stats")
	require.True(t, ok)
	assert.Equal(t, "Stats", cmd.Name)

	_, ok = registry.Get("STATS")
	assert.True(t, ok)

	err := registry.Register(simpleCommand("stats", SourceBuiltin))
	assert.ErrorContains(t, err, "already registered (builtin)")

	registry.Unregister("STATS")
	_, ok = registry.Get("stats")
	assert.False(t, ok)
	registry.Unregister("missing")
}

func TestRegistry_Validation(t *testing.T) {
	tests := []struct {
		name        string
		cmd         *Command
		errContains string
	}{
		{"nil", nil, "cannot be nil"},
		{"empty name", &Command{Name: " "}, "name cannot be empty"},
		{"whitespace", simpleCommand("shift add", SourceBuiltin), "cannot contain whitespace"},
		{"no variants", &Command{Name: "shift"}, "neither variants nor sub commands"},
		{
			name: "missing handler",
			cmd: &Command{Name: "stats", Variants: []Variant{
				{Name: "metric", Scheme: pt.ParametersList{pt.StringParam("metric")}},
			}},
			errContains: "variant metric has no handler",
		},
		{
			name: "duplicate sub command",
			cmd: &Command{Name: "shift", SubCommands: []*Command{
				simpleCommand("add", SourceBuiltin), simpleCommand("ADD", SourceBuiltin),
			}},
			errContains: "duplicate sub command ADD",
		},
		{
			name: "invalid nested sub command",
			cmd: &Command{Name: "shift", SubCommands: []*Command{
				{Name: "remove"},
			}},
			errContains: "command shift remove has neither",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry().Register(tt.cmd)
			assert.ErrorContains(t, err, tt.errContains)
		})
	}
}

func TestRegistry_FileCommandWithoutHandlerIsAccepted(t *testing.T) {
	cmd := &Command{Name: "roster", Source: SourceFile, Variants: []Variant{
		{Name: "default", Scheme: pt.ParametersList{pt.StringParam("team")}},
	}}
	assert.NoError(t, NewRegistry().Register(cmd))
}

func TestRegistry_VerifySchemes(t *testing.T) {
	ambiguous := &Command{Name: "schedule", Variants: []Variant{{
		Name:    "by-person",
		Scheme:  pt.ParametersList{pt.OneOf(pt.StringParam("employee"), pt.StringParam("team"))},
		Handler: noop,
	}}}

	registry := NewRegistry()
	require.NoError(t, registry.Register(ambiguous), "verification is off by default")

	registry = NewRegistry()
	registry.SetVerifySchemes(true)
	err := registry.Register(ambiguous)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command schedule variant by-person")
	assert.Contains(t, err.Error(), "scheme design error")
}

func TestRegistry_SourcePrecedence(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(simpleCommand("roster", SourceFile)))
	require.NoError(t, registry.Register(simpleCommand("roster", SourceBuiltin)), "builtin replaces file command")

	cmd, _ := registry.Get("roster")
	assert.Equal(t, SourceBuiltin, cmd.Source)

	err := registry.Register(simpleCommand("roster", SourceFile))
	assert.ErrorContains(t, err, "already registered (builtin)")
}

func TestRegistry_ReplaceFileCommands(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(simpleCommand("stats", SourceBuiltin)))
	require.NoError(t, registry.Register(simpleCommand("roster", SourceFile)))

	err := registry.ReplaceFileCommands([]*Command{
		simpleCommand("leave", SourceFile),
		simpleCommand("stats", SourceFile),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"leave", "stats"}, registry.Names())
	stats, _ := registry.Get("stats")
	assert.Equal(t, SourceBuiltin, stats.Source)

	err = registry.ReplaceFileCommands([]*Command{
		simpleCommand("overtime", SourceFile),
		{Name: "broken", Source: SourceFile},
		simpleCommand("builtin", SourceBuiltin),
		simpleCommand("overtime", SourceFile),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither variants nor sub commands")
	assert.Contains(t, err.Error(), "not a file command")
	assert.Contains(t, err.Error(), "defined more than once")
	assert.Equal(t, []string{"leave", "stats"}, registry.Names(), "a failed replace changes nothing")
}

func TestRegistry_Resolve(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(&Command{
		Name: "shift",
		SubCommands: []*Command{
			simpleCommand("add", SourceBuiltin),
			simpleCommand("remove", SourceBuiltin),
		},
	}))

	tests := []struct {
		name         string
		tokens       []string
		expectedOK   bool
		expectedCmd  string
		expectedPath []string
		expectedRest []string
	}{
		{"sub command", []string{"shift", "remove", "42"}, true, "remove", []string{"shift", "remove"}, []string{"42"}},
		{"case insensitive", []string{"SHIFT", "Add"}, true, "add", []string{"shift", "add"}, []string{}},
		{"stops at parent", []string{"shift", "swap", "1"}, true, "shift", []string{"shift"}, []string{"swap", "1"}},
		{"unknown", []string{"leave"}, false, "", nil, nil},
		{"empty", nil, false, "", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, path, rest, ok := registry.Resolve(tt.tokens)
			assert.Equal(t, tt.expectedOK, ok)
			if !ok {
				assert.Nil(t, cmd)
				return
			}
			assert.Equal(t, tt.expectedCmd, cmd.Name)
			assert.Equal(t, tt.expectedPath, path)
			assert.Equal(t, tt.expectedRest, rest)
		})
	}
}

func TestRegistry_GetAllSorted(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"stats", "help", "shift"} {
		require.NoError(t, registry.Register(simpleCommand(name, SourceBuiltin)))
	}

	var names []string
	for _, cmd := range registry.GetAll() {
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{"help", "shift", "stats"}, names)
}

func TestCommand_HelpInfo(t *testing.T) {
	cmd := &Command{
		Name:        "shift",
		Description: "Manage shifts",
		Notes:       []string{"Times are 24-hour"},
		SubCommands: []*Command{{Name: "add", Description: "Add a shift"}},
		Variants: []Variant{{
			Name:     "by-id",
			Scheme:   pt.ParametersList{pt.NumberParam("id")},
			Examples: []pt.HelpExample{{Command: "shift 3", Description: "Show shift 3"}},
		}},
	}

	info := cmd.HelpInfo("shift")
	assert.Equal(t, "shift", info.Command)
	assert.Equal(t, "Manage shifts", info.Description)
	assert.Equal(t, []pt.HelpVariant{
		{Name: "by-id", Usage: "shift <id:number>"},
		{Name: "add", Description: "Add a shift", Usage: "shift add ..."},
	}, info.Variants)
	assert.Len(t, info.Examples, 1)
	assert.Equal(t, []string{"Times are 24-hour"}, info.Notes)
}

func TestSuggest(t *testing.T) {
	candidates := []string{"help", "schedule", "shift", "stats", "version"}

	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"shfit", "shift", true},
		{"stat", "stats", true},
		{"SCHEDULE", "schedule", true},
		{"hlep", "help", true},
		{"payroll", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			suggestion, ok := Suggest(tt.input, candidates)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.expected, suggestion)
			}
		})
	}

	_, ok := Suggest("shift", nil)
	assert.False(t, ok)
}
