package shell

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paramshell/internal/commands"
	"paramshell/internal/output"
	"paramshell/internal/services"
)

const rosterScheme = `commands:
  - name: roster
    variants:
      - name: by-employee
        parameters:
          - {name: employee, type: string}
          - {name: "--verbose", type: literal, namedPair: true, optional: true}
`

func newTestSession(t *testing.T, schemeFiles ...string) (*Session, *output.CaptureBuffer) {
	t.Helper()

	original := services.GetGlobalRegistry()
	originalPrinter := output.GetGlobalPrinter()
	t.Cleanup(func() {
		services.SetGlobalRegistry(original)
		output.SetGlobalPrinter(originalPrinter)
	})
	services.SetGlobalRegistry(services.NewRegistry())

	v := viper.New()
	v.Set(services.KeyTestMode, true)
	v.Set(services.KeyAllowedActions, "shift.remove")
	if len(schemeFiles) > 0 {
		v.Set(services.KeySchemeFiles, schemeFiles)
	}
	config := services.NewConfigurationService(v).WithDirectories(t.TempDir(), t.TempDir())

	out := output.NewCaptureBuffer()
	session, err := InitializeServices(config, out)
	require.NoError(t, err)
	return session, out
}

func TestInitializeServices(t *testing.T) {
	session, _ := newTestSession(t)

	assert.True(t, session.Settings.TestMode)
	for _, name := range []string{
		services.ConfigurationServiceName,
		services.MarkdownServiceName,
		services.HelpServiceName,
		services.ShiftServiceName,
		services.SchemeServiceName,
	} {
		assert.True(t, services.GetGlobalRegistry().HasService(name), name)
	}
	assert.Same(t, session.Printer, output.GetGlobalPrinter())
}

func TestInitializeServices_BadSchemeFile(t *testing.T) {
	services.SetGlobalRegistry(services.NewRegistry())
	t.Cleanup(func() { services.SetGlobalRegistry(services.NewRegistry()) })

	v := viper.New()
	v.Set(services.KeyTestMode, true)
	v.Set(services.KeySchemeFiles, filepath.Join(t.TempDir(), "missing.yaml"))
	config := services.NewConfigurationService(v).WithDirectories(t.TempDir(), t.TempDir())

	_, err := InitializeServices(config, io.Discard)
	assert.ErrorContains(t, err, "failed to initialize service scheme")
}

func TestNewPrinter(t *testing.T) {
	_, err := NewPrinter(services.Settings{Output: "html"}, io.Discard)
	assert.ErrorContains(t, err, "unknown output mode")

	_, err = NewPrinter(services.Settings{Theme: "neon"}, io.Discard)
	assert.ErrorContains(t, err, "unknown theme")

	printer, err := NewPrinter(services.Settings{Theme: "plain", Output: "json"}, io.Discard)
	require.NoError(t, err)
	assert.NotNil(t, printer)
}

func TestProcessInput(t *testing.T) {
	session, out := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, session.ProcessInput(ctx, "shift add 12/03/2024 09:00 17:00 ann"))
	assert.Equal(t, "Added shift 1: ann on 12/03/2024, 09:00-17:00 (8 h)\n", out.String())

	out.Reset()
	require.NoError(t, session.ProcessInput(ctx, "  # a comment"))
	assert.Empty(t, out.String())

	out.Reset()
	err := session.ProcessInput(ctx, "shfit add")
	var unknown *commands.UnknownCommandError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []string{
		`Error: unknown command: shfit (did you mean "shift"?)`,
		"Type help for available commands",
	}, out.Lines())

	out.Reset()
	err = session.ProcessInput(ctx, "shift remove 7")
	assert.ErrorIs(t, err, services.ErrShiftNotFound)
	assert.Equal(t, "Error: shift remove: shift not found: 7\n", out.String())
}

func TestProcessInput_MatchError(t *testing.T) {
	session, out := newTestSession(t)

	err := session.ProcessInput(context.Background(), "shift add 12/03/2024 9am 17:00 ann")
	var matchErr *commands.MatchError
	require.ErrorAs(t, err, &matchErr)

	lines := out.Lines()
	require.Len(t, lines, 4)
	assert.Equal(t, `Error: Parameter start must be a valid 24-hour time in HH:MM format, got "9am"`, lines[0])
	assert.Equal(t, "  at    top-level item 1 (<start:time>)", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "  usage shift add <day:date> <start:time>"))
	assert.Equal(t, strings.Repeat(" ", len("  usage shift add <day:date> "))+"^^^^^^^^^^^^", lines[3])
}

func TestProcessInput_SchemeFileCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(rosterScheme), 0o600))

	session, out := newTestSession(t, path)
	require.NoError(t, session.ProcessInput(context.Background(), "roster ann --verbose"))
	assert.Equal(t, []string{
		"roster (by-employee) matched",
		`  --verbose = "--verbose"`,
		`  employee = "ann"`,
	}, out.Lines())
	assert.Equal(t, []string{path}, session.Schemes.Paths())
}

func TestRunScript(t *testing.T) {
	session, out := newTestSession(t)
	ctx := context.Background()

	script := strings.Join([]string{
		"# roster for the week",
		"shift add 12/03/2024 09:00 17:00 ann",
		"",
		"shift add 12/03/2024 10:00 11:00 ann",
		"shift add 13/03/2024 09:00 17:00 bob",
	}, "\n")

	err := session.RunScript(ctx, script)
	assert.ErrorContains(t, err, "line 4: shift add: shift overlaps shift 1")
	assert.Len(t, out.Lines(), 2)

	out.Reset()
	err = session.RunScript(ctx, `shift add "12/03/2024`)
	assert.ErrorContains(t, err, "line 1: failed to tokenize")
	assert.True(t, strings.HasPrefix(out.String(), "Error: line 1"))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, session.RunScript(cancelled, "version"), context.Canceled)
}

type scriptedReader struct {
	lines []string
	errs  []error
	reads int
}

func (r *scriptedReader) Readline() (string, error) {
	if r.reads >= len(r.lines) {
		return "", io.EOF
	}
	i := r.reads
	r.reads++
	var err error
	if i < len(r.errs) {
		err = r.errs[i]
	}
	return r.lines[i], err
}

func TestLoop(t *testing.T) {
	session, out := newTestSession(t)

	reader := &scriptedReader{lines: []string{"version", "bogus", "half typed", "EXIT", "version"},
		errs: []error{nil, nil, readline.ErrInterrupt}}
	require.NoError(t, session.Loop(context.Background(), reader))
	assert.Equal(t, 4, reader.reads)

	text := out.String()
	assert.Equal(t, 1, strings.Count(text, "paramshell v"))
	assert.Contains(t, text, "unknown command: bogus")

	reader = &scriptedReader{lines: []string{""}, errs: []error{readline.ErrInterrupt}}
	require.NoError(t, session.Loop(context.Background(), reader))

	reader = &scriptedReader{lines: []string{"version"}}
	require.NoError(t, session.Loop(context.Background(), reader))
	assert.Equal(t, 1, reader.reads, "EOF ends the loop")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reader = &scriptedReader{lines: []string{"version"}}
	require.NoError(t, session.Loop(ctx, reader))
	assert.Zero(t, reader.reads)
}

func TestCompleter(t *testing.T) {
	completer := Completer(commands.GlobalRegistry)

	candidates, offset := completer.Do([]rune("sch"), 3)
	assert.Equal(t, 3, offset)
	assert.Contains(t, runeStrings(candidates), "edule ")

	candidates, _ = completer.Do([]rune("shift r"), 7)
	assert.Contains(t, runeStrings(candidates), "emove ")
}

func runeStrings(candidates [][]rune) []string {
	result := make([]string, len(candidates))
	for i, c := range candidates {
		result[i] = string(c)
	}
	return result
}
