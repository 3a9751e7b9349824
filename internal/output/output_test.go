package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pt "paramshell/pkg/paramtypes"
)

func TestPrinterBasicOutput(t *testing.T) {
	out := CaptureOutput(func(p *Printer) {
		p.Print("hello ")
		p.Println("world")
		p.Printf("hours: %d", 38)
	})
	assert.Equal(t, "hello world\nhours: 38", out)
}

func TestPrinterPlainPrefixes(t *testing.T) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), TestMode())

	printer.Info("schedule loaded")
	printer.Success("shift added")
	printer.Warning("overlapping shift")
	printer.Error("unknown command")
	printer.Usage("shift remove <id:number>")
	printer.Hint("did you mean stats?")

	assert.Equal(t, []string{
		"schedule loaded",
		"shift added",
		"Warning: overlapping shift",
		"Error: unknown command",
		"shift remove <id:number>",
		"did you mean stats?",
	}, buffer.Lines())
}

func TestPrinterPlainStripsEscapes(t *testing.T) {
	out := CaptureOutput(func(p *Printer) {
		p.Println("\x1b[1mbold\x1b[0m text")
	})
	assert.Equal(t, "bold text\n", out)
}

func TestPrinterWithStyles(t *testing.T) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), WithStyles(MarkerStyles{}))

	assert.True(t, printer.IsStylable())
	printer.Command("shift")
	printer.Print(" ")
	printer.Parameter("<id:number>")
	printer.Error("nope")

	assert.Equal(t, "[command]shift[/command][plain] [/plain][parameter]<id:number>[/parameter][error]nope[/error]\n", buffer.String())
	assert.Equal(t, "[usage]x[/usage]", printer.Render(SemanticUsage, "x"))
}

func TestPrinterStylesIgnoredWhenPlain(t *testing.T) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), WithStyles(MarkerStyles{}), PlainText())

	assert.False(t, printer.IsStylable())
	printer.Info("plain")
	assert.Equal(t, "plain\n", buffer.String())
	assert.Equal(t, "x", printer.Render(SemanticUsage, "x"))
}

func TestPrinterJSONMode(t *testing.T) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), JSON())

	printer.Success("shift added")
	printer.Error("\x1b[31mfailed\x1b[0m")

	lines := buffer.Lines()
	require.Len(t, lines, 2)

	var first, second map[string]string
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, map[string]string{"type": "success", "message": "shift added"}, first)
	assert.Equal(t, map[string]string{"type": "error", "message": "failed"}, second)
}

func TestPrinterSilentAndPrefix(t *testing.T) {
	buffer := NewCaptureBuffer()
	NewPrinter(WithWriter(buffer), Silent()).Info("hidden")
	assert.Empty(t, buffer.String())

	NewPrinter(WithWriter(buffer), TestMode(), WithPrefix("[paramshell] ")).Info("ready")
	assert.Equal(t, "[paramshell] ready\n", buffer.String())
}

func TestPrinterConcurrentWrites(t *testing.T) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), TestMode())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			printer.Info("line")
		}()
	}
	wg.Wait()

	lines := buffer.Lines()
	assert.Len(t, lines, 20)
	for _, line := range lines {
		assert.Equal(t, "line", line)
	}
}

func TestGlobalPrinter(t *testing.T) {
	original := GetGlobalPrinter()
	defer SetGlobalPrinter(original)

	buffer := NewCaptureBuffer()
	ConfigureGlobal(WithWriter(buffer), TestMode())
	Info("a")
	Warning("b")
	Println("c")

	assert.Equal(t, "a\nWarning: b\nc\n", buffer.String())
}

func TestThemes(t *testing.T) {
	assert.Equal(t, []string{"default", "plain"}, ThemeNames())

	var buf bytes.Buffer
	theme, err := LoadTheme("", &buf)
	require.NoError(t, err)
	assert.Equal(t, "default", theme.Name)

	theme.SetColorProfile(termenv.Ascii)
	assert.False(t, theme.IsAvailable())

	theme.SetColorProfile(termenv.ANSI256)
	assert.True(t, theme.IsAvailable())
	assert.Contains(t, theme.GetStyle("error").Render("boom"), "\x1b[")
	assert.Equal(t, "x", theme.GetStyle("nonexistent").Render("x"))

	_, err = LoadTheme("neon", &buf)
	assert.ErrorContains(t, err, "available: default, plain")
}

func TestParseTheme_Errors(t *testing.T) {
	renderer := lipgloss.NewRenderer(&bytes.Buffer{})

	_, err := ParseTheme([]byte("name: x\nstyles:\n  sparkle: {bold: true}\n"), renderer)
	assert.ErrorContains(t, err, `unknown style "sparkle"`)

	_, err = ParseTheme([]byte("name: x\nstyles:\n  error: {foreground: {light: \"#000\"}}\n"), renderer)
	assert.ErrorContains(t, err, "invalid colour")

	_, err = ParseTheme([]byte("styles: ["), renderer)
	assert.ErrorContains(t, err, "failed to parse theme")
}

func scheduleShow() pt.ParametersList {
	return pt.ParametersList{
		pt.OneOf(pt.LiteralParam("today"), pt.LiteralParam("week"), pt.DateParam("day")),
		pt.StringParam("--user").AsNamedPair(),
		pt.DateParam("--after").AsNamedPair(),
	}
}

func TestFormatMatchError(t *testing.T) {
	outcome := pt.MatchOutcome{
		Result: pt.MatchResult{
			ErrMessage:  `Parameter day must be a valid date in DD/MM/YYYY format, got "31/02/2024"`,
			ErrItemPath: []int{0, 2},
		},
		Scheme: scheduleShow(),
	}

	expected := strings.Join([]string{
		`Error: Parameter day must be a valid date in DD/MM/YYYY format, got "31/02/2024"`,
		"  at    top-level item 0, nested group item 2 (<day:date>)",
		"  usage schedule show (today | week | <day:date>) [--user <string>] [--after <date>]",
		strings.Repeat(" ", 38) + "^^^^^^^^^^",
		"",
	}, "\n")
	assert.Equal(t, expected, FormatMatchError("schedule show", outcome, nil))
}

func TestFormatMatchError_WholeCommand(t *testing.T) {
	outcome := pt.MatchOutcome{
		Result: pt.MatchResult{ErrMessage: `Unexpected parameter "extra"`, ErrItemPath: []int{}},
		Scheme: pt.ParametersList{pt.NumberParam("id")},
	}

	expected := "Error: Unexpected parameter \"extra\"\n  at    command\n  usage shift remove <id:number>\n"
	assert.Equal(t, expected, FormatMatchError("shift remove", outcome, nil))
}

func TestPrinterMatchError_Styled(t *testing.T) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), WithStyles(MarkerStyles{}))

	printer.MatchError("shift remove", pt.MatchOutcome{
		Result: pt.MatchResult{ErrMessage: "Missing number parameter id", ErrItemPath: []int{0}},
		Scheme: pt.ParametersList{pt.NumberParam("id")},
	})

	out := buffer.String()
	assert.Contains(t, out, "[error]Error: Missing number parameter id[/error]")
	assert.Contains(t, out, "[highlight]<id:number>[/highlight]")
	assert.Contains(t, out, "[highlight]^^^^^^^^^^^[/highlight]")
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
	}{
		{"", ModeAuto},
		{"auto", ModeAuto},
		{"Styled", ModeStyled},
		{" plain ", ModePlain},
		{"json", ModeJSON},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseMode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}

	_, err := ParseMode("html")
	assert.ErrorContains(t, err, `unknown output mode "html"`)
}
