package output

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"paramshell/internal/scheme"
	"paramshell/pkg/paramtypes"
)

const (
	markOpen  = "\x00"
	markClose = "\x01"
)

// FormatMatchError renders a failed match as an error line, the location of
// the failing scheme element and a usage line with that element marked. When
// the element can be located a caret line points at it.
//
// render styles each part; pass nil for plain text.
func FormatMatchError(command string, outcome paramtypes.MatchOutcome, render func(SemanticType, string) string) string {
	if render == nil {
		render = func(_ SemanticType, text string) string { return text }
	}

	var b strings.Builder
	b.WriteString(render(SemanticError, "Error: "+outcome.Result.ErrMessage))
	b.WriteString("\n")

	path := outcome.Result.ErrItemPath
	b.WriteString(render(SemanticHint, "  at    "+scheme.DescribePath(outcome.Scheme, path)))
	b.WriteString("\n")

	marked := scheme.UsageWithHighlight(outcome.Scheme, path, func(s string) string {
		return markOpen + s + markClose
	})
	prefix := "  usage "
	if command != "" {
		prefix += command + " "
	}

	start := strings.Index(marked, markOpen)
	end := strings.Index(marked, markClose)
	if start < 0 || end < start {
		b.WriteString(render(SemanticUsage, strings.TrimRight(prefix+marked, " ")))
		b.WriteString("\n")
		return b.String()
	}

	before, target, after := marked[:start], marked[start+1:end], marked[end+1:]
	b.WriteString(render(SemanticUsage, prefix+before))
	b.WriteString(render(SemanticHighlight, target))
	b.WriteString(render(SemanticUsage, after))
	b.WriteString("\n")

	b.WriteString(strings.Repeat(" ", ansi.StringWidth(prefix+before)))
	b.WriteString(render(SemanticHighlight, strings.Repeat("^", max(1, ansi.StringWidth(target)))))
	b.WriteString("\n")
	return b.String()
}

// MatchError writes FormatMatchError output using the printer's styles.
func (p *Printer) MatchError(command string, outcome paramtypes.MatchOutcome) {
	text := FormatMatchError(command, outcome, p.Render)
	p.output(SemanticPlain, text, true)
}
