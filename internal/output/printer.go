package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// Printer writes semantic output. It is safe for concurrent use.
type Printer struct {
	styleProvider StyleProvider
	writer        io.Writer
	mode          Mode
	forcePlain    bool
	silent        bool
	prefix        string

	mu sync.Mutex
}

// NewPrinter creates a Printer writing to os.Stdout in ModeAuto unless
// options say otherwise.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer: os.Stdout,
		mode:   ModeAuto,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Print writes text without a trailing newline.
func (p *Printer) Print(text string) {
	p.output(SemanticPlain, text, false)
}

// Printf writes formatted text without a trailing newline.
func (p *Printer) Printf(format string, args ...any) {
	p.output(SemanticPlain, fmt.Sprintf(format, args...), false)
}

// Println writes text followed by a newline.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text, true)
}

// Info writes an informational line.
func (p *Printer) Info(text string) {
	p.output(SemanticInfo, text, true)
}

// Success writes a success line.
func (p *Printer) Success(text string) {
	p.output(SemanticSuccess, text, true)
}

// Warning writes a warning line.
func (p *Printer) Warning(text string) {
	p.output(SemanticWarning, text, true)
}

// Error writes an error line.
func (p *Printer) Error(text string) {
	p.output(SemanticError, text, true)
}

// Command writes a command name inline.
func (p *Printer) Command(text string) {
	p.output(SemanticCommand, text, false)
}

// Parameter writes a parameter name inline.
func (p *Printer) Parameter(text string) {
	p.output(SemanticParameter, text, false)
}

// Usage writes a usage line.
func (p *Printer) Usage(text string) {
	p.output(SemanticUsage, text, true)
}

// Hint writes secondary information.
func (p *Printer) Hint(text string) {
	p.output(SemanticHint, text, true)
}

// Render returns text as it would be styled by this printer, without writing it.
func (p *Printer) Render(semantic SemanticType, text string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode == ModeJSON || !p.stylable() {
		return text
	}
	return p.styleProvider.GetStyle(string(semantic)).Render(text)
}

func (p *Printer) output(semantic SemanticType, text string, addNewline bool) {
	if p.silent {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var finalText string
	switch p.mode {
	case ModeJSON:
		finalText = renderJSON(semantic, text)
	case ModePlain:
		finalText = renderPlain(semantic, text, addNewline)
	case ModeStyled, ModeAuto:
		if p.stylable() {
			finalText = withNewline(p.styleProvider.GetStyle(string(semantic)).Render(text), addNewline)
		} else {
			finalText = renderPlain(semantic, text, addNewline)
		}
	}

	if p.prefix != "" {
		finalText = p.prefix + finalText
	}

	_, _ = fmt.Fprint(p.writer, finalText)
}

func (p *Printer) stylable() bool {
	return !p.forcePlain && p.styleProvider != nil && p.styleProvider.IsAvailable()
}

func renderPlain(semantic SemanticType, text string, addNewline bool) string {
	return withNewline(plainPrefix(semantic)+ansi.Strip(text), addNewline)
}

func plainPrefix(semantic SemanticType) string {
	switch semantic {
	case SemanticError:
		return "Error: "
	case SemanticWarning:
		return "Warning: "
	}
	return ""
}

func withNewline(text string, addNewline bool) string {
	if addNewline && !strings.HasSuffix(text, "\n") {
		return text + "\n"
	}
	return text
}

func renderJSON(semantic SemanticType, text string) string {
	data, err := json.Marshal(map[string]any{
		"type":    semantic,
		"message": ansi.Strip(text),
	})
	if err != nil {
		return text + "\n"
	}
	return string(data) + "\n"
}

// SetWriter changes the output writer.
func (p *Printer) SetWriter(writer io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writer = writer
}

// SetMode changes the output mode.
func (p *Printer) SetMode(mode Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
}

// SetStyleProvider changes the style provider. Pass nil to disable styling.
func (p *Printer) SetStyleProvider(provider StyleProvider) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.styleProvider = provider
}

// IsStylable reports whether the printer applies styles.
func (p *Printer) IsStylable() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stylable()
}

func (p *Printer) String() string {
	hasStyles := "no"
	if p.IsStylable() {
		hasStyles = "yes"
	}
	return fmt.Sprintf("Printer{mode: %v, styles: %s, writer: %T}", p.mode, hasStyles, p.writer)
}
