// Package output provides the console output layer for paramshell.
// Styling is injected through a StyleProvider so the printer works the same
// with a themed terminal, a plain pipe or a JSON consumer.
package output

import (
	"fmt"
	"strings"
)

// StyleProvider supplies styles for semantic output types.
type StyleProvider interface {
	// GetStyle returns the style used for the given semantic type.
	GetStyle(semantic string) TextStyle

	// IsAvailable reports whether styled output should be produced at all.
	// Printers fall back to plain text when it returns false.
	IsAvailable() bool
}

// TextStyle renders text with a style applied.
type TextStyle interface {
	Render(text string) string
}

// Mode selects how the printer renders output.
type Mode int

const (
	// ModeAuto uses styles when the provider is available and plain text otherwise.
	ModeAuto Mode = iota

	// ModeStyled always asks the provider for styles.
	ModeStyled

	// ModePlain writes text with ANSI sequences removed.
	ModePlain

	// ModeJSON writes one JSON object per message.
	ModeJSON
)

// ParseMode maps a configuration value to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return ModeAuto, nil
	case "styled":
		return ModeStyled, nil
	case "plain":
		return ModePlain, nil
	case "json":
		return ModeJSON, nil
	}
	return ModeAuto, fmt.Errorf("unknown output mode %q (expected auto, styled, plain or json)", name)
}

// SemanticType is the meaning of a piece of output.
type SemanticType string

const (
	SemanticPlain   SemanticType = "plain"
	SemanticInfo    SemanticType = "info"
	SemanticSuccess SemanticType = "success"
	SemanticWarning SemanticType = "warning"
	SemanticError   SemanticType = "error"

	// SemanticCommand marks command names.
	SemanticCommand SemanticType = "command"
	// SemanticParameter marks parameter names and placeholders.
	SemanticParameter SemanticType = "parameter"
	SemanticKeyword   SemanticType = "keyword"

	SemanticHighlight SemanticType = "highlight"
	SemanticBold      SemanticType = "bold"

	// SemanticUsage marks usage synopsis lines.
	SemanticUsage SemanticType = "usage"
	// SemanticHint marks secondary text such as locations and suggestions.
	SemanticHint SemanticType = "hint"
)

// SemanticTypes lists every semantic type a theme may style.
var SemanticTypes = []SemanticType{
	SemanticPlain, SemanticInfo, SemanticSuccess, SemanticWarning, SemanticError,
	SemanticCommand, SemanticParameter, SemanticKeyword,
	SemanticHighlight, SemanticBold, SemanticUsage, SemanticHint,
}
