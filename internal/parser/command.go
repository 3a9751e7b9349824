// Package parser splits raw command lines into the tokens the scheme matcher works on.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ErrEmptyInput is returned for blank lines and comment-only lines.
var ErrEmptyInput = errors.New("empty input")

// CommandLine is one tokenized line of input.
type CommandLine struct {
	Raw    string
	Tokens []string
	// LineNumber is 1-based for lines read from a script and 0 otherwise.
	LineNumber int
}

// ParseLine tokenizes a single command line using shell quoting rules.
// A leading backslash before the command name is accepted and dropped.
func ParseLine(input string) (*CommandLine, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, ErrEmptyInput
	}
	trimmed = strings.TrimPrefix(trimmed, "\\")

	tokens, err := shellquote.Split(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize %q: %w", input, err)
	}
	if len(tokens) == 0 {
		return nil, ErrEmptyInput
	}

	return &CommandLine{Raw: input, Tokens: tokens}, nil
}

// ParseScript tokenizes every non-blank, non-comment line of a script.
func ParseScript(content string) ([]*CommandLine, error) {
	var lines []*CommandLine
	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line, err := ParseLine(scanner.Text())
		if errors.Is(err, ErrEmptyInput) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		line.LineNumber = lineNumber
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return lines, nil
}

// Name returns the lower-cased command name.
func (c *CommandLine) Name() string {
	if len(c.Tokens) == 0 {
		return ""
	}
	return strings.ToLower(c.Tokens[0])
}

// Args returns the tokens after the command name.
func (c *CommandLine) Args() []string {
	if len(c.Tokens) < 2 {
		return nil
	}
	return c.Tokens[1:]
}

// String re-quotes the tokens so the result parses back to the same tokens.
func (c *CommandLine) String() string {
	return Join(c.Tokens)
}

// Join quotes tokens for display.
func Join(tokens []string) string {
	return shellquote.Join(tokens...)
}
