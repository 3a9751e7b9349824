package commands

import (
	"fmt"
	"strings"

	"paramshell/internal/requirements"
	"paramshell/pkg/paramtypes"
)

// UnknownCommandError reports a command or sub command that does not exist.
type UnknownCommandError struct {
	// Name is the unknown token; empty when a sub command was required but missing.
	Name string
	// Parent is the command path the sub command was looked up under.
	Parent     string
	Suggestion string
	Available  []string
}

func (e *UnknownCommandError) Error() string {
	var msg string
	switch {
	case e.Parent == "":
		msg = fmt.Sprintf("unknown command: %s", e.Name)
	case e.Name == "":
		msg = fmt.Sprintf("%s needs a sub command", e.Parent)
	default:
		msg = fmt.Sprintf("unknown sub command %s for %s", e.Name, e.Parent)
	}
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (did you mean %q?)", msg, e.Suggestion)
	}
	if e.Parent != "" && len(e.Available) > 0 {
		return fmt.Sprintf("%s (expected one of: %s)", msg, strings.Join(e.Available, ", "))
	}
	return msg
}

// RequirementError reports that no variant of a command is available to the caller.
type RequirementError struct {
	Command     string
	Requirement paramtypes.Requirement
}

func (e *RequirementError) Error() string {
	return fmt.Sprintf("%s requires %s", e.Command, requirements.Describe(e.Requirement))
}

// MatchError reports that the input matched none of a command's variants.
// Outcome belongs to the variant whose failure got furthest through the input.
type MatchError struct {
	Command string
	Variant string
	Outcome paramtypes.MatchOutcome
	// Tried is the number of variants attempted.
	Tried int
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Outcome.Result.ErrMessage)
}

// progress orders failures: more matched tokens first, then the deeper error path.
func (e *MatchError) progress() (int, int) {
	return len(e.Outcome.Result.Matched), len(e.Outcome.Result.ErrItemPath)
}

func (e *MatchError) furtherThan(other *MatchError) bool {
	matched, depth := e.progress()
	otherMatched, otherDepth := other.progress()
	if matched != otherMatched {
		return matched > otherMatched
	}
	return depth > otherDepth
}
