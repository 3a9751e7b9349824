package paramtypes

import (
	"fmt"
	"time"
)

// TimeOfDay is the parsed value of a time parameter.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// String formats the time as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the instant of t on the calendar day of date, in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}

// MatchResult is the result of matching tokens against a scheme or group.
type MatchResult struct {
	Matches   bool
	Matched   []string
	Unmatched []string
	// Params maps parameter names to the raw tokens they consumed.
	Params map[string]string
	// ProcessedParams maps parameter names to converted values
	// (bool, int, string, time.Time or TimeOfDay).
	ProcessedParams map[string]any
	ErrMessage      string
	// ErrItemPath holds the child indexes from the root scheme down to the
	// element that failed.
	ErrItemPath []int
}

// MatchOutcome bundles a MatchResult with the data it was computed from.
type MatchOutcome struct {
	Result MatchResult
	// Input is a copy of the tokens given to the matcher, before named pair extraction.
	Input []string
	// NamedPairs maps lower-cased switches to their value; nil means the switch had no value.
	NamedPairs map[string]*string
	Scheme     ParametersList
}

// Matches reports whether the outcome is a successful match.
func (o MatchOutcome) Matches() bool {
	return o.Result.Matches
}

// String returns the processed string value of a parameter.
func (r MatchResult) String(name string) (string, bool) {
	v, ok := r.ProcessedParams[name].(string)
	return v, ok
}

// Int returns the processed integer value of a parameter.
func (r MatchResult) Int(name string) (int, bool) {
	v, ok := r.ProcessedParams[name].(int)
	return v, ok
}

// Bool returns the processed boolean value of a parameter.
func (r MatchResult) Bool(name string) (bool, bool) {
	v, ok := r.ProcessedParams[name].(bool)
	return v, ok
}

// Date returns the processed date value of a parameter.
func (r MatchResult) Date(name string) (time.Time, bool) {
	v, ok := r.ProcessedParams[name].(time.Time)
	return v, ok
}

// Time returns the processed time-of-day value of a parameter.
func (r MatchResult) Time(name string) (TimeOfDay, bool) {
	v, ok := r.ProcessedParams[name].(TimeOfDay)
	return v, ok
}

// Has reports whether a parameter was bound.
func (r MatchResult) Has(name string) bool {
	_, ok := r.ProcessedParams[name]
	return ok
}
