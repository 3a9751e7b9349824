package scheme

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"paramshell/pkg/paramtypes"
)

var (
	datePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	timePattern = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})$`)
)

// ParameterMatch is the result of matching one token against a Parameter.
type ParameterMatch struct {
	Matches     bool
	ParsedValue any
	ErrMessage  string
}

// MatchParameter validates and converts a single token. A nil token means the
// argument is absent.
func MatchParameter(token *string, p paramtypes.Parameter) ParameterMatch {
	var (
		parsed  any
		ok      bool
		message string
	)

	switch p.Type {
	case paramtypes.TypeBoolean:
		parsed, ok = parseBool(token)
		if !ok {
			message = presentOrMissing(token,
				fmt.Sprintf("Parameter %s must be true/false or 1/0, got %q", p.Name, deref(token)),
				fmt.Sprintf("Missing boolean parameter %s (true/false)", p.Name))
		}
	case paramtypes.TypeDate:
		parsed, ok = parseDate(token)
		if !ok {
			message = presentOrMissing(token,
				fmt.Sprintf("Parameter %s must be a valid date in DD/MM/YYYY format, got %q", p.Name, deref(token)),
				fmt.Sprintf("Missing date parameter %s (DD/MM/YYYY)", p.Name))
		}
	case paramtypes.TypeTime:
		parsed, ok = parseTime(token)
		if !ok {
			message = presentOrMissing(token,
				fmt.Sprintf("Parameter %s must be a valid 24-hour time in HH:MM format, got %q", p.Name, deref(token)),
				fmt.Sprintf("Missing time parameter %s (HH:MM, 24-hour)", p.Name))
		}
	case paramtypes.TypeNumber:
		if token != nil {
			if n, err := strconv.Atoi(strings.TrimSpace(*token)); err == nil {
				parsed, ok = n, true
			}
		}
	case paramtypes.TypeString:
		if token != nil && *token != "" {
			parsed, ok = *token, true
		} else if token != nil {
			message = fmt.Sprintf("Parameter %s must not be empty", p.Name)
		}
	case paramtypes.TypeLiteral:
		if token != nil && foldCase(*token, p.CaseSensitive) == foldCase(p.Name, p.CaseSensitive) {
			parsed, ok = *token, true
		} else {
			switch {
			case p.IsNamedPair:
				message = fmt.Sprintf("Switch %s is expected to have no value, got %q", p.Name, deref(token))
			case token != nil:
				message = fmt.Sprintf("Expected %q, got %q", p.Name, *token)
			default:
				message = fmt.Sprintf("Missing %q", p.Name)
			}
		}
	case paramtypes.TypeEnum:
		if token != nil {
			value := foldCase(*token, p.CaseSensitive)
			if slices.ContainsFunc(p.Enum, func(member string) bool {
				return foldCase(member, p.CaseSensitive) == value
			}) {
				parsed, ok = value, true
			}
		}
		if !ok {
			message = presentOrMissing(token,
				fmt.Sprintf("Parameter %s must be one of: %s, got %q", p.Name, strings.Join(p.Enum, ", "), deref(token)),
				fmt.Sprintf("Missing parameter %s, valid options: %s", p.Name, strings.Join(p.Enum, ", ")))
		}
	}

	if ok {
		return ParameterMatch{Matches: true, ParsedValue: parsed}
	}
	if message == "" {
		message = presentOrMissing(token,
			fmt.Sprintf("Parameter %s has an invalid %s value %q", p.Name, p.Type, deref(token)),
			fmt.Sprintf("Missing %s parameter %s", p.Type, p.Name))
	}
	return ParameterMatch{ErrMessage: message}
}

func parseBool(token *string) (bool, bool) {
	if token == nil {
		return false, false
	}
	switch strings.ToLower(*token) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	}
	return false, false
}

// parseDate accepts D/M/YYYY and rejects dates that do not exist on the calendar.
func parseDate(token *string) (time.Time, bool) {
	if token == nil {
		return time.Time{}, false
	}
	m := datePattern.FindStringSubmatch(*token)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || int(date.Month()) != month || date.Year() != year {
		return time.Time{}, false
	}
	return date, true
}

func parseTime(token *string) (paramtypes.TimeOfDay, bool) {
	if token == nil {
		return paramtypes.TimeOfDay{}, false
	}
	m := timePattern.FindStringSubmatch(*token)
	if m == nil {
		return paramtypes.TimeOfDay{}, false
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return paramtypes.TimeOfDay{}, false
	}
	return paramtypes.TimeOfDay{Hour: hour, Minute: minute}, true
}

func presentOrMissing(token *string, present, missing string) string {
	if token != nil {
		return present
	}
	return missing
}

func deref(token *string) string {
	if token == nil {
		return ""
	}
	return *token
}
