package scheme

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	pt "paramshell/pkg/paramtypes"
)

func tok(s string) *string { return &s }

func TestMatchParameter(t *testing.T) {
	tests := []struct {
		name          string
		param         pt.Parameter
		token         *string
		expectMatch   bool
		expectedValue any
		errContains   string
	}{
		// boolean
		{"bool true", pt.BoolParam("flag"), tok("true"), true, true, ""},
		{"bool TRUE", pt.BoolParam("flag"), tok("TRUE"), true, true, ""},
		{"bool 1", pt.BoolParam("flag"), tok("1"), true, true, ""},
		{"bool False", pt.BoolParam("flag"), tok("False"), true, false, ""},
		{"bool 0", pt.BoolParam("flag"), tok("0"), true, false, ""},
		{"bool yes rejected", pt.BoolParam("flag"), tok("yes"), false, nil, "must be true/false or 1/0"},
		{"bool missing", pt.BoolParam("flag"), nil, false, nil, "Missing boolean parameter flag"},

		// date
		{"date D/M/Y", pt.DateParam("day"), tok("05/03/2024"), true, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), ""},
		{"date single digits", pt.DateParam("day"), tok("5/3/2024"), true, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), ""},
		{"date leap day", pt.DateParam("day"), tok("29/02/2024"), true, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), ""},
		{"date not a leap year", pt.DateParam("day"), tok("29/02/2023"), false, nil, "DD/MM/YYYY"},
		{"date month 13", pt.DateParam("day"), tok("13/13/2024"), false, nil, "DD/MM/YYYY"},
		{"date ISO rejected", pt.DateParam("day"), tok("2024-03-05"), false, nil, "DD/MM/YYYY"},
		{"date missing", pt.DateParam("day"), nil, false, nil, "Missing date parameter day (DD/MM/YYYY)"},

		// time
		{"time 9:05", pt.TimeParam("at"), tok("9:05"), true, pt.TimeOfDay{Hour: 9, Minute: 5}, ""},
		{"time 23:59", pt.TimeParam("at"), tok("23:59"), true, pt.TimeOfDay{Hour: 23, Minute: 59}, ""},
		{"time 24:00", pt.TimeParam("at"), tok("24:00"), false, nil, "HH:MM"},
		{"time 12:60", pt.TimeParam("at"), tok("12:60"), false, nil, "24-hour"},
		{"time missing", pt.TimeParam("at"), nil, false, nil, "Missing time parameter at"},

		// number
		{"number", pt.NumberParam("count"), tok("42"), true, 42, ""},
		{"negative number", pt.NumberParam("count"), tok("-3"), true, -3, ""},
		{"number with suffix", pt.NumberParam("count"), tok("4x"), false, nil, `Parameter count has an invalid number value "4x"`},
		{"number missing", pt.NumberParam("count"), nil, false, nil, "Missing number parameter count"},

		// string
		{"string", pt.StringParam("employee"), tok("ada"), true, "ada", ""},
		{"empty string", pt.StringParam("employee"), tok(""), false, nil, "must not be empty"},
		{"string missing", pt.StringParam("employee"), nil, false, nil, "Missing string parameter employee"},

		// literal
		{"literal", pt.LiteralParam("today"), tok("today"), true, "today", ""},
		{"literal folded", pt.LiteralParam("today"), tok("ToDay"), true, "ToDay", ""},
		{"literal case-sensitive", pt.LiteralParam("today").AsCaseSensitive(), tok("Today"), false, nil, `Expected "today", got "Today"`},
		{"literal missing", pt.LiteralParam("today"), nil, false, nil, `Missing "today"`},
		{"named literal with value", pt.LiteralParam("--all").AsNamedPair(), tok("yes"), false, nil, "Switch --all is expected to have no value"},

		// enum
		{"enum", pt.EnumParam("metric", "hours", "shifts"), tok("hours"), true, "hours", ""},
		{"enum folded", pt.EnumParam("metric", "hours", "shifts"), tok("HOURS"), true, "hours", ""},
		{"enum case-sensitive", pt.EnumParam("metric", "Hours").AsCaseSensitive(), tok("hours"), false, nil, "must be one of: Hours"},
		{"enum case-sensitive exact", pt.EnumParam("metric", "Hours").AsCaseSensitive(), tok("Hours"), true, "Hours", ""},
		{"enum wrong", pt.EnumParam("metric", "hours", "shifts"), tok("days"), false, nil, "must be one of: hours, shifts"},
		{"enum missing", pt.EnumParam("metric", "hours", "shifts"), nil, false, nil, "valid options: hours, shifts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MatchParameter(tt.token, tt.param)

			assert.Equal(t, tt.expectMatch, result.Matches)
			if tt.expectMatch {
				assert.Equal(t, tt.expectedValue, result.ParsedValue)
				assert.Empty(t, result.ErrMessage)
			} else {
				assert.Nil(t, result.ParsedValue)
				assert.Contains(t, result.ErrMessage, tt.errContains)
			}
		})
	}
}
