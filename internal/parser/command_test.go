package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedTokens []string
		expectedName   string
		expectedArgs   []string
	}{
		{
			name:           "simple command",
			input:          "stats hours",
			expectedTokens: []string{"stats", "hours"},
			expectedName:   "stats",
			expectedArgs:   []string{"hours"},
		},
		{
			name:           "backslash prefix",
			input:          "\\schedule show today",
			expectedTokens: []string{"schedule", "show", "today"},
			expectedName:   "schedule",
			expectedArgs:   []string{"show", "today"},
		},
		{
			name:           "quoted values",
			input:          `shift add 12/03/2024 09:00 17:00 "Ann Smith" 'covers lunch'`,
			expectedTokens: []string{"shift", "add", "12/03/2024", "09:00", "17:00", "Ann Smith", "covers lunch"},
			expectedName:   "shift",
			expectedArgs:   []string{"add", "12/03/2024", "09:00", "17:00", "Ann Smith", "covers lunch"},
		},
		{
			name:           "mixed case name and extra spaces",
			input:          "   HELP    shift   ",
			expectedTokens: []string{"HELP", "shift"},
			expectedName:   "help",
			expectedArgs:   []string{"shift"},
		},
		{
			name:           "single word",
			input:          "version",
			expectedTokens: []string{"version"},
			expectedName:   "version",
		},
		{
			name:           "empty quoted argument survives",
			input:          `schedule show today --user ""`,
			expectedTokens: []string{"schedule", "show", "today", "--user", ""},
			expectedName:   "schedule",
			expectedArgs:   []string{"show", "today", "--user", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := ParseLine(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedTokens, line.Tokens)
			assert.Equal(t, tt.expectedName, line.Name())
			assert.Equal(t, tt.expectedArgs, line.Args())
			assert.Equal(t, tt.input, line.Raw)
		})
	}
}

func TestParseLine_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "# a comment", "\\", `""`} {
		_, err := ParseLine(input)
		if input == `""` {
			// a lone empty argument is still a token
			assert.NoError(t, err)
			continue
		}
		assert.ErrorIs(t, err, ErrEmptyInput, "input %q", input)
	}
}

func TestParseLine_UnterminatedQuote(t *testing.T) {
	_, err := ParseLine(`shift add "Ann`)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyInput)
	assert.Contains(t, err.Error(), "failed to tokenize")
}

func TestCommandLine_StringRoundTrip(t *testing.T) {
	line, err := ParseLine(`shift add 12/03/2024 09:00 17:00 "Ann Smith"`)
	require.NoError(t, err)

	again, err := ParseLine(line.String())
	require.NoError(t, err)
	assert.Equal(t, line.Tokens, again.Tokens)

	assert.Equal(t, "", (&CommandLine{}).Name())
	assert.Nil(t, (&CommandLine{}).Args())
}

func TestParseScript(t *testing.T) {
	script := "# morning setup\nshift add 12/03/2024 09:00 17:00 ann\n\n  stats hours\n"

	lines, err := ParseScript(script)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].LineNumber)
	assert.Equal(t, "shift", lines[0].Name())
	assert.Equal(t, 4, lines[1].LineNumber)
	assert.Equal(t, []string{"stats", "hours"}, lines[1].Tokens)

	_, err = ParseScript("stats hours\nshift add 'oops\n")
	assert.ErrorContains(t, err, "line 2")
}
