package paramtypes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeKinds(t *testing.T) {
	var leaf Node = StringParam("name")
	var group Node = OneOf(LiteralParam("today"), DateParam("day"))

	assert.Equal(t, KindParameter, leaf.Kind())
	assert.Equal(t, KindGroup, group.Kind())
	assert.Equal(t, "parameter", leaf.Kind().String())
	assert.Equal(t, "group", group.Kind().String())
}

func TestParameterModifiers(t *testing.T) {
	base := DateParam("--after")
	named := base.AsNamedPair()

	assert.False(t, base.IsNamedPair, "modifiers must not touch the receiver")
	assert.True(t, named.IsNamedPair)
	assert.True(t, named.Optional)

	cs := LiteralParam("Today").AsCaseSensitive()
	assert.True(t, cs.CaseSensitive)
	assert.Equal(t, "shown in help", cs.Describe("shown in help").Description)
}

func TestParameterGroup_Required(t *testing.T) {
	group := OneOf(LiteralParam("a"), NumberParam("n"))
	assert.True(t, group.IsRequired())
	assert.False(t, group.IsSkippable())

	optional := group.NotRequired()
	assert.False(t, optional.IsRequired())
	assert.True(t, optional.IsSkippable())
	assert.True(t, group.IsRequired(), "NotRequired must return a copy")

	assert.True(t, AllIfFirst(LiteralParam("from"), DateParam("d")).IsSkippable())
	assert.False(t, Many(StringParam("a"), StringParam("b")).IsSkippable())
}

func TestPlaceholder(t *testing.T) {
	tests := []struct {
		name     string
		param    Parameter
		expected string
	}{
		{"string", StringParam("employee"), "<employee:string>"},
		{"literal", LiteralParam("today"), "today"},
		{"enum", EnumParam("metric", "hours", "shifts"), "<metric:hours|shifts>"},
		{"named date", DateParam("--after").AsNamedPair(), "--after <date>"},
		{"named literal", LiteralParam("--all").AsNamedPair(), "--all"},
		{"named enum", EnumParam("--format", "csv", "table").AsNamedPair(), "--format <csv|table>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.param.Placeholder())
		})
	}
}

func TestParseHelpers(t *testing.T) {
	pt, err := ParseParamType("enum")
	require.NoError(t, err)
	assert.Equal(t, TypeEnum, pt)

	_, err = ParseParamType("float")
	assert.Error(t, err)

	rel, err := ParseRelation("allIfFirst")
	require.NoError(t, err)
	assert.Equal(t, RelationAllIfFirst, rel)

	_, err = ParseRelation("someOf")
	assert.Error(t, err)
}

func TestParametersList_NamedPairs(t *testing.T) {
	list := ParametersList{
		StringParam("employee"),
		DateParam("--after").AsNamedPair(),
		OneOf(LiteralParam("today"), DateParam("day")),
		StringParam("--user").AsNamedPair(),
	}

	pairs := list.NamedPairs()
	require.Len(t, pairs, 2)
	assert.Equal(t, "--after", pairs[1].Name)
	assert.Equal(t, "--user", pairs[3].Name)
}

func TestMatchResultAccessors(t *testing.T) {
	day := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	result := MatchResult{
		Matches: true,
		ProcessedParams: map[string]any{
			"count": 42,
			"name":  "ada",
			"flag":  true,
			"day":   day,
			"start": TimeOfDay{Hour: 9, Minute: 30},
		},
	}

	n, ok := result.Int("count")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	s, ok := result.String("name")
	assert.True(t, ok)
	assert.Equal(t, "ada", s)

	b, ok := result.Bool("flag")
	assert.True(t, ok)
	assert.True(t, b)

	d, ok := result.Date("day")
	assert.True(t, ok)
	assert.Equal(t, day, d)

	tod, ok := result.Time("start")
	assert.True(t, ok)
	assert.Equal(t, "09:30", tod.String())
	assert.Equal(t, time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC), tod.On(d))

	_, ok = result.Int("name")
	assert.False(t, ok)
	assert.False(t, result.Has("missing"))
}
