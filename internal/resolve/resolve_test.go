package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultResolver(t *testing.T) {
	cases := []struct {
		in  string
		tag string
		ok  bool
	}{
		{"", NullTag, true},
		{"~", NullTag, true},
		{"null", NullTag, true},
		{"Null", NullTag, true},
		{"NULL", NullTag, true},
		{"nUll", "", false},

		{"true", BoolTag, true},
		{"True", BoolTag, true},
		{"FALSE", BoolTag, true},
		{"yes", "", false},
		{"on", "", false},

		{"0", IntTag, true},
		{"-10", IntTag, true},
		{"+42", IntTag, true},
		{"0x2A", IntTag, true},
		{"0o52", IntTag, true},
		{"0b101010", IntTag, true},
		{"4294967296", IntTag, true},
		{"1_000_000", IntTag, true},

		{"0.1", FloatTag, true},
		{".1", FloatTag, true},
		{"-1.5e3", FloatTag, true},
		{"685.230_15e+03", FloatTag, true},
		{".inf", FloatTag, true},
		{"-.Inf", FloatTag, true},
		{".NaN", FloatTag, true},
		{"123456e1", FloatTag, true},

		{"2015-01-01", TimestampTag, true},
		{"2015-02-24T18:19:39.12Z", TimestampTag, true},
		{"2015-02-24t18:19:39Z", TimestampTag, true},
		{"2015-02-24 18:19:39", TimestampTag, true},
		{"2015-13-99", "", false},

		{"plain text", "", false},
		{"3s", "", false},
		{"1:1", "", false},
		{"<foo>", "", false},
	}
	for _, tc := range cases {
		tag, ok := Default.Resolve(tc.in)
		require.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.tag, tag, "input %q", tc.in)
	}
}

func TestRuleOrderFirstMatchWins(t *testing.T) {
	r := RuleResolver{Rules: []Rule{
		{Tag: "tag:example.com,2024:first", Match: func(in string) bool { return in == "x" }},
		{Tag: "tag:example.com,2024:second", Match: func(in string) bool { return true }},
	}}

	tag, ok := r.Resolve("x")
	require.True(t, ok)
	assert.Equal(t, "tag:example.com,2024:first", tag)

	tag, ok = r.Resolve("anything else")
	require.True(t, ok)
	assert.Equal(t, "tag:example.com,2024:second", tag)
}

func TestEmptyResolverMatchesNothing(t *testing.T) {
	var r RuleResolver
	_, ok := r.Resolve("true")
	assert.False(t, ok)
}
