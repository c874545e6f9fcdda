package yamlcore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willabides/yamlcore"
)

func parseScalar(t *testing.T, in string, opts ...yamlcore.Option) (string, []string) {
	t.Helper()
	doc, warnings, err := yamlcore.Parse(in, opts...)
	require.NoError(t, err)
	require.NotNil(t, doc)
	require.Equal(t, yamlcore.ScalarNode, doc.Kind)
	return doc.Value, warnings
}

func TestLiteralChomping(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"clip keeps one break", "|\n  a\n  b\n", "a\nb\n"},
		{"clip drops extra trailing breaks", "|\n  a\n\n\n", "a\n"},
		{"strip drops all trailing breaks", "|-\n  a\n  b\n\n", "a\nb"},
		{"keep retains every trailing break", "|+\n  a\n\n\n", "a\n\n\n"},
		{"interior blank lines always survive", "|\n  a\n\n  b\n", "a\n\nb\n"},
		{"unterminated final line stays unterminated", "|\n  a", "a"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := parseScalar(t, tc.in)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFoldedScalar(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"adjacent lines fold to a space", ">\n  a\n  b\n", "a b\n"},
		{"blank line becomes a line feed", ">\n  a\n\n  b\n", "a\nb\n"},
		{"strip", ">-\n  a\n  b\n", "a b"},
		{"more-indented lines do not fold", ">\n  a\n    deep\n  b\n", "a\n  deep\nb\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := parseScalar(t, tc.in)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFoldedKeepWarns(t *testing.T) {
	got, warnings := parseScalar(t, ">+\n  a\n")
	assert.Equal(t, "a\n", got)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "keep chomping")
}

func TestExplicitIndentationIndicator(t *testing.T) {
	doc, _, err := yamlcore.Parse("a: |2\n  x\n   y\n")
	require.NoError(t, err)
	require.Equal(t, yamlcore.MappingNode, doc.Kind)
	assert.Equal(t, "x\n y\n", doc.Pairs[0].Value.Value)
}

func TestTabIndentationIsFatal(t *testing.T) {
	_, _, err := yamlcore.Parse("|\n\tx\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tab")
}

func TestZeroIndentationIndicatorIsFatal(t *testing.T) {
	_, _, err := yamlcore.Parse("|0\n  x\n")
	require.Error(t, err)
}

func TestBlockScalarEndsAtDocumentMarker(t *testing.T) {
	docs, _, err := yamlcore.ParseStream("|\n  a\n---\nb\n")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a\n", docs[0].Value)
	assert.Equal(t, "b", docs[1].Value)
}

func TestSingleQuoted(t *testing.T) {
	got, _ := parseScalar(t, "'it''s quoted'")
	assert.Equal(t, "it's quoted", got)

	got, _ = parseScalar(t, "'folds\nacross lines'")
	assert.Equal(t, "folds across lines", got)
}

func TestDoubleQuotedEscapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`"\t\n\r"`, "\t\n\r"},
		{`"\x41B"`, "AB"},
		{`"\U0001F600"`, "\U0001F600"},
		{`"\e\0\a"`, "\x1b\x00\x07"},
		{`"\"\\\/"`, "\"\\/"},
		{`"\N\_\L\P"`, "\u0085\u00a0\u2028\u2029"},
	}
	for _, tc := range cases {
		got, _ := parseScalar(t, tc.in)
		assert.Equal(t, tc.want, got, "input %s", tc.in)
	}
}

func TestDoubleQuotedInvalidEscapes(t *testing.T) {
	_, _, err := yamlcore.Parse(`"\q"`)
	require.Error(t, err)

	_, _, err = yamlcore.Parse(`"\xZZ"`)
	require.Error(t, err)

	// A hex escape truncated by end of input fails cleanly with a
	// position instead of emitting a partial code point.
	_, _, err = yamlcore.Parse(`"\u00`)
	require.Error(t, err)
}

func TestQuotedFoldTrimsTrailingBlanks(t *testing.T) {
	got, _ := parseScalar(t, "\"a  \n  b\"")
	assert.Equal(t, "a b", got)
}

func TestUnterminatedQuotedScalarIsFatal(t *testing.T) {
	_, _, err := yamlcore.Parse("\"never closed\n")
	require.Error(t, err)
	_, _, err = yamlcore.Parse("'never closed\n")
	require.Error(t, err)
}

func TestPlainScalarFolding(t *testing.T) {
	got, _ := parseScalar(t, "one\ntwo\n")
	assert.Equal(t, "one two", got)

	// N breaks fold to N-1 line feeds.
	got, _ = parseScalar(t, "one\n\ntwo\n")
	assert.Equal(t, "one\ntwo", got)
}

func TestPlainScalarKeepsColonBeforePlainSafe(t *testing.T) {
	// The ':'-exclusion deviation: a colon not followed by whitespace
	// stays inside the scalar, keeping URLs and timestamps whole.
	doc, _, err := yamlcore.Parse("url: https://example.com/a?b=c\n")
	require.NoError(t, err)
	require.Equal(t, yamlcore.MappingNode, doc.Kind)
	assert.Equal(t, "https://example.com/a?b=c", doc.Pairs[0].Value.Value)

	got, _ := parseScalar(t, "a:1\n")
	assert.Equal(t, "a:1", got)
}

func TestPlainScalarStopsAtComment(t *testing.T) {
	doc, _, err := yamlcore.Parse("a: 1 # trailing comment\nb: 2\n")
	require.NoError(t, err)
	require.Len(t, doc.Pairs, 2)
	assert.Equal(t, "1", doc.Pairs[0].Value.Value)
}

func TestLineBreakNormalization(t *testing.T) {
	// Normalised by default: CRLF input decodes to LF.
	doc, _, err := yamlcore.Parse("a: |\n  x\r\n  y\n")
	require.NoError(t, err)
	assert.Equal(t, "x\ny\n", doc.Pairs[0].Value.Value)

	doc, _, err = yamlcore.Parse("a: |\n  x\r\n  y\n", yamlcore.WithoutLineBreakNormalization())
	require.NoError(t, err)
	assert.Equal(t, "x\r\ny\n", doc.Pairs[0].Value.Value)

	doc, _, err = yamlcore.Parse("a: |\n  x\n  y\n", yamlcore.WithNormalizedLineBreaks("\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "x\r\ny\r\n", doc.Pairs[0].Value.Value)
}

func TestLegacyLineBreakCharactersWarn(t *testing.T) {
	doc, warnings, err := yamlcore.Parse("a: b\u2028c\n")
	require.NoError(t, err)
	assert.Equal(t, "b\u2028c", doc.Pairs[0].Value.Value)
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "U+2028")
}
