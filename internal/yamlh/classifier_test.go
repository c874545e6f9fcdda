package yamlh

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func units(s string) []uint16 {
	return append(utf16.Encode([]rune(s)), 0)
}

func TestIsBreak(t *testing.T) {
	assert.True(t, Is_break(units("\n"), 0))
	assert.True(t, Is_break(units("\r"), 0))

	// NEL, LS, PS and FF were breaks in YAML 1.1, not in 1.2.
	for _, c := range []string{"\u0085", "\u2028", "\u2029", "\u000C"} {
		assert.False(t, Is_break(units(c), 0), "U+%04X", []rune(c)[0])
		assert.True(t, Is_legacy_break(units(c), 0), "U+%04X", []rune(c)[0])
	}
	assert.False(t, Is_legacy_break(units("\n"), 0))
}

func TestIsCrlf(t *testing.T) {
	assert.True(t, Is_crlf(units("\r\n"), 0))
	assert.False(t, Is_crlf(units("\r\r"), 0))
	assert.False(t, Is_crlf(units("\n"), 0))
}

func TestBlankAndZ(t *testing.T) {
	assert.True(t, Is_blank(units(" "), 0))
	assert.True(t, Is_blank(units("\t"), 0))
	assert.False(t, Is_blank(units("x"), 0))

	assert.True(t, Is_z(units(""), 0))
	assert.True(t, Is_blankz(units(""), 0))
	assert.True(t, Is_breakz(units("\n"), 0))
}

func TestIndicators(t *testing.T) {
	for _, c := range "-?:,[]{}#&*!|>'\"%@`" {
		assert.True(t, IsIndicator(units(string(c)), 0), "indicator %q", c)
	}
	assert.False(t, IsIndicator(units("a"), 0))

	for _, c := range ",[]{}" {
		assert.True(t, IsFlowIndicator(units(string(c)), 0), "flow indicator %q", c)
	}
	assert.False(t, IsFlowIndicator(units("-"), 0))
}

func TestHexDigits(t *testing.T) {
	require.True(t, Is_hex(units("a"), 0))
	require.True(t, Is_hex(units("F"), 0))
	require.True(t, Is_hex(units("7"), 0))
	require.False(t, Is_hex(units("g"), 0))

	assert.Equal(t, 10, As_hex(units("a"), 0))
	assert.Equal(t, 15, As_hex(units("F"), 0))
	assert.Equal(t, 7, As_hex(units("7"), 0))
}

func TestSurrogatePairClasses(t *testing.T) {
	// U+1F600 encodes as a surrogate pair; code-point-level classes must
	// match with length 2.
	emoji := units("\U0001F600")
	ok, width := NsChar(emoji, 0)
	require.True(t, ok)
	assert.Equal(t, 2, width)

	ok, width = Is_printable(emoji, 0)
	require.True(t, ok)
	assert.Equal(t, 2, width)

	// An isolated high surrogate still matches, with length 1.
	isolated := []uint16{0xD83D, 'x', 0}
	ok, width = NsChar(isolated, 0)
	require.True(t, ok)
	assert.Equal(t, 1, width)
}

func TestNbCharExcludesBreaksAndBOM(t *testing.T) {
	ok, _ := NbChar(units("\n"), 0)
	assert.False(t, ok)
	ok, _ = NbChar(units("\uFEFF"), 0)
	assert.False(t, ok)
	ok, _ = NbChar(units(" "), 0)
	assert.True(t, ok)
}

func TestNsPlainFirst(t *testing.T) {
	// '-' / '?' / ':' are admitted only when followed by a plain-safe
	// character.
	ok, _ := NsPlainFirst(units("-1"), 0, BlockIn)
	assert.True(t, ok)
	ok, _ = NsPlainFirst(units("- "), 0, BlockIn)
	assert.False(t, ok)
	ok, _ = NsPlainFirst(units("?x"), 0, BlockIn)
	assert.True(t, ok)
	ok, _ = NsPlainFirst(units(":x"), 0, BlockIn)
	assert.True(t, ok)

	ok, _ = NsPlainFirst(units("[a"), 0, BlockIn)
	assert.False(t, ok, "indicators cannot start a plain scalar")
	ok, _ = NsPlainFirst(units("a"), 0, BlockIn)
	assert.True(t, ok)
}

func TestNsPlainSafeByContext(t *testing.T) {
	// ',' is plain-safe in block context, not in flow.
	ok, _ := NsPlainSafe(units(","), 0, BlockIn)
	assert.True(t, ok)
	ok, _ = NsPlainSafe(units(","), 0, FlowIn)
	assert.False(t, ok)
	ok, _ = NsPlainSafe(units(","), 0, FlowKey)
	assert.False(t, ok)
}

func TestAnchorCharExcludesFlowIndicators(t *testing.T) {
	ok, _ := NsAnchorChar(units("a"), 0)
	assert.True(t, ok)
	ok, _ = NsAnchorChar(units("]"), 0)
	assert.False(t, ok)
}

func TestTagAndURIChars(t *testing.T) {
	ok, _ := NsURIChar(units(":"), 0)
	assert.True(t, ok)
	ok, _ = NsURIChar(units("%"), 0)
	assert.True(t, ok)
	ok, _ = NsURIChar(units(" "), 0)
	assert.False(t, ok)

	ok, _ = NsTagChar(units(":"), 0)
	assert.False(t, ok, "':' is excluded from tag shorthand suffixes")
	ok, _ = NsTagChar(units("a"), 0)
	assert.True(t, ok)
}

func TestIsDocumentMarker(t *testing.T) {
	assert.True(t, IsDocumentMarker(units("---\n"), 0))
	assert.True(t, IsDocumentMarker(units("--- a"), 0))
	assert.True(t, IsDocumentMarker(units("..."), 0))
	assert.False(t, IsDocumentMarker(units("---a"), 0))
	assert.False(t, IsDocumentMarker(units("--"), 0))
	assert.False(t, IsDocumentMarker(units("..x"), 0))
}
