package yamlh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineMapMarkAt(t *testing.T) {
	// "ab\ncd\n" -> line 2 starts at offset 3, line 3 at offset 6.
	m := NewLineMap()
	m.Observe(3)
	m.Observe(6)

	assert.Equal(t, Mark{Index: 0, Line: 1, Column: 1}, m.MarkAt(0))
	assert.Equal(t, Mark{Index: 1, Line: 1, Column: 2}, m.MarkAt(1))
	assert.Equal(t, Mark{Index: 3, Line: 2, Column: 1}, m.MarkAt(3))
	assert.Equal(t, Mark{Index: 4, Line: 2, Column: 2}, m.MarkAt(4))
	assert.Equal(t, Mark{Index: 6, Line: 3, Column: 1}, m.MarkAt(6))
}

func TestLineMapObserveIsIdempotentPerBreak(t *testing.T) {
	m := NewLineMap()
	m.Observe(3)
	m.Observe(3)
	assert.Equal(t, 2, m.MarkAt(5).Line)
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Problem: "duplicate %YAML directive", Mark: Mark{Line: 3, Column: 1}}
	require.EqualError(t, err, "yamlcore: line 3: column 1: duplicate %YAML directive")

	// No position recorded: the message stands alone.
	err = &ParseError{Problem: "expected a single document, found more than one"}
	require.EqualError(t, err, "yamlcore: expected a single document, found more than one")
}

func TestWarningString(t *testing.T) {
	w := Warning{Message: "unknown directive %FOO", Mark: Mark{Line: 1, Column: 1}}
	assert.Equal(t, "line 1: column 1: unknown directive %FOO", w.String())
}
