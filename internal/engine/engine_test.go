package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willabides/yamlcore/internal/yamlh"
)

func TestSentinelPadding(t *testing.T) {
	e := New("ab")
	assert.Equal(t, 3, e.Len())
	assert.Equal(t, uint16('a'), e.At(0))
	assert.Equal(t, uint16(0), e.At(2))
	assert.Equal(t, uint16(0), e.At(99), "reads past the end see the sentinel")
}

func TestWithRewindRestoresCursorAndScratch(t *testing.T) {
	e := New("abcdef")
	e.AppendScratch('x')

	hookRan := false
	ok := e.WithRewind(func() bool {
		e.Advance(3)
		e.AppendScratch('y', 'z')
		return false
	}, func() { hookRan = true })

	require.False(t, ok)
	assert.Equal(t, 0, e.Pos())
	assert.Equal(t, 1, e.ScratchLen())
	assert.True(t, hookRan)
}

func TestWithRewindKeepsProgressOnSuccess(t *testing.T) {
	e := New("abcdef")
	ok := e.WithRewind(func() bool {
		e.Advance(2)
		return true
	}, func() { t.Fatal("rewind hook must not run on success") })
	require.True(t, ok)
	assert.Equal(t, 2, e.Pos())
}

func TestRepeatStopsWhenRuleStopsAdvancing(t *testing.T) {
	e := New("aaab")
	e.Repeat(func() bool { return e.AcceptRune('a') })
	assert.Equal(t, 3, e.Pos())

	// A rule that succeeds without consuming must not loop forever.
	calls := 0
	e.Repeat(func() bool {
		calls++
		return true
	})
	assert.Equal(t, 1, calls)
}

func TestOneAndRepeat(t *testing.T) {
	e := New("bbb")
	require.False(t, e.OneAndRepeat(func() bool { return e.AcceptRune('a') }))
	require.True(t, e.OneAndRepeat(func() bool { return e.AcceptRune('b') }))
	assert.Equal(t, 3, e.Pos())
}

func TestRepeatCountRewindsOnShortfall(t *testing.T) {
	e := New("aab")
	require.False(t, e.RepeatCount(3, func() bool { return e.AcceptRune('a') }))
	assert.Equal(t, 0, e.Pos(), "partial match must rewind")
	require.True(t, e.RepeatCount(2, func() bool { return e.AcceptRune('a') }))
	assert.Equal(t, 2, e.Pos())
}

func TestRepeatRange(t *testing.T) {
	e := New("aaaa")
	require.True(t, e.RepeatRange(1, 2, func() bool { return e.AcceptRune('a') }))
	assert.Equal(t, 2, e.Pos(), "bounded repetition stops at max")

	e = New("b")
	require.False(t, e.RepeatRange(1, -1, func() bool { return e.AcceptRune('a') }))
	assert.Equal(t, 0, e.Pos())
}

func TestOptionalAlwaysSucceeds(t *testing.T) {
	e := New("ab")
	require.True(t, e.Optional(func() bool { return e.AcceptRune('x') }))
	assert.Equal(t, 0, e.Pos())
	require.True(t, e.Optional(func() bool { return e.AcceptRune('a') }))
	assert.Equal(t, 1, e.Pos())
}

func TestAcceptString(t *testing.T) {
	e := New("---\n")
	require.True(t, e.AcceptString("---"))
	assert.Equal(t, 3, e.Pos())
	require.False(t, e.AcceptString("---"))
}

func TestSaveCapturesConsumedSubstring(t *testing.T) {
	e := New("anchor-name ")
	var got string
	ok := e.Save(func() bool {
		return e.Repeat(func() bool {
			return e.Accept(yamlh.NsAnchorChar)
		})
	}, &got)
	require.True(t, ok)
	assert.Equal(t, "anchor-name", got)
}

func TestScratchRoundTrip(t *testing.T) {
	e := New("")
	from := e.ScratchLen()
	e.AppendScratch('h', 'i')
	e.AppendScratchRune('\U0001F600')
	got := e.ScratchString(from)
	assert.Equal(t, "hi\U0001F600", got)
	assert.Equal(t, 0, e.ScratchLen(), "materialising clears the buffer")
}

func TestAdvanceTracksLines(t *testing.T) {
	e := New("a\nb\r\nc")
	e.Advance(5)
	mark := e.MarkHere()
	assert.Equal(t, 3, mark.Line)
	assert.Equal(t, 1, mark.Column)
}

func TestWarnDeduplicates(t *testing.T) {
	e := New("x")
	e.Warn("same message")
	e.Warn("same message")
	e.Warn("another message")
	require.Len(t, e.Warnings(), 2)
	assert.Equal(t, "same message", e.Warnings()[0].Message)
}

func TestLegacyBreakWarning(t *testing.T) {
	e := New("a\u2028b")
	e.Advance(3)
	require.Len(t, e.Warnings(), 1)
	assert.Contains(t, e.Warnings()[0].Message, "U+2028")
}

func TestFailPanicsWithParseError(t *testing.T) {
	e := New("abc")
	e.Advance(1)
	defer func() {
		r := recover()
		require.NotNil(t, r)
		perr, ok := r.(*yamlh.ParseError)
		require.True(t, ok)
		assert.Equal(t, "boom", perr.Problem)
		assert.Equal(t, 2, perr.Mark.Column)
	}()
	e.Fail("boom")
}

func TestFailUnlessDowngradesToRewindableFalse(t *testing.T) {
	e := New("abc")
	assert.False(t, e.FailUnless(false, "never raised"))
	assert.Panics(t, func() { e.FailUnless(true, "raised") })
}

func TestResetReusesInstance(t *testing.T) {
	e := New("first input")
	e.Advance(5)
	e.AppendScratch('x')
	e.Warn("w")

	e.Reset("second")
	assert.Equal(t, 0, e.Pos())
	assert.Equal(t, 0, e.ScratchLen())
	assert.Empty(t, e.Warnings())
	assert.Equal(t, uint16('s'), e.At(0))
}
