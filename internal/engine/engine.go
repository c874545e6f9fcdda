// Package engine implements the generic, grammar-agnostic parsing
// primitives of spec.md 4.2: the cursor model, the rewind primitive, the
// repetition/optional/accept combinators, the scratch capture buffer,
// and the warning/error channels. The YAML grammar (internal/grammar) is
// the only caller; nothing here knows about YAML productions.
//
// The control-flow shape — a cursor plus small bookkeeping structs
// snapshotted and restored around speculative work — is grounded on the
// teacher's internal/parserc scanner, which threads an explicit
// Position/Mark pair through every token function
// (internal/parserc/scannerc.go) and rolls back on a failed `peekToken`.
// This package generalises that one-off rollback into the reusable
// with_rewind/repeat/optional combinator set spec.md 4.2 calls for.
package engine

import (
	"fmt"
	"unicode/utf16"

	"github.com/willabides/yamlcore/internal/yamlh"
)

// Rule is a speculative parsing step: it attempts to consume input
// starting at the engine's current cursor and reports whether it
// succeeded. A rule that returns false must leave no externally visible
// side effect once the surrounding combinator's rewind has run.
type Rule func() bool

// Engine drives one parse of one input string. Reusable across calls:
// Reset reinitialises every mutable field, matching the teacher's
// yaml_parser_t, which is re-initialised by yaml_parser_initialize for
// each independent parse.
type Engine struct {
	text    []uint16 // the input, padded with one trailing sentinel 0
	pos     int      // P
	scratch []uint16 // capture buffer grammar rules append decoded chars to

	lines    *yamlh.LineMap
	warnings []yamlh.Warning
	seenWarn map[string]bool
}

// New encodes text to UTF-16 code units, appends the sentinel terminator
// (spec.md 6.1: "the core appends one sentinel code unit internally"),
// and returns a ready-to-use Engine.
func New(text string) *Engine {
	e := &Engine{}
	e.Reset(text)
	return e
}

// Reset reinitialises all mutable state for a fresh parse of text,
// keeping the Engine value reusable (spec.md 5: "a single instance is
// reusable: parse() reinitialises all mutable state before starting").
func (e *Engine) Reset(text string) {
	units := utf16.Encode([]rune(text))
	e.text = append(units, 0)
	e.pos = 0
	e.scratch = e.scratch[:0]
	e.lines = yamlh.NewLineMap()
	e.warnings = nil
	e.seenWarn = map[string]bool{}
}

// Pos returns the current cursor P.
func (e *Engine) Pos() int { return e.pos }

// SetPos moves the cursor directly; used by productions that need to
// peek ahead and then reposition without going through with_rewind (for
// example auto-detect-indentation's forward scan, spec.md 4.5.1).
func (e *Engine) SetPos(p int) { e.pos = p }

// Len is the padded input length, including the sentinel.
func (e *Engine) Len() int { return len(e.text) }

// At returns the code unit at the cursor plus offset, or the sentinel 0
// past the end, so classifiers never need a bounds check.
func (e *Engine) At(offset int) uint16 {
	i := e.pos + offset
	if i < 0 || i >= len(e.text) {
		return 0
	}
	return e.text[i]
}

// Units exposes the raw padded buffer for the yamlh classifier functions,
// which take (buffer, index) rather than (engine, offset).
func (e *Engine) Units() []uint16 { return e.text }

// Advance moves the cursor forward n code units, recording any line
// breaks crossed in the (never-rewound) line map. A YAML 1.1 break
// character (NEL, LS, PS, FF) consumed here is content in 1.2 and is
// reported as a warning, which like the line map survives rewinding.
func (e *Engine) Advance(n int) {
	for i := 0; i < n; i++ {
		if yamlh.Is_break(e.text, e.pos) {
			w := 1
			if yamlh.Is_crlf(e.text, e.pos) {
				w = 2
				i++
			}
			e.pos += w
			e.lines.Observe(e.pos)
			continue
		}
		if yamlh.Is_legacy_break(e.text, e.pos) {
			e.Warn(fmt.Sprintf("character U+%04X was a line break in YAML 1.1 but is not in YAML 1.2", e.text[e.pos]))
		}
		e.pos++
	}
}

// MarkHere returns the source position of the current cursor.
func (e *Engine) MarkHere() yamlh.Mark { return e.lines.MarkAt(e.pos) }

// ---- scratch buffer ----

// ScratchLen is the current length of the capture buffer, part of the
// rewind snapshot (spec.md 3.2).
func (e *Engine) ScratchLen() int { return len(e.scratch) }

// TruncateScratch restores the scratch buffer to a previously observed
// length, discarding anything appended since.
func (e *Engine) TruncateScratch(n int) { e.scratch = e.scratch[:n] }

// AppendScratch appends decoded code units (an escape, a folded line
// break, ...) to the capture buffer.
func (e *Engine) AppendScratch(units ...uint16) { e.scratch = append(e.scratch, units...) }

// AppendScratchRune appends a full code point, splitting it into a
// surrogate pair if needed.
func (e *Engine) AppendScratchRune(r rune) {
	if r > 0xFFFF {
		e.scratch = utf16.AppendRune(e.scratch, r)
		return
	}
	e.scratch = append(e.scratch, uint16(r))
}

// ScratchString materialises the buffer from a starting length to now as
// a Go string, and clears it (CreateScalar/Sequence/Mapping clears the
// buffer on node materialisation, spec.md 4.2).
func (e *Engine) ScratchString(from int) string {
	s := string(utf16.Decode(e.scratch[from:]))
	e.scratch = e.scratch[:from]
	return s
}

// Substring decodes the raw input between two cursor offsets, used by
// save() to capture an unescaped span verbatim (plain scalars, tag
// suffixes, anchor names, ...).
func (e *Engine) Substring(from, to int) string {
	return string(utf16.Decode(e.text[from:to]))
}

// ---- rewind primitive ----

// Snapshot is the cursor-and-buffer half of a rewind point; callers that
// also carry parser state (tag/anchor/value/anchor_depth, spec.md 3.2)
// embed this alongside their own copy-by-value struct.
type Snapshot struct {
	pos     int
	scratch int
}

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{pos: e.pos, scratch: len(e.scratch)}
}

func (e *Engine) Restore(s Snapshot) {
	e.pos = s.pos
	e.scratch = e.scratch[:s.scratch]
}

// WithRewind snapshots (P, scratch length), runs rule, and restores the
// snapshot if rule returns false. rewindHook, if non-nil, runs after
// restoring — the grammar uses it to trim the anchor table to the depth
// it held before the speculative rule ran (spec.md 4.2, 4.3).
func (e *Engine) WithRewind(rule Rule, rewindHook func()) bool {
	snap := e.Snapshot()
	if rule() {
		return true
	}
	e.Restore(snap)
	if rewindHook != nil {
		rewindHook()
	}
	return false
}

// ---- combinators ----

// Repeat runs rule while it both succeeds and advances P, and always
// succeeds itself. The "advances P" guard is spec.md 4.2's explicit
// defence against infinite loops on a rule that can match empty input.
func (e *Engine) Repeat(rule Rule) bool {
	for {
		before := e.pos
		if !rule() || e.pos == before {
			return true
		}
	}
}

// OneAndRepeat is rule && Repeat(rule).
func (e *Engine) OneAndRepeat(rule Rule) bool {
	if !rule() {
		return false
	}
	e.Repeat(rule)
	return true
}

// RepeatCount runs rule exactly n times, wrapped in a rewind: if any
// attempt fails the whole repetition is rolled back.
func (e *Engine) RepeatCount(n int, rule Rule) bool {
	return e.WithRewind(func() bool {
		for i := 0; i < n; i++ {
			if !rule() {
				return false
			}
		}
		return true
	}, nil)
}

// RepeatRange runs rule at least min and at most max times (max < 0
// means unbounded), succeeding as long as min repetitions matched.
func (e *Engine) RepeatRange(min, max int, rule Rule) bool {
	return e.WithRewind(func() bool {
		count := 0
		for max < 0 || count < max {
			before := e.pos
			if !rule() {
				break
			}
			count++
			if e.pos == before {
				break
			}
		}
		return count >= min
	}, nil)
}

// Optional runs rule and always succeeds, regardless of rule's result.
// Composite rules that themselves need rewinding must wrap with
// WithRewind internally before being passed to Optional.
func (e *Engine) Optional(rule Rule) bool {
	rule()
	return true
}

// Accept consumes exactly the code units matched by a predicate that
// reports a match length (0 means no match), the shape every yamlh
// classifier function with a (bool, int) signature has.
func (e *Engine) Accept(classify func(u []uint16, i int) (bool, int)) bool {
	ok, width := classify(e.text, e.pos)
	if !ok || width == 0 {
		return false
	}
	e.Advance(width)
	return true
}

// AcceptBool consumes one code unit if predicate matches, for the
// fixed-width (bool only) classifier functions.
func (e *Engine) AcceptBool(predicate func(u []uint16, i int) bool) bool {
	if !predicate(e.text, e.pos) {
		return false
	}
	e.Advance(1)
	return true
}

// Save runs rule and, if it succeeds, stores the raw substring it
// consumed into sink (spec.md 4.2's capture primitive). On failure the
// cursor is wherever rule left it; compose with WithRewind as needed.
func (e *Engine) Save(rule Rule, sink *string) bool {
	start := e.pos
	if !rule() {
		return false
	}
	*sink = e.Substring(start, e.pos)
	return true
}

// AcceptRune consumes the literal code point r if it is next in the
// input.
func (e *Engine) AcceptRune(r rune) bool {
	cp, width := e.peekRune()
	if cp != r {
		return false
	}
	e.Advance(width)
	return true
}

// AcceptString consumes s literally if it matches at the cursor.
func (e *Engine) AcceptString(s string) bool {
	units := utf16.Encode([]rune(s))
	if e.pos+len(units) > len(e.text) {
		return false
	}
	for i, u := range units {
		if e.text[e.pos+i] != u {
			return false
		}
	}
	e.Advance(len(units))
	return true
}

func (e *Engine) peekRune() (rune, int) {
	if e.pos >= len(e.text) {
		return 0, 0
	}
	cp, width := codePointAt(e.text, e.pos)
	return cp, width
}

func codePointAt(units []uint16, i int) (rune, int) {
	u := units[i]
	if u >= 0xD800 && u <= 0xDBFF && i+1 < len(units) {
		lo := units[i+1]
		if lo >= 0xDC00 && lo <= 0xDFFF {
			hi, lov := rune(u), rune(lo)
			return ((hi - 0xD800) << 10) + (lov - 0xDC00) + 0x10000, 2
		}
	}
	return rune(u), 1
}

// PeekRune exposes the current code point without consuming it.
func (e *Engine) PeekRune() (rune, int) { return e.peekRune() }

// ---- diagnostics ----

// Warn records a non-fatal message, deduplicated by text (spec.md 7).
// Never affected by rewinding.
func (e *Engine) Warn(message string) {
	if e.seenWarn[message] {
		return
	}
	e.seenWarn[message] = true
	e.warnings = append(e.warnings, yamlh.Warning{Message: message, Mark: e.MarkHere()})
}

// Warnings returns every distinct warning recorded so far, in the order
// first seen.
func (e *Engine) Warnings() []yamlh.Warning { return e.warnings }

// Fail raises a fatal error at the current cursor. The panic payload is
// a *yamlh.ParseError, which WithRewind never catches: a fatal
// production failure unwinds the whole parse (spec.md 4.2, 7).
func (e *Engine) Fail(problem string) {
	panic(&yamlh.ParseError{Problem: problem, Mark: e.MarkHere()})
}

// FailAt raises a fatal error at a previously captured mark.
func (e *Engine) FailAt(problem string, mark yamlh.Mark) {
	panic(&yamlh.ParseError{Problem: problem, Mark: mark})
}

// FailUnless downgrades to a plain rewind-causing false when guard is
// false, and raises a fatal error otherwise. This is error_unless from
// spec.md 4.2, used to avoid reporting spurious errors during
// speculative parses of flow/implicit keys where the enclosing context
// is not flow-out.
func (e *Engine) FailUnless(guard bool, problem string) bool {
	if !guard {
		return false
	}
	e.Fail(problem)
	return false
}
