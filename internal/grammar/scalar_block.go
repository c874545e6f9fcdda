package grammar

import (
	"strings"

	"github.com/willabides/yamlcore/internal/graph"
	"github.com/willabides/yamlcore/internal/yamlh"
)

type blockLine struct {
	text         string
	brk          string // text of the break terminating the line; "" at end of input
	moreIndented bool
	blank        bool
}

// parseBlockScalar implements c-l+literal(n) [170] and c-l+folded(n)
// [174]: a "|" or ">" header (explicit indentation digit, chomping
// indicator, in either order) followed by indented content lines,
// chomped and, for ">", folded per spec.md 4.5.2.
func (p *Parser) parseBlockScalar(n int, mark yamlh.Mark) *graph.Node {
	folded := p.peekChar('>')
	p.eng.Advance(1)

	explicitIndent, chomp := p.parseBlockScalarHeader()
	p.skipRestOfLine()
	p.consumeBreakIfPresent()

	// An explicit indentation digit is relative to the parent node's
	// indent (zero at the top level); auto-detection measures the first
	// content line directly.
	var baseIndent int
	parent := n - 1
	if explicitIndent > 0 {
		if parent < 0 {
			parent = 0
		}
		baseIndent = parent + explicitIndent
	} else {
		if parent < -1 {
			parent = -1
		}
		baseIndent = parent + p.autoDetectIndentation(parent)
		if baseIndent < 0 {
			baseIndent = 0
		}
	}

	lines := p.collectBlockScalarLines(baseIndent)

	var value string
	if folded {
		value = p.foldLines(lines, chomp)
	} else {
		value = p.literalJoin(lines, chomp)
	}

	if folded && chomp == yamlh.ChompKeep {
		p.eng.Warn("folded scalar with keep chomping ('>+') is unusual")
	}

	return p.CreateScalar(value, yamlh.StrTag, mark)
}

// parseBlockScalarHeader reads the explicit indentation digit and/or
// chomping indicator, in either order (spec.md 4.5.2).
func (p *Parser) parseBlockScalarHeader() (explicitIndent int, chomp yamlh.Chomping) {
	chomp = yamlh.ChompClip
	for i := 0; i < 2; i++ {
		switch {
		case yamlh.Is_digit(p.eng.Units(), p.eng.Pos()):
			d := yamlh.As_digit(p.eng.Units(), p.eng.Pos())
			if d == 0 {
				p.eng.Fail("block scalar indentation indicator must be 1-9")
			}
			explicitIndent = d
			p.eng.Advance(1)
		case p.peekChar('-'):
			chomp = yamlh.ChompStrip
			p.eng.Advance(1)
		case p.peekChar('+'):
			chomp = yamlh.ChompKeep
			p.eng.Advance(1)
		default:
			return explicitIndent, chomp
		}
	}
	return explicitIndent, chomp
}

func (p *Parser) consumeBreakIfPresent() {
	if yamlh.Is_break(p.eng.Units(), p.eng.Pos()) {
		p.consumeBreak()
	}
}

// collectBlockScalarLines reads content lines indented at least to
// baseIndent, recording each line's terminating break verbatim (subject
// to the line-break normalisation config) so chomping and folding can
// reconstruct exactly the breaks the input carried. A "---"/"..."
// document marker line ends the scalar regardless of indentation.
func (p *Parser) collectBlockScalarLines(baseIndent int) []blockLine {
	var lines []blockLine

	for {
		if yamlh.Is_z(p.eng.Units(), p.eng.Pos()) {
			break
		}
		if p.atDocumentMarker() {
			break
		}
		lineStart := p.eng.Pos()
		col := 0
		for yamlh.Is_space(p.eng.Units(), p.eng.Pos()) {
			p.eng.Advance(1)
			col++
		}
		if yamlh.Is_breakz(p.eng.Units(), p.eng.Pos()) {
			line := blockLine{blank: true}
			if !yamlh.Is_z(p.eng.Units(), p.eng.Pos()) {
				line.brk = p.consumeBreakText()
			}
			lines = append(lines, line)
			continue
		}
		if col < baseIndent {
			p.eng.SetPos(lineStart)
			break
		}
		extra := col - baseIndent
		// Only baseIndent columns of leading space are indentation; any
		// extra is part of a more-indented line's literal content.
		p.eng.SetPos(lineStart + baseIndent)
		textStart := p.eng.Pos()
		for !yamlh.Is_breakz(p.eng.Units(), p.eng.Pos()) {
			p.eng.Advance(1)
		}
		line := blockLine{
			text:         p.eng.Substring(textStart, p.eng.Pos()),
			moreIndented: extra > 0,
		}
		if !yamlh.Is_z(p.eng.Units(), p.eng.Pos()) {
			line.brk = p.consumeBreakText()
		}
		lines = append(lines, line)
	}
	return lines
}

// lastContentLine returns the index of the last non-blank line, or -1
// when the scalar's body is entirely blank.
func lastContentLine(lines []blockLine) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if !lines[i].blank {
			return i
		}
	}
	return -1
}

// chompTail assembles the scalar's trailing breaks per spec.md 4.5.2:
// strip discards them all, clip keeps the final content line's own break
// (when the input had one; the optional-final-break deviation means an
// unterminated last line stays unterminated), keep retains every break
// through the trailing blank lines.
func chompTail(lines []blockLine, last int, chomp yamlh.Chomping) string {
	switch chomp {
	case yamlh.ChompStrip:
		return ""
	case yamlh.ChompKeep:
		var b strings.Builder
		b.WriteString(lines[last].brk)
		for _, l := range lines[last+1:] {
			b.WriteString(l.brk)
		}
		return b.String()
	default:
		return lines[last].brk
	}
}

// literalJoin implements l-literal-content: every line through the last
// non-blank one, joined by its own line break, then the chomped tail.
func (p *Parser) literalJoin(lines []blockLine, chomp yamlh.Chomping) string {
	last := lastContentLine(lines)
	if last == -1 {
		if chomp == yamlh.ChompKeep {
			var b strings.Builder
			for _, l := range lines {
				b.WriteString(l.brk)
			}
			return b.String()
		}
		return ""
	}
	var b strings.Builder
	for i := 0; i < last; i++ {
		b.WriteString(lines[i].text)
		b.WriteString(lines[i].brk)
	}
	b.WriteString(lines[last].text)
	b.WriteString(chompTail(lines, last, chomp))
	return b.String()
}

// foldLines implements l-folded-content's folding rule (spec.md 4.5.2):
// consecutive non-empty lines at the base indentation join with a single
// space; a more-indented line is preserved verbatim, bracketed by real
// line breaks; blank lines between content contribute a break each.
func (p *Parser) foldLines(lines []blockLine, chomp yamlh.Chomping) string {
	last := lastContentLine(lines)
	if last == -1 {
		return p.literalJoin(lines, chomp)
	}
	var b strings.Builder
	prevWasContent := false
	prevWasMoreIndented := false

	for i := 0; i <= last; i++ {
		l := lines[i]
		if l.blank {
			b.WriteString(l.brk)
			prevWasContent = false
			prevWasMoreIndented = false
			continue
		}
		if prevWasContent {
			if l.moreIndented || prevWasMoreIndented {
				b.WriteString(lines[i-1].brk)
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(l.text)
		prevWasContent = true
		prevWasMoreIndented = l.moreIndented
	}
	b.WriteString(chompTail(lines, last, chomp))
	return b.String()
}
