package grammar

import "github.com/willabides/yamlcore/internal/yamlh"

// skipSeparate implements s-separate(n,c): in the flow contexts this is
// just inline whitespace/comments; in the block contexts it additionally
// allows the separation to fold across line breaks as long as the next
// non-blank line is indented at least to n (s-separate-lines).
func (p *Parser) skipSeparate(n int, c yamlh.Context) bool {
	switch c {
	case yamlh.BlockKey, yamlh.FlowKey:
		return p.skipInlineBlanksAndComment()
	default:
		return p.skipSeparateLines(n)
	}
}

func (p *Parser) skipInlineBlanksAndComment() bool {
	matched := false
	p.eng.Repeat(func() bool {
		if p.eng.AcceptBool(func(u []uint16, i int) bool { return yamlh.Is_blank(u, i) }) {
			matched = true
			return true
		}
		return false
	})
	if p.peekChar('#') {
		p.skipLineComment()
		matched = true
	}
	return matched
}

// skipSeparateLines consumes inline blanks/comments, then any number of
// additional (comment-only or blank) lines, requiring the final line the
// cursor lands on to be indented at least n columns. Reports whether any
// separation was consumed, inline or across lines.
func (p *Parser) skipSeparateLines(n int) bool {
	matched := p.skipInlineBlanksAndComment()
	p.eng.Repeat(func() bool {
		if !yamlh.Is_break(p.eng.Units(), p.eng.Pos()) {
			return false
		}
		crossed := p.eng.WithRewind(func() bool {
			p.consumeBreak()
			p.skipInlineBlanksAndComment()
			if yamlh.Is_break(p.eng.Units(), p.eng.Pos()) || yamlh.Is_z(p.eng.Units(), p.eng.Pos()) {
				return true
			}
			return p.currentColumn() >= n
		}, nil)
		if crossed {
			matched = true
		}
		return crossed
	})
	return matched
}

func (p *Parser) consumeBreak() {
	width := 1
	if yamlh.Is_crlf(p.eng.Units(), p.eng.Pos()) {
		width = 2
	}
	p.eng.Advance(width)
}

// consumeBreakText consumes the break at the cursor and returns the text
// a scalar assembler should emit for it: the configured line break when
// normalisation is on, the verbatim input break otherwise (the
// "line breaks are not normalised unless configured" deviation).
func (p *Parser) consumeBreakText() string {
	text := p.lbString
	if !p.normalize {
		if yamlh.Is_crlf(p.eng.Units(), p.eng.Pos()) {
			text = "\r\n"
		} else {
			text = string(rune(p.eng.At(0)))
		}
	}
	p.consumeBreak()
	return text
}

// atDocumentMarker reports whether the cursor sits on a "---" or "..."
// line at column zero. Document markers terminate multi-line plain
// scalars and block scalars no matter how the surrounding indentation
// would otherwise read.
func (p *Parser) atDocumentMarker() bool {
	return p.currentColumn() == 0 && yamlh.IsDocumentMarker(p.eng.Units(), p.eng.Pos())
}

// currentColumn is the 0-based column of the cursor on its current line.
func (p *Parser) currentColumn() int {
	return p.eng.MarkHere().Column - 1
}

// atColumn requires the cursor to be exactly at column n (0-based),
// used by block productions that dispatch on indentation.
func (p *Parser) atColumn(n int) bool {
	return p.currentColumn() == n
}

// indentedAtLeast requires the cursor's column to be >= n.
func (p *Parser) indentedAtLeast(n int) bool {
	return p.currentColumn() >= n
}

// autoDetectIndentation implements spec.md 4.5.1: scan forward through
// any leading blank lines, recording the widest run of leading spaces
// among them, then use the first non-blank line's own leading-space
// count as the detected content indentation. Rewind back to the
// starting position and return (detected - n), clamped to a minimum of
// 1. A TAB used for leading indentation with no explicit indication is
// a fatal error; so is a blank line indented further than the first
// content line turns out to be.
func (p *Parser) autoDetectIndentation(n int) int {
	startPos := p.eng.Snapshot()
	widestBlank := 0
	contentIndent := -1

	for {
		col := 0
		sawTab := false
		for {
			if yamlh.Is_space(p.eng.Units(), p.eng.Pos()) {
				p.eng.Advance(1)
				col++
				continue
			}
			if yamlh.Is_tab(p.eng.Units(), p.eng.Pos()) {
				sawTab = true
				p.eng.Advance(1)
				col++
				continue
			}
			break
		}
		if yamlh.Is_breakz(p.eng.Units(), p.eng.Pos()) {
			if col > widestBlank {
				widestBlank = col
			}
			if yamlh.Is_z(p.eng.Units(), p.eng.Pos()) {
				break
			}
			p.consumeBreak()
			continue
		}
		if sawTab && col > n {
			p.eng.FailAt("tab character used for block indentation", p.eng.MarkHere())
		}
		contentIndent = col
		break
	}

	p.eng.Restore(startPos)
	if contentIndent <= n {
		return 1
	}
	if widestBlank > contentIndent {
		p.eng.FailAt("leading empty line indented further than the block scalar's content", p.eng.MarkHere())
	}
	detected := contentIndent - n
	if detected < 1 {
		detected = 1
	}
	return detected
}
