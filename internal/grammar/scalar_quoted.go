package grammar

import (
	"github.com/willabides/yamlcore/internal/graph"
	"github.com/willabides/yamlcore/internal/yamlh"
)

// parseSingleQuoted implements c-single-quoted(n,c) [120-122]: content
// delimited by "'", where "''" is an escaped literal single quote and
// line breaks fold the same way a plain scalar's do.
func (p *Parser) parseSingleQuoted(mark yamlh.Mark) *graph.Node {
	from := p.eng.ScratchLen()
	if !p.eng.AcceptRune('\'') {
		p.eng.Fail("expected \"'\" to start a single-quoted scalar")
	}
	for {
		if yamlh.Is_z(p.eng.Units(), p.eng.Pos()) {
			p.eng.Fail("unterminated single-quoted scalar")
		}
		if p.peekChar('\'') {
			if p.eng.At(1) == '\'' {
				p.eng.Advance(2)
				p.eng.AppendScratch('\'')
				continue
			}
			p.eng.Advance(1)
			break
		}
		if yamlh.Is_blank(p.eng.Units(), p.eng.Pos()) {
			p.consumeQuotedBlanks()
			continue
		}
		if yamlh.Is_break(p.eng.Units(), p.eng.Pos()) {
			p.foldQuotedLineBreak()
			continue
		}
		start := p.eng.Pos()
		ok, w := yamlh.NbChar(p.eng.Units(), p.eng.Pos())
		if !ok {
			p.eng.Fail("invalid character in single-quoted scalar")
		}
		p.appendRun(start, w)
		p.eng.Advance(w)
	}
	value := p.eng.ScratchString(from)
	return p.CreateScalar(value, yamlh.StrTag, mark)
}

// parseDoubleQuoted implements c-double-quoted(n,c) [107-116]: content
// delimited by '"', with the full YAML escape set plus the
// backslash-newline "escape the fold" form exercised by spec.md 8.3
// scenario 5.
func (p *Parser) parseDoubleQuoted(mark yamlh.Mark) *graph.Node {
	from := p.eng.ScratchLen()
	if !p.eng.AcceptRune('"') {
		p.eng.Fail("expected '\"' to start a double-quoted scalar")
	}
	for {
		if yamlh.Is_z(p.eng.Units(), p.eng.Pos()) {
			p.eng.Fail("unterminated double-quoted scalar")
		}
		if p.peekChar('"') {
			p.eng.Advance(1)
			break
		}
		if p.peekChar('\\') {
			if yamlh.Is_break(p.eng.Units(), p.eng.Pos()+1) {
				p.eng.Advance(1)
				p.skipEscapedFold()
				continue
			}
			p.decodeEscape()
			continue
		}
		if yamlh.Is_blank(p.eng.Units(), p.eng.Pos()) {
			p.consumeQuotedBlanks()
			continue
		}
		if yamlh.Is_break(p.eng.Units(), p.eng.Pos()) {
			p.foldQuotedLineBreak()
			continue
		}
		start := p.eng.Pos()
		ok, w := yamlh.NbChar(p.eng.Units(), p.eng.Pos())
		if !ok {
			p.eng.Fail("invalid character in double-quoted scalar")
		}
		p.appendRun(start, w)
		p.eng.Advance(w)
	}
	value := p.eng.ScratchString(from)
	return p.CreateScalar(value, yamlh.StrTag, mark)
}

// consumeQuotedBlanks handles an inline whitespace run inside a quoted
// scalar: kept verbatim when more content follows on the same line,
// discarded when a line break follows, since s-flow-folded trims the
// trailing whitespace of a folded line.
func (p *Parser) consumeQuotedBlanks() {
	start := p.eng.Pos()
	for yamlh.Is_blank(p.eng.Units(), p.eng.Pos()) {
		p.eng.Advance(1)
	}
	if yamlh.Is_break(p.eng.Units(), p.eng.Pos()) {
		return
	}
	p.appendRun(start, p.eng.Pos()-start)
}

// skipEscapedFold consumes "\" <break> <leading blanks of next line(s)>
// with no output at all: the backslash suppresses the line fold that
// would otherwise insert a space (spec.md 8.3 scenario 5).
func (p *Parser) skipEscapedFold() {
	p.consumeBreak()
	for yamlh.Is_blank(p.eng.Units(), p.eng.Pos()) {
		p.eng.Advance(1)
	}
}

// foldQuotedLineBreak implements s-flow-folded's line-folding rule for
// quoted scalars: trailing blanks before the break are not part of the
// content, one break folds to a space, N>1 consecutive breaks fold to
// N-1 line feeds, and leading blanks of the resumed line are consumed.
func (p *Parser) foldQuotedLineBreak() {
	var breakTexts []string
	for yamlh.Is_break(p.eng.Units(), p.eng.Pos()) {
		breakTexts = append(breakTexts, p.consumeBreakText())
		for yamlh.Is_blank(p.eng.Units(), p.eng.Pos()) {
			p.eng.Advance(1)
		}
	}
	if len(breakTexts) == 1 {
		p.eng.AppendScratch(' ')
		return
	}
	for _, text := range breakTexts[1:] {
		p.appendScratchString(text)
	}
}

// decodeEscape implements c-ns-esc-char [62]: the double-quote escape
// table, including \xXX, \uXXXX, \UXXXXXXXX (which may produce a
// surrogate pair directly, spec.md 8.2).
func (p *Parser) decodeEscape() {
	mark := p.eng.MarkHere()
	p.eng.Advance(1) // consume '\'
	if yamlh.Is_z(p.eng.Units(), p.eng.Pos()) {
		p.eng.FailAt("unterminated escape sequence", mark)
	}
	c := p.eng.At(0)
	switch c {
	case '0':
		p.eng.AppendScratch(0)
		p.eng.Advance(1)
	case 'a':
		p.eng.AppendScratch(7)
		p.eng.Advance(1)
	case 'b':
		p.eng.AppendScratch(8)
		p.eng.Advance(1)
	case 't', 0x09:
		p.eng.AppendScratch('\t')
		p.eng.Advance(1)
	case 'n':
		p.eng.AppendScratch('\n')
		p.eng.Advance(1)
	case 'v':
		p.eng.AppendScratch(0x0B)
		p.eng.Advance(1)
	case 'f':
		p.eng.AppendScratch(0x0C)
		p.eng.Advance(1)
	case 'r':
		p.eng.AppendScratch('\r')
		p.eng.Advance(1)
	case 'e':
		p.eng.AppendScratch(0x1B)
		p.eng.Advance(1)
	case ' ':
		p.eng.AppendScratch(' ')
		p.eng.Advance(1)
	case '"':
		p.eng.AppendScratch('"')
		p.eng.Advance(1)
	case '/':
		p.eng.AppendScratch('/')
		p.eng.Advance(1)
	case '\\':
		p.eng.AppendScratch('\\')
		p.eng.Advance(1)
	case 'N':
		p.eng.AppendScratch(0x85)
		p.eng.Advance(1)
	case '_':
		p.eng.AppendScratch(0xA0)
		p.eng.Advance(1)
	case 'L':
		p.eng.AppendScratch(0x2028)
		p.eng.Advance(1)
	case 'P':
		p.eng.AppendScratch(0x2029)
		p.eng.Advance(1)
	case 'x':
		p.eng.Advance(1)
		p.decodeHexEscape(2, mark)
	case 'u':
		p.eng.Advance(1)
		p.decodeHexEscape(4, mark)
	case 'U':
		p.eng.Advance(1)
		p.decodeHexEscape(8, mark)
	default:
		p.eng.FailAt("unknown escape sequence", mark)
	}
}

// decodeHexEscape reads exactly n hex digits, which may cross a
// surrogate boundary if n==8 and the resulting code point is outside
// the BMP; open question in spec.md 9 notes this recovery is
// "best effort" if the digit run itself is truncated by EOF.
func (p *Parser) decodeHexEscape(n int, mark yamlh.Mark) {
	value := 0
	for i := 0; i < n; i++ {
		if !yamlh.Is_hex(p.eng.Units(), p.eng.Pos()) {
			p.eng.FailAt("invalid hex digit in escape sequence", mark)
		}
		value = value<<4 | yamlh.As_hex(p.eng.Units(), p.eng.Pos())
		p.eng.Advance(1)
	}
	p.eng.AppendScratchRune(rune(value))
}
