package grammar

import (
	"github.com/willabides/yamlcore/internal/graph"
	"github.com/willabides/yamlcore/internal/yamlh"
)

// parsePlainScalar implements ns-plain(n,c) [130-136]: an unquoted
// scalar whose extent is inferred from context. Line folding only
// applies outside the key contexts, which are single-line by
// definition (spec.md 4.5.3, GLOSSARY "Implicit key").
//
// Deviation preserved from spec.md 4.5.3/9: a ':' ends the scalar
// whenever it is followed by blank/break/EOF, rather than only when
// the unmodified grammar's narrower ns-plain-safe exclusion would kick
// in. This matches the documented "compatible with common YAML in the
// wild" behaviour and keeps a bare ':' that isn't acting as a mapping
// separator — e.g. inside "https://example.com" — part of the scalar.
func (p *Parser) parsePlainScalar(n int, c yamlh.Context, mark yamlh.Mark) *graph.Node {
	from := p.eng.ScratchLen()
	singleLine := c == yamlh.BlockKey || c == yamlh.FlowKey

	ok, w := yamlh.NsPlainFirst(p.eng.Units(), p.eng.Pos(), c)
	if !ok {
		p.eng.Fail("expected a plain scalar")
	}
	p.appendRun(p.eng.Pos(), w)
	p.eng.Advance(w)

	for p.consumePlainSegment(n, c, singleLine) {
	}

	value := p.eng.ScratchString(from)
	return p.CreateScalar(value, "", mark)
}

// consumePlainSegment consumes either one content character or one
// run of whitespace (inline, or folded across a line break), returning
// whether the scalar continues.
func (p *Parser) consumePlainSegment(n int, c yamlh.Context, singleLine bool) bool {
	if p.peekChar(':') && yamlh.Is_blankz(p.eng.Units(), p.eng.Pos()+1) {
		return false
	}
	if p.peekChar('#') && p.precededByBlank() {
		return false
	}
	if (c == yamlh.FlowIn || c == yamlh.FlowKey) && yamlh.IsFlowIndicator(p.eng.Units(), p.eng.Pos()) {
		return false
	}

	if yamlh.Is_blank(p.eng.Units(), p.eng.Pos()) || yamlh.Is_break(p.eng.Units(), p.eng.Pos()) {
		return p.consumePlainWhitespace(n, c, singleLine)
	}

	ok, w := yamlh.NsPlainSafe(p.eng.Units(), p.eng.Pos(), c)
	if !ok {
		return false
	}
	p.appendRun(p.eng.Pos(), w)
	p.eng.Advance(w)
	return true
}

func (p *Parser) precededByBlank() bool {
	return p.eng.Pos() > 0 && yamlh.Is_blank(p.eng.Units(), p.eng.Pos()-1)
}

// consumePlainWhitespace handles both inline blanks (appended literally
// if more content follows on the same line) and line folding: a single
// break folds to a space, consecutive breaks fold to that many minus one
// line feeds (spec.md 4.5.2's folding rule, reused here per b-l-folded).
func (p *Parser) consumePlainWhitespace(n int, c yamlh.Context, singleLine bool) bool {
	blankStart := p.eng.Pos()
	for yamlh.Is_blank(p.eng.Units(), p.eng.Pos()) {
		p.eng.Advance(1)
	}
	if !yamlh.Is_break(p.eng.Units(), p.eng.Pos()) {
		if yamlh.Is_breakz(p.eng.Units(), p.eng.Pos()) {
			return false
		}
		// Trailing blanks before a terminator are not content: a comment,
		// a value indicator, or (in flow) a flow indicator all end the
		// scalar at the last non-blank character.
		if p.peekChar('#') {
			return false
		}
		if p.peekChar(':') && yamlh.Is_blankz(p.eng.Units(), p.eng.Pos()+1) {
			return false
		}
		if (c == yamlh.FlowIn || c == yamlh.FlowKey) && yamlh.IsFlowIndicator(p.eng.Units(), p.eng.Pos()) {
			return false
		}
		p.appendRun(blankStart, p.eng.Pos()-blankStart)
		return true
	}
	if singleLine {
		return false
	}

	var breakTexts []string
	for yamlh.Is_break(p.eng.Units(), p.eng.Pos()) {
		breakTexts = append(breakTexts, p.consumeBreakText())
		for yamlh.Is_blank(p.eng.Units(), p.eng.Pos()) {
			p.eng.Advance(1)
		}
	}
	if yamlh.Is_z(p.eng.Units(), p.eng.Pos()) {
		return false
	}
	if p.atDocumentMarker() {
		return false
	}
	if !p.indentedAtLeast(n) {
		return false
	}
	if len(breakTexts) == 1 {
		p.eng.AppendScratch(' ')
	} else {
		// N breaks fold to N-1 line breaks; the first break is the one
		// consumed by the fold itself.
		for _, text := range breakTexts[1:] {
			p.appendScratchString(text)
		}
	}
	return true
}

// appendRun copies units[from:from+length] into the scratch buffer
// verbatim. A content run never contains a line break, so no
// normalisation applies here.
func (p *Parser) appendRun(from, length int) {
	p.eng.AppendScratch(p.eng.Units()[from : from+length]...)
}
