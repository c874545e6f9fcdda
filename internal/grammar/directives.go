package grammar

import (
	"fmt"

	"github.com/willabides/yamlcore/internal/graph"
	"github.com/willabides/yamlcore/internal/yamlh"
)

// parseDocument implements l-yaml-stream's per-document alternative
// (spec.md 4.5.4): zero or more directives followed by an explicit
// "---", OR a bare "---", OR a bare document with no marker at all.
func (p *Parser) parseDocument() (*graph.Node, bool) {
	p.tags.Reset()
	p.anchors.Reset()
	sawYAMLDirective := false
	sawDirective := false

	p.eng.Repeat(func() bool {
		if !p.peekChar('%') {
			return false
		}
		p.parseDirective(&sawYAMLDirective)
		sawDirective = true
		p.skipCommentLinesAndBlanks()
		return true
	})

	hasExplicitMarker := p.eng.WithRewind(func() bool {
		return p.eng.AcceptString("---") && yamlh.Is_blankz(p.eng.Units(), p.eng.Pos())
	}, nil)

	if sawDirective && !hasExplicitMarker {
		p.eng.Fail("expected explicit document start '---' after directives")
	}

	// Content may follow "---" on the same line ("--- foo"); the blank
	// and comment skipping below positions the cursor on it either way.
	if !hasExplicitMarker && (p.atStreamEnd() || p.acceptDocumentEnd()) {
		return nil, false
	}

	p.skipCommentLinesAndBlanks()

	if p.atStreamEnd() || p.peekDocumentEndMarker() || p.peekExplicitMarkerAhead() {
		mark := p.eng.MarkHere()
		root := p.emptyScalarNode(mark)
		return root, true
	}

	root := p.parseBlockNode(-1, yamlh.BlockOut)

	p.skipCommentLinesAndBlanks()
	p.acceptDocumentEnd()
	return root, true
}

func (p *Parser) peekDocumentEndMarker() bool {
	return p.eng.WithRewind(func() bool {
		return p.eng.AcceptString("...") && yamlh.Is_blankz(p.eng.Units(), p.eng.Pos())
	}, nil)
}

func (p *Parser) peekExplicitMarkerAhead() bool {
	return p.eng.WithRewind(func() bool {
		return p.eng.AcceptString("---") && yamlh.Is_blankz(p.eng.Units(), p.eng.Pos())
	}, nil)
}

func (p *Parser) skipRestOfLine() {
	for !yamlh.Is_breakz(p.eng.Units(), p.eng.Pos()) {
		if p.peekChar('#') {
			p.skipLineComment()
			break
		}
		p.eng.Advance(1)
	}
}

// parseDirective parses one "%YAML ...", "%TAG ...", or unknown
// directive line (spec.md 6.3).
func (p *Parser) parseDirective(sawYAMLDirective *bool) {
	p.eng.AcceptRune('%')
	start := p.eng.Pos()
	for yamlh.Is_alpha(p.eng.Units(), p.eng.Pos()) {
		p.eng.Advance(1)
	}
	name := p.eng.Substring(start, p.eng.Pos())

	switch name {
	case "YAML":
		p.parseYAMLDirective(sawYAMLDirective)
	case "TAG":
		p.parseTagDirective()
	default:
		p.skipRestOfLine()
		p.eng.Warn(fmt.Sprintf("unknown directive %%%s", name))
	}
}

func (p *Parser) parseYAMLDirective(sawYAMLDirective *bool) {
	if *sawYAMLDirective {
		p.eng.Fail("duplicate %YAML directive")
	}
	*sawYAMLDirective = true
	p.skipBlanks()
	start := p.eng.Pos()
	for yamlh.Is_digit(p.eng.Units(), p.eng.Pos()) {
		p.eng.Advance(1)
	}
	major := p.eng.Substring(start, p.eng.Pos())
	if major == "" || !p.eng.AcceptRune('.') {
		p.eng.Fail("malformed %YAML directive")
	}
	start = p.eng.Pos()
	for yamlh.Is_digit(p.eng.Units(), p.eng.Pos()) {
		p.eng.Advance(1)
	}
	minor := p.eng.Substring(start, p.eng.Pos())
	if minor == "" {
		p.eng.Fail("malformed %YAML directive")
	}
	if major != "1" || minor != "2" {
		p.eng.Warn(fmt.Sprintf("unsupported YAML version %s.%s, parsing as 1.2", major, minor))
	}
	p.skipRestOfLine()
}

func (p *Parser) parseTagDirective() {
	p.skipBlanks()
	handle := p.scanTagHandle()
	p.skipBlanks()
	prefix := p.scanTagPrefix()
	if err := p.tags.Add(handle, prefix); err != nil {
		p.eng.Fail(err.Error())
	}
	p.skipRestOfLine()
}

func (p *Parser) scanTagHandle() string {
	start := p.eng.Pos()
	if !p.eng.AcceptRune('!') {
		p.eng.Fail("expected tag handle")
	}
	for yamlh.Is_alpha(p.eng.Units(), p.eng.Pos()) {
		p.eng.Advance(1)
	}
	p.eng.AcceptRune('!')
	return p.eng.Substring(start, p.eng.Pos())
}

func (p *Parser) scanTagPrefix() string {
	start := p.eng.Pos()
	if p.eng.AcceptRune('!') {
		for ok, w := yamlh.NsTagChar(p.eng.Units(), p.eng.Pos()); ok; ok, w = yamlh.NsTagChar(p.eng.Units(), p.eng.Pos()) {
			p.eng.Advance(w)
		}
		return p.eng.Substring(start, p.eng.Pos())
	}
	for ok, w := yamlh.NsURIChar(p.eng.Units(), p.eng.Pos()); ok; ok, w = yamlh.NsURIChar(p.eng.Units(), p.eng.Pos()) {
		p.eng.Advance(w)
	}
	prefix := p.eng.Substring(start, p.eng.Pos())
	if prefix == "" {
		p.eng.Fail("malformed %TAG prefix")
	}
	return prefix
}

func (p *Parser) skipBlanks() {
	p.eng.Repeat(func() bool {
		return p.eng.AcceptBool(func(u []uint16, i int) bool { return yamlh.Is_blank(u, i) })
	})
}
