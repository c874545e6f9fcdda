// Package grammar implements the YAML 1.2 BNF productions of spec.md 4.5,
// parameterised by (n, c), driving internal/engine and
// internal/tagprefix/internal/anchor/internal/resolve to build an
// internal/graph representation graph. It is the 55%-of-the-core
// component spec.md's system overview table describes.
//
// Control flow is grounded on the teacher's internal/parserc state
// machine (internal/parserc/parser.go's PARSE_*_STATE constants): each
// state there becomes one rule function here, but where the teacher
// drives an explicit FSM over a token queue, this rewrite drives
// recursive-descent rules directly over engine.Engine, with
// engine.WithRewind standing in for the teacher's token-queue
// lookahead/rollback.
package grammar

import (
	"unicode/utf16"

	"github.com/willabides/yamlcore/internal/anchor"
	"github.com/willabides/yamlcore/internal/engine"
	"github.com/willabides/yamlcore/internal/graph"
	"github.com/willabides/yamlcore/internal/resolve"
	"github.com/willabides/yamlcore/internal/tagprefix"
	"github.com/willabides/yamlcore/internal/yamlh"
)

// Config mirrors spec.md 6.2, passed down from the public package.
type Config struct {
	NormalizeLineBreaks bool
	LineBreakForInput   string
	TagResolver         resolve.Resolver
}

// Parser owns one parse of one input string. Not safe for concurrent
// use; independent Parser values may run in parallel (spec.md 5).
type Parser struct {
	eng       *engine.Engine
	anchors   *anchor.Table[*graph.Node]
	tags      *tagprefix.Table
	resolver  resolve.Resolver
	normalize bool
	lbString  string // what a normalised line break decodes to in scalar content

	state state
}

// New builds a Parser over text, ready to call ParseStream.
func New(text string, cfg Config) *Parser {
	if cfg.TagResolver == nil {
		cfg.TagResolver = resolve.Default
	}
	if cfg.LineBreakForInput == "" {
		cfg.LineBreakForInput = "\n"
	}
	lb := "\n"
	if cfg.NormalizeLineBreaks {
		lb = cfg.LineBreakForInput
	}
	p := &Parser{
		eng:       engine.New(text),
		anchors:   anchor.New[*graph.Node](),
		tags:      tagprefix.New(),
		resolver:  cfg.TagResolver,
		normalize: cfg.NormalizeLineBreaks,
		lbString:  lb,
	}
	return p
}

// ParseStream parses every document in the stream and returns the
// roots in order plus the accumulated warnings (spec.md 6.1). A fatal
// production error aborts the whole parse; partial results are not
// returned (spec.md 7).
func (p *Parser) ParseStream() (docs []*graph.Node, warnings []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(*yamlh.ParseError); ok {
				err = fe
				docs = nil
				return
			}
			panic(r)
		}
	}()

	for {
		// A BOM is legal at every document prefix, not just the first: at
		// the start of the stream and at the start of the line after a
		// "..." marker.
		p.skipBOM()
		p.skipCommentLinesAndBlanks()
		if p.atStreamEnd() {
			break
		}
		if p.acceptDocumentEnd() {
			continue
		}
		doc, ok := p.parseDocument()
		if ok {
			docs = append(docs, doc)
		}
	}

	for _, w := range p.eng.Warnings() {
		warnings = append(warnings, w.String())
	}
	return docs, warnings, nil
}

func (p *Parser) atStreamEnd() bool {
	return yamlh.Is_z(p.eng.Units(), p.eng.Pos())
}

func (p *Parser) skipBOM() {
	if yamlh.IsBOM(p.eng.Units(), p.eng.Pos()) {
		p.eng.Advance(1)
	}
}

// skipCommentLinesAndBlanks consumes blank lines and full-line comments
// that may precede a document, failing fatally on a BOM found mid-stream
// at a position that is not a document prefix (spec.md 4.5.4).
func (p *Parser) skipCommentLinesAndBlanks() {
	p.eng.Repeat(func() bool {
		if yamlh.IsBOM(p.eng.Units(), p.eng.Pos()) {
			p.eng.Fail("BOM is not allowed inside a document")
		}
		if p.eng.AcceptBool(func(u []uint16, i int) bool { return yamlh.Is_blank(u, i) }) {
			return true
		}
		if yamlh.Is_break(p.eng.Units(), p.eng.Pos()) {
			width := 1
			if yamlh.Is_crlf(p.eng.Units(), p.eng.Pos()) {
				width = 2
			}
			p.eng.Advance(width)
			return true
		}
		if p.peekChar('#') {
			p.skipLineComment()
			return true
		}
		return false
	})
}

func (p *Parser) skipLineComment() {
	for !yamlh.Is_breakz(p.eng.Units(), p.eng.Pos()) {
		p.eng.Advance(1)
	}
}

func (p *Parser) peekChar(c uint16) bool {
	return p.eng.At(0) == c
}

func (p *Parser) appendScratchString(s string) {
	p.eng.AppendScratch(utf16.Encode([]rune(s))...)
}

// acceptDocumentEnd consumes a "..." marker together with the rest of its
// line and the line break, so the next document's prefix starts at the
// beginning of the following line.
func (p *Parser) acceptDocumentEnd() bool {
	ok := p.eng.WithRewind(func() bool {
		if !p.eng.AcceptString("...") {
			return false
		}
		return yamlh.Is_blankz(p.eng.Units(), p.eng.Pos())
	}, nil)
	if !ok {
		return false
	}
	p.skipInlineBlanksAndComment()
	p.consumeBreakIfPresent()
	return true
}
