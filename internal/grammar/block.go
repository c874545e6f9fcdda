package grammar

import (
	"github.com/willabides/yamlcore/internal/graph"
	"github.com/willabides/yamlcore/internal/yamlh"
)

// parseBlockSequence implements l+block-sequence(n) [183]: entries are
// "-" s-l+block-indented(n+1), each starting at the same column, which
// becomes the sequence's own indentation (spec.md 4.5.3).
func (p *Parser) parseBlockSequence(n int) *graph.Node {
	mark := p.eng.MarkHere()
	seqIndent := p.currentColumn()
	node := p.BeginSequence(mark)

	for {
		if !(p.atColumn(seqIndent) && p.peekChar('-') && p.blankAfterOffset(1)) {
			break
		}
		p.eng.AcceptRune('-')
		item := p.parseBlockIndentedEntry(seqIndent, yamlh.BlockIn)
		node.Items = append(node.Items, item)
		if !p.advanceToNextContentLine(seqIndent) {
			break
		}
	}
	return node
}

// parseBlockIndentedEntry parses the value that follows a "-" sequence
// indicator or a mapping ":": either inline on the same line, or on a
// following line. The context decides how deep a following-line
// collection must sit: BlockIn (sequence entries, explicit keys)
// requires more indentation than the indicator's column, BlockOut
// (mapping values) additionally admits a sequence at the same column.
func (p *Parser) parseBlockIndentedEntry(indicatorColumn int, c yamlh.Context) *graph.Node {
	p.skipInlineBlanksAndComment()
	if yamlh.Is_breakz(p.eng.Units(), p.eng.Pos()) {
		mark := p.eng.MarkHere()
		if node := p.tryParseIndentedBlockCollection(indicatorColumn, c); node != nil {
			return node
		}
		return p.emptyScalarNode(mark)
	}
	return p.parseBlockNode(indicatorColumn+1, yamlh.BlockIn)
}

// advanceToNextContentLine skips blank lines and comment lines, then
// reports whether the next content line is still indented at exactly
// column, i.e. whether the enclosing repetition should continue.
func (p *Parser) advanceToNextContentLine(column int) bool {
	ok := p.eng.WithRewind(func() bool {
		p.skipSeparateLines(0)
		if yamlh.Is_z(p.eng.Units(), p.eng.Pos()) {
			return false
		}
		if p.atDocumentMarker() {
			return false
		}
		return p.atColumn(column)
	}, nil)
	return ok
}

// looksLikeMappingKey speculatively scans the upcoming key (a plain
// scalar, a quoted scalar, or "?") and reports whether it is followed by
// the mapping value indicator ":" (spec.md 4.5.3's ns-s-implicit-yaml-key
// family). The scan is fully rewound regardless of outcome.
func (p *Parser) looksLikeMappingKey(n int, c yamlh.Context) bool {
	if p.peekChar('?') && p.blankAfterOffset(1) {
		return true
	}
	// The probe always rewinds, even on a positive answer: any node it
	// built, anchor it bound, or pending property it consumed belongs to
	// the real key parse that follows, not to the speculation.
	found := false
	p.withStateRewind(func() bool {
		switch {
		case p.peekChar('\''):
			p.parseSingleQuoted(p.eng.MarkHere())
		case p.peekChar('"'):
			p.parseDoubleQuoted(p.eng.MarkHere())
		case p.peekChar('[') || p.peekChar('{'):
			if !p.scanFlowKeyCandidate() {
				return false
			}
		default:
			if !p.scanPlainKeyCandidate() {
				return false
			}
		}
		p.skipInlineBlanksAndComment()
		found = p.peekChar(':') && p.blankAfterOffset(1)
		return false
	})
	return found
}

// scanFlowKeyCandidate skims a single-line flow collection by bracket
// matching, skipping over quoted runs, without building nodes. It exists
// so looksLikeMappingKey can probe "[a, b]: v" without a full (and
// potentially fatally-failing) speculative parse of the collection.
func (p *Parser) scanFlowKeyCandidate() bool {
	depth := 0
	for {
		if yamlh.Is_breakz(p.eng.Units(), p.eng.Pos()) {
			return false
		}
		switch p.eng.At(0) {
		case '[', '{':
			depth++
		case ']', '}':
			depth--
		case '\'', '"':
			if !p.skimQuotedRun(p.eng.At(0)) {
				return false
			}
			continue
		}
		p.eng.Advance(1)
		if depth == 0 {
			return true
		}
	}
}

// skimQuotedRun consumes a quoted scalar without decoding it, for the
// flow-key probe only. A break or end of input inside the quotes makes
// the probe fail (implicit keys are single-line).
func (p *Parser) skimQuotedRun(quote uint16) bool {
	double := quote == '"'
	p.eng.Advance(1)
	for {
		if yamlh.Is_breakz(p.eng.Units(), p.eng.Pos()) {
			return false
		}
		c := p.eng.At(0)
		if double && c == '\\' {
			p.eng.Advance(2)
			continue
		}
		p.eng.Advance(1)
		if c == quote {
			if !double && p.eng.At(0) == '\'' {
				p.eng.Advance(1)
				continue
			}
			return true
		}
	}
}

// scanPlainKeyCandidate consumes a single-line run of ns-plain-safe
// characters, including inline blanks that are followed by more plain
// content, without building a node, purely to let looksLikeMappingKey
// test what follows. It deliberately does not implement the ':' minus
// ns-plain-safe exclusion (spec.md 4.5.3) since at this point we are
// only probing for a literal ':' after the run, which is exactly that
// exclusion's target.
func (p *Parser) scanPlainKeyCandidate() bool {
	ok, w := yamlh.NsPlainFirst(p.eng.Units(), p.eng.Pos(), yamlh.BlockKey)
	if !ok {
		return false
	}
	p.eng.Advance(w)
	for {
		if p.peekChar(':') {
			return true
		}
		if yamlh.Is_blank(p.eng.Units(), p.eng.Pos()) {
			for yamlh.Is_blank(p.eng.Units(), p.eng.Pos()) {
				p.eng.Advance(1)
			}
			if p.peekChar('#') || yamlh.Is_breakz(p.eng.Units(), p.eng.Pos()) {
				return true
			}
			continue
		}
		ok, w := yamlh.NsPlainSafe(p.eng.Units(), p.eng.Pos(), yamlh.BlockKey)
		if !ok {
			return true
		}
		p.eng.Advance(w)
	}
}

// parseBlockMapping implements l+block-mapping(n) [187]: entries are
// either ns-l-block-map-explicit-entry ("? key" / ": value") or
// ns-l-block-map-implicit-entry (a key immediately followed by ":"),
// all starting at the same column, which becomes the mapping's own
// indentation.
func (p *Parser) parseBlockMapping(n int) *graph.Node {
	mark := p.eng.MarkHere()
	mapIndent := p.currentColumn()
	node := p.BeginMapping(mark)

	for {
		if !p.atColumn(mapIndent) {
			break
		}
		if !p.looksLikeMappingKey(n, yamlh.BlockOut) {
			break
		}

		var key *graph.Node
		explicit := p.peekChar('?') && p.blankAfterOffset(1)
		if explicit {
			p.eng.AcceptRune('?')
			key = p.parseBlockIndentedEntry(mapIndent, yamlh.BlockIn)
			if !p.advanceToNextContentLine(mapIndent) {
				node.Pairs = append(node.Pairs, graph.Pair{Key: key, Value: p.emptyScalarNode(p.eng.MarkHere())})
				break
			}
		} else {
			key = p.parseImplicitKey(n)
		}

		p.skipInlineBlanksAndComment()
		if !p.eng.AcceptRune(':') {
			if explicit {
				node.Pairs = append(node.Pairs, graph.Pair{Key: key, Value: p.emptyScalarNode(p.eng.MarkHere())})
				continue
			}
			p.eng.Fail("expected ':' to separate mapping key and value")
		}

		value := p.parseBlockIndentedEntry(mapIndent, yamlh.BlockOut)
		node.Pairs = append(node.Pairs, graph.Pair{Key: key, Value: value})

		if !p.advanceToNextContentLine(mapIndent) {
			break
		}
	}
	return node
}

// parseImplicitKey parses an implicit block-mapping key: a node of
// context block-key, limited to a single line and 1024 characters
// (spec.md 4.5.3).
func (p *Parser) parseImplicitKey(n int) *graph.Node {
	start := p.eng.Pos()
	mark := p.eng.MarkHere()
	key := p.parseNodeContent(n, yamlh.BlockKey, mark)
	if p.eng.Pos()-start > 1024 {
		p.eng.FailAt("implicit mapping key must not exceed 1024 characters", mark)
	}
	return key
}
