package grammar

import (
	"github.com/willabides/yamlcore/internal/graph"
	"github.com/willabides/yamlcore/internal/yamlh"
)

// parseFlowSequence implements c-flow-sequence(n,c) [137]: "[" entries
// separated by "," "]", where an entry may itself be a compact
// single-pair mapping (spec.md 4.5.3's ns-l-compact-…, generalised here
// to flow).
func (p *Parser) parseFlowSequence(n int, c yamlh.Context) *graph.Node {
	mark := p.eng.MarkHere()
	p.eng.AcceptRune('[')
	node := p.BeginSequence(mark)

	p.skipFlowSeparate(n, c)
	for !p.peekChar(']') {
		if yamlh.Is_z(p.eng.Units(), p.eng.Pos()) {
			p.eng.Fail("unexpected end of input inside flow sequence")
		}
		node.Items = append(node.Items, p.parseFlowSequenceEntry(n, c))
		p.skipFlowSeparate(n, c)
		if p.peekChar(',') {
			p.eng.AcceptRune(',')
			p.skipFlowSeparate(n, c)
			continue
		}
		break
	}
	if !p.eng.AcceptRune(']') {
		p.eng.Fail("expected ']' to close flow sequence")
	}
	return node
}

// parseFlowSequenceEntry handles a plain sequence element, or the
// "key: value" shorthand for a single-pair mapping entry inside a flow
// sequence (e.g. "[a: 1, b: 2]" parses as a sequence of one-entry maps).
func (p *Parser) parseFlowSequenceEntry(n int, c yamlh.Context) *graph.Node {
	mark := p.eng.MarkHere()
	if p.peekChar('?') {
		pair := p.parseFlowMappingEntry(n, c)
		return p.singlePairMapping(pair, mark)
	}

	first := p.parseFlowNode(n, c)
	saved := p.eng.Snapshot()
	p.skipFlowSeparate(n, c)
	if p.peekChar(':') {
		p.eng.AcceptRune(':')
		p.skipFlowSeparate(n, c)
		var value *graph.Node
		if p.peekChar(',') || p.peekChar(']') || p.peekChar('}') {
			value = p.emptyScalarNode(p.eng.MarkHere())
		} else {
			value = p.parseFlowNode(n, c)
		}
		return p.singlePairMapping(graph.Pair{Key: first, Value: value}, mark)
	}
	p.eng.Restore(saved)
	return first
}

// singlePairMapping wraps one entry in a mapping node; the compact
// shorthand can carry no properties of its own, so the structural tag
// applies directly.
func (p *Parser) singlePairMapping(pair graph.Pair, mark yamlh.Mark) *graph.Node {
	return &graph.Node{Kind: graph.MappingNode, Tag: yamlh.MapTag, Mark: mark, Pairs: []graph.Pair{pair}}
}

// parseFlowMapping implements c-flow-mapping(n,c) [140]: "{" entries
// separated by "," "}".
func (p *Parser) parseFlowMapping(n int, c yamlh.Context) *graph.Node {
	mark := p.eng.MarkHere()
	p.eng.AcceptRune('{')
	node := p.BeginMapping(mark)

	p.skipFlowSeparate(n, c)
	for !p.peekChar('}') {
		if yamlh.Is_z(p.eng.Units(), p.eng.Pos()) {
			p.eng.Fail("unexpected end of input inside flow mapping")
		}
		node.Pairs = append(node.Pairs, p.parseFlowMappingEntry(n, c))
		p.skipFlowSeparate(n, c)
		if p.peekChar(',') {
			p.eng.AcceptRune(',')
			p.skipFlowSeparate(n, c)
			continue
		}
		break
	}
	if !p.eng.AcceptRune('}') {
		p.eng.Fail("expected '}' to close flow mapping")
	}
	return node
}

func (p *Parser) parseFlowMappingEntry(n int, c yamlh.Context) graph.Pair {
	if p.peekChar('?') {
		p.eng.AcceptRune('?')
		p.skipFlowSeparate(n, c)
		key := p.parseFlowNode(n, c)
		p.skipFlowSeparate(n, c)
		if p.peekChar(':') {
			p.eng.AcceptRune(':')
			p.skipFlowSeparate(n, c)
			return graph.Pair{Key: key, Value: p.parseFlowNode(n, c)}
		}
		return graph.Pair{Key: key, Value: p.emptyScalarNode(p.eng.MarkHere())}
	}

	key := p.parseFlowNode(n, yamlh.FlowKey)
	p.skipFlowSeparate(n, c)
	// A lone key ("{a, b}") is a legal entry with a null value.
	if !p.eng.AcceptRune(':') {
		return graph.Pair{Key: key, Value: p.emptyScalarNode(p.eng.MarkHere())}
	}
	p.skipFlowSeparate(n, c)
	var value *graph.Node
	if p.peekChar(',') || p.peekChar('}') {
		value = p.emptyScalarNode(p.eng.MarkHere())
	} else {
		value = p.parseFlowNode(n, c)
	}
	return graph.Pair{Key: key, Value: value}
}

// parseFlowNode implements ns-flow-node(n,c) [161]: an alias, properties
// plus content, or a bare scalar/collection, all within a flow context.
func (p *Parser) parseFlowNode(n int, c yamlh.Context) *graph.Node {
	mark := p.eng.MarkHere()
	if p.peekChar('*') {
		return p.parseAlias()
	}
	hadProps := p.parseProperties(n, c)
	if hadProps {
		p.skipFlowSeparate(n, c)
	}
	if p.peekChar(',') || p.peekChar(']') || p.peekChar('}') || yamlh.Is_breakz(p.eng.Units(), p.eng.Pos()) {
		return p.emptyScalarNode(mark)
	}
	return p.parseNodeContent(n, c, mark)
}

// skipFlowSeparate skips whitespace, comments, and folded line breaks
// inside a flow collection, where indentation requirements relax to "at
// least n" rather than block's exact-column discipline.
func (p *Parser) skipFlowSeparate(n int, c yamlh.Context) {
	p.eng.Repeat(func() bool {
		if p.eng.AcceptBool(func(u []uint16, i int) bool { return yamlh.Is_blank(u, i) }) {
			return true
		}
		if p.peekChar('#') {
			p.skipLineComment()
			return true
		}
		if yamlh.Is_break(p.eng.Units(), p.eng.Pos()) {
			p.consumeBreak()
			return true
		}
		return false
	})
}
