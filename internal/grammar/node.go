package grammar

import (
	"github.com/willabides/yamlcore/internal/graph"
	"github.com/willabides/yamlcore/internal/yamlh"
)

// parseBlockNode implements s-l+block-node(n,c) (spec.md 4.5.3): an
// optional alias, else optional properties followed by either a flow
// collection, a block collection, or a scalar. c is one of BlockIn /
// BlockOut; n is the indentation any nested block collection must honor.
func (p *Parser) parseBlockNode(n int, c yamlh.Context) *graph.Node {
	mark := p.eng.MarkHere()

	if p.peekChar('*') {
		return p.parseAlias()
	}

	hadProps := p.parseProperties(n, c)
	if hadProps {
		p.skipInlineBlanksAndComment()
	}

	if yamlh.Is_breakz(p.eng.Units(), p.eng.Pos()) {
		if hadProps {
			if node := p.tryParseIndentedBlockCollection(n, c); node != nil {
				return node
			}
		}
		return p.emptyScalarNode(mark)
	}

	return p.parseNodeContent(n, c, mark)
}

// parseNodeContent dispatches on the character at the cursor to one of
// the flow collections, a block collection, or a scalar. Called both
// for a fresh node and, after properties, for the content that follows
// them on the same line.
func (p *Parser) parseNodeContent(n int, c yamlh.Context, mark yamlh.Mark) *graph.Node {
	if (c == yamlh.BlockIn || c == yamlh.BlockOut) && p.looksLikeMappingKey(n, c) {
		return p.parseBlockMapping(n)
	}

	switch {
	case p.peekChar('['):
		return p.parseFlowSequence(n, flowContextFor(c))
	case p.peekChar('{'):
		return p.parseFlowMapping(n, flowContextFor(c))
	case p.peekChar('\''):
		return p.parseSingleQuoted(mark)
	case p.peekChar('"'):
		return p.parseDoubleQuoted(mark)
	case (p.peekChar('|') || p.peekChar('>')) && (c == yamlh.BlockIn || c == yamlh.BlockOut):
		return p.parseBlockScalar(n, mark)
	case p.peekChar('-') && p.blankAfterOffset(1) && (c == yamlh.BlockIn || c == yamlh.BlockOut):
		return p.parseBlockSequence(n)
	}

	return p.parsePlainScalar(n, c, mark)
}

func flowContextFor(c yamlh.Context) yamlh.Context {
	if c == yamlh.BlockKey || c == yamlh.FlowKey {
		return yamlh.FlowKey
	}
	return yamlh.FlowIn
}

// blankAfterOffset reports whether the code unit at the given offset
// from the cursor is blank or breaks the line (used to distinguish a
// block-sequence "-" indicator from the start of a plain scalar that
// happens to begin with '-', such as "-1").
func (p *Parser) blankAfterOffset(offset int) bool {
	i := p.eng.Pos() + offset
	u := p.eng.Units()
	return yamlh.Is_blankz(u, i)
}

// parseAlias implements c-ns-alias-node [104]: "*" ns-anchor-name.
func (p *Parser) parseAlias() *graph.Node {
	mark := p.eng.MarkHere()
	p.eng.AcceptRune('*')
	var name string
	p.eng.Save(func() bool {
		return p.eng.Repeat(func() bool {
			return p.eng.Accept(yamlh.NsAnchorChar)
		})
	}, &name)
	if name == "" {
		p.eng.Fail("malformed alias, expected a name after '*'")
	}
	return p.resolveAlias(name, mark)
}

// tryParseIndentedBlockCollection is used when a node's content did not
// start on the current line (after properties, a "-" indicator, or a
// mapping ":"): the collection, if any, sits on a following line. In
// block-out context a sequence may sit at the parent's own column (the
// n-1 dispensation of s-l+block-node); mappings and block scalars always
// need strictly more indentation than n.
func (p *Parser) tryParseIndentedBlockCollection(n int, c yamlh.Context) *graph.Node {
	seqMin := n + 1
	if c == yamlh.BlockOut {
		seqMin = n
	}
	var result *graph.Node
	ok := p.withStateRewind(func() bool {
		if !p.skipSeparateLines(seqMin) {
			return false
		}
		if yamlh.Is_z(p.eng.Units(), p.eng.Pos()) {
			return false
		}
		if p.atDocumentMarker() {
			return false
		}
		mark := p.eng.MarkHere()
		col := p.currentColumn()
		switch {
		case p.peekChar('-') && p.blankAfterOffset(1) && col >= seqMin:
			result = p.parseBlockSequence(col)
		case col >= n+1 && p.looksLikeMappingKey(col, c):
			result = p.parseBlockMapping(col)
		case col >= n+1 && (p.peekChar('|') || p.peekChar('>')):
			result = p.parseBlockScalar(n+1, mark)
		default:
			return false
		}
		return true
	})
	if !ok {
		return nil
	}
	return result
}
