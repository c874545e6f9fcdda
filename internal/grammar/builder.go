package grammar

import (
	"github.com/willabides/yamlcore/internal/graph"
	"github.com/willabides/yamlcore/internal/yamlh"
)

// resolveTag implements create_scalar's tag-hint cascade (spec.md 4.5.6)
// generalised to all three node shapes: explicit tag property wins;
// otherwise a style hint (e.g. "!!str" for quoted/block scalars, or the
// structural default for collections); otherwise, for plain scalars
// only, the injected resolver; otherwise the shape's structural default.
func (p *Parser) resolveTag(styleHint string, structuralDefault string, tryResolver bool, value string) string {
	if p.state.tag != nil {
		if *p.state.tag == yamlh.NonSpecificTag {
			return structuralDefault
		}
		return *p.state.tag
	}
	if styleHint != "" {
		return styleHint
	}
	if tryResolver {
		if tag, ok := p.resolver.Resolve(value); ok {
			return tag
		}
	}
	return structuralDefault
}

// attachAnchor binds any pending anchor to node and clears the pending
// tag/anchor slots, the way spec.md 4.5.6 step 4 describes.
func (p *Parser) attachAnchor(node *graph.Node) {
	if p.state.anchor != nil {
		node.Anchor = *p.state.anchor
		p.anchors.Add(*p.state.anchor, node)
	}
	p.clearPendingProperties()
	p.state.value = node
}

// CreateScalar materialises a scalar node at mark, applying the tag
// cascade of spec.md 4.5.6. styleHint is "tag:yaml.org,2002:str" for
// quoted/block styles, "" for plain (enabling resolver auto-detect).
func (p *Parser) CreateScalar(value string, styleHint string, mark yamlh.Mark) *graph.Node {
	tryResolver := styleHint == ""
	tag := p.resolveTag(styleHint, yamlh.StrTag, tryResolver, value)
	node := &graph.Node{Kind: graph.ScalarNode, Tag: tag, Value: value, Mark: mark}
	p.attachAnchor(node)
	return node
}

// BeginSequence materialises an empty sequence node, consuming any
// pending tag and anchor BEFORE the items parse: an anchor on the
// collection must be visible to aliases inside it ("&a [*a]" produces a
// cycle, spec.md 8.2), and a pending tag belongs to the collection, not
// to its first child. The caller appends items as its entries commit
// (spec.md 3.4).
func (p *Parser) BeginSequence(mark yamlh.Mark) *graph.Node {
	tag := p.resolveTag("", yamlh.SeqTag, false, "")
	node := &graph.Node{Kind: graph.SequenceNode, Tag: tag, Mark: mark}
	p.attachAnchor(node)
	return node
}

// BeginMapping is BeginSequence for mappings.
func (p *Parser) BeginMapping(mark yamlh.Mark) *graph.Node {
	tag := p.resolveTag("", yamlh.MapTag, false, "")
	node := &graph.Node{Kind: graph.MappingNode, Tag: tag, Mark: mark}
	p.attachAnchor(node)
	return node
}

// emptyScalarNode builds the implicit "null" scalar used whenever a
// production site has no content (an empty block mapping value, a lone
// "---", a property with nothing following it — spec.md 4.5.5's eNode).
func (p *Parser) emptyScalarNode(mark yamlh.Mark) *graph.Node {
	return p.CreateScalar("", "", mark)
}

// resolveAlias looks up name in the anchor table. A missing anchor is a
// fatal error (spec.md 4.3, 7).
func (p *Parser) resolveAlias(name string, mark yamlh.Mark) *graph.Node {
	node, ok := p.anchors.Lookup(name)
	if !ok {
		p.eng.FailAt("unknown anchor reference \""+name+"\"", mark)
	}
	return node
}
