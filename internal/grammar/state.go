package grammar

import "github.com/willabides/yamlcore/internal/graph"

// state is the parser-specific state block of spec.md 3.2: a single
// plain-data value snapshotted by copy at every rewind point, kept
// deliberately small per design note 9.
type state struct {
	tag         *string // pending tag; nil = none set, non-nil "" = non-specific "!"
	anchor      *string // pending anchor name, or nil
	value       *graph.Node
	anchorDepth int
}

// snapshot captures state by value; restoring is just assignment, the
// "scoped snapshot" design note 9 recommends for anything that can be
// copied in O(1).
func (p *Parser) snapshotState() state {
	return p.state
}

func (p *Parser) restoreState(s state) {
	p.state = s
}

// withStateRewind runs rule; on failure it restores both the engine
// cursor/scratch snapshot and the parser state snapshot, and rewinds the
// anchor table to the depth recorded before rule ran.
func (p *Parser) withStateRewind(rule func() bool) bool {
	savedState := p.snapshotState()
	savedDepth := p.anchors.Depth()
	ok := p.eng.WithRewind(rule, func() {
		p.restoreState(savedState)
		p.anchors.Rewind(savedDepth)
	})
	return ok
}

func (p *Parser) setPendingTag(tag string) {
	t := tag
	p.state.tag = &t
}

func (p *Parser) setPendingAnchor(name string) {
	p.state.anchor = &name
}

func (p *Parser) clearPendingProperties() {
	p.state.tag = nil
	p.state.anchor = nil
}
