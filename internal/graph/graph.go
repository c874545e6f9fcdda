// Package graph defines the representation graph spec.md 3.1 describes:
// immutable-by-convention scalar/sequence/mapping nodes, built exclusively
// by the grammar's CreateScalar/BeginSequence/BeginMapping hooks and
// capable of holding cycles through alias edges.
package graph

import "github.com/willabides/yamlcore/internal/yamlh"

type Kind int

const (
	ScalarNode Kind = iota
	SequenceNode
	MappingNode
)

func (k Kind) String() string {
	switch k {
	case ScalarNode:
		return "scalar"
	case SequenceNode:
		return "sequence"
	case MappingNode:
		return "mapping"
	}
	return "unknown"
}

// Pair is one (key, value) entry of a Mapping, in document order.
type Pair struct {
	Key   *Node
	Value *Node
}

// Node is a scalar, sequence, or mapping in the representation graph.
// Every node carries a non-empty resolved Tag (spec.md 3.1 invariant).
// Aliases are not a distinct node kind: an alias site simply reuses the
// *Node pointer of the node its anchor named, so the graph is a DAG that
// may be cyclic (spec.md 3.1, 8.1, 8.2).
type Node struct {
	Kind  Kind
	Tag   string
	Mark  yamlh.Mark

	// Value holds the scalar's decoded text when Kind == ScalarNode.
	Value string

	// Items holds ordered children when Kind == SequenceNode.
	Items []*Node

	// Pairs holds ordered entries when Kind == MappingNode.
	Pairs []Pair

	// Anchor is the name last bound to this node by "&name", or "" if
	// the node was never anchored. Kept for round-trip/debugging; alias
	// resolution itself goes through the anchor table, not this field.
	Anchor string
}

// Walk visits n and every node reachable from it exactly once, even when
// the graph is cyclic through aliases. visit returning false prunes that
// subtree (its children are not visited, but sibling/other-branch
// traversal continues).
func (n *Node) Walk(visit func(*Node) bool) {
	seen := map[*Node]bool{}
	var rec func(*Node)
	rec = func(cur *Node) {
		if cur == nil || seen[cur] {
			return
		}
		seen[cur] = true
		if !visit(cur) {
			return
		}
		switch cur.Kind {
		case SequenceNode:
			for _, item := range cur.Items {
				rec(item)
			}
		case MappingNode:
			for _, pair := range cur.Pairs {
				rec(pair.Key)
				rec(pair.Value)
			}
		}
	}
	rec(n)
}

// Equal reports deep value equality between a and b, treating identical
// pointers (shared alias targets) as equal without recursing again, which
// is what makes this safe on a cyclic graph.
func Equal(a, b *Node) bool {
	return equalRec(a, b, map[[2]*Node]bool{})
}

func equalRec(a, b *Node, seen map[[2]*Node]bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	key := [2]*Node{a, b}
	if seen[key] {
		return true
	}
	seen[key] = true
	if a.Kind != b.Kind || a.Tag != b.Tag {
		return false
	}
	switch a.Kind {
	case ScalarNode:
		return a.Value == b.Value
	case SequenceNode:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !equalRec(a.Items[i], b.Items[i], seen) {
				return false
			}
		}
		return true
	case MappingNode:
		if len(a.Pairs) != len(b.Pairs) {
			return false
		}
		for i := range a.Pairs {
			if !equalRec(a.Pairs[i].Key, b.Pairs[i].Key, seen) ||
				!equalRec(a.Pairs[i].Value, b.Pairs[i].Value, seen) {
				return false
			}
		}
		return true
	}
	return false
}
