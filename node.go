package yamlcore

import "github.com/willabides/yamlcore/internal/graph"

// Kind identifies what a Node represents in the representation graph
// (spec.md 3.1).
type Kind = graph.Kind

const (
	ScalarNode   = graph.ScalarNode
	SequenceNode = graph.SequenceNode
	MappingNode  = graph.MappingNode
)

// Pair is one (key, value) entry of a Mapping, in document order.
type Pair = graph.Pair

// Node is a scalar, sequence, or mapping node of a parsed document's
// representation graph. An alias site shares the *Node pointer of the
// anchor it names, so Walk and Equal must be cycle-safe; both are.
type Node = graph.Node
