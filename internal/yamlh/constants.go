//
// Copyright (c) 2011-2019 Canonical Ltd
// Copyright (c) 2006-2010 Kirill Simonov
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package yamlh holds the low-level types shared by the engine and the
// grammar: the character classifier, source positions, and the context
// and chomping enumerations the grammar productions are parameterised on.
package yamlh

// Context is the `c` parameter threaded through every block/flow grammar
// production (YAML 1.2 spec section 9/10).
type Context int

const (
	BlockOut Context = iota
	BlockIn
	FlowOut
	FlowIn
	BlockKey
	FlowKey
)

func (c Context) String() string {
	switch c {
	case BlockOut:
		return "block-out"
	case BlockIn:
		return "block-in"
	case FlowOut:
		return "flow-out"
	case FlowIn:
		return "flow-in"
	case BlockKey:
		return "block-key"
	case FlowKey:
		return "flow-key"
	}
	return "unknown-context"
}

// Chomping is the trailing-line-break policy of a block scalar (`t`).
type Chomping int

const (
	ChompClip Chomping = iota
	ChompStrip
	ChompKeep
)

// Default core-schema structural tags (spec.md 3.1).
const (
	StrTag = "tag:yaml.org,2002:str"
	SeqTag = "tag:yaml.org,2002:seq"
	MapTag = "tag:yaml.org,2002:map"

	// NonSpecificTag is the pending-tag sentinel for a bare "!" property:
	// it disables auto-detection and forces the structural default.
	NonSpecificTag = ""
)

// DefaultTagHandle and SecondaryTagHandle are installed by
// tagprefix.Table.SetupDefaults.
const (
	DefaultTagHandle   = "!"
	SecondaryTagHandle = "!!"
	SecondaryTagPrefix = "tag:yaml.org,2002:"
)
