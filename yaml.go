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

// Package yamlcore parses YAML 1.2 (3rd Edition) text into a
// representation graph (spec.md 3.1), without decoding it onto Go
// values. It is a grammar engine and graph builder, not a marshaler.
package yamlcore

import (
	"github.com/willabides/yamlcore/internal/grammar"
	"github.com/willabides/yamlcore/internal/resolve"
)

// Resolver assigns a core-schema tag to an untagged plain scalar's
// textual value (spec.md 4.5.6's "injected resolver" step). The zero
// Config uses the built-in core schema resolver (null/bool/int/float/
// timestamp, in that order).
type Resolver = resolve.Resolver

// Rule is one Resolver rule: Tag is assigned when Match reports true.
type Rule = resolve.Rule

// RuleResolver is a Resolver built from an ordered Rule list; the first
// matching rule wins.
type RuleResolver = resolve.RuleResolver

// DefaultResolver is the core schema resolver spec.md 4.5.6 describes.
var DefaultResolver Resolver = resolve.Default

// Config controls one Parse/ParseStream call (spec.md 6.2).
type Config struct {
	// NormalizeLineBreaks, on by default, rewrites every unescaped line
	// break decoded into a scalar to LineBreakForInput. When off, each
	// scalar keeps the exact break characters the input carried.
	NormalizeLineBreaks bool

	// LineBreakForInput is the replacement line break used when
	// NormalizeLineBreaks is true. One of "\n", "\r", or "\r\n".
	// Defaults to "\n".
	LineBreakForInput string

	// TagResolver overrides the core schema resolver. Defaults to
	// DefaultResolver.
	TagResolver Resolver
}

// Option configures a Config; see WithResolver and WithNormalizedLineBreaks.
type Option func(*Config)

// WithResolver overrides the tag resolver used for untagged plain
// scalars.
func WithResolver(r Resolver) Option {
	return func(cfg *Config) { cfg.TagResolver = r }
}

// WithNormalizedLineBreaks selects the line break every unescaped input
// break decodes to. Must be "\n", "\r", or "\r\n".
func WithNormalizedLineBreaks(lb string) Option {
	return func(cfg *Config) {
		cfg.NormalizeLineBreaks = true
		cfg.LineBreakForInput = lb
	}
}

// WithoutLineBreakNormalization preserves the input's own break
// characters in decoded scalar content instead of rewriting them.
func WithoutLineBreakNormalization() Option {
	return func(cfg *Config) { cfg.NormalizeLineBreaks = false }
}

func buildConfig(opts []Option) Config {
	cfg := Config{
		NormalizeLineBreaks: true,
		LineBreakForInput:   "\n",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	switch cfg.LineBreakForInput {
	case "\n", "\r", "\r\n":
	default:
		cfg.LineBreakForInput = "\n"
	}
	return cfg
}

func toGrammarConfig(cfg Config) grammar.Config {
	return grammar.Config{
		NormalizeLineBreaks: cfg.NormalizeLineBreaks,
		LineBreakForInput:   cfg.LineBreakForInput,
		TagResolver:         cfg.TagResolver,
	}
}

// Parse parses text as a single YAML document and returns its
// representation graph root, or nil if the stream has no documents
// (spec.md 6.1). It fails if the stream contains more than one
// document; use ParseStream for multi-document input.
func Parse(text string, opts ...Option) (*Node, []string, error) {
	docs, warnings, err := ParseStream(text, opts...)
	if err != nil {
		return nil, warnings, err
	}
	if len(docs) == 0 {
		return nil, warnings, nil
	}
	if len(docs) > 1 {
		return nil, warnings, &ParseError{Problem: "expected a single document, found more than one"}
	}
	return docs[0], warnings, nil
}

// ParseStream parses every document in text in order, returning each
// document's representation graph root alongside the warnings
// accumulated across the whole stream (spec.md 6.1, 7).
func ParseStream(text string, opts ...Option) ([]*Node, []string, error) {
	cfg := buildConfig(opts)
	p := grammar.New(text, toGrammarConfig(cfg))
	return p.ParseStream()
}
