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

// Package resolve supplies the core's injected tag resolver (spec.md 4.6):
// Resolve(value string) -> (tag string, ok bool), called only for plain
// scalars that got no explicit tag property. It is adapted from the
// teacher's internal/resolve package, which resolved a scalar to both a
// tag AND a decoded Go value for the struct unmarshaler; that decode half
// belongs to the serializer spec.md places out of scope, so this rewrite
// keeps only the tag side, expressed as spec.md design note 9's
// "list of (tag, pattern) tuples" rather than the teacher's switch-driven
// resolveTable/resolveMap pair.
package resolve

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	NullTag      = "tag:yaml.org,2002:null"
	BoolTag      = "tag:yaml.org,2002:bool"
	StrTag       = "tag:yaml.org,2002:str"
	IntTag       = "tag:yaml.org,2002:int"
	FloatTag     = "tag:yaml.org,2002:float"
	TimestampTag = "tag:yaml.org,2002:timestamp"
	MergeTag     = "tag:yaml.org,2002:merge"
)

// Rule is one entry of the resolver's rule list: Match reports whether in
// belongs to Tag. Rules are tried in order; the first match wins, the
// way spec.md design note 9 describes the resolver as data, not code
// hard-coded into the grammar.
type Rule struct {
	Tag   string
	Match func(in string) bool
}

// Resolver is the interface the core's grammar calls for every plain
// scalar that received no explicit tag (spec.md 4.6).
type Resolver interface {
	Resolve(value string) (tag string, ok bool)
}

// RuleResolver is a Resolver built from an ordered Rule list.
type RuleResolver struct {
	Rules []Rule
}

func (r RuleResolver) Resolve(value string) (string, bool) {
	for _, rule := range r.Rules {
		if rule.Match(value) {
			return rule.Tag, true
		}
	}
	return "", false
}

var boolValues = map[string]bool{
	"true": true, "True": true, "TRUE": true,
	"false": true, "False": true, "FALSE": true,
}

var nullValues = map[string]bool{
	"": true, "~": true, "null": true, "Null": true, "NULL": true,
}

var yamlStyleFloat = regexp.MustCompile(`^[-+]?(\.\d+|\d+(\.\d*)?)([eE][-+]?\d+)?$`)
var specialFloat = regexp.MustCompile(`^[-+]?\.(inf|Inf|INF)$|^\.(nan|NaN|NAN)$`)

// allowedTimestampFormats mirrors the teacher's subset of the formats
// allowed by http://yaml.org/type/timestamp.html.
var allowedTimestampFormats = []string{
	"2006-1-2T15:4:5.999999999Z07:00",
	"2006-1-2t15:4:5.999999999Z07:00",
	"2006-1-2 15:4:5.999999999",
	"2006-1-2",
}

func isTimestamp(s string) bool {
	i := 0
	for ; i < len(s); i++ {
		if c := s[i]; c < '0' || c > '9' {
			break
		}
	}
	if i != 4 || i == len(s) || s[i] != '-' {
		return false
	}
	for _, format := range allowedTimestampFormats {
		if _, err := time.Parse(format, s); err == nil {
			return true
		}
	}
	return false
}

func isInt(s string) bool {
	plain := strings.ReplaceAll(s, "_", "")
	if plain == "" {
		return false
	}
	if _, err := strconv.ParseInt(plain, 0, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseUint(plain, 0, 64); err == nil {
		return true
	}
	for _, prefix := range []string{"0b", "-0b"} {
		if strings.HasPrefix(plain, prefix) {
			rest := plain[len(prefix):]
			if _, err := strconv.ParseInt(rest, 2, 64); err == nil {
				return true
			}
		}
	}
	for _, prefix := range []string{"0o", "-0o"} {
		if strings.HasPrefix(plain, prefix) {
			rest := plain[len(prefix):]
			if _, err := strconv.ParseInt(rest, 8, 64); err == nil {
				return true
			}
		}
	}
	return false
}

func isFloat(s string) bool {
	if specialFloat.MatchString(s) {
		return true
	}
	plain := strings.ReplaceAll(s, "_", "")
	return yamlStyleFloat.MatchString(plain) && strings.ContainsAny(plain, ".eE")
}

// DefaultRules is the YAML core schema resolver (spec.md 4.6): null,
// bool, int (decimal/octal/hex/binary), float, timestamp, in that order,
// str otherwise. Ported rule-for-rule from the teacher's resolveTable /
// resolveMap dispatch in internal/resolve/resolve.go.
var DefaultRules = []Rule{
	{Tag: NullTag, Match: func(in string) bool { return nullValues[in] }},
	{Tag: BoolTag, Match: func(in string) bool { return boolValues[in] }},
	{Tag: IntTag, Match: isInt},
	{Tag: FloatTag, Match: isFloat},
	{Tag: TimestampTag, Match: isTimestamp},
}

// Default is the core schema resolver used when no yamlcore.Config.TagResolver
// is supplied.
var Default Resolver = RuleResolver{Rules: DefaultRules}
