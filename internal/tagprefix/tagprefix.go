// Package tagprefix implements the handle -> prefix table of spec.md 4.4:
// default handles installed by SetupDefaults, %TAG directives recorded by
// Add, and shorthand-tag resolution by Resolve.
package tagprefix

import (
	"fmt"
	"strings"

	"github.com/willabides/yamlcore/internal/yamlh"
)

type Table struct {
	prefixes map[string]string
	explicit map[string]bool // handles set by a %TAG directive in the current document
}

func New() *Table {
	t := &Table{}
	t.Reset()
	return t
}

// Reset clears every handle and reinstalls the defaults, the way the
// teacher's yaml_parser_t is re-initialised between documents in
// Parser.processDirectives.
func (t *Table) Reset() {
	t.prefixes = map[string]string{}
	t.explicit = map[string]bool{}
	t.SetupDefaults()
}

// SetupDefaults installs "!" -> "!" and "!!" -> "tag:yaml.org,2002:".
func (t *Table) SetupDefaults() {
	t.prefixes[yamlh.DefaultTagHandle] = yamlh.DefaultTagHandle
	t.prefixes[yamlh.SecondaryTagHandle] = yamlh.SecondaryTagPrefix
}

// Add records a %TAG directive, which may freely override a default
// handle's prefix. A second %TAG directive for the same handle within
// the same document is a fatal error (spec.md 4.5.4, 7).
func (t *Table) Add(handle, prefix string) error {
	if t.explicit[handle] {
		return fmt.Errorf("duplicate TAG directive for handle %q", handle)
	}
	t.explicit[handle] = true
	t.prefixes[handle] = prefix
	return nil
}

// Resolve concatenates the prefix bound to handle with suffix. An unknown
// handle is a fatal error.
func (t *Table) Resolve(handle, suffix string) (string, error) {
	prefix, ok := t.prefixes[handle]
	if !ok {
		return "", fmt.Errorf("undefined tag handle %q", handle)
	}
	return prefix + suffix, nil
}

// ValidHandle reports whether s has the shape "!" or "!word*!" required
// of a %TAG directive's handle; "!!" (zero word characters) is valid.
func ValidHandle(s string) bool {
	if s == "!" {
		return true
	}
	if len(s) < 2 || s[0] != '!' || s[len(s)-1] != '!' {
		return false
	}
	word := s[1 : len(s)-1]
	return strings.IndexFunc(word, func(r rune) bool {
		return !(r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r == '_' || r == '-')
	}) == -1
}
