package grammar

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/willabides/yamlcore/internal/yamlh"
)

// parseProperties implements c-ns-properties(n,c) (spec.md 4.5.5): an
// optional tag and an optional anchor, in either order, separated by
// s-separate. Both are staged into p.state and consumed by the next
// node the grammar creates; if nothing follows, create_scalar still
// attaches them to the implicit empty scalar (builder.go's eNode).
func (p *Parser) parseProperties(n int, c yamlh.Context) bool {
	sawTag, sawAnchor := false, false

	if p.peekChar('!') {
		p.parseTagProperty()
		sawTag = true
		if p.skipSeparate(n, c) && p.peekChar('&') {
			p.parseAnchorProperty()
			sawAnchor = true
		}
	} else if p.peekChar('&') {
		p.parseAnchorProperty()
		sawAnchor = true
		if p.skipSeparate(n, c) && p.peekChar('!') {
			p.parseTagProperty()
			sawTag = true
		}
	}
	return sawTag || sawAnchor
}

func (p *Parser) parseAnchorProperty() {
	p.eng.AcceptRune('&')
	var name string
	p.eng.Save(func() bool {
		return p.eng.Repeat(func() bool {
			return p.eng.Accept(yamlh.NsAnchorChar)
		})
	}, &name)
	if name == "" {
		p.eng.Fail("malformed anchor, expected a name after '&'")
	}
	p.setPendingAnchor(name)
}

// parseTagProperty handles the three tag shapes spec.md 4.5.5 lists:
// verbatim "!<IRI>", shorthand "!h!suffix", and non-specific/primary "!".
func (p *Parser) parseTagProperty() {
	mark := p.eng.MarkHere()
	p.eng.AcceptRune('!')

	if p.eng.AcceptRune('<') {
		start := p.eng.Pos()
		for ok, w := yamlh.NsURIChar(p.eng.Units(), p.eng.Pos()); ok; ok, w = yamlh.NsURIChar(p.eng.Units(), p.eng.Pos()) {
			p.eng.Advance(w)
		}
		verbatim := p.eng.Substring(start, p.eng.Pos())
		if !p.eng.AcceptRune('>') {
			p.eng.Fail("malformed verbatim tag, expected '>'")
		}
		if verbatim == "" {
			p.eng.FailAt("the bare '!<>' verbatim tag is illegal", mark)
		}
		p.checkGlobalTag(verbatim)
		p.setPendingTag(verbatim)
		return
	}

	// Shorthand: zero or more word characters then '!' => "!h!" handle,
	// followed by a tag-char suffix. A bare "!" with nothing else is the
	// non-specific tag.
	handleEnd := p.eng.Pos()
	for yamlh.Is_alpha(p.eng.Units(), handleEnd) {
		handleEnd++
	}
	hasSecondBang := handleEnd < p.eng.Len() && p.eng.Units()[handleEnd] == '!'

	if hasSecondBang {
		handle := "!" + p.eng.Substring(p.eng.Pos(), handleEnd) + "!"
		p.eng.SetPos(handleEnd + 1)
		start := p.eng.Pos()
		for ok, w := yamlh.NsTagChar(p.eng.Units(), p.eng.Pos()); ok; ok, w = yamlh.NsTagChar(p.eng.Units(), p.eng.Pos()) {
			p.eng.Advance(w)
		}
		suffix := p.eng.Substring(start, p.eng.Pos())
		resolved, err := p.tags.Resolve(handle, suffix)
		if err != nil {
			p.eng.FailAt(err.Error(), mark)
		}
		p.checkGlobalTag(resolved)
		p.setPendingTag(resolved)
		return
	}

	start := p.eng.Pos()
	for ok, w := yamlh.NsTagChar(p.eng.Units(), p.eng.Pos()); ok; ok, w = yamlh.NsTagChar(p.eng.Units(), p.eng.Pos()) {
		p.eng.Advance(w)
	}
	suffix := p.eng.Substring(start, p.eng.Pos())
	if suffix == "" {
		p.setPendingTag(yamlh.NonSpecificTag)
		return
	}
	resolved, err := p.tags.Resolve(yamlh.DefaultTagHandle, suffix)
	if err != nil {
		p.eng.FailAt(err.Error(), mark)
	}
	p.checkGlobalTag(resolved)
	p.setPendingTag(resolved)
}

// tagURIPattern is the "tag:" scheme shape RFC 4151 requires: a tagging
// entity (authority name, comma, date) then a specific part.
var tagURIPattern = regexp.MustCompile(`^tag:[0-9A-Za-z@._-]+,\d{4}(-\d{2}(-\d{2})?)?:`)

// checkGlobalTag warns when a resolved global tag uses the "tag:" scheme
// but does not have the taggingEntity shape RFC 4151 requires. Tags in
// other schemes (or local "!"-prefixed tags) pass through unchecked.
func (p *Parser) checkGlobalTag(tag string) {
	if !strings.HasPrefix(tag, "tag:") {
		return
	}
	if !tagURIPattern.MatchString(tag) {
		p.eng.Warn(fmt.Sprintf("global tag %q is not a valid RFC 4151 tag URI", tag))
	}
}
