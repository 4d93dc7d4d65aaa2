// Package query evaluates node search predicates.
//
// The mindmap layer walks the tree in pre-order and hands each node's
// field snapshot to a compiled predicate; the package never touches the
// document itself. All requested criteria must match (logical AND).
package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/treeline-labs/freemap-cli/internal/core/domain"
)

// Fields is the snapshot of one node's searchable fields.
type Fields struct {
	ID         string
	Core       string
	Link       string
	Details    string
	Notes      string
	StyleRef   string
	Icons      []string
	Attributes []domain.Attribute
}

// Predicate is a compiled Criteria. Regular expressions are compiled
// once per query, not per node.
type Predicate struct {
	c  domain.Criteria
	re map[string]*regexp.Regexp
}

// Compile validates the criteria and precompiles any regular
// expressions. Invalid patterns surface here, before traversal starts.
func Compile(c domain.Criteria) (*Predicate, error) {
	p := &Predicate{c: c}
	if !c.Regex {
		return p, nil
	}

	p.re = make(map[string]*regexp.Regexp)
	compile := func(key, pattern string) error {
		if pattern == "" {
			return nil
		}
		// Regex criteria fold case, like the editor's search dialog.
		// Patterns can opt back out with an inline (?-i:...) group.
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return fmt.Errorf("criterion %s: %w", key, err)
		}
		p.re[key] = re
		return nil
	}

	if err := compile("core", c.Core); err != nil {
		return nil, err
	}
	if err := compile("link", c.Link); err != nil {
		return nil, err
	}
	if err := compile("details", c.Details); err != nil {
		return nil, err
	}
	if err := compile("notes", c.Notes); err != nil {
		return nil, err
	}
	for name, value := range c.Attributes {
		if err := compile("attribute "+name, value); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Matches reports whether a node's fields satisfy every criterion.
func (p *Predicate) Matches(f Fields) bool {
	c := p.c
	if c.Zero() {
		return true
	}

	// Node ids always compare whole and case-insensitively.
	if c.ID != "" && !strings.EqualFold(c.ID, f.ID) {
		return false
	}
	if c.Core != "" && !p.matchText("core", c.Core, f.Core) {
		return false
	}
	if c.Link != "" && !p.matchText("link", normalizeLink(c.Link), normalizeLink(f.Link)) {
		return false
	}
	if c.Details != "" && !p.matchText("details", c.Details, f.Details) {
		return false
	}
	if c.Notes != "" && !p.matchText("notes", c.Notes, f.Notes) {
		return false
	}
	if c.Icon != "" && !containsString(f.Icons, c.Icon) {
		return false
	}
	if len(c.Styles) > 0 && !containsFold(c.Styles, f.StyleRef) {
		return false
	}
	for name, want := range c.Attributes {
		if !p.matchAttribute(name, want, f.Attributes) {
			return false
		}
	}
	return true
}

// matchAttribute requires at least one attribute of the given name
// whose value satisfies the text criterion.
func (p *Predicate) matchAttribute(name, want string, attrs []domain.Attribute) bool {
	for _, a := range attrs {
		if a.Name != name {
			continue
		}
		if p.matchText("attribute "+name, want, a.Value) {
			return true
		}
	}
	return false
}

func (p *Predicate) matchText(key, criterion, value string) bool {
	if p.c.Regex {
		re := p.re[key]
		if re == nil {
			return true
		}
		return re.MatchString(value)
	}
	if p.c.Exact {
		if p.c.CaseInsensitive {
			return strings.EqualFold(criterion, value)
		}
		return criterion == value
	}
	if p.c.CaseInsensitive {
		return strings.Contains(strings.ToLower(value), strings.ToLower(criterion))
	}
	return strings.Contains(value, criterion)
}

// normalizeLink levels the differences the editor introduces into
// stored links: backslash separators and fixed-space escapes.
func normalizeLink(link string) string {
	link = strings.ReplaceAll(link, "\\", "/")
	return strings.ReplaceAll(link, "%20", " ")
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
