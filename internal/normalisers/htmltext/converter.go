// Package htmltext converts rich-text node bodies to plain text.
//
// It is the default implementation of the driven.HTMLConverter port.
// The conversion is lossy by design: markup is dropped, block elements
// become line breaks, and entities are resolved. Malformed markup never
// fails; the parser recovers and whatever text exists is returned.
package htmltext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/treeline-labs/freemap-cli/internal/core/ports/driven"
)

// Ensure Converter implements the interface.
var _ driven.HTMLConverter = (*Converter)(nil)

// Converter is a stateless HTML-to-text converter.
type Converter struct{}

// New creates a new converter.
func New() *Converter {
	return &Converter{}
}

var spaceRun = regexp.MustCompile(`[ \t\r\n\x{00a0}]+`)

// Convert returns the plain-text rendition of an HTML fragment.
func (c *Converter) Convert(fragment string) string {
	root, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		// The parser recovers from malformed markup; only reader
		// failures end up here, and a string reader has none.
		return strings.TrimSpace(fragment)
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "head", "script", "style":
				return
			case "br", "hr":
				b.WriteString("\n")
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if n.Type == html.ElementNode && blockElement(n.Data) {
			b.WriteString("\n")
		}
	}
	walk(root)

	return tidy(b.String())
}

func blockElement(tag string) bool {
	switch tag {
	case "p", "div", "li", "tr", "table", "blockquote", "pre",
		"h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// tidy collapses whitespace runs within lines and drops outer blank
// lines, keeping interior paragraph breaks.
func tidy(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}
