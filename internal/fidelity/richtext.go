package fidelity

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

// Rich-content TYPE markers used by the editor.
const (
	RichTypeNode    = "NODE"
	RichTypeNote    = "NOTE"
	RichTypeDetails = "DETAILS"
)

var spaceRun = regexp.MustCompile(`[ \t\r\n\x{00a0}]+`)

// RichContent builds a richcontent element of the given TYPE with the
// html>head+body skeleton the editor writes, one paragraph per input
// line.
func RichContent(rcType, text string) *etree.Element {
	rc := etree.NewElement("richcontent")
	rc.CreateAttr("TYPE", rcType)
	html := rc.CreateElement("html")
	html.CreateElement("head")
	body := html.CreateElement("body")
	for _, line := range strings.Split(text, "\n") {
		body.CreateElement("p").SetText(line)
	}
	return rc
}

// RichText extracts the plain text of a rich-content subtree without an
// HTML converter: character data is concatenated with whitespace runs
// collapsed, paragraph and line-break elements become newlines, and
// outer blank lines are dropped.
func RichText(el *etree.Element) string {
	var b strings.Builder
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				b.WriteString(spaceRun.ReplaceAllString(t.Data, " "))
			case *etree.Element:
				walk(t)
				if t.Tag == "p" || t.Tag == "br" {
					b.WriteString("\n")
				}
			}
		}
	}
	walk(el)

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

// ElementString serializes a single element subtree, for handing rich
// node bodies to an HTML converter.
func ElementString(el *etree.Element) string {
	doc := etree.NewDocument()
	doc.AddChild(el.Copy())
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}
