package driven

// HTMLConverter turns the HTML body of a rich-text node into plain
// text. It is a pure function collaborator: no state, no errors, and
// malformed markup degrades to whatever text can be extracted.
type HTMLConverter interface {
	// Convert returns the plain-text rendition of the given HTML
	// fragment. Paragraph boundaries become newlines; non-breaking
	// spaces become ordinary spaces.
	Convert(html string) string
}
