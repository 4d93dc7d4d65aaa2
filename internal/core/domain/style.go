package domain

import "strings"

// Style is a named bundle of visual properties registered on a map.
// Nodes reference styles by name; the properties are never copied into
// the node itself.
type Style struct {
	// Name is the registry key, unique per map (case-insensitive).
	Name string

	// Color is the foreground colour, e.g. "#999999".
	Color string

	// BackgroundColor is the fill colour behind the node core.
	BackgroundColor string

	// FontName is the font family name.
	FontName string

	// FontSize is the font size as Freeplane stores it, e.g. "12".
	FontSize string
}

// Equal reports whether two styles carry identical properties.
// Names compare case-insensitively, matching how the map registry
// resolves style references.
func (s Style) Equal(o Style) bool {
	return strings.EqualFold(s.Name, o.Name) &&
		s.Color == o.Color &&
		s.BackgroundColor == o.BackgroundColor &&
		s.FontName == o.FontName &&
		s.FontSize == o.FontSize
}
