package domain

// Attribute is one NAME/VALUE pair attached to a node.
//
// Freeplane allows several attributes with the same name on one node.
// The library preserves all entries in document order; lookup by name
// returns the last entry (last write wins) while targeted updates hit
// the first match.
type Attribute struct {
	// Name is the attribute key as shown in the editor.
	Name string

	// Value is the attribute value.
	Value string
}
