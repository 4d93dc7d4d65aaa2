package domain

// Criteria is a node search predicate. Every non-zero field must match
// for a node to be included in a result set (logical AND).
//
// Text fields (ID, Core, Link, Details, Notes and attribute values)
// honour the matching mode flags. Icon matches by set membership and
// Styles by name equality, independent of the mode flags except for
// case folding where noted.
type Criteria struct {
	// ID matches the node id. Ids compare case-insensitively.
	ID string

	// Core matches the node's plain core text.
	Core string

	// Link matches the node hyperlink. Backslashes and "%20" escapes are
	// normalized on both sides before comparison.
	Link string

	// Details matches the node's details text.
	Details string

	// Notes matches the node's notes text.
	Notes string

	// Icon requires the node to carry the named builtin icon.
	Icon string

	// Styles requires the node's style reference to equal one of the
	// given names (case-insensitive).
	Styles []string

	// Attributes maps attribute names to required values. Each entry must
	// be satisfied by at least one of the node's attributes of that name,
	// with the value compared in the selected text mode.
	Attributes map[string]string

	// Exact switches text fields from substring containment to full
	// equality.
	Exact bool

	// Regex compiles text criteria as regular expressions instead.
	// Regular expressions always fold case; patterns opt out with an
	// inline (?-i:...) group. Exact and CaseInsensitive are ignored
	// when Regex is set.
	Regex bool

	// CaseInsensitive folds case in the substring and Exact modes,
	// which are case-sensitive by default.
	CaseInsensitive bool
}

// Zero reports whether no criterion is set. A zero Criteria matches
// every node.
func (c Criteria) Zero() bool {
	return c.ID == "" && c.Core == "" && c.Link == "" &&
		c.Details == "" && c.Notes == "" && c.Icon == "" &&
		len(c.Styles) == 0 && len(c.Attributes) == 0
}
