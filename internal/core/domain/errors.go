package domain

import "errors"

// Domain errors represent failures of the document model itself.
// These are distinct from infrastructure (I/O) errors, which are
// wrapped and passed through unclassified.
var (
	// ErrMalformedXML indicates the input is not well-formed XML.
	ErrMalformedXML = errors.New("malformed XML")

	// ErrNotMindmap indicates well-formed XML whose root element is not a
	// recognizable mindmap root.
	ErrNotMindmap = errors.New("not a mindmap document")

	// ErrUnsupportedVersion indicates the document claims a format
	// generation that cannot be mapped, not even opaquely.
	ErrUnsupportedVersion = errors.New("unsupported map format version")

	// ErrNodeNotFound indicates a node id did not resolve.
	ErrNodeNotFound = errors.New("node not found")

	// ErrChildIndex indicates a child index is out of range.
	ErrChildIndex = errors.New("child index out of range")

	// ErrStyleNotFound indicates a style name is not registered on the map.
	ErrStyleNotFound = errors.New("style not found")

	// ErrStyleExists indicates a style name is already registered with
	// different properties. Re-adding an identical style is a no-op and
	// does not produce this error.
	ErrStyleExists = errors.New("style already exists with different properties")

	// ErrNoPath indicates a save was requested on a map that has neither
	// a load path nor an explicit target path.
	ErrNoPath = errors.New("no file path for save")

	// ErrCycle indicates an attach would make a node its own ancestor.
	ErrCycle = errors.New("node cannot be attached below itself")

	// ErrDetached indicates an operation that needs a map-attached node
	// was called on a detached one.
	ErrDetached = errors.New("node is not attached to a map")

	// ErrAlreadyAttached indicates an attach target that still hangs in
	// a tree. Detach it first.
	ErrAlreadyAttached = errors.New("node is already attached")

	// ErrInvalidID indicates a node id does not follow the required
	// "ID_<digits>" format.
	ErrInvalidID = errors.New("invalid node id format")
)
