// Package domain defines the core entities of the freemap library.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Style: A named bundle of visual properties registered on a map
//   - Attribute: One NAME/VALUE pair attached to a node
//   - Criteria: A node search predicate for the query engine
//   - Generation: A recognized on-disk schema revision of the map format
//   - Encoding: The character encoding a map file was read with
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
