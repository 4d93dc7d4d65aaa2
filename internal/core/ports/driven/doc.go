// Package driven defines the interfaces that the core calls OUT to
// collaborators.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// The mindmap model depends on these interfaces, and adapter packages
// implement them.
//
// # Interfaces
//
//   - HTMLConverter: Converts a rich-text node body to plain text.
//     A default implementation lives in internal/normalisers/htmltext;
//     embedding applications may supply their own.
//   - ConfigStore: Application configuration, backed by a TOML file
//     in internal/adapters/driven/config/file.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
