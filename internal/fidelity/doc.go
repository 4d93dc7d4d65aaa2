// Package fidelity is the XML layer of the freemap library.
//
// It parses a mindmap file into an editable element tree and serializes
// it back, preserving every element and attribute the typed layers do
// not understand: the tree keeps attribute order and unknown children
// in place, and the typed layers edit named positions without ever
// rebuilding surrounding content.
//
// The package also owns character-encoding detection. Freeplane files
// before 1.8 were written in the Windows native code page; the detected
// encoding is reproduced on save. A small set of documented repairs
// (HTML entities that are invalid XML, non-breaking spaces in legacy
// output) is applied symmetrically so load/save cycles are stable.
package fidelity
