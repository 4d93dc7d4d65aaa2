// Package mindmap exposes the typed object model over a map document.
//
// A Mindmap owns one fidelity-layer document; Node values are
// lightweight views onto elements of that document, created on demand
// while walking the tree. All mutation goes through accessor methods,
// which edit the underlying elements in place so that content the
// typed layer does not model survives load/save cycles untouched.
//
// The model is single-threaded by contract: no internal locking,
// callers serialize access or load separate instances per file.
package mindmap
