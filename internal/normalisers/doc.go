// Package normalisers groups the text-extraction implementations used
// by the node layer. Each sub-package turns one input format into
// plain text; htmltext handles the rich-text HTML bodies that maps
// embed in their nodes.
package normalisers
