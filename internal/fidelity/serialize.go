package fidelity

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/treeline-labs/freemap-cli/internal/core/domain"
)

// indentWidth is the writer's indentation, applied on every save.
// Round-trip equivalence is defined against this normalized form.
const indentWidth = 2

// legacyEntities maps characters that pre-1.8 editors expect as HTML
// entities rather than code-page bytes.
var legacyEntities = strings.NewReplacer(
	" ", " ",
	"ä", "&#xe4;",
	"ö", "&#xf6;",
	"ü", "&#xfc;",
	"Ä", "&#xc4;",
	"Ö", "&#xd6;",
	"Ü", "&#xdc;",
	"ß", "&#xdf;",
)

// Serialize writes the document back to bytes in the given encoding.
// Element order, attribute order and unknown content come out exactly
// as parsed; only inter-element whitespace is normalized to the
// writer's indent.
func Serialize(doc *etree.Document, enc domain.Encoding) ([]byte, error) {
	doc.Indent(indentWidth)

	text, err := doc.WriteToString()
	if err != nil {
		return nil, fmt.Errorf("serialize map: %w", err)
	}

	if enc == domain.EncodingWindows1252 {
		text = legacyEntities.Replace(text)
		out, err := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()).
			Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("encode windows-1252: %w", err)
		}
		return out, nil
	}

	return []byte(text), nil
}
