package fidelity

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/charmap"

	"github.com/treeline-labs/freemap-cli/internal/core/domain"
	"github.com/treeline-labs/freemap-cli/internal/logger"
)

// RootTag is the document element of every recognized map generation.
const RootTag = "map"

// versionMarker extracts the version attribute from the map header
// without parsing, so the encoding can be chosen before decoding.
var versionMarker = regexp.MustCompile(`<map[^>]*\sversion="([^"]*)"`)

// Parse decodes and parses raw mindmap bytes. The returned encoding is
// the one actually used, so Serialize can reproduce it.
//
// Errors unwrap to domain.ErrMalformedXML for ill-formed input,
// domain.ErrNotMindmap for well-formed XML without a map root, and
// domain.ErrUnsupportedVersion for markers outside the mappable range.
func Parse(raw []byte) (*etree.Document, domain.Encoding, error) {
	gen, _, err := domain.ParseVersionMarker(sniffMarker(raw))
	if err != nil {
		return nil, domain.EncodingUTF8, err
	}

	enc := domain.VersionEncoding(gen)
	if enc == domain.EncodingUTF8 && !utf8.Valid(raw) {
		// Legacy writers mixed code pages; retry with the Windows one.
		logger.Info("map file is not valid UTF-8, falling back to windows-1252")
		enc = domain.EncodingWindows1252
	}

	text := string(raw)
	if enc == domain.EncodingWindows1252 {
		decoded, err := charmap.Windows1252.NewDecoder().String(text)
		if err != nil {
			return nil, enc, fmt.Errorf("decode windows-1252: %w", err)
		}
		text = decoded
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(repair(text)); err != nil {
		return nil, enc, fmt.Errorf("%w: %v", domain.ErrMalformedXML, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, enc, fmt.Errorf("%w: empty document", domain.ErrNotMindmap)
	}
	if root.Tag != RootTag {
		return nil, enc, fmt.Errorf("%w: root element is <%s>", domain.ErrNotMindmap, root.Tag)
	}

	return doc, enc, nil
}

// repair substitutes known-invalid-but-common constructs before the
// strict XML parse. Some editor versions emit the HTML entity &nbsp;,
// which is not defined in XML; the numeric form parses to the same
// character and survives round-tripping.
func repair(text string) string {
	return strings.ReplaceAll(text, "&nbsp;", "&#160;")
}

func sniffMarker(raw []byte) string {
	header := raw
	if len(header) > 512 {
		header = header[:512]
	}
	m := versionMarker.FindSubmatch(header)
	if m == nil {
		return ""
	}
	return string(m[1])
}
