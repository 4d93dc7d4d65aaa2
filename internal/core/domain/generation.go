package domain

// Generation identifies a recognized on-disk schema revision of the
// mindmap format.
type Generation int

const (
	// GenerationUnknown marks a parseable map whose version marker is
	// missing or unrecognized. Such documents are handled best-effort:
	// everything the typed layer does not understand stays opaque.
	GenerationUnknown Generation = iota

	// GenerationFreeMind marks files written by the FreeMind predecessor
	// (version markers without the "freeplane" token).
	GenerationFreeMind

	// GenerationLegacy marks Freeplane files before 1.8. These are not
	// reliably UTF-8 encoded and need the legacy character repairs.
	GenerationLegacy

	// GenerationCurrent marks Freeplane 1.8 and later, always UTF-8.
	GenerationCurrent
)

// String returns a human-readable generation name.
func (g Generation) String() string {
	switch g {
	case GenerationFreeMind:
		return "freemind"
	case GenerationLegacy:
		return "freeplane-legacy"
	case GenerationCurrent:
		return "freeplane"
	default:
		return "unknown"
	}
}

// Encoding identifies the character encoding a map file was read with.
// Save reproduces the load encoding unless the document is upgraded.
type Encoding int

const (
	// EncodingUTF8 is the encoding of all current-generation files.
	EncodingUTF8 Encoding = iota

	// EncodingWindows1252 is the platform encoding of legacy files.
	EncodingWindows1252
)

// String returns the IANA-style encoding name.
func (e Encoding) String() string {
	if e == EncodingWindows1252 {
		return "windows-1252"
	}
	return "utf-8"
}
