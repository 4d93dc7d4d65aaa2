package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseVersionMarker classifies the version attribute of a map root
// element and returns the bare version number.
//
//	"freeplane 1.11.5"  -> GenerationCurrent, "1.11.5"
//	"freeplane 1.3.0"   -> GenerationLegacy,  "1.3.0"
//	"1.0.1" / "0.9.0"   -> GenerationFreeMind (predecessor format)
//	"" or unrecognized  -> GenerationUnknown (best-effort passthrough)
//
// A freeplane marker with a major version other than 1 cannot be
// mapped, not even opaquely, and yields ErrUnsupportedVersion.
func ParseVersionMarker(marker string) (Generation, string, error) {
	marker = strings.TrimSpace(marker)
	if marker == "" {
		return GenerationUnknown, "", nil
	}

	if rest, ok := strings.CutPrefix(marker, "freeplane "); ok {
		version := strings.TrimSpace(rest)
		major, minor, ok := splitVersion(version)
		if !ok {
			return GenerationUnknown, version, nil
		}
		if major != 1 {
			return GenerationUnknown, version,
				fmt.Errorf("freeplane %s: %w", version, ErrUnsupportedVersion)
		}
		if minor < 8 {
			return GenerationLegacy, version, nil
		}
		return GenerationCurrent, version, nil
	}

	// Bare numeric markers were written by the FreeMind predecessor.
	if major, _, ok := splitVersion(marker); ok && major <= 1 {
		return GenerationFreeMind, marker, nil
	}

	return GenerationUnknown, marker, nil
}

// VersionEncoding returns the file encoding implied by a format
// generation. Freeplane below 1.8 used the Windows native code page;
// everything else is UTF-8.
func VersionEncoding(gen Generation) Encoding {
	if gen == GenerationLegacy {
		return EncodingWindows1252
	}
	return EncodingUTF8
}

func splitVersion(v string) (major, minor int, ok bool) {
	parts := strings.Split(v, ".")
	if len(parts) < 2 {
		return 0, 0, false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return major, minor, true
}
