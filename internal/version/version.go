// Package version detects a map's format generation and normalizes
// generation-specific structure, so the node and map layers operate on
// one uniform shape.
//
// Detection runs once at load time, followed by Lift, which raises
// predecessor-format constructs into the current shape. Save runs
// Lower, the inverse, when the document is written back in its loaded
// generation; an explicit Upgrade rewrites the version marker instead.
// Unrecognized-but-parseable generations pass through untouched, with
// unknown constructs preserved by the fidelity layer.
package version

import (
	"github.com/beevik/etree"

	"github.com/treeline-labs/freemap-cli/internal/core/domain"
	"github.com/treeline-labs/freemap-cli/internal/fidelity"
	"github.com/treeline-labs/freemap-cli/internal/logger"
)

// Current is the newest map version this library writes. Upgrade stamps
// it onto the root element.
const Current = "1.12.1"

// noteHook is the FreeMind carrier element for node notes, replaced by
// richcontent in Freeplane.
const noteHook = "accessories/plugins/NodeNote.properties"

// Detect reads the generation and bare version number from the map
// root. Only documents whose marker claims an unmappable generation
// produce an error.
func Detect(doc *etree.Document) (domain.Generation, string, error) {
	root := doc.Root()
	if root == nil {
		return domain.GenerationUnknown, "", domain.ErrNotMindmap
	}
	return domain.ParseVersionMarker(root.SelectAttrValue("version", ""))
}

// Lift raises generation-specific constructs into the uniform shape.
// It returns the number of lifted constructs.
func Lift(doc *etree.Document, gen domain.Generation) int {
	if gen != domain.GenerationFreeMind {
		return 0
	}

	lifted := 0
	for _, hook := range doc.FindElements("//hook[@NAME='" + noteHook + "']") {
		parent := hook.Parent()
		if parent == nil {
			continue
		}
		text := ""
		if textEl := hook.SelectElement("text"); textEl != nil {
			text = textEl.Text()
		}
		rc := fidelity.RichContent(fidelity.RichTypeNote, text)
		parent.InsertChildAt(hook.Index(), rc)
		parent.RemoveChild(hook)
		lifted++
	}
	if lifted > 0 {
		logger.Debug("lifted %d predecessor-format note(s)", lifted)
	}
	return lifted
}

// Lower is the inverse of Lift, applied when a document is saved in its
// loaded generation. It returns the number of lowered constructs.
func Lower(doc *etree.Document, gen domain.Generation) int {
	if gen != domain.GenerationFreeMind {
		return 0
	}

	lowered := 0
	for _, rc := range doc.FindElements("//richcontent[@TYPE='" + fidelity.RichTypeNote + "']") {
		parent := rc.Parent()
		if parent == nil {
			continue
		}
		hook := etree.NewElement("hook")
		hook.CreateAttr("NAME", noteHook)
		hook.CreateElement("text").SetText(fidelity.RichText(rc))
		parent.InsertChildAt(rc.Index(), hook)
		parent.RemoveChild(rc)
		lowered++
	}
	if lowered > 0 {
		logger.Debug("lowered %d note(s) to the predecessor format", lowered)
	}
	return lowered
}

// Upgrade rewrites the version marker to the newest supported
// generation. This changes file compatibility with older editors and
// is never applied implicitly.
func Upgrade(doc *etree.Document) domain.Generation {
	if root := doc.Root(); root != nil {
		root.CreateAttr("version", "freeplane "+Current)
	}
	return domain.GenerationCurrent
}
