package mindmap

import (
	"regexp"
	"strings"

	"github.com/treeline-labs/freemap-cli/internal/logger"
)

// Arrow link attributes the editor writes for a plain default arrow.
var arrowLinkDefaults = [][2]string{
	{"SHAPE", "CUBIC_CURVE"},
	{"COLOR", "#000000"},
	{"WIDTH", "2"},
	{"TRANSPARENCY", "80"},
	{"FONT_SIZE", "9"},
	{"FONT_FAMILY", "SansSerif"},
	{"STARTINCLINATION", "131;0;"},
	{"ENDINCLINATION", "131;0;"},
	{"STARTARROW", "NONE"},
	{"ENDARROW", "DEFAULT"},
}

// AddArrowLink draws a graphical arrow from this node to the target,
// with the editor's default arrow styling.
func (n *Node) AddArrowLink(target *Node) {
	link := n.el.CreateElement("arrowlink")
	for _, kv := range arrowLinkDefaults {
		link.CreateAttr(kv[0], kv[1])
	}
	link.CreateAttr("DESTINATION", target.ID())
	n.touch()
}

// ArrowLinks returns the nodes this node's arrows point at. Arrows
// whose destination no longer exists are reported and skipped; their
// elements stay in the document.
func (n *Node) ArrowLinks() []*Node {
	var out []*Node
	for _, link := range n.el.SelectElements("arrowlink") {
		dest := link.SelectAttrValue("DESTINATION", "")
		el, ok := n.m.index[dest]
		if !ok {
			logger.Warn("arrow link from node %s points at unknown node %s", n.ID(), dest)
			continue
		}
		out = append(out, &Node{m: n.m, el: el})
	}
	return out
}

// ArrowLinked returns the nodes whose arrows point at this node, in
// document order.
func (n *Node) ArrowLinked() []*Node {
	id := n.ID()
	var out []*Node
	for _, link := range n.m.doc.FindElements("//arrowlink") {
		if link.SelectAttrValue("DESTINATION", "") != id {
			continue
		}
		owner := link.Parent()
		if owner == nil || owner.Tag != "node" {
			continue
		}
		out = append(out, &Node{m: n.m, el: owner})
	}
	return out
}

// DelArrowLink removes every arrow from this node to the target and
// reports how many were removed.
func (n *Node) DelArrowLink(target *Node) int {
	return n.DelArrowLinkTo(target.ID())
}

// DelArrowLinkTo removes every arrow from this node to the given id.
func (n *Node) DelArrowLinkTo(id string) int {
	removed := 0
	for _, link := range n.el.SelectElements("arrowlink") {
		if link.SelectAttrValue("DESTINATION", "") == id {
			n.el.RemoveChild(link)
			removed++
		}
	}
	if removed > 0 {
		n.touch()
	}
	return removed
}

var (
	winDrivePath  = regexp.MustCompile(`^[A-Za-z]:/`)
	winDriveInURI = regexp.MustCompile(`^/[A-Za-z]:/`)
	uriProtocol   = regexp.MustCompile(`^[A-Za-z]{2,}:/`)
)

// ImagePath returns the filesystem path of the node's in-line image,
// empty when the node carries none. The editor's file URI form is
// unwrapped, including the surplus slash it writes before Windows
// drive letters.
func (n *Node) ImagePath() string {
	hook := n.el.FindElement("./hook[@NAME='ExternalObject']")
	if hook == nil {
		return ""
	}
	uri := strings.TrimPrefix(hook.SelectAttrValue("URI", ""), "file://")
	if winDriveInURI.MatchString(uri) {
		uri = uri[1:]
	}
	return uri
}

// ImageSize returns the zoom factor of the node's in-line image, empty
// when the node carries none.
func (n *Node) ImageSize() string {
	hook := n.el.FindElement("./hook[@NAME='ExternalObject']")
	if hook == nil {
		return ""
	}
	return hook.SelectAttrValue("SIZE", "")
}

// SetImage attaches or replaces the node's in-line image. Absolute
// paths are wrapped into file URIs, bare relative paths are anchored
// at the map's directory, and URIs with an explicit protocol pass
// through unchanged.
func (n *Node) SetImage(path, size string) {
	link := strings.ReplaceAll(path, "\\", "/")
	switch {
	case strings.HasPrefix(link, "/"):
		link = "file://" + link
	case winDrivePath.MatchString(link):
		link = "file:///" + link
	case strings.HasPrefix(link, "."):
	case uriProtocol.MatchString(link):
	default:
		link = "./" + link
	}
	if size == "" {
		size = "1"
	}

	hook := n.el.FindElement("./hook[@NAME='ExternalObject']")
	if hook == nil {
		hook = n.el.CreateElement("hook")
		hook.CreateAttr("NAME", "ExternalObject")
	}
	hook.CreateAttr("URI", link)
	hook.CreateAttr("SIZE", size)
	n.touch()
}
