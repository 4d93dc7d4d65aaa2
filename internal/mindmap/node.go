package mindmap

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/treeline-labs/freemap-cli/internal/core/domain"
	"github.com/treeline-labs/freemap-cli/internal/fidelity"
	"github.com/treeline-labs/freemap-cli/internal/query"
)

// Node is a view on one node element of a map. Nodes are cheap to
// construct and carry no state of their own; all reads and writes go
// straight to the backing tree.
type Node struct {
	m  *Mindmap
	el *etree.Element
}

var (
	coreLinkRef = regexp.MustCompile(`ID_([0-9]+)\.text`)
	nodeIDForm  = regexp.MustCompile(`^ID_[0-9]+$`)
)

// ID returns the node's unique id.
func (n *Node) ID() string {
	return n.el.SelectAttrValue("ID", "")
}

// SetID assigns a caller-chosen id. The id must follow the editor's
// "ID_<digits>" form and be unused in this map. A detached node only
// carries the id on its element; it enters the index when the node is
// attached.
func (n *Node) SetID(id string) error {
	if !nodeIDForm.MatchString(id) {
		return fmt.Errorf("id %q: %w", id, domain.ErrInvalidID)
	}
	if held, taken := n.m.index[id]; taken && held != n.el {
		return fmt.Errorf("id %s is already in use: %w", id, domain.ErrInvalidID)
	}

	old := n.ID()
	indexed := old != "" && n.m.index[old] == n.el
	if indexed {
		delete(n.m.index, old)
	}
	n.el.CreateAttr("ID", id)
	if indexed {
		n.m.index[id] = n.el
	}
	return nil
}

// PlainText returns the node's core text. Rich cores are flattened to
// plain text through the map's HTML converter.
func (n *Node) PlainText() string {
	if attr := n.el.SelectAttr("TEXT"); attr != nil {
		return attr.Value
	}
	rc := n.richContent(fidelity.RichTypeNode)
	if rc == nil {
		return ""
	}
	html := rc.SelectElement("html")
	if html == nil {
		return ""
	}
	return n.m.conv.Convert(fidelity.ElementString(html))
}

// SetPlainText replaces the node's core text. A rich core is dropped in
// favour of the plain TEXT form.
func (n *Node) SetPlainText(text string) {
	n.el.CreateAttr("TEXT", text)
	if rc := n.richContent(fidelity.RichTypeNode); rc != nil {
		n.el.RemoveChild(rc)
	}
	n.touch()
}

// VisibleText returns what the editor renders in the node's core: for
// a core formula referencing another node's text, the referenced text,
// otherwise the node's own plain text.
func (n *Node) VisibleText() string {
	if id := n.CoreLink(); id != "" {
		if target, err := n.m.NodeByID(id); err == nil {
			return target.PlainText()
		}
	}
	return n.PlainText()
}

// CoreLink returns the id of the node referenced by a core formula of
// the form "= ID_12345678.text", or empty when the core holds no such
// reference.
func (n *Node) CoreLink() string {
	text := n.PlainText()
	if !strings.HasPrefix(text, "=") {
		return ""
	}
	m := coreLinkRef.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return "ID_" + m[1]
}

// FollowCoreLink resolves the core formula reference to its node.
func (n *Node) FollowCoreLink() (*Node, error) {
	id := n.CoreLink()
	if id == "" {
		return nil, fmt.Errorf("node %s has no core reference: %w", n.ID(), domain.ErrNodeNotFound)
	}
	return n.m.NodeByID(id)
}

// Details returns the node's details text, flattened to plain text.
func (n *Node) Details() string {
	rc := n.richContent(fidelity.RichTypeDetails)
	if rc == nil {
		return ""
	}
	return fidelity.RichText(rc)
}

// SetDetails replaces the node's details. Empty text removes them.
func (n *Node) SetDetails(text string) {
	n.setRichContent(fidelity.RichTypeDetails, text)
}

// Notes returns the node's note text, flattened to plain text.
func (n *Node) Notes() string {
	rc := n.richContent(fidelity.RichTypeNote)
	if rc == nil {
		return ""
	}
	return fidelity.RichText(rc)
}

// SetNotes replaces the node's note. Empty text removes it.
func (n *Node) SetNotes(text string) {
	n.setRichContent(fidelity.RichTypeNote, text)
}

// Link returns the node's hyperlink, empty when unset.
func (n *Node) Link() string {
	return n.el.SelectAttrValue("LINK", "")
}

// SetLink replaces the node's hyperlink. Empty removes it.
func (n *Node) SetLink(link string) {
	if link == "" {
		n.el.RemoveAttr("LINK")
	} else {
		n.el.CreateAttr("LINK", link)
	}
	n.touch()
}

// HasInternalLink reports whether the node's hyperlink points at
// another node of the same map.
func (n *Node) HasInternalLink() bool {
	return strings.HasPrefix(n.Link(), "#")
}

// FollowLink resolves an internal hyperlink to its target node.
func (n *Node) FollowLink() (*Node, error) {
	if !n.HasInternalLink() {
		return nil, fmt.Errorf("node %s has no internal link: %w", n.ID(), domain.ErrNodeNotFound)
	}
	return n.m.NodeByID(strings.TrimPrefix(n.Link(), "#"))
}

// Icons returns the node's builtin icon names in document order.
func (n *Node) Icons() []string {
	var out []string
	for _, el := range n.el.SelectElements("icon") {
		if v := el.SelectAttrValue("BUILTIN", ""); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// AddIcon appends a builtin icon to the node.
func (n *Node) AddIcon(name string) {
	icon := n.el.CreateElement("icon")
	icon.CreateAttr("BUILTIN", name)
	n.touch()
}

// RemoveIcon removes the first occurrence of a builtin icon and
// reports whether one was present.
func (n *Node) RemoveIcon(name string) bool {
	for _, el := range n.el.SelectElements("icon") {
		if el.SelectAttrValue("BUILTIN", "") == name {
			n.el.RemoveChild(el)
			n.touch()
			return true
		}
	}
	return false
}

// Attributes returns the node's attributes in document order,
// duplicates included.
func (n *Node) Attributes() []domain.Attribute {
	var out []domain.Attribute
	for _, el := range n.el.SelectElements("attribute") {
		out = append(out, domain.Attribute{
			Name:  el.SelectAttrValue("NAME", ""),
			Value: el.SelectAttrValue("VALUE", ""),
		})
	}
	return out
}

// Attribute returns the value of the named attribute. With duplicate
// names the last occurrence wins, matching what the editor displays.
func (n *Node) Attribute(name string) (string, bool) {
	value, found := "", false
	for _, a := range n.Attributes() {
		if a.Name == name {
			value, found = a.Value, true
		}
	}
	return value, found
}

// SetAttribute updates the first attribute of the given name, or
// appends one when the name is new.
func (n *Node) SetAttribute(name, value string) {
	for _, el := range n.el.SelectElements("attribute") {
		if el.SelectAttrValue("NAME", "") == name {
			el.CreateAttr("VALUE", value)
			n.touch()
			return
		}
	}
	n.AddAttribute(name, value)
}

// AddAttribute always appends, allowing duplicate names.
func (n *Node) AddAttribute(name, value string) {
	el := n.el.CreateElement("attribute")
	el.CreateAttr("NAME", name)
	el.CreateAttr("VALUE", value)
	n.touch()
}

// RemoveAttribute removes every attribute of the given name and
// returns how many were removed.
func (n *Node) RemoveAttribute(name string) int {
	removed := 0
	for _, el := range n.el.SelectElements("attribute") {
		if el.SelectAttrValue("NAME", "") == name {
			n.el.RemoveChild(el)
			removed++
		}
	}
	if removed > 0 {
		n.touch()
	}
	return removed
}

// Style returns the name of the style assigned to the node, empty when
// the node follows the default.
func (n *Node) Style() string {
	return n.el.SelectAttrValue("STYLE_REF", "")
}

// SetStyle assigns a registered style to the node. Unregistered names
// fail with domain.ErrStyleNotFound; SetStyleForce skips the check.
// Empty clears the assignment.
func (n *Node) SetStyle(name string) error {
	if name == "" {
		n.el.RemoveAttr("STYLE_REF")
		n.touch()
		return nil
	}
	if _, ok := n.m.FindStyle(name); !ok {
		return fmt.Errorf("style %q: %w", name, domain.ErrStyleNotFound)
	}
	n.el.CreateAttr("STYLE_REF", name)
	n.touch()
	return nil
}

// SetStyleForce assigns a style name without consulting the registry.
func (n *Node) SetStyleForce(name string) {
	if name == "" {
		n.el.RemoveAttr("STYLE_REF")
	} else {
		n.el.CreateAttr("STYLE_REF", name)
	}
	n.touch()
}

// CreatedAt returns the node's creation time, zero when absent.
func (n *Node) CreatedAt() time.Time {
	return n.timeAttr("CREATED")
}

// ModifiedAt returns the node's last modification time, zero when
// absent.
func (n *Node) ModifiedAt() time.Time {
	return n.timeAttr("MODIFIED")
}

// SetCreatedAt overrides the creation timestamp.
func (n *Node) SetCreatedAt(t time.Time) {
	n.el.CreateAttr("CREATED", strconv.FormatInt(t.UnixMilli(), 10))
}

// SetModifiedAt overrides the modification timestamp without the usual
// touch on edit.
func (n *Node) SetModifiedAt(t time.Time) {
	n.el.CreateAttr("MODIFIED", strconv.FormatInt(t.UnixMilli(), 10))
}

func (n *Node) timeAttr(key string) time.Time {
	raw := n.el.SelectAttrValue(key, "")
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// touch stamps the node as modified now.
func (n *Node) touch() {
	n.el.CreateAttr("MODIFIED", nowMillis())
}

func (n *Node) richContent(rcType string) *etree.Element {
	for _, el := range n.el.SelectElements("richcontent") {
		if el.SelectAttrValue("TYPE", "") == rcType {
			return el
		}
	}
	return nil
}

func (n *Node) setRichContent(rcType, text string) {
	if rc := n.richContent(rcType); rc != nil {
		n.el.RemoveChild(rc)
	}
	if text != "" {
		n.el.AddChild(fidelity.RichContent(rcType, text))
	}
	n.touch()
}

// fields snapshots the node for predicate evaluation.
func (n *Node) fields() query.Fields {
	return query.Fields{
		ID:         n.ID(),
		Core:       n.PlainText(),
		Link:       n.Link(),
		Details:    n.Details(),
		Notes:      n.Notes(),
		StyleRef:   n.Style(),
		Icons:      n.Icons(),
		Attributes: n.Attributes(),
	}
}
