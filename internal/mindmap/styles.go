package mindmap

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/treeline-labs/freemap-cli/internal/core/domain"
)

// Styles returns the user-defined styles of the map in declaration
// order.
func (m *Mindmap) Styles() []domain.Style {
	container := m.styleContainer(false)
	if container == nil {
		return nil
	}

	var out []domain.Style
	for _, el := range container.SelectElements("stylenode") {
		if el.SelectAttrValue("TEXT", "") == "" {
			continue
		}
		out = append(out, styleFromElement(el))
	}
	return out
}

// StyleNames returns the registered style names in declaration order.
func (m *Mindmap) StyleNames() []string {
	styles := m.Styles()
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = s.Name
	}
	return names
}

// FindStyle resolves a style by name, case-insensitively.
func (m *Mindmap) FindStyle(name string) (domain.Style, bool) {
	for _, s := range m.Styles() {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return domain.Style{}, false
}

// AddStyle registers a style. Re-adding a style with identical
// properties is a no-op; registering an existing name with different
// properties fails with domain.ErrStyleExists. Use ReplaceStyle to
// overwrite deliberately.
func (m *Mindmap) AddStyle(s domain.Style) error {
	if existing, ok := m.FindStyle(s.Name); ok {
		if existing.Equal(s) {
			return nil
		}
		return fmt.Errorf("style %q: %w", s.Name, domain.ErrStyleExists)
	}

	applyStyle(m.styleContainer(true).CreateElement("stylenode"), s)
	return nil
}

// ReplaceStyle registers a style, overwriting any existing definition
// of the same name.
func (m *Mindmap) ReplaceStyle(s domain.Style) {
	container := m.styleContainer(true)
	for _, el := range container.SelectElements("stylenode") {
		if strings.EqualFold(el.SelectAttrValue("TEXT", ""), s.Name) {
			container.RemoveChild(el)
			break
		}
	}
	applyStyle(container.CreateElement("stylenode"), s)
}

// styleContainer locates the user-defined style list, optionally
// creating the editor's containing skeleton when absent.
func (m *Mindmap) styleContainer(create bool) *etree.Element {
	if el := m.root.FindElement(".//stylenode[@LOCALIZED_TEXT='styles.user-defined']"); el != nil {
		return el
	}
	if !create {
		return nil
	}

	node := m.root.SelectElement("node")
	if node == nil {
		node = m.root.CreateElement("node")
		node.CreateAttr("ID", m.newNodeID())
	}

	hook := node.FindElement("./hook[@NAME='MapStyle']")
	if hook == nil {
		hook = node.CreateElement("hook")
		hook.CreateAttr("NAME", "MapStyle")
	}
	styles := hook.SelectElement("map_styles")
	if styles == nil {
		styles = hook.CreateElement("map_styles")
	}
	styleRoot := styles.FindElement("./stylenode[@LOCALIZED_TEXT='styles.root_node']")
	if styleRoot == nil {
		styleRoot = styles.CreateElement("stylenode")
		styleRoot.CreateAttr("LOCALIZED_TEXT", "styles.root_node")
	}
	user := styleRoot.CreateElement("stylenode")
	user.CreateAttr("LOCALIZED_TEXT", "styles.user-defined")
	user.CreateAttr("POSITION", "right")
	return user
}

func styleFromElement(el *etree.Element) domain.Style {
	s := domain.Style{
		Name:            el.SelectAttrValue("TEXT", ""),
		Color:           el.SelectAttrValue("COLOR", ""),
		BackgroundColor: el.SelectAttrValue("BACKGROUND_COLOR", ""),
	}
	if font := el.SelectElement("font"); font != nil {
		s.FontName = font.SelectAttrValue("NAME", "")
		s.FontSize = font.SelectAttrValue("SIZE", "")
	}
	return s
}

func applyStyle(el *etree.Element, s domain.Style) {
	el.CreateAttr("TEXT", s.Name)
	if s.Color != "" {
		el.CreateAttr("COLOR", s.Color)
	}
	if s.BackgroundColor != "" {
		el.CreateAttr("BACKGROUND_COLOR", s.BackgroundColor)
	}
	if s.FontName != "" || s.FontSize != "" {
		font := el.CreateElement("font")
		if s.FontName != "" {
			font.CreateAttr("NAME", s.FontName)
		}
		if s.FontSize != "" {
			font.CreateAttr("SIZE", s.FontSize)
		}
	}
}
