package mindmap

import (
	"errors"
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/treeline-labs/freemap-cli/internal/core/domain"
	"github.com/treeline-labs/freemap-cli/internal/core/ports/driven"
	"github.com/treeline-labs/freemap-cli/internal/fidelity"
	"github.com/treeline-labs/freemap-cli/internal/logger"
	"github.com/treeline-labs/freemap-cli/internal/normalisers/htmltext"
	"github.com/treeline-labs/freemap-cli/internal/query"
	"github.com/treeline-labs/freemap-cli/internal/version"
)

// Mindmap is one loaded or constructed map document. It owns the
// backing element tree, the style registry and the node id index.
type Mindmap struct {
	doc     *etree.Document
	root    *etree.Element // the map element
	path    string
	enc     domain.Encoding
	gen     domain.Generation
	version string
	conv    driven.HTMLConverter
	index   map[string]*etree.Element
	idIncr  int
}

// SaveOptions controls how a map is written back.
type SaveOptions struct {
	// Upgrade rewrites the version marker to the newest supported
	// generation and saves in its shape and encoding, instead of
	// preserving the loaded generation. This changes compatibility
	// with the editor that wrote the file and is never implicit.
	Upgrade bool
}

// Load reads and parses a map file, normalizes its generation and
// builds the node id index.
func Load(path string) (*Mindmap, error) {
	raw, err := fidelity.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, enc, err := fidelity.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	gen, ver, err := version.Detect(doc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	version.Lift(doc, gen)

	m := &Mindmap{
		doc:     doc,
		root:    doc.Root(),
		path:    path,
		enc:     enc,
		gen:     gen,
		version: ver,
		conv:    htmltext.New(),
	}
	m.scan()
	return m, nil
}

// New constructs an empty map with a synthesized root node and the
// default style skeleton the editor expects.
func New() *Mindmap {
	doc := etree.NewDocument()
	root := doc.CreateElement(fidelity.RootTag)
	root.CreateAttr("version", "freeplane "+version.Current)

	reg := root.CreateElement("attribute_registry")
	reg.CreateAttr("SHOW_ATTRIBUTES", "hide")

	m := &Mindmap{
		doc:     doc,
		root:    root,
		enc:     domain.EncodingUTF8,
		gen:     domain.GenerationCurrent,
		version: version.Current,
		conv:    htmltext.New(),
		index:   make(map[string]*etree.Element),
	}

	node := root.CreateElement("node")
	node.CreateAttr("TEXT", "new_mindmap")
	node.CreateAttr("FOLDED", "false")
	node.CreateAttr("ID", m.newNodeID())
	now := nowMillis()
	node.CreateAttr("CREATED", now)
	node.CreateAttr("MODIFIED", now)
	m.index[node.SelectAttrValue("ID", "")] = node

	edge := node.CreateElement("edge")
	edge.CreateAttr("STYLE", "horizontal")
	edge.CreateAttr("COLOR", "#cccccc")

	hook := node.CreateElement("hook")
	hook.CreateAttr("NAME", "MapStyle")
	hook.CreateAttr("zoom", "1.00")
	props := hook.CreateElement("properties")
	props.CreateAttr("show_icon_for_attributes", "false")
	props.CreateAttr("show_note_icons", "false")

	styles := hook.CreateElement("map_styles")
	styleRoot := styles.CreateElement("stylenode")
	styleRoot.CreateAttr("LOCALIZED_TEXT", "styles.root_node")

	predefined := styleRoot.CreateElement("stylenode")
	predefined.CreateAttr("LOCALIZED_TEXT", "styles.predefined")
	predefined.CreateAttr("POSITION", "right")
	def := predefined.CreateElement("stylenode")
	def.CreateAttr("LOCALIZED_TEXT", "default")
	def.CreateAttr("MAX_WIDTH", "600")
	def.CreateAttr("COLOR", "#000000")
	def.CreateAttr("STYLE", "as_parent")
	font := def.CreateElement("font")
	font.CreateAttr("NAME", "Segoe UI")
	font.CreateAttr("SIZE", "12")
	font.CreateAttr("BOLD", "false")
	font.CreateAttr("ITALIC", "false")

	user := styleRoot.CreateElement("stylenode")
	user.CreateAttr("LOCALIZED_TEXT", "styles.user-defined")
	user.CreateAttr("POSITION", "right")

	return m
}

// SetHTMLConverter replaces the rich-text collaborator. A nil converter
// restores the default one.
func (m *Mindmap) SetHTMLConverter(conv driven.HTMLConverter) {
	if conv == nil {
		conv = htmltext.New()
	}
	m.conv = conv
}

// Path returns the file the map was loaded from or last saved to.
// Empty for maps constructed in memory.
func (m *Mindmap) Path() string { return m.path }

// Encoding returns the character encoding detected at load time.
func (m *Mindmap) Encoding() domain.Encoding { return m.enc }

// Generation returns the detected format generation.
func (m *Mindmap) Generation() domain.Generation { return m.gen }

// Version returns the bare version number from the map marker.
func (m *Mindmap) Version() string { return m.version }

// Root returns the first visible node of the map, or nil for a
// document without one.
func (m *Mindmap) Root() *Node {
	el := m.root.SelectElement("node")
	if el == nil {
		return nil
	}
	return &Node{m: m, el: el}
}

// Save writes the map to the given path, or to the load path when the
// argument is empty. The loaded generation's on-disk shape and
// encoding are preserved.
func (m *Mindmap) Save(path string) error {
	return m.SaveWith(path, SaveOptions{})
}

// SaveWith writes the map with explicit save options.
func (m *Mindmap) SaveWith(path string, opts SaveOptions) error {
	if path == "" {
		path = m.path
	}
	if path == "" {
		return domain.ErrNoPath
	}

	enc, gen := m.enc, m.gen
	if opts.Upgrade {
		gen = version.Upgrade(m.doc)
		enc = domain.VersionEncoding(gen)
	} else {
		version.Lower(m.doc, gen)
	}

	data, err := fidelity.Serialize(m.doc, enc)
	if !opts.Upgrade {
		// Restore the uniform in-memory shape regardless of outcome.
		version.Lift(m.doc, gen)
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := fidelity.WriteFile(path, data); err != nil {
		return err
	}

	m.path = path
	if opts.Upgrade {
		m.gen = gen
		m.enc = enc
		m.version = version.Current
	}
	return nil
}

// NodeByID resolves a node id over the whole map.
func (m *Mindmap) NodeByID(id string) (*Node, error) {
	el, ok := m.index[id]
	if !ok {
		return nil, fmt.Errorf("id %s: %w", id, domain.ErrNodeNotFound)
	}
	return &Node{m: m, el: el}, nil
}

// FindNodes searches the whole document, root node included, in
// pre-order depth-first order.
func (m *Mindmap) FindNodes(c domain.Criteria) ([]*Node, error) {
	pred, err := query.Compile(c)
	if err != nil {
		return nil, err
	}

	var out []*Node
	walkNodeElements(m.root, func(el *etree.Element) {
		n := &Node{m: m, el: el}
		if pred.Matches(n.fields()) {
			out = append(out, n)
		}
	})
	return out, nil
}

// NewNode constructs a detached node owned by this map. It carries a
// fresh unique id and current timestamps and can be attached anywhere
// later.
func (m *Mindmap) NewNode(core string) *Node {
	el := etree.NewElement("node")
	n := &Node{m: m, el: el}
	el.CreateAttr("ID", m.newNodeID())
	now := nowMillis()
	el.CreateAttr("CREATED", now)
	el.CreateAttr("MODIFIED", now)
	if core != "" {
		el.CreateAttr("TEXT", core)
	}
	return n
}

// scan builds the id index, assigns missing ids and reports integrity
// findings from the loaded document.
func (m *Mindmap) scan() {
	m.index = make(map[string]*etree.Element)
	walkNodeElements(m.root, func(el *etree.Element) {
		id := el.SelectAttrValue("ID", "")
		switch {
		case id == "":
			id = m.newNodeID()
			el.CreateAttr("ID", id)
		case m.index[id] != nil:
			logger.Warn("duplicate node id %s, reassigning", id)
			id = m.newNodeID()
			el.CreateAttr("ID", id)
		}
		m.index[id] = el

		seen := map[string]bool{}
		for _, attr := range el.SelectElements("attribute") {
			name := attr.SelectAttrValue("NAME", "")
			if name == "" {
				continue
			}
			if seen[name] {
				logger.Warn("node %s carries duplicate attribute name %q", id, name)
			}
			seen[name] = true
		}
	})
}

// newNodeID creates a fresh unique node id: the editor's "ID_" token,
// a date seed and a counter, re-rolled until it clears the index.
func (m *Mindmap) newNodeID() string {
	for {
		m.idIncr++
		id := fmt.Sprintf("ID_%s%04d", time.Now().Format("060102"), m.idIncr)
		if m.index == nil || m.index[id] == nil {
			return id
		}
	}
}

// registerSubtree adds a node element and all its node descendants to
// the id index, renumbering on collision. An id the element already
// holds in the index is not a collision.
func (m *Mindmap) registerSubtree(el *etree.Element) {
	visit := func(e *etree.Element) {
		id := e.SelectAttrValue("ID", "")
		if id == "" || (m.index[id] != nil && m.index[id] != e) {
			fresh := m.newNodeID()
			if id != "" {
				logger.Info("node id %s collides, renumbered to %s", id, fresh)
			}
			id = fresh
			e.CreateAttr("ID", id)
		}
		m.index[id] = e
	}
	visit(el)
	walkNodeElements(el, visit)
}

// releaseSubtree removes a node element and all its node descendants
// from the id index. The elements keep their ids.
func (m *Mindmap) releaseSubtree(el *etree.Element) []string {
	var ids []string
	release := func(e *etree.Element) {
		id := e.SelectAttrValue("ID", "")
		if id != "" && m.index[id] == e {
			delete(m.index, id)
			ids = append(ids, id)
		}
	}
	release(el)
	walkNodeElements(el, release)
	return ids
}

// walkNodeElements visits every node element below the given container
// in pre-order document order. The container itself is not visited.
func walkNodeElements(el *etree.Element, visit func(*etree.Element)) {
	for _, child := range el.ChildElements() {
		if child.Tag != "node" {
			continue
		}
		visit(child)
		walkNodeElements(child, visit)
	}
}

func nowMillis() string {
	return fmt.Sprintf("%d", time.Now().UnixMilli())
}

// IsNotFound reports whether an error is the missing-id lookup failure.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNodeNotFound)
}
