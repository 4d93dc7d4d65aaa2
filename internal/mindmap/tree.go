package mindmap

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/treeline-labs/freemap-cli/internal/core/domain"
	"github.com/treeline-labs/freemap-cli/internal/logger"
	"github.com/treeline-labs/freemap-cli/internal/query"
)

// Parent returns the node's parent, or nil for the map's root node and
// for detached nodes.
func (n *Node) Parent() *Node {
	p := n.el.Parent()
	if p == nil || p.Tag != "node" {
		return nil
	}
	return &Node{m: n.m, el: p}
}

// IsRoot reports whether the node is the map's root node.
func (n *Node) IsRoot() bool {
	p := n.el.Parent()
	return p != nil && p.Tag != "node"
}

// Children returns the node's direct child nodes in document order.
func (n *Node) Children() []*Node {
	var out []*Node
	for _, el := range n.el.SelectElements("node") {
		out = append(out, &Node{m: n.m, el: el})
	}
	return out
}

// HasChildren reports whether the node has at least one child node.
func (n *Node) HasChildren() bool {
	return n.el.SelectElement("node") != nil
}

// ChildAt returns the child node at the given position.
func (n *Node) ChildAt(i int) (*Node, error) {
	children := n.Children()
	if i < 0 || i >= len(children) {
		return nil, fmt.Errorf("index %d of %d children: %w", i, len(children), domain.ErrChildIndex)
	}
	return children[i], nil
}

// Index returns the node's position among its siblings, or -1 for the
// root node and detached nodes.
func (n *Node) Index() int {
	parent := n.Parent()
	if parent == nil {
		return -1
	}
	for i, el := range parent.el.SelectElements("node") {
		if el == n.el {
			return i
		}
	}
	return -1
}

// Next returns the following sibling node, nil at the end.
func (n *Node) Next() *Node {
	return n.sibling(1)
}

// Previous returns the preceding sibling node, nil at the start.
func (n *Node) Previous() *Node {
	return n.sibling(-1)
}

func (n *Node) sibling(offset int) *Node {
	parent := n.Parent()
	if parent == nil {
		return nil
	}
	siblings := parent.el.SelectElements("node")
	for i, el := range siblings {
		if el != n.el {
			continue
		}
		j := i + offset
		if j < 0 || j >= len(siblings) {
			return nil
		}
		return &Node{m: n.m, el: siblings[j]}
	}
	return nil
}

// IsDescendantOf reports whether the node sits anywhere below the
// given ancestor.
func (n *Node) IsDescendantOf(ancestor *Node) bool {
	for el := n.el.Parent(); el != nil; el = el.Parent() {
		if el == ancestor.el {
			return true
		}
	}
	return false
}

// AddChild appends a new child node with the given core text and
// returns it.
func (n *Node) AddChild(core string) *Node {
	child := n.m.NewNode(core)
	n.el.AddChild(child.el)
	n.m.registerSubtree(child.el)
	n.touch()
	return child
}

// AddChildAt inserts a new child node at the given position among the
// existing children. The position may equal the child count to append.
func (n *Node) AddChildAt(i int, core string) (*Node, error) {
	children := n.Children()
	if i < 0 || i > len(children) {
		return nil, fmt.Errorf("index %d of %d children: %w", i, len(children), domain.ErrChildIndex)
	}
	if i == len(children) {
		return n.AddChild(core), nil
	}

	child := n.m.NewNode(core)
	n.el.InsertChildAt(children[i].el.Index(), child.el)
	n.m.registerSubtree(child.el)
	n.touch()
	return child, nil
}

// AddSibling inserts a new node directly after this one and returns
// it. The root node cannot take siblings.
func (n *Node) AddSibling(core string) (*Node, error) {
	parent := n.Parent()
	if parent == nil {
		return nil, fmt.Errorf("root node: %w", domain.ErrDetached)
	}
	return parent.AddChildAt(n.Index()+1, core)
}

// Attach appends a detached node as the last child of the given
// parent. Attaching an already attached node, the parent itself or one
// of the parent's ancestors fails.
func (n *Node) Attach(parent *Node) error {
	return n.attach(parent, -1)
}

// AttachAt is Attach at a specific child position.
func (n *Node) AttachAt(parent *Node, i int) error {
	children := parent.Children()
	if i < 0 || i > len(children) {
		return fmt.Errorf("index %d of %d children: %w", i, len(children), domain.ErrChildIndex)
	}
	if i == len(children) {
		i = -1
	}
	return n.attach(parent, i)
}

func (n *Node) attach(parent *Node, i int) error {
	if n.el.Parent() != nil {
		return fmt.Errorf("node %s: %w", n.ID(), domain.ErrAlreadyAttached)
	}
	if parent.el == n.el || parent.IsDescendantOf(n) {
		return fmt.Errorf("node %s under %s: %w", n.ID(), parent.ID(), domain.ErrCycle)
	}

	if i < 0 {
		parent.el.AddChild(n.el)
	} else {
		parent.el.InsertChildAt(parent.Children()[i].el.Index(), n.el)
	}
	// A parent that itself hangs outside the document defers indexing
	// until its own subtree is attached.
	if parent.inDocument() {
		n.m.registerSubtree(n.el)
	}
	parent.touch()
	return nil
}

// inDocument reports whether the node sits below the map element, as
// opposed to hanging in a detached subtree.
func (n *Node) inDocument() bool {
	for el := n.el.Parent(); el != nil; el = el.Parent() {
		if el == n.m.root {
			return true
		}
	}
	return false
}

// Detach removes the node and its subtree from the map, releasing
// their ids. The subtree stays intact and can be attached again. The
// root node cannot be detached.
func (n *Node) Detach() error {
	parent := n.Parent()
	if parent == nil {
		return fmt.Errorf("node %s: %w", n.ID(), domain.ErrDetached)
	}

	n.m.releaseSubtree(n.el)
	parent.el.RemoveChild(n.el)
	parent.touch()
	return nil
}

// Delete removes the node and its subtree for good. Arrow links
// elsewhere in the map that pointed into the deleted subtree are
// reported but left in place.
func (n *Node) Delete() error {
	parent := n.Parent()
	if parent == nil {
		return fmt.Errorf("node %s: %w", n.ID(), domain.ErrDetached)
	}

	released := make(map[string]bool)
	for _, id := range n.m.releaseSubtree(n.el) {
		released[id] = true
	}
	parent.el.RemoveChild(n.el)
	parent.touch()

	for _, link := range n.m.doc.FindElements("//arrowlink") {
		dest := link.SelectAttrValue("DESTINATION", "")
		if released[dest] {
			owner := ""
			if p := link.Parent(); p != nil {
				owner = p.SelectAttrValue("ID", "")
			}
			logger.Warn("arrow link from node %s points at deleted node %s", owner, dest)
		}
	}
	return nil
}

// FindNodes searches the node's subtree, the node itself excluded.
func (n *Node) FindNodes(c domain.Criteria) ([]*Node, error) {
	pred, err := query.Compile(c)
	if err != nil {
		return nil, err
	}

	var out []*Node
	walkNodeElements(n.el, func(el *etree.Element) {
		node := &Node{m: n.m, el: el}
		if pred.Matches(node.fields()) {
			out = append(out, node)
		}
	})
	return out, nil
}

// FindChildren searches the node's direct children only.
func (n *Node) FindChildren(c domain.Criteria) ([]*Node, error) {
	pred, err := query.Compile(c)
	if err != nil {
		return nil, err
	}

	var out []*Node
	for _, child := range n.Children() {
		if pred.Matches(child.fields()) {
			out = append(out, child)
		}
	}
	return out, nil
}
