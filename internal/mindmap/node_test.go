package mindmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treeline-labs/freemap-cli/internal/core/domain"
)

func TestSetID(t *testing.T) {
	m := loadMap(t, fixtureMap)
	n, err := m.NodeByID("ID_104")
	require.NoError(t, err)

	require.NoError(t, n.SetID("ID_777"))
	assert.Equal(t, "ID_777", n.ID())

	_, err = m.NodeByID("ID_104")
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	renamed, err := m.NodeByID("ID_777")
	require.NoError(t, err)
	assert.Equal(t, "nested Test", renamed.PlainText())

	assert.ErrorIs(t, n.SetID("not-an-id"), domain.ErrInvalidID)
	assert.ErrorIs(t, n.SetID("ID_101"), domain.ErrInvalidID)
	// Re-assigning a node's own id is fine.
	assert.NoError(t, n.SetID("ID_777"))
}

func TestSetID_DetachedNodeStaysOutOfIndex(t *testing.T) {
	m := New()
	n := m.NewNode("floating")

	require.NoError(t, n.SetID("ID_424242"))
	assert.Equal(t, "ID_424242", n.ID())

	// Not resolvable until the node hangs in the document.
	_, err := m.NodeByID("ID_424242")
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)

	// And the id survives the attach, without renumbering.
	require.NoError(t, n.Attach(m.Root()))
	assert.Equal(t, "ID_424242", n.ID())
	found, err := m.NodeByID("ID_424242")
	require.NoError(t, err)
	assert.Equal(t, "floating", found.PlainText())
}

func TestAttach_DetachedParentDefersIndexing(t *testing.T) {
	m := New()
	outer := m.NewNode("outer")
	inner := m.NewNode("inner")

	require.NoError(t, inner.Attach(outer))
	_, err := m.NodeByID(inner.ID())
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)

	require.NoError(t, outer.Attach(m.Root()))
	_, err = m.NodeByID(outer.ID())
	assert.NoError(t, err)
	_, err = m.NodeByID(inner.ID())
	assert.NoError(t, err)
}

func TestPlainText_Attribute(t *testing.T) {
	m := loadMap(t, fixtureMap)

	assert.Equal(t, "root", m.Root().PlainText())
}

func TestPlainText_RichCore(t *testing.T) {
	m := loadMap(t, `<map version="freeplane 1.11.5"><node ID="ID_1"><richcontent TYPE="NODE"><html><head/><body><p>rich <b>core</b></p><p>text</p></body></html></richcontent></node></map>`)

	assert.Equal(t, "rich core\ntext", m.Root().PlainText())
}

func TestSetPlainText_ReplacesRichCore(t *testing.T) {
	m := loadMap(t, `<map version="freeplane 1.11.5"><node ID="ID_1"><richcontent TYPE="NODE"><html><head/><body><p>rich</p></body></html></richcontent></node></map>`)

	n := m.Root()
	n.SetPlainText("plain now")

	assert.Equal(t, "plain now", n.PlainText())
	assert.Nil(t, n.richContent("NODE"))
}

func TestSetPlainText_UpdatesModified(t *testing.T) {
	m := New()
	n := m.Root()
	baseline := time.Now().Add(-time.Hour)
	n.SetModifiedAt(baseline)

	n.SetPlainText("edited")

	assert.True(t, n.ModifiedAt().After(baseline))
}

func TestNotesAndDetails(t *testing.T) {
	m := New()
	n := m.Root()

	n.SetNotes("a note\nwith two lines")
	n.SetDetails("some detail")

	assert.Equal(t, "a note\nwith two lines", n.Notes())
	assert.Equal(t, "some detail", n.Details())

	n.SetNotes("")
	assert.Equal(t, "", n.Notes())
	assert.Equal(t, "some detail", n.Details())
}

func TestLink(t *testing.T) {
	m := New()
	n := m.Root()

	n.SetLink("https://example.org")
	assert.Equal(t, "https://example.org", n.Link())
	assert.False(t, n.HasInternalLink())

	n.SetLink("")
	assert.Equal(t, "", n.Link())
}

func TestFollowLink_Internal(t *testing.T) {
	m := loadMap(t, fixtureMap)
	n, err := m.NodeByID("ID_102")
	require.NoError(t, err)
	require.True(t, n.HasInternalLink())

	target, err := n.FollowLink()

	require.NoError(t, err)
	assert.Equal(t, "ID_101", target.ID())
}

func TestFollowLink_External(t *testing.T) {
	m := New()
	m.Root().SetLink("https://example.org")

	_, err := m.Root().FollowLink()

	assert.Error(t, err)
}

func TestCoreLink(t *testing.T) {
	m := loadMap(t, fixtureMap)
	n, err := m.NodeByID("ID_103")
	require.NoError(t, err)
	n.SetPlainText("= ID_101.text")

	assert.Equal(t, "ID_101", n.CoreLink())
	assert.Equal(t, "Test", n.VisibleText())

	target, err := n.FollowCoreLink()
	require.NoError(t, err)
	assert.Equal(t, "ID_101", target.ID())
}

func TestVisibleText_PlainCore(t *testing.T) {
	m := loadMap(t, fixtureMap)

	assert.Equal(t, "root", m.Root().VisibleText())
}

func TestIcons(t *testing.T) {
	m := New()
	n := m.Root()

	n.AddIcon(domain.IconBookmark)
	n.AddIcon(domain.IconExclamation)

	assert.Equal(t, []string{domain.IconBookmark, domain.IconExclamation}, n.Icons())
	assert.True(t, n.RemoveIcon(domain.IconBookmark))
	assert.False(t, n.RemoveIcon(domain.IconBookmark))
	assert.Equal(t, []string{domain.IconExclamation}, n.Icons())
}

func TestAttributes_DuplicateNames(t *testing.T) {
	m := New()
	n := m.Root()

	n.AddAttribute("tag", "a")
	n.AddAttribute("tag", "b")

	assert.Len(t, n.Attributes(), 2)

	// Lookup sees the last occurrence.
	v, ok := n.Attribute("tag")
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	// Update rewrites the first occurrence.
	n.SetAttribute("tag", "c")
	attrs := n.Attributes()
	assert.Equal(t, "c", attrs[0].Value)
	assert.Equal(t, "b", attrs[1].Value)

	assert.Equal(t, 2, n.RemoveAttribute("tag"))
	assert.Empty(t, n.Attributes())
}

func TestSetAttribute_AppendsWhenNew(t *testing.T) {
	m := New()
	n := m.Root()

	n.SetAttribute("status", "open")

	v, ok := n.Attribute("status")
	assert.True(t, ok)
	assert.Equal(t, "open", v)
}

func TestSetStyle_RequiresRegisteredName(t *testing.T) {
	m := New()
	require.NoError(t, m.AddStyle(domain.Style{Name: "Important"}))
	n := m.Root()

	require.NoError(t, n.SetStyle("Important"))
	assert.Equal(t, "Important", n.Style())

	err := n.SetStyle("Unknown")
	assert.ErrorIs(t, err, domain.ErrStyleNotFound)
	assert.Equal(t, "Important", n.Style())

	require.NoError(t, n.SetStyle(""))
	assert.Equal(t, "", n.Style())
}

func TestSetStyleForce(t *testing.T) {
	m := New()
	n := m.Root()

	n.SetStyleForce("NotRegistered")

	assert.Equal(t, "NotRegistered", n.Style())
}

func TestTimestamps(t *testing.T) {
	m := New()
	n := m.Root()

	assert.False(t, n.CreatedAt().IsZero())
	assert.False(t, n.ModifiedAt().IsZero())

	past := time.UnixMilli(1136239445000)
	n.SetCreatedAt(past)
	assert.Equal(t, past, n.CreatedAt())
}

func TestTimestamps_AbsentAttributes(t *testing.T) {
	m := loadMap(t, `<map version="freeplane 1.11.5"><node ID="ID_1"/></map>`)

	assert.True(t, m.Root().CreatedAt().IsZero())
	assert.True(t, m.Root().ModifiedAt().IsZero())
}

func TestChildren(t *testing.T) {
	m := loadMap(t, fixtureMap)
	root := m.Root()

	require.True(t, root.HasChildren())
	children := root.Children()
	require.Len(t, children, 3)
	assert.Equal(t, "ID_101", children[0].ID())

	second, err := root.ChildAt(1)
	require.NoError(t, err)
	assert.Equal(t, "ID_102", second.ID())

	_, err = root.ChildAt(3)
	assert.ErrorIs(t, err, domain.ErrChildIndex)
	_, err = root.ChildAt(-1)
	assert.ErrorIs(t, err, domain.ErrChildIndex)
}

func TestSiblingsAndIndex(t *testing.T) {
	m := loadMap(t, fixtureMap)
	first, err := m.NodeByID("ID_101")
	require.NoError(t, err)

	assert.Equal(t, 0, first.Index())
	next := first.Next()
	require.NotNil(t, next)
	assert.Equal(t, "ID_102", next.ID())
	assert.Nil(t, first.Previous())

	prev := next.Previous()
	require.NotNil(t, prev)
	assert.Equal(t, "ID_101", prev.ID())

	assert.Equal(t, -1, m.Root().Index())
	assert.Nil(t, m.Root().Next())
}

func TestParentAndRoot(t *testing.T) {
	m := loadMap(t, fixtureMap)
	nested, err := m.NodeByID("ID_104")
	require.NoError(t, err)

	assert.False(t, nested.IsRoot())
	assert.Equal(t, "ID_103", nested.Parent().ID())
	assert.True(t, m.Root().IsRoot())
	assert.Nil(t, m.Root().Parent())
}

func TestIsDescendantOf(t *testing.T) {
	m := loadMap(t, fixtureMap)
	root := m.Root()
	nested, err := m.NodeByID("ID_104")
	require.NoError(t, err)
	sibling, err := m.NodeByID("ID_101")
	require.NoError(t, err)

	assert.True(t, nested.IsDescendantOf(root))
	assert.False(t, root.IsDescendantOf(nested))
	assert.False(t, nested.IsDescendantOf(sibling))
}

func TestAddChild(t *testing.T) {
	m := New()
	root := m.Root()

	child := root.AddChild("first")

	assert.Equal(t, "first", child.PlainText())
	assert.Equal(t, root.ID(), child.Parent().ID())

	found, err := m.NodeByID(child.ID())
	require.NoError(t, err)
	assert.Equal(t, "first", found.PlainText())
}

func TestAddChildAt(t *testing.T) {
	m := New()
	root := m.Root()
	root.AddChild("a")
	root.AddChild("c")

	b, err := root.AddChildAt(1, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, b.Index())

	end, err := root.AddChildAt(3, "d")
	require.NoError(t, err)
	assert.Equal(t, 3, end.Index())

	_, err = root.AddChildAt(9, "x")
	assert.ErrorIs(t, err, domain.ErrChildIndex)
}

func TestAddSibling(t *testing.T) {
	m := New()
	root := m.Root()
	a := root.AddChild("a")
	root.AddChild("c")

	b, err := a.AddSibling("b")
	require.NoError(t, err)
	assert.Equal(t, 1, b.Index())

	_, err = root.AddSibling("x")
	assert.ErrorIs(t, err, domain.ErrDetached)
}

func TestAttach_Detached(t *testing.T) {
	m := New()
	root := m.Root()
	n := m.NewNode("floating")

	require.NoError(t, n.Attach(root))

	assert.Equal(t, root.ID(), n.Parent().ID())
	_, err := m.NodeByID(n.ID())
	assert.NoError(t, err)
}

func TestAttach_AlreadyAttached(t *testing.T) {
	m := New()
	root := m.Root()
	child := root.AddChild("child")

	err := child.Attach(root)

	assert.ErrorIs(t, err, domain.ErrAlreadyAttached)
}

func TestAttach_CycleRefused(t *testing.T) {
	m := New()
	outer := m.NewNode("outer")
	inner := m.NewNode("inner")
	require.NoError(t, inner.Attach(outer))

	assert.ErrorIs(t, outer.Attach(inner), domain.ErrCycle)
	assert.ErrorIs(t, outer.Attach(outer), domain.ErrCycle)
}

func TestDetach_ReleasesAndReattaches(t *testing.T) {
	m := loadMap(t, fixtureMap)
	branch, err := m.NodeByID("ID_103")
	require.NoError(t, err)

	require.NoError(t, branch.Detach())

	_, err = m.NodeByID("ID_103")
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	_, err = m.NodeByID("ID_104")
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)

	// The subtree is intact and can come back, ids included.
	require.NoError(t, branch.Attach(m.Root()))
	nested, err := m.NodeByID("ID_104")
	require.NoError(t, err)
	assert.Equal(t, "nested Test", nested.PlainText())
}

func TestDetach_Root(t *testing.T) {
	m := New()

	assert.ErrorIs(t, m.Root().Detach(), domain.ErrDetached)
}

func TestDelete_PurgesIndex(t *testing.T) {
	m := loadMap(t, fixtureMap)
	branch, err := m.NodeByID("ID_103")
	require.NoError(t, err)

	require.NoError(t, branch.Delete())

	_, err = m.NodeByID("ID_103")
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	_, err = m.NodeByID("ID_104")
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	assert.Len(t, m.Root().Children(), 2)
}

func TestDelete_ReportsDanglingArrowLinks(t *testing.T) {
	buf := captureLog(t)
	m := loadMap(t, fixtureMap)
	source, err := m.NodeByID("ID_101")
	require.NoError(t, err)
	target, err := m.NodeByID("ID_104")
	require.NoError(t, err)
	source.AddArrowLink(target)

	require.NoError(t, err)
	branch, err := m.NodeByID("ID_103")
	require.NoError(t, err)
	require.NoError(t, branch.Delete())

	assert.Contains(t, buf.String(), "ID_104")

	// The arrow element is reported, not removed.
	assert.NotNil(t, m.doc.FindElement("//arrowlink[@DESTINATION='ID_104']"))
}

func TestArrowLinks(t *testing.T) {
	m := loadMap(t, fixtureMap)
	source, err := m.NodeByID("ID_101")
	require.NoError(t, err)
	target, err := m.NodeByID("ID_102")
	require.NoError(t, err)

	source.AddArrowLink(target)

	links := source.ArrowLinks()
	require.Len(t, links, 1)
	assert.Equal(t, "ID_102", links[0].ID())

	linked := target.ArrowLinked()
	require.Len(t, linked, 1)
	assert.Equal(t, "ID_101", linked[0].ID())

	assert.Equal(t, 1, source.DelArrowLink(target))
	assert.Empty(t, source.ArrowLinks())
}

func TestArrowLinks_SkipsDangling(t *testing.T) {
	buf := captureLog(t)
	m := loadMap(t, `<map version="freeplane 1.11.5"><node ID="ID_1"><arrowlink DESTINATION="ID_999"/></node></map>`)

	links := m.Root().ArrowLinks()

	assert.Empty(t, links)
	assert.Contains(t, buf.String(), "ID_999")
}

func TestAddArrowLink_DefaultStyling(t *testing.T) {
	m := New()
	root := m.Root()
	child := root.AddChild("child")

	root.AddArrowLink(child)

	link := root.el.SelectElement("arrowlink")
	require.NotNil(t, link)
	assert.Equal(t, "CUBIC_CURVE", link.SelectAttrValue("SHAPE", ""))
	assert.Equal(t, "DEFAULT", link.SelectAttrValue("ENDARROW", ""))
	assert.Equal(t, child.ID(), link.SelectAttrValue("DESTINATION", ""))
}

func TestFindNodes_SubtreeExcludesSelf(t *testing.T) {
	m := loadMap(t, fixtureMap)
	branch, err := m.NodeByID("ID_103")
	require.NoError(t, err)

	nodes, err := branch.FindNodes(domain.Criteria{Core: "TEST", CaseInsensitive: true})

	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "ID_104", nodes[0].ID())
}

func TestFindChildren_DirectOnly(t *testing.T) {
	m := loadMap(t, fixtureMap)

	nodes, err := m.Root().FindChildren(domain.Criteria{Core: "test", CaseInsensitive: true})

	require.NoError(t, err)
	require.Len(t, nodes, 3)
}

func TestImage(t *testing.T) {
	m := New()
	n := m.Root()

	n.SetImage("/pics/chart.png", "0.5")
	assert.Equal(t, "/pics/chart.png", n.ImagePath())
	assert.Equal(t, "0.5", n.ImageSize())

	n.SetImage(`C:\pics\chart.png`, "")
	assert.Equal(t, "C:/pics/chart.png", n.ImagePath())
	assert.Equal(t, "1", n.ImageSize())

	n.SetImage("chart.png", "2")
	assert.Equal(t, "./chart.png", n.ImagePath())
}

func TestImage_AbsentHook(t *testing.T) {
	m := New()

	assert.Equal(t, "", m.Root().ImagePath())
	assert.Equal(t, "", m.Root().ImageSize())
}
