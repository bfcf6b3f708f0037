package dom

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeID(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.engine")
	defer teardown()
	//
	for _, c := range []struct{ in, out string }{
		{"Hello World", "hello-world"},
		{"  Hello   World  ", "hello-world"},
		{"1. Introduction", "introduction"},
		{"a - b", "a-b"},
		{"snake__case", "snake_case"},
		{"Über Änderungen", "uber-anderungen"},
		{"Version 2.0", "version-20"},
		{"!!!", ""},
	} {
		assert.Equal(t, c.out, MakeID(c.in), "MakeID(%q)", c.in)
	}
	assert.True(t, IsID("hello-world"))
	assert.False(t, IsID("1abc"))
	assert.False(t, IsID("a b"))
}

func TestArenaPointersAreStable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.engine")
	defer teardown()
	//
	tree := NewTree()
	first := tree.NewText("first")
	for i := 0; i < 3*chunkSize; i++ {
		tree.NewNode(KindText)
	}
	assert.Equal(t, "first", first.Text)
	assert.Same(t, first, tree.Node(first.ID()))
	assert.Equal(t, 3*chunkSize+1, tree.Size())
	assert.Nil(t, tree.Node(NoNode))
}

func TestParentAndContainingElement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.engine")
	defer teardown()
	//
	doc := NewDocument("test.nd")
	para := doc.Tree.NewNode(KindParagraph)
	inline := doc.Tree.NewNode(KindInlineText)
	em := doc.Tree.NewNode(KindEmphasis)
	content := doc.Tree.NewNode(KindInlineText)
	txt := doc.Tree.NewText("bold")
	content.AppendChild(txt)
	em.SetAux(content)
	inline.AppendChild(em)
	para.AppendChild(inline)
	doc.Root.AppendChild(para)
	//
	assert.Same(t, para, txt.ContainingElement())
	assert.Same(t, para, para.ContainingElement())
	assert.Same(t, em, content.Parent())
	assert.Same(t, doc, txt.Document())
	assert.Equal(t, "bold", para.LiteralText())
	//
	orphan := doc.Tree.NewText("orphan")
	assert.Nil(t, orphan.Document())
	assert.Nil(t, orphan.ContainingElement())
}

func TestEmptiness(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.engine")
	defer teardown()
	//
	tree := NewTree()
	para := tree.NewNode(KindParagraph)
	inline := tree.NewNode(KindInlineText)
	cc := tree.NewNode(KindCommandContainer)
	cc.Cmd.Parse("#foo .bar")
	inline.AppendChild(cc)
	para.AppendChild(inline)
	assert.True(t, cc.IsEmpty())
	assert.True(t, cc.CanConsume())
	assert.True(t, para.IsEmpty())
	//
	gen := tree.NewNode(KindCommandContainer)
	gen.Cmd.Parse("$now")
	assert.True(t, gen.IsEmpty())
	assert.False(t, gen.CanConsume(), "generators produce content")
	//
	def := tree.NewNode(KindIdDefinition)
	assert.True(t, def.IsEmpty())
	assert.False(t, def.CanConsume())
	//
	inline.AppendChild(tree.NewText("x"))
	assert.False(t, para.IsEmpty())
	assert.False(t, tree.NewNode(KindHRule).IsEmpty())
}

func TestInsertChildAndWalk(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.engine")
	defer teardown()
	//
	tree := NewTree()
	list := tree.NewNode(KindUnorderedList)
	a, b, c := tree.NewNode(KindListItem), tree.NewNode(KindListItem), tree.NewNode(KindListItem)
	list.AppendChild(a).AppendChild(c)
	list.InsertChildAt(1, b)
	require.Equal(t, 3, list.ChildCount())
	ch, ok := list.Child(1)
	require.True(t, ok)
	assert.Same(t, b, ch)
	assert.Same(t, a, list.FirstChild())
	assert.Same(t, c, list.LastChild())
	cnt := 0
	list.Walk(func(*Node) bool { cnt++; return true })
	assert.Equal(t, 4, cnt)
}

func TestRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.engine")
	defer teardown()
	//
	doc := NewDocument("a.nd")
	h := doc.Tree.NewNode(KindHeading)
	doc.Register(Key(TagHeading, "intro"), h)
	n, ok := doc.Lookup("#intro")
	require.True(t, ok)
	assert.Same(t, h, n)
	_, ok = doc.Lookup("^intro")
	assert.False(t, ok)
	assert.Equal(t, 1, doc.RegistrySize())
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "heading", KindHeading.String())
	assert.Equal(t, "inline-text", KindInlineText.String())
	assert.Equal(t, "collapsible", KindCollapsible.String())
	assert.Equal(t, "document", KindDocument.String())
	assert.Equal(t, int(kindSentinel), len(kindNames))
	for k := KindNone; k < kindSentinel; k++ {
		assert.NotContains(t, k.String(), "kind(", "kind %d has no name", k)
	}
	assert.True(t, KindTask.IsInline())
	assert.True(t, KindDocument.IsBlock())
	assert.False(t, KindInlineText.IsBlock())
	assert.True(t, KindStyled.IsModifier())
}
