package xpathadapter

import (
	"testing"

	"github.com/npillmayer/notedown/engine/dom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDoc() *dom.Document {
	doc := dom.NewDocument("x.nd")
	for i, title := range []string{"One", "Two"} {
		h := doc.Tree.NewNode(dom.KindHeading)
		h.Level = i + 1
		h.Cmd.ID = dom.MakeID(title)
		txt := doc.Tree.NewNode(dom.KindInlineText)
		txt.AppendChild(doc.Tree.NewText(title))
		h.SetAux(txt)
		doc.Root.AppendChild(h)
	}
	p := doc.Tree.NewNode(dom.KindParagraph)
	inline := doc.Tree.NewNode(dom.KindInlineText)
	inline.AppendChild(doc.Tree.NewText("some text"))
	p.AppendChild(inline)
	doc.Root.AppendChild(p)
	return doc
}

func TestSelectHeadings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.engine")
	defer teardown()
	//
	doc := buildDoc()
	nodes, err := Select(doc.Root, "/heading")
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "one", nodes[0].Cmd.ID)
	assert.Equal(t, "Two", nodes[1].LiteralText())
	//
	nodes, err = Select(doc.Root, "/heading[@level=2]")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "two", nodes[0].Cmd.ID)
}

func TestSelectDescendants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.engine")
	defer teardown()
	//
	doc := buildDoc()
	nodes, err := Select(doc.Root, "//paragraph")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, dom.KindParagraph, nodes[0].Kind)
	//
	nodes, err = Select(doc.Root, "//heading[@id='two']")
	require.NoError(t, err)
	assert.Len(t, nodes, 1)
}

func TestSelectInvalidExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.engine")
	defer teardown()
	//
	_, err := Select(buildDoc().Root, "///[")
	assert.Error(t, err)
}
