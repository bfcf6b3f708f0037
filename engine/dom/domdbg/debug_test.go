package domdbg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/notedown/engine/dom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.engine")
	defer teardown()
	//
	doc := dom.NewDocument("g.nd")
	h := doc.Tree.NewNode(dom.KindHeading)
	h.Level = 1
	h.Cmd.ID = "title"
	txt := doc.Tree.NewNode(dom.KindInlineText)
	txt.AppendChild(doc.Tree.NewText("Title"))
	h.SetAux(txt)
	doc.Root.AppendChild(h)
	//
	var buf bytes.Buffer
	err := ToGraphViz(doc, &buf, tracing.Select("notedown.engine"))
	require.NoError(t, err)
	dot := buf.String()
	assert.True(t, strings.HasPrefix(dot, "digraph g {"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	assert.Contains(t, dot, "heading 1")
	assert.Contains(t, dot, "#title")
	assert.Contains(t, dot, "style=dashed", "auxiliary edges are dashed")
	assert.Equal(t, 3, strings.Count(dot, "->"))
}
