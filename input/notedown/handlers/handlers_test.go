package handlers

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/notedown/engine/dom"
	"github.com/npillmayer/notedown/input/notedown"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) *dom.Document {
	doc, err := notedown.NewParser(Default(), "test.nd").Parse(strings.NewReader(input))
	require.NoError(t, err)
	return doc
}

func kinds(n *dom.Node) []dom.Kind {
	var k []dom.Kind
	for _, ch := range n.Children() {
		k = append(k, ch.Kind)
	}
	return k
}

func find(doc *dom.Document, k dom.Kind) []*dom.Node {
	var found []*dom.Node
	doc.Root.Walk(func(n *dom.Node) bool {
		if n.Kind == k {
			found = append(found, n)
		}
		return true
	})
	return found
}

func dump(n *dom.Node) string {
	var b strings.Builder
	var rec func(n *dom.Node)
	rec = func(n *dom.Node) {
		b.WriteString("(" + n.String())
		if aux := n.Aux(); aux != nil {
			b.WriteString(" aux:")
			rec(aux)
		}
		for _, ch := range n.Children() {
			b.WriteByte(' ')
			rec(ch)
		}
		b.WriteByte(')')
	}
	rec(n)
	return b.String()
}

// --- Blocks ----------------------------------------------------------------

func TestHeading(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.input")
	defer teardown()
	//
	doc := parse(t, "# Hello *World*\n###\n")
	require.Equal(t, []dom.Kind{dom.KindHeading, dom.KindHeading}, kinds(doc.Root))
	h := doc.Root.FirstChild()
	assert.Equal(t, 1, h.Level)
	assert.Equal(t, "Hello World", h.LiteralText())
	assert.Equal(t, []dom.Kind{dom.KindText, dom.KindEmphasis}, kinds(h.Aux()))
	empty := doc.Root.LastChild()
	assert.Equal(t, 3, empty.Level)
	assert.Nil(t, empty.Aux())
}

func TestParagraphLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.input")
	defer teardown()
	//
	doc := parse(t, "  one\ntwo  \nthree\n\nfour")
	require.Equal(t, []dom.Kind{dom.KindParagraph, dom.KindParagraph}, kinds(doc.Root))
	p := doc.Root.FirstChild()
	require.Equal(t, 3, p.ChildCount())
	second, _ := p.Child(1)
	assert.Equal(t, []dom.Kind{dom.KindText, dom.KindLineBreak}, kinds(second))
	assert.Equal(t, "onetwothree", p.LiteralText())
	assert.Equal(t, "four", doc.Root.LastChild().LiteralText())
}

func TestListItemsAreSiblings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.input")
	defer teardown()
	//
	doc := parse(t, "+ Item\n+ Item2\n")
	require.Equal(t, []dom.Kind{dom.KindUnorderedList}, kinds(doc.Root))
	list := doc.Root.FirstChild()
	require.Equal(t, []dom.Kind{dom.KindListItem, dom.KindListItem}, kinds(list))
	for i, item := range list.Children() {
		assert.Equal(t, []dom.Kind{dom.KindParagraph}, kinds(item), "item %d", i)
		assert.Equal(t, i+1, item.Level)
	}
	second, _ := list.Child(1)
	assert.Equal(t, "Item2", second.FirstChild().LiteralText())
}

func TestNestedList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.input")
	defer teardown()
	//
	doc := parse(t, "- a\n  - b\n\n  more a\n- c\n")
	require.Equal(t, []dom.Kind{dom.KindUnorderedList}, kinds(doc.Root))
	list := doc.Root.FirstChild()
	require.Equal(t, 2, list.ChildCount())
	first := list.FirstChild()
	assert.Equal(t, []dom.Kind{dom.KindParagraph, dom.KindUnorderedList, dom.KindParagraph}, kinds(first))
	assert.Equal(t, "more a", first.LastChild().LiteralText())
	assert.Equal(t, "c", list.LastChild().FirstChild().LiteralText())
}

func TestOrderedList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.input")
	defer teardown()
	//
	doc := parse(t, "3. a\n4. b\n- c\n")
	require.Equal(t, []dom.Kind{dom.KindOrderedList, dom.KindUnorderedList}, kinds(doc.Root))
	ol := doc.Root.FirstChild()
	assert.Equal(t, 3, ol.Level)
	require.Equal(t, 2, ol.ChildCount())
	assert.Equal(t, 3, ol.FirstChild().Level)
	assert.Equal(t, 4, ol.LastChild().Level)
}

func TestBlockquote(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.input")
	defer teardown()
	//
	doc := parse(t, "> a\n> b\n\n>> centered\n")
	require.Equal(t, []dom.Kind{dom.KindBlockquote, dom.KindBlockquote}, kinds(doc.Root))
	q := doc.Root.FirstChild()
	assert.False(t, q.Flag)
	require.Equal(t, []dom.Kind{dom.KindParagraph}, kinds(q))
	assert.Equal(t, 2, q.FirstChild().ChildCount())
	assert.True(t, doc.Root.LastChild().Flag)
}

func TestInfoBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.input")
	defer teardown()
	//
	doc := parse(t, ">note> Take care\n  really\n\n>:warning:> Danger\n")
	require.Equal(t, []dom.Kind{dom.KindInfoBlock, dom.KindInfoBlock}, kinds(doc.Root))
	info := doc.Root.FirstChild()
	assert.Equal(t, "note", info.Text)
	assert.False(t, info.Flag)
	assert.Equal(t, "Take carereally", info.FirstChild().LiteralText())
	sym := doc.Root.LastChild()
	assert.Equal(t, "warning", sym.Text)
	assert.True(t, sym.Flag)
}

func TestHRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.input")
	defer teardown()
	//
	doc := parse(t, "a\n\n-----\nb")
	assert.Equal(t, []dom.Kind{dom.KindParagraph, dom.KindHRule, dom.KindParagraph}, kinds(doc.Root))
}

func TestCodeBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.input")
	defer teardown()
	//
	doc := parse(t, "```go {.x}\nfunc main() {}\n\n  \\*raw*\n```\nafter\n")
	require.Equal(t, []dom.Kind{dom.KindCodeBlock, dom.KindParagraph}, kinds(doc.Root))
	code := doc.Root.FirstChild()
	assert.Equal(t, "go", code.Text)
	assert.Equal(t, []string{"func main() {}", "", `  \*raw*`}, code.Lines)
	require.NotNil(t, code.Aux())
	cc := code.Aux().FirstChild()
	assert.Equal(t, dom.KindCommandContainer, cc.Kind)
	assert.True(t, cc.Cmd.HasClass("x"))
}

func TestUnclosedCodeBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.input")
	defer teardown()
	//
	doc := parse(t, "```\nabc\n")
	require.Equal(t, []dom.Kind{dom.KindParagraph}, kinds(doc.Root))
	assert.Equal(t, "abc", doc.Root.FirstChild().LiteralText())
}

func TestIdDefinitions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.input")
	defer teardown()
	//
	doc := parse(t, "%(home): https://example.org .nav\n%{shared}: .global #x\n%<sig>: Regards\n  Me\n")
	defs := find(doc, dom.KindIdDefinition)
	require.Len(t, defs, 3)
	assert.Equal(t, "home", defs[0].Text)
	assert.Equal(t, byte('('), defs[0].Symbol)
	assert.Equal(t, "https://example.org", defs[0].URL)
	assert.True(t, defs[0].Cmd.HasClass("nav"))
	assert.Equal(t, byte('{'), defs[1].Symbol)
	assert.Equal(t, "shared", defs[1].Cmd.RefName)
	assert.True(t, defs[1].Cmd.HasClass("global"))
	assert.Equal(t, "x", defs[1].Cmd.ID)
	assert.Equal(t, byte('<'), defs[2].Symbol)
	require.Equal(t, []dom.Kind{dom.KindParagraph}, kinds(defs[2]))
	assert.Equal(t, "RegardsMe", defs[2].FirstChild().LiteralText())
}

func TestFootnoteAndCollapsible(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.input")
	defer teardown()
	//
	doc := parse(t, "^1: A note\n\n+-- Summary\n  Body\n\n++- Open\n")
	require.Equal(t, []dom.Kind{dom.KindFootnoteBlock, dom.KindCollapsible, dom.KindCollapsible}, kinds(doc.Root))
	fn := doc.Root.FirstChild()
	assert.Equal(t, "1", fn.Text)
	assert.Equal(t, "A note", fn.FirstChild().LiteralText())
	closed, _ := doc.Root.Child(1)
	assert.False(t, closed.Flag)
	assert.Equal(t, "Summary", closed.LiteralText())
	assert.Equal(t, []dom.Kind{dom.KindParagraph}, kinds(closed))
	assert.True(t, doc.Root.LastChild().Flag)
}

// --- Inlines ---------------------------------------------------------------

func TestEmphasis(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.input")
	defer teardown()
	//
	doc := parse(t, "a *b* /c/ _d_ ~e~ =f= `g *h*`\n")
	var syms []byte
	for _, em := range find(doc, dom.KindEmphasis) {
		syms = append(syms, em.Symbol)
	}
	assert.Equal(t, "*/_~=`", string(syms))
	code := find(doc, dom.KindEmphasis)[5]
	assert.Equal(t, "g *h*", code.LiteralText())
	//
	doc = parse(t, "a *b\n\n2 * 3\n")
	assert.Empty(t, find(doc, dom.KindEmphasis))
	require.Equal(t, 2, doc.Root.ChildCount())
	assert.Equal(t, "a *b", doc.Root.FirstChild().LiteralText())
	assert.Equal(t, "2 * 3", doc.Root.LastChild().LiteralText())
}

func TestModifiers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.input")
	defer teardown()
	//
	doc := parse(t, "[Go](https://go.dev .ext) [pic]!(img.png) [n]^(1) [Intro]#{.x} [x]<%sig> [y]{.red}\n")
	link := find(doc, dom.KindLink)
	require.Len(t, link, 1)
	assert.Equal(t, "https://go.dev", link[0].URL)
	assert.True(t, link[0].Cmd.HasClass("ext"))
	assert.Equal(t, "Go", link[0].LiteralText())
	img := find(doc, dom.KindImage)
	require.Len(t, img, 1)
	assert.Equal(t, "img.png", img[0].URL)
	fn := find(doc, dom.KindFootnoteRef)
	require.Len(t, fn, 1)
	assert.Equal(t, "1", fn[0].URL)
	hl := find(doc, dom.KindHeadingLink)
	require.Len(t, hl, 1)
	assert.Equal(t, "intro", hl[0].URL)
	assert.True(t, hl[0].Cmd.HasClass("x"))
	repl := find(doc, dom.KindReplace)
	require.Len(t, repl, 1)
	assert.Equal(t, "sig", repl[0].URL)
	styled := find(doc, dom.KindStyled)
	require.Len(t, styled, 1)
	assert.True(t, styled[0].Cmd.HasClass("red"))
	assert.Empty(t, find(doc, dom.KindTask))
}

func TestTasksEmojiCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.input")
	defer teardown()
	//
	doc := parse(t, "[ ] todo [x] done\nHi :smile: at 10:30 {.note #p1}\n")
	tasks := find(doc, dom.KindTask)
	require.Len(t, tasks, 2)
	assert.Equal(t, byte(' '), tasks[0].Symbol)
	assert.Equal(t, byte('x'), tasks[1].Symbol)
	emoji := find(doc, dom.KindEmoji)
	require.Len(t, emoji, 1)
	assert.Equal(t, "smile", emoji[0].Text)
	cc := find(doc, dom.KindCommandContainer)
	require.Len(t, cc, 1)
	assert.Equal(t, "p1", cc[0].Cmd.ID)
	assert.True(t, cc[0].Cmd.HasClass("note"))
	assert.Contains(t, doc.Root.FirstChild().LiteralText(), "10:30")
}

func TestEscapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.input")
	defer teardown()
	//
	doc := parse(t, "\\*not bold\\*\n")
	assert.Empty(t, find(doc, dom.KindEmphasis))
	assert.Equal(t, "*not bold*", doc.Root.FirstChild().LiteralText())
}

// --- Parser properties -----------------------------------------------------

const sample = `# Title {#top}

Some *text* with [a link](https://example.org) and :smile:.

- one
  1. nested
- two [x] done

> quoted
>note> info

%{shared}: .global
^fn: footnote
`

func TestParsingIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.input")
	defer teardown()
	//
	first := dump(parse(t, sample).Root)
	second := dump(parse(t, sample).Root)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("parses differ (-first +second):\n%s", diff)
	}
}

func TestTerminatesOnSymbolSoup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.input")
	defer teardown()
	//
	for _, input := range []string{
		"*[{(<%^#>:!`~=_/\"+-)}]*\n**]]\n%<x\n```\n",
		"[[[[\n{{{{\n::::\n>>>\n%\n^\n+\n++\n1.",
		"[a](b\n[a]!x\n[a]<%x\n[a]{x\n{x\n",
		"\\\n\\\\\n\\",
	} {
		doc := parse(t, input)
		assert.NotNil(t, doc.Root, "input %q", input)
	}
}
