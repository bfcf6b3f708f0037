package htmlwriter

import (
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/notedown/engine/dom"
	"github.com/npillmayer/notedown/engine/highlight"
	"github.com/npillmayer/notedown/engine/resolve"
	"github.com/npillmayer/notedown/input/notedown"
	"github.com/npillmayer/notedown/input/notedown/handlers"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type emojiMap map[string]string

func (m emojiMap) Lookup(code string) (string, bool) {
	e, ok := m[code]
	return e, ok
}

// compile parses, resolves and renders a single document, and returns the
// output re-parsed as HTML.
func compile(t *testing.T, input string, emoji resolve.EmojiTable) (*html.Node, string) {
	doc, err := notedown.NewParser(handlers.Default(), "test.nd").Parse(strings.NewReader(input))
	require.NoError(t, err)
	ctx := resolve.NewContext([]*dom.Document{doc}, nil, emoji)
	ctx.Run()
	var out strings.Builder
	require.NoError(t, New(ctx, highlight.NewEngine()).Render(&out, doc))
	t.Logf("HTML = %s", out.String())
	root, err := html.Parse(strings.NewReader(out.String()))
	require.NoError(t, err)
	return root, out.String()
}

func all(root *html.Node, sel string) []*html.Node {
	return cascadia.MustCompile(sel).MatchAll(root)
}

func first(t *testing.T, root *html.Node, sel string) *html.Node {
	n := cascadia.MustCompile(sel).MatchFirst(root)
	require.NotNil(t, n, "no match for %q", sel)
	return n
}

func text(n *html.Node) string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return b.String()
}

func TestBlockCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.backend")
	defer teardown()
	//
	root, _ := compile(t, "{#foo .bar}\n\nText\n", nil)
	first(t, root, "p#foo.bar")
	assert.Len(t, all(root, "p"), 2)
}

func TestHeadings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.backend")
	defer teardown()
	//
	root, _ := compile(t, "# Intro\n\nSee [Intro]#{.x} and [Other]#{.x}\n", nil)
	h := first(t, root, "h1#intro")
	assert.Equal(t, "Intro", text(h))
	links := all(root, "a.nd-h-link")
	require.Len(t, links, 2)
	assert.Equal(t, "#intro", attr(links[0], "href"))
	assert.NotContains(t, attr(links[0], "class"), "nd-missing")
	assert.Contains(t, attr(links[1], "class"), "nd-missing")
	//
	_, out := compile(t, "## Trailing {.x}\n", nil)
	assert.Contains(t, out, `<h2 id="trailing" class="x">Trailing</h2>`)
}

func TestMissingReferences(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.backend")
	defer teardown()
	//
	root, _ := compile(t, "See [this]^(%missing) and [Gone](%missing).\n", nil)
	first(t, root, "a.nd-footnote.nd-missing")
	a := first(t, root, "a.nd-missing[href='%missing']")
	assert.Equal(t, "Gone", text(a))
}

func TestReplacementBlocks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.backend")
	defer teardown()
	//
	root, _ := compile(t, "%<sig>: Regards\n\n[a]<%sig>\n\n[b]<%sig>\n", nil)
	divs := all(root, "div")
	require.Len(t, divs, 2)
	for _, div := range divs {
		assert.NotContains(t, attr(div, "class"), "nd-missing")
		assert.Equal(t, "Regards", strings.TrimSpace(text(div)))
	}
}

func TestReplacementCycles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.backend")
	defer teardown()
	//
	root, _ := compile(t, "%<loop>: [x]<%loop>\n\n[y]<%loop>\n", nil)
	missing := all(root, "div.nd-missing")
	require.Len(t, missing, 1)
	assert.Equal(t, "x", text(missing[0]))
	assert.Len(t, all(root, "div"), 2)
	//
	root, _ = compile(t, "%<a>: [1]<%b>\n\n%<b>: [2]<%a>\n\n[go]<%a>\n", nil)
	missing = all(root, "div.nd-missing")
	require.Len(t, missing, 1)
	assert.Equal(t, "2", text(missing[0]))
	assert.Len(t, all(root, "div"), 3)
}

func TestLinksAndImages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.backend")
	defer teardown()
	//
	root, _ := compile(t, "%(home): https://example.org .nav\n\n[Start](%home) [pic]!(img.png)\n", nil)
	a := first(t, root, "a.nav")
	assert.Equal(t, "https://example.org", attr(a, "href"))
	assert.Equal(t, "Start", text(a))
	img := first(t, root, "img")
	assert.Equal(t, "img.png", attr(img, "src"))
	assert.Equal(t, "pic", attr(img, "alt"))
}

func TestTasks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.backend")
	defer teardown()
	//
	root, _ := compile(t, "- [x] done\n- [ ] open\n\n[ ] loose\n", nil)
	assert.Len(t, all(root, "li.nd-task-list-item input[type='checkbox']"), 2)
	assert.Len(t, all(root, "input[checked]"), 1)
	assert.Contains(t, text(root), "[ ] loose")
}

func TestOrderedListStart(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.backend")
	defer teardown()
	//
	root, _ := compile(t, "3. a\n4. b\n", nil)
	ol := first(t, root, "ol")
	assert.Equal(t, "3", attr(ol, "start"))
	assert.Len(t, all(root, "ol > li"), 2)
	root, _ = compile(t, "1. a\n", nil)
	assert.Equal(t, "", attr(first(t, root, "ol"), "start"))
}

func TestCodeHighlighting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.backend")
	defer teardown()
	//
	root, _ := compile(t, "```go\nreturn 42\n```\n", nil)
	code := first(t, root, "pre > code")
	assert.Equal(t, "return 42", text(code))
	kw := first(t, root, "code span.nd-syntax-keyword")
	assert.Equal(t, "return", text(kw))
	num := first(t, root, "code span.nd-syntax-number")
	assert.Equal(t, "42", text(num))
}

func TestEmoji(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.backend")
	defer teardown()
	//
	root, _ := compile(t, "Hi :smile: and :nope:\n", emojiMap{"smile": "😄"})
	p := first(t, root, "p")
	assert.Contains(t, text(p), "Hi 😄 and :nope:")
}

func TestContainers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.backend")
	defer teardown()
	//
	input := ">note> Take care\n\n^1: A note\n\n++- Open\n  Body\n\n> quoted\n"
	root, _ := compile(t, input, nil)
	first(t, root, "blockquote.note")
	fn := first(t, root, "div.nd-footnote[id='1']")
	assert.Contains(t, text(fn), "A note")
	details := first(t, root, "details[open]")
	assert.Equal(t, "Open", text(first(t, details, "summary")))
	assert.Contains(t, text(details), "Body")
	assert.Len(t, all(root, "blockquote"), 2)
}

func TestRenderPage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.backend")
	defer teardown()
	//
	var docs []*dom.Document
	for _, in := range []struct{ name, text string }{
		{"a.nd", "# A\n"},
		{"b.nd", "See [A]#{.x}\n"},
	} {
		doc, err := notedown.NewParser(handlers.Default(), in.name).Parse(strings.NewReader(in.text))
		require.NoError(t, err)
		docs = append(docs, doc)
	}
	ctx := resolve.NewContext(docs, nil, nil)
	ctx.Run()
	page := Page{
		Title: "Notes",
		Styles: []Stylesheet{
			{Href: "site.css"},
			{Href: "inline.css", Content: "p { color: red; }"},
		},
	}
	var out strings.Builder
	require.NoError(t, New(ctx, nil).RenderPage(&out, page, docs))
	s := out.String()
	t.Logf("HTML = %s", s)
	assert.True(t, strings.HasPrefix(s, "<!DOCTYPE html>"))
	assert.Contains(t, s, "<!-- a.nd -->")
	assert.Contains(t, s, "<!-- b.nd -->")
	assert.Less(t, strings.Index(s, "<!-- a.nd -->"), strings.Index(s, "<!-- b.nd -->"))
	root, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)
	assert.Equal(t, "Notes", text(first(t, root, "head > title")))
	first(t, root, "head > link[rel='stylesheet'][href='site.css']")
	assert.Contains(t, text(first(t, root, "head > style")), "color: red")
	a := first(t, root, "body a.nd-h-link")
	assert.NotContains(t, attr(a, "class"), "nd-missing")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
