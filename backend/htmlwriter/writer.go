package htmlwriter

import (
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/notedown/core"
	"github.com/npillmayer/notedown/engine/command"
	"github.com/npillmayer/notedown/engine/dom"
	"github.com/npillmayer/notedown/engine/highlight"
	"golang.org/x/net/html"
)

// Registry answers look-ups of registered nodes, with keys as described
// for dom.Key. *resolve.Context is a Registry.
type Registry interface {
	Lookup(key string) (*dom.Node, bool)
}

// Highlighters hands out syntax highlighters by language name.
// *highlight.Engine is a Highlighters.
type Highlighters interface {
	Highlighter(lang string) (highlight.Func, bool)
}

// Writer translates document trees to HTML. A Writer must not be used
// from more than one goroutine at a time.
type Writer struct {
	registry Registry
	hl       Highlighters
	active   map[string]bool // replacement blocks currently being rendered
}

// New creates a writer. registry and hl may be nil; then every reference
// is rendered as missing and code blocks are not highlighted.
func New(registry Registry, hl Highlighters) *Writer {
	return &Writer{registry: registry, hl: hl, active: make(map[string]bool)}
}

// Render writes the HTML for a document, without any page structure.
func (w *Writer) Render(out io.Writer, doc *dom.Document) error {
	return w.RenderNode(out, doc.Root)
}

// RenderNode writes the HTML for the sub-tree at n.
func (w *Writer) RenderNode(out io.Writer, n *dom.Node) error {
	frag := &html.Node{Type: html.DocumentNode}
	w.render(frag, n)
	if err := html.Render(out, frag); err != nil {
		return core.WrapError(err, core.ECONNECTION, "cannot write HTML output")
	}
	return nil
}

// HTML translates the sub-tree at n. The resulting nodes are the children
// of a node of type html.DocumentNode.
func (w *Writer) HTML(n *dom.Node) *html.Node {
	frag := &html.Node{Type: html.DocumentNode}
	w.render(frag, n)
	return frag
}

func (w *Writer) lookup(key string) (*dom.Node, bool) {
	if w.registry == nil {
		return nil, false
	}
	return w.registry.Lookup(key)
}

// --- Node kinds ------------------------------------------------------------

var emphasisTags = map[byte]string{
	'*': "strong",
	'/': "em",
	'_': "u",
	'~': "del",
	'=': "mark",
	'`': "code",
}

// render appends the HTML for n to parent.
func (w *Writer) render(parent *html.Node, n *dom.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case dom.KindDocument:
		w.blocks(parent, n)
	case dom.KindIdDefinition:
		// definitions are rendered where they are referenced
	// inlines
	case dom.KindText:
		appendText(parent, n.Text)
	case dom.KindLineBreak:
		parent.AppendChild(element("br", nil))
	case dom.KindInlineText:
		for _, ch := range n.Children() {
			w.render(parent, ch)
		}
	case dom.KindEmphasis:
		tag, ok := emphasisTags[n.Symbol]
		if !ok {
			tag = "span"
		}
		w.render(appendElement(parent, tag, n.Cmd.Clone()), n.Aux())
	case dom.KindEmoji:
		if e, ok := w.lookup(dom.Key(dom.TagEmoji, n.Text)); ok && e.Kind == dom.KindText {
			appendText(parent, e.Text)
		} else {
			appendText(parent, ":"+n.Text+":")
		}
	case dom.KindLink:
		w.link(parent, n)
	case dom.KindImage:
		cmd := n.Cmd.Clone()
		cmd.SetAttribute("src", n.URL)
		alt := n.URL
		if !n.Aux().IsEmptyOrNil() {
			alt = n.LiteralText()
		}
		cmd.SetAttribute("alt", alt)
		if strings.HasPrefix(n.URL, "%") {
			cmd.AddClass("nd-missing")
		}
		parent.AppendChild(element("img", cmd))
	case dom.KindFootnoteRef:
		w.reference(parent, n, dom.TagFootnote, "nd-footnote")
	case dom.KindHeadingLink:
		w.reference(parent, n, dom.TagHeading, "nd-h-link")
	case dom.KindReplace:
		w.replace(parent, n)
	case dom.KindStyled:
		w.render(appendElement(parent, "span", n.Cmd.Clone()), n.Aux())
	case dom.KindCommandContainer:
		if aux := n.Aux(); aux != nil {
			w.render(appendElement(parent, "span", n.Cmd.Clone()), aux)
		}
	case dom.KindTask:
		if !n.Flag {
			appendText(parent, "["+string(n.Symbol)+"]")
			break
		}
		cmd := n.Cmd.Clone()
		cmd.SetAttribute("type", "checkbox")
		if n.Symbol == 'x' {
			cmd.SetAttribute("checked", "")
		}
		parent.AppendChild(element("input", cmd))
	// blocks
	case dom.KindParagraph:
		w.container(parent, "p", n.Cmd.Clone(), n)
	case dom.KindHeading:
		level := n.Level
		if level < 1 || level > 6 {
			level = 6
		}
		h := appendElement(parent, "h"+strconv.Itoa(level), n.Cmd.Clone())
		w.render(h, n.Aux())
		trimTrailingSpace(h)
	case dom.KindHRule:
		parent.AppendChild(element("hr", n.Cmd.Clone()))
	case dom.KindBlockquote:
		cmd := n.Cmd.Clone()
		if n.Flag {
			cmd.AddClass("nd-center")
		}
		w.container(parent, "blockquote", cmd, n)
	case dom.KindListItem:
		w.blocks(appendElement(parent, "li", n.Cmd.Clone()), n)
	case dom.KindUnorderedList:
		w.container(parent, "ul", n.Cmd.Clone(), n)
	case dom.KindOrderedList:
		cmd := n.Cmd.Clone()
		if n.Level != 1 {
			cmd.SetAttribute("start", strconv.Itoa(n.Level))
		}
		w.container(parent, "ol", cmd, n)
	case dom.KindCodeBlock:
		w.code(parent, n)
	case dom.KindInfoBlock:
		cmd := n.Cmd.Clone()
		if n.Text != "" {
			cmd.AddClass(n.Text)
		}
		if n.Flag {
			cmd.AddClass("nd-sym")
		}
		w.container(parent, "blockquote", cmd, n)
	case dom.KindFootnoteBlock:
		cmd := n.Cmd.Clone()
		cmd.AddClass("nd-footnote")
		if n.Text != "" {
			cmd.ID = n.Text
		}
		w.container(parent, "div", cmd, n)
	case dom.KindCollapsible:
		cmd := n.Cmd.Clone()
		if n.Flag {
			cmd.SetAttribute("open", "open")
		}
		details := appendElement(parent, "details", cmd)
		appendText(details, "\n")
		summary := appendElement(details, "summary", nil)
		if aux := n.Aux(); !aux.IsEmptyOrNil() {
			w.render(summary, aux)
		}
		appendText(details, "\n")
		w.blocks(details, n)
	default:
		tracer().Errorf("html: cannot render node %v", n)
	}
}

// container appends an element for block n, followed by n's children.
func (w *Writer) container(parent *html.Node, tag string, cmd *command.Command, n *dom.Node) {
	e := appendElement(parent, tag, cmd)
	appendText(e, "\n")
	w.blocks(e, n)
}

// blocks appends the children of n, each followed by a newline. Children
// without content are skipped, unless they carry a command.
func (w *Writer) blocks(parent *html.Node, n *dom.Node) {
	for _, ch := range n.Children() {
		if ch.IsEmpty() && ch.Cmd.IsEmpty() {
			continue
		}
		last := parent.LastChild
		w.render(parent, ch)
		if parent.LastChild != last {
			appendText(parent, "\n")
		}
	}
}

func (w *Writer) link(parent *html.Node, n *dom.Node) {
	cmd := n.Cmd.Clone()
	cmd.SetAttribute("href", n.URL)
	if strings.HasPrefix(n.URL, "%") {
		cmd.AddClass("nd-missing")
	}
	a := appendElement(parent, "a", cmd)
	if n.Aux().IsEmptyOrNil() {
		appendText(a, n.URL)
	} else {
		w.render(a, n.Aux())
	}
}

// reference renders a link to a registered node within the page.
func (w *Writer) reference(parent *html.Node, n *dom.Node, tag byte, class string) {
	cmd := n.Cmd.Clone()
	cmd.SetAttribute("href", "#"+n.URL)
	cmd.AddClass(class)
	if _, ok := w.lookup(dom.Key(tag, n.URL)); !ok {
		cmd.AddClass("nd-missing")
	}
	a := appendElement(parent, "a", cmd)
	if n.Aux().IsEmptyOrNil() {
		appendText(a, n.URL)
	} else {
		w.render(a, n.Aux())
	}
}

// replace renders the blocks of a replacement definition, or the
// replacement's own content if there is no such definition. A definition
// which is already being rendered further up counts as missing.
func (w *Writer) replace(parent *html.Node, n *dom.Node) {
	cmd := n.Cmd.Clone()
	key := dom.Key(dom.TagReplace, n.URL)
	def, ok := w.lookup(key)
	if !ok || !def.IsBlock() || w.active[key] {
		if ok && w.active[key] {
			tracer().Infof("html: replacement %q references itself", n.URL)
		}
		cmd.AddClass("nd-missing")
		w.render(appendElement(parent, "div", cmd), n.Aux())
		return
	}
	if w.active == nil {
		w.active = make(map[string]bool)
	}
	w.active[key] = true
	defer delete(w.active, key)
	w.blocks(appendElement(parent, "div", cmd), def)
}

// code renders a code block. Lines are highlighted if there is a
// highlighter for the block's language.
func (w *Writer) code(parent *html.Node, n *dom.Node) {
	code := appendElement(appendElement(parent, "pre", nil), "code", n.Cmd.Clone())
	var hl highlight.Func
	if w.hl != nil && n.Text != "" {
		hl, _ = w.hl.Highlighter(n.Text)
	}
	first := true
	newline := func() {
		if !first {
			appendText(code, "\n")
		}
		first = false
	}
	if aux := n.Aux(); !aux.IsEmptyOrNil() {
		newline()
		w.render(code, aux)
	}
	for _, line := range n.Lines {
		newline()
		if hl == nil {
			appendText(code, line)
			continue
		}
		hl(line, func(s, group string) {
			if group == "" {
				appendText(code, s)
				return
			}
			span := element("span", nil)
			span.Attr = []html.Attribute{{Key: "class", Val: "nd-syntax-" + group}}
			appendText(span, s)
			code.AppendChild(span)
		})
	}
}
