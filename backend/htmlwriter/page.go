package htmlwriter

import (
	"io"

	"github.com/npillmayer/notedown/core"
	"github.com/npillmayer/notedown/engine/dom"
	"golang.org/x/net/html"
)

// Stylesheet is a style referenced by a page. If Content is set, the style
// is embedded into the page; otherwise the page links to Href.
type Stylesheet struct {
	Href    string
	Content string
}

// Page holds the settings for a complete HTML page.
type Page struct {
	Title  string
	Styles []Stylesheet
}

// RenderPage writes a complete HTML page for a sequence of documents.
// Every document is preceded by a comment carrying its file name.
func (w *Writer) RenderPage(out io.Writer, page Page, docs []*dom.Document) error {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	h := appendElement(root, "html", nil)
	appendText(h, "\n")
	head := appendElement(h, "head", nil)
	appendText(head, "\n")
	meta := appendElement(head, "meta", nil)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	appendText(head, "\n")
	if page.Title != "" {
		appendText(appendElement(head, "title", nil), page.Title)
		appendText(head, "\n")
	}
	for _, style := range page.Styles {
		if style.Content != "" {
			if style.Href != "" {
				head.AppendChild(&html.Node{Type: html.CommentNode, Data: " " + style.Href + " "})
				appendText(head, "\n")
			}
			appendText(appendElement(head, "style", nil), "\n"+style.Content+"\n")
		} else {
			link := appendElement(head, "link", nil)
			link.Attr = []html.Attribute{
				{Key: "rel", Val: "stylesheet"},
				{Key: "href", Val: style.Href},
			}
		}
		appendText(head, "\n")
	}
	appendText(h, "\n")
	body := appendElement(h, "body", nil)
	appendText(body, "\n")
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		body.AppendChild(&html.Node{Type: html.CommentNode, Data: " " + doc.Filename + " "})
		appendText(body, "\n")
		w.render(body, doc.Root)
	}
	appendText(h, "\n")
	if err := html.Render(out, root); err != nil {
		return core.WrapError(err, core.ECONNECTION, "cannot write HTML page")
	}
	_, err := io.WriteString(out, "\n")
	return err
}
