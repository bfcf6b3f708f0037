package htmlwriter

import (
	"strings"

	"github.com/npillmayer/notedown/engine/command"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// element creates an element node with the attributes of cmd.
func element(tag string, cmd *command.Command) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attributes(cmd),
	}
}

func appendElement(parent *html.Node, tag string, cmd *command.Command) *html.Node {
	e := element(tag, cmd)
	parent.AppendChild(e)
	return e
}

// appendText appends text to parent, merging it with a preceding text node.
func appendText(parent *html.Node, s string) {
	if s == "" {
		return
	}
	if last := parent.LastChild; last != nil && last.Type == html.TextNode {
		last.Data += s
		return
	}
	parent.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

// trimTrailingSpace strips white space from the end of parent's content,
// as left behind by a trailing command.
func trimTrailingSpace(parent *html.Node) {
	last := parent.LastChild
	if last == nil || last.Type != html.TextNode {
		return
	}
	last.Data = strings.TrimRight(last.Data, " \t")
	if last.Data == "" {
		parent.RemoveChild(last)
	}
}

// attributes lists the HTML attributes of cmd: id, class, title and style
// first, then the remaining attributes in key order.
func attributes(cmd *command.Command) []html.Attribute {
	if cmd == nil {
		return nil
	}
	var attrs []html.Attribute
	if cmd.ID != "" {
		attrs = append(attrs, html.Attribute{Key: "id", Val: cmd.ID})
	}
	if cls := cmd.Classes(); len(cls) > 0 {
		attrs = append(attrs, html.Attribute{Key: "class", Val: strings.Join(cls, " ")})
	}
	if cmd.Title != "" {
		attrs = append(attrs, html.Attribute{Key: "title", Val: cmd.Title})
	}
	if css := cmd.CSS(); css.Size() > 0 {
		attrs = append(attrs, html.Attribute{Key: "style", Val: css.String()})
	}
	cmd.EachAttribute(func(key, value string) {
		switch key {
		case "id", "class", "title", "style":
			return
		}
		attrs = append(attrs, html.Attribute{Key: key, Val: value})
	})
	return attrs
}
