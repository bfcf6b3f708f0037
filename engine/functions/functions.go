package functions

import (
	"strconv"
	"time"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/ncruces/go-strftime"
	"github.com/npillmayer/notedown/engine/dom"
	"github.com/npillmayer/notedown/engine/dom/xpathadapter"
	"github.com/npillmayer/notedown/engine/resolve"
)

// DefaultTimeFormat is used by $now if no format is given.
const DefaultTimeFormat = "%c"

// clock may be replaced for testing.
var clock = time.Now

// Now is generator '$now[:format]'. It sets the content of its command
// container to the current local time, formatted with strftime-style
// conversion specifications.
func Now(ctx *resolve.Context, n *dom.Node, phase resolve.Phase, args []string) {
	if phase != resolve.ExecuteMain || n.Kind != dom.KindCommandContainer {
		return
	}
	format := DefaultTimeFormat
	if len(args) > 0 && args[0] != "" {
		format = args[0]
	}
	n.SetAux(n.Tree().NewText(strftime.Format(format, clock())))
}

// NoTOC is modifier '&notoc'. It flags a heading to be left out of tables
// of contents.
func NoTOC(ctx *resolve.Context, n *dom.Node, phase resolve.Phase, args []string) {
	if phase != resolve.ExecutePrep || n.Kind != dom.KindHeading {
		return
	}
	n.Cmd.SetFlag("notoc", "true")
}

// UseNum is modifier '&usenum[:n]'. It sets the number of the list item it
// applies to, either to n or to the item's position. Commands in the text
// of an item apply to the item's paragraph, so the paragraph's parent item
// is numbered as well.
func UseNum(ctx *resolve.Context, n *dom.Node, phase resolve.Phase, args []string) {
	if phase != resolve.ExecuteMain {
		return
	}
	item := n
	if item.Kind != dom.KindListItem {
		item = n.Parent()
	}
	if item == nil || item.Kind != dom.KindListItem {
		tracer().Debugf("&usenum applied outside of a list item")
		return
	}
	num := item.Level
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil {
			num = v
		}
	}
	item.Cmd.SetAttribute("value", strconv.Itoa(num))
}

// InsertTOC is generator '$inserttoc'. It sets the content of its command
// container to a nested list of links to the top-level headings of all
// documents, in document order. Headings without text and headings flagged
// by &notoc are skipped.
func InsertTOC(ctx *resolve.Context, n *dom.Node, phase resolve.Phase, args []string) {
	if phase != resolve.ExecuteMain || n.Kind != dom.KindCommandContainer {
		return
	}
	var outline []*dom.Node
	for _, doc := range ctx.Documents {
		if doc == nil {
			continue
		}
		headings, err := xpathadapter.Select(doc.Root, "/heading")
		if err != nil {
			tracer().Errorf("$inserttoc: %v", err)
			return
		}
		for _, h := range headings {
			if !h.Aux().IsEmptyOrNil() && !h.Cmd.HasFlag("notoc") {
				outline = append(outline, h)
			}
		}
	}
	if len(outline) == 0 {
		return
	}
	n.SetAux(buildTOC(n.Tree(), outline))
}

type tocLevel struct {
	level int
	list  *dom.Node
}

// buildTOC nests the list of a heading into the last item of the list of
// the previous heading with a lower level.
func buildTOC(tree *dom.Tree, outline []*dom.Node) *dom.Node {
	root := tree.NewNode(dom.KindUnorderedList)
	stack := arraystack.New()
	stack.Push(tocLevel{level: outline[0].Level, list: root})
	for _, h := range outline {
		top := peek(stack)
		for stack.Size() > 1 && top.level > h.Level {
			stack.Pop()
			top = peek(stack)
		}
		switch {
		case stack.Size() == 1 && h.Level < top.level:
			stack.Pop()
			top = tocLevel{level: h.Level, list: root}
			stack.Push(top)
		case h.Level > top.level:
			sub := tree.NewNode(dom.KindUnorderedList)
			top.list.LastChild().AppendChild(sub)
			top = tocLevel{level: h.Level, list: sub}
			stack.Push(top)
		}
		top.list.AppendChild(tocEntry(tree, h, top.list.ChildCount()+1))
	}
	return root
}

func peek(stack *arraystack.Stack) tocLevel {
	v, _ := stack.Peek()
	return v.(tocLevel)
}

func tocEntry(tree *dom.Tree, h *dom.Node, index int) *dom.Node {
	item := tree.NewNode(dom.KindListItem)
	item.Level = index
	link := tree.NewNode(dom.KindHeadingLink)
	link.URL = h.Cmd.ID
	text := tree.NewNode(dom.KindInlineText)
	text.AppendChild(tree.NewText(h.LiteralText()))
	link.SetAux(text)
	line := tree.NewNode(dom.KindInlineText)
	line.AppendChild(link)
	return item.AppendChild(line)
}
