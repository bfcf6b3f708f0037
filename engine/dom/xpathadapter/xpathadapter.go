/*
Package xpathadapter implements an xpath.NodeNavigator for document trees.

We use this library for XPath queries:

	github.com/antchfx/xpath

Element names are the names of the node kinds (see dom.Kind.String), e.g.

	/heading[@level=1]
	//list-item/paragraph
	//link[@url]

The auxiliary child of a node (heading text, link content, …) is navigated
as the node's first child. Nodes carry the attributes 'id', 'class' (space
separated), 'level' (headings, list items) and 'url', if set.

For a description of the various methods of interface xpath.NodeNavigator
please refer to the documentation of antchfx/xpath. It is not replicated here.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package xpathadapter

import (
	"errors"
	"strconv"
	"strings"

	"github.com/antchfx/xpath"
	"github.com/npillmayer/notedown/engine/dom"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'notedown.engine'.
func tracer() tracing.Trace {
	return tracing.Select("notedown.engine")
}

// NodeNavigator navigates a document tree.
type NodeNavigator struct {
	root, current *dom.Node
	attrs         []attr
	attr          int // attributes index
}

type attr struct {
	key, value string
}

// NewNavigator creates a new xpath.NodeNavigator for a (sub-)tree.
func NewNavigator(node *dom.Node) *NodeNavigator {
	return &NodeNavigator{
		current: node,
		root:    node,
		attr:    -1,
	}
}

// CurrentNode returns the node a navigator currently points to.
func CurrentNode(nav xpath.NodeNavigator) (*dom.Node, error) {
	mynav, ok := nav.(*NodeNavigator)
	if !ok {
		return nil, errors.New("navigator is not of type xpathadapter.NodeNavigator")
	}
	return mynav.current, nil
}

// Select selects all nodes below root matching an XPath expression.
func Select(root *dom.Node, expr string) ([]*dom.Node, error) {
	x, err := xpath.Compile(expr)
	if err != nil {
		return nil, err
	}
	var nodes []*dom.Node
	it := x.Select(NewNavigator(root))
	for it.MoveNext() {
		n, _ := CurrentNode(it.Current())
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	tracer().Debugf("xpath %q selected %d nodes", expr, len(nodes))
	return nodes, nil
}

func (nav *NodeNavigator) NodeType() xpath.NodeType {
	if nav.attr != -1 {
		return xpath.AttributeNode
	}
	if nav.current == nav.root {
		return xpath.RootNode
	}
	if nav.current.Kind == dom.KindText {
		return xpath.TextNode
	}
	return xpath.ElementNode
}

func (nav *NodeNavigator) LocalName() string {
	if nav.attr != -1 {
		return nav.attrs[nav.attr].key
	}
	return nav.current.Kind.String()
}

func (*NodeNavigator) Prefix() string {
	return ""
}

func (nav *NodeNavigator) Value() string {
	if nav.attr != -1 {
		return nav.attrs[nav.attr].value
	}
	switch nav.current.Kind {
	case dom.KindText:
		return nav.current.Text
	case dom.KindCodeBlock:
		return strings.Join(nav.current.Lines, "\n")
	}
	return nav.current.LiteralText()
}

func (nav *NodeNavigator) Copy() xpath.NodeNavigator {
	n := *nav
	return &n
}

func (nav *NodeNavigator) MoveToRoot() {
	nav.current = nav.root
	nav.attr = -1
}

func (nav *NodeNavigator) MoveToParent() bool {
	if nav.attr != -1 {
		nav.attr = -1 // move from attributes to element
		return true
	}
	if nav.current == nav.root {
		return false
	}
	parent := nav.current.Parent()
	if parent == nil {
		return false
	}
	nav.current = parent
	return true
}

func (nav *NodeNavigator) MoveToNextAttribute() bool {
	if nav.attr == -1 {
		nav.attrs = attributes(nav.current)
	}
	if nav.attr >= len(nav.attrs)-1 {
		return false
	}
	nav.attr++
	return true
}

func (nav *NodeNavigator) MoveToChild() bool {
	if nav.attr != -1 {
		return false
	}
	kids := children(nav.current)
	if len(kids) == 0 {
		return false
	}
	nav.current = kids[0]
	return true
}

func (nav *NodeNavigator) MoveToFirst() bool {
	if nav.attr != -1 || nav.current == nav.root {
		return false
	}
	siblings := children(nav.current.Parent())
	if len(siblings) == 0 || siblings[0] == nav.current {
		return false
	}
	nav.current = siblings[0]
	return true
}

func (nav *NodeNavigator) String() string {
	return nav.Value()
}

func (nav *NodeNavigator) MoveToNext() bool {
	if nav.attr != -1 || nav.current == nav.root {
		return false
	}
	siblings := children(nav.current.Parent())
	i := indexOf(siblings, nav.current)
	if i < 0 || i+1 >= len(siblings) {
		return false
	}
	nav.current = siblings[i+1]
	return true
}

func (nav *NodeNavigator) MoveToPrevious() bool {
	if nav.attr != -1 || nav.current == nav.root {
		return false
	}
	siblings := children(nav.current.Parent())
	i := indexOf(siblings, nav.current)
	if i <= 0 {
		return false
	}
	nav.current = siblings[i-1]
	return true
}

func (nav *NodeNavigator) MoveTo(other xpath.NodeNavigator) bool {
	n, ok := other.(*NodeNavigator)
	if !ok || n.root != nav.root {
		return false
	}
	nav.current = n.current
	nav.attr = n.attr
	nav.attrs = n.attrs
	return true
}

var _ xpath.NodeNavigator = &NodeNavigator{}

// children returns the auxiliary child (if any) followed by the regular
// children of n.
func children(n *dom.Node) []*dom.Node {
	if n == nil {
		return nil
	}
	kids := n.Children()
	if aux := n.Aux(); aux != nil {
		kids = append([]*dom.Node{aux}, kids...)
	}
	return kids
}

func indexOf(nodes []*dom.Node, n *dom.Node) int {
	for i, x := range nodes {
		if x == n {
			return i
		}
	}
	return -1
}

func attributes(n *dom.Node) []attr {
	var attrs []attr
	if n.Cmd.ID != "" {
		attrs = append(attrs, attr{"id", n.Cmd.ID})
	}
	if cls := n.Cmd.Classes(); len(cls) > 0 {
		attrs = append(attrs, attr{"class", strings.Join(cls, " ")})
	}
	switch n.Kind {
	case dom.KindHeading, dom.KindListItem:
		attrs = append(attrs, attr{"level", strconv.Itoa(n.Level)})
	}
	if n.URL != "" {
		attrs = append(attrs, attr{"url", n.URL})
	}
	return attrs
}
