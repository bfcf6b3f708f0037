package dom

import (
	"fmt"
	"strings"

	"github.com/npillmayer/notedown/engine/command"
)

// Kind is the type of a node.
type Kind uint8

// Inline kinds.
const (
	KindNone Kind = iota
	KindText
	KindLineBreak
	KindEmphasis
	KindEmoji
	KindLink
	KindImage
	KindFootnoteRef
	KindHeadingLink
	KindReplace
	KindStyled
	KindCommandContainer
	KindTask
	KindInlineText
	firstBlockKind
)

// Block kinds.
const (
	KindDocument Kind = firstBlockKind + iota
	KindIdDefinition
	KindHeading
	KindHRule
	KindParagraph
	KindBlockquote
	KindListItem
	KindUnorderedList
	KindOrderedList
	KindCodeBlock
	KindInfoBlock
	KindFootnoteBlock
	KindCollapsible
	kindSentinel
)

var kindNames = [...]string{
	"none", "text", "linebreak", "emphasis", "emoji", "link", "image",
	"footnote-ref", "heading-link", "replace", "styled", "command", "task",
	"inline-text", "document", "id-definition", "heading", "hrule",
	"paragraph", "blockquote", "list-item", "unordered-list", "ordered-list",
	"code-block", "info-block", "footnote-block", "collapsible",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) || kindNames[k] == "" {
		return fmt.Sprintf("kind(%d)", k)
	}
	return kindNames[k]
}

// IsInline is a predicate: is k an inline kind?
func (k Kind) IsInline() bool {
	return k > KindNone && k < firstBlockKind
}

// IsBlock is a predicate: is k a block kind?
func (k Kind) IsBlock() bool {
	return k >= KindDocument && k < kindSentinel
}

// IsModifier is a predicate: is k one of the bracketed modifiers
// (link, image, footnote reference, heading link, replace, styled)?
func (k Kind) IsModifier() bool {
	return k >= KindLink && k <= KindStyled
}

// NodeID is a handle for a node within its tree.
type NodeID int32

// NoNode is the null handle.
const NoNode NodeID = -1

// Node is a node of a document tree. Nodes are created by Tree.NewNode and
// are never freed individually.
type Node struct {
	Kind   Kind
	Cmd    *command.Command // never nil
	Text   string
	URL    string
	Level  int
	Symbol byte
	Flag   bool
	Lines  []string // lines of a code block
	//
	tree     *Tree
	id       NodeID
	parent   NodeID
	aux      NodeID
	children []NodeID
}

// ID returns the handle of n.
func (n *Node) ID() NodeID {
	return n.id
}

// Tree returns the tree n is allocated in.
func (n *Node) Tree() *Tree {
	return n.tree
}

// Parent returns the parent node of n, or nil. The parent of an auxiliary
// child is its owner.
func (n *Node) Parent() *Node {
	if n == nil || n.parent == NoNode {
		return nil
	}
	return n.tree.Node(n.parent)
}

// ChildCount returns the number of children of n.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns the i-th child of n.
func (n *Node) Child(i int) (*Node, bool) {
	if i < 0 || i >= len(n.children) {
		return nil, false
	}
	return n.tree.Node(n.children[i]), true
}

// Children returns the children of n, in order.
func (n *Node) Children() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	ch := make([]*Node, len(n.children))
	for i, id := range n.children {
		ch[i] = n.tree.Node(id)
	}
	return ch
}

// FirstChild returns the first child of n, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.tree.Node(n.children[0])
}

// LastChild returns the last child of n, or nil.
func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.tree.Node(n.children[len(n.children)-1])
}

// AppendChild appends c to the children of n. A nil c is ignored.
// c must belong to the same tree as n.
func (n *Node) AppendChild(c *Node) *Node {
	if c == nil {
		return n
	}
	n.mustOwn(c)
	c.parent = n.id
	n.children = append(n.children, c.id)
	return n
}

// InsertChildAt inserts c as the i-th child of n.
func (n *Node) InsertChildAt(i int, c *Node) *Node {
	if c == nil {
		return n
	}
	n.mustOwn(c)
	if i < 0 {
		i = 0
	} else if i > len(n.children) {
		i = len(n.children)
	}
	c.parent = n.id
	n.children = append(n.children, NoNode)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c.id
	return n
}

// AppendChildren appends all children of other to n, leaving other empty.
func (n *Node) AppendChildren(other *Node) *Node {
	if other == nil {
		return n
	}
	for _, ch := range other.Children() {
		n.AppendChild(ch)
	}
	other.children = nil
	return n
}

// Aux returns the auxiliary child of n, or nil. The auxiliary child holds
// inline content owned by n which is not part of the regular children,
// e.g. the text of a heading or the content of a link.
func (n *Node) Aux() *Node {
	if n == nil || n.aux == NoNode {
		return nil
	}
	return n.tree.Node(n.aux)
}

// SetAux sets the auxiliary child of n. c may be nil.
func (n *Node) SetAux(c *Node) *Node {
	if c == nil {
		n.aux = NoNode
		return n
	}
	n.mustOwn(c)
	c.parent = n.id
	n.aux = c.id
	return n
}

func (n *Node) mustOwn(c *Node) {
	if c.tree != n.tree {
		panic("dom: node belongs to a different tree")
	}
}

// IsInline is a predicate: is n an inline node?
func (n *Node) IsInline() bool {
	return n.Kind.IsInline()
}

// IsBlock is a predicate: is n a block node?
func (n *Node) IsBlock() bool {
	return n.Kind.IsBlock()
}

// ContainingElement returns the nearest block node at or above n.
// Inline nodes detached from any block have no containing element.
func (n *Node) ContainingElement() *Node {
	for p := n; p != nil; p = p.Parent() {
		if p.IsBlock() {
			return p
		}
	}
	return nil
}

// Document returns the document n belongs to, or nil if n is not
// (or no longer) attached to a document root.
func (n *Node) Document() *Document {
	p := n
	for p.parent != NoNode {
		p = p.Parent()
	}
	if p.Kind != KindDocument || n.tree.doc == nil || n.tree.doc.Root != p {
		return nil
	}
	return n.tree.doc
}

// IsEmpty is a predicate: does n have no renderable content?
func (n *Node) IsEmpty() bool {
	switch n.Kind {
	case KindText:
		return n.Text == ""
	case KindEmoji:
		return n.Text == ""
	case KindEmphasis:
		return n.Aux().IsEmptyOrNil()
	case KindLink, KindFootnoteRef, KindHeadingLink, KindStyled:
		return n.Aux().IsEmptyOrNil() && n.URL == ""
	case KindCommandContainer:
		return n.aux == NoNode
	case KindIdDefinition:
		return true
	case KindLineBreak, KindImage, KindReplace, KindTask, KindHeading, KindHRule:
		return false
	case KindCodeBlock:
		return len(n.Lines) == 0 && n.Aux().IsEmptyOrNil()
	}
	for _, ch := range n.Children() {
		if !ch.IsEmpty() {
			return false
		}
	}
	return true
}

// IsEmptyOrNil is IsEmpty, which is true for nil as well.
func (n *Node) IsEmptyOrNil() bool {
	return n == nil || n.IsEmpty()
}

// CanConsume is a predicate: may a container absorb the command of n?
// Empty nodes qualify, except id definitions (whose command belongs to the
// definition) and nodes with a generator call (which will produce content).
func (n *Node) CanConsume() bool {
	if n.Kind == KindIdDefinition || n.Cmd.Generator != nil {
		return false
	}
	return n.IsEmpty()
}

// LiteralText returns the plain text of the inline content at n, without
// any markup.
func (n *Node) LiteralText() string {
	var b strings.Builder
	n.literalText(&b)
	return b.String()
}

func (n *Node) literalText(b *strings.Builder) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindText:
		b.WriteString(n.Text)
		return
	case KindEmphasis, KindLink, KindImage, KindFootnoteRef, KindHeadingLink,
		KindReplace, KindStyled, KindHeading, KindCollapsible:
		n.Aux().literalText(b)
		return
	case KindCommandContainer:
		if aux := n.Aux(); aux != nil && aux.IsInline() {
			aux.literalText(b)
		}
		return
	case KindInlineText, KindParagraph:
		for _, ch := range n.Children() {
			ch.literalText(b)
		}
	}
}

// Walk calls f for n and every node below it, in pre-order, including
// auxiliary children (which are visited before the regular children).
// If f returns false, the sub-tree at that node is skipped.
func (n *Node) Walk(f func(*Node) bool) {
	if n == nil || !f(n) {
		return
	}
	n.Aux().Walk(f)
	for _, ch := range n.Children() {
		ch.Walk(f)
	}
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	s := n.Kind.String()
	switch {
	case n.Kind == KindText:
		s = fmt.Sprintf("%s %q", s, n.Text)
	case n.Kind == KindHeading:
		s = fmt.Sprintf("%s(%d)", s, n.Level)
	case n.URL != "":
		s = fmt.Sprintf("%s(%s)", s, n.URL)
	case n.Text != "":
		s = fmt.Sprintf("%s[%s]", s, n.Text)
	}
	if !n.Cmd.IsEmpty() {
		s += " {" + n.Cmd.String() + "}"
	}
	return s
}
