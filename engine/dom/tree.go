package dom

import (
	"github.com/npillmayer/notedown/engine/command"
)

const chunkSize = 256

// Tree is the node arena of a document. Nodes are allocated in chunks,
// so node pointers stay valid while the arena grows.
//
// A tree is not safe for concurrent use. Every document owns its tree,
// which allows parsing documents in parallel.
type Tree struct {
	chunks []*[chunkSize]Node
	size   int
	doc    *Document
}

// NewTree creates an empty arena.
func NewTree() *Tree {
	return &Tree{}
}

// NewNode allocates a detached node of kind k with an empty command.
func (t *Tree) NewNode(k Kind) *Node {
	if t.size == len(t.chunks)*chunkSize {
		t.chunks = append(t.chunks, new([chunkSize]Node))
	}
	n := &t.chunks[t.size/chunkSize][t.size%chunkSize]
	*n = Node{
		Kind:   k,
		Cmd:    command.New(),
		tree:   t,
		id:     NodeID(t.size),
		parent: NoNode,
		aux:    NoNode,
	}
	t.size++
	return n
}

// NewText allocates a text node.
func (t *Tree) NewText(s string) *Node {
	n := t.NewNode(KindText)
	n.Text = s
	return n
}

// Node returns the node for handle id, or nil.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= t.size {
		return nil
	}
	return &t.chunks[int(id)/chunkSize][int(id)%chunkSize]
}

// Size returns the number of nodes ever allocated, including nodes which
// have been abandoned during parsing.
func (t *Tree) Size() int {
	return t.size
}
