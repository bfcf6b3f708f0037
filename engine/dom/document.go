package dom

// Registry tags, prepended to names to form registry keys.
const (
	TagHeading  = '#'
	TagFootnote = '^'
	TagAnchor   = '('
	TagReplace  = '<'
	TagCommand  = '{'
	TagEmoji    = ':'
)

// Key creates a registry key from a tag and a name.
func Key(tag byte, name string) string {
	return string(tag) + name
}

// Document is a parsed Notedown document: the root of a tree plus the
// document's registry of named nodes.
type Document struct {
	Tree     *Tree
	Root     *Node
	Filename string
	registry map[string]*Node
}

// NewDocument creates a document with an empty root node.
func NewDocument(filename string) *Document {
	t := NewTree()
	doc := &Document{
		Tree:     t,
		Filename: filename,
		registry: make(map[string]*Node),
	}
	t.doc = doc
	doc.Root = t.NewNode(KindDocument)
	return doc
}

// Register enters node n under key into the document's registry.
// An existing entry is overwritten.
func (doc *Document) Register(key string, n *Node) {
	if prev, ok := doc.registry[key]; ok && prev != n {
		tracer().Debugf("%s: registry entry %q redefined", doc.Filename, key)
	}
	doc.registry[key] = n
}

// Lookup finds a registered node.
func (doc *Document) Lookup(key string) (*Node, bool) {
	n, ok := doc.registry[key]
	return n, ok
}

// Registry calls f for every registry entry of doc, in no particular order.
func (doc *Document) Registry(f func(key string, n *Node)) {
	for k, n := range doc.registry {
		f(k, n)
	}
}

// RegistrySize returns the number of registry entries.
func (doc *Document) RegistrySize() int {
	return len(doc.registry)
}
