/*
Package dom implements the document tree of Notedown.

Nodes of a document live in an arena owned by the document's Tree. Parent
and child links are NodeID handles into this arena, so the tree is strictly
owning top-down, while upward queries (containing element, owning document)
just follow handles. Pointers to nodes stay valid for the lifetime of the
tree.

The set of node kinds is closed. Kind-specific data lives in a small number
of flat fields of Node, comparable to golang.org/x/net/html.Node:

	Kind            Text            URL        Level    Symbol   Flag
	--------------  --------------  ---------  -------  -------  ---------
	Text            content
	Emphasis                                            * / _ ~ = `
	Emoji           shortcode
	Link/Image      (url)           target
	FootnoteRef                     footnote
	HeadingLink                     heading
	Replace                         replace id
	Task                                                mark     valid
	IdDefinition    id              url                 ( { <
	Heading                                    1…6
	Blockquote                                                   centered
	OrderedList                                start
	ListItem                                   index
	CodeBlock       language                                     fenced
	InfoBlock       type                                         symbolic
	FootnoteBlock   id
	Collapsible                                                  open

Inline content owned by a node (heading text, modifier content, the first
line of a code block, …) is attached as the node's auxiliary child, see
Node.Aux.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'notedown.engine'.
func tracer() tracing.Trace {
	return tracing.Select("notedown.engine")
}
