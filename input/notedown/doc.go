/*
Package notedown reads Notedown markup into a document tree.

Parsing is line oriented. A Lexer turns the input into a small alphabet of
tokens. Which characters become symbols is decided by the grammar: every
handler registers its trigger characters, and only these are tokenized as
symbols, everything else is text.

A Grammar is an ordered list of block handlers and an ordered list of inline
handlers. For every line the parser asks the block handlers, in order of
registration, whether they can handle the current token. The first one that
can is asked to handle the line. If it fails, the input is rolled back and
the search continues after the failing handler. If no handler matches, the
default handler (paragraphs) takes the line.

A block handler may span several lines. It stays open until it reports to
be finished or until it declines a line, in which case it is asked to
finish what it has collected so far. Block constructs containing other
blocks (list items, blockquotes, …) use a Continuation, which dispatches
indented lines to a nested handler chain.

	p := notedown.NewParser(grammar, "hello.nd")
	doc, err := p.Parse(strings.NewReader("# Hello World\n"))

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package notedown

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'notedown.input'.
func tracer() tracing.Trace {
	return tracing.Select("notedown.input")
}
