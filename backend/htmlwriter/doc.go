/*
Package htmlwriter renders resolved Notedown documents as HTML.

Every document node is translated into a sub-tree of golang.org/x/net/html
nodes, which is then serialized with html.Render. Rendering does not modify
the document tree.

Element attributes are written in a fixed order: id, class, title, style,
followed by all other attributes sorted by name. References which cannot be
resolved (heading links, footnotes, replacements, link targets) are marked
with class 'nd-missing'.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package htmlwriter

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'notedown.backend'.
func tracer() tracing.Trace {
	return tracing.Select("notedown.backend")
}
