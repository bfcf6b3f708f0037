/*
Package command implements the command language of Notedown nodes.

Every node of a document tree carries a Command. Commands are written
inline, e.g.

	[a link](https://example.org #main .note.warn +data-x=1 >color:red)
	{$now:"%Y-%m-%d"}

and collect an id, classes, a title, HTML attributes, CSS declarations,
at most one generator call, any number of modifier calls, and references
to reusable command blocks. Commands are combined with Merge (the incoming
command wins) or Integrate (the receiving command wins), and Resolve splices
referenced command blocks into a command.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package command

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'notedown.engine'.
func tracer() tracing.Trace {
	return tracing.Select("notedown.engine")
}
