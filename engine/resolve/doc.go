/*
Package resolve implements the resolution of parsed Notedown documents.

After all documents of a compilation unit have been parsed, a Context walks
every document tree six times, once per Phase:

	Register     nodes enter the registry: headings, id definitions, footnotes;
	             bare command containers hand their command to the enclosing block
	Resolve      commands splice in referenced command blocks (%name);
	             links, images and footnote references follow %target indirections
	Consume      containers absorb the commands of empty children
	ExecutePrep  modifier functions run
	ExecuteMain  modifier functions run, then generator functions
	ExecutePost  modifier functions run

Within a phase every document is walked post-order: auxiliary inline
content first, then the children, then the node itself. Phases are
sequential across all documents, as later phases may refer to nodes of
other documents through the shared registry.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resolve

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'notedown.resolve'.
func tracer() tracing.Trace {
	return tracing.Select("notedown.resolve")
}
