/*
Package compiler orchestrates a compilation unit: a set of Notedown documents
which are parsed, resolved against each other and rendered into a single
HTML page.

Input files are parsed concurrently, one goroutine per file, unless the
configuration asks for sequential parsing. Resolution runs after all
documents have been parsed.

Settings are taken from a schuko.Configuration, see package
core/parameters for the keys.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package compiler

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'notedown.compiler'.
func tracer() tracing.Trace {
	return tracing.Select("notedown.compiler")
}
