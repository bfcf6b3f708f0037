/*
Package functions implements the default generator and modifier functions
callable from Notedown commands.

	{$now}             current date and time, strftime-style format
	{$now:%Y-%m-%d}
	{$inserttoc}       table of contents of all documents
	# Intro {&notoc}   exclude a heading from the table of contents
	- item {&usenum:7} set the number of an item of an ordered list

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package functions

import (
	"github.com/npillmayer/notedown/engine/resolve"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'notedown.engine'.
func tracer() tracing.Trace {
	return tracing.Select("notedown.engine")
}

// Register adds the default functions to a function registry.
func Register(f *resolve.Functions) {
	f.AddGenerator("now", Now)
	f.AddGenerator("inserttoc", InsertTOC)
	f.AddModifier("notoc", NoTOC)
	f.AddModifier("usenum", UseNum)
}

// Default returns a function registry holding the default functions.
func Default() *resolve.Functions {
	f := resolve.NewFunctions()
	Register(f)
	return f
}
