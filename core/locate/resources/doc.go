/*
Package resources resolves the resources a compiler run needs: stylesheets
and emoji look-up tables.

Resources are either packaged with the module (names starting with
"packaged/"), local files, or remote files addressed by an http(s) URL.
Remote files are downloaded once into the user's cache directory.

As resource loading may be a time-consuming task, functions in this
package work in an async/await fashion by returning a promise.
Functions named

   Resolve…(…)

will return a resource-specific promise type, which the client will call later
to receive the loaded resource. The call to the promise-function will then block
until loading has completed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'notedown.resources'.
func tracer() tracing.Trace {
	return tracing.Select("notedown.resources")
}
