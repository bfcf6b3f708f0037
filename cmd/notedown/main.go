/*
Command notedown compiles Notedown files into a single HTML page.

	notedown [flags] file.nd...
	notedown emoji [prefix]

The output file defaults to the name of the first input file, with extension
".html". Settings may be given in a YAML file (flag --config), which is
overridden by command line flags.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'notedown.cli'
func tracer() tracing.Trace {
	return tracing.Select("notedown.cli")
}

var version = "0.4.0"

// traceKeys are the tracing keys of all packages of the compiler.
var traceKeys = []string{
	"notedown.cli",
	"notedown.compiler",
	"notedown.input",
	"notedown.engine",
	"notedown.resolve",
	"notedown.resources",
	"notedown.backend",
}

func main() {
	initDisplay()
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output. Styling is switched off if
// output does not go to a terminal.
func initDisplay() {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		pterm.DisableStyling()
	}
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// initTracing routes all tracers to the Go log package, at level tlevel.
func initTracing(tlevel string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = tlevel
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("error configuring tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}
