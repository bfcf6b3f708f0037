package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/notedown/core"
	"github.com/npillmayer/notedown/engine/compiler"
	"github.com/npillmayer/notedown/engine/dom/domdbg"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "notedown [flags] file...",
		Short: "Compile Notedown files into HTML",
		Long: `Compile Notedown files into a single HTML page.

Files are parsed in parallel and resolved against each other: headings,
footnotes, link targets and command blocks of every file may be referenced
from any other file. Documents appear on the page in command line order.`,
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCompile,
	}
	pflags := root.PersistentFlags()
	pflags.String("config", "", "YAML configuration file")
	pflags.String("trace", "Error", "trace level [Debug|Info|Error]")
	pflags.StringArrayP("emoji", "e", nil, "additional emoji look-up table (repeatable)")
	pflags.Bool("no-default-emoji", false, "do not load the packaged emoji table")
	pflags.Bool("no-emoji", false, "do not replace emoji shortcodes")
	flags := root.Flags()
	flags.StringP("out", "o", "", "output file (default: first input file with extension .html)")
	flags.StringArrayP("style", "s", nil, "stylesheet to use (repeatable)")
	flags.Bool("styledoc", false, "embed stylesheets instead of linking them")
	flags.Bool("no-default-style", false, "do not include the packaged stylesheet")
	flags.Bool("no-default", false, "do not include the packaged stylesheet and emoji table")
	flags.Bool("sequential", false, "parse input files one after another")
	flags.Bool("stdout", false, "write the HTML page to standard output")
	flags.BoolP("quiet", "q", false, "no status messages")
	flags.String("title", "", "title of the HTML page")
	flags.String("dot", "", "write a GraphViz dump of the first document to this file")
	root.AddCommand(emojiCmd())
	return root
}

func emojiCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "emoji [prefix]",
		Short:         "List emoji shortcodes starting with a prefix",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runEmoji,
	}
}

// setup initializes tracing and assembles the configuration from the
// configuration file and the command line flags.
func setup(cmd *cobra.Command) (testconfig.Conf, error) {
	tlevel, _ := cmd.Flags().GetString("trace")
	if err := initTracing(tlevel); err != nil {
		return nil, err
	}
	path, _ := cmd.Flags().GetString("config")
	conf, err := readConfig(path)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, conf)
	tracer().Debugf("configuration: %v", conf)
	return conf, nil
}

func runCompile(cmd *cobra.Command, args []string) error {
	conf, err := setup(cmd)
	if err != nil {
		return fail(err)
	}
	flags := cmd.Flags()
	toStdout, _ := flags.GetBool("stdout")
	quiet, _ := flags.GetBool("quiet")
	quiet = quiet || toStdout
	if !quiet {
		pterm.Info.Printfln("Notedown compiler %s", version)
	}
	c := compiler.New(conf)
	if err := c.AddFiles(args...); err != nil {
		return fail(err)
	}
	if err := c.Prepare(); err != nil {
		return fail(err)
	}
	ofile, _ := flags.GetString("out")
	if ofile == "" {
		ofile = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".html"
	}
	if toStdout {
		err = writePage(c, os.Stdout)
	} else {
		err = writeFile(ofile, func(w io.Writer) error { return writePage(c, w) })
	}
	if err != nil {
		return fail(err)
	}
	if !quiet {
		for _, w := range c.Warnings() {
			pterm.Warning.Println(core.UserMessage(w))
		}
	}
	if dot, _ := flags.GetString("dot"); dot != "" {
		doc := c.Documents()[0]
		err := writeFile(dot, func(w io.Writer) error { return domdbg.ToGraphViz(doc, w, tracer()) })
		if err != nil {
			return fail(err)
		}
	}
	if !quiet && !toStdout {
		pterm.Success.Printfln("New file: %s", ofile)
	}
	return nil
}

func writePage(c *compiler.Compiler, w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := c.WritePage(bw); err != nil {
		return err
	}
	return bw.Flush()
}

func writeFile(name string, write func(w io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create output file %s", name)
	}
	if err = write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runEmoji(cmd *cobra.Command, args []string) error {
	conf, err := setup(cmd)
	if err != nil {
		return fail(err)
	}
	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}
	c := compiler.New(conf)
	table := c.Emoji()
	for _, w := range c.Warnings() {
		pterm.Warning.Println(core.UserMessage(w))
	}
	if table == nil || table.Size() == 0 {
		pterm.Info.Println("No emoji tables loaded")
		return nil
	}
	data := pterm.TableData{{"Shortcode", "Emoji"}}
	for _, e := range table.Prefix(prefix) {
		data = append(data, []string{":" + e.Shortcode + ":", e.Emoji})
	}
	if len(data) == 1 {
		pterm.Info.Printfln("No shortcodes start with %q", prefix)
		return nil
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// fail reports err to the user and hands it back to cobra.
func fail(err error) error {
	pterm.Error.Println(core.UserMessage(err))
	return err
}
