package compiler

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/npillmayer/notedown/backend/htmlwriter"
	"github.com/npillmayer/notedown/core"
	"github.com/npillmayer/notedown/core/locate/resources"
	"github.com/npillmayer/notedown/core/parameters"
	"github.com/npillmayer/notedown/engine/dom"
	"github.com/npillmayer/notedown/engine/emoji"
	"github.com/npillmayer/notedown/engine/functions"
	"github.com/npillmayer/notedown/engine/highlight"
	"github.com/npillmayer/notedown/engine/resolve"
	"github.com/npillmayer/notedown/input/notedown"
	"github.com/npillmayer/notedown/input/notedown/handlers"
	"github.com/npillmayer/schuko"
)

// ErrNoDocument is returned when a compilation unit without documents is
// prepared or written.
var ErrNoDocument = errors.New("no document to compile")

// FilenameFlag is the command flag of a document root holding the file name
// the document has been read from.
const FilenameFlag = "_filename"

// Compiler is a compilation unit.
//
// Grammar, Functions and Highlighter may be extended by clients before the
// first document is added.
type Compiler struct {
	Grammar     *notedown.Grammar
	Functions   *resolve.Functions
	Highlighter *highlight.Engine
	conf        schuko.Configuration
	params      *parameters.Registers
	mx          sync.Mutex
	docs        []*dom.Document
	ctx         *resolve.Context
	emoji       *emoji.Table
	warnings    []error
}

// New creates a compilation unit with the default grammar and functions.
// conf may be nil.
func New(conf schuko.Configuration) *Compiler {
	return &Compiler{
		Grammar:     handlers.Default(),
		Functions:   functions.Default(),
		Highlighter: highlight.NewEngine(),
		conf:        conf,
		params:      parameters.FromConfig(conf),
	}
}

// Parameters returns the settings of the compilation unit.
func (c *Compiler) Parameters() *parameters.Registers {
	return c.params
}

// Documents returns the documents of the compilation unit, in the order
// they have been added.
func (c *Compiler) Documents() []*dom.Document {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.docs
}

// Warnings returns the non-fatal problems encountered so far, like emoji
// tables or stylesheets which could not be loaded.
func (c *Compiler) Warnings() []error {
	return c.warnings
}

func (c *Compiler) warn(err error) {
	tracer().Infof("%v", err)
	c.warnings = append(c.warnings, err)
}

func (c *Compiler) parse(name string, r io.Reader) (*dom.Document, error) {
	doc, err := notedown.NewParser(c.Grammar, name).Parse(r)
	if err != nil {
		return nil, err
	}
	doc.Root.Cmd.SetFlag(FilenameFlag, name)
	tracer().Debugf("parsed %s", name)
	return doc, nil
}

// AddSource parses a document from r and adds it to the compilation unit.
func (c *Compiler) AddSource(name string, r io.Reader) error {
	doc, err := c.parse(name, r)
	if err != nil {
		return err
	}
	c.mx.Lock()
	defer c.mx.Unlock()
	c.docs = append(c.docs, doc)
	return nil
}

// AddFiles parses input files and adds them to the compilation unit.
// Documents keep the order of filenames, regardless of the order parsing
// completes in. A file which cannot be opened is a fatal error; no document
// is added then.
func (c *Compiler) AddFiles(filenames ...string) error {
	slots := make([]*dom.Document, len(filenames))
	errs := make([]error, len(filenames))
	var wg sync.WaitGroup
	var mx sync.Mutex
	load := func(i int, name string) {
		f, err := os.Open(name)
		if err != nil {
			err = core.WrapError(err, core.EMISSING, "cannot open input file %s", name)
		} else {
			defer f.Close()
		}
		var doc *dom.Document
		if err == nil {
			doc, err = c.parse(name, f)
		}
		mx.Lock()
		defer mx.Unlock()
		slots[i], errs[i] = doc, err
	}
	sequential := c.params.B(parameters.P_SEQUENTIAL)
	for i, name := range filenames {
		if sequential {
			load(i, name)
			continue
		}
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			load(i, name)
		}(i, name)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	c.mx.Lock()
	defer c.mx.Unlock()
	c.docs = append(c.docs, slots...)
	return nil
}

// Emoji returns the emoji table of the compilation unit, loading the
// configured tables on first call. Later tables override earlier ones.
// The result is nil if emoji are switched off.
func (c *Compiler) Emoji() *emoji.Table {
	if c.emoji != nil || c.params.B(parameters.P_NOEMOJI) {
		return c.emoji
	}
	var names []string
	if !c.params.B(parameters.P_NODEFAULTEMOJI) {
		names = append(names, resources.DefaultEmojiTable)
	}
	names = append(names, c.params.L(parameters.P_EMOJITABLES)...)
	promises := make([]resources.EmojiTablePromise, len(names))
	for i, name := range names {
		promises[i] = resources.ResolveEmojiTable(name, c.conf)
	}
	c.emoji = emoji.NewTable()
	for _, p := range promises {
		t, err := p.Table()
		if err != nil {
			c.warn(err)
			continue
		}
		for _, e := range t.Prefix("") {
			c.emoji.Add(e.Shortcode, e.Emoji)
		}
	}
	tracer().Infof("emoji table holds %d shortcodes", c.emoji.Size())
	return c.emoji
}

// Prepare resolves all documents. It returns ErrNoDocument if no document
// has been added.
func (c *Compiler) Prepare() error {
	docs := c.Documents()
	if len(docs) == 0 {
		return ErrNoDocument
	}
	var table resolve.EmojiTable
	if t := c.Emoji(); t != nil { // avoid a non-nil interface holding nil
		table = t
	}
	c.ctx = resolve.NewContext(docs, c.Functions, table)
	c.ctx.Run()
	return nil
}

// Context returns the resolution context, or nil before Prepare.
func (c *Compiler) Context() *resolve.Context {
	return c.ctx
}

// Styles returns the stylesheets of the output page. The packaged default
// style is always embedded; other stylesheets are embedded only if inline
// styles are configured, and linked otherwise. Stylesheets which cannot be
// loaded are reported as warnings and left out.
func (c *Compiler) Styles() []htmlwriter.Stylesheet {
	var names []string
	if !c.params.B(parameters.P_NODEFAULTSTYLE) {
		names = append(names, resources.DefaultStylesheet)
	}
	names = append(names, c.params.L(parameters.P_STYLESHEETS)...)
	inline := c.params.B(parameters.P_INLINESTYLES)
	promises := make([]resources.StylesheetPromise, len(names))
	for i, name := range names {
		if inline || name == resources.DefaultStylesheet {
			promises[i] = resources.ResolveStylesheet(name, c.conf)
		}
	}
	var styles []htmlwriter.Stylesheet
	for i, name := range names {
		if promises[i] == nil {
			styles = append(styles, htmlwriter.Stylesheet{Href: name})
			continue
		}
		s, err := promises[i].Stylesheet()
		if err != nil {
			c.warn(err)
			continue
		}
		styles = append(styles, htmlwriter.Stylesheet{Href: name, Content: s.Text})
	}
	return styles
}

// WritePage writes the HTML page for all documents, preparing them first
// if necessary.
func (c *Compiler) WritePage(out io.Writer) error {
	if c.ctx == nil {
		if err := c.Prepare(); err != nil {
			return err
		}
	}
	page := htmlwriter.Page{
		Title:  c.params.S(parameters.P_TITLE),
		Styles: c.Styles(),
	}
	w := htmlwriter.New(c.ctx, c.Highlighter)
	return w.RenderPage(out, page, c.ctx.Documents)
}

// Compile is a shortcut for AddFiles, Prepare and WritePage.
func (c *Compiler) Compile(out io.Writer, filenames ...string) error {
	if err := c.AddFiles(filenames...); err != nil {
		return err
	}
	if err := c.Prepare(); err != nil {
		return err
	}
	return c.WritePage(out)
}
