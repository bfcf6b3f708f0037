package resolve

import (
	"strings"

	"github.com/npillmayer/notedown/engine/command"
	"github.com/npillmayer/notedown/engine/dom"
)

// EmojiTable maps emoji shortcodes to emoji.
type EmojiTable interface {
	Lookup(shortcode string) (string, bool)
}

// Context is the state shared by the resolution of all documents of a
// compilation unit: the documents, the cross-document registry, and the
// functions available to commands.
//
// A Context is not safe for concurrent use. Phases must run after every
// document has been parsed.
type Context struct {
	Documents []*dom.Document
	Functions *Functions
	Emoji     EmojiTable
	registry  map[string]*dom.Node
	declared  map[string]*command.Command // commands of '{name' blocks as written
	scratch   *dom.Tree                   // nodes handed out for emoji lookups
	phase     Phase
	done      int // number of phases run
}

// NewContext creates a resolution context for a set of parsed documents.
// funcs and emoji may be nil.
func NewContext(docs []*dom.Document, funcs *Functions, emoji EmojiTable) *Context {
	if funcs == nil {
		funcs = NewFunctions()
	}
	return &Context{
		Documents: docs,
		Functions: funcs,
		Emoji:     emoji,
		registry:  make(map[string]*dom.Node),
		declared:  make(map[string]*command.Command),
		scratch:   dom.NewTree(),
	}
}

// Lookup finds a node in the cross-document registry. key is a registry
// tag followed by a name, see dom.Key.
//
// Keys with tag ':' are answered from the emoji table: the result is a
// text node holding the emoji.
func (ctx *Context) Lookup(key string) (*dom.Node, bool) {
	if strings.HasPrefix(key, string(dom.TagEmoji)) {
		if ctx.Emoji == nil {
			return nil, false
		}
		e, ok := ctx.Emoji.Lookup(key[1:])
		if !ok {
			return nil, false
		}
		return ctx.scratch.NewText(e), true
	}
	n, ok := ctx.registry[key]
	return n, ok
}

// Registry calls f for every entry of the cross-document registry, in no
// particular order.
func (ctx *Context) Registry(f func(key string, n *dom.Node)) {
	for k, n := range ctx.registry {
		f(k, n)
	}
}

// Phase returns the phase currently running, or the last one run.
func (ctx *Context) Phase() Phase {
	return ctx.phase
}

// Run runs all remaining phases.
func (ctx *Context) Run() {
	for ctx.done < len(Phases) {
		ctx.RunPhase(Phases[ctx.done])
	}
}

// RunPhase runs one phase over all documents. Phases must be run in order;
// running a phase out of order is a no-op.
func (ctx *Context) RunPhase(phase Phase) {
	if ctx.done >= len(Phases) || Phases[ctx.done] != phase {
		tracer().Infof("phase %s out of order, ignored", phase)
		return
	}
	ctx.phase = phase
	tracer().Debugf("resolve: phase %s", phase)
	for _, doc := range ctx.Documents {
		if doc == nil {
			continue
		}
		ctx.process(doc.Root, phase)
		if phase <= Consume {
			doc.Registry(func(key string, n *dom.Node) {
				ctx.registry[key] = n
			})
		}
	}
	ctx.done++
}

// declaredCommand finds the command of a reusable command block, as it was
// written, i.e. before its own references were resolved.
func (ctx *Context) declaredCommand(key string) (*command.Command, bool) {
	cmd, ok := ctx.declared[key]
	return cmd, ok
}
