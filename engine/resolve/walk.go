package resolve

import (
	"strings"

	"github.com/npillmayer/notedown/engine/command"
	"github.com/npillmayer/notedown/engine/dom"
)

// process walks the tree at n post-order, auxiliary content first.
func (ctx *Context) process(n *dom.Node, phase Phase) {
	if aux := n.Aux(); aux != nil {
		ctx.process(aux, phase)
	}
	for _, ch := range n.Children() {
		ctx.process(ch, phase)
	}
	switch phase {
	case Register:
		ctx.register(n)
	case Resolve:
		ctx.resolve(n)
	case Consume:
		ctx.consume(n)
	default:
		ctx.execute(n, phase)
	}
}

// --- Register --------------------------------------------------------------

func (ctx *Context) register(n *dom.Node) {
	switch n.Kind {
	case dom.KindCommandContainer:
		// a command without a generator creates no content and applies to
		// the enclosing block
		if n.Cmd.Generator != nil || n.Cmd.IsEmpty() {
			return
		}
		if container := n.ContainingElement(); container != nil {
			container.Cmd.Integrate(n.Cmd)
			n.Cmd = command.New()
		}
	case dom.KindHeading:
		if n.Cmd.ID == "" {
			n.Cmd.ID = dom.MakeID(n.LiteralText())
		}
		if n.Cmd.ID != "" {
			ctx.enter(n, dom.Key(dom.TagHeading, n.Cmd.ID))
		}
	case dom.KindIdDefinition:
		if n.Symbol == dom.TagCommand {
			n.Cmd.RefName = n.Text
			ctx.declared[dom.Key(dom.TagCommand, n.Text)] = n.Cmd.Clone()
		}
		ctx.enter(n, dom.Key(n.Symbol, n.Text))
	case dom.KindFootnoteBlock:
		ctx.enter(n, dom.Key(dom.TagFootnote, n.Text))
	}
}

// enter registers n with its document.
func (ctx *Context) enter(n *dom.Node, key string) {
	doc := n.Document()
	if doc == nil {
		tracer().Debugf("register: %v is not part of a document", n)
		return
	}
	doc.Register(key, n)
}

// --- Resolve ---------------------------------------------------------------

func (ctx *Context) resolve(n *dom.Node) {
	switch n.Kind {
	case dom.KindLink, dom.KindImage, dom.KindFootnoteRef:
		ctx.resolveTarget(n)
	case dom.KindTask:
		ctx.validateTask(n)
	}
	n.Cmd.Resolve(ctx.declaredCommand)
}

// resolveTarget follows a '%id' indirection of a link-like node to a link
// target definition. An empty id refers to the definition named like the
// node's text. If there is no such definition, the node is left unchanged.
func (ctx *Context) resolveTarget(n *dom.Node) {
	if !strings.HasPrefix(n.URL, "%") {
		return
	}
	id := dom.MakeID(n.URL[1:])
	if id == "" && !n.Aux().IsEmptyOrNil() {
		id = dom.MakeID(n.LiteralText())
	}
	def, ok := ctx.Lookup(dom.Key(dom.TagAnchor, id))
	if !ok || def.Kind != dom.KindIdDefinition {
		tracer().Infof("no link target %q", n.URL)
		return
	}
	n.URL = def.URL
	n.Cmd.Integrate(def.Cmd)
}

// validateTask checks if a task marker starts an item of an unordered
// list, i.e. is the first inline of the first paragraph of a list item.
// Only then it is rendered as a checkbox.
func (ctx *Context) validateTask(n *dom.Node) {
	n.Flag = false
	text := n.Parent()
	if text == nil || text.Kind != dom.KindInlineText || text.FirstChild() != n {
		return
	}
	para := text.Parent()
	if para == nil || para.Kind != dom.KindParagraph || para.FirstChild() != text {
		return
	}
	item := para.Parent()
	if item == nil || item.Kind != dom.KindListItem || item.FirstChild() != para {
		return
	}
	if list := item.Parent(); list == nil || list.Kind != dom.KindUnorderedList {
		return
	}
	n.Flag = true
	item.Cmd.AddClass("nd-task-list-item")
}

// --- Consume ---------------------------------------------------------------

// consume lets a container absorb the commands of its empty children.
// Integration is fill-if-absent, so among several empty children the first
// one to carry an id or title wins. The document root does not consume, as
// its command is never rendered.
func (ctx *Context) consume(n *dom.Node) {
	switch {
	case n.Kind == dom.KindDocument:
		return
	case n.Kind == dom.KindHeading || n.Kind == dom.KindCollapsible:
		if aux := n.Aux(); aux != nil && aux.CanConsume() {
			absorb(n, aux)
		}
		return
	case n.IsBlock() || n.Kind == dom.KindInlineText:
		for _, ch := range n.Children() {
			if ch.CanConsume() {
				absorb(n, ch)
			}
		}
	}
}

func absorb(container, child *dom.Node) {
	if child.Cmd.IsEmpty() {
		return
	}
	container.Cmd.Integrate(child.Cmd)
	child.Cmd = command.New()
}

// --- Execute ---------------------------------------------------------------

// execute calls the modifier functions of n's command, and in phase
// ExecuteMain its generator function. Unknown functions are skipped.
func (ctx *Context) execute(n *dom.Node, phase Phase) {
	mods := n.Cmd.Modifiers
	gen := n.Cmd.Generator
	for _, m := range mods {
		if fn, ok := ctx.Functions.Lookup(m.Key('&')); ok {
			fn(ctx, n, phase, m.Args)
		} else if phase == ExecutePrep {
			tracer().Infof("unknown modifier function %q", m.Name)
		}
	}
	if phase != ExecuteMain || gen == nil {
		return
	}
	if fn, ok := ctx.Functions.Lookup(gen.Key('$')); ok {
		fn(ctx, n, phase, gen.Args)
	} else {
		tracer().Infof("unknown generator function %q", gen.Name)
	}
}
