package notedown

import (
	"errors"
	"fmt"

	"github.com/npillmayer/notedown/engine/dom"
)

// ErrNoMatch is returned by a handler's Handle method if the input does
// not match the handler's construct. The parser will roll back the input
// and try the next handler.
var ErrNoMatch = errors.New("notedown: no match")

// Handler is a grammar rule for a block or an inline construct.
//
// A handler instance is created for every attempt to match its construct
// and lives as long as the construct is open. Block handlers may stay open
// for several lines, collecting their construct's content in between
// calls to Handle. Inline handlers are always finished after Handle.
type Handler interface {
	// CanHandle is a predicate over the current token and the lookahead.
	// It must not consume input and must be false at the end of input.
	// For an open block handler it decides if the handler continues.
	CanHandle(p *Parser) bool
	// Handle consumes input. It returns a node to attach to the tree (or
	// nil) and whether the construct is complete. If the input does not
	// match, Handle returns ErrNoMatch; the parser then rolls back the
	// input.
	Handle(p *Parser) (*dom.Node, bool, error)
	// Finish is called if an open handler declines to continue. It closes
	// the construct and returns it (or nil).
	Finish(p *Parser) *dom.Node
}

// HandlerFunc creates a fresh handler instance.
type HandlerFunc func() Handler

type rule struct {
	name   string
	create HandlerFunc
}

type family struct {
	rules   []rule
	aliases map[string]int
}

func (f *family) add(name string, create HandlerFunc) error {
	if f.aliases == nil {
		f.aliases = make(map[string]int)
	}
	if _, exists := f.aliases[name]; exists {
		return fmt.Errorf("notedown: handler %q already registered", name)
	}
	f.rules = append(f.rules, rule{name: name, create: create})
	f.aliases[name] = len(f.rules) - 1
	return nil
}

func (f *family) alias(alias, name string) error {
	inx, ok := f.aliases[name]
	if !ok {
		return fmt.Errorf("notedown: no handler %q to alias", name)
	}
	if _, exists := f.aliases[alias]; exists {
		return fmt.Errorf("notedown: handler %q already registered", alias)
	}
	f.aliases[alias] = inx
	return nil
}

// find searches for a handler able to handle the current situation,
// starting after index after.
func (f *family) find(p *Parser, after int) (Handler, int) {
	for i := after + 1; i < len(f.rules); i++ {
		h := f.rules[i].create()
		if h.CanHandle(p) {
			return h, i
		}
	}
	return nil, -1
}

// DefaultHandler is the name under which the fallback block handler is
// registered.
const DefaultHandler = "default"

// Grammar is an ordered set of block and inline handlers. Handlers are
// tried in order of registration. A grammar must not be changed while
// parsers use it, but may be shared between concurrent parsers.
type Grammar struct {
	blocks  family
	inlines family
	symbols SymbolSet
}

// NewGrammar creates an empty grammar.
func NewGrammar() *Grammar {
	return &Grammar{}
}

// AddBlock registers a block handler. triggers are the characters the
// handler needs to be tokenized as symbols.
func (g *Grammar) AddBlock(name, triggers string, create HandlerFunc) error {
	if err := g.blocks.add(name, create); err != nil {
		return err
	}
	g.symbols.Add(triggers)
	return nil
}

// AddInline registers an inline handler. triggers are the characters the
// handler needs to be tokenized as symbols.
func (g *Grammar) AddInline(name, triggers string, create HandlerFunc) error {
	if err := g.inlines.add(name, create); err != nil {
		return err
	}
	g.symbols.Add(triggers)
	return nil
}

// AliasBlock registers an alternative name for a block handler.
func (g *Grammar) AliasBlock(alias, name string) error {
	return g.blocks.alias(alias, name)
}

// AliasInline registers an alternative name for an inline handler.
func (g *Grammar) AliasInline(alias, name string) error {
	return g.inlines.alias(alias, name)
}

// SetDefault declares the block handler used for lines no other handler
// accepts.
func (g *Grammar) SetDefault(name string) error {
	return g.blocks.alias(DefaultHandler, name)
}

// Symbols returns the symbol alphabet of the grammar, i.e. the union of
// all handlers' trigger characters.
func (g *Grammar) Symbols() *SymbolSet {
	s := g.symbols
	return &s
}

// BlockHandlers returns the names of the block handlers, in order.
func (g *Grammar) BlockHandlers() []string {
	names := make([]string, len(g.blocks.rules))
	for i, r := range g.blocks.rules {
		names[i] = r.name
	}
	return names
}

// InlineHandlers returns the names of the inline handlers, in order.
func (g *Grammar) InlineHandlers() []string {
	names := make([]string, len(g.inlines.rules))
	for i, r := range g.inlines.rules {
		names[i] = r.name
	}
	return names
}

// NewBlock creates an instance of a named block handler.
func (g *Grammar) NewBlock(name string) (Handler, bool) {
	inx, ok := g.blocks.aliases[name]
	if !ok {
		return nil, false
	}
	return g.blocks.rules[inx].create(), true
}

func (g *Grammar) defaultBlock() (Handler, int) {
	inx, ok := g.blocks.aliases[DefaultHandler]
	if !ok {
		return nil, -1
	}
	return g.blocks.rules[inx].create(), inx
}
