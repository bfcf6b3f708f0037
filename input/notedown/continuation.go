package notedown

import (
	"github.com/npillmayer/notedown/engine/dom"
)

// Continuation lets a block handler absorb further lines of its construct.
// It is meant to be embedded into handlers for blockquotes, list items,
// footnotes and other blocks which may contain blocks.
//
// A line continues the construct if it is blank or if it is indented by at
// least Indent spaces. The first continuation line fixes Indent, unless the
// handler has fixed it before (see FixIndent). The indentation is stripped
// and the rest of the line is dispatched to a nested handler chain, so any
// block construct may appear inside any other.
type Continuation struct {
	Root   *dom.Node // the construct, nil until the handler has started it
	Body   *dom.Node // receives nested blocks; Root if nil
	Indent int       // indentation of continuation lines, 0 if not yet known
	nested Slot
}

// CanContinue is a predicate: does the current line continue the construct?
func (c *Continuation) CanContinue(p *Parser) bool {
	if c.Root == nil {
		return false
	}
	tok := p.Tok()
	return tok.Kind == TokNewline ||
		(tok.Kind == TokSpace && (c.Indent == 0 || tok.Count >= c.Indent))
}

// FixIndent sets the indentation of continuation lines.
func (c *Continuation) FixIndent(n int) {
	c.Indent = n
}

// Continue strips the indentation of a continuation line and parses the
// rest of the line into the construct.
func (c *Continuation) Continue(p *Parser) {
	if tok := p.Tok(); tok.Kind == TokSpace {
		if c.Indent == 0 {
			c.Indent = tok.Count
		}
		p.AdvanceN(c.Indent)
	}
	c.ParseNested(p)
}

// ParseNested parses the current line into the construct, with the nested
// handler chain.
func (c *Continuation) ParseNested(p *Parser) {
	for {
		n, again := p.ParseLine(&c.nested)
		c.body().AppendChild(n)
		if !again {
			return
		}
	}
}

// FinishNested finishes an open nested handler and appends its result.
func (c *Continuation) FinishNested(p *Parser) {
	if c.nested.IsOpen() && c.Root != nil {
		n := c.nested.h.Finish(p)
		c.nested.clear()
		c.body().AppendChild(n)
	}
}

// SetBody redirects nested blocks to a new container, finishing an open
// nested handler for the previous one.
func (c *Continuation) SetBody(p *Parser, body *dom.Node) {
	c.FinishNested(p)
	c.Body = body
}

func (c *Continuation) body() *dom.Node {
	if c.Body != nil {
		return c.Body
	}
	return c.Root
}
