package notedown

import (
	"io"

	"github.com/npillmayer/notedown/core"
	"github.com/npillmayer/notedown/engine/dom"
)

// Slot holds the open block handler of a line position: the top level
// of a document, or the nested lines of a Continuation.
type Slot struct {
	h   Handler
	inx int
}

// IsOpen is a predicate: is there an open handler?
func (s *Slot) IsOpen() bool {
	return s.h != nil
}

func (s *Slot) clear() {
	s.h, s.inx = nil, -1
}

// Parser parses one document. A parser is not safe for concurrent use,
// but any number of parsers may share a grammar.
type Parser struct {
	*Lexer
	Doc     *dom.Document
	grammar *Grammar
	top     Slot
}

// NewParser creates a parser for a document named filename.
func NewParser(g *Grammar, filename string) *Parser {
	return &Parser{
		Doc:     dom.NewDocument(filename),
		grammar: g,
	}
}

// Parse reads all of r and parses it into the parser's document.
func (p *Parser) Parse(r io.Reader) (*dom.Document, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read %s", p.Doc.Filename)
	}
	return p.ParseBytes(input), nil
}

// ParseBytes parses input into the parser's document.
func (p *Parser) ParseBytes(input []byte) *dom.Document {
	p.Lexer = NewLexer(input, p.grammar.Symbols())
	p.top.clear()
	root := p.Doc.Root
	for !p.AtEOF() {
		before := p.Snapshot()
		n, again := p.ParseLine(&p.top)
		root.AppendChild(n)
		if !again && !p.top.IsOpen() && p.Snapshot() == before {
			// no handler made progress
			root.AppendChild(p.literalParagraph())
		}
	}
	n, _ := p.ParseLine(&p.top) // finish constructs open at end of input
	root.AppendChild(n)
	tracer().Debugf("%s: parsed %d nodes", p.Doc.Filename, p.Doc.Tree.Size())
	return p.Doc
}

// ParseLine dispatches the current line position to a block handler.
//
// If slot has an open handler which accepts the line, it continues.
// If it declines, it is finished and its result returned, with again = true
// to tell the caller that the line has not been consumed yet. Otherwise
// block handlers are tried in order; a handler failing with ErrNoMatch is
// rolled back and the search resumes after it. If no handler matches, the
// default handler takes the line.
//
// The node returned (which may be nil) is to be appended to the caller's
// container.
func (p *Parser) ParseLine(slot *Slot) (*dom.Node, bool) {
	if slot.h != nil {
		if p.AtEOF() || !slot.h.CanHandle(p) {
			n := slot.h.Finish(p)
			slot.clear()
			return n, true
		}
		snap := p.Snapshot()
		n, finished, err := slot.h.Handle(p)
		if err != nil {
			tracer().Debugf("open handler failed to continue, finishing it")
			p.Restore(snap)
			n = slot.h.Finish(p)
			slot.clear()
			return n, true
		}
		if finished {
			slot.clear()
		}
		return n, false
	}
	if p.AtEOF() {
		return nil, false
	}
	after := -1
	for {
		fallback := false
		h, inx := p.grammar.blocks.find(p, after)
		if h == nil {
			if h, inx = p.grammar.defaultBlock(); h == nil {
				return p.literalParagraph(), false
			}
			fallback = true
		}
		snap := p.Snapshot()
		n, finished, err := h.Handle(p)
		if err == nil {
			if !finished {
				slot.h, slot.inx = h, inx
			}
			return n, false
		}
		p.Restore(snap)
		tracer().Debugf("block handler %q did not match at %v", p.grammar.blocks.rules[inx].name, p.Tok())
		if fallback {
			return p.literalParagraph(), false
		}
		after = inx
	}
}

// literalParagraph consumes the current token as literal text.
func (p *Parser) literalParagraph() *dom.Node {
	tok := p.Tok()
	p.Advance()
	if tok.Kind == TokNewline || tok.Kind == TokEOF {
		return nil
	}
	para := p.NewNode(dom.KindParagraph)
	text := p.NewNode(dom.KindInlineText)
	text.AppendChild(p.Doc.Tree.NewText(tok.Literal()))
	return para.AppendChild(text)
}

// NewNode creates a detached node in the parser's document.
func (p *Parser) NewNode(k dom.Kind) *dom.Node {
	return p.Doc.Tree.NewNode(k)
}

// NewText creates a detached text node in the parser's document.
func (p *Parser) NewText(s string) *dom.Node {
	return p.Doc.Tree.NewText(s)
}

// PeekIsBlank is a predicate: is the pending character a space, a newline
// or the end of input?
func (p *Parser) PeekIsBlank() bool {
	k := p.PeekKind()
	return k == TokSpace || k == TokNewline || k == TokEOF
}
