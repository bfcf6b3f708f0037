package handlers

import (
	"github.com/npillmayer/notedown/engine/dom"
	"github.com/npillmayer/notedown/input/notedown"
)

func isSpaceOrNewline(k notedown.TokenKind) bool {
	return k == notedown.TokSpace || k == notedown.TokNewline
}

// --- Blockquote ------------------------------------------------------------

// blockquoteHandler reads '> ' (and '>> ' for centered) blockquotes.
// Further lines continue the blockquote if they are indented or start
// with the same marker.
type blockquoteHandler struct {
	notedown.Continuation
}

func (h *blockquoteHandler) CanHandle(p *notedown.Parser) bool {
	if h.CanContinue(p) {
		return true
	}
	tok := p.Tok()
	if !tok.Is('>', -1) || tok.Count > 2 || !isSpaceOrNewline(p.PeekKind()) {
		return false
	}
	return h.Root == nil || h.Root.Flag == (tok.Count == 2)
}

func (h *blockquoteHandler) Handle(p *notedown.Parser) (*dom.Node, bool, error) {
	if h.Root == nil {
		h.Root = p.NewNode(dom.KindBlockquote)
		h.Root.Flag = p.Tok().Count == 2
	}
	if !p.Tok().Is('>', -1) {
		h.Continue(p)
		return nil, false, nil
	}
	p.Advance()
	if p.Tok().Kind == notedown.TokSpace {
		p.AdvanceN(1)
	}
	h.ParseNested(p)
	return nil, false, nil
}

func (h *blockquoteHandler) Finish(p *notedown.Parser) *dom.Node {
	h.FinishNested(p)
	return h.Root
}

// --- Lists -----------------------------------------------------------------

// listHandler reads ordered or unordered lists. Each marker line starts a
// new list item; lines indented by at least the width of the marker
// continue the current item.
type listHandler struct {
	notedown.Continuation
	ordered bool
}

func (h *listHandler) isMarker(p *notedown.Parser) bool {
	tok := p.Tok()
	if !isSpaceOrNewline(p.PeekKind()) {
		return false
	}
	if h.ordered {
		return tok.Kind == notedown.TokNumber && tok.Str[len(tok.Str)-1] == '.'
	}
	return tok.Is('-', 1) || tok.Is('+', 1)
}

func (h *listHandler) CanHandle(p *notedown.Parser) bool {
	return h.CanContinue(p) || h.isMarker(p)
}

func (h *listHandler) Handle(p *notedown.Parser) (*dom.Node, bool, error) {
	if !h.isMarker(p) {
		h.Continue(p)
		return nil, false, nil
	}
	tok := p.Tok()
	if h.Root == nil {
		if h.ordered {
			h.Root = p.NewNode(dom.KindOrderedList)
			h.Root.Level = tok.Count
		} else {
			h.Root = p.NewNode(dom.KindUnorderedList)
		}
	}
	item := p.NewNode(dom.KindListItem)
	if h.ordered {
		item.Level = tok.Count
	} else {
		item.Level = h.Root.ChildCount() + 1
	}
	h.SetBody(p, item)
	h.Root.AppendChild(item)
	width := len(tok.Str)
	p.Advance()
	if p.Tok().Kind == notedown.TokSpace {
		width += p.Tok().Count
		p.Advance()
	}
	h.FixIndent(width)
	h.ParseNested(p)
	return nil, false, nil
}

func (h *listHandler) Finish(p *notedown.Parser) *dom.Node {
	h.FinishNested(p)
	return h.Root
}

// --- Info block ------------------------------------------------------------

// infoBlockHandler reads info blocks, i.e. '>type> text' or
// '>:type:> text'. The type ends up as a class of the rendered block.
type infoBlockHandler struct {
	notedown.Continuation
}

func (h *infoBlockHandler) CanHandle(p *notedown.Parser) bool {
	if h.Root != nil {
		return h.CanContinue(p)
	}
	k := p.PeekKind()
	return p.Tok().Is('>', 1) &&
		(k == notedown.TokText || (k == notedown.TokSymbol && p.PeekChar() == ':'))
}

func (h *infoBlockHandler) Handle(p *notedown.Parser) (*dom.Node, bool, error) {
	if h.Root != nil {
		h.Continue(p)
		return nil, false, nil
	}
	p.Advance()
	symbolic := p.Tok().Is(':', -1)
	if symbolic {
		if p.Tok().Count != 1 {
			return nil, false, notedown.ErrNoMatch
		}
		p.Advance()
	}
	typ, ok := p.ReadUntil(func(p *notedown.Parser) bool {
		k := p.Tok().Kind
		return k == notedown.TokSpace || k == notedown.TokSymbol
	})
	if !ok || typ == "" {
		return nil, false, notedown.ErrNoMatch
	}
	if symbolic {
		if !p.Tok().Is(':', 1) {
			return nil, false, notedown.ErrNoMatch
		}
		p.Advance()
	}
	if !p.Tok().Is('>', 1) || p.PeekKind() != notedown.TokSpace {
		return nil, false, notedown.ErrNoMatch
	}
	p.Advance()
	p.AdvanceN(1)
	h.Root = p.NewNode(dom.KindInfoBlock)
	h.Root.Text = typ
	h.Root.Flag = symbolic
	h.ParseNested(p)
	return nil, false, nil
}

func (h *infoBlockHandler) Finish(p *notedown.Parser) *dom.Node {
	h.FinishNested(p)
	return h.Root
}

// --- Id definitions --------------------------------------------------------

// idDefinitionHandler reads definitions of link targets, reusable command
// blocks and replacement blocks:
//
//	%(id): url cmd
//	%{id}: cmd
//	%<id>: block content
type idDefinitionHandler struct {
	notedown.Continuation
}

func closing(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '{':
		return '}'
	}
	return '>'
}

func (h *idDefinitionHandler) CanHandle(p *notedown.Parser) bool {
	if h.Root != nil {
		return h.CanContinue(p)
	}
	if !p.Tok().Is('%', 1) || p.PeekKind() != notedown.TokSymbol {
		return false
	}
	c := p.PeekChar()
	return c == '(' || c == '{' || c == '<'
}

func (h *idDefinitionHandler) Handle(p *notedown.Parser) (*dom.Node, bool, error) {
	if h.Root != nil {
		h.Continue(p)
		return nil, false, nil
	}
	p.Advance()
	open := p.Tok().Char()
	if p.Tok().Count != 1 {
		return nil, false, notedown.ErrNoMatch
	}
	p.Advance()
	end := closing(open)
	id, ok := p.ReadUntil(func(p *notedown.Parser) bool {
		return p.Tok().Is(end, 1) && p.PeekKind() == notedown.TokSymbol && p.PeekChar() == ':'
	})
	if !ok || id == "" {
		return nil, false, notedown.ErrNoMatch
	}
	p.Advance()
	if !p.Tok().Is(':', 1) || p.PeekKind() != notedown.TokSpace {
		return nil, false, notedown.ErrNoMatch
	}
	p.Advance()
	p.Advance()
	def := p.NewNode(dom.KindIdDefinition)
	def.Text = id
	def.Symbol = open
	switch open {
	case '(':
		url, cmd, _ := p.ParseLink(0)
		def.URL = url
		def.Cmd.Parse(cmd)
		return def, true, nil
	case '{':
		cmd, _ := p.ReadCommand(0)
		def.Cmd.Parse(cmd)
		def.Cmd.RefName = id
		return def, true, nil
	}
	h.Root = def
	h.ParseNested(p)
	return nil, false, nil
}

func (h *idDefinitionHandler) Finish(p *notedown.Parser) *dom.Node {
	h.FinishNested(p)
	return h.Root
}

// --- Footnotes -------------------------------------------------------------

// footnoteHandler reads footnote blocks '^id: text'.
type footnoteHandler struct {
	notedown.Continuation
}

func (h *footnoteHandler) CanHandle(p *notedown.Parser) bool {
	if h.Root != nil {
		return h.CanContinue(p)
	}
	k := p.PeekKind()
	return p.Tok().Is('^', 1) && (k == notedown.TokText || k == notedown.TokNumber)
}

func (h *footnoteHandler) Handle(p *notedown.Parser) (*dom.Node, bool, error) {
	if h.Root != nil {
		h.Continue(p)
		return nil, false, nil
	}
	p.Advance()
	id, ok := p.ReadUntil(func(p *notedown.Parser) bool {
		return p.Tok().Is(':', 1) && p.PeekKind() == notedown.TokSpace
	})
	if !ok || dom.FootnoteID(id) == "" {
		return nil, false, notedown.ErrNoMatch
	}
	p.Advance()
	p.AdvanceN(1)
	h.Root = p.NewNode(dom.KindFootnoteBlock)
	h.Root.Text = dom.FootnoteID(id)
	h.ParseNested(p)
	return nil, false, nil
}

func (h *footnoteHandler) Finish(p *notedown.Parser) *dom.Node {
	h.FinishNested(p)
	return h.Root
}

// --- Collapsible sections --------------------------------------------------

// collapseHandler reads collapsible sections. '+-- summary' starts a closed
// section, '++- summary' an open one.
type collapseHandler struct {
	notedown.Continuation
}

func (h *collapseHandler) CanHandle(p *notedown.Parser) bool {
	if h.Root != nil {
		return h.CanContinue(p)
	}
	return p.Tok().Is('+', -1) && p.Tok().Count <= 2 &&
		p.PeekKind() == notedown.TokSymbol && p.PeekChar() == '-'
}

func (h *collapseHandler) Handle(p *notedown.Parser) (*dom.Node, bool, error) {
	if h.Root != nil {
		h.Continue(p)
		return nil, false, nil
	}
	open := p.Tok().Count == 2
	p.Advance()
	dashes := 2
	if open {
		dashes = 1
	}
	if !p.Tok().Is('-', dashes) || !isSpaceOrNewline(p.PeekKind()) {
		return nil, false, notedown.ErrNoMatch
	}
	p.Advance()
	if p.Tok().Kind == notedown.TokSpace {
		p.Advance()
	}
	summary, _ := p.ParseText(false, true, true, 0)
	p.Advance() // newline
	h.Root = p.NewNode(dom.KindCollapsible)
	h.Root.Flag = open
	h.Root.SetAux(summary)
	return nil, false, nil
}

func (h *collapseHandler) Finish(p *notedown.Parser) *dom.Node {
	h.FinishNested(p)
	return h.Root
}
