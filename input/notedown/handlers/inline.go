package handlers

import (
	"github.com/npillmayer/notedown/engine/dom"
	"github.com/npillmayer/notedown/input/notedown"
)

// --- Emphasis --------------------------------------------------------------

// emphasisHandler reads text enclosed in an odd-length run of an emphasis
// symbol, e.g. *bold* or ***bold***.
type emphasisHandler struct {
	sym byte
}

func emphasis(sym byte) notedown.HandlerFunc {
	return func() notedown.Handler {
		return emphasisHandler{sym: sym}
	}
}

// opens is a predicate: does the current token open a span of sym?
func opens(p *notedown.Parser, sym byte) bool {
	tok := p.Tok()
	return tok.Is(sym, -1) && tok.Count%2 == 1 && !isSpaceOrNewline(p.PeekKind())
}

func (h emphasisHandler) CanHandle(p *notedown.Parser) bool {
	return opens(p, h.sym)
}

func (h emphasisHandler) Handle(p *notedown.Parser) (*dom.Node, bool, error) {
	p.Advance()
	content, eol := p.ParseText(false, true, true, h.sym)
	if eol { // not closed: the symbol is literal text
		if content == nil {
			content = p.NewNode(dom.KindInlineText)
		}
		content.InsertChildAt(0, p.NewText(string(h.sym)))
		return content, true, nil
	}
	p.Advance()
	if content.ChildCount() == 0 {
		return nil, true, nil
	}
	em := p.NewNode(dom.KindEmphasis)
	em.Symbol = h.sym
	em.SetAux(content)
	return em, true, nil
}

func (emphasisHandler) Finish(p *notedown.Parser) *dom.Node {
	return nil
}

// --- Inline code -----------------------------------------------------------

// inlineCodeHandler reads `code`. Its content is not parsed for inline
// constructs.
type inlineCodeHandler struct{}

func (inlineCodeHandler) CanHandle(p *notedown.Parser) bool {
	return opens(p, '`')
}

func (inlineCodeHandler) Handle(p *notedown.Parser) (*dom.Node, bool, error) {
	p.Advance()
	content, eol := p.ParseText(false, true, false, '`')
	if eol {
		return nil, false, notedown.ErrNoMatch
	}
	p.Advance()
	code := p.NewNode(dom.KindEmphasis)
	code.Symbol = '`'
	code.SetAux(content)
	return code, true, nil
}

func (inlineCodeHandler) Finish(p *notedown.Parser) *dom.Node {
	return nil
}

// --- Emoji -----------------------------------------------------------------

// emojiHandler reads :shortcode:.
type emojiHandler struct{}

func (emojiHandler) CanHandle(p *notedown.Parser) bool {
	return p.Tok().Is(':', -1) && !isSpaceOrNewline(p.PeekKind())
}

func (emojiHandler) Handle(p *notedown.Parser) (*dom.Node, bool, error) {
	if p.Tok().Count%2 == 0 {
		return nil, false, notedown.ErrNoMatch
	}
	p.Advance()
	content, eol := p.ParseText(false, true, false, ':')
	if eol || content.ChildCount() == 0 {
		return nil, false, notedown.ErrNoMatch
	}
	p.Advance()
	emoji := p.NewNode(dom.KindEmoji)
	emoji.Text = content.LiteralText()
	return emoji, true, nil
}

func (emojiHandler) Finish(p *notedown.Parser) *dom.Node {
	return nil
}

// --- Commands --------------------------------------------------------------

// commandHandler reads a bare {command}. The command applies to the
// surrounding element, or generates content if it calls a generator.
type commandHandler struct{}

func (commandHandler) CanHandle(p *notedown.Parser) bool {
	k := p.PeekKind()
	return p.Tok().Is('{', -1) && !isSpaceOrNewline(k) && k != notedown.TokEOF
}

func (commandHandler) Handle(p *notedown.Parser) (*dom.Node, bool, error) {
	p.Advance()
	cmd, ok := p.ReadCommand('}')
	if !ok {
		return nil, false, notedown.ErrNoMatch
	}
	p.AdvanceN(1)
	cc := p.NewNode(dom.KindCommandContainer)
	cc.Cmd.Parse(cmd)
	return cc, true, nil
}

func (commandHandler) Finish(p *notedown.Parser) *dom.Node {
	return nil
}

// --- Tasks -----------------------------------------------------------------

// taskHandler reads task markers '[ ] ', '[] ' and '[x] '.
type taskHandler struct{}

func (taskHandler) CanHandle(p *notedown.Parser) bool {
	if !p.Tok().Is('[', 1) {
		return false
	}
	switch p.PeekKind() {
	case notedown.TokSpace:
		return true
	case notedown.TokText:
		c := p.PeekChar()
		return c == 'x' || c == 'X'
	case notedown.TokSymbol:
		return p.PeekChar() == ']'
	}
	return false
}

func (taskHandler) Handle(p *notedown.Parser) (*dom.Node, bool, error) {
	p.Advance()
	mark := byte(' ')
	switch tok := p.Tok(); tok.Kind {
	case notedown.TokSpace:
		if tok.Count != 1 {
			return nil, false, notedown.ErrNoMatch
		}
		p.Advance()
	case notedown.TokText:
		if tok.Str != "x" && tok.Str != "X" {
			return nil, false, notedown.ErrNoMatch
		}
		mark = 'x'
		p.Advance()
	}
	if !p.Tok().Is(']', 1) || p.PeekKind() != notedown.TokSpace {
		return nil, false, notedown.ErrNoMatch
	}
	p.Advance()
	task := p.NewNode(dom.KindTask)
	task.Symbol = mark
	return task, true, nil
}

func (taskHandler) Finish(p *notedown.Parser) *dom.Node {
	return nil
}
