package handlers

import (
	"github.com/npillmayer/notedown/engine/dom"
	"github.com/npillmayer/notedown/input/notedown"
)

// modifierHandler reads a bracketed text followed by a modifier:
//
//	[text](url cmd)     link
//	[text]!(src cmd)    image
//	[text]^(id cmd)     footnote reference
//	[text]#{cmd}        link to the heading with id MakeID(text)
//	[text]<%id cmd>     replacement
//	[text]{cmd}         styled text
type modifierHandler struct{}

func (modifierHandler) CanHandle(p *notedown.Parser) bool {
	return p.Tok().Is('[', -1) && !isSpaceOrNewline(p.PeekKind())
}

func (modifierHandler) Handle(p *notedown.Parser) (*dom.Node, bool, error) {
	p.AdvanceN(1)
	content, eol := p.ParseText(false, true, true, ']')
	if eol || p.Tok().Count != 1 {
		return nil, false, notedown.ErrNoMatch
	}
	p.Advance()
	tok := p.Tok()
	if tok.Kind != notedown.TokSymbol || tok.Count != 1 {
		return nil, false, notedown.ErrNoMatch
	}
	var n *dom.Node
	switch tok.Char() {
	case '(':
		n = p.NewNode(dom.KindLink)
		p.Advance()
		if !parseTarget(p, n, ')') {
			return nil, false, notedown.ErrNoMatch
		}
	case '!', '^':
		if tok.Char() == '!' {
			n = p.NewNode(dom.KindImage)
		} else {
			n = p.NewNode(dom.KindFootnoteRef)
		}
		p.Advance()
		if !p.Tok().Is('(', 1) {
			return nil, false, notedown.ErrNoMatch
		}
		p.Advance()
		if !parseTarget(p, n, ')') {
			return nil, false, notedown.ErrNoMatch
		}
	case '<':
		n = p.NewNode(dom.KindReplace)
		p.Advance()
		if !p.Tok().Is('%', 1) {
			return nil, false, notedown.ErrNoMatch
		}
		p.Advance()
		if !parseTarget(p, n, '>') {
			return nil, false, notedown.ErrNoMatch
		}
	case '#':
		n = p.NewNode(dom.KindHeadingLink)
		n.URL = dom.MakeID(content.LiteralText())
		p.Advance()
		if p.Tok().Is('{', 1) {
			p.Advance()
			if !parseCommand(p, n) {
				return nil, false, notedown.ErrNoMatch
			}
		}
	case '{':
		n = p.NewNode(dom.KindStyled)
		p.Advance()
		if !parseCommand(p, n) {
			return nil, false, notedown.ErrNoMatch
		}
	default:
		return nil, false, notedown.ErrNoMatch
	}
	n.SetAux(content)
	return n, true, nil
}

func (modifierHandler) Finish(p *notedown.Parser) *dom.Node {
	return nil
}

// parseTarget reads 'target cmd' up to delim into n.
func parseTarget(p *notedown.Parser, n *dom.Node, delim byte) bool {
	target, cmd, ok := p.ParseLink(delim)
	if !ok {
		return false
	}
	n.URL = target
	n.Cmd.Parse(cmd)
	return true
}

// parseCommand reads a command up to '}' into n.
func parseCommand(p *notedown.Parser, n *dom.Node) bool {
	cmd, ok := p.ReadCommand('}')
	if !ok {
		return false
	}
	p.AdvanceN(1)
	n.Cmd.Parse(cmd)
	return true
}
