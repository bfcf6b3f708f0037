package notedown

import (
	"strings"

	"github.com/npillmayer/notedown/engine/dom"
)

// ReadUntil reads tokens literally, i.e. without interpreting symbols,
// until cond holds or the line ends. Escapes are resolved.
//
// If cond ended reading, the token satisfying cond is not consumed and ok
// is true. If the line ended, the newline is consumed and ok is false.
func (p *Parser) ReadUntil(cond func(p *Parser) bool) (s string, ok bool) {
	return p.readUntil(cond, false)
}

// ReadRawUntil is like ReadUntil, but escape sequences are kept as
// written. This is what command strings need, which do their own
// unescaping.
func (p *Parser) ReadRawUntil(cond func(p *Parser) bool) (s string, ok bool) {
	return p.readUntil(cond, true)
}

func (p *Parser) readUntil(cond func(p *Parser) bool, raw bool) (string, bool) {
	var b strings.Builder
	for {
		tok := p.Tok()
		if tok.Kind == TokNewline || tok.Kind == TokEOF {
			break
		}
		if cond != nil && cond(p) {
			return b.String(), true
		}
		if raw && tok.Kind == TokText && tok.Escape != 0 {
			b.WriteByte('\\')
			b.WriteByte(tok.Escape)
			b.WriteString(tok.Str[1:])
		} else {
			b.WriteString(tok.Literal())
		}
		p.Advance()
	}
	if p.Tok().Kind == TokNewline {
		p.Advance()
	}
	return b.String(), false
}

// ParseLink reads a link target and a command string up to a closing
// delimiter, e.g. for
//
//	[text](https://example.org #id .cls)
//
// the part following the opening parenthesis. A zero delim reads up to
// the end of the line. Inside double quotes the delimiter is not
// recognized. The closing delimiter is consumed; ok is false if the line
// ended before it.
func (p *Parser) ParseLink(delim byte) (target, cmd string, ok bool) {
	isDelim := func(p *Parser) bool {
		return delim != 0 && p.Tok().Is(delim, -1)
	}
	target, ok = p.ReadUntil(func(p *Parser) bool {
		return p.Tok().Kind == TokSpace || isDelim(p)
	})
	if !ok {
		return target, "", delim == 0
	}
	if p.Tok().Kind == TokSpace {
		p.Advance()
	}
	cmd, ok = p.ReadCommand(delim)
	if !ok {
		return target, cmd, delim == 0
	}
	p.AdvanceN(1)
	return target, cmd, true
}

// ReadCommand reads a raw command string up to (not including) a closing
// delimiter outside of double quotes. A zero delim reads up to the end of
// the line.
func (p *Parser) ReadCommand(delim byte) (string, bool) {
	inQuote := false
	return p.ReadRawUntil(func(p *Parser) bool {
		tok := p.Tok()
		if tok.Is('"', -1) && tok.Count%2 == 1 {
			inQuote = !inQuote
		}
		return !inQuote && delim != 0 && tok.Is(delim, -1)
	})
}

// ParseText parses inline text up to the end of the line.
//
// If allowBreak is set, two or more spaces at the end of a line produce a
// forced line break. Symbols no inline handler accepts are kept as text if
// unknownAsText is set; otherwise parsing stops at them. If allowInline is
// not set, no inline handlers are tried. Parsing stops at symbol stop
// (if not zero), which is not consumed.
//
// The result is an inline text node, or nil if the line was empty. eol is
// true if parsing stopped at the end of the line; the newline is not
// consumed.
func (p *Parser) ParseText(allowBreak, unknownAsText, allowInline bool, stop byte) (text *dom.Node, eol bool) {
	text = p.NewNode(dom.KindInlineText)
	for {
		if e := p.plainText(allowBreak); e != nil {
			text.AppendChild(e)
			continue
		}
		tok := p.Tok()
		if tok.Kind == TokSpace && tok.Count >= 2 && p.PeekKind() == TokNewline {
			p.Advance()
			if allowBreak {
				if text.ChildCount() == 0 {
					return nil, true
				}
				text.AppendChild(p.NewNode(dom.KindLineBreak))
			}
			continue
		}
		if tok.Kind == TokNewline || tok.Kind == TokEOF {
			if text.ChildCount() == 0 {
				return nil, true
			}
			return text, true
		}
		if stop != 0 && tok.Is(stop, -1) {
			return text, false
		}
		if !allowInline {
			if !unknownAsText {
				return text, false
			}
			text.AppendChild(p.NewText(tok.Literal()))
			p.Advance()
			continue
		}
		e, ok := p.parseInline(unknownAsText)
		if !ok {
			return text, false
		}
		text.AppendChild(e)
	}
}

// parseInline dispatches to the inline handlers, with the same
// resume-after-failure rule as for block handlers.
func (p *Parser) parseInline(unknownAsText bool) (*dom.Node, bool) {
	after := -1
	for {
		h, inx := p.grammar.inlines.find(p, after)
		if h == nil {
			if !unknownAsText {
				return nil, false
			}
			tok := p.Tok()
			p.Advance()
			return p.NewText(tok.Literal()), true
		}
		snap := p.Snapshot()
		n, _, err := h.Handle(p)
		if err == nil && p.Snapshot() != snap {
			return n, true
		}
		p.Restore(snap)
		tracer().Debugf("inline handler %q did not match at %v", p.grammar.inlines.rules[inx].name, p.Tok())
		after = inx
	}
}

// plainText reads a run of text, numbers and single spaces.
func (p *Parser) plainText(allowBreak bool) *dom.Node {
	tok := p.Tok()
	switch tok.Kind {
	case TokText, TokNumber:
		return p.textRun()
	case TokSpace:
		switch peek := p.PeekKind(); {
		case allowBreak && tok.Count >= 2 && peek == TokNewline:
			return nil // forced line break
		case peek == TokText:
			return p.textRun()
		case peek == TokNewline:
			p.Advance() // trailing space
		}
	}
	return nil
}

func (p *Parser) textRun() *dom.Node {
	var b strings.Builder
	if tok := p.Tok(); tok.Kind == TokSpace {
		b.WriteByte(' ')
	} else {
		b.WriteString(tok.Str)
	}
	p.Advance()
	for {
		tok := p.Tok()
		if tok.Kind == TokText || tok.Kind == TokNumber {
			b.WriteString(tok.Str)
		} else if tok.Kind == TokSpace && (tok.Count < 2 || p.PeekKind() != TokNewline) {
			b.WriteByte(' ')
		} else {
			break
		}
		p.Advance()
	}
	return p.NewText(b.String())
}
