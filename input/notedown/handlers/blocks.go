package handlers

import (
	"github.com/npillmayer/notedown/engine/dom"
	"github.com/npillmayer/notedown/input/notedown"
)

// --- Paragraph -------------------------------------------------------------

// paragraphHandler collects lines of text until a blank line.
type paragraphHandler struct {
	para *dom.Node
}

func (h *paragraphHandler) CanHandle(p *notedown.Parser) bool {
	k := p.Tok().Kind
	return k == notedown.TokSpace || k == notedown.TokText
}

func (h *paragraphHandler) Handle(p *notedown.Parser) (*dom.Node, bool, error) {
	if h.para == nil {
		for p.Tok().Kind == notedown.TokSpace {
			p.Advance()
		}
		h.para = p.NewNode(dom.KindParagraph)
	}
	text, _ := p.ParseText(true, true, true, 0)
	p.Advance() // newline
	if text == nil { // blank line ends the paragraph
		return h.Finish(p), true, nil
	}
	h.para.AppendChild(text)
	return nil, false, nil
}

func (h *paragraphHandler) Finish(p *notedown.Parser) *dom.Node {
	if h.para == nil || h.para.ChildCount() == 0 {
		return nil
	}
	return h.para
}

// --- Heading ---------------------------------------------------------------

type headingHandler struct{}

func (headingHandler) CanHandle(p *notedown.Parser) bool {
	tok := p.Tok()
	if !tok.Is('#', -1) || tok.Count > 6 {
		return false
	}
	k := p.PeekKind()
	return k == notedown.TokSpace || k == notedown.TokNewline
}

func (headingHandler) Handle(p *notedown.Parser) (*dom.Node, bool, error) {
	heading := p.NewNode(dom.KindHeading)
	heading.Level = p.Tok().Count
	p.Advance()
	if p.Tok().Kind == notedown.TokSpace {
		p.Advance()
	}
	text, _ := p.ParseText(false, true, true, 0)
	heading.SetAux(text)
	p.Advance() // newline
	return heading, true, nil
}

func (headingHandler) Finish(p *notedown.Parser) *dom.Node {
	return nil
}

// --- Horizontal rule -------------------------------------------------------

type hruleHandler struct{}

func (hruleHandler) CanHandle(p *notedown.Parser) bool {
	k := p.PeekKind()
	return p.Tok().Is('-', -1) && p.Tok().Count >= 3 &&
		(k == notedown.TokNewline || k == notedown.TokEOF)
}

func (hruleHandler) Handle(p *notedown.Parser) (*dom.Node, bool, error) {
	p.Advance()
	p.Advance()
	return p.NewNode(dom.KindHRule), true, nil
}

func (hruleHandler) Finish(p *notedown.Parser) *dom.Node {
	return nil
}

// --- Code block ------------------------------------------------------------

// codeHandler reads a fenced code block. The text following the language
// on the opening fence is parsed as inline text; it usually carries a
// command for the code block.
type codeHandler struct {
	fence int
	lang  string
	first *dom.Node
	lines []string
}

func (h *codeHandler) CanHandle(p *notedown.Parser) bool {
	return h.fence > 0 || (p.Tok().Is('`', -1) && p.Tok().Count >= 3)
}

func (h *codeHandler) Handle(p *notedown.Parser) (*dom.Node, bool, error) {
	if h.fence == 0 {
		h.fence = p.Tok().Count
		p.Advance()
		lang, more := p.ReadUntil(func(p *notedown.Parser) bool {
			return p.Tok().Kind == notedown.TokSpace
		})
		h.lang = lang
		if more {
			p.Advance()
			h.first, _ = p.ParseText(false, true, true, 0)
			p.Advance() // newline
		}
		return nil, false, nil
	}
	line, closed := p.ReadRawUntil(func(p *notedown.Parser) bool {
		k := p.PeekKind()
		return p.Tok().Is('`', h.fence) && (k == notedown.TokNewline || k == notedown.TokEOF)
	})
	if !closed {
		h.lines = append(h.lines, line)
		return nil, false, nil
	}
	if line != "" {
		h.lines = append(h.lines, line)
	}
	p.Advance() // fence
	p.Advance() // newline
	code := p.NewNode(dom.KindCodeBlock)
	code.Text = h.lang
	code.Lines = h.lines
	code.Flag = true
	code.SetAux(h.first)
	return code, true, nil
}

// Finish is called for a code block which is not closed. Its lines are
// output as a paragraph.
func (h *codeHandler) Finish(p *notedown.Parser) *dom.Node {
	tracer().Infof("%s: code block not closed", p.Doc.Filename)
	if len(h.lines) == 0 {
		return nil
	}
	para := p.NewNode(dom.KindParagraph)
	for _, line := range h.lines {
		text := p.NewNode(dom.KindInlineText)
		para.AppendChild(text.AppendChild(p.NewText(line)))
	}
	return para
}
