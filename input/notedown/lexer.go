package notedown

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenKind is the type of a token.
type TokenKind uint8

// Token kinds
const (
	TokEOF TokenKind = iota
	TokText
	TokNumber
	TokSpace
	TokNewline
	TokSymbol
	tokEscape // internal: classification of '\'
)

func (k TokenKind) String() string {
	switch k {
	case TokEOF:
		return "EOF"
	case TokText:
		return "Text"
	case TokNumber:
		return "Number"
	case TokSpace:
		return "Space"
	case TokNewline:
		return "Newline"
	case TokSymbol:
		return "Symbol"
	}
	return "Escape"
}

// Token is a token of the input.
//
// Space and Symbol tokens are runs of a single character: Str holds the
// character, Count the length of the run. Number tokens hold their digits
// (and an optional trailing '.') in Str and their value in Count.
// If a Text token starts with an escape sequence, Escape holds the escaped
// character as written in the input.
type Token struct {
	Kind   TokenKind
	Str    string
	Count  int
	Escape byte
}

// Char returns the first character of the token, or 0.
func (t Token) Char() byte {
	if t.Str == "" {
		return 0
	}
	return t.Str[0]
}

// Is is a predicate: is t a symbol run of sym? If count is negative, any
// run length matches.
func (t Token) Is(sym byte, count int) bool {
	return t.Kind == TokSymbol && t.Str[0] == sym && (count < 0 || t.Count == count)
}

// Literal returns the input text t stands for, with escapes resolved.
func (t Token) Literal() string {
	switch t.Kind {
	case TokText, TokNumber:
		return t.Str
	case TokSpace, TokSymbol:
		return strings.Repeat(t.Str, t.Count)
	case TokNewline:
		return "\n"
	}
	return ""
}

func (t Token) String() string {
	switch t.Kind {
	case TokSpace, TokSymbol:
		return fmt.Sprintf("%s(%q×%d)", t.Kind, t.Str, t.Count)
	case TokText, TokNumber:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Str)
	}
	return t.Kind.String()
}

// SymbolSet is the set of characters tokenized as symbols.
type SymbolSet [256]bool

// Add adds all characters of chars to the set.
func (s *SymbolSet) Add(chars string) {
	for i := 0; i < len(chars); i++ {
		s[chars[i]] = true
	}
}

// Contains is a predicate: is c a symbol?
func (s *SymbolSet) Contains(c byte) bool {
	return s[c]
}

func (s *SymbolSet) String() string {
	var b strings.Builder
	for c := 0; c < 256; c++ {
		if s[c] {
			b.WriteByte(byte(c))
		}
	}
	return b.String()
}

// Snapshot is the captured state of a lexer. Restoring a snapshot resets
// the lexer to exactly this state. The pending lookahead character is the
// one at Offset.
type Snapshot struct {
	Offset int
	Tok    Token
}

// Lexer tokenizes Notedown input. There is always a current token, which is
// consumed by Advance, and a single pending lookahead character.
type Lexer struct {
	input   []byte
	pos     int // offset of the pending character
	tok     Token
	symbols *SymbolSet
}

// NewLexer creates a lexer for input and loads the first token.
func NewLexer(input []byte, symbols *SymbolSet) *Lexer {
	if symbols == nil {
		symbols = &SymbolSet{}
	}
	lex := &Lexer{input: input, symbols: symbols}
	lex.Advance()
	return lex
}

// Tok returns the current token.
func (lex *Lexer) Tok() Token {
	return lex.tok
}

// Snapshot captures the state of the lexer.
func (lex *Lexer) Snapshot() Snapshot {
	return Snapshot{Offset: lex.pos, Tok: lex.tok}
}

// Restore resets the lexer to a previously captured state.
func (lex *Lexer) Restore(snap Snapshot) {
	lex.pos = snap.Offset
	lex.tok = snap.Tok
}

// Classify returns the kind of token character c would start.
func (lex *Lexer) Classify(c byte) TokenKind {
	if lex.symbols.Contains(c) {
		return TokSymbol
	}
	switch {
	case c >= '0' && c <= '9':
		return TokNumber
	case c == ' ' || c == '\t':
		return TokSpace
	case c == '\n' || c == '\r':
		return TokNewline
	case c == '\\':
		return tokEscape
	}
	return TokText
}

// PeekKind returns the kind of token the pending character will start.
// An escape starts a text token.
func (lex *Lexer) PeekKind() TokenKind {
	if lex.pos >= len(lex.input) {
		return TokEOF
	}
	k := lex.Classify(lex.input[lex.pos])
	if k == tokEscape {
		return TokText
	}
	return k
}

// PeekChar returns the pending character, or 0 at the end of input.
func (lex *Lexer) PeekChar() byte {
	if lex.pos >= len(lex.input) {
		return 0
	}
	return lex.input[lex.pos]
}

// Advance consumes the current token and loads the next one.
// At the end of input, the current token is TokEOF forever.
func (lex *Lexer) Advance() Token {
	if lex.pos >= len(lex.input) {
		lex.tok = Token{Kind: TokEOF}
		return lex.tok
	}
	start := lex.pos
	c := lex.input[start]
	switch kind := lex.Classify(c); kind {
	case TokSymbol, TokSpace:
		lex.pos++
		for lex.pos < len(lex.input) && lex.input[lex.pos] == c {
			lex.pos++
		}
		lex.tok = Token{Kind: kind, Str: string(c), Count: lex.pos - start}
	case TokNewline:
		lex.pos++
		if c == '\r' && lex.pos < len(lex.input) && lex.input[lex.pos] == '\n' {
			lex.pos++
		}
		lex.tok = Token{Kind: TokNewline, Str: "\n", Count: 1}
	case TokNumber:
		for lex.pos < len(lex.input) && isDigit(lex.input[lex.pos]) {
			lex.pos++
		}
		digits := string(lex.input[start:lex.pos])
		value, err := strconv.Atoi(digits)
		if err != nil { // overflow
			value = int(^uint(0) >> 1)
		}
		if lex.pos < len(lex.input) && lex.input[lex.pos] == '.' && !lex.symbols.Contains('.') {
			lex.pos++
		}
		lex.tok = Token{Kind: TokNumber, Str: string(lex.input[start:lex.pos]), Count: value}
	default:
		lex.tok = lex.text()
	}
	return lex.tok
}

// text reads a text token, starting with an optional escape sequence.
func (lex *Lexer) text() Token {
	var b strings.Builder
	tok := Token{Kind: TokText}
	if lex.input[lex.pos] == '\\' {
		lex.pos++
		if lex.pos >= len(lex.input) {
			b.WriteByte('\\')
		} else {
			switch c := lex.input[lex.pos]; {
			case lex.symbols.Contains(c), c == '.', c == '\\':
				b.WriteByte(c)
				tok.Escape = c
				lex.pos++
			case c == 'n':
				b.WriteByte('\n')
				tok.Escape = c
				lex.pos++
			default: // not an escape sequence, keep the backslash
				b.WriteByte('\\')
			}
		}
	}
	for lex.pos < len(lex.input) && lex.Classify(lex.input[lex.pos]) == TokText {
		b.WriteByte(lex.input[lex.pos])
		lex.pos++
	}
	tok.Str = b.String()
	return tok
}

// AdvanceN consumes n characters of the current symbol or space run. If
// the run is longer than n, the current token is kept with a reduced
// count. Otherwise, and for all other kinds of tokens, AdvanceN is
// equivalent to Advance.
func (lex *Lexer) AdvanceN(n int) Token {
	if (lex.tok.Kind == TokSymbol || lex.tok.Kind == TokSpace) && lex.tok.Count > n {
		lex.tok.Count -= n
		return lex.tok
	}
	return lex.Advance()
}

// AtEOF is a predicate: is the current token TokEOF?
func (lex *Lexer) AtEOF() bool {
	return lex.tok.Kind == TokEOF
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
