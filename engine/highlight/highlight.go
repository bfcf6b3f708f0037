/*
Package highlight provides syntax highlighting for code blocks.

Highlighters split a line of source code into fragments, each tagged with a
syntax group name like "keyword" or "string". The HTML writer turns groups
into CSS classes "nd-syntax-<group>". Lexing is done by

	github.com/alecthomas/chroma/v2

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package highlight

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'notedown.engine'.
func tracer() tracing.Trace {
	return tracing.Select("notedown.engine")
}

// Func highlights one line of code. It calls emit for consecutive fragments
// of text, with an empty group for fragments which are not highlighted.
type Func func(text string, emit func(text, group string))

// Engine hands out highlighters by language name. Engines are safe for
// concurrent use.
type Engine struct {
	mx      sync.Mutex
	lexers  map[string]chroma.Lexer
	aliases map[string]string
}

// NewEngine creates a highlighter engine for all languages known to chroma.
func NewEngine() *Engine {
	return &Engine{
		lexers:  make(map[string]chroma.Lexer),
		aliases: make(map[string]string),
	}
}

// Alias lets language name alias select the highlighter of lang.
func (e *Engine) Alias(alias, lang string) {
	e.mx.Lock()
	defer e.mx.Unlock()
	e.aliases[strings.ToLower(alias)] = strings.ToLower(lang)
}

// Highlighter returns the highlighter for a language, if there is one.
func (e *Engine) Highlighter(lang string) (Func, bool) {
	if e == nil || lang == "" {
		return nil, false
	}
	lexer := e.lexer(strings.ToLower(lang))
	if lexer == nil {
		return nil, false
	}
	return func(text string, emit func(text, group string)) {
		highlight(lexer, text, emit)
	}, true
}

func (e *Engine) lexer(lang string) chroma.Lexer {
	e.mx.Lock()
	defer e.mx.Unlock()
	if alias, ok := e.aliases[lang]; ok {
		lang = alias
	}
	if l, ok := e.lexers[lang]; ok {
		return l
	}
	l := lexers.Get(lang)
	if l != nil {
		l = chroma.Coalesce(l)
	} else {
		tracer().Infof("no syntax highlighting for language %q", lang)
	}
	e.lexers[lang] = l
	return l
}

func highlight(lexer chroma.Lexer, text string, emit func(text, group string)) {
	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		tracer().Errorf("highlighting failed: %v", err)
		emit(text, "")
		return
	}
	rest := len(text)
	for _, token := range it.Tokens() {
		value := token.Value
		if len(value) > rest { // lexers may append a newline
			value = value[:rest]
		}
		if value == "" {
			continue
		}
		rest -= len(value)
		emit(value, Group(token.Type))
	}
}

// Group returns the syntax group name for a chroma token type, or "" for
// plain text.
func Group(tt chroma.TokenType) string {
	switch tt.Category() {
	case chroma.Keyword:
		return "keyword"
	case chroma.Name:
		switch tt {
		case chroma.NameBuiltin, chroma.NameBuiltinPseudo:
			return "builtin"
		case chroma.NameFunction, chroma.NameFunctionMagic:
			return "function"
		case chroma.NameClass:
			return "type"
		}
		return ""
	case chroma.Literal:
		switch tt.SubCategory() {
		case chroma.LiteralString:
			return "string"
		case chroma.LiteralNumber:
			return "number"
		}
		return "literal"
	case chroma.Operator:
		return "operator"
	case chroma.Punctuation:
		return "punctuation"
	case chroma.Comment:
		return "comment"
	}
	return ""
}
