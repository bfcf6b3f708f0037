/*
Package handlers implements the default grammar of Notedown.

Block constructs, in order of priority:

	- item / + item          unordered list
	1. item                  ordered list
	# … ######               heading
	>type> text              info block (>:type:> for a symbolic one)
	> text, >> text          blockquote, centered blockquote
	---                      horizontal rule
	```lang                  code block
	%(id): url cmd           link target definition
	%{id}: cmd               reusable command block
	%<id>: blocks            replacement block
	^id: text                footnote
	+-- summary, ++- summary collapsible section (closed, open)
	text                     paragraph (default)

Inline constructs:

	*bold* /italic/ _underline_ ~strike~ =highlight= `code`
	[ ] [x]                  task
	:smile:                  emoji
	[text](url cmd)          link
	[text]!(src cmd)         image
	[text]^(id cmd)          footnote reference
	[text]#{cmd}             link to a heading
	[text]<%id cmd>          replacement
	[text]{cmd}              styled text
	{cmd}                    command

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package handlers

import (
	"github.com/npillmayer/notedown/input/notedown"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'notedown.input'.
func tracer() tracing.Trace {
	return tracing.Select("notedown.input")
}

// Register adds the default handlers to a grammar.
func Register(g *notedown.Grammar) error {
	blocks := []struct {
		name, triggers string
		create         notedown.HandlerFunc
	}{
		{"ulist", "-+", func() notedown.Handler { return &listHandler{} }},
		{"olist", "", func() notedown.Handler { return &listHandler{ordered: true} }},
		{"heading", "#", func() notedown.Handler { return &headingHandler{} }},
		{"infoblock", ">:", func() notedown.Handler { return &infoBlockHandler{} }},
		{"blockquote", ">", func() notedown.Handler { return &blockquoteHandler{} }},
		{"hrule", "-", func() notedown.Handler { return &hruleHandler{} }},
		{"code", "`", func() notedown.Handler { return &codeHandler{} }},
		{"iddef", "%(){}<>:", func() notedown.Handler { return &idDefinitionHandler{} }},
		{"footnote", "^:", func() notedown.Handler { return &footnoteHandler{} }},
		{"collapse", "+-", func() notedown.Handler { return &collapseHandler{} }},
		{"paragraph", "", func() notedown.Handler { return &paragraphHandler{} }},
	}
	for _, b := range blocks {
		if err := g.AddBlock(b.name, b.triggers, b.create); err != nil {
			return err
		}
	}
	if err := g.SetDefault("paragraph"); err != nil {
		return err
	}
	inlines := []struct {
		name, triggers string
		create         notedown.HandlerFunc
	}{
		{"bold", "*", emphasis('*')},
		{"italic", "/", emphasis('/')},
		{"underline", "_", emphasis('_')},
		{"strikethrough", "~", emphasis('~')},
		{"highlight", "=", emphasis('=')},
		{"task", "[]", func() notedown.Handler { return taskHandler{} }},
		{"emoji", ":", func() notedown.Handler { return emojiHandler{} }},
		{"code", "`", func() notedown.Handler { return inlineCodeHandler{} }},
		{"modifier", "[](){}<>\"!^#%", func() notedown.Handler { return modifierHandler{} }},
		{"command", "{}", func() notedown.Handler { return commandHandler{} }},
	}
	for _, i := range inlines {
		if err := g.AddInline(i.name, i.triggers, i.create); err != nil {
			return err
		}
	}
	return nil
}

// Default creates a grammar with the default handlers.
func Default() *notedown.Grammar {
	g := notedown.NewGrammar()
	if err := Register(g); err != nil {
		panic(err) // cannot happen for a fresh grammar
	}
	return g
}
