/*
Package emoji implements look-up tables for emoji shortcodes.

Tables are read from plain text files, one emoji per line, followed by its
space separated shortcodes:

	😄 smile happy
	👍 +1 thumbsup

Shortcodes are stored in a trie, which allows listing all shortcodes
starting with a given prefix. We use

	github.com/derekparker/trie

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package emoji

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"github.com/derekparker/trie"
	"github.com/npillmayer/notedown/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'notedown.engine'.
func tracer() tracing.Trace {
	return tracing.Select("notedown.engine")
}

// Table maps shortcodes to emoji. The zero value is not usable, create
// tables with NewTable.
type Table struct {
	codes *trie.Trie
	size  int
}

// Entry is a shortcode together with its emoji.
type Entry struct {
	Shortcode string
	Emoji     string
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{codes: trie.New()}
}

// Add enters a shortcode. An existing entry for the shortcode is replaced.
func (t *Table) Add(shortcode, emoji string) {
	if shortcode == "" || emoji == "" {
		return
	}
	if _, ok := t.codes.Find(shortcode); !ok {
		t.size++
	}
	t.codes.Add(shortcode, emoji)
}

// Lookup finds the emoji for a shortcode.
func (t *Table) Lookup(shortcode string) (string, bool) {
	if t == nil || shortcode == "" {
		return "", false
	}
	node, ok := t.codes.Find(shortcode)
	if !ok {
		return "", false
	}
	e, ok := node.Meta().(string)
	return e, ok
}

// Size returns the number of shortcodes in t.
func (t *Table) Size() int {
	return t.size
}

// Prefix returns all entries with a shortcode starting with prefix, sorted
// by shortcode. An empty prefix lists the whole table.
func (t *Table) Prefix(prefix string) []Entry {
	var codes []string
	if prefix == "" {
		codes = t.codes.Keys()
	} else {
		codes = t.codes.PrefixSearch(prefix)
	}
	sort.Strings(codes)
	entries := make([]Entry, 0, len(codes))
	for _, code := range codes {
		if e, ok := t.Lookup(code); ok {
			entries = append(entries, Entry{Shortcode: code, Emoji: e})
		}
	}
	return entries
}

// Load reads a look-up table and adds its entries to t. Lines without an
// emoji or without shortcodes are skipped. Load returns the number of
// shortcodes read.
func (t *Table) Load(r io.Reader) (int, error) {
	count := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		for _, code := range fields[1:] {
			t.Add(code, fields[0])
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return count, core.WrapError(err, core.ECONNECTION, "cannot read emoji table")
	}
	tracer().Debugf("emoji table: read %d shortcodes", count)
	return count, nil
}
