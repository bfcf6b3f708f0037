package dom

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MakeID creates an id from an arbitrary string, e.g. the text of a heading.
//
// Accents are folded ("Ünïcode" → "unicode"), letters are lower-cased and
// runs of spaces become a single '-'. The id starts with the first letter;
// characters other than ASCII letters, digits, '-' and '_' are dropped.
// '-' and '_' do not repeat.
func MakeID(s string) string {
	folded, _, err := transform.String(accentFolder(), strings.TrimSpace(s))
	if err != nil {
		folded = s
	}
	folded = cases.Lower(language.Und).String(folded)
	var b strings.Builder
	var last byte
	for i := 0; i < len(folded); i++ {
		c := folded[i]
		switch {
		case c >= 'a' && c <= 'z':
		case b.Len() == 0:
			continue
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
			if last == c {
				continue
			}
		case c == ' ':
			if last == '-' {
				continue
			}
			c = '-'
		default:
			continue
		}
		b.WriteByte(c)
		last = c
	}
	return b.String()
}

func accentFolder() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// IsID is a predicate: is s a valid id as produced by MakeID?
func IsID(s string) bool {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return false
	}
	return strings.Trim(s, "abcdefghijklmnopqrstuvwxyz0123456789_-") == ""
}

// FootnoteID creates the id of a footnote. Footnotes are often numbered,
// so an id without letters is kept as written.
func FootnoteID(s string) string {
	if id := MakeID(s); id != "" {
		return id
	}
	return strings.TrimSpace(s)
}
