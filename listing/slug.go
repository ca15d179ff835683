package listing

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Slug converts a display tag to its lookup key, following github-slugger.
// Surrounding space is trimmed and the tag is lowercased. Every rune other
// than a letter, number, mark, '-' or '_' is dropped and each inner space
// becomes '-'. Diacritics are kept.
func Slug(tag string) string {
	// A Caser holds state and cannot be shared between goroutines.
	s := cases.Lower(language.Und).String(strings.TrimSpace(tag))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == ' ':
			b.WriteByte('-')
		case r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsMark(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
