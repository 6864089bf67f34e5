package normalize

import (
	"strings"
	"unicode/utf8"
)

// SnippetMaxLen bounds the context snippet attached to extracted facts.
const SnippetMaxLen = 240

// Snippet cleans a context string for output: control characters removed,
// whitespace collapsed, length bounded with a trailing ellipsis.
func Snippet(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			b.WriteByte(' ')
		} else {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Join(strings.Fields(b.String()), " ")
	if len(cleaned) > SnippetMaxLen {
		cut := cleaned[:SnippetMaxLen-1]
		// Don't split a multi-byte rune.
		for len(cut) > 0 && !utf8.ValidString(cut) {
			cut = cut[:len(cut)-1]
		}
		cleaned = cut + "…"
	}
	return cleaned
}
