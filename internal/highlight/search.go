package highlight

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Search returns the byte offset of every occurrence of query in text.
// Matching is case-insensitive and overlapping: the scan advances one
// byte per match, not by the match length, so "aa" is found twice in
// "aaa". Offsets index the original text: the fold used for comparison
// never changes a rune's encoded size, so runes whose lowercase form is
// a different length (such as U+0130) are matched by their original
// bytes only.
func Search(text, query string) []int {
	if query == "" {
		return nil
	}
	haystack := foldLower(text)
	needle := foldLower(query)

	var offsets []int
	for i := 0; i+len(needle) <= len(haystack); {
		idx := strings.Index(haystack[i:], needle)
		if idx < 0 {
			break
		}
		offsets = append(offsets, i+idx)
		i += idx + 1
	}
	return offsets
}

// foldLower lowercases s without changing its byte length. A rune is
// kept as-is when its lowercase form encodes to a different size.
func foldLower(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		l := unicode.ToLower(r)
		if utf8.RuneLen(l) != utf8.RuneLen(r) {
			l = r
		}
		b.WriteRune(l)
	}
	return b.String()
}
