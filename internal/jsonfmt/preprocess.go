package jsonfmt

import (
	"regexp"
	"strings"
)

// bareEscapedRe detects a document whose structural quotes were escaped
// as if the whole text were itself a string literal, minus the
// enclosing quotes: it starts with `{\"` or `[\"`.
var bareEscapedRe = regexp.MustCompile(`^[\{\[]\\"`)

// Newline characters sitting between two non-backslash characters are
// stray line breaks inserted by whatever copied the text around, not
// JSON escapes. Three passes cover the CRLF pair and each bare form.
var (
	strayCRLFRe = regexp.MustCompile(`([^\\])\r\n`)
	strayLFRe   = regexp.MustCompile(`([^\\])\n`)
	strayCRRe   = regexp.MustCompile(`([^\\])\r`)
)

// Preprocess normalizes possibly-malformed JSON text into a parse
// candidate. It strips a single leading BOM, trims surrounding
// whitespace, and reverses bare-escaping when detected. If the
// unescaped result does not parse, the transform is abandoned and the
// trimmed text is returned unchanged.
func Preprocess(text string) string {
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.TrimSpace(text)

	if !bareEscapedRe.MatchString(text) {
		return text
	}

	candidate := stripStrayNewlines(text)
	candidate = unescapeOnce(candidate)

	if _, err := decode(candidate); err != nil {
		return text
	}
	return candidate
}

func stripStrayNewlines(s string) string {
	s = strayCRLFRe.ReplaceAllString(s, "$1")
	s = strayLFRe.ReplaceAllString(s, "$1")
	s = strayCRRe.ReplaceAllString(s, "$1")
	return s
}

// unescapeOnce removes one level of string escaping: `\\` becomes `\`
// and `\"` becomes `"`. A single forward scan classifies each escape,
// so a `\"` hiding behind a legitimate `\\` is left intact.
func unescapeOnce(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			case '"':
				b.WriteByte('"')
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
