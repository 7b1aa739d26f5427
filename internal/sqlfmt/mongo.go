package sqlfmt

import (
	"regexp"
	"strings"

	"devfmt/internal/errors"
	"devfmt/internal/jsonfmt"
)

// Unquoted identifier-style keys after `{`, `,` or `[`, as written in
// JS object literals: converted to quoted JSON keys before parsing.
var bareKeyRe = regexp.MustCompile(`([\{,\[]\s*)([A-Za-z_$][A-Za-z0-9_$]*)\s*:`)

// FormatMongo reformats a MongoDB query. Input starting with `{` or
// `[` is treated as a bare query filter and pretty-printed as JSON
// with a fixed 4-space indent. Anything else is treated as a
// method-chain expression such as `db.coll.find({...}).sort({...})`.
func FormatMongo(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", errors.NewInputError("no query found in input", errors.ErrEmptyInput)
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return formatFilter(trimmed)
	}
	return formatChain(trimmed)
}

// formatFilter quotes bare keys, parses the result as JSON and
// re-serializes it with a 4-space indent.
func formatFilter(text string) (string, error) {
	v, err := jsonfmt.Parse(bareKeyRe.ReplaceAllString(text, `$1"$2":`))
	if err != nil {
		return "", err
	}
	return jsonfmt.Serialize(v, 4)
}

// formatChain walks a method-chain expression character by character.
// Balanced parentheses, brackets and braces are matched with quote
// awareness, object and array arguments are pretty-printed through the
// filter path, and a newline is inserted before each chained
// `.method(` call but not before plain property access.
func formatChain(s string) (string, error) {
	s = wsRe.ReplaceAllString(s, " ")

	var b strings.Builder
	chainIndent := ""
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '.' && startsMethodCall(s, i):
			b.WriteByte('\n')
			b.WriteString(indent)
			b.WriteByte('.')
			chainIndent = indent
			i++
		case c == '(':
			end := matchBalanced(s, i)
			if end < 0 {
				b.WriteString(s[i:])
				return b.String(), nil
			}
			args := formatCallArgs(s[i+1 : end])
			if chainIndent != "" {
				// keep pretty-printed arguments aligned under the
				// indented method call
				args = strings.ReplaceAll(args, "\n", "\n"+chainIndent)
			}
			b.WriteByte('(')
			b.WriteString(args)
			b.WriteByte(')')
			i = end + 1
		case c == '{' || c == '[':
			end := matchBalanced(s, i)
			if end < 0 {
				b.WriteString(s[i:])
				return b.String(), nil
			}
			b.WriteString(formatArg(s[i : end+1]))
			i = end + 1
		case c == '"' || c == '\'':
			end := closingQuote(s, i)
			b.WriteString(s[i : end+1])
			i = end + 1
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

// startsMethodCall reports whether the dot at i begins `.ident(`.
func startsMethodCall(s string, i int) bool {
	j := i + 1
	for j < len(s) && isIdentChar(s[j]) {
		j++
	}
	return j > i+1 && j < len(s) && s[j] == '('
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// formatCallArgs splits the argument list on top-level commas and
// pretty-prints object/array arguments.
func formatCallArgs(inner string) string {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return ""
	}
	var parts []string
	for _, arg := range splitTopLevel(inner) {
		parts = append(parts, formatArg(strings.TrimSpace(arg)))
	}
	return strings.Join(parts, ", ")
}

// formatArg pretty-prints an object or array argument through the
// filter path. Arguments that don't parse (JS expressions like
// ISODate(...) inside) are kept verbatim.
func formatArg(arg string) string {
	if !strings.HasPrefix(arg, "{") && !strings.HasPrefix(arg, "[") {
		return arg
	}
	formatted, err := formatFilter(arg)
	if err != nil {
		return arg
	}
	return formatted
}

// splitTopLevel splits on commas that are outside every paren,
// bracket, brace and string literal.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '"', '\'':
			i = closingQuote(s, i)
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// matchBalanced returns the index of the delimiter closing the one at
// start, skipping string literals, or -1 when unbalanced.
func matchBalanced(s string, start int) int {
	open := s[start]
	var closer byte
	switch open {
	case '(':
		closer = ')'
	case '[':
		closer = ']'
	case '{':
		closer = '}'
	default:
		return -1
	}

	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i
			}
		case '"', '\'':
			i = closingQuote(s, i)
		}
	}
	return -1
}

// closingQuote returns the index of the quote closing the literal that
// opens at i, honoring backslash escapes. An unterminated literal runs
// to the end of the string.
func closingQuote(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j
		}
	}
	return len(s) - 1
}
