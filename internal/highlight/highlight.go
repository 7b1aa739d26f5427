// Package highlight turns already-formatted query text into classified
// spans for presentation. It does no layout of its own: callers feed
// it the formatter's output line by line.
package highlight

import (
	"regexp"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"

	"devfmt/internal/sqlfmt"
)

// Kind classifies a span of formatted text.
type Kind int

const (
	KindPlain Kind = iota
	KindString
	KindNumber
	KindFunction
	KindKeyword
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "StringLiteral"
	case KindNumber:
		return "NumberLiteral"
	case KindFunction:
		return "FunctionName"
	case KindKeyword:
		return "Keyword"
	default:
		return "Plain"
	}
}

// Class returns the kebab-case presentation class for the kind,
// e.g. "string-literal".
func (k Kind) Class() string {
	return strcase.ToKebab(k.String())
}

// Span is a classified slice of one line of text. Start and End are
// byte offsets into the line; End is exclusive.
type Span struct {
	Start int
	End   int
	Kind  Kind
	Text  string
}

// Dialect selects which grammar the tokenizer applies.
type Dialect int

const (
	DialectSQL Dialect = iota
	DialectMongo
)

var (
	stringRe = regexp.MustCompile(`'(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*"`)
	numberRe = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
	// identifier immediately followed by an opening parenthesis
	callRe = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\(`)

	keywordRe = regexp.MustCompile(`(?i)\b(?:` + strings.Join(sqlfmt.Keywords(), "|") + `)\b`)

	// Mongo operators ($gt, $in, ...) plus a few literal words.
	mongoKeywordRe = regexp.MustCompile(`\$[A-Za-z]+|\b(?:db|true|false|null|new)\b`)

	knownFunctions = func() map[string]bool {
		m := make(map[string]bool)
		for _, f := range sqlfmt.Functions() {
			m[f] = true
		}
		return m
	}()
)

// Lines tokenizes formatted text into classified spans, one slice per
// line.
func Lines(text string, dialect Dialect) [][]Span {
	lines := strings.Split(text, "\n")
	out := make([][]Span, len(lines))
	for i, line := range lines {
		if dialect == DialectMongo {
			out[i] = MongoLine(line)
		} else {
			out[i] = SQLLine(line)
		}
	}
	return out
}

type match struct {
	start, end int
	kind       Kind
}

// SQLLine tokenizes one line of MySQL/Doris output. Matches for string
// literals, numeric literals, known function names and keywords are
// collected in that order, sorted by start offset, and any match that
// starts before the previous accepted match's end is dropped. The sort
// is stable, so on a tie the earliest-registered kind wins: a name
// like REPLACE( is a function, not a keyword.
func SQLLine(line string) []Span {
	var matches []match
	matches = collect(matches, stringRe, line, KindString)
	matches = collect(matches, numberRe, line, KindNumber)
	for _, loc := range callRe.FindAllStringSubmatchIndex(line, -1) {
		name := line[loc[2]:loc[3]]
		if knownFunctions[strings.ToUpper(name)] {
			matches = append(matches, match{start: loc[2], end: loc[3], kind: KindFunction})
		}
	}
	matches = collect(matches, keywordRe, line, KindKeyword)
	return resolve(line, matches)
}

// MongoLine tokenizes one line of MongoDB output. String literals are
// located first and take precedence over any operator or keyword match
// they contain.
func MongoLine(line string) []Span {
	var matches []match
	matches = collect(matches, stringRe, line, KindString)
	matches = collect(matches, numberRe, line, KindNumber)
	matches = collect(matches, mongoKeywordRe, line, KindKeyword)
	return resolve(line, matches)
}

func collect(matches []match, re *regexp.Regexp, line string, kind Kind) []match {
	for _, loc := range re.FindAllStringIndex(line, -1) {
		matches = append(matches, match{start: loc[0], end: loc[1], kind: kind})
	}
	return matches
}

// resolve orders the union of matches by start offset and drops every
// match starting before the previous accepted match's end, then fills
// the gaps with plain spans.
func resolve(line string, matches []match) []Span {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].start < matches[j].start
	})

	var spans []Span
	prevEnd := 0
	for _, m := range matches {
		if m.start < prevEnd {
			continue
		}
		if m.start > prevEnd {
			spans = append(spans, Span{Start: prevEnd, End: m.start, Kind: KindPlain, Text: line[prevEnd:m.start]})
		}
		spans = append(spans, Span{Start: m.start, End: m.end, Kind: m.kind, Text: line[m.start:m.end]})
		prevEnd = m.end
	}
	if prevEnd < len(line) {
		spans = append(spans, Span{Start: prevEnd, End: len(line), Kind: KindPlain, Text: line[prevEnd:]})
	}
	return spans
}
