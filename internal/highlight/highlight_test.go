package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kindsOf(spans []Span) []Kind {
	out := make([]Kind, len(spans))
	for i, s := range spans {
		out[i] = s.Kind
	}
	return out
}

func spanAt(t *testing.T, spans []Span, text string) Span {
	t.Helper()
	for _, s := range spans {
		if s.Text == text {
			return s
		}
	}
	t.Fatalf("no span with text %q in %v", text, spans)
	return Span{}
}

func TestSQLLine_BasicClassification(t *testing.T) {
	spans := SQLLine("WHERE name = 'Ann' AND age > 21")

	assert.Equal(t, KindKeyword, spanAt(t, spans, "WHERE").Kind)
	assert.Equal(t, KindString, spanAt(t, spans, "'Ann'").Kind)
	assert.Equal(t, KindKeyword, spanAt(t, spans, "AND").Kind)
	assert.Equal(t, KindNumber, spanAt(t, spans, "21").Kind)
}

func TestSQLLine_FunctionBeatsKeywordOnTie(t *testing.T) {
	// SUM( matches as a function; the tie-break is registration
	// order, not match length or priority.
	spans := SQLLine("SUM(1)")
	assert.Equal(t, KindFunction, spanAt(t, spans, "SUM").Kind)
	assert.Equal(t, KindNumber, spanAt(t, spans, "1").Kind)

	// REPLACE is both a keyword and a known function; followed by a
	// parenthesis the function match wins the overlap resolution.
	spans = SQLLine("SELECT REPLACE(a, 'x', 'y')")
	assert.Equal(t, KindKeyword, spanAt(t, spans, "SELECT").Kind)
	assert.Equal(t, KindFunction, spanAt(t, spans, "REPLACE").Kind)
}

func TestSQLLine_KeywordInsideStringNotHighlighted(t *testing.T) {
	spans := SQLLine("WHERE note = 'select everything'")
	s := spanAt(t, spans, "'select everything'")
	assert.Equal(t, KindString, s.Kind)
	// no keyword span may start inside the string literal
	for _, sp := range spans {
		if sp.Kind == KindKeyword && sp.Start > s.Start && sp.Start < s.End {
			t.Fatalf("keyword span %v starts inside string span %v", sp, s)
		}
	}
}

func TestSQLLine_UnknownIdentifierBeforeParenIsPlain(t *testing.T) {
	spans := SQLLine("my_udf(1)")
	assert.Equal(t, KindPlain, spanAt(t, spans, "my_udf(").Kind)
}

func TestSQLLine_SpansCoverWholeLine(t *testing.T) {
	line := "SELECT id, SUM(price) FROM orders LIMIT 5"
	spans := SQLLine(line)

	pos := 0
	var rebuilt string
	for _, s := range spans {
		require.Equal(t, pos, s.Start)
		rebuilt += s.Text
		pos = s.End
	}
	assert.Equal(t, line, rebuilt)
}

func TestMongoLine_StringsMaskOperators(t *testing.T) {
	spans := MongoLine(`    "$gt": 21`)

	s := spanAt(t, spans, `"$gt"`)
	assert.Equal(t, KindString, s.Kind)
	assert.Equal(t, KindNumber, spanAt(t, spans, "21").Kind)
	for _, sp := range spans {
		assert.NotEqual(t, KindKeyword, sp.Kind, "operator inside string must not be its own span")
	}
}

func TestMongoLine_OperatorOutsideString(t *testing.T) {
	spans := MongoLine("db.users.find({age: {$gt: 21}})")
	assert.Equal(t, KindKeyword, spanAt(t, spans, "db").Kind)
	assert.Equal(t, KindKeyword, spanAt(t, spans, "$gt").Kind)
}

func TestLines_PerLineSpans(t *testing.T) {
	text := "SELECT\n    id\nFROM t"
	lines := Lines(text, DialectSQL)
	require.Len(t, lines, 3)
	assert.Equal(t, []Kind{KindKeyword}, kindsOf(lines[0]))
	assert.Equal(t, KindKeyword, spanAt(t, lines[2], "FROM").Kind)
}

func TestSearch_OverlappingMatches(t *testing.T) {
	assert.Equal(t, []int{0, 1}, Search("aaa", "aa"))
}

func TestSearch_CaseInsensitive(t *testing.T) {
	assert.Equal(t, []int{2, 10}, Search(`{"Name": "name"}`, "name"))
}

func TestSearch_OffsetsIndexOriginalText(t *testing.T) {
	// U+0130 lowercases to a shorter encoding; offsets after it must
	// still point into the original text.
	text := "İ FOO İ foo"
	offsets := Search(text, "foo")
	assert.Equal(t, []int{3, 10}, offsets)
	for _, off := range offsets {
		assert.True(t, strings.EqualFold("foo", text[off:off+3]))
	}

	// Case pairs with equal encoded sizes still match.
	assert.Equal(t, []int{0}, Search("CAFÉ", "café"))
}

func TestSearch_NoMatchAndEmptyQuery(t *testing.T) {
	assert.Empty(t, Search("abc", "z"))
	assert.Empty(t, Search("abc", ""))
}
