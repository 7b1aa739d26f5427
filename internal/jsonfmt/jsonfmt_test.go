package jsonfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devfmt/internal/errors"
	"devfmt/internal/models"
)

func TestPreprocess_StripsBOMAndWhitespace(t *testing.T) {
	assert.Equal(t, `{"a":1}`, Preprocess("\uFEFF  {\"a\":1}  \n"))
}

func TestPreprocess_BareEscapedObject(t *testing.T) {
	// BOM plus a document whose structural quotes are escaped as if
	// the whole text were a string literal without its quotes.
	input := "\uFEFF{\\\"a\\\":1}"
	assert.Equal(t, `{"a":1}`, Preprocess(input))
}

func TestPreprocess_BareEscapedWithStrayNewlines(t *testing.T) {
	input := "{\\\"a\\\":\n1,\\\"b\\\":\r\n2}"
	assert.Equal(t, `{"a":1,"b":2}`, Preprocess(input))
}

func TestPreprocess_KeepsDoubleEscapedBackslash(t *testing.T) {
	// A value containing an escaped backslash must survive the
	// unescape pass with one level of escaping intact.
	input := `{\"path\":\"C:\\\\tmp\"}`
	assert.Equal(t, `{"path":"C:\\tmp"}`, Preprocess(input))
}

func TestPreprocess_RevertsWhenUnescapeDoesNotParse(t *testing.T) {
	// Looks bare-escaped but is truncated, so the transform must be
	// abandoned and the trimmed input returned as-is.
	input := `  {\"a\":  `
	assert.Equal(t, `{\"a\":`, Preprocess(input))
}

func TestPreprocess_Idempotent(t *testing.T) {
	inputs := []string{
		"\uFEFF{\\\"a\\\":1}",
		`{"already": "fine"}`,
		"   [1, 2, 3]   ",
		"not json at all",
	}
	for _, in := range inputs {
		once := Preprocess(in)
		assert.Equal(t, once, Preprocess(once), "input %q", in)
	}
}

func TestParse_SimpleObjectKeepsKeyOrder(t *testing.T) {
	v, err := Parse(`{"zebra": 1, "apple": 2, "mango": 3}`)
	require.NoError(t, err)

	obj, ok := v.(*models.Object)
	require.True(t, ok, "root should be an object, got %T", v)

	var keys []string
	for _, m := range obj.Members() {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"zebra", "apple", "mango"}, keys)
}

func TestParse_DoublyEncodedDocument(t *testing.T) {
	// The whole document was JSON-encoded twice; the second-parse
	// branch must recover the object.
	input := "\"{\\\"a\\\":1}\""
	v, err := Parse(input)
	require.NoError(t, err)

	obj, ok := v.(*models.Object)
	require.True(t, ok, "expected object, got %T", v)
	got, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, json.Number("1"), got)
}

func TestParse_PlainStringKeptWhenSecondParseFails(t *testing.T) {
	v, err := Parse(`"just a sentence"`)
	require.NoError(t, err)
	assert.Equal(t, "just a sentence", v)
}

func TestParse_InvalidInputIncludesParserMessage(t *testing.T) {
	_, err := Parse(`{"a": }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid character")
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse("   \n  ")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptyInput)
}

func TestParse_TrailingDataRejected(t *testing.T) {
	inputs := []string{
		`{"a":1} {"b":2}`,
		`{"a":1}}`,
		`[1,2]]`,
		`{"a":1}]`,
		`[1,2] x`,
	}
	for _, in := range inputs {
		_, err := Parse(in)
		require.Error(t, err, "input %q", in)
		assert.ErrorIs(t, err, errors.ErrInvalidJSON, "input %q", in)
	}
}

func TestFix_TrailingCloseDelimiterFailsValidation(t *testing.T) {
	_, log, err := Fix(`{"a":1}}`, FixAll)
	require.Error(t, err)

	var verr *errors.FixValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, log, "Validation failed: result is still not valid JSON")
}

func TestSerialize_IndentWidths(t *testing.T) {
	v, err := Parse(`{"a":{"b":[1,2]}}`)
	require.NoError(t, err)

	out2, err := Serialize(v, 2)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": {\n    \"b\": [\n      1,\n      2\n    ]\n  }\n}", out2)

	out4, err := Serialize(v, 4)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out4, "{\n    \"a\":"))

	_, err = Serialize(v, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrBadIndent)
}

func TestSerialize_KeepsSourceKeyOrder(t *testing.T) {
	v, err := Parse(`{"z": 1, "a": 2, "m": {"y": 1, "b": 2}}`)
	require.NoError(t, err)

	out, err := Serialize(v, 2)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, `"z"`), strings.Index(out, `"a"`))
	assert.Less(t, strings.Index(out, `"y"`), strings.Index(out, `"b"`))
}

func TestCompact(t *testing.T) {
	v, err := Parse("{\n  \"a\": [1, true, null, \"x\"]\n}")
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,true,null,"x"]}`, Compact(v))
}

func TestSerialize_NoHTMLEscaping(t *testing.T) {
	v, err := Parse(`{"html":"<a href=\"x\">&</a>"}`)
	require.NoError(t, err)
	out := Compact(v)
	assert.Contains(t, out, "<a href=")
	assert.Contains(t, out, "&")
	assert.NotContains(t, out, `\u003c`)
}

func TestRoundTrip_Stable(t *testing.T) {
	inputs := []string{
		`{"z":1,"a":[1,"x",true,null],"n":3.14,"o":{"k":"v"}}`,
		`[{"b":2,"a":1},[],{},"s",0]`,
		`{"nested":{"deep":{"deeper":[1,2,{"end":null}]}}}`,
	}
	for _, in := range inputs {
		first, err := Parse(in)
		require.NoError(t, err)

		out, err := Serialize(first, 4)
		require.NoError(t, err)

		second, err := Parse(out)
		require.NoError(t, err)
		assert.Equal(t, Compact(first), Compact(second), "input %q", in)
	}
}

func TestFix_NormalizeNewlines(t *testing.T) {
	fixed, log, err := Fix("a\r\nb\rc\n", FixNormalizeNewlines)

	assert.Equal(t, "a\nb\nc\n", fixed)
	assert.Contains(t, log, "Normalized CRLF/CR line endings to LF")
	// The result is still not JSON, so validation fails but the
	// repaired text is surfaced anyway.
	var fixErr *errors.FixValidationError
	require.ErrorAs(t, err, &fixErr)
	assert.Equal(t, "a\nb\nc\n", fixErr.PartialText)
	assert.NotEmpty(t, fixErr.Log)
}

func TestFix_SingleOptionLogsEvenWhenNothingChanged(t *testing.T) {
	_, log, err := Fix(`{"a":1}`, FixRemoveBOM)
	require.NoError(t, err)
	assert.Contains(t, log, "No byte order mark found")
}

func TestFix_AllOnMessyInput(t *testing.T) {
	input := "\uFEFF  {\"a\": 1,\r\n\n\n\n\"b\": 2}  "
	fixed, log, err := Fix(input, FixAll)
	require.NoError(t, err)

	assert.Equal(t, "{\"a\": 1,\n\n\"b\": 2}", fixed)
	assert.Contains(t, log, "Removed byte order mark")
	assert.Contains(t, log, "Trimmed leading/trailing whitespace")
	assert.Contains(t, log, "Collapsed runs of blank lines")
	assert.Contains(t, log, "Validation passed (reduced by 8 characters)")
}

func TestFix_EmbeddedNewlinesInKeysAndValues(t *testing.T) {
	input := "{\"na\nme\": \"Jo\nhn\"}"
	fixed, log, err := Fix(input, FixNewlines)
	require.NoError(t, err)

	assert.Equal(t, `{"name": "John"}`, fixed)
	assert.Contains(t, log, "Removed line breaks inside quoted keys and values")
}

func TestFix_EscapedJSONAppliedUnconditionally(t *testing.T) {
	// Truncated bare-escaped text: Preprocess would revert, but the
	// dedicated option applies the transform anyway and the caller
	// gets the partial text back alongside the validation error.
	input := `{\"a\":`
	fixed, _, err := Fix(input, FixEscapedJSON)

	assert.Equal(t, `{"a":`, fixed)
	var fixErr *errors.FixValidationError
	require.ErrorAs(t, err, &fixErr)
}

func TestFix_ReportsIncreaseAndUnchanged(t *testing.T) {
	_, log, err := Fix(`{"a":1}`, FixTrimWhitespace)
	require.NoError(t, err)
	assert.Contains(t, log, "Validation passed (character count unchanged)")
}
