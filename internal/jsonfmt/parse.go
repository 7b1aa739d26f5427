// Package jsonfmt implements the JSON repair and format engine: a
// tolerant pre-processor for common malformed inputs, an
// order-preserving parser, a serializer, and a selectable fix pipeline.
package jsonfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	stderrors "errors"

	"devfmt/internal/errors"
	"devfmt/internal/models"
)

// Parse turns possibly-malformed JSON text into a parsed value. The
// text is run through Preprocess first; if the parsed result is itself
// a string the document was JSON-encoded twice, so the string is
// preprocessed and parsed once more. Failure of that second parse is
// not an error: the first-level string result is kept.
func Parse(text string) (models.Value, error) {
	candidate := Preprocess(text)
	value, err := decode(candidate)
	if err != nil {
		return nil, err
	}

	if inner, ok := value.(string); ok {
		if nested, nerr := decode(Preprocess(inner)); nerr == nil {
			return nested, nil
		}
	}

	return value, nil
}

// decode parses a complete JSON document while keeping object key
// order. It walks the token stream instead of using json.Unmarshal,
// which would lose insertion order behind a map.
func decode(text string) (models.Value, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	value, err := decodeValue(dec)
	if err != nil {
		return nil, wrapDecodeError(err)
	}

	// Anything after the first value makes the document ambiguous.
	// More() does not flag trailing close delimiters like `}` or `]`,
	// so read on and require EOF.
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.NewParseError("unexpected trailing data after first JSON value", errors.ErrInvalidJSON)
	}

	return value, nil
}

func decodeValue(dec *json.Decoder) (models.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool or nil
		return tok, nil
	}

	switch delim {
	case '{':
		obj := models.NewObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is not a string: %v", keyTok)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		if _, err := dec.Token(); err != nil { // consume '}'
			return nil, err
		}
		return obj, nil
	case '[':
		arr := models.Array{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil { // consume ']'
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}

// wrapDecodeError converts low-level decoder errors into ParseErrors
// that keep the underlying parser's message visible to the caller.
func wrapDecodeError(err error) error {
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParseError("unexpected end of JSON input", err)
	}
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParseError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
			err,
		)
	}
	return errors.NewParseError("failed to decode JSON", err)
}
