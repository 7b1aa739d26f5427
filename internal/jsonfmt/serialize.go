package jsonfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"devfmt/internal/errors"
	"devfmt/internal/models"
)

// Serialize renders a parsed value as indented JSON text. Object keys
// come out in the order they were parsed; nothing is sorted. Indent
// width must be 2, 4 or 8 spaces.
func Serialize(v models.Value, indent int) (string, error) {
	switch indent {
	case 2, 4, 8:
	default:
		return "", errors.NewFormatError(fmt.Sprintf("unsupported indent width %d", indent), errors.ErrBadIndent)
	}

	var b strings.Builder
	writeValue(&b, v, strings.Repeat(" ", indent), 0, false)
	return b.String(), nil
}

// Compact renders a parsed value with no whitespace at all.
func Compact(v models.Value) string {
	var b strings.Builder
	writeValue(&b, v, "", 0, true)
	return b.String()
}

func writeValue(b *strings.Builder, v models.Value, pad string, depth int, compact bool) {
	switch val := v.(type) {
	case *models.Object:
		writeObject(b, val, pad, depth, compact)
	case models.Array:
		writeArray(b, val, pad, depth, compact)
	case string:
		b.WriteString(encodeString(val))
	case json.Number:
		b.WriteString(val.String())
	case bool:
		if val {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case nil:
		b.WriteString("null")
	default:
		// Values built by hand rather than by Parse may carry native
		// numeric types.
		b.WriteString(fmt.Sprintf("%v", val))
	}
}

func writeObject(b *strings.Builder, obj *models.Object, pad string, depth int, compact bool) {
	members := obj.Members()
	if len(members) == 0 {
		b.WriteString("{}")
		return
	}

	b.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			b.WriteByte(',')
		}
		if !compact {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(pad, depth+1))
		}
		b.WriteString(encodeString(m.Key))
		b.WriteByte(':')
		if !compact {
			b.WriteByte(' ')
		}
		writeValue(b, m.Value, pad, depth+1, compact)
	}
	if !compact {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(pad, depth))
	}
	b.WriteByte('}')
}

func writeArray(b *strings.Builder, arr models.Array, pad string, depth int, compact bool) {
	if len(arr) == 0 {
		b.WriteString("[]")
		return
	}

	b.WriteByte('[')
	for i, v := range arr {
		if i > 0 {
			b.WriteByte(',')
		}
		if !compact {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(pad, depth+1))
		}
		writeValue(b, v, pad, depth+1, compact)
	}
	if !compact {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(pad, depth))
	}
	b.WriteByte(']')
}

// encodeString writes a JSON string literal without the HTML escaping
// json.Marshal applies to <, > and &.
func encodeString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encode never fails for a plain string.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
