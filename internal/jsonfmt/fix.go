package jsonfmt

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"devfmt/internal/errors"
)

// FixOption selects which repair steps the Fix pipeline applies.
type FixOption string

const (
	FixAll               FixOption = "all"
	FixRemoveBOM         FixOption = "remove-bom"
	FixTrimWhitespace    FixOption = "trim-whitespace"
	FixEscapedJSON       FixOption = "fix-escaped-json"
	FixNewlines          FixOption = "fix-newlines"
	FixNormalizeNewlines FixOption = "normalize-newlines"
	FixRemoveEmptyLines  FixOption = "remove-empty-lines"
)

// FixOptions lists every valid option value, in pipeline order.
var FixOptions = []FixOption{
	FixAll,
	FixRemoveBOM,
	FixTrimWhitespace,
	FixEscapedJSON,
	FixNewlines,
	FixNormalizeNewlines,
	FixRemoveEmptyLines,
}

var (
	// A line break inside a quoted key (quote, text, break, text,
	// quote, colon) or inside a quoted value following a colon.
	keyNewlineRe   = regexp.MustCompile(`"([^"\r\n]*)[\r\n]+([^"\r\n]*)"(\s*:)`)
	valueNewlineRe = regexp.MustCompile(`(:\s*)"([^"\r\n]*)[\r\n]+([^"\r\n]*)"`)

	crlfRe       = regexp.MustCompile(`\r\n?`)
	emptyLinesRe = regexp.MustCompile(`\n{3,}`)
)

// Fix applies the selected repair steps to text, in a fixed order, and
// returns the repaired text together with a human-readable log of what
// happened. When a single step is selected its log line is written
// whether or not the step changed anything; under FixAll only steps
// that fired are logged. After the selected steps run, the result is
// validated with a parse: on failure a FixValidationError is returned
// that still carries the partially repaired text and the log.
func Fix(text string, option FixOption) (string, []string, error) {
	var log []string
	verbose := option != FixAll
	current := text

	logStep := func(changed bool, did, didNot string) {
		if changed {
			log = append(log, did)
		} else if verbose {
			log = append(log, didNot)
		}
	}

	if option == FixAll || option == FixRemoveBOM {
		next := strings.TrimPrefix(current, "\uFEFF")
		logStep(next != current, "Removed byte order mark", "No byte order mark found")
		current = next
	}

	if option == FixAll || option == FixTrimWhitespace {
		next := strings.TrimSpace(current)
		logStep(next != current, "Trimmed leading/trailing whitespace", "No surrounding whitespace to trim")
		current = next
	}

	if option == FixAll || option == FixEscapedJSON {
		next := fixBareEscaped(current, option == FixEscapedJSON)
		logStep(next != current, "Unescaped bare-escaped JSON document", "No bare-escaped JSON detected")
		current = next
	}

	if option == FixAll || option == FixNewlines {
		next := fixEmbeddedNewlines(current)
		logStep(next != current, "Removed line breaks inside quoted keys and values", "No line breaks found inside quoted keys or values")
		current = next
	}

	if option == FixAll || option == FixNormalizeNewlines {
		next := crlfRe.ReplaceAllString(current, "\n")
		logStep(next != current, "Normalized CRLF/CR line endings to LF", "Line endings already normalized")
		current = next
	}

	if option == FixAll || option == FixRemoveEmptyLines {
		next := emptyLinesRe.ReplaceAllString(current, "\n\n")
		logStep(next != current, "Collapsed runs of blank lines", "No runs of blank lines found")
		current = next
	}

	if _, err := decode(current); err != nil {
		log = append(log, "Validation failed: result is still not valid JSON")
		return current, log, errors.NewFixValidationError(
			fmt.Sprintf("repaired text is still not valid JSON: %v", err),
			log, current, err,
		)
	}

	switch delta := utf8.RuneCountInString(current) - utf8.RuneCountInString(text); {
	case delta < 0:
		log = append(log, fmt.Sprintf("Validation passed (reduced by %d characters)", -delta))
	case delta > 0:
		log = append(log, fmt.Sprintf("Validation passed (increased by %d characters)", delta))
	default:
		log = append(log, "Validation passed (character count unchanged)")
	}

	return current, log, nil
}

// fixBareEscaped reverses bare-escaping. Under the dedicated
// fix-escaped-json option the transform is applied unconditionally;
// under FixAll it behaves like Preprocess and reverts when the
// unescaped result does not parse.
func fixBareEscaped(text string, force bool) string {
	if !bareEscapedRe.MatchString(text) {
		return text
	}

	candidate := stripStrayNewlines(text)
	candidate = unescapeOnce(candidate)

	if !force {
		if _, err := decode(candidate); err != nil {
			return text
		}
	}
	return candidate
}

// fixEmbeddedNewlines strips line breaks found inside quoted keys and
// inside quoted values after a colon. The patterns only remove one
// break per match, so they are re-applied until nothing changes.
func fixEmbeddedNewlines(text string) string {
	for {
		next := keyNewlineRe.ReplaceAllString(text, `"$1$2"$3`)
		next = valueNewlineRe.ReplaceAllString(next, `$1"$2$3"`)
		if next == text {
			return next
		}
		text = next
	}
}
