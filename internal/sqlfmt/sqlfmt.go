// Package sqlfmt reformats semicolon-separated SQL statements
// (MySQL/Doris dialect) and MongoDB method-chain queries into a
// multi-line, indented, keyword-cased form. Structure is rebuilt from
// scratch: the input's own line breaks carry no meaning.
//
// Known imprecision, kept deliberately: top-level comma splitting of
// column and value lists does not track nested parentheses or string
// literals, so a function call like SUBSTRING(a, 1, 2) used as a
// column is split across lines.
package sqlfmt

import (
	"regexp"
	"strings"

	"devfmt/internal/errors"
)

// Options configures the statement formatter.
type Options struct {
	// Uppercase selects upper-case keywords; false selects lower-case.
	Uppercase bool
	// StatementGap is the number of blank lines between statements.
	StatementGap int
}

// DefaultOptions returns the canonical settings: upper-case keywords,
// one blank line between statements.
func DefaultOptions() Options {
	return Options{Uppercase: true, StatementGap: 1}
}

const indent = "    "

var (
	wsRe           = regexp.MustCompile(`\s+`)
	selectPrefixRe = regexp.MustCompile(`(?i)^SELECT(\s+DISTINCT)?\b`)
	fromRe         = regexp.MustCompile(`(?i)\bFROM\b`)
	valuesRe       = regexp.MustCompile(`(?i)\bVALUES\b`)
	setRe          = regexp.MustCompile(`(?i)\bSET\b`)
	whereRe        = regexp.MustCompile(`(?i)\bWHERE\b`)
	whereLineRe    = regexp.MustCompile(`(?i)^WHERE\b`)
	createTableRe  = regexp.MustCompile(`(?i)^CREATE\s+TABLE\b`)
	tupleSepRe     = regexp.MustCompile(`\)\s*,\s*\(`)
	andOrRe        = regexp.MustCompile(`(?i) (AND|OR) `)

	// Clauses that start a new unindented line inside a SELECT.
	// OFFSET is deliberately absent: it stays inline after LIMIT.
	clauseRe = regexp.MustCompile(`(?i)\b(?:(?:(?:INNER|LEFT|RIGHT|FULL|CROSS)(?:\s+OUTER)?\s+)?JOIN|WHERE|GROUP\s+BY|HAVING|ORDER\s+BY|LIMIT)\b`)
)

var keywordRes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(keywords))
	for i, kw := range keywords {
		res[i] = regexp.MustCompile(`(?i)\b` + kw + `\b`)
	}
	return res
}()

// Format reformats one or more semicolon-separated statements. Each
// statement is rejoined with `;` followed by StatementGap blank lines;
// a trailing `;` terminates the final statement.
func Format(input string, opts Options) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", errors.NewInputError("no SQL statement found", errors.ErrEmptySQL)
	}
	if opts.StatementGap < 0 {
		opts.StatementGap = 0
	}

	var formatted []string
	for _, st := range strings.Split(trimmed, ";") {
		if strings.TrimSpace(st) == "" {
			continue
		}
		formatted = append(formatted, formatStatement(st, opts))
	}
	if len(formatted) == 0 {
		return "", errors.NewInputError("no SQL statement found", errors.ErrEmptySQL)
	}

	sep := ";" + strings.Repeat("\n", opts.StatementGap+1)
	return strings.Join(formatted, sep) + ";", nil
}

func formatStatement(st string, opts Options) string {
	st = wsRe.ReplaceAllString(strings.TrimSpace(st), " ")
	st = recase(st, opts.Uppercase)

	switch strings.ToUpper(firstWord(st)) {
	case "SELECT":
		return formatSelect(st)
	case "INSERT":
		return formatInsert(st)
	case "UPDATE":
		return formatUpdate(st)
	case "DELETE":
		return formatDelete(st)
	case "CREATE", "ALTER", "DROP", "TRUNCATE":
		return formatDDL(st)
	default:
		return st
	}
}

// recase rewrites every recognized keyword to the requested case, one
// whole-word substitution pass per keyword.
func recase(st string, upper bool) string {
	for i, re := range keywordRes {
		kw := keywords[i]
		if !upper {
			kw = strings.ToLower(kw)
		}
		st = re.ReplaceAllString(st, kw)
	}
	return st
}

func firstWord(st string) string {
	if i := strings.IndexByte(st, ' '); i >= 0 {
		return st[:i]
	}
	return st
}

// formatSelect puts the column list between SELECT [DISTINCT] and FROM
// on indented lines (simple comma split, no paren awareness), then
// breaks the remaining clauses onto unindented lines with AND/OR in
// WHERE indented below it.
func formatSelect(st string) string {
	head, rest := st, ""
	if loc := fromRe.FindStringIndex(st); loc != nil {
		head = strings.TrimSpace(st[:loc[0]])
		rest = strings.TrimSpace(st[loc[0]:])
	}

	prefix := selectPrefixRe.FindString(head)
	cols := strings.TrimSpace(head[len(prefix):])

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('\n')
	writeCommaList(&b, cols)
	if rest != "" {
		b.WriteString(clausesBlock(rest))
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatInsert keeps `INSERT INTO table (cols)` on one line, puts
// VALUES on the next, and indents each value tuple on its own line.
func formatInsert(st string) string {
	loc := valuesRe.FindStringIndex(st)
	if loc == nil {
		return st
	}
	head := strings.TrimSpace(st[:loc[0]])
	kw := st[loc[0]:loc[1]]
	body := strings.TrimSpace(st[loc[1]:])
	body = tupleSepRe.ReplaceAllString(body, "),\n"+indent+"(")
	return head + "\n" + kw + "\n" + indent + body
}

// formatUpdate puts SET on its own line, each assignment indented and
// comma-terminated, with WHERE on a new line below.
func formatUpdate(st string) string {
	setLoc := setRe.FindStringIndex(st)
	if setLoc == nil {
		return st
	}
	head := strings.TrimSpace(st[:setLoc[0]])
	kw := st[setLoc[0]:setLoc[1]]
	rest := strings.TrimSpace(st[setLoc[1]:])

	assigns, tail := rest, ""
	if wl := whereRe.FindStringIndex(rest); wl != nil {
		assigns = strings.TrimSpace(rest[:wl[0]])
		tail = strings.TrimSpace(rest[wl[0]:])
	}

	var b strings.Builder
	b.WriteString(head)
	b.WriteByte('\n')
	b.WriteString(kw)
	b.WriteByte('\n')
	writeCommaList(&b, assigns)
	if tail != "" {
		b.WriteString(breakAndOr(tail))
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatDelete keeps FROM inline and moves WHERE to a new line with
// AND/OR indented.
func formatDelete(st string) string {
	wl := whereRe.FindStringIndex(st)
	if wl == nil {
		return st
	}
	head := strings.TrimSpace(st[:wl[0]])
	tail := strings.TrimSpace(st[wl[0]:])
	return head + "\n" + breakAndOr(tail)
}

// formatDDL splits the column-definition list of CREATE TABLE inside
// the outermost parentheses onto indented lines. Other DDL statements
// stay on one line.
func formatDDL(st string) string {
	if !createTableRe.MatchString(st) {
		return st
	}
	open := strings.IndexByte(st, '(')
	if open < 0 {
		return st
	}
	closeIdx := matchingParen(st, open)
	if closeIdx < 0 {
		return st
	}

	head := strings.TrimSpace(st[:open])
	inner := strings.TrimSpace(st[open+1 : closeIdx])
	tail := strings.TrimSpace(st[closeIdx+1:])

	var b strings.Builder
	b.WriteString(head)
	b.WriteString(" (\n")
	writeCommaList(&b, inner)
	b.WriteString(")")
	if tail != "" {
		b.WriteString(" ")
		b.WriteString(tail)
	}
	return b.String()
}

// matchingParen returns the index of the parenthesis closing the one
// at open, or -1 when unbalanced.
func matchingParen(st string, open int) int {
	depth := 0
	for i := open; i < len(st); i++ {
		switch st[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// writeCommaList writes each comma-separated item on its own indented
// line. The split is a plain comma split: commas inside parentheses or
// string literals are not protected.
func writeCommaList(b *strings.Builder, list string) {
	if list == "" {
		return
	}
	parts := strings.Split(list, ",")
	for i, p := range parts {
		b.WriteString(indent)
		b.WriteString(strings.TrimSpace(p))
		if i < len(parts)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
}

// clausesBlock breaks JOIN/WHERE/GROUP BY/HAVING/ORDER BY/LIMIT onto
// their own lines and indents AND/OR below WHERE.
func clausesBlock(rest string) string {
	broken := clauseRe.ReplaceAllStringFunc(rest, func(m string) string {
		return "\n" + m
	})
	broken = strings.ReplaceAll(broken, " \n", "\n")
	broken = strings.TrimPrefix(broken, "\n")

	lines := strings.Split(broken, "\n")
	for i, ln := range lines {
		if whereLineRe.MatchString(ln) {
			lines[i] = breakAndOr(ln)
		}
	}
	return strings.Join(lines, "\n")
}

func breakAndOr(clause string) string {
	return andOrRe.ReplaceAllString(clause, "\n"+indent+"$1 ")
}
