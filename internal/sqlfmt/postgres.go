package sqlfmt

import (
	"strings"

	gosqlfmt "github.com/kanmu/go-sqlfmt"

	"devfmt/internal/errors"
)

// FormatPostgres reformats a PostgreSQL statement by delegating to the
// go-sqlfmt formatter instead of the regex-driven MySQL/Doris path.
func FormatPostgres(input string) (string, error) {
	sql := strings.TrimSpace(input)
	if sql == "" {
		return "", errors.NewInputError("no SQL statement found", errors.ErrEmptySQL)
	}

	formatter := &gosqlfmt.Formatter{}
	formatted, err := formatter.Format(sql)
	if err != nil {
		return "", errors.NewParseError("failed to format postgres SQL", err)
	}
	return formatted, nil
}
