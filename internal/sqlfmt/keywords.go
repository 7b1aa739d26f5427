package sqlfmt

// Keywords recognized by the MySQL/Doris dialect. Re-casing matches
// whole words case-insensitively, one substitution pass per keyword.
var keywords = []string{
	"SELECT", "DISTINCT", "FROM", "WHERE", "AND", "OR", "NOT", "IN",
	"EXISTS", "BETWEEN", "LIKE", "IS", "NULL", "AS", "ON", "USING",
	"INNER", "LEFT", "RIGHT", "FULL", "OUTER", "CROSS", "JOIN",
	"GROUP", "BY", "HAVING", "ORDER", "ASC", "DESC", "LIMIT", "OFFSET",
	"UNION", "ALL", "CASE", "WHEN", "THEN", "ELSE", "END",
	"INSERT", "INTO", "VALUES", "UPDATE", "SET", "DELETE",
	"CREATE", "TABLE", "ALTER", "DROP", "TRUNCATE", "INDEX", "VIEW",
	"DATABASE", "IF", "PRIMARY", "KEY", "UNIQUE", "DEFAULT", "COMMENT",
	"ENGINE", "PARTITION", "DISTRIBUTED", "BUCKETS", "PROPERTIES",
	"DUPLICATE", "AGGREGATE", "REPLACE",
}

// Function names recognized by the highlighter: an identifier from
// this list immediately followed by an opening parenthesis.
var functions = []string{
	"COUNT", "SUM", "AVG", "MIN", "MAX", "ROUND", "FLOOR", "CEIL",
	"ABS", "CONCAT", "SUBSTRING", "SUBSTR", "LENGTH", "UPPER", "LOWER",
	"TRIM", "COALESCE", "IFNULL", "NULLIF", "NOW", "CURDATE",
	"DATE_FORMAT", "DATE_ADD", "DATE_SUB", "DATEDIFF",
	"UNIX_TIMESTAMP", "FROM_UNIXTIME", "CAST", "CONVERT",
	"GROUP_CONCAT", "JSON_EXTRACT", "ROW_NUMBER", "RANK", "DENSE_RANK",
	"LAG", "LEAD",
	// Names that double as keywords; when followed by `(` the
	// function reading wins.
	"IF", "REPLACE", "LEFT", "RIGHT",
}

// Keywords returns a copy of the MySQL/Doris keyword list.
func Keywords() []string {
	out := make([]string, len(keywords))
	copy(out, keywords)
	return out
}

// Functions returns a copy of the recognized function-name list.
func Functions() []string {
	out := make([]string, len(functions))
	copy(out, functions)
	return out
}
