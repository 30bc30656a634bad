package pg

import (
	"strconv"
	"strings"
	"unicode"
)

// verbs whose Postgres command tag carries a row count
var countedVerbs = map[string]bool{
	"INSERT": true,
	"UPDATE": true,
	"DELETE": true,
	"SELECT": true,
	"MERGE":  true,
	"MOVE":   true,
	"FETCH":  true,
	"COPY":   true,
}

// leadingKeyword returns the upper-cased first SQL keyword, skipping comments.
func leadingKeyword(query string) string {
	q := query
skip:
	for {
		q = strings.TrimLeftFunc(q, unicode.IsSpace)
		switch {
		case strings.HasPrefix(q, "--"):
			if i := strings.IndexByte(q, '\n'); i >= 0 {
				q = q[i+1:]
				continue
			}
			return ""
		case strings.HasPrefix(q, "/*"):
			if i := strings.Index(q, "*/"); i >= 0 {
				q = q[i+2:]
				continue
			}
			return ""
		default:
			break skip
		}
	}

	end := strings.IndexFunc(q, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if end < 0 {
		end = len(q)
	}
	return strings.ToUpper(q[:end])
}

// commandTag rebuilds the status string Postgres reports for a finished statement.
// rowsOK is false when the driver could not report affected rows.
func commandTag(query string, rows int64, rowsOK bool) string {
	verb := leadingKeyword(query)
	if !countedVerbs[verb] || !rowsOK {
		return verb
	}
	n := strconv.FormatInt(rows, 10)
	if verb == "INSERT" {
		// legacy OID column, always 0
		return "INSERT 0 " + n
	}
	return verb + " " + n
}
