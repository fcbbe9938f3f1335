package magic

import (
	"regexp"
	"strings"

	"github.com/vsql-project/vsql/core"
)

// ParsedInvocation is the structured form of a single magic invocation.
type ParsedInvocation struct {
	// SQL is the verbatim statement text (line tail + cell body).
	SQL string
	// ResultVar is the namespace variable to bind the result to.
	ResultVar string
	// ConnectionRef is a connection url, "[section]" DSN reference or
	// stored connection alias. Empty means the process environment.
	ConnectionRef string
}

// resultVarPattern matches the "ident <<" result binding flag.
var resultVarPattern = regexp.MustCompile(`^([A-Za-z0-9#_$]+)\s*<<`)

// Parse splits the first line of an invocation into a connection
// reference, a result variable flag and the SQL text. Malformed flag
// syntax never fails: an ambiguous token is passed through as SQL and
// the error is deferred to the database.
func Parse(line, cell string, cfg *core.Config) *ParsedInvocation {
	parsed := &ParsedInvocation{}

	rest := strings.TrimLeft(line, " \t")

	if fields := strings.Fields(rest); len(fields) > 0 && isConnectionRef(fields[0], cfg) {
		parsed.ConnectionRef = fields[0]
		rest = strings.TrimLeft(strings.TrimPrefix(rest, fields[0]), " \t")
	}

	if match := resultVarPattern.FindStringSubmatch(rest); match != nil {
		parsed.ResultVar = match[1]
		rest = strings.TrimLeft(rest[len(match[0]):], " \t")
	}

	switch {
	case rest == "":
		parsed.SQL = cell
	case cell == "":
		parsed.SQL = rest
	default:
		parsed.SQL = rest + "\n" + cell
	}

	return parsed
}

// isConnectionRef reports whether the first token of the line names a
// connection rather than SQL. A "[section]" token is only recognized
// when a DSN file is configured.
func isConnectionRef(token string, cfg *core.Config) bool {
	if strings.Contains(token, "://") {
		return true
	}
	if strings.Contains(token, "@") {
		return true
	}
	if cfg.DSNFilename != "" &&
		strings.HasPrefix(token, "[") && strings.HasSuffix(token, "]") && len(token) > 2 {
		return true
	}
	return false
}
