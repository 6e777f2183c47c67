package db

import (
	"fmt"
	"strings"
)

type dialect interface {
	// Quote quotes an identifier already checked by the config loader.
	Quote(ident string) string
	// Q rewrites ? placeholders for the driver.
	Q(query string) string
}

type mysqlDialect struct{}

func (mysqlDialect) Quote(ident string) string { return "`" + ident + "`" }
func (mysqlDialect) Q(query string) string     { return query }

type sqliteDialect struct{}

func (sqliteDialect) Quote(ident string) string { return `"` + ident + `"` }
func (sqliteDialect) Q(query string) string     { return query }

type postgresDialect struct{}

func (postgresDialect) Quote(ident string) string { return `"` + ident + `"` }
func (postgresDialect) Q(query string) string     { return rebind(query) }

// rebind rewrites ? placeholders to $1, $2, ... for PostgreSQL.
func rebind(query string) string {
	n := 0
	var b strings.Builder
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteString(fmt.Sprintf("$%d", n))
		} else {
			b.WriteByte(query[i])
		}
	}
	return b.String()
}

const likeEscape = '!'

// likePattern builds a LIKE ... ESCAPE '!' pattern matching s anywhere.
func likePattern(s string) string {
	var b strings.Builder
	b.WriteByte('%')
	for _, r := range s {
		if r == '%' || r == '_' || r == likeEscape {
			b.WriteRune(likeEscape)
		}
		b.WriteRune(r)
	}
	b.WriteByte('%')
	return b.String()
}
