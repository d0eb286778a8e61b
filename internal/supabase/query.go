package supabase

import (
	"net/url"
	"strconv"
	"strings"
)

// Query builds a PostgREST endpoint such as "lessons?select=*&id=eq.42".
// Parameters keep insertion order.
type Query struct {
	table  string
	params []param
}

type param struct {
	key   string
	value string
}

func From(table string) *Query {
	return &Query{table: table}
}

func (q *Query) Select(columns string) *Query {
	return q.Param("select", columns)
}

// Eq adds a column=eq.value filter.
func (q *Query) Eq(column, value string) *Query {
	return q.Param(column, "eq."+value)
}

// ILikeAny matches rows where any of the columns contains term, case-insensitively.
func (q *Query) ILikeAny(term string, columns ...string) *Query {
	pattern := quoteValue("*" + term + "*")
	conds := make([]string, len(columns))
	for i, col := range columns {
		conds[i] = col + ".ilike." + pattern
	}
	return q.Param("or", "("+strings.Join(conds, ",")+")")
}

func (q *Query) Order(column string) *Query {
	return q.Param("order", column)
}

// OrderEmbedded orders an embedded resource, e.g. OrderEmbedded("modules", "order_index").
func (q *Query) OrderEmbedded(resource, column string) *Query {
	return q.Param(resource+".order", column)
}

func (q *Query) Limit(n int) *Query {
	return q.Param("limit", strconv.Itoa(n))
}

func (q *Query) Param(key, value string) *Query {
	q.params = append(q.params, param{key: key, value: value})
	return q
}

func (q *Query) String() string {
	if len(q.params) == 0 {
		return q.table
	}
	var b strings.Builder
	b.WriteString(q.table)
	for i, p := range q.params {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(escapeValue(p.value))
	}
	return b.String()
}

// quoteValue wraps values containing logic-tree reserved characters in double quotes.
func quoteValue(v string) string {
	if !strings.ContainsAny(v, `,()"\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(v) + `"`
}

// escapeValue percent-encodes a value but keeps the PostgREST operator syntax readable.
// Spaces become %20: PostgREST does not decode "+" as a space.
func escapeValue(v string) string {
	escaped := url.QueryEscape(v)
	return strings.NewReplacer(
		"+", "%20",
		"%2A", "*",
		"%2C", ",",
		"%28", "(",
		"%29", ")",
	).Replace(escaped)
}
