package builder

import (
	"fmt"
	"strings"
)

// SQLBuilder constructs Postgres queries. Conditions are written with "?"
// placeholders, which Build renumbers to $1, $2, ... in argument order.
type SQLBuilder struct {
	table    string
	columns  []string
	where    []string
	args     []interface{}
	orderBy  []string
	limit    int
	offset   int
	isInsert bool
}

// NewSQLBuilder creates a new instance of SQLBuilder.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{}
}

// Select specifies the columns to retrieve.
func (b *SQLBuilder) Select(cols ...string) *SQLBuilder {
	b.columns = cols
	return b
}

// From specifies the table to select from.
func (b *SQLBuilder) From(table string) *SQLBuilder {
	b.table = table
	return b
}

// Insert specifies the table and columns for insertion.
func (b *SQLBuilder) Insert(table string, cols ...string) *SQLBuilder {
	b.isInsert = true
	b.table = table
	b.columns = cols
	return b
}

// Where adds a condition, combined with the others using AND.
func (b *SQLBuilder) Where(condition string, args ...interface{}) *SQLBuilder {
	b.where = append(b.where, condition)
	b.args = append(b.args, args...)
	return b
}

// OrderBy adds an ORDER BY term.
func (b *SQLBuilder) OrderBy(order string) *SQLBuilder {
	b.orderBy = append(b.orderBy, order)
	return b
}

// Limit adds a LIMIT clause; zero means no limit.
func (b *SQLBuilder) Limit(limit int) *SQLBuilder {
	b.limit = limit
	return b
}

// Offset adds an OFFSET clause; zero means no offset.
func (b *SQLBuilder) Offset(offset int) *SQLBuilder {
	b.offset = offset
	return b
}

// Build constructs the final SQL string and arguments.
func (b *SQLBuilder) Build() (string, []interface{}) {
	if b.isInsert {
		return b.buildInsert()
	}

	var sb strings.Builder
	args := append([]interface{}(nil), b.args...)

	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(b.columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	next := 1
	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(numberPlaceholders(strings.Join(b.where, " AND "), &next))
	}
	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		args = append(args, b.limit)
		fmt.Fprintf(&sb, " LIMIT $%d", next)
		next++
	}
	if b.offset > 0 {
		args = append(args, b.offset)
		fmt.Fprintf(&sb, " OFFSET $%d", next)
	}
	return sb.String(), args
}

// buildInsert renders a single-row INSERT meant for Prepare, with one
// placeholder per column.
func (b *SQLBuilder) buildInsert() (string, []interface{}) {
	placeholders := make([]string, len(b.columns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		b.table, strings.Join(b.columns, ", "), strings.Join(placeholders, ", ")), nil
}

// BuildSafe is Build with sanity checks: a table and columns are required,
// and a SELECT must bind exactly one argument per placeholder.
func (b *SQLBuilder) BuildSafe() (string, []interface{}, error) {
	if b.table == "" || len(b.columns) == 0 {
		return "", nil, fmt.Errorf("query needs a table and at least one column")
	}
	sql, args := b.Build()
	if b.isInsert {
		return sql, args, nil
	}
	if count := strings.Count(sql, "$"); count != len(args) {
		return "", nil, fmt.Errorf("placeholder count (%d) does not match argument count (%d)", count, len(args))
	}
	return sql, args, nil
}

func numberPlaceholders(clause string, next *int) string {
	var sb strings.Builder
	for _, r := range clause {
		if r == '?' {
			fmt.Fprintf(&sb, "$%d", *next)
			*next++
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
