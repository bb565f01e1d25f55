// Package database builds parameterized list queries with sanitized
// identifiers.
package database

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

type ConditionType string

const (
	Equal              ConditionType = "="
	NotEqual           ConditionType = "!="
	GreaterThan        ConditionType = ">"
	LessThan           ConditionType = "<"
	LessThanOrEqual    ConditionType = "<="
	GreaterThanOrEqual ConditionType = ">="
	ILike              ConditionType = "ILIKE"
	In                 ConditionType = "IN"
	NotNull            ConditionType = "IS NOT NULL"
	Custom             ConditionType = "CUSTOM"

	unset = -1
)

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

type Condition struct {
	Field    string
	Type     ConditionType
	Value    any
	rawQuery string
}

// WhereCond compares a column with a value.
func WhereCond(field string, condType ConditionType, value any) Condition {
	if condType == Custom {
		//nolint:forbidigo // custom conditions must go through WhereRawCond.
		panic("Use WhereRawCond for Custom type")
	}
	return Condition{Field: field, Type: condType, Value: value}
}

// WhereNotNull matches rows where field has a value.
func WhereNotNull(field string) Condition {
	return Condition{Field: field, Type: NotNull}
}

// WhereRawCond adds an unsanitized SQL fragment whose $n placeholders refer
// to params and are renumbered into the final query.
func WhereRawCond(rawQuery string, params ...any) Condition {
	return Condition{Type: Custom, rawQuery: rawQuery, Value: params}
}

type ListQueryOptions struct {
	Table      string
	Columns    []string
	CountOnly  bool
	Conditions []Condition
	OrderBy    string
	OrderDir   string
	NullsLast  bool
	ThenBy     string
	Limit      int
	Offset     int
}

type ListQueryOption func(*ListQueryOptions)

func NewListQueryOptions(table string, opts ...ListQueryOption) *ListQueryOptions {
	options := &ListQueryOptions{Table: table, Limit: unset, Offset: unset}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithColumns sets the columns to select.
func WithColumns(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) { o.Columns = cols }
}

// WithCondition adds a single condition.
func WithCondition(cond Condition) ListQueryOption {
	return func(o *ListQueryOptions) { o.Conditions = append(o.Conditions, cond) }
}

// WithOrderBy sets the ordering column and direction.
func WithOrderBy(column, direction string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.OrderBy = column
		o.OrderDir = direction
	}
}

// WithNullsLast sorts NULL values after all others regardless of direction.
func WithNullsLast() ListQueryOption {
	return func(o *ListQueryOptions) { o.NullsLast = true }
}

// WithThenBy adds an ascending tiebreaker column after OrderBy.
func WithThenBy(column string) ListQueryOption {
	return func(o *ListQueryOptions) { o.ThenBy = column }
}

// WithLimit sets the limit. Accepts 0.
func WithLimit(limit int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if limit >= 0 {
			o.Limit = limit
		}
	}
}

// WithOffset sets the offset. Accepts 0.
func WithOffset(offset int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if offset >= 0 {
			o.Offset = offset
		}
	}
}

// WithCountOnly sets the query to count only.
func WithCountOnly() ListQueryOption {
	return func(o *ListQueryOptions) { o.CountOnly = true }
}

func sanitizeIdentifier(ident string) string {
	return pgx.Identifier(strings.Split(ident, ".")).Sanitize()
}

// BuildListQuery renders options into SQL and positional args.
//
//	q, args := BuildListQuery(NewListQueryOptions("aircraft",
//		WithColumns("id", "name"),
//		WithCondition(WhereCond("name", ILike, "%boeing%")),
//		WithOrderBy("mtow", "DESC"), WithNullsLast(),
//		WithLimit(10),
//	))
func BuildListQuery(options *ListQueryOptions) (string, []any) {
	if options == nil {
		return "", nil
	}

	var b strings.Builder
	switch {
	case options.CountOnly:
		b.WriteString("SELECT COUNT(*) ")
	case len(options.Columns) == 0:
		b.WriteString("SELECT * ")
	default:
		cols := make([]string, len(options.Columns))
		for i, c := range options.Columns {
			cols[i] = sanitizeIdentifier(c)
		}
		b.WriteString("SELECT " + strings.Join(cols, ", ") + " ")
	}
	b.WriteString("FROM " + sanitizeIdentifier(options.Table))

	where, args := buildWhereClause(options.Conditions)
	if where != "" {
		b.WriteString(" " + where)
	}
	if options.CountOnly {
		return b.String(), args
	}

	if options.OrderBy != "" {
		b.WriteString(" ORDER BY " + sanitizeIdentifier(options.OrderBy))
		if dir := strings.ToUpper(options.OrderDir); dir == "ASC" || dir == "DESC" {
			b.WriteString(" " + dir)
		}
		if options.NullsLast {
			b.WriteString(" NULLS LAST")
		}
		if options.ThenBy != "" && options.ThenBy != options.OrderBy {
			b.WriteString(", " + sanitizeIdentifier(options.ThenBy) + " ASC")
		}
	}
	if options.Limit != unset {
		args = append(args, options.Limit)
		b.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}
	if options.Offset != unset {
		args = append(args, options.Offset)
		b.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	}
	return b.String(), args
}

func buildWhereClause(conds []Condition) (string, []any) {
	parts := make([]string, 0, len(conds))
	var args []any
	for _, c := range conds {
		sql, more := renderCondition(c, len(args)+1)
		if sql == "" {
			continue
		}
		parts = append(parts, sql)
		args = append(args, more...)
	}
	if len(parts) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(parts, " AND "), args
}

// renderCondition returns the SQL for c with placeholders starting at next.
// Conditions that cannot be rendered safely yield "".
func renderCondition(c Condition, next int) (string, []any) {
	if c.Type == Custom {
		return renderRaw(c, next)
	}
	if c.Field == "" {
		return "", nil
	}
	field := sanitizeIdentifier(c.Field)

	switch c.Type {
	case NotNull:
		return field + " IS NOT NULL", nil
	case In:
		// An empty or non-slice list matches nothing.
		rv := reflect.ValueOf(c.Value)
		if rv.Kind() != reflect.Slice || rv.Len() == 0 {
			return "FALSE", nil
		}
		placeholders := make([]string, rv.Len())
		args := make([]any, rv.Len())
		for i := range rv.Len() {
			placeholders[i] = "$" + strconv.Itoa(next+i)
			args[i] = rv.Index(i).Interface()
		}
		return fmt.Sprintf("%s IN (%s)", field, strings.Join(placeholders, ", ")), args
	case Equal, NotEqual, GreaterThan, LessThan, LessThanOrEqual, GreaterThanOrEqual, ILike:
		return fmt.Sprintf("%s %s $%d", field, c.Type, next), []any{c.Value}
	}
	return "", nil
}

func renderRaw(c Condition, next int) (string, []any) {
	if c.rawQuery == "" {
		return "", nil
	}
	params, _ := c.Value.([]any)
	var args []any
	renumbered := map[int]int{}
	sql := placeholderRe.ReplaceAllStringFunc(c.rawQuery, func(m string) string {
		n, err := strconv.Atoi(m[1:])
		if err != nil || n < 1 || n > len(params) {
			return m
		}
		if _, ok := renumbered[n]; !ok {
			renumbered[n] = next + len(args)
			args = append(args, params[n-1])
		}
		return "$" + strconv.Itoa(renumbered[n])
	})
	return sql, args
}
