package data

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/core"
)

// BuiltQuery is the count/data statement pair for one page request. Both
// statements share the same WHERE clause and the same bound arguments, which
// is what keeps pagination.total consistent with the returned rows.
type BuiltQuery struct {
	SelectSQL string
	CountSQL  string
	Args      []interface{}
}

// Builder accumulates parameterized predicates for one table. Column names
// only ever come from the FilterSpec constant or from reader code; request
// values are always bound, never rendered into the SQL text.
type Builder struct {
	spec    core.FilterSpec
	req     core.PageRequest
	dialect Dialect
	conds   []string
	args    []interface{}
}

// NewBuilder seeds a builder with every whitelisted filter present in the
// request. Keys outside the whitelist were already dropped during parsing.
func NewBuilder(spec core.FilterSpec, req core.PageRequest, d Dialect) *Builder {
	b := &Builder{spec: spec, req: req, dialect: d}

	// Stable predicate order keeps generated SQL deterministic.
	keys := make([]string, 0, len(req.Filters))
	for key := range req.Filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		filter, ok := spec.Filters[key]
		if !ok {
			continue
		}
		values := req.Filters[key]
		switch filter.Kind {
		case core.CompareIn:
			b.AddIn(filter.Column, values)
		case core.CompareLikeContains:
			b.conds = append(b.conds, fmt.Sprintf("%s LIKE %s", d.Quote(filter.Column), b.placeholder()))
			b.args = append(b.args, "%"+values[0]+"%")
		case core.CompareRangeGte:
			b.AddCompare(filter.Column, ">=", values[0])
		case core.CompareRangeLte:
			b.AddCompare(filter.Column, "<=", values[0])
		default:
			b.AddCompare(filter.Column, "=", values[0])
		}
	}
	return b
}

func (b *Builder) placeholder() string {
	return b.dialect.Placeholder(len(b.args) + 1)
}

// AddCompare appends `column <op> ?` with a bound value.
func (b *Builder) AddCompare(column, op string, value interface{}) {
	b.conds = append(b.conds, fmt.Sprintf("%s %s %s", b.dialect.Quote(column), op, b.placeholder()))
	b.args = append(b.args, value)
}

// AddIn appends `column IN (?, ...)` with one bound parameter per value.
func (b *Builder) AddIn(column string, values []string) {
	if len(values) == 0 {
		return
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = b.placeholder()
		b.args = append(b.args, v)
	}
	b.conds = append(b.conds, fmt.Sprintf("%s IN (%s)", b.dialect.Quote(column), strings.Join(placeholders, ", ")))
}

// AddNotEmpty appends a predicate requiring a non-null, non-empty column.
func (b *Builder) AddNotEmpty(column string) {
	quoted := b.dialect.Quote(column)
	b.conds = append(b.conds, fmt.Sprintf("(%s IS NOT NULL AND %s <> '')", quoted, quoted))
}

// Where renders the accumulated predicate (with leading " WHERE ", or empty)
// and its bound arguments.
func (b *Builder) Where() (string, []interface{}) {
	if len(b.conds) == 0 {
		return "", b.args
	}
	return " WHERE " + strings.Join(b.conds, " AND "), b.args
}

// Query renders the final count/data pair. limit=all suppresses the
// LIMIT/OFFSET clause entirely so the true full set comes back.
func (b *Builder) Query() BuiltQuery {
	where, args := b.Where()
	orderBy := fmt.Sprintf(" ORDER BY %s %s", b.dialect.Quote(b.req.Sort.Column), b.req.Sort.Direction)

	limitOffset := ""
	if !b.req.LimitAll {
		limitOffset = b.dialect.LimitOffset(b.req.Limit, (b.req.Page-1)*b.req.Limit)
	}

	return BuiltQuery{
		SelectSQL: "SELECT * FROM " + b.spec.Table + where + orderBy + limitOffset,
		CountSQL:  "SELECT COUNT(*) FROM " + b.spec.Table + where,
		Args:      args,
	}
}
