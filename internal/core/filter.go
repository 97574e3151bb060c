package core

// CompareKind declares how a whitelisted column is matched against the
// request value.
type CompareKind int

const (
	// CompareExact emits `col = ?`.
	CompareExact CompareKind = iota
	// CompareIn emits `col IN (?, ...)`, one bound parameter per value.
	CompareIn
	// CompareLikeContains emits `col LIKE ?` with the value wrapped in %.
	CompareLikeContains
	// CompareRangeGte emits `col >= ?`.
	CompareRangeGte
	// CompareRangeLte emits `col <= ?`.
	CompareRangeLte
)

// ColumnFilter binds one request parameter to one table column. Column names
// only ever come from these static specs, never from the request.
type ColumnFilter struct {
	Column string
	Kind   CompareKind
}

// Sort is a validated sort target.
type Sort struct {
	Column    string
	Direction string // "ASC" or "DESC"
}

// SummarySpec names the columns the summary aggregation runs over. Zero
// values disable the corresponding aggregate.
type SummarySpec struct {
	SignalColumn   string // CASE-counted for BUY/SELL
	AvgColumn      string // numeric column averaged over the filtered set
	DistinctColumn string // COUNT(DISTINCT ...)
}

// FilterSpec is the static, per-endpoint contract between untrusted request
// parameters and the SQL that may be generated for one table. It is a
// constant: nothing in it is ever derived from a request.
type FilterSpec struct {
	Table string

	// Filters maps request parameter names to column predicates.
	Filters map[string]ColumnFilter

	// SortKeys maps request sort keys to sortable columns. Anything not in
	// here silently falls back to DefaultSort.
	SortKeys map[string]string

	DefaultSort Sort

	// PayloadColumn, when set, names an embedded JSON column that the reader
	// expands into the row's Extra bag. Malformed payloads are dropped
	// per-row.
	PayloadColumn string

	// Optional marks exploratory tables: a relation-does-not-exist error
	// reads as zero rows instead of a server error.
	Optional bool

	Summary SummarySpec
}

// SortFor validates the requested sort against the whitelist, falling back
// to the default. Invalid input is normalized, never rejected, so stale
// persisted UI state cannot break a read.
func (s FilterSpec) SortFor(key, direction string) Sort {
	sort := s.DefaultSort
	if col, ok := s.SortKeys[key]; ok {
		sort.Column = col
	}
	switch direction {
	case "ASC", "asc":
		sort.Direction = "ASC"
	case "DESC", "desc":
		sort.Direction = "DESC"
	}
	return sort
}
