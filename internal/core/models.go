package core

import (
	"encoding/json"
	"time"
)

// LogRow is one record from a log table. Columns the dashboard relies on are
// promoted to typed fields; everything else the table happens to carry lands
// in Extra so schema drift on the trading side never breaks the typed core.
type LogRow struct {
	ID        int64
	UID       string
	Symbol    string
	Interval  string
	Signal    string
	EventType string
	CreatedAt time.Time
	Extra     map[string]interface{}
}

// Promoted column names, shared by scan promotion and JSON round-trips.
const (
	ColID        = "id"
	ColUID       = "uid"
	ColSymbol    = "symbol"
	ColInterval  = "interval"
	ColSignal    = "signal"
	ColEventType = "event_type"
	ColCreatedAt = "created_at"
)

// MarshalJSON flattens the row into a single object, the way the dashboard
// consumes it: promoted fields and Extra keys side by side.
func (r LogRow) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(r.Extra)+7)
	for k, v := range r.Extra {
		m[k] = v
	}
	m[ColID] = r.ID
	if r.UID != "" {
		m[ColUID] = r.UID
	}
	if r.Symbol != "" {
		m[ColSymbol] = r.Symbol
	}
	if r.Interval != "" {
		m[ColInterval] = r.Interval
	}
	if r.Signal != "" {
		m[ColSignal] = r.Signal
	}
	if r.EventType != "" {
		m[ColEventType] = r.EventType
	}
	if !r.CreatedAt.IsZero() {
		m[ColCreatedAt] = r.CreatedAt.UTC().Format(time.RFC3339)
	}
	return json.Marshal(m)
}

// UnmarshalJSON rebuilds a row from a flat object (e.g. a fallback response).
func (r *LogRow) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*r = PromoteRow(m)
	return nil
}

// PromoteRow lifts known columns out of a generically scanned row into the
// typed fields and leaves the rest in Extra.
func PromoteRow(m map[string]interface{}) LogRow {
	row := LogRow{Extra: make(map[string]interface{})}
	for k, v := range m {
		switch k {
		case ColID:
			row.ID = asInt64(v)
		case ColUID:
			row.UID = asString(v)
		case ColSymbol:
			row.Symbol = asString(v)
		case ColInterval:
			row.Interval = asString(v)
		case ColSignal:
			row.Signal = asString(v)
		case ColEventType:
			row.EventType = asString(v)
		case ColCreatedAt:
			if t, ok := asTime(v); ok {
				row.CreatedAt = t
			} else if v != nil {
				row.Extra[k] = v
			}
		default:
			if v != nil {
				row.Extra[k] = v
			}
		}
	}
	return row
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	}
	return ""
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case json.Number:
		i, _ := n.Int64()
		return i
	}
	return 0
}

func asTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	case []byte:
		return asTime(string(t))
	}
	return time.Time{}, false
}

// Pagination describes one page of a filtered result set. Total is computed
// from the same WHERE clause as the rows themselves.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// PageResult is the unit every paginated read endpoint returns, whether the
// rows came from the local database, the fallback deployment, or nowhere.
type PageResult struct {
	Rows       []LogRow   `json:"logs"`
	Pagination Pagination `json:"pagination"`
}

// EmptyPage is the safe default when both the database and the fallback are
// unavailable: an empty first page, never an error.
func EmptyPage(page, limit int) PageResult {
	return PageResult{
		Rows:       []LogRow{},
		Pagination: Pagination{Page: page, Limit: limit, Total: 0, TotalPages: 1},
	}
}

// NewPagination derives page metadata from a total count. limitAll means the
// caller asked for the unpaginated set, which is always exactly one page.
func NewPagination(page, limit int, total int64, limitAll bool) Pagination {
	if limitAll {
		return Pagination{Page: 1, Limit: int(total), Total: total, TotalPages: 1}
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// LogSummary holds the aggregate view over the same filter predicate as the
// paginated read.
type LogSummary struct {
	Total           int64    `json:"total"`
	BuyCount        int64    `json:"buyCount"`
	SellCount       int64    `json:"sellCount"`
	AvgValue        *float64 `json:"avgValue,omitempty"`
	DistinctSymbols int64    `json:"distinctSymbols"`
}

// LookupResult carries the approximate-match flag for the signal lookup:
// when the precise uid filter finds nothing the reader retries with the
// looser BUY/SELL condition and marks the result so the caller can tell
// "approximate matches" from "no data at all".
type LookupResult struct {
	Rows         []LogRow `json:"logs"`
	UsedFallback bool     `json:"usedFallback"`
}
