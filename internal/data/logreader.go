package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/valyala/fastjson"

	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/core"
	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/logger"
)

// FallbackFetcher forwards a logical read to a sibling deployment when the
// local database is unavailable. A miss is (nil, false), never an error.
type FallbackFetcher interface {
	Fetch(ctx context.Context, path, rawQuery string) ([]byte, bool)
}

// LogReader serves paginated pages over the log tables. db may be nil when
// the resolver gave up; every read then goes through the fallback fetcher,
// and an empty page when that misses too.
type LogReader struct {
	db       *sql.DB
	dialect  Dialect
	fallback FallbackFetcher
}

func NewLogReader(db *sql.DB, driver string, fallback FallbackFetcher) *LogReader {
	return &LogReader{db: db, dialect: DialectFor(driver), fallback: fallback}
}

// Available reports whether the local database pool was resolved.
func (r *LogReader) Available() bool {
	return r.db != nil
}

// ReadPage serves one page: count and data queries run concurrently off the
// same WHERE clause, rows are scanned generically, promoted, and their
// embedded JSON payload expanded. path/rawQuery identify the logical request
// for fallback replay.
func (r *LogReader) ReadPage(ctx context.Context, spec core.FilterSpec, req core.PageRequest, path, rawQuery string) (core.PageResult, error) {
	if r.db == nil {
		return r.readViaFallback(ctx, req, path, rawQuery), nil
	}

	q := NewBuilder(spec, req, r.dialect).Query()

	type countResult struct {
		total int64
		err   error
	}
	countCh := make(chan countResult, 1)
	go func() {
		var total int64
		err := r.db.QueryRowContext(ctx, q.CountSQL, q.Args...).Scan(&total)
		countCh <- countResult{total, err}
	}()

	rows, err := r.queryRows(ctx, spec, q.SelectSQL, q.Args...)
	count := <-countCh

	if err != nil {
		if isMissingTable(err) && spec.Optional {
			return core.EmptyPage(req.Page, req.Limit), nil
		}
		return core.PageResult{}, fmt.Errorf("query %s: %w", spec.Table, err)
	}
	if count.err != nil {
		if isMissingTable(count.err) && spec.Optional {
			return core.EmptyPage(req.Page, req.Limit), nil
		}
		return core.PageResult{}, fmt.Errorf("count %s: %w", spec.Table, count.err)
	}

	return core.PageResult{
		Rows:       rows,
		Pagination: core.NewPagination(req.Page, req.Limit, count.total, req.LimitAll),
	}, nil
}

// LookupSignals filters for rows carrying a uid first; when that matches
// nothing it retries with the looser BUY/SELL condition and flags the result
// so callers can distinguish approximate matches from no data at all.
func (r *LogReader) LookupSignals(ctx context.Context, req core.PageRequest) (core.LookupResult, error) {
	if r.db == nil {
		return core.LookupResult{Rows: []core.LogRow{}}, nil
	}

	precise := NewBuilder(SignalLogSpec, req, r.dialect)
	precise.AddNotEmpty("uid")
	preciseQuery := precise.Query()
	rows, err := r.queryRows(ctx, SignalLogSpec, preciseQuery.SelectSQL, preciseQuery.Args...)
	if err != nil {
		return core.LookupResult{}, fmt.Errorf("signal lookup: %w", err)
	}
	if len(rows) > 0 {
		return core.LookupResult{Rows: rows}, nil
	}

	loose := NewBuilder(SignalLogSpec, req, r.dialect)
	loose.AddIn("signal", []string{"BUY", "SELL"})
	looseQuery := loose.Query()
	rows, err = r.queryRows(ctx, SignalLogSpec, looseQuery.SelectSQL, looseQuery.Args...)
	if err != nil {
		return core.LookupResult{}, fmt.Errorf("signal lookup fallback: %w", err)
	}
	return core.LookupResult{Rows: rows, UsedFallback: true}, nil
}

// Summarize runs the aggregate view over the identical filter predicate as
// the paginated read.
func (r *LogReader) Summarize(ctx context.Context, spec core.FilterSpec, req core.PageRequest) (core.LogSummary, error) {
	if r.db == nil {
		return core.LogSummary{}, nil
	}

	where, args := NewBuilder(spec, req, r.dialect).Where()

	cols := []string{"COUNT(*)"}
	if spec.Summary.SignalColumn != "" {
		signalCol := r.dialect.Quote(spec.Summary.SignalColumn)
		cols = append(cols,
			fmt.Sprintf("COALESCE(SUM(CASE WHEN %s = 'BUY' THEN 1 ELSE 0 END), 0)", signalCol),
			fmt.Sprintf("COALESCE(SUM(CASE WHEN %s = 'SELL' THEN 1 ELSE 0 END), 0)", signalCol))
	} else {
		cols = append(cols, "0", "0")
	}
	if spec.Summary.AvgColumn != "" {
		cols = append(cols, fmt.Sprintf("AVG(%s)", r.dialect.Quote(spec.Summary.AvgColumn)))
	} else {
		cols = append(cols, "NULL")
	}
	if spec.Summary.DistinctColumn != "" {
		cols = append(cols, fmt.Sprintf("COUNT(DISTINCT %s)", r.dialect.Quote(spec.Summary.DistinctColumn)))
	} else {
		cols = append(cols, "0")
	}

	query := "SELECT " + strings.Join(cols, ", ") + " FROM " + spec.Table + where

	var summary core.LogSummary
	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&summary.Total, &summary.BuyCount, &summary.SellCount, &avg, &summary.DistinctSymbols)
	if err != nil {
		if isMissingTable(err) && spec.Optional {
			return core.LogSummary{}, nil
		}
		return core.LogSummary{}, fmt.Errorf("summarize %s: %w", spec.Table, err)
	}
	if avg.Valid {
		summary.AvgValue = &avg.Float64
	}
	return summary, nil
}

// queryRows runs a data query and scans each row generically before
// promoting known columns and expanding the payload column.
func (r *LogReader) queryRows(ctx context.Context, spec core.FilterSpec, query string, args ...interface{}) ([]core.LogRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := []core.LogRow{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range columns {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		rowMap := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			val := values[i]
			if b, ok := val.([]byte); ok {
				rowMap[col] = string(b)
			} else {
				rowMap[col] = val
			}
		}

		row := core.PromoteRow(rowMap)
		if spec.PayloadColumn != "" {
			expandPayload(&row, spec.PayloadColumn)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// expandPayload parses the embedded JSON column and merges its scalar fields
// into the row's Extra bag. A malformed payload drops silently: one bad row
// must never abort an otherwise valid page.
func expandPayload(row *core.LogRow, column string) {
	raw, ok := row.Extra[column].(string)
	if !ok {
		return
	}
	delete(row.Extra, column)

	parsed, err := fastjson.Parse(raw)
	if err != nil {
		return
	}
	obj, err := parsed.Object()
	if err != nil {
		return
	}
	obj.Visit(func(key []byte, v *fastjson.Value) {
		name := string(key)
		if _, exists := row.Extra[name]; exists {
			return
		}
		switch v.Type() {
		case fastjson.TypeString:
			row.Extra[name] = string(v.GetStringBytes())
		case fastjson.TypeNumber:
			row.Extra[name] = v.GetFloat64()
		case fastjson.TypeTrue:
			row.Extra[name] = true
		case fastjson.TypeFalse:
			row.Extra[name] = false
		}
	})
}

// readViaFallback replays the logical request against the sibling deployment
// and reshapes its response; both unavailable means an empty page.
func (r *LogReader) readViaFallback(ctx context.Context, req core.PageRequest, path, rawQuery string) core.PageResult {
	if r.fallback == nil {
		return core.EmptyPage(req.Page, req.Limit)
	}
	body, ok := r.fallback.Fetch(ctx, path, rawQuery)
	if !ok {
		return core.EmptyPage(req.Page, req.Limit)
	}
	var page core.PageResult
	if err := json.Unmarshal(body, &page); err != nil {
		logger.Error.Printf("fallback response for %s not parseable: %v", path, err)
		return core.EmptyPage(req.Page, req.Limit)
	}
	if page.Rows == nil {
		page.Rows = []core.LogRow{}
	}
	return page
}

// isMissingTable recognizes relation-does-not-exist errors across the
// supported drivers.
func isMissingTable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "42P01"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1146
	}
	msg := err.Error()
	return strings.Contains(msg, "no such table") || strings.Contains(msg, "Invalid object name")
}
