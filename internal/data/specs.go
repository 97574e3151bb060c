package data

import "github.com/Loveleet/live-cloud-lab-live-sub001/internal/core"

// Static filter contracts for the two log tables. These are the only place
// column names for generated SQL come from.

// SignalLogSpec covers the signal-processing log written by the trading
// pipeline. The table is part of the base schema, so a query failure against
// it is a real error, not an empty page.
var SignalLogSpec = core.FilterSpec{
	Table: "signal_processing_log",
	Filters: map[string]core.ColumnFilter{
		"uid":      {Column: "uid", Kind: core.CompareExact},
		"uids":     {Column: "uid", Kind: core.CompareIn},
		"symbol":   {Column: "symbol", Kind: core.CompareExact},
		"symbols":  {Column: "symbol", Kind: core.CompareIn},
		"interval": {Column: "interval", Kind: core.CompareExact},
		"signal":   {Column: "signal", Kind: core.CompareExact},
		"search":   {Column: "uid", Kind: core.CompareLikeContains},
		"from":     {Column: "created_at", Kind: core.CompareRangeGte},
		"to":       {Column: "created_at", Kind: core.CompareRangeLte},
	},
	SortKeys: map[string]string{
		"created_at": "created_at",
		"symbol":     "symbol",
		"interval":   "interval",
		"signal":     "signal",
		"id":         "id",
	},
	DefaultSort:   core.Sort{Column: "created_at", Direction: "DESC"},
	PayloadColumn: "payload",
	Summary: core.SummarySpec{
		SignalColumn:   "signal",
		AvgColumn:      "price",
		DistinctColumn: "symbol",
	},
}

// BotEventLogSpec covers the bot event log. The table is created lazily by
// the trading bots, so it may not exist on a fresh deployment: reads treat a
// missing relation as zero rows.
var BotEventLogSpec = core.FilterSpec{
	Table: "bot_event_logs",
	Filters: map[string]core.ColumnFilter{
		"uid":        {Column: "uid", Kind: core.CompareExact},
		"uids":       {Column: "uid", Kind: core.CompareIn},
		"symbol":     {Column: "symbol", Kind: core.CompareExact},
		"symbols":    {Column: "symbol", Kind: core.CompareIn},
		"event_type": {Column: "event_type", Kind: core.CompareExact},
		"severity":   {Column: "severity", Kind: core.CompareExact},
		"from":       {Column: "created_at", Kind: core.CompareRangeGte},
		"to":         {Column: "created_at", Kind: core.CompareRangeLte},
	},
	SortKeys: map[string]string{
		"created_at": "created_at",
		"symbol":     "symbol",
		"event_type": "event_type",
		"id":         "id",
	},
	DefaultSort:   core.Sort{Column: "created_at", Direction: "DESC"},
	PayloadColumn: "details",
	Optional:      true,
	Summary: core.SummarySpec{
		DistinctColumn: "symbol",
	},
}
