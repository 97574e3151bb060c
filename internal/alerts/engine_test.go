package alerts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchCellFiltersByTriple(t *testing.T) {
	rules := []Rule{
		{ID: "a", SignalKey: "rsi", Interval: "1h", Row: RowCurrent, Type: TypeNumber, Operator: ">", Threshold: 50},
		{ID: "b", SignalKey: "rsi", Interval: "4h", Row: RowCurrent, Type: TypeNumber, Operator: ">", Threshold: 50},
		{ID: "c", SignalKey: "rsi", Interval: "1h", Row: RowCurrent, Type: TypeNumber, Operator: ">", Threshold: 90},
	}

	matched := MatchCell(rules, "rsi", "1h", RowCurrent, "61")
	require.Len(t, matched, 1)
	assert.Equal(t, "a", matched[0].ID)
}

func TestEffectiveColorPriority(t *testing.T) {
	groups := []Group{{ID: "g1", Color: "purple"}, {ID: "g2"}}

	// rule override wins
	assert.Equal(t, "cyan", EffectiveColor(Rule{Color: "cyan", GroupID: "g1"}, groups, "white"))
	// then the owning group's color
	assert.Equal(t, "purple", EffectiveColor(Rule{GroupID: "g1"}, groups, "white"))
	// then the master color
	assert.Equal(t, "white", EffectiveColor(Rule{GroupID: "g2"}, groups, "white"))
	// and the default when nothing is set
	assert.Equal(t, DefaultMasterColor, EffectiveColor(Rule{GroupID: "g2"}, groups, ""))
}

func TestRankSignalsByMatchCount(t *testing.T) {
	snap := Snapshot{
		"rsi":  {"1h": {RowCurrent: "80", RowPrev1: "75"}},
		"macd": {"1h": {RowCurrent: "10"}},
		"adx":  {"1h": {RowCurrent: "5"}},
	}
	rules := []Rule{
		{SignalKey: "rsi", Interval: "1h", Row: RowCurrent, Type: TypeNumber, Operator: ">", Threshold: 70},
		{SignalKey: "rsi", Interval: "1h", Row: RowPrev1, Type: TypeNumber, Operator: ">", Threshold: 70},
		{SignalKey: "macd", Interval: "1h", Row: RowCurrent, Type: TypeNumber, Operator: ">", Threshold: 5},
		{SignalKey: "adx", Interval: "1h", Row: RowCurrent, Type: TypeNumber, Operator: ">", Threshold: 50},
	}
	catalog := []string{"adx", "macd", "rsi", "obv"}

	ranked := RankSignals(rules, snap, catalog)
	assert.Equal(t, []string{"rsi", "macd", "adx", "obv"}, ranked)
}

func TestRankSignalsTiesKeepCatalogOrder(t *testing.T) {
	snap := Snapshot{}
	rules := []Rule{}
	catalog := []string{"ema", "rsi", "macd"}

	// no matches anywhere: ordering must be reproducible and unchanged
	assert.Equal(t, catalog, RankSignals(rules, snap, catalog))
}

func TestSnapshotCellMissing(t *testing.T) {
	snap := Snapshot{"rsi": {"1h": {RowCurrent: "42"}}}

	_, ok := snap.Cell("rsi", "4h", RowCurrent)
	assert.False(t, ok)
	_, ok = snap.Cell("macd", "1h", RowCurrent)
	assert.False(t, ok)

	v, ok := snap.Cell("rsi", "1h", RowCurrent)
	require.True(t, ok)
	assert.Equal(t, "42", v)
}
