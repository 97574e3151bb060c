package alerts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() GroupParams {
	return GroupParams{
		Signals:   []string{"rsi", "macd", "ema_cross"},
		Intervals: []string{"1h", "4h"},
		Rows:      CandleRows,
		Condition: Condition{Type: TypeNumber, Operator: ">=", Threshold: 70},
	}
}

func TestGenerateGroupCrossProduct(t *testing.T) {
	group, rules := GenerateGroup("Overbought", "red", testParams())

	require.Len(t, rules, 18) // 3 signals x 2 intervals x 3 rows
	assert.NotEmpty(t, group.ID)

	seen := make(map[string]bool)
	for _, r := range rules {
		assert.Equal(t, group.ID, r.GroupID)
		assert.Equal(t, TypeNumber, r.Type)
		assert.Equal(t, ">=", r.Operator)
		assert.Equal(t, 70.0, r.Threshold)
		assert.False(t, seen[r.ID], "rule ids must be unique")
		seen[r.ID] = true
	}
}

func TestRegenerateGroupReplacesMembers(t *testing.T) {
	group, rules := GenerateGroup("Overbought", "red", testParams())
	foreign := Rule{ID: "other", SignalKey: "adx", GroupID: "other-group"}
	all := append(rules, foreign)

	edited := testParams()
	edited.Intervals = []string{"15m"}
	edited.Condition.Threshold = 80

	updated, all := RegenerateGroup(group, edited, all)

	assert.Equal(t, group.ID, updated.ID)
	assert.Equal(t, 80.0, updated.Params.Condition.Threshold)

	var members, others int
	for _, r := range all {
		if r.GroupID == group.ID {
			members++
			assert.Equal(t, "15m", r.Interval)
			assert.Equal(t, 80.0, r.Threshold)
		} else {
			others++
		}
	}
	assert.Equal(t, 9, members) // 3 signals x 1 interval x 3 rows, old 18 gone
	assert.Equal(t, 1, others)
}

func TestRemoveGroupDeletesMembers(t *testing.T) {
	group, rules := GenerateGroup("Overbought", "red", testParams())
	foreign := Rule{ID: "other", GroupID: "other-group"}
	all := append(rules, foreign)

	remaining := RemoveGroup(group.ID, all)
	require.Len(t, remaining, 1)
	assert.Equal(t, "other", remaining[0].ID)
}
