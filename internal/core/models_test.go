package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoteRow(t *testing.T) {
	row := PromoteRow(map[string]interface{}{
		"id":         int64(42),
		"uid":        "abc-1",
		"symbol":     []byte("BTCUSDT"),
		"interval":   "1h",
		"signal":     "BUY",
		"created_at": "2024-03-01 10:30:00",
		"price":      61250.5,
		"note":       nil,
	})

	assert.Equal(t, int64(42), row.ID)
	assert.Equal(t, "abc-1", row.UID)
	assert.Equal(t, "BTCUSDT", row.Symbol)
	assert.Equal(t, "BUY", row.Signal)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), row.CreatedAt)
	assert.Equal(t, 61250.5, row.Extra["price"])
	assert.NotContains(t, row.Extra, "note", "null columns stay out of the bag")
}

func TestPromoteRowKeepsUnparseableTimestamp(t *testing.T) {
	row := PromoteRow(map[string]interface{}{"created_at": "yesterday-ish"})
	assert.True(t, row.CreatedAt.IsZero())
	assert.Equal(t, "yesterday-ish", row.Extra["created_at"])
}

func TestLogRowJSONRoundTrip(t *testing.T) {
	row := LogRow{
		ID:        7,
		UID:       "abc",
		Symbol:    "ETHUSDT",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Extra:     map[string]interface{}{"rsi": 71.2},
	}

	data, err := json.Marshal(row)
	require.NoError(t, err)

	var flat map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, 71.2, flat["rsi"], "extras sit beside promoted fields")
	assert.Equal(t, "2024-03-01T12:00:00Z", flat["created_at"])
	assert.NotContains(t, flat, "signal", "empty promoted fields are omitted")

	var back LogRow
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, row.ID, back.ID)
	assert.Equal(t, row.UID, back.UID)
	assert.Equal(t, row.CreatedAt, back.CreatedAt)
	assert.Equal(t, 71.2, back.Extra["rsi"])
}

func TestEmptyPage(t *testing.T) {
	page := EmptyPage(3, 25)
	assert.NotNil(t, page.Rows)
	assert.Empty(t, page.Rows)
	assert.Equal(t, 3, page.Pagination.Page)
	assert.Equal(t, int64(0), page.Pagination.Total)
}
