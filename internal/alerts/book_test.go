package alerts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookLegacyWithoutGroups(t *testing.T) {
	legacy := []byte(`{
		"type": "lab_single_trade_alert_rules",
		"version": 1,
		"rules": [
			{"id": "r1", "signalKey": "rsi", "interval": "1h", "row": "current", "type": "number", "operator": ">", "threshold": 70},
			{"id": "r2", "signalKey": "macd", "interval": "4h", "row": "prev1", "type": "boolean"}
		],
		"masterBlinkColor": "yellow"
	}`)

	book, err := ParseBook(legacy)
	require.NoError(t, err)

	require.Len(t, book.Groups, 1)
	assert.Equal(t, "Imported", book.Groups[0].Name)
	for _, r := range book.Rules {
		assert.Equal(t, book.Groups[0].ID, r.GroupID)
	}
	// the legacy version survives the repair
	assert.Equal(t, 1, book.Version)
	assert.Equal(t, "yellow", book.MasterBlinkColor)
}

func TestParseBookReattachesOrphanedRules(t *testing.T) {
	doc := []byte(`{
		"type": "lab_single_trade_alert_rules",
		"version": 2,
		"groups": [{"id": "g1", "name": "Momentum"}, {"id": "g2", "name": "Volume"}],
		"rules": [
			{"id": "r1", "groupId": "g2", "type": "number"},
			{"id": "r2", "groupId": "gone", "type": "number"}
		]
	}`)

	book, err := ParseBook(doc)
	require.NoError(t, err)

	assert.Equal(t, "g2", book.Rules[0].GroupID)
	assert.Equal(t, "g1", book.Rules[1].GroupID, "orphaned rules attach to the first group")
}

func TestParseBookRejectsForeignType(t *testing.T) {
	_, err := ParseBook([]byte(`{"type": "some_other_export", "rules": []}`))
	assert.Error(t, err)
}

func TestParseBookRejectsGarbage(t *testing.T) {
	_, err := ParseBook([]byte(`{not json`))
	assert.Error(t, err)
}

func TestBookRoundTripPreservesVersion(t *testing.T) {
	group, rules := GenerateGroup("Momentum", "blue", testParams())
	book := NewBook(rules, []Group{group}, "lime")

	data, err := json.Marshal(book)
	require.NoError(t, err)

	parsed, err := ParseBook(data)
	require.NoError(t, err)

	assert.Equal(t, BookVersion, parsed.Version)
	assert.Equal(t, "lime", parsed.MasterBlinkColor)
	assert.Len(t, parsed.Rules, len(rules))
	require.Len(t, parsed.Groups, 1)
	assert.Equal(t, group.ID, parsed.Groups[0].ID)
}

func TestNewBookDefaults(t *testing.T) {
	book := NewBook(nil, nil, "")
	assert.Equal(t, BookType, book.Type)
	assert.Equal(t, DefaultMasterColor, book.MasterBlinkColor)
	assert.NotNil(t, book.Rules)
	assert.NotNil(t, book.Groups)
	assert.NotEmpty(t, book.CreatedAt)
}
