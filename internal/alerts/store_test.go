package alerts

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "rulebooks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveAndGet(t *testing.T) {
	store := openTestStore(t)

	group, rules := GenerateGroup("Momentum", "blue", testParams())
	doc, err := json.Marshal(NewBook(rules, []Group{group}, "lime"))
	require.NoError(t, err)

	saved, err := store.Save("My Alerts", doc)
	require.NoError(t, err)
	assert.Len(t, saved.Rules, len(rules))

	loaded, err := store.Get("My Alerts")
	require.NoError(t, err)
	assert.Equal(t, "lime", loaded.MasterBlinkColor)
	assert.Len(t, loaded.Rules, len(rules))

	// lookup by slug works too
	_, err = store.Get("my-alerts")
	assert.NoError(t, err)
}

func TestStoreSaveOverwrites(t *testing.T) {
	store := openTestStore(t)

	first, err := json.Marshal(NewBook(nil, nil, "red"))
	require.NoError(t, err)
	second, err := json.Marshal(NewBook(nil, nil, "green"))
	require.NoError(t, err)

	_, err = store.Save("Book", first)
	require.NoError(t, err)
	_, err = store.Save("Book", second)
	require.NoError(t, err)

	loaded, err := store.Get("Book")
	require.NoError(t, err)
	assert.Equal(t, "green", loaded.MasterBlinkColor)

	books, err := store.List()
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestStoreSaveRejectsInvalidDocument(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Save("Broken", []byte("{nope"))
	assert.Error(t, err)
}

func TestStoreDelete(t *testing.T) {
	store := openTestStore(t)

	doc, err := json.Marshal(NewBook(nil, nil, ""))
	require.NoError(t, err)
	_, err = store.Save("Gone Soon", doc)
	require.NoError(t, err)

	require.NoError(t, store.Delete("Gone Soon"))
	_, err = store.Get("Gone Soon")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	// deleting a missing book is fine
	assert.NoError(t, store.Delete("never-existed"))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"My Alerts":        "my-alerts",
		"  Weird -- Name ": "weird-name",
		"UPPER_case!":      "uppercase",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}
