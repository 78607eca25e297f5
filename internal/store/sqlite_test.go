package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func TestSQLiteKV(t *testing.T) {
	kv := NewSQLiteKV(openTestDB(t))

	t.Run("missing key", func(t *testing.T) {
		_, ok, err := kv.Get("missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, kv.Set("a", "one"))
		v, ok, err := kv.Get("a")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "one", v)
	})

	t.Run("upsert overwrites", func(t *testing.T) {
		require.NoError(t, kv.Set("b", "first"))
		require.NoError(t, kv.Set("b", "second"))
		v, ok, err := kv.Get("b")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "second", v)
	})

	t.Run("empty value is present", func(t *testing.T) {
		require.NoError(t, kv.Set("c", ""))
		v, ok, err := kv.Get("c")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, v)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, kv.Set("d", "gone soon"))
		require.NoError(t, kv.Delete("d"))
		_, ok, err := kv.Get("d")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, kv.Delete("d"), "deleting a missing key is not an error")
	})
}

func TestSQLiteKVBacksStore(t *testing.T) {
	kv := NewSQLiteKV(openTestDB(t))
	s := New(kv)

	p := DefaultPreferences()
	p.HasSeenInstructions = true
	require.True(t, s.SavePrefs(p))
	assert.Equal(t, p, s.LoadPrefs())
}
