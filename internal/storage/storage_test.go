package storage_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhours/internal/storage"
)

func openTestDB(t *testing.T) (*storage.Database, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "data.db")
	db, err := storage.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, path
}

func TestLoadMissingNamespace(t *testing.T) {
	db, _ := openTestDB(t)

	value, ok, err := db.Load("workTimeData")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestSaveAndLoad(t *testing.T) {
	db, _ := openTestDB(t)

	require.NoError(t, db.Save("tracker_darkMode", "true"))
	require.NoError(t, db.Save("tracker_darkMode", "false"))

	value, ok, err := db.Load("tracker_darkMode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", value)
}

func TestValuesSurviveReopen(t *testing.T) {
	db, path := openTestDB(t)
	require.NoError(t, db.Save("workTimeData", `{"2024-01-02":{"start":"08:00","end":"17:00"}}`))
	require.NoError(t, db.Close())

	// Migrations are already applied; reopening must not fail.
	reopened, err := storage.New(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Load("workTimeData")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, value, "2024-01-02")
}

func TestNamespaces(t *testing.T) {
	db, _ := openTestDB(t)
	require.NoError(t, db.Save("a", "1"))
	require.NoError(t, db.Save("b", "2"))

	names, err := db.Namespaces()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, names)
}

func TestMemory(t *testing.T) {
	var kv storage.KV = storage.NewMemory()

	_, ok, err := kv.Load("x")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Save("x", "y"))
	v, ok, _ := kv.Load("x")
	assert.True(t, ok)
	assert.Equal(t, "y", v)
}

func TestMemorySaveError(t *testing.T) {
	m := storage.NewMemory()
	m.Err = errors.New("disk full")
	assert.EqualError(t, m.Save("x", "y"), "disk full")
}
