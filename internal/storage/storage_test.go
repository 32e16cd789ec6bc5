package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "todo.db")
	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestDBGetMissing(t *testing.T) {
	db, _ := openTemp(t)

	_, err := db.Get("tasks")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestDBSetReplaces(t *testing.T) {
	db, _ := openTemp(t)

	require.NoError(t, db.Set("tasks", `[{"id":"1"}]`))
	require.NoError(t, db.Set("tasks", `[]`))
	require.NoError(t, db.Set("other", `x`))

	v, err := db.Get("tasks")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)

	v, err = db.Get("other")
	require.NoError(t, err)
	assert.Equal(t, `x`, v)
}

func TestDBPersistsAcrossOpen(t *testing.T) {
	db, path := openTemp(t)
	require.NoError(t, db.Set("tasks", `[1]`))
	require.NoError(t, db.Close())

	again, err := Open(path)
	require.NoError(t, err)
	defer again.Close()

	v, err := again.Get("tasks")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, v)
}

func TestMemory(t *testing.T) {
	var m Memory

	_, err := m.Get("tasks")
	assert.ErrorIs(t, err, ErrSlotNotFound)

	require.NoError(t, m.Set("tasks", "a"))
	require.NoError(t, m.Set("tasks", "b"))

	v, err := m.Get("tasks")
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "file:mem?mode=memory", sqliteDSN("file:mem?mode=memory"))

	dsn := sqliteDSN(filepath.Join(t.TempDir(), "x.db"))
	assert.Contains(t, dsn, "file://")
	assert.Contains(t, dsn, "mode=rwc")
}
