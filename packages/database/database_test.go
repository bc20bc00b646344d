package database

import (
	"testing"

	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, engine := range []Engine{EngineMapDB, EngineBadger, EnginePebble} {
		t.Run(string(engine), func(t *testing.T) {
			db, err := New(engine, t.TempDir())
			require.NoError(t, err)

			store := db.NewStore()
			require.NoError(t, store.Set([]byte("key"), []byte("value")))

			value, err := store.Get([]byte("key"))
			require.NoError(t, err)
			assert.Equal(t, []byte("value"), value)

			assert.NoError(t, db.Close())
		})
	}
}

func TestNew_UnknownEngine(t *testing.T) {
	_, err := New("leveldb", t.TempDir())
	assert.ErrorIs(t, err, ErrUnknownEngine)
}

func TestDefaultEngine(t *testing.T) {
	engineFlag := flag.CommandLine.Lookup(CfgDatabaseEngine)
	require.NotNil(t, engineFlag)
	assert.Equal(t, string(EngineBadger), engineFlag.DefValue)
}

func TestBadgerDB_Reopen(t *testing.T) {
	dir := t.TempDir()

	db, err := NewDB(dir)
	require.NoError(t, err)
	require.NoError(t, db.NewStore().Set([]byte("key"), []byte("value")))
	assert.True(t, db.RequiresGC())
	assert.NoError(t, db.GC())
	require.NoError(t, db.Close())

	db, err = NewDB(dir)
	require.NoError(t, err)
	value, err := db.NewStore().Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)
	require.NoError(t, db.Close())
}

func TestMemDB(t *testing.T) {
	db, err := NewMemDB()
	require.NoError(t, err)
	assert.False(t, db.RequiresGC())
	assert.NoError(t, db.GC())
	assert.Same(t, db.NewStore(), db.NewStore())
}

func TestHealthTracker(t *testing.T) {
	db, err := NewMemDB()
	require.NoError(t, err)

	healthTracker, err := NewHealthTracker(db.NewStore())
	require.NoError(t, err)

	unhealthy, err := healthTracker.IsUnhealthy()
	require.NoError(t, err)
	assert.False(t, unhealthy)

	require.NoError(t, healthTracker.MarkUnhealthy())
	unhealthy, err = healthTracker.IsUnhealthy()
	require.NoError(t, err)
	assert.True(t, unhealthy)

	require.NoError(t, healthTracker.MarkHealthy())
	require.NoError(t, healthTracker.MarkHealthy())
	unhealthy, err = healthTracker.IsUnhealthy()
	require.NoError(t, err)
	assert.False(t, unhealthy)
}

func TestHealthTracker_CheckVersion(t *testing.T) {
	db, err := NewMemDB()
	require.NoError(t, err)

	healthTracker, err := NewHealthTracker(db.NewStore())
	require.NoError(t, err)

	require.NoError(t, healthTracker.CheckVersion())
	require.NoError(t, healthTracker.CheckVersion())

	require.NoError(t, healthTracker.store.Set(dbVersionKey, []byte{DBVersion + 1}))
	assert.ErrorIs(t, healthTracker.CheckVersion(), ErrDBVersionIncompatible)
}
