package database

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/kvstore"
)

// Engine is the name of a storage engine that can back a DB.
type Engine string

const (
	// EngineMapDB keeps all data in memory.
	EngineMapDB Engine = "mapdb"

	// EngineBadger persists data with badger.
	EngineBadger Engine = "badger"

	// EnginePebble persists data with pebble.
	EnginePebble Engine = "pebble"
)

// ErrUnknownEngine is returned when a DB is requested for an engine that is not supported.
var ErrUnknownEngine = errors.New("unknown database engine")

// DB represents a database abstraction.
type DB interface {
	// NewStore creates a new KVStore backed by the database.
	NewStore() kvstore.KVStore
	// Close closes a DB.
	Close() error
	// RequiresGC returns whether the database requires a call of GC() to clean deleted items.
	RequiresGC() bool
	// GC runs the garbage collection to clean deleted database items.
	GC() error
}

// New opens a DB for the given engine. The directory is ignored by in-memory engines.
func New(engine Engine, dirname string) (db DB, err error) {
	switch engine {
	case EngineMapDB:
		return NewMemDB()
	case EngineBadger:
		return NewDB(dirname)
	case EnginePebble:
		return NewPebbleDB(dirname)
	default:
		return nil, errors.Errorf("%q: %w", engine, ErrUnknownEngine)
	}
}

// createDir makes sure that the directory of a persisting engine exists.
func createDir(dirname string) error {
	return os.MkdirAll(dirname, 0o700)
}
