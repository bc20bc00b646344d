package database

import (
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v2"
	"github.com/dgraph-io/badger/v2/options"
	"github.com/iotaledger/hive.go/kvstore"
	badgerstore "github.com/iotaledger/hive.go/kvstore/badger"
)

const (
	valueLogGCDiscardRatio = 0.1

	// valueLogFileSize keeps the value log small, registry values are a few hundred bytes at most.
	valueLogFileSize = 16 << 20
)

type badgerDB struct {
	*badger.DB
}

// NewDB returns a new persisting DB object backed by badger.
func NewDB(dirname string) (DB, error) {
	if err := createDir(dirname); err != nil {
		return nil, errors.Errorf("could not create DB directory: %w", err)
	}

	// registry writes are rare and come from short lived processes, so every write is synced
	opts := badger.DefaultOptions(dirname).
		WithLogger(nil).
		WithSyncWrites(true).
		WithNumVersionsToKeep(1).
		WithCompression(options.None).
		WithValueLogFileSize(valueLogFileSize).
		WithTruncate(runtime.GOOS == "windows")

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Errorf("could not open DB in %s: %w", dirname, err)
	}

	return &badgerDB{DB: db}, nil
}

func (db *badgerDB) NewStore() kvstore.KVStore {
	return badgerstore.New(db.DB)
}

// Close closes the badger instance.
func (db *badgerDB) Close() error {
	return db.DB.Close()
}

func (db *badgerDB) RequiresGC() bool {
	return true
}

// GC rewrites the value log. A value log without anything to discard is not an error.
func (db *badgerDB) GC() error {
	if err := db.RunValueLogGC(valueLogGCDiscardRatio); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		return errors.Errorf("value log GC failed: %w", err)
	}

	// release the memory that was used by the rewrite
	runtime.GC()

	return nil
}
