package database

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/iotaledger/hive.go/kvstore"
	pebblestore "github.com/iotaledger/hive.go/kvstore/pebble"
)

type pebbleDB struct {
	*pebble.DB
}

// NewPebbleDB returns a new persisting DB object backed by pebble.
func NewPebbleDB(dirname string) (DB, error) {
	if err := createDir(dirname); err != nil {
		return nil, errors.Errorf("could not create DB directory: %w", err)
	}

	db, err := pebble.Open(dirname, &pebble.Options{})
	if err != nil {
		return nil, errors.Errorf("could not open DB: %w", err)
	}

	return &pebbleDB{DB: db}, nil
}

func (db *pebbleDB) NewStore() kvstore.KVStore {
	return pebblestore.New(db.DB)
}

// Close closes a DB and flushes pending writes.
func (db *pebbleDB) Close() error {
	if err := db.DB.Flush(); err != nil {
		return errors.Errorf("could not flush DB: %w", err)
	}

	return db.DB.Close()
}

func (db *pebbleDB) RequiresGC() bool {
	return false
}

func (db *pebbleDB) GC() error {
	return nil
}
