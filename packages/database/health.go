package database

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/kvstore"
)

// DBVersion defines the version of the stored key layout. Every breaking change of the persisted keys or values
// requires this version to be increased.
const DBVersion byte = 1

// ErrDBVersionIncompatible is returned when the database was written with a different key layout.
var ErrDBVersionIncompatible = errors.New("database version is not compatible. please delete your database folder and restart")

var (
	healthKey    = []byte("db_health")
	dbVersionKey = []byte("db_version")
)

// HealthTracker keeps track of whether the database was shut down properly.
type HealthTracker struct {
	store kvstore.KVStore
}

// NewHealthTracker returns a HealthTracker that keeps its flags in a dedicated realm of the given store.
func NewHealthTracker(store kvstore.KVStore) (healthTracker *HealthTracker, err error) {
	healthStore, err := store.WithRealm(kvstore.Realm{PrefixHealth})
	if err != nil {
		return nil, errors.Errorf("could not create health store: %w", err)
	}

	return &HealthTracker{store: healthStore}, nil
}

// MarkUnhealthy marks the database as not healthy, meaning that it wasn't shut down properly.
func (h *HealthTracker) MarkUnhealthy() error {
	if err := h.store.Set(healthKey, []byte{}); err != nil {
		return errors.Errorf("failed to set database health state: %w", err)
	}

	return nil
}

// MarkHealthy marks the database as healthy, respectively correctly closed.
func (h *HealthTracker) MarkHealthy() error {
	if err := h.store.Delete(healthKey); err != nil && !errors.Is(err, kvstore.ErrKeyNotFound) {
		return errors.Errorf("failed to set database health state: %w", err)
	}

	return nil
}

// IsUnhealthy tells whether the database is unhealthy, meaning not shut down properly.
func (h *HealthTracker) IsUnhealthy() (unhealthy bool, err error) {
	if unhealthy, err = h.store.Has(healthKey); err != nil {
		return false, errors.Errorf("failed to read database health state: %w", err)
	}

	return unhealthy, nil
}

// CheckVersion checks whether the database is compatible with the current key layout. A new database gets the
// current version persisted.
func (h *HealthTracker) CheckVersion() error {
	version, err := h.store.Get(dbVersionKey)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		if err = h.store.Set(dbVersionKey, []byte{DBVersion}); err != nil {
			return errors.Errorf("unable to persist db version number: %w", err)
		}

		return nil
	}
	if err != nil {
		return errors.Errorf("failed to read db version: %w", err)
	}

	if len(version) != 1 || version[0] != DBVersion {
		return errors.Errorf("supported version: %d, version of database: %v: %w", DBVersion, version, ErrDBVersionIncompatible)
	}

	return nil
}
