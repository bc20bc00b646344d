package database

import (
	flag "github.com/spf13/pflag"
)

const (
	// CfgDatabaseEngine defines the storage engine of the database.
	CfgDatabaseEngine = "database.engine"
	// CfgDatabaseDir defines the directory of the database.
	CfgDatabaseDir = "database.directory"
)

func init() {
	flag.String(CfgDatabaseEngine, string(EngineBadger), "storage engine of the database (mapdb, badger or pebble)")
	flag.String(CfgDatabaseDir, "assetdb", "path to the database folder")
}
