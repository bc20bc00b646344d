package database

const (
	// PrefixAssetRegistry defines the storage prefix of the asset registry.
	PrefixAssetRegistry byte = iota
	// PrefixHealth defines the storage prefix of the health flags.
	PrefixHealth
)
