package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"

	"github.com/crosschain-labs/cvmroute/packages/asset"
	"github.com/crosschain-labs/cvmroute/packages/assetregistry"
	"github.com/crosschain-labs/cvmroute/packages/cvm"
	"github.com/crosschain-labs/cvmroute/packages/database"
	"github.com/crosschain-labs/cvmroute/packages/transport"
)

// region registry /////////////////////////////////////////////////////////////////////////////////////////////////////

// openRegistry opens the configured database and returns a Registry on top of it. The returned function shuts down
// the registry and marks the database as healthy again.
func openRegistry() (registry *assetregistry.Registry, shutdown func(), err error) {
	db, err := database.New(Parameters.Engine, Parameters.Directory)
	if err != nil {
		return nil, nil, errors.Errorf("failed to open database: %w", err)
	}
	store := db.NewStore()

	healthTracker, err := database.NewHealthTracker(store)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if err = healthTracker.CheckVersion(); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if unhealthy, healthErr := healthTracker.IsUnhealthy(); healthErr != nil {
		_ = db.Close()
		return nil, nil, healthErr
	} else if unhealthy {
		log.Warnf("database in %s was not shut down properly", Parameters.Directory)
	}
	if err = healthTracker.MarkUnhealthy(); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	if registry, err = assetregistry.New(store, assetregistry.WithLogger(log)); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return registry, func() {
		registry.Shutdown()

		if healthErr := healthTracker.MarkHealthy(); healthErr != nil {
			log.Errorf("failed to mark database as healthy: %s", healthErr)
		}
		if db.RequiresGC() {
			if gcErr := db.GC(); gcErr != nil {
				log.Warnf("garbage collection of the database failed: %s", gcErr)
			}
		}
		if closeErr := db.Close(); closeErr != nil {
			log.Errorf("failed to close database: %s", closeErr)
		}
	}, nil
}

// loadAssetItems decodes a JSON list of AssetItems.
func loadAssetItems(reader io.Reader) (items []asset.AssetItem, err error) {
	if err = json.NewDecoder(reader).Decode(&items); err != nil {
		return nil, errors.Errorf("failed to decode asset items: %w", err)
	}

	return items, nil
}

// registerAssets stores the given items and returns the networks they belong to in ascending order.
func registerAssets(registry *assetregistry.Registry, items []asset.AssetItem) (networkIDs []cvm.NetworkID, err error) {
	seenNetworks := make(map[cvm.NetworkID]bool)
	for _, item := range items {
		if err = registry.StoreAsset(item); err != nil {
			return nil, errors.Errorf("failed to register %s: %w", item.AssetID, err)
		}

		if !seenNetworks[item.NetworkID] {
			seenNetworks[item.NetworkID] = true
			networkIDs = append(networkIDs, item.NetworkID)
		}
	}

	sort.Slice(networkIDs, func(i, j int) bool {
		return networkIDs[i] < networkIDs[j]
	})

	return networkIDs, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region output ///////////////////////////////////////////////////////////////////////////////////////////////////////

// describeReference returns the PROPERTY / VALUE rows of an asset reference.
func describeReference(reference asset.AssetReference) [][2]string {
	return [][2]string{
		{"Variant", reference.VariantTag().String()},
		{"Denom", reference.Denom()},
		{"Key", hex.EncodeToString(reference.Key())},
	}
}

func printProperties(writer io.Writer, rows [][2]string) {
	w := new(tabwriter.Writer)
	w.Init(writer, 0, 8, 2, '\t', 0)

	_, _ = fmt.Fprintf(w, "%s\t%s\n", "PROPERTY", "VALUE")
	_, _ = fmt.Fprintf(w, "%s\t%s\n", "--------", "-----")
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}

	_ = w.Flush()
}

// printAssets prints the assets of the given network in storage key order.
func printAssets(writer io.Writer, registry *assetregistry.Registry, networkID cvm.NetworkID) (err error) {
	w := new(tabwriter.Writer)
	w.Init(writer, 0, 8, 2, '\t', 0)

	_, _ = fmt.Fprintf(w, "Assets on %s\n\n", networkID)
	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", "ASSET ID", "VARIANT", "DENOM", "BRIDGED")
	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", "--------", "-------", "-----", "-------")

	empty := true
	if err = registry.ForEachAsset(networkID, func(item asset.AssetItem) bool {
		empty = false

		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", item.AssetID, item.Local.VariantTag(), item.Denom(), bridgedLocation(item))

		return true
	}); err != nil {
		return err
	}

	if empty {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", "<EMPTY>", "<EMPTY>", "<EMPTY>", "<EMPTY>")
	}

	return w.Flush()
}

// bridgedLocation returns a single line description of where a bridged asset originates from.
func bridgedLocation(item asset.AssetItem) string {
	if !item.IsBridged() {
		return "-"
	}

	switch location := item.Bridged.LocationOnNetwork.(type) {
	case transport.IBCICS20:
		return location.Type().String() + ":" + location.Denom.String()
	default:
		return location.Type().String()
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// trimKey removes an optional 0x prefix and surrounding whitespace from a hex encoded key.
func trimKey(key string) string {
	return strings.TrimPrefix(strings.TrimSpace(key), "0x")
}
