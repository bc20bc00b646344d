package assetregistry

import (
	"bytes"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/logger"
	"go.uber.org/zap"

	"github.com/crosschain-labs/cvmroute/packages/asset"
	"github.com/crosschain-labs/cvmroute/packages/cvm"
	"github.com/crosschain-labs/cvmroute/packages/database"
)

var (
	// ErrAssetNotFound is returned when no AssetItem is registered for the requested key.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrNetworkAssetNotFound is returned when no NetworkAssetItem is registered for the requested key.
	ErrNetworkAssetNotFound = errors.New("network asset not found")

	// ErrDuplicateReference is returned when a reference is already bound to a different asset on the same network.
	ErrDuplicateReference = errors.New("asset reference is already registered for a different asset")
)

// region Registry /////////////////////////////////////////////////////////////////////////////////////////////////////

// Registry is an index of AssetItems and NetworkAssetItems on top of an ordered KVStore.
//
// Assets are stored under NetworkID ‖ AssetReference key, so that all assets of a network and all references of one
// variant form contiguous key ranges.
type Registry struct {
	store kvstore.KVStore
	log   *logger.Logger

	// mutex serializes the read-check-write sequences of the mutating methods.
	mutex sync.Mutex
}

// New returns a Registry that persists its data in a dedicated realm of the given store.
func New(store kvstore.KVStore, opts ...Option) (registry *Registry, err error) {
	options := newOptions(opts...)

	registryStore, err := store.WithRealm(kvstore.Realm{database.PrefixAssetRegistry})
	if err != nil {
		return nil, errors.Errorf("could not create specialized store: %w", err)
	}

	return &Registry{
		store: registryStore,
		log:   options.logger,
	}, nil
}

// StoreAsset registers the given AssetItem. Storing an item for an (AssetID, NetworkID) pair that is already known
// replaces its previous reference.
func (r *Registry) StoreAsset(item asset.AssetItem) (err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	referenceKey := assetByReferenceKey(item.NetworkID, item.Local)
	if existing, getErr := r.assetByKey(referenceKey); getErr == nil {
		if existing.AssetID != item.AssetID {
			return errors.Errorf("%s on %s is bound to %s: %w", item.Local, item.NetworkID, existing.AssetID, ErrDuplicateReference)
		}
	} else if !errors.Is(getErr, ErrAssetNotFound) {
		return getErr
	}

	batch, err := r.store.Batched()
	if err != nil {
		return errors.Errorf("failed to create batch: %w", err)
	}

	previousReferenceKey, err := r.store.Get(assetByIDKey(item.AssetID, item.NetworkID))
	switch {
	case err == nil:
		if !bytes.Equal(previousReferenceKey, item.Local.Key()) {
			if err = batch.Delete(byteutils.ConcatBytes([]byte{PrefixAssetsByReference}, item.NetworkID.Bytes(), previousReferenceKey)); err != nil {
				batch.Cancel()
				return errors.Errorf("failed to delete previous reference of %s: %w", item.AssetID, err)
			}
			r.log.Debugf("replacing reference of %s on %s", item.AssetID, item.NetworkID)
		}
	case !errors.Is(err, kvstore.ErrKeyNotFound):
		batch.Cancel()
		return errors.Errorf("failed to load reference of %s on %s: %w", item.AssetID, item.NetworkID, err)
	}

	if err = batch.Set(referenceKey, item.Bytes()); err != nil {
		batch.Cancel()
		return errors.Errorf("failed to store %s: %w", item.Local, err)
	}
	if err = batch.Set(assetByIDKey(item.AssetID, item.NetworkID), item.Local.Key()); err != nil {
		batch.Cancel()
		return errors.Errorf("failed to store index of %s: %w", item.AssetID, err)
	}
	if err = batch.Commit(); err != nil {
		return errors.Errorf("failed to commit %s: %w", item.AssetID, err)
	}

	r.log.Debugf("stored %s as %s on %s", item.AssetID, item.Denom(), item.NetworkID)

	return nil
}

// AssetByID returns the AssetItem of the given asset on the given network.
func (r *Registry) AssetByID(assetID cvm.AssetID, networkID cvm.NetworkID) (item asset.AssetItem, err error) {
	referenceKey, err := r.store.Get(assetByIDKey(assetID, networkID))
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return asset.AssetItem{}, errors.Errorf("%s on %s: %w", assetID, networkID, ErrAssetNotFound)
		}

		return asset.AssetItem{}, errors.Errorf("failed to load reference of %s on %s: %w", assetID, networkID, err)
	}

	return r.assetByKey(byteutils.ConcatBytes([]byte{PrefixAssetsByReference}, networkID.Bytes(), referenceKey))
}

// AssetByReference returns the AssetItem that is represented by the given reference on the given network.
func (r *Registry) AssetByReference(networkID cvm.NetworkID, reference asset.AssetReference) (item asset.AssetItem, err error) {
	return r.assetByKey(assetByReferenceKey(networkID, reference))
}

// AssetByDenom returns the AssetItem whose local representation has the given denom on the given network.
func (r *Registry) AssetByDenom(networkID cvm.NetworkID, denom string) (item asset.AssetItem, err error) {
	reference, err := asset.ReferenceFromDenom(denom)
	if err != nil {
		return asset.AssetItem{}, errors.Errorf("failed to parse denom %q: %w", denom, err)
	}

	return r.AssetByReference(networkID, reference)
}

// DeleteAsset removes the given asset from the given network and returns true if it existed.
func (r *Registry) DeleteAsset(assetID cvm.AssetID, networkID cvm.NetworkID) (deleted bool, err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	referenceKey, err := r.store.Get(assetByIDKey(assetID, networkID))
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return false, nil
		}

		return false, errors.Errorf("failed to load reference of %s on %s: %w", assetID, networkID, err)
	}

	batch, err := r.store.Batched()
	if err != nil {
		return false, errors.Errorf("failed to create batch: %w", err)
	}
	if err = batch.Delete(byteutils.ConcatBytes([]byte{PrefixAssetsByReference}, networkID.Bytes(), referenceKey)); err != nil {
		batch.Cancel()
		return false, errors.Errorf("failed to delete %s: %w", assetID, err)
	}
	if err = batch.Delete(assetByIDKey(assetID, networkID)); err != nil {
		batch.Cancel()
		return false, errors.Errorf("failed to delete index of %s: %w", assetID, err)
	}
	if err = batch.Commit(); err != nil {
		return false, errors.Errorf("failed to commit deletion of %s: %w", assetID, err)
	}

	r.log.Debugf("deleted %s from %s", assetID, networkID)

	return true, nil
}

// ForEachAsset calls the consumer for every asset of the given network in key order (all Native references first,
// then all CW20 references, each ordered by their payload) and aborts the iteration if the consumer returns false.
func (r *Registry) ForEachAsset(networkID cvm.NetworkID, consumer func(item asset.AssetItem) bool) (err error) {
	return r.forEachAsset(byteutils.ConcatBytes([]byte{PrefixAssetsByReference}, networkID.Bytes()), consumer)
}

// ForEachAssetOfVariant calls the consumer for every asset of the given network whose reference has the given
// variant, in key order.
func (r *Registry) ForEachAssetOfVariant(networkID cvm.NetworkID, tag asset.VariantTag, consumer func(item asset.AssetItem) bool) (err error) {
	return r.forEachAsset(byteutils.ConcatBytes([]byte{PrefixAssetsByReference}, networkID.Bytes(), tag.Prefix()), consumer)
}

// StoreNetworkAsset registers the identifier of an asset on a destination network.
func (r *Registry) StoreNetworkAsset(item asset.NetworkAssetItem) (err error) {
	if err = r.store.Set(networkAssetKey(item.FromAssetID, item.ToNetworkID), item.Bytes()); err != nil {
		return errors.Errorf("failed to store %s: %w", item, err)
	}

	r.log.Debugf("stored mapping of %s to %s on %s", item.FromAssetID, item.ToAssetID, item.ToNetworkID)

	return nil
}

// NetworkAsset returns the identifier mapping of the given asset to the given destination network.
func (r *Registry) NetworkAsset(fromAssetID cvm.AssetID, toNetworkID cvm.NetworkID) (item asset.NetworkAssetItem, err error) {
	itemBytes, err := r.store.Get(networkAssetKey(fromAssetID, toNetworkID))
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return asset.NetworkAssetItem{}, errors.Errorf("%s to %s: %w", fromAssetID, toNetworkID, ErrNetworkAssetNotFound)
		}

		return asset.NetworkAssetItem{}, errors.Errorf("failed to load mapping of %s to %s: %w", fromAssetID, toNetworkID, err)
	}

	if item, _, err = asset.NetworkAssetItemFromBytes(itemBytes); err != nil {
		return asset.NetworkAssetItem{}, errors.Errorf("failed to parse mapping of %s to %s: %w", fromAssetID, toNetworkID, err)
	}

	return item, nil
}

// ForEachNetworkAsset calls the consumer for every destination network mapping of the given asset, ordered by the
// destination NetworkID.
func (r *Registry) ForEachNetworkAsset(fromAssetID cvm.AssetID, consumer func(item asset.NetworkAssetItem) bool) (err error) {
	var decodeErr error
	if err = r.iterate(byteutils.ConcatBytes([]byte{PrefixNetworkAssets}, fromAssetID.Bytes()), func(value []byte) bool {
		item, _, itemErr := asset.NetworkAssetItemFromBytes(value)
		if itemErr != nil {
			decodeErr = itemErr
			return false
		}

		return consumer(item)
	}); err != nil {
		return err
	}

	return decodeErr
}

// Shutdown flushes the underlying store.
func (r *Registry) Shutdown() {
	if err := r.store.Flush(); err != nil {
		r.log.Errorf("failed to flush asset registry: %s", err)
	}
}

func (r *Registry) assetByKey(key []byte) (item asset.AssetItem, err error) {
	itemBytes, err := r.store.Get(key)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return asset.AssetItem{}, errors.Errorf("key %x: %w", key, ErrAssetNotFound)
		}

		return asset.AssetItem{}, errors.Errorf("failed to load asset: %w", err)
	}

	if item, _, err = asset.AssetItemFromBytes(itemBytes); err != nil {
		return asset.AssetItem{}, errors.Errorf("failed to parse asset with key %x: %w", key, err)
	}

	return item, nil
}

func (r *Registry) forEachAsset(prefix []byte, consumer func(item asset.AssetItem) bool) (err error) {
	var decodeErr error
	if err = r.iterate(prefix, func(value []byte) bool {
		item, _, itemErr := asset.AssetItemFromBytes(value)
		if itemErr != nil {
			decodeErr = itemErr
			return false
		}

		return consumer(item)
	}); err != nil {
		return err
	}

	return decodeErr
}

// iterate walks all entries with the given prefix in ascending key order.
func (r *Registry) iterate(prefix []byte, consumer func(value []byte) bool) (err error) {
	if err = r.store.Iterate(prefix, func(_ kvstore.Key, value kvstore.Value) bool {
		return consumer(value)
	}, kvstore.IterDirectionForward); err != nil {
		return errors.Errorf("failed to iterate prefix %x: %w", prefix, err)
	}

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region keys /////////////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// PrefixAssetsByReference defines the storage prefix of the AssetItems indexed by NetworkID ‖ AssetReference.
	PrefixAssetsByReference byte = iota

	// PrefixAssetsByID defines the storage prefix of the reference keys indexed by AssetID ‖ NetworkID.
	PrefixAssetsByID

	// PrefixNetworkAssets defines the storage prefix of the NetworkAssetItems indexed by FromAssetID ‖ ToNetworkID.
	PrefixNetworkAssets
)

func assetByReferenceKey(networkID cvm.NetworkID, reference asset.AssetReference) []byte {
	return byteutils.ConcatBytes([]byte{PrefixAssetsByReference}, networkID.Bytes(), reference.Key())
}

func assetByIDKey(assetID cvm.AssetID, networkID cvm.NetworkID) []byte {
	return byteutils.ConcatBytes([]byte{PrefixAssetsByID}, assetID.Bytes(), networkID.Bytes())
}

func networkAssetKey(fromAssetID cvm.AssetID, toNetworkID cvm.NetworkID) []byte {
	return byteutils.ConcatBytes([]byte{PrefixNetworkAssets}, fromAssetID.Bytes(), toNetworkID.Bytes())
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Options //////////////////////////////////////////////////////////////////////////////////////////////////////

// Option represents the return type of optional parameters that can be handed into the constructor of the Registry
// to configure its behavior.
type Option func(*options)

// WithLogger is an Option for the Registry that sets the logger used to report changes of the index.
func WithLogger(log *logger.Logger) Option {
	return func(options *options) {
		options.logger = log
	}
}

// options is a container for all configurable parameters of the Registry.
type options struct {
	logger *logger.Logger
}

func newOptions(opts ...Option) (new *options) {
	new = &options{
		logger: zap.NewNop().Sugar(),
	}

	for _, option := range opts {
		option(new)
	}

	return new
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
