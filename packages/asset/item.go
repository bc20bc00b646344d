package asset

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/serix"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/crosschain-labs/cvmroute/packages/cvm"
	"github.com/crosschain-labs/cvmroute/packages/transport"
)

// region AssetItem ////////////////////////////////////////////////////////////////////////////////////////////////////

// AssetItem is the identity of an asset as it is usable on one specific network.
type AssetItem struct {
	// AssetID contains the network independent identifier of the asset.
	AssetID cvm.AssetID `serix:"0"`

	// NetworkID contains the network on which the asset can be used locally.
	NetworkID cvm.NetworkID `serix:"1"`

	// Local contains the representation of the asset on NetworkID.
	Local AssetReference `serix:"2"`

	// Bridged identifies the bridge/channel the asset arrived through. It is nil for assets native to NetworkID.
	Bridged *BridgeAsset `serix:"3,optional"`
}

// NewAssetItem returns an AssetItem without bridging information. The caller is responsible for passing a reference
// that is valid on the chain family of the given network.
func NewAssetItem(assetID cvm.AssetID, networkID cvm.NetworkID, local AssetReference) AssetItem {
	return AssetItem{
		AssetID:   assetID,
		NetworkID: networkID,
		Local:     local,
	}
}

// AssetItemFromBytes unmarshals an AssetItem from a sequence of bytes.
func AssetItemFromBytes(data []byte) (item AssetItem, consumedBytes int, err error) {
	if consumedBytes, err = serix.DefaultAPI.Decode(context.Background(), data, &item, serix.WithValidation()); err != nil {
		return AssetItem{}, 0, errors.Errorf("failed to parse AssetItem: %w", err)
	}

	return item, consumedBytes, nil
}

// WithBridged returns a copy of the AssetItem that carries the given bridging information.
func (a AssetItem) WithBridged(bridged BridgeAsset) AssetItem {
	a.Bridged = &bridged

	return a
}

// IsBridged returns true if the asset arrived on its network through a bridge.
func (a AssetItem) IsBridged() bool {
	return a.Bridged != nil
}

// Denom returns the canonical denom of the local representation of the asset.
func (a AssetItem) Denom() string {
	return a.Local.Denom()
}

// Equal returns true if both items are structurally equal in every field.
func (a AssetItem) Equal(other AssetItem) bool {
	if a.AssetID != other.AssetID || a.NetworkID != other.NetworkID || a.Local != other.Local {
		return false
	}

	if a.Bridged == nil || other.Bridged == nil {
		return a.Bridged == other.Bridged
	}

	return *a.Bridged == *other.Bridged
}

// Bytes returns a serialized version of the AssetItem.
func (a AssetItem) Bytes() []byte {
	objBytes, err := serix.DefaultAPI.Encode(context.Background(), a, serix.WithValidation())
	if err != nil {
		panic(errors.Errorf("failed to serialize AssetItem: %w", err))
	}

	return objBytes
}

// String returns a human-readable version of the AssetItem.
func (a AssetItem) String() string {
	structBuilder := stringify.StructBuilder("AssetItem",
		stringify.StructField("assetID", a.AssetID),
		stringify.StructField("networkID", a.NetworkID),
		stringify.StructField("local", a.Local),
	)
	if a.Bridged != nil {
		structBuilder.AddField(stringify.StructField("bridged", a.Bridged.LocationOnNetwork))
	}

	return structBuilder.String()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region NetworkAssetItem /////////////////////////////////////////////////////////////////////////////////////////////

// NetworkAssetItem maps the identifier of an asset on one network to its identifier on the destination network.
type NetworkAssetItem struct {
	ToNetworkID cvm.NetworkID `serix:"0" json:"to_network_id"`
	FromAssetID cvm.AssetID   `serix:"1" json:"from_asset_id"`
	ToAssetID   cvm.AssetID   `serix:"2" json:"to_asset_id"`
}

// NewNetworkAssetItem returns a new NetworkAssetItem.
func NewNetworkAssetItem(toNetworkID cvm.NetworkID, fromAssetID, toAssetID cvm.AssetID) NetworkAssetItem {
	return NetworkAssetItem{
		ToNetworkID: toNetworkID,
		FromAssetID: fromAssetID,
		ToAssetID:   toAssetID,
	}
}

// NetworkAssetItemFromBytes unmarshals a NetworkAssetItem from a sequence of bytes.
func NetworkAssetItemFromBytes(data []byte) (item NetworkAssetItem, consumedBytes int, err error) {
	if consumedBytes, err = serix.DefaultAPI.Decode(context.Background(), data, &item, serix.WithValidation()); err != nil {
		return NetworkAssetItem{}, 0, errors.Errorf("failed to parse NetworkAssetItem: %w", err)
	}

	return item, consumedBytes, nil
}

// IsIdentity returns true if the asset keeps its identifier on the destination network.
func (n NetworkAssetItem) IsIdentity() bool {
	return n.FromAssetID == n.ToAssetID
}

// Bytes returns a serialized version of the NetworkAssetItem.
func (n NetworkAssetItem) Bytes() []byte {
	objBytes, err := serix.DefaultAPI.Encode(context.Background(), n, serix.WithValidation())
	if err != nil {
		panic(errors.Errorf("failed to serialize NetworkAssetItem: %w", err))
	}

	return objBytes
}

// String returns a human-readable version of the NetworkAssetItem.
func (n NetworkAssetItem) String() string {
	return stringify.Struct("NetworkAssetItem",
		stringify.StructField("toNetworkID", n.ToNetworkID),
		stringify.StructField("fromAssetID", n.FromAssetID),
		stringify.StructField("toAssetID", n.ToAssetID),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region BridgeAsset //////////////////////////////////////////////////////////////////////////////////////////////////

// BridgeAsset is the evidence that an asset was introduced to its network through a bridge or channel. It does not
// grant any bridging capability.
type BridgeAsset struct {
	LocationOnNetwork transport.ForeignAssetID `serix:"0"`
}

// NewBridgeAsset returns a new BridgeAsset.
func NewBridgeAsset(locationOnNetwork transport.ForeignAssetID) BridgeAsset {
	return BridgeAsset{LocationOnNetwork: locationOnNetwork}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
