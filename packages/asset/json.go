package asset

import (
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/crosschain-labs/cvmroute/packages/cvm"
	"github.com/crosschain-labs/cvmroute/packages/transport"
)

// ReferenceFromJSON decodes an externally tagged AssetReference ({"native":{"denom":"uatom"}}).
func ReferenceFromJSON(data []byte) (reference AssetReference, err error) {
	var tagged map[string]json.RawMessage
	if err = json.Unmarshal(data, &tagged); err != nil {
		return nil, errors.Errorf("failed to parse AssetReference: %w", err)
	}
	if len(tagged) != 1 {
		return nil, errors.Errorf("expected exactly one variant but got %d: %w", len(tagged), ErrUnknownVariantTag)
	}

	for tag, body := range tagged {
		switch tag {
		case VariantTagNative.String():
			var native nativeBody
			if err = json.Unmarshal(body, &native); err != nil {
				return nil, errors.Errorf("failed to parse %s body: %w", tag, err)
			}
			if reference, err = NewNative(native.Denomination); err != nil {
				return nil, errors.Errorf("failed to parse %s body: %w", tag, err)
			}
		case VariantTagCW20.String():
			var cw20 cw20Body
			if err = json.Unmarshal(body, &cw20); err != nil {
				return nil, errors.Errorf("failed to parse %s body: %w", tag, err)
			}
			reference = CW20(cw20)
		default:
			return nil, errors.Errorf("variant %q: %w", tag, ErrUnknownVariantTag)
		}
	}

	return reference, nil
}

// nativeBody and cw20Body carry the fields of the variants without their MarshalJSON methods.
type (
	nativeBody Native
	cw20Body   CW20
)

// MarshalJSON returns the externally tagged JSON form of the reference.
func (n Native) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]nativeBody{VariantTagNative.String(): nativeBody(n)})
}

// MarshalJSON returns the externally tagged JSON form of the reference.
func (c CW20) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]cw20Body{VariantTagCW20.String(): cw20Body(c)})
}

// assetItemJSON is the serialized form of an AssetItem.
type assetItemJSON struct {
	AssetID   cvm.AssetID      `json:"asset_id"`
	NetworkID cvm.NetworkID    `json:"network_id"`
	Local     json.RawMessage  `json:"local"`
	Bridged   *json.RawMessage `json:"bridged"`
}

// MarshalJSON returns the snake_case JSON form of the AssetItem.
func (a AssetItem) MarshalJSON() ([]byte, error) {
	if a.Local == nil {
		return nil, errors.New("AssetItem without local reference can not be marshaled")
	}

	local, err := json.Marshal(a.Local)
	if err != nil {
		return nil, errors.Errorf("failed to marshal local reference: %w", err)
	}

	item := assetItemJSON{
		AssetID:   a.AssetID,
		NetworkID: a.NetworkID,
		Local:     local,
	}
	if a.Bridged != nil {
		bridged, bridgedErr := json.Marshal(a.Bridged)
		if bridgedErr != nil {
			return nil, errors.Errorf("failed to marshal bridged: %w", bridgedErr)
		}
		item.Bridged = (*json.RawMessage)(&bridged)
	}

	return json.Marshal(item)
}

// UnmarshalJSON parses the snake_case JSON form of an AssetItem.
func (a *AssetItem) UnmarshalJSON(data []byte) (err error) {
	var item assetItemJSON
	if err = json.Unmarshal(data, &item); err != nil {
		return errors.Errorf("failed to parse AssetItem: %w", err)
	}

	local, err := ReferenceFromJSON(item.Local)
	if err != nil {
		return errors.Errorf("failed to parse local reference of AssetItem: %w", err)
	}

	*a = NewAssetItem(item.AssetID, item.NetworkID, local)
	if item.Bridged != nil && string(*item.Bridged) != "null" {
		var bridged BridgeAsset
		if err = json.Unmarshal(*item.Bridged, &bridged); err != nil {
			return errors.Errorf("failed to parse bridged of AssetItem: %w", err)
		}
		a.Bridged = &bridged
	}

	return nil
}

// bridgeAssetJSON is the serialized form of a BridgeAsset.
type bridgeAssetJSON struct {
	LocationOnNetwork json.RawMessage `json:"location_on_network"`
}

// MarshalJSON returns the snake_case JSON form of the BridgeAsset.
func (b BridgeAsset) MarshalJSON() ([]byte, error) {
	location, err := json.Marshal(b.LocationOnNetwork)
	if err != nil {
		return nil, errors.Errorf("failed to marshal location on network: %w", err)
	}

	return json.Marshal(bridgeAssetJSON{LocationOnNetwork: location})
}

// UnmarshalJSON parses the snake_case JSON form of a BridgeAsset.
func (b *BridgeAsset) UnmarshalJSON(data []byte) (err error) {
	var bridged bridgeAssetJSON
	if err = json.Unmarshal(data, &bridged); err != nil {
		return errors.Errorf("failed to parse BridgeAsset: %w", err)
	}

	if b.LocationOnNetwork, err = transport.ForeignAssetIDFromJSON(bridged.LocationOnNetwork); err != nil {
		return errors.Errorf("failed to parse location on network: %w", err)
	}

	return nil
}
