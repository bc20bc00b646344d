package asset

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosschain-labs/cvmroute/packages/chainaddr"
	"github.com/crosschain-labs/cvmroute/packages/cvm"
	"github.com/crosschain-labs/cvmroute/packages/transport"
)

func TestNewAssetItem(t *testing.T) {
	item := NewAssetItem(cvm.AssetID(7), cvm.NetworkID(1), Native{Denomination: "uusdc"})
	assert.Equal(t, "uusdc", item.Denom())
	assert.Nil(t, item.Bridged)
	assert.False(t, item.IsBridged())

	cw20Item := NewAssetItem(cvm.AssetID(8), cvm.NetworkID(1), NewCW20(chainaddr.UncheckedAddr("wasm1abc")))
	assert.Equal(t, "cw20:wasm1abc", cw20Item.Denom())
	assert.Nil(t, cw20Item.Bridged)
}

func TestAssetItem_BridgedDoesNotAffectDenom(t *testing.T) {
	item := NewAssetItem(cvm.AssetID(7), cvm.NetworkID(2), Native{Denomination: "ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2"})
	bridge := NewBridgeAsset(transport.NewIBCICS20(transport.NewPrefixedDenom("transfer/channel-0", "uatom")))

	bridgedItem := item.WithBridged(bridge)
	require.NotNil(t, bridgedItem.Bridged)
	assert.Equal(t, bridge, *bridgedItem.Bridged)
	assert.True(t, bridgedItem.IsBridged())
	assert.Equal(t, item.Denom(), bridgedItem.Denom())

	// the original value is left untouched
	assert.Nil(t, item.Bridged)
	assert.False(t, item.Equal(bridgedItem))
}

func TestAssetItem_Equal(t *testing.T) {
	uatomOnNetwork1 := NewAssetItem(cvm.AssetID(7), cvm.NetworkID(1), Native{Denomination: "uatom"})
	uatomOnNetwork2 := NewAssetItem(cvm.AssetID(7), cvm.NetworkID(2), Native{Denomination: "uatom"})

	assert.False(t, uatomOnNetwork1.Equal(uatomOnNetwork2))
	assert.NotEqual(t, uatomOnNetwork1, uatomOnNetwork2)
	assert.True(t, uatomOnNetwork1.Equal(NewAssetItem(cvm.AssetID(7), cvm.NetworkID(1), Native{Denomination: "uatom"})))
	assert.False(t, uatomOnNetwork1.Equal(NewAssetItem(cvm.AssetID(8), cvm.NetworkID(1), Native{Denomination: "uatom"})))
	assert.False(t, uatomOnNetwork1.Equal(NewAssetItem(cvm.AssetID(7), cvm.NetworkID(1), NewCW20(chainaddr.UncheckedAddr("uatom")))))

	bridge := NewBridgeAsset(transport.NewIBCICS20(transport.NewPrefixedDenom("transfer/channel-0", "uatom")))
	sameBridge := NewBridgeAsset(transport.NewIBCICS20(transport.NewPrefixedDenom("transfer/channel-0", "uatom")))
	otherBridge := NewBridgeAsset(transport.NewIBCICS20(transport.NewPrefixedDenom("transfer/channel-1", "uatom")))

	assert.True(t, uatomOnNetwork2.WithBridged(bridge).Equal(uatomOnNetwork2.WithBridged(sameBridge)))
	assert.False(t, uatomOnNetwork2.WithBridged(bridge).Equal(uatomOnNetwork2.WithBridged(otherBridge)))
}

func TestNewNetworkAssetItem(t *testing.T) {
	item := NewNetworkAssetItem(cvm.NetworkID(3), cvm.AssetID(7), cvm.AssetID(42))
	assert.Equal(t, cvm.NetworkID(3), item.ToNetworkID)
	assert.Equal(t, cvm.AssetID(7), item.FromAssetID)
	assert.Equal(t, cvm.AssetID(42), item.ToAssetID)
	assert.False(t, item.IsIdentity())

	assert.True(t, NewNetworkAssetItem(cvm.NetworkID(3), cvm.AssetID(7), cvm.AssetID(7)).IsIdentity())
}

func TestAssetItem_Bytes(t *testing.T) {
	item := NewAssetItem(cvm.AssetID(7), cvm.NetworkID(1), NewCW20(chainaddr.UncheckedAddr(testContract))).
		WithBridged(NewBridgeAsset(transport.NewIBCICS20(transport.NewPrefixedDenom("transfer/channel-0", "uatom"))))

	serialized := item.Bytes()
	decoded, consumedBytes, err := AssetItemFromBytes(serialized)
	require.NoError(t, err)
	assert.Equal(t, len(serialized), consumedBytes)
	assert.True(t, item.Equal(decoded))

	plain := NewAssetItem(cvm.AssetID(9), cvm.NetworkID(2), Native{Denomination: "uusdc"})
	decoded, _, err = AssetItemFromBytes(plain.Bytes())
	require.NoError(t, err)
	assert.True(t, plain.Equal(decoded))
	assert.Nil(t, decoded.Bridged)

	networkAssetItem := NewNetworkAssetItem(cvm.NetworkID(3), cvm.AssetID(7), cvm.AssetID(42))
	decodedNetworkAssetItem, _, err := NetworkAssetItemFromBytes(networkAssetItem.Bytes())
	require.NoError(t, err)
	assert.Equal(t, networkAssetItem, decodedNetworkAssetItem)
}

func TestAssetItem_JSON(t *testing.T) {
	item := NewAssetItem(cvm.AssetID(7), cvm.NetworkID(1), Native{Denomination: "uusdc"})

	encoded, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, `{"asset_id":7,"network_id":1,"local":{"native":{"denom":"uusdc"}},"bridged":null}`, string(encoded))

	var decoded AssetItem
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.True(t, item.Equal(decoded))

	bridgedItem := NewAssetItem(cvm.AssetID(8), cvm.NetworkID(2), NewCW20(chainaddr.UncheckedAddr("wasm1abc"))).
		WithBridged(NewBridgeAsset(transport.NewIBCICS20(transport.NewPrefixedDenom("transfer/channel-0", "uatom"))))

	encoded, err = json.Marshal(bridgedItem)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"asset_id": 8,
		"network_id": 2,
		"local": {"cw20": {"contract": "wasm1abc"}},
		"bridged": {"location_on_network": {"ibc_ics20": {"trace_path": "transfer/channel-0", "base_denom": "uatom"}}}
	}`, string(encoded))

	decoded = AssetItem{}
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.True(t, bridgedItem.Equal(decoded))

	assert.Error(t, json.Unmarshal([]byte(`{"asset_id":1,"network_id":1,"local":{"erc20":{"contract":"0x"}}}`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`{"asset_id":1,"network_id":1,"local":{}}`), &decoded))

	_, err = json.Marshal(AssetItem{})
	assert.Error(t, err)
}

func TestAssetItem_JSONRejectsUncheckedNativeDenoms(t *testing.T) {
	var decoded AssetItem
	err := json.Unmarshal([]byte(`{"asset_id":1,"network_id":1,"local":{"native":{"denom":"cw20:`+testContract+`"}},"bridged":null}`), &decoded)
	assert.ErrorIs(t, err, ErrReservedDenomPrefix)

	err = json.Unmarshal([]byte(`{"asset_id":1,"network_id":1,"local":{"native":{"denom":""}},"bridged":null}`), &decoded)
	assert.ErrorIs(t, err, ErrEmptyDenom)

	_, err = ReferenceFromJSON([]byte(`{"native":{}}`))
	assert.ErrorIs(t, err, ErrEmptyDenom)

	reference, err := ReferenceFromJSON([]byte(`{"native":{"denom":"uatom"}}`))
	require.NoError(t, err)
	assert.Equal(t, AssetReference(Native{Denomination: "uatom"}), reference)
}

func TestNetworkAssetItem_JSON(t *testing.T) {
	encoded, err := json.Marshal(NewNetworkAssetItem(cvm.NetworkID(3), cvm.AssetID(7), cvm.AssetID(42)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"to_network_id":3,"from_asset_id":7,"to_asset_id":42}`, string(encoded))
}

func TestAssetItem_ConcurrentDenom(t *testing.T) {
	item := NewAssetItem(cvm.AssetID(7), cvm.NetworkID(1), NewCW20(chainaddr.UncheckedAddr(testContract)))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			assert.Equal(t, CW20DenomPrefix+testContract, item.Denom())
			assert.Equal(t, append([]byte{byte(VariantTagCW20)}, testContract...), item.Local.Key())
		}()
	}
	wg.Wait()
}

func TestAssetItem_String(t *testing.T) {
	item := NewAssetItem(cvm.AssetID(7), cvm.NetworkID(1), Native{Denomination: "uusdc"})
	assert.Contains(t, item.String(), "uusdc")
	assert.NotContains(t, item.String(), "bridged")

	bridged := item.WithBridged(NewBridgeAsset(transport.NewIBCICS20(transport.NewPrefixedDenom("transfer/channel-0", "uatom"))))
	assert.Contains(t, bridged.String(), "bridged")
}
